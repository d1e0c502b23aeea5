package tasks

import (
	"log/slog"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/crudkit/paginate"
	"github.com/dmitrymomot/crudkit/processor"
	"github.com/dmitrymomot/crudkit/resource"
)

// RouterOptions configures the tasks resource. Store is required; everything
// else has a sensible default.
type RouterOptions struct {
	Store Store

	// Logger feeds the error handler. Nil means silent.
	Logger *slog.Logger
	// PageSize is the default list page size, paginate.DefaultLimit when
	// zero.
	PageSize int
	// MaxPageSize caps the client-requested limit, paginate.MaxLimit when
	// zero.
	MaxPageSize int
	// Principal extracts the authenticated caller for processors, optional.
	Principal resource.PrincipalFunc
	// Permission authorizes object access, optional.
	Permission processor.PermissionChecker[Task]
}

// Router mounts the full CRUD surface for tasks.
//
//	r := chi.NewRouter()
//	r.Mount("/tasks", tasks.Router(tasks.RouterOptions{Store: store}))
func Router(opts RouterOptions) chi.Router {
	store := opts.Store
	if store == nil {
		panic("tasks: RouterOptions.Store is required")
	}

	caps := processor.Capabilities[Task]{
		Filter: queryFilter{},
		Paginator: paginate.LimitOffset[Task]{
			DefaultLimit: opts.PageSize,
			MaxLimit:     opts.MaxPageSize,
		},
		Permission: opts.Permission,
	}
	lookup := processor.Lookup{}

	rs := resource.New[Task](Schema(),
		resource.WithCapabilities(caps),
		resource.WithLookup[Task](lookup),
		resource.WithPrincipalFunc[Task](opts.Principal),
		resource.WithLogger[Task](opts.Logger),
		resource.WithCreate(func(req processor.Request, caps processor.Capabilities[Task]) processor.Command[Task] {
			return &createTask{Base: processor.NewBase(req, caps, lookup), store: store}
		}),
		resource.WithUpdate(func(req processor.Request, caps processor.Capabilities[Task]) processor.Command[Task] {
			return &updateTask{Base: processor.NewBase(req, caps, lookup), store: store}
		}),
		resource.WithDestroy(func(req processor.Request, caps processor.Capabilities[Task]) processor.Command[Task] {
			return &deleteTask{Base: processor.NewBase(req, caps, lookup), store: store}
		}),
		resource.WithList(func(req processor.Request, caps processor.Capabilities[Task]) processor.Query[Task] {
			return &listTasks{Base: processor.NewBase(req, caps, lookup), store: store}
		}),
		resource.WithRetrieve(func(req processor.Request, caps processor.Capabilities[Task]) processor.Query[Task] {
			return &getTask{Base: processor.NewBase(req, caps, lookup), store: store}
		}),
	)

	return rs.Routes()
}
