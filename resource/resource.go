// Package resource composes command and query processors into HTTP verb
// handlers and mounts them on a chi router.
//
// A Resource is a struct holding optional per-verb processor factories; only
// the verbs with a configured factory get routes, everything else is
// rejected by the router. Each request gets a fresh processor.Request and a
// fresh processor, both discarded once the response is rendered.
package resource

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/crudkit/processor"
	"github.com/dmitrymomot/crudkit/serializer"
)

// DefaultLocationField is the serialized field consulted for the Location
// header of create responses.
const DefaultLocationField = "url"

// CommandFactory builds a write processor for one request. The resource
// passes its configured capabilities so commands can run permission checks.
type CommandFactory[T any] func(req processor.Request, caps processor.Capabilities[T]) processor.Command[T]

// QueryFactory builds a read processor for one request.
type QueryFactory[T any] func(req processor.Request, caps processor.Capabilities[T]) processor.Query[T]

// PrincipalFunc extracts the authenticated caller from the request, usually
// out of a context value set by auth middleware.
type PrincipalFunc func(r *http.Request) any

// ErrorHandler renders a failed request. The default one classifies the
// error taxonomy into status codes and logs through slog.
type ErrorHandler func(w http.ResponseWriter, r *http.Request, err error)

// Resource wires one serializer and up to five processor factories into
// verb handlers. Build it with New and mount it anywhere an http.Handler
// fits.
type Resource[T any] struct {
	ser           serializer.Serializer[T]
	caps          processor.Capabilities[T]
	lookup        processor.Lookup
	principal     PrincipalFunc
	locationField string
	onError       ErrorHandler
	log           *slog.Logger

	create   CommandFactory[T]
	update   CommandFactory[T]
	destroy  CommandFactory[T]
	list     QueryFactory[T]
	retrieve QueryFactory[T]

	router chi.Router
}

// Option configures a Resource during New.
type Option[T any] func(*Resource[T])

// WithCreate enables POST / with the given command factory.
func WithCreate[T any](f CommandFactory[T]) Option[T] {
	return func(rs *Resource[T]) { rs.create = f }
}

// WithUpdate enables PUT and PATCH on the item route. PATCH requests run
// the serializer in partial mode and mark the processor.Request as partial.
func WithUpdate[T any](f CommandFactory[T]) Option[T] {
	return func(rs *Resource[T]) { rs.update = f }
}

// WithDestroy enables DELETE on the item route.
func WithDestroy[T any](f CommandFactory[T]) Option[T] {
	return func(rs *Resource[T]) { rs.destroy = f }
}

// WithList enables GET / with the given query factory.
func WithList[T any](f QueryFactory[T]) Option[T] {
	return func(rs *Resource[T]) { rs.list = f }
}

// WithRetrieve enables GET on the item route.
func WithRetrieve[T any](f QueryFactory[T]) Option[T] {
	return func(rs *Resource[T]) { rs.retrieve = f }
}

// WithCapabilities injects the filter/paginate/permission strategies handed
// to every processor this resource builds.
func WithCapabilities[T any](caps processor.Capabilities[T]) Option[T] {
	return func(rs *Resource[T]) { rs.caps = caps }
}

// WithLookup overrides how item routes resolve their target object. The
// lookup's URL parameter also names the route placeholder, so a lookup of
// {Param: "slug"} registers GET /{slug}.
func WithLookup[T any](lookup processor.Lookup) Option[T] {
	return func(rs *Resource[T]) { rs.lookup = lookup }
}

// WithPrincipalFunc supplies the principal extractor for processor requests.
func WithPrincipalFunc[T any](f PrincipalFunc) Option[T] {
	return func(rs *Resource[T]) {
		if f != nil {
			rs.principal = f
		}
	}
}

// WithLocationField names the serialized field used for the Location header
// of create responses. An absent or non-string field is tolerated: the
// response simply carries no Location header.
func WithLocationField[T any](name string) Option[T] {
	return func(rs *Resource[T]) {
		if name != "" {
			rs.locationField = name
		}
	}
}

// WithErrorHandler replaces the default error handler.
func WithErrorHandler[T any](h ErrorHandler) Option[T] {
	return func(rs *Resource[T]) {
		if h != nil {
			rs.onError = h
		}
	}
}

// WithLogger sets the logger used by the default error handler.
func WithLogger[T any](log *slog.Logger) Option[T] {
	return func(rs *Resource[T]) {
		if log != nil {
			rs.log = log
		}
	}
}

// New builds a Resource around a serializer. Verbs without a factory are
// not routed.
func New[T any](ser serializer.Serializer[T], opts ...Option[T]) *Resource[T] {
	rs := &Resource[T]{
		ser:           ser,
		locationField: DefaultLocationField,
	}
	for _, opt := range opts {
		opt(rs)
	}
	if rs.log == nil {
		rs.log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if rs.onError == nil {
		rs.onError = NewErrorHandler(rs.log)
	}
	rs.router = rs.routes()
	return rs
}

// Routes returns the router with one route per configured verb.
func (rs *Resource[T]) Routes() chi.Router {
	return rs.router
}

// ServeHTTP implements http.Handler.
func (rs *Resource[T]) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	rs.router.ServeHTTP(w, r)
}

func (rs *Resource[T]) routes() chi.Router {
	r := chi.NewRouter()

	if rs.list != nil {
		r.Get("/", rs.handleList)
	}
	if rs.create != nil {
		r.Post("/", rs.handleCreate)
	}

	item := "/{" + rs.lookup.ParamName() + "}"
	if rs.retrieve != nil {
		r.Get(item, rs.handleRetrieve)
	}
	if rs.update != nil {
		r.Put(item, rs.handleUpdate(false))
		r.Patch(item, rs.handleUpdate(true))
	}
	if rs.destroy != nil {
		r.Delete(item, rs.handleDestroy)
	}

	return r
}
