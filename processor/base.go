package processor

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrymomot/crudkit"
)

// Base carries the shared state and helpers of a processor: the request
// context, the injected capabilities, and the lookup configuration. Concrete
// processors embed it and implement Execute.
//
//	type getTask struct {
//		processor.Base[Task]
//		store Store
//	}
//
//	func (q *getTask) Execute(ctx context.Context) (processor.Result[Task], error) {
//		t, err := q.GetObject(ctx, q.store)
//		if err != nil {
//			return processor.Result[Task]{}, err
//		}
//		return processor.Object(t), nil
//	}
type Base[T any] struct {
	Request Request
	Caps    Capabilities[T]
	Lookup  Lookup
}

// NewBase builds the embeddable processor state.
func NewBase[T any](req Request, caps Capabilities[T], lookup Lookup) Base[T] {
	return Base[T]{Request: req, Caps: caps, Lookup: lookup}
}

// GetObject resolves the single target object of an object-scoped operation:
// it reads the configured URL parameter, fetches the match from src, and
// runs the permission check before handing the object back. A missing URL
// parameter is ErrMissingLookupParam (misconfigured route, not a client
// error); a miss in src is crudkit.ErrNotFound; a rejected permission check
// is crudkit.ErrForbidden unless the checker returned its own HTTP
// classification.
func (b *Base[T]) GetObject(ctx context.Context, src Source[T]) (T, error) {
	var zero T

	param := b.Lookup.ParamName()
	value, ok := b.Request.PathParams[param]
	if !ok || value == "" {
		return zero, fmt.Errorf("%w: %q", ErrMissingLookupParam, param)
	}

	obj, found, err := src.Find(ctx, b.Lookup.field(), value)
	if err != nil {
		return zero, err
	}
	if !found {
		return zero, fmt.Errorf("%w: %s=%s", crudkit.ErrNotFound, b.Lookup.field(), value)
	}

	if err := b.CheckPermission(ctx, obj); err != nil {
		return zero, err
	}
	return obj, nil
}

// CheckPermission runs the injected permission check against obj. Errors
// without an HTTP classification are wrapped into crudkit.ErrForbidden so
// the original cause stays in the chain.
func (b *Base[T]) CheckPermission(ctx context.Context, obj T) error {
	if b.Caps.Permission == nil {
		return nil
	}
	err := b.Caps.Permission.Check(ctx, b.Request, obj)
	if err == nil {
		return nil
	}

	var httpErr crudkit.HTTPError
	if errors.As(err, &httpErr) {
		return err
	}
	return fmt.Errorf("%w: %v", crudkit.ErrForbidden, err)
}

// FilterAndPaginate applies the filter capability and then the paginator, in
// that fixed order: filtering narrows the collection before pagination
// slices it. The result is a Page variant only when the paginator reports it
// actually applied; otherwise the filtered collection comes back bare.
func (b *Base[T]) FilterAndPaginate(ctx context.Context, items []T) (Result[T], error) {
	var err error
	if b.Caps.Filter != nil {
		items, err = b.Caps.Filter.Filter(ctx, b.Request, items)
		if err != nil {
			return Result[T]{}, err
		}
	}

	if b.Caps.Paginator == nil {
		return Collection(items), nil
	}

	page, applied, err := b.Caps.Paginator.Paginate(ctx, b.Request.QueryParams, items)
	if err != nil {
		return Result[T]{}, err
	}
	if !applied {
		return Collection(items), nil
	}
	return Paged(page), nil
}
