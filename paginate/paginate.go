// Package paginate implements limit/offset pagination for collection query
// results. The Paginator implementations here satisfy processor.Paginator
// structurally; they never import the processor package.
package paginate

import (
	"context"
	"net/url"

	"github.com/dmitrymomot/crudkit/binder"
)

const (
	// DefaultLimit is used when the request does not specify a page size.
	DefaultLimit = 20
	// MaxLimit caps the page size a client may request.
	MaxLimit = 100
)

// Page is a bounded slice of a collection plus the metadata a client needs
// to fetch the rest of it.
type Page[T any] struct {
	Items  []T `json:"items"`
	Total  int `json:"total"`
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

// Remap converts a page of domain objects into a page of another shape while
// preserving the pagination metadata. The resource layer uses it to swap
// domain objects for serialized payloads.
func Remap[T, U any](p Page[T], fn func(T) (U, error)) (Page[U], error) {
	out := Page[U]{
		Items:  make([]U, 0, len(p.Items)),
		Total:  p.Total,
		Limit:  p.Limit,
		Offset: p.Offset,
	}
	for _, item := range p.Items {
		mapped, err := fn(item)
		if err != nil {
			return Page[U]{}, err
		}
		out.Items = append(out.Items, mapped)
	}
	return out, nil
}

// Params carries client-requested page bounds, bound from the query string.
type Params struct {
	Limit  int `query:"limit"`
	Offset int `query:"offset"`
}

// LimitOffset slices collections according to limit/offset query parameters.
// The zero value uses DefaultLimit and MaxLimit.
type LimitOffset[T any] struct {
	// DefaultLimit overrides the package default page size when positive.
	DefaultLimit int
	// MaxLimit overrides the package cap when positive.
	MaxLimit int
}

// Paginate reports applied=true: limit/offset pagination always bounds the
// result, even when the client sends no parameters.
func (p LimitOffset[T]) Paginate(ctx context.Context, query url.Values, items []T) (Page[T], bool, error) {
	var params Params
	if err := binder.Values(&params, "query", query, binder.ErrInvalidQuery); err != nil {
		return Page[T]{}, false, err
	}

	limit := params.Limit
	if limit <= 0 {
		limit = p.DefaultLimit
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	maxLimit := p.MaxLimit
	if maxLimit <= 0 {
		maxLimit = MaxLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	offset := max(params.Offset, 0)

	page := Page[T]{
		Items:  []T{},
		Total:  len(items),
		Limit:  limit,
		Offset: offset,
	}
	if offset < len(items) {
		end := min(offset+limit, len(items))
		page.Items = items[offset:end]
	}
	return page, true, nil
}

// None disables pagination: collection queries report the full result and
// the resource layer renders a bare array instead of a page envelope.
type None[T any] struct{}

// Paginate reports applied=false and leaves the collection untouched.
func (None[T]) Paginate(ctx context.Context, query url.Values, items []T) (Page[T], bool, error) {
	return Page[T]{}, false, nil
}
