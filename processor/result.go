package processor

import "github.com/dmitrymomot/crudkit/paginate"

// Kind discriminates the variants of a query Result.
type Kind int

const (
	// KindObject is a single domain object.
	KindObject Kind = iota
	// KindCollection is an unpaginated sequence of domain objects.
	KindCollection
	// KindPage is a paginated slice of a collection.
	KindPage
)

// Result is the tagged outcome of a query: exactly one of a single object,
// a bare collection, or a page. Callers switch on Kind instead of tracking
// an auxiliary pagination flag.
type Result[T any] struct {
	kind   Kind
	object T
	items  []T
	page   paginate.Page[T]
}

// Object wraps a single domain object.
func Object[T any](v T) Result[T] {
	return Result[T]{kind: KindObject, object: v}
}

// Collection wraps an unpaginated sequence.
func Collection[T any](items []T) Result[T] {
	if items == nil {
		items = []T{}
	}
	return Result[T]{kind: KindCollection, items: items}
}

// Paged wraps a page produced by a Paginator.
func Paged[T any](p paginate.Page[T]) Result[T] {
	if p.Items == nil {
		p.Items = []T{}
	}
	return Result[T]{kind: KindPage, page: p}
}

// Kind reports which variant this result holds.
func (r Result[T]) Kind() Kind { return r.kind }

// Paginated reports whether pagination was actually applied.
func (r Result[T]) Paginated() bool { return r.kind == KindPage }

// Object returns the single object variant; zero value otherwise.
func (r Result[T]) Object() T { return r.object }

// Items returns the bare collection variant; nil otherwise.
func (r Result[T]) Items() []T { return r.items }

// Page returns the page variant; zero value otherwise.
func (r Result[T]) Page() paginate.Page[T] { return r.page }
