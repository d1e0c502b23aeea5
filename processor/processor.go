// Package processor defines the command/query contracts that carry a
// resource endpoint's business logic, plus the capability strategies
// (filtering, pagination, permission checks) the surrounding handler injects
// into them.
//
// A processor is built for exactly one HTTP request and discarded after
// Execute returns. It holds nothing mutable beyond the Request it received
// at construction and whatever Execute computes.
package processor

import (
	"context"
	"errors"
	"net/url"

	"github.com/dmitrymomot/crudkit/paginate"
	"github.com/dmitrymomot/crudkit/serializer"
)

// ErrMissingLookupParam indicates a route was registered without the URL
// parameter its lookup configuration expects. This is a programmer error and
// surfaces as a 500, never a 404.
var ErrMissingLookupParam = errors.New("lookup parameter missing from URL")

// Request is the ambient per-request context handed to every processor.
// It is constructed once per HTTP request by the resource layer and treated
// as immutable afterwards.
type Request struct {
	// Principal is the authenticated caller, supplied by the hosting
	// application (nil when unauthenticated or authentication is not wired).
	Principal any
	// PathParams holds URL path parameters.
	PathParams map[string]string
	// QueryParams holds the parsed query string.
	QueryParams url.Values
	// Payload is the validated request body for write operations, nil for
	// reads and destroys.
	Payload serializer.Payload
	// Partial reports whether the payload went through partial validation
	// (PATCH semantics).
	Partial bool
}

// Command executes a single state-changing operation against the domain
// store and returns the resulting object. The store is mutated exactly once
// per Execute call.
type Command[T any] interface {
	Execute(ctx context.Context) (T, error)
}

// Query executes a single read-only operation: one object, a bare
// collection, or a page.
type Query[T any] interface {
	Execute(ctx context.Context) (Result[T], error)
}

// Filterer narrows a collection before pagination. Implementations usually
// read the query string from the Request.
type Filterer[T any] interface {
	Filter(ctx context.Context, req Request, items []T) ([]T, error)
}

// Paginator slices a collection into a page. The applied return value is
// false when the paginator opts out, in which case the caller renders the
// collection as a bare array. paginate.LimitOffset and paginate.None satisfy
// this interface.
type Paginator[T any] interface {
	Paginate(ctx context.Context, query url.Values, items []T) (paginate.Page[T], bool, error)
}

// PermissionChecker authorizes access to a single looked-up object. A non-nil
// error denies access; the lookup wraps it into crudkit.ErrForbidden if it
// carries no HTTP classification of its own.
type PermissionChecker[T any] interface {
	Check(ctx context.Context, req Request, obj T) error
}

// Capabilities bundles the strategies injected into a processor. Any field
// may be nil: a nil Filterer is the identity, a nil Paginator never
// paginates, a nil PermissionChecker allows everything.
type Capabilities[T any] struct {
	Filter     Filterer[T]
	Paginator  Paginator[T]
	Permission PermissionChecker[T]
}

// Source yields a single object by field/value, typically backed by the
// application's store. It is the caller-supplied collection the lookup
// algorithm resolves objects from.
type Source[T any] interface {
	Find(ctx context.Context, field, value string) (T, bool, error)
}

// SourceFunc adapts a function to the Source interface.
type SourceFunc[T any] func(ctx context.Context, field, value string) (T, bool, error)

func (f SourceFunc[T]) Find(ctx context.Context, field, value string) (T, bool, error) {
	return f(ctx, field, value)
}

// Lookup configures how a single target object is resolved from URL
// parameters.
type Lookup struct {
	// Field is the store-side attribute to match, "id" when empty.
	Field string
	// Param is the URL parameter carrying the value, defaults to Field.
	Param string
}

// DefaultLookupField is the lookup key used when none is configured.
const DefaultLookupField = "id"

func (l Lookup) field() string {
	if l.Field == "" {
		return DefaultLookupField
	}
	return l.Field
}

// ParamName returns the URL parameter the lookup reads.
func (l Lookup) ParamName() string {
	if l.Param != "" {
		return l.Param
	}
	return l.field()
}
