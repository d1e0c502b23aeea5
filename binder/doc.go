// Package binder populates request structs from HTTP query strings and URL
// path parameters using struct tags.
//
// Two binders are provided:
//
//	type ListRequest struct {
//		Status string `query:"status"`
//		Limit  int    `query:"limit"`
//	}
//
//	type GetRequest struct {
//		ID string `path:"id"`
//	}
//
//	_ = binder.Query()(r, &listReq)
//	_ = binder.Path(chi.URLParam)(r, &getReq)
//
// Values already parsed into url.Values can be bound directly with
// binder.Values, which is what paginate and resource filters use.
//
// Supported field types are string, the integer and float kinds, bool,
// pointers to any of those for optional parameters, and slices for
// multi-value parameters (repeated keys or comma-separated).
package binder
