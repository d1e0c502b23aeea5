package binder

import "net/http"

// Query creates a query string binder.
//
// It supports struct tags for custom parameter names:
//   - `query:"name"` binds to query parameter "name"
//   - `query:"-"` skips the field
//
// Example:
//
//	type ListTasksRequest struct {
//		Status string   `query:"status"`
//		Tags   []string `query:"tags"`   // ?tags=a&tags=b or ?tags=a,b
//		Limit  int      `query:"limit"`
//		Done   *bool    `query:"done"`   // optional
//	}
func Query() func(r *http.Request, v any) error {
	return func(r *http.Request, v any) error {
		return Values(v, "query", r.URL.Query(), ErrInvalidQuery)
	}
}
