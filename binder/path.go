package binder

import (
	"fmt"
	"net/http"
	"net/url"
)

// Path creates a path parameter binder using the provided extractor. The
// extractor is called once per tagged struct field; chi users pass
// chi.URLParam.
//
// Example:
//
//	type GetTaskRequest struct {
//		ID string `path:"id"`
//	}
//
//	r.Get("/tasks/{id}", func(w http.ResponseWriter, r *http.Request) {
//		var req GetTaskRequest
//		_ = binder.Path(chi.URLParam)(r, &req)
//		...
//	})
func Path(extractor func(r *http.Request, name string) string) func(r *http.Request, v any) error {
	return func(r *http.Request, v any) error {
		if extractor == nil {
			return fmt.Errorf("%w: extractor function is nil", ErrInvalidPath)
		}

		// Reuse the shared Values binding by projecting path params into
		// url.Values keyed by the tag names found on the target struct.
		values := url.Values{}
		for _, name := range taggedParams(v, "path") {
			if s := extractor(r, name); s != "" {
				values.Set(name, s)
			}
		}
		return Values(v, "path", values, ErrInvalidPath)
	}
}
