package resource

import (
	"errors"
	"log/slog"
	"maps"
	"net/http"

	jsoniter "github.com/json-iterator/go"

	"github.com/dmitrymomot/crudkit"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ErrorDetail is the wire shape of a failed request.
type ErrorDetail struct {
	Code    string              `json:"code"`
	Message string              `json:"message"`
	Details map[string][]string `json:"details,omitempty"`
}

type errorBody struct {
	Error ErrorDetail `json:"error"`
}

// Classify maps an error onto an HTTP status and wire detail.
// ValidationError becomes 422 with the per-field messages, HTTPError keeps
// its own status and code, anything else is a 500 with a generic message so
// internals never leak to clients.
func Classify(err error) (int, ErrorDetail) {
	status := http.StatusInternalServerError
	detail := ErrorDetail{
		Code:    "internal_error",
		Message: "An error occurred processing your request",
	}

	var httpErr crudkit.HTTPError
	if errors.As(err, &httpErr) {
		status = httpErr.Code
		detail.Code = httpErr.Key
		detail.Message = http.StatusText(httpErr.Code)
	}

	// Validation detail wins over a plain HTTP classification.
	var verr crudkit.ValidationError
	if errors.As(err, &verr) {
		status = http.StatusUnprocessableEntity
		detail.Code = "validation_error"
		detail.Message = "Validation failed"
		if len(verr) > 0 {
			detail.Details = make(map[string][]string, len(verr))
			maps.Copy(detail.Details, verr)
		}
	}

	return status, detail
}

// NewErrorHandler builds the default error handler: classify, log with
// request context, render a JSON error body. Client errors log at warn,
// server errors at error.
func NewErrorHandler(log *slog.Logger) ErrorHandler {
	if log == nil {
		log = slog.Default()
	}

	return func(w http.ResponseWriter, r *http.Request, err error) {
		status, detail := Classify(err)

		level := slog.LevelError
		if status < http.StatusInternalServerError {
			level = slog.LevelWarn
		}
		log.LogAttrs(r.Context(), level, "request failed",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Int("status", status),
			slog.String("error", err.Error()),
		)

		if werr := writeJSON(w, status, errorBody{Error: detail}); werr != nil {
			log.LogAttrs(r.Context(), slog.LevelError, "failed to render error response",
				slog.String("error", werr.Error()),
			)
		}
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) error {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(v)
}
