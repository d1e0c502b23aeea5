package crudkit

import (
	"net/url"
	"strings"
)

// ValidationError accumulates per-field validation failures. It is backed by
// url.Values so a field can carry several messages and the wire layer can
// copy the whole map straight into an error body.
type ValidationError url.Values

// NewValidationError returns an empty, ready-to-fill ValidationError.
func NewValidationError() ValidationError {
	return make(ValidationError)
}

// Add appends a message to the field's failure list.
func (e ValidationError) Add(field, message string) {
	url.Values(e).Add(field, message)
}

// Get returns the field's first message, or "" when the field passed.
func (e ValidationError) Get(field string) string {
	return url.Values(e).Get(field)
}

// Has reports whether the field failed at least one check.
func (e ValidationError) Has(field string) bool {
	return len(e[field]) > 0
}

// IsEmpty reports whether every field passed.
func (e ValidationError) IsEmpty() bool {
	return len(e) == 0
}

// Error summarizes the failures, one field per clause. Only each field's
// first message makes it into the summary; the full lists travel in the map
// itself.
func (e ValidationError) Error() string {
	if len(e) == 0 {
		return "validation failed"
	}

	parts := make([]string, 0, len(e))
	for field, messages := range e {
		if len(messages) > 0 {
			parts = append(parts, field+": "+messages[0])
		}
	}
	return "validation failed: " + strings.Join(parts, "; ")
}
