// Package serializer validates request bodies into payloads and shapes
// domain objects into response payloads.
//
// Schemas are declared statically per endpoint rather than assembled at
// runtime: each Field names a body key, whether it is required, and the
// value rules it must satisfy. Decode aggregates failures into a
// crudkit.ValidationError so clients get field-level detail in one response.
package serializer

import "net/http"

// Payload is a serialized representation of a domain object or of a
// validated request body.
type Payload = map[string]any

// Serializer validates and deserializes input and serializes output for one
// resource type.
type Serializer[T any] interface {
	// Decode parses and validates the request body. When partial is true,
	// required-field checks are skipped for fields absent from the payload;
	// rules still apply to fields that are present.
	Decode(r *http.Request, partial bool) (Payload, error)

	// Encode converts a domain object into a response payload.
	Encode(obj T) (Payload, error)
}
