package serializer

import (
	"fmt"
	"io"
	"net/http"
	"strings"

	jsoniter "github.com/json-iterator/go"

	"github.com/dmitrymomot/crudkit"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// maxBodyBytes bounds request bodies accepted by Decode.
const maxBodyBytes = 1 << 20

// Field declares one body key of a schema.
type Field struct {
	Name     string
	Required bool
	Rules    []Rule
}

// Schema is a static Serializer implementation: Decode keeps only declared
// fields and validates them, Encode marshals the domain object through its
// json struct tags.
type Schema[T any] struct {
	fields []Field
}

// New declares a schema from its fields.
func New[T any](fields ...Field) *Schema[T] {
	return &Schema[T]{fields: fields}
}

// Decode parses the JSON body and validates it against the declared fields.
// Unknown body keys are dropped, not rejected. Failures are aggregated into
// a crudkit.ValidationError; transport-level problems surface as
// crudkit.HTTPError values (415 for a wrong content type, 400 for malformed
// JSON).
func (s *Schema[T]) Decode(r *http.Request, partial bool) (Payload, error) {
	if err := requireJSON(r); err != nil {
		return nil, err
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes+1))
	if err != nil {
		return nil, fmt.Errorf("%w: reading body: %v", crudkit.ErrBadRequest, err)
	}
	if int64(len(body)) > maxBodyBytes {
		return nil, fmt.Errorf("%w: body exceeds %d bytes", crudkit.ErrBadRequest, maxBodyBytes)
	}

	raw := map[string]any{}
	if len(body) > 0 {
		if err := json.Unmarshal(body, &raw); err != nil {
			return nil, fmt.Errorf("%w: invalid JSON: %v", crudkit.ErrBadRequest, err)
		}
	}

	out := Payload{}
	verr := crudkit.NewValidationError()
	for _, f := range s.fields {
		value, present := raw[f.Name]
		if !present {
			if f.Required && !partial {
				verr.Add(f.Name, "this field is required")
			}
			continue
		}

		ok := true
		for _, rule := range f.Rules {
			if !rule.Check(value) {
				verr.Add(f.Name, rule.Message)
				ok = false
			}
		}
		if ok {
			out[f.Name] = value
		}
	}

	if !verr.IsEmpty() {
		return nil, verr
	}
	return out, nil
}

// Encode marshals the object through its json tags into a Payload.
func (s *Schema[T]) Encode(obj T) (Payload, error) {
	b, err := json.Marshal(obj)
	if err != nil {
		return nil, fmt.Errorf("serializer: encode: %w", err)
	}

	var p Payload
	if err := json.Unmarshal(b, &p); err != nil {
		return nil, fmt.Errorf("serializer: encode: %w", err)
	}
	return p, nil
}

func requireJSON(r *http.Request) error {
	contentType := r.Header.Get("Content-Type")
	if contentType == "" {
		return fmt.Errorf("%w: expected application/json", crudkit.ErrUnsupportedMediaType)
	}

	mediaType := contentType
	if idx := strings.Index(contentType, ";"); idx != -1 {
		mediaType = strings.TrimSpace(contentType[:idx])
	}
	if mediaType != "application/json" {
		return fmt.Errorf("%w: got %s, expected application/json", crudkit.ErrUnsupportedMediaType, mediaType)
	}
	return nil
}
