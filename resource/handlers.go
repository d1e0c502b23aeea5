package resource

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/crudkit/paginate"
	"github.com/dmitrymomot/crudkit/processor"
	"github.com/dmitrymomot/crudkit/serializer"
)

// handleCreate deserializes and validates the body, runs the create command,
// and answers 201 with the serialized result. When the result payload
// carries the configured location field as a string, it becomes the
// Location header.
func (rs *Resource[T]) handleCreate(w http.ResponseWriter, r *http.Request) {
	payload, err := rs.ser.Decode(r, false)
	if err != nil {
		rs.onError(w, r, err)
		return
	}

	cmd := rs.create(rs.newRequest(r, payload, false), rs.caps)
	out, err := cmd.Execute(r.Context())
	if err != nil {
		rs.onError(w, r, err)
		return
	}

	body, err := rs.ser.Encode(out)
	if err != nil {
		rs.onError(w, r, err)
		return
	}

	if loc, ok := body[rs.locationField].(string); ok && loc != "" {
		w.Header().Set("Location", loc)
	}
	if err := writeJSON(w, http.StatusCreated, body); err != nil {
		rs.onError(w, r, err)
	}
}

// handleList runs the collection query and renders either a page envelope
// or a bare array, depending on the result variant.
func (rs *Resource[T]) handleList(w http.ResponseWriter, r *http.Request) {
	query := rs.list(rs.newRequest(r, nil, false), rs.caps)
	res, err := query.Execute(r.Context())
	if err != nil {
		rs.onError(w, r, err)
		return
	}
	rs.renderResult(w, r, res)
}

// handleRetrieve runs the single-object query.
func (rs *Resource[T]) handleRetrieve(w http.ResponseWriter, r *http.Request) {
	query := rs.retrieve(rs.newRequest(r, nil, false), rs.caps)
	res, err := query.Execute(r.Context())
	if err != nil {
		rs.onError(w, r, err)
		return
	}
	rs.renderResult(w, r, res)
}

// handleUpdate serves PUT (full) and PATCH (partial). Partial validation
// skips required-field checks for absent fields, and the partial flag
// travels into the command through the processor.Request.
func (rs *Resource[T]) handleUpdate(partial bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		payload, err := rs.ser.Decode(r, partial)
		if err != nil {
			rs.onError(w, r, err)
			return
		}

		cmd := rs.update(rs.newRequest(r, payload, partial), rs.caps)
		out, err := cmd.Execute(r.Context())
		if err != nil {
			rs.onError(w, r, err)
			return
		}

		body, err := rs.ser.Encode(out)
		if err != nil {
			rs.onError(w, r, err)
			return
		}
		if err := writeJSON(w, http.StatusOK, body); err != nil {
			rs.onError(w, r, err)
		}
	}
}

// handleDestroy runs the destroy command, discards its result, and answers
// 204 with an empty body.
func (rs *Resource[T]) handleDestroy(w http.ResponseWriter, r *http.Request) {
	cmd := rs.destroy(rs.newRequest(r, nil, false), rs.caps)
	if _, err := cmd.Execute(r.Context()); err != nil {
		rs.onError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// renderResult maps a query result variant onto the wire: single objects
// and bare collections render as-is, pages render as an envelope with
// pagination metadata.
func (rs *Resource[T]) renderResult(w http.ResponseWriter, r *http.Request, res processor.Result[T]) {
	switch res.Kind() {
	case processor.KindPage:
		page, err := paginate.Remap(res.Page(), rs.ser.Encode)
		if err != nil {
			rs.onError(w, r, err)
			return
		}
		if err := writeJSON(w, http.StatusOK, page); err != nil {
			rs.onError(w, r, err)
		}

	case processor.KindCollection:
		items := make([]serializer.Payload, 0, len(res.Items()))
		for _, item := range res.Items() {
			body, err := rs.ser.Encode(item)
			if err != nil {
				rs.onError(w, r, err)
				return
			}
			items = append(items, body)
		}
		if err := writeJSON(w, http.StatusOK, items); err != nil {
			rs.onError(w, r, err)
		}

	default:
		body, err := rs.ser.Encode(res.Object())
		if err != nil {
			rs.onError(w, r, err)
			return
		}
		if err := writeJSON(w, http.StatusOK, body); err != nil {
			rs.onError(w, r, err)
		}
	}
}

// newRequest builds the immutable per-request processor context.
func (rs *Resource[T]) newRequest(r *http.Request, payload serializer.Payload, partial bool) processor.Request {
	req := processor.Request{
		PathParams:  pathParams(r),
		QueryParams: r.URL.Query(),
		Payload:     payload,
		Partial:     partial,
	}
	if rs.principal != nil {
		req.Principal = rs.principal(r)
	}
	return req
}

func pathParams(r *http.Request) map[string]string {
	params := map[string]string{}
	rctx := chi.RouteContext(r.Context())
	if rctx == nil {
		return params
	}
	for i, key := range rctx.URLParams.Keys {
		if key == "*" {
			continue
		}
		params[key] = rctx.URLParams.Values[i]
	}
	return params
}
