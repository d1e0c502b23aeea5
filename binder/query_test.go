package binder_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/crudkit"
	"github.com/dmitrymomot/crudkit/binder"
)

func TestQuery(t *testing.T) {
	t.Parallel()

	type searchRequest struct {
		Q        string   `query:"q"`
		Page     int      `query:"page"`
		PageSize int      `query:"page_size"`
		Tags     []string `query:"tags"`
		Active   *bool    `query:"active"`
		Score    float64  `query:"score"`
		Internal string   `query:"-"`
		Untagged string
	}

	t.Run("binds all supported kinds", func(t *testing.T) {
		t.Parallel()
		r := httptest.NewRequest(http.MethodGet,
			"/?q=term&page=2&page_size=25&tags=go,web&tags=http&active=true&score=1.5&untagged=plain", nil)

		var req searchRequest
		require.NoError(t, binder.Query()(r, &req))

		assert.Equal(t, "term", req.Q)
		assert.Equal(t, 2, req.Page)
		assert.Equal(t, 25, req.PageSize)
		assert.Equal(t, []string{"go", "web", "http"}, req.Tags)
		require.NotNil(t, req.Active)
		assert.True(t, *req.Active)
		assert.InDelta(t, 1.5, req.Score, 0.0001)
		assert.Equal(t, "plain", req.Untagged)
		assert.Empty(t, req.Internal)
	})

	t.Run("missing params keep zero values", func(t *testing.T) {
		t.Parallel()
		r := httptest.NewRequest(http.MethodGet, "/?q=only", nil)

		var req searchRequest
		require.NoError(t, binder.Query()(r, &req))

		assert.Equal(t, "only", req.Q)
		assert.Zero(t, req.Page)
		assert.Nil(t, req.Active)
		assert.Nil(t, req.Tags)
	})

	t.Run("invalid int", func(t *testing.T) {
		t.Parallel()
		r := httptest.NewRequest(http.MethodGet, "/?page=abc", nil)

		var req searchRequest
		err := binder.Query()(r, &req)
		require.Error(t, err)
		assert.ErrorIs(t, err, binder.ErrInvalidQuery)
	})

	t.Run("binding failures classify as bad request", func(t *testing.T) {
		t.Parallel()
		r := httptest.NewRequest(http.MethodGet, "/?page=abc", nil)

		var req searchRequest
		err := binder.Query()(r, &req)
		require.Error(t, err)

		var httpErr crudkit.HTTPError
		require.ErrorAs(t, err, &httpErr)
		assert.Equal(t, http.StatusBadRequest, httpErr.Code)
	})

	t.Run("form style booleans", func(t *testing.T) {
		t.Parallel()
		r := httptest.NewRequest(http.MethodGet, "/?active=on", nil)

		var req searchRequest
		require.NoError(t, binder.Query()(r, &req))
		require.NotNil(t, req.Active)
		assert.True(t, *req.Active)
	})

	t.Run("non-struct target", func(t *testing.T) {
		t.Parallel()
		r := httptest.NewRequest(http.MethodGet, "/?q=x", nil)

		var s string
		err := binder.Query()(r, &s)
		require.Error(t, err)
		assert.ErrorIs(t, err, binder.ErrInvalidQuery)
	})
}

func TestValues(t *testing.T) {
	t.Parallel()

	type pageParams struct {
		Limit  int `query:"limit"`
		Offset int `query:"offset"`
	}

	t.Run("binds from url.Values", func(t *testing.T) {
		t.Parallel()
		var p pageParams
		require.NoError(t, binder.Values(&p, "query", url.Values{
			"limit":  {"10"},
			"offset": {"40"},
		}, binder.ErrInvalidQuery))

		assert.Equal(t, 10, p.Limit)
		assert.Equal(t, 40, p.Offset)
	})

	t.Run("nil pointer target", func(t *testing.T) {
		t.Parallel()
		var p *pageParams
		err := binder.Values(p, "query", url.Values{}, binder.ErrInvalidQuery)
		require.Error(t, err)
		assert.ErrorIs(t, err, binder.ErrInvalidQuery)
	})
}
