package binder_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/crudkit/binder"
)

func TestPath(t *testing.T) {
	t.Parallel()

	type profileRequest struct {
		UserID   string `path:"id"`
		Revision int    `path:"rev"`
		Skipped  string `path:"-"`
	}

	t.Run("binds with chi URLParam", func(t *testing.T) {
		t.Parallel()

		var req profileRequest
		r := chi.NewRouter()
		r.Get("/users/{id}/revisions/{rev}", func(w http.ResponseWriter, rq *http.Request) {
			require.NoError(t, binder.Path(chi.URLParam)(rq, &req))
			w.WriteHeader(http.StatusOK)
		})

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/users/u-42/revisions/7", nil))

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "u-42", req.UserID)
		assert.Equal(t, 7, req.Revision)
		assert.Empty(t, req.Skipped)
	})

	t.Run("missing params keep zero values", func(t *testing.T) {
		t.Parallel()

		extractor := func(r *http.Request, name string) string { return "" }
		var req profileRequest
		require.NoError(t, binder.Path(extractor)(httptest.NewRequest(http.MethodGet, "/", nil), &req))
		assert.Empty(t, req.UserID)
		assert.Zero(t, req.Revision)
	})

	t.Run("nil extractor", func(t *testing.T) {
		t.Parallel()

		var req profileRequest
		err := binder.Path(nil)(httptest.NewRequest(http.MethodGet, "/", nil), &req)
		require.Error(t, err)
		assert.ErrorIs(t, err, binder.ErrInvalidPath)
	})

	t.Run("invalid value for typed field", func(t *testing.T) {
		t.Parallel()

		extractor := func(r *http.Request, name string) string {
			if name == "rev" {
				return "not-a-number"
			}
			return ""
		}
		var req profileRequest
		err := binder.Path(extractor)(httptest.NewRequest(http.MethodGet, "/", nil), &req)
		require.Error(t, err)
		assert.ErrorIs(t, err, binder.ErrInvalidPath)
	})
}
