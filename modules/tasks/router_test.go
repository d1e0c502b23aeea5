package tasks_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/crudkit/modules/tasks"
)

func newTasksServer(t *testing.T, store tasks.Store) *httptest.Server {
	t.Helper()
	r := chi.NewRouter()
	r.Mount("/tasks", tasks.Router(tasks.RouterOptions{Store: store, PageSize: 2}))
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func doJSON(t *testing.T, method, url, body string) *http.Response {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func TestRouterCreate(t *testing.T) {
	t.Parallel()

	t.Run("creates a pending task", func(t *testing.T) {
		t.Parallel()
		srv := newTasksServer(t, tasks.NewMemoryStore())

		resp := doJSON(t, http.MethodPost, srv.URL+"/tasks", `{"title":"buy milk","notes":"2l"}`)
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		body := decodeBody(t, resp)
		assert.Equal(t, "buy milk", body["title"])
		assert.Equal(t, "2l", body["notes"])
		assert.Equal(t, tasks.StatusPending, body["status"])
		assert.NotEmpty(t, body["id"])
		assert.Equal(t, "/tasks/"+body["id"].(string), resp.Header.Get("Location"))
	})

	t.Run("missing title is a validation error", func(t *testing.T) {
		t.Parallel()
		srv := newTasksServer(t, tasks.NewMemoryStore())

		resp := doJSON(t, http.MethodPost, srv.URL+"/tasks", `{"notes":"no title"}`)
		require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

		body := decodeBody(t, resp)
		errObj := body["error"].(map[string]any)
		assert.Equal(t, "validation_error", errObj["code"])
		details := errObj["details"].(map[string]any)
		assert.Contains(t, details, "title")
	})

	t.Run("unknown status is rejected", func(t *testing.T) {
		t.Parallel()
		srv := newTasksServer(t, tasks.NewMemoryStore())

		resp := doJSON(t, http.MethodPost, srv.URL+"/tasks", `{"title":"x","status":"someday"}`)
		require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	})
}

func TestRouterList(t *testing.T) {
	t.Parallel()

	seed := func(t *testing.T) (tasks.Store, []tasks.Task) {
		store := tasks.NewMemoryStore()
		var seeded []tasks.Task
		for _, spec := range []struct{ title, status string }{
			{"alpha", tasks.StatusPending},
			{"beta", tasks.StatusDone},
			{"gamma report", tasks.StatusPending},
		} {
			task := tasks.NewTask(spec.title, "")
			task.Status = spec.status
			require.NoError(t, store.Insert(context.Background(), task))
			seeded = append(seeded, task)
		}
		return store, seeded
	}

	t.Run("paginated envelope", func(t *testing.T) {
		t.Parallel()
		store, _ := seed(t)
		srv := newTasksServer(t, store)

		resp := doJSON(t, http.MethodGet, srv.URL+"/tasks", "")
		require.Equal(t, http.StatusOK, resp.StatusCode)

		body := decodeBody(t, resp)
		assert.EqualValues(t, 3, body["total"])
		assert.EqualValues(t, 2, body["limit"])
		assert.EqualValues(t, 0, body["offset"])
		assert.Len(t, body["items"], 2)
	})

	t.Run("second page", func(t *testing.T) {
		t.Parallel()
		store, _ := seed(t)
		srv := newTasksServer(t, store)

		resp := doJSON(t, http.MethodGet, srv.URL+"/tasks?offset=2", "")
		require.Equal(t, http.StatusOK, resp.StatusCode)

		body := decodeBody(t, resp)
		assert.EqualValues(t, 2, body["offset"])
		assert.Len(t, body["items"], 1)
	})

	t.Run("filter by status", func(t *testing.T) {
		t.Parallel()
		store, _ := seed(t)
		srv := newTasksServer(t, store)

		resp := doJSON(t, http.MethodGet, srv.URL+"/tasks?status=done", "")
		require.Equal(t, http.StatusOK, resp.StatusCode)

		body := decodeBody(t, resp)
		assert.EqualValues(t, 1, body["total"])
		items := body["items"].([]any)
		require.Len(t, items, 1)
		assert.Equal(t, "beta", items[0].(map[string]any)["title"])
	})

	t.Run("search narrows by title", func(t *testing.T) {
		t.Parallel()
		store, _ := seed(t)
		srv := newTasksServer(t, store)

		resp := doJSON(t, http.MethodGet, srv.URL+"/tasks?q=REPORT", "")
		require.Equal(t, http.StatusOK, resp.StatusCode)

		body := decodeBody(t, resp)
		items := body["items"].([]any)
		require.Len(t, items, 1)
		assert.Equal(t, "gamma report", items[0].(map[string]any)["title"])
	})
}

func TestRouterItem(t *testing.T) {
	t.Parallel()

	seedOne := func(t *testing.T) (tasks.Store, tasks.Task) {
		store := tasks.NewMemoryStore()
		task := tasks.NewTask("walk dog", "evening")
		require.NoError(t, store.Insert(context.Background(), task))
		return store, task
	}

	t.Run("retrieve", func(t *testing.T) {
		t.Parallel()
		store, task := seedOne(t)
		srv := newTasksServer(t, store)

		resp := doJSON(t, http.MethodGet, srv.URL+task.URL, "")
		require.Equal(t, http.StatusOK, resp.StatusCode)
		body := decodeBody(t, resp)
		assert.Equal(t, task.ID, body["id"])
		assert.Equal(t, "walk dog", body["title"])
	})

	t.Run("retrieve missing", func(t *testing.T) {
		t.Parallel()
		store, _ := seedOne(t)
		srv := newTasksServer(t, store)

		resp := doJSON(t, http.MethodGet, srv.URL+"/tasks/does-not-exist", "")
		require.Equal(t, http.StatusNotFound, resp.StatusCode)
		body := decodeBody(t, resp)
		assert.Equal(t, "not_found", body["error"].(map[string]any)["code"])
	})

	t.Run("put replaces optional fields", func(t *testing.T) {
		t.Parallel()
		store, task := seedOne(t)
		srv := newTasksServer(t, store)

		resp := doJSON(t, http.MethodPut, srv.URL+task.URL, `{"title":"walk dog twice"}`)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		body := decodeBody(t, resp)
		assert.Equal(t, "walk dog twice", body["title"])
		assert.Equal(t, "", body["notes"])
		assert.Equal(t, tasks.StatusPending, body["status"])
	})

	t.Run("put requires title", func(t *testing.T) {
		t.Parallel()
		store, task := seedOne(t)
		srv := newTasksServer(t, store)

		resp := doJSON(t, http.MethodPut, srv.URL+task.URL, `{"notes":"only notes"}`)
		require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	})

	t.Run("patch keeps untouched fields", func(t *testing.T) {
		t.Parallel()
		store, task := seedOne(t)
		srv := newTasksServer(t, store)

		resp := doJSON(t, http.MethodPatch, srv.URL+task.URL, `{"status":"done"}`)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		body := decodeBody(t, resp)
		assert.Equal(t, "walk dog", body["title"])
		assert.Equal(t, "evening", body["notes"])
		assert.Equal(t, tasks.StatusDone, body["status"])
	})

	t.Run("delete", func(t *testing.T) {
		t.Parallel()
		store, task := seedOne(t)
		srv := newTasksServer(t, store)

		resp := doJSON(t, http.MethodDelete, srv.URL+task.URL, "")
		require.Equal(t, http.StatusNoContent, resp.StatusCode)

		resp = doJSON(t, http.MethodGet, srv.URL+task.URL, "")
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}
