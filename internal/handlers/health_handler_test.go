package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthHandler(t *testing.T) {
	s := setupTestServer(t)

	get := func() (*httptest.ResponseRecorder, HealthResponse) {
		w := s.do(httptest.NewRequest(http.MethodGet, "/healthz", nil))
		var resp HealthResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		return w, resp
	}

	t.Run("starting", func(t *testing.T) {
		w, resp := get()
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.Equal(t, "starting", resp.Status)
	})

	t.Run("ready", func(t *testing.T) {
		s.health.MarkReady()
		w, resp := get()
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "ok", resp.Status)
		assert.Equal(t, "ok", resp.Database)
		assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	})

	t.Run("database closed", func(t *testing.T) {
		require.NoError(t, s.db.Close())
		w, resp := get()
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.Equal(t, "unreachable", resp.Database)
	})

	t.Run("shutting down", func(t *testing.T) {
		s.health.MarkNotReady()
		w, _ := get()
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})
}
