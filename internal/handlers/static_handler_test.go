package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStaticMux(t *testing.T) (*StaticHandler, *http.ServeMux) {
	t.Helper()
	handler, err := NewStaticHandler()
	require.NoError(t, err)
	mux := http.NewServeMux()
	handler.RegisterRoutes(mux)
	return handler, mux
}

func TestServeCSS_ETag(t *testing.T) {
	handler, mux := newStaticMux(t)
	require.NotEmpty(t, handler.css.etag, "ETag should be calculated during initialization")

	t.Run("Initial request returns ETag", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/static/css/app.css", nil)
		w := httptest.NewRecorder()

		mux.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "text/css; charset=utf-8", w.Header().Get("Content-Type"))
		assert.Equal(t, handler.css.etag, w.Header().Get("ETag"))
		assert.NotEmpty(t, w.Body.Bytes(), "CSS content should be present")
	})

	t.Run("ETag is properly quoted", func(t *testing.T) {
		etag := handler.css.etag
		assert.True(t, len(etag) >= 2 && etag[0] == '"' && etag[len(etag)-1] == '"',
			"ETag should be quoted as per RFC 7232")
	})

	t.Run("Request with matching ETag returns 304", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/static/css/app.css", nil)
		req.Header.Set("If-None-Match", handler.css.etag)
		w := httptest.NewRecorder()

		mux.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotModified, w.Code)
		assert.Empty(t, w.Body.Bytes(), "No content should be returned for 304")
		assert.Equal(t, handler.css.etag, w.Header().Get("ETag"), "ETag header should be present in 304 response per RFC 7232")
	})

	t.Run("Request with weak matching ETag returns 304", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/static/css/app.css", nil)
		req.Header.Set("If-None-Match", "W/"+handler.css.etag)
		w := httptest.NewRecorder()

		mux.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotModified, w.Code)
	})

	t.Run("Request with wildcard ETag returns 304", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/static/css/app.css", nil)
		req.Header.Set("If-None-Match", "*")
		w := httptest.NewRecorder()

		mux.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotModified, w.Code)
		assert.Empty(t, w.Body.Bytes())
	})

	t.Run("Request with multiple ETags including matching one returns 304", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/static/css/app.css", nil)
		req.Header.Set("If-None-Match", `"other-etag", `+handler.css.etag+`, "yet-another"`)
		w := httptest.NewRecorder()

		mux.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotModified, w.Code)
	})

	t.Run("Request with non-matching ETag returns full content", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/static/css/app.css", nil)
		req.Header.Set("If-None-Match", `"invalid-etag"`)
		w := httptest.NewRecorder()

		mux.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.NotEmpty(t, w.Body.Bytes())
		assert.Equal(t, "public, max-age=43200, must-revalidate", w.Header().Get("Cache-Control"))
	})
}

func TestServeFavicon(t *testing.T) {
	handler, mux := newStaticMux(t)

	for _, path := range []string{"/favicon.ico", "/static/images/favicon.svg"} {
		t.Run(path, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, path, nil)
			w := httptest.NewRecorder()

			mux.ServeHTTP(w, req)

			assert.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, "image/svg+xml", w.Header().Get("Content-Type"))
			assert.Equal(t, handler.favicon.etag, w.Header().Get("ETag"))
			assert.Contains(t, w.Body.String(), "<svg")
		})
	}
}

func TestParseETags(t *testing.T) {
	assert.Equal(t, []string{`"a"`, `"b"`}, parseETags(` "a" ,, "b"`))
	assert.Empty(t, parseETags(""))
}
