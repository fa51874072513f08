package middlewares_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/intake/internal"
	"github.com/dmitrymomot/intake/middlewares"
)

func okHandler(c internal.Context) error {
	return c.NoContent(http.StatusOK)
}

func TestCORS(t *testing.T) {
	t.Parallel()

	t.Run("wildcard by default", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodPost, "/api/upload", nil)
		req.Header.Set("Origin", "https://careers.example.com")
		rec := httptest.NewRecorder()

		require.NoError(t, middlewares.CORS()(okHandler)(newTestContext(rec, req)))
		require.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
		require.Equal(t, "X-Request-ID", rec.Header().Get("Access-Control-Expose-Headers"))
	})

	t.Run("no origin header", func(t *testing.T) {
		t.Parallel()

		rec := httptest.NewRecorder()
		require.NoError(t, middlewares.CORS()(okHandler)(newTestContext(rec, httptest.NewRequest(http.MethodGet, "/", nil))))
		require.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("origin list", func(t *testing.T) {
		t.Parallel()

		mw := middlewares.CORS(middlewares.WithAllowOrigins("https://a.example.com", ""))

		req := httptest.NewRequest(http.MethodPost, "/api/upload", nil)
		req.Header.Set("Origin", "https://a.example.com")
		rec := httptest.NewRecorder()
		require.NoError(t, mw(okHandler)(newTestContext(rec, req)))
		require.Equal(t, "https://a.example.com", rec.Header().Get("Access-Control-Allow-Origin"))

		req = httptest.NewRequest(http.MethodPost, "/api/upload", nil)
		req.Header.Set("Origin", "https://evil.example.com")
		rec = httptest.NewRecorder()
		require.NoError(t, mw(okHandler)(newTestContext(rec, req)))
		require.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("blank origins keep wildcard", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Origin", "https://any.example.com")
		rec := httptest.NewRecorder()
		require.NoError(t, middlewares.CORS(middlewares.WithAllowOrigins(""))(okHandler)(newTestContext(rec, req)))
		require.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("preflight short-circuits", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodOptions, "/api/upload", nil)
		req.Header.Set("Origin", "https://careers.example.com")
		req.Header.Set("Access-Control-Request-Method", http.MethodPost)
		rec := httptest.NewRecorder()

		called := false
		err := middlewares.CORS(middlewares.WithAllowCredentials())(func(internal.Context) error {
			called = true
			return nil
		})(newTestContext(rec, req))

		require.NoError(t, err)
		require.False(t, called)
		require.Equal(t, http.StatusNoContent, rec.Code)
		require.Equal(t, "https://careers.example.com", rec.Header().Get("Access-Control-Allow-Origin"))
		require.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))
		require.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), http.MethodPost)
		require.Equal(t, "43200", rec.Header().Get("Access-Control-Max-Age"))
	})
}
