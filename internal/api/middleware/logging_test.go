package middleware_test

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/kharidoapp/checkout-engine/internal/api/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()

	var buf bytes.Buffer

	previous := slog.Default()
	slog.SetDefault(slog.New(slog.NewJSONHandler(&buf, nil)))

	t.Cleanup(func() {
		slog.SetDefault(previous)
	})

	return &buf
}

func TestLogging(t *testing.T) {
	t.Run("Echoes A Supplied Request ID", func(t *testing.T) {
		// Arrange
		buf := captureLogs(t)

		handler := middleware.Logging(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTeapot)
		}))

		req := httptest.NewRequest("GET", "/api/v1/cart", nil)
		req.Header.Set("X-Request-ID", "req-42")
		recorder := httptest.NewRecorder()

		// Act
		handler.ServeHTTP(recorder, req)

		// Assert
		assert.Equal(t, "req-42", recorder.Header().Get("X-Request-ID"))
		assert.Contains(t, buf.String(), `"requestId":"req-42"`)
		assert.Contains(t, buf.String(), `"status":418`)
	})

	t.Run("Mints A Request ID When Absent", func(t *testing.T) {
		captureLogs(t)

		handler := middleware.Logging(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

		req := httptest.NewRequest("GET", "/api/v1/cart", nil)
		recorder := httptest.NewRecorder()

		handler.ServeHTTP(recorder, req)

		assert.NotEmpty(t, recorder.Header().Get("X-Request-ID"))
	})

	t.Run("Handlers Get The Request-Scoped Logger", func(t *testing.T) {
		captureLogs(t)

		var logger *slog.Logger

		handler := middleware.Logging(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			logger = middleware.LoggerFromContext(r.Context())
		}))

		req := httptest.NewRequest("GET", "/api/v1/orders", nil)
		handler.ServeHTTP(httptest.NewRecorder(), req)

		require.NotNil(t, logger)
		assert.NotEqual(t, slog.Default(), logger, "context carries the request logger, not the process default")
	})

	t.Run("Probe Paths Are Not Logged", func(t *testing.T) {
		buf := captureLogs(t)

		handler := middleware.Logging(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

		req := httptest.NewRequest("GET", "/health", nil)
		handler.ServeHTTP(httptest.NewRecorder(), req)

		assert.Empty(t, buf.String())
	})
}
