package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
)

type logContextKey string

const loggerKey = logContextKey("logger")

// probePaths are polled by the profile's supervisor; logging every scrape
// would drown the interesting lines.
var probePaths = map[string]bool{
	"/health":  true,
	"/metrics": true,
}

// statusRecorder captures the status code the handler chain wrote so the
// completion line can carry it.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (sr *statusRecorder) WriteHeader(code int) {
	sr.status = code
	sr.ResponseWriter.WriteHeader(code)
}

// Logging attaches a request-scoped logger to the context and writes one
// line per completed request. The request id is taken from X-Request-ID when
// the rendering layer supplies one, minted otherwise, and always echoed back
// so the two sides can correlate their logs.
func Logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

		start := time.Now()

		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}

		w.Header().Set("X-Request-ID", requestID)

		requestLogger := slog.Default().With(
			slog.String("requestId", requestID),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("remoteAddr", r.RemoteAddr),
		)

		ctx := context.WithValue(r.Context(), loggerKey, requestLogger)

		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(recorder, r.WithContext(ctx))

		if probePaths[r.URL.Path] {
			return
		}

		requestLogger.Info("Request handled",
			slog.Int("status", recorder.status),
			slog.Duration("elapsed", time.Since(start)))
	})
}

// LoggerFromContext returns the request-scoped logger, or the process
// default outside a request.
func LoggerFromContext(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(loggerKey).(*slog.Logger); ok {
		return logger
	}

	return slog.Default()
}
