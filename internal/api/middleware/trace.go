package middleware

import (
	"log/slog"
	"net/http"

	"github.com/quizgen/quizgen-api/internal/api/shared"
)

// NewTraceMiddleware returns middleware that attaches a trace ID to each
// request. An inbound X-Trace-ID header is honored when present; otherwise a
// new ID is generated. The ID is stored in the request context and echoed in
// the response header so clients can correlate logs.
func NewTraceMiddleware(logger *slog.Logger) func(http.Handler) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}
	log := logger.With(slog.String("component", "trace_middleware"))

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			traceID := r.Header.Get("X-Trace-ID")

			ctx, traceID := shared.SetTraceID(r.Context(), traceID)

			w.Header().Set("X-Trace-ID", traceID)

			log.DebugContext(ctx, "request trace started",
				slog.String("trace_id", traceID),
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path))

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
