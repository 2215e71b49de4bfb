package tracing

import (
	"net/http"

	"github.com/ilkin0/mimedemo/internal/logger"
	"go.opentelemetry.io/otel/attribute"
	oteltrace "go.opentelemetry.io/otel/trace"
)

// RequestAttributes tags the active server span with the request ID so traces
// and log lines can be joined. It must run after logger.RequestID.
func RequestAttributes(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if id := logger.RequestIDFromContext(r.Context()); id != "" {
			oteltrace.SpanFromContext(r.Context()).SetAttributes(attribute.String("http.request_id", id))
		}
		next.ServeHTTP(w, r)
	})
}
