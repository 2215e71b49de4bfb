package logger

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

const RequestIDHeader = "X-Request-ID"

type responseWriter struct {
	http.ResponseWriter
	status int
	bytes  int
}

// RequestID tags the request with an ID, taken from the incoming header when
// present, and stores a logger carrying it in the context.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.New().String()
		}

		w.Header().Set(RequestIDHeader, requestID)
		ctx := WithRequestID(r.Context(), requestID)

		logger := slog.Default().With(slog.String("request_id", requestID))
		ctx = WithLogger(ctx, logger)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		log := FromContext(r.Context())
		log.Debug("incoming HTTP request",
			slog.String("http.method", r.Method),
			slog.String("http.path", r.URL.Path),
			slog.String("http.remote_addr", r.RemoteAddr),
			slog.String("http.user_agent", r.UserAgent()),
			slog.String("http.content_type", r.Header.Get("Content-Type")),
		)

		wrapped := &responseWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(wrapped, r)

		logLevel := slog.LevelInfo
		if wrapped.status >= http.StatusInternalServerError {
			logLevel = slog.LevelError
		} else if wrapped.status >= http.StatusBadRequest {
			logLevel = slog.LevelWarn
		}

		attrs := []slog.Attr{
			slog.String("http.method", r.Method),
			slog.String("http.path", r.URL.Path),
			slog.Int("http.status", wrapped.status),
			slog.Int64("http.duration_ms", time.Since(start).Milliseconds()),
			slog.Int("http.bytes", wrapped.bytes),
			slog.String("http.response_type", wrapped.Header().Get("Content-Type")),
		}
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			attrs = append(attrs, slog.String("http.route", rctx.RoutePattern()))
		}

		log.LogAttrs(r.Context(), logLevel, "HTTP request completed", attrs...)
	})
}

func (rw *responseWriter) WriteHeader(status int) {
	rw.status = status
	rw.ResponseWriter.WriteHeader(status)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	n, err := rw.ResponseWriter.Write(b)
	rw.bytes += n
	return n, err
}

// Unwrap lets http.ResponseController reach the underlying writer.
func (rw *responseWriter) Unwrap() http.ResponseWriter {
	return rw.ResponseWriter
}

func (rw *responseWriter) Flush() {
	if f, ok := rw.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}
