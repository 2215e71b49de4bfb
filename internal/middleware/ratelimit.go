package middleware

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/httprate"
	"github.com/ilkin0/mimedemo/internal/config"
	"github.com/ilkin0/mimedemo/internal/logger"
)

// UploadLimiter throttles the upload routes per client IP.
func UploadLimiter(cfg config.RateLimitConfig) func(http.Handler) http.Handler {
	return createLimiter(cfg.UploadLimit, cfg.TimeWindow)
}

func createLimiter(limit int, window time.Duration) func(http.Handler) http.Handler {
	return httprate.Limit(
		limit,
		window,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(rateLimitExceededHandler(window)),
	)
}

func rateLimitExceededHandler(retryAfter time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())
		log.Warn("rate limit exceeded",
			slog.String("ip", r.RemoteAddr),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("user_agent", r.UserAgent()),
		)

		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Retry-After", strconv.Itoa(int(retryAfter.Seconds())))
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"success":false,"message":"Rate limit exceeded. Please try again later."}`))
	}
}
