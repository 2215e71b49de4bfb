package middleware

import (
	"net/http"
	"slices"
	"strings"
)

// ExposedHeaders are readable by browser scripts on cross-origin responses.
var ExposedHeaders = []string{
	"Content-Disposition",
	"X-Request-ID",
	"X-Custom-Demo",
	"X-Endpoint-Name",
	"X-Server-Time",
}

// CORS allows the listed origins; "*" allows any. Credentials are only
// advertised when the origin is echoed back, never alongside a wildcard.
func CORS(allowedOrigins []string) func(http.Handler) http.Handler {
	wildcard := slices.Contains(allowedOrigins, "*")
	exposed := strings.Join(ExposedHeaders, ", ")

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")

			switch {
			case wildcard:
				w.Header().Set("Access-Control-Allow-Origin", "*")
			case origin != "" && slices.Contains(allowedOrigins, origin):
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Set("Access-Control-Allow-Credentials", "true")
				w.Header().Add("Vary", "Origin")
			}

			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")

			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With, X-Request-ID")

			w.Header().Set("Access-Control-Expose-Headers", exposed)

			w.Header().Set("Access-Control-Max-Age", "86400")

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
