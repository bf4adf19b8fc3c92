// Package middleware provides the HTTP middleware chain of the API server.
package middleware

import (
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/mmynk/serralheria/internal/metrics"
)

// statusRecorder captures the status code written by the wrapped handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// Logging logs every request and records request metrics.
// Server errors are logged at error level, client errors at warn level.
func Logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		duration := time.Since(start)
		route := r.Pattern
		if route == "" {
			route = "unmatched"
		}
		metrics.HTTPRequests.WithLabelValues(route, r.Method, strconv.Itoa(rec.status)).Inc()
		metrics.HTTPDuration.WithLabelValues(route).Observe(duration.Seconds())

		attrs := []any{
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"remote_addr", r.RemoteAddr,
			"duration_ms", duration.Milliseconds(),
		}
		switch {
		case rec.status >= 500:
			slog.Error("Request failed", attrs...)
		case rec.status >= 400:
			slog.Warn("Request rejected", attrs...)
		default:
			slog.Info("Request completed", attrs...)
		}
	})
}

// CORS allows browser access from allowedOrigin only. Same-origin requests and
// requests without an Origin header pass through untouched. Other origins may still
// issue GET and HEAD, whose responses the browser withholds without the CORS headers;
// any other method from them is refused. An empty allowedOrigin admits no foreign origin.
func CORS(allowedOrigin string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			switch {
			case origin == "" || sameOrigin(origin, r.Host):
				next.ServeHTTP(w, r)

			case allowedOrigin != "" && origin == allowedOrigin:
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Add("Vary", "Origin")
				w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
				w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
				w.Header().Set("Access-Control-Expose-Headers", "Content-Disposition")
				if r.Method == http.MethodOptions {
					w.WriteHeader(http.StatusNoContent)
					return
				}
				next.ServeHTTP(w, r)

			case r.Method == http.MethodGet || r.Method == http.MethodHead:
				next.ServeHTTP(w, r)

			default:
				slog.Warn("Cross-origin request refused", "origin", origin, "method", r.Method, "path", r.URL.Path)
				http.Error(w, "origin not allowed", http.StatusForbidden)
			}
		})
	}
}

func sameOrigin(origin, host string) bool {
	u, err := url.Parse(origin)
	return err == nil && u.Host != "" && u.Host == host
}
