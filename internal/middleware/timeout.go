package middleware

import (
	"net/http"
	"time"
)

// Timeout bounds API handlers. On expiry the client gets a 503 carrying the
// JSON error envelope; handler headers are discarded by http.TimeoutHandler,
// so the content type is set on the outer writer up front.
func Timeout(timeout time.Duration) func(http.Handler) http.Handler {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	message := string(errorEnvelope("REQUEST_TIMEOUT", "request timed out"))

	return func(next http.Handler) http.Handler {
		limited := http.TimeoutHandler(next, timeout, message)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			limited.ServeHTTP(w, r)
		})
	}
}
