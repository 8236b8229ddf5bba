package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"

	"auth-system/internal/requestid"
)

// Recovery sits outside Logging, so the request id is read back from the
// response header Logging sets rather than from the request context.
func Recovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if recovered := recover(); recovered != nil {
				if recovered == http.ErrAbortHandler {
					panic(recovered)
				}

				id := w.Header().Get(requestid.Header)
				if id == "" {
					id = requestid.From(r.Context())
				}

				slog.ErrorContext(r.Context(), "panic recovered",
					"request_id", id,
					"method", r.Method,
					"path", r.URL.Path,
					"error", fmt.Sprintf("%v", recovered),
					"stack", string(debug.Stack()),
				)
				writeErrorJSON(w, http.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
			}
		}()

		next.ServeHTTP(w, r)
	})
}
