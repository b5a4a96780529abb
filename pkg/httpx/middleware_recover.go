package httpx

import (
	"net/http"

	"github.com/traintrack-app/traintrack/pkg/slogx"
)

// RecoverMiddleware is the single top-level fault handler. Panics are logged
// with full detail server-side and surface to the client only as a generic
// SERVER_ERROR body.
func RecoverMiddleware() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					slogx.FromContext(r.Context()).Error("panic recovered",
						"panic", rec,
						"path", r.URL.Path,
					)
					WriteJSON(w, http.StatusInternalServerError, map[string]any{
						"success": false,
						"error":   "Something went wrong",
						"code":    "SERVER_ERROR",
					})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
