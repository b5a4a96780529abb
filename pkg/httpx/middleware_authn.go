package httpx

import (
	"context"
	"net/http"
	"strings"

	"github.com/traintrack-app/traintrack/pkg/jwtx"
	"github.com/traintrack-app/traintrack/pkg/slogx"
)

// Auth gate error codes. These are part of the wire contract and must stay
// stable for clients.
const (
	CodeNoToken      = "AUTH003"
	CodeInvalidToken = "AUTH004"
)

// AuthnMiddleware verifies the bearer access token and injects the
// authenticated identity into request context. It never touches the user
// store; handlers that need fresher data look it up themselves.
func AuthnMiddleware(v jwtx.Verifier) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := slogx.FromContext(ctx)

			authz := r.Header.Get("Authorization")
			if authz == "" || !strings.HasPrefix(authz, "Bearer ") {
				writeBearerError(w, CodeNoToken, "No token provided")
				return
			}
			raw := strings.TrimSpace(strings.TrimPrefix(authz, "Bearer"))
			if raw == "" {
				writeBearerError(w, CodeNoToken, "No token provided")
				return
			}

			claims, err := v.Verify(raw)
			if err != nil {
				// Expired, bad signature and malformed all look the same to
				// the client.
				writeBearerError(w, CodeInvalidToken, "Invalid or expired token")
				log.Warn("jwt verify failed", "err", err)
				return
			}

			// Inject into context for downstream handlers.
			ctx = contextWithAuth(ctx, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func contextWithAuth(ctx context.Context, c jwtx.Claims) context.Context {
	ctx = context.WithValue(ctx, CtxKeyUserID, c.Subject)
	ctx = context.WithValue(ctx, CtxKeyEmail, c.Email)
	ctx = context.WithValue(ctx, CtxKeyClaims, c)
	return ctx
}

func writeBearerError(w http.ResponseWriter, code, desc string) {
	// RFC 6750: a request without credentials gets a bare challenge, an
	// invalid credential gets the error attributes.
	challenge := "Bearer"
	if code != CodeNoToken {
		challenge = `Bearer error="invalid_token", error_description="` + desc + `"`
	}
	w.Header().Set("WWW-Authenticate", challenge)
	WriteJSON(w, http.StatusUnauthorized, map[string]any{
		"success": false,
		"error":   desc,
		"code":    code,
	})
}
