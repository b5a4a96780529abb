package http

import (
	"errors"
	"net/http"

	"github.com/traintrack-app/traintrack/internal/auth/service"
	"github.com/traintrack-app/traintrack/pkg/httpx"
	"github.com/traintrack-app/traintrack/pkg/slogx"
)

// LogoutHandler serves POST /v1/auth/logout, behind the auth gate. Tokens
// are stateless, so logout only clears the client-side cookie; previously
// issued tokens remain valid until their natural expiry.
type LogoutHandler struct {
	Sessions     *service.SessionService
	SecureCookie bool
}

func (h *LogoutHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	userID := httpx.UserIDFromCtx(ctx)
	if userID == "" {
		ErrServerError.WriteError(w)
		return
	}

	if _, err := h.Sessions.Logout(ctx, userID); err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			ErrUserNotFound.WriteError(w)
			return
		}
		log.Error("logout failed", "err", err)
		ErrServerError.WriteError(w)
		return
	}

	clearRefreshCookie(w, h.SecureCookie)
	httpx.WriteJSON(w, http.StatusOK, messageResponse{
		Success: true,
		Message: "Logged out successfully",
	})
}
