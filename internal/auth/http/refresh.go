package http

import (
	"errors"
	"net/http"

	"github.com/traintrack-app/traintrack/internal/auth/service"
	"github.com/traintrack-app/traintrack/pkg/httpx"
	"github.com/traintrack-app/traintrack/pkg/slogx"
)

// RefreshHandler serves POST /v1/auth/refresh-token. The refresh token
// arrives in the HTTP-only cookie, never in the body.
type RefreshHandler struct {
	Sessions *service.SessionService
	Users    *service.UserService
}

func (h *RefreshHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	cookie, err := r.Cookie(RefreshCookieName)
	if err != nil || cookie.Value == "" {
		ErrNoToken.WriteError(w)
		return
	}

	user, access, err := h.Sessions.Refresh(ctx, cookie.Value)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidToken):
			ErrInvalidRefreshToken.WriteError(w)
		case errors.Is(err, service.ErrUserNotFound):
			ErrUserNotFound.WriteError(w)
		default:
			log.Error("token refresh failed", "err", err)
			ErrServerError.WriteError(w)
		}
		return
	}

	name := ""
	if profile, err := h.Users.GetProfile(ctx, user.ID); err == nil {
		name = profile.Name
	}

	httpx.WriteJSON(w, http.StatusOK, authResponse{
		Success: true,
		User:    newUserView(user, name),
		Token:   access,
	})
}
