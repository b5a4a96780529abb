package http

import (
	"net/http"

	"github.com/traintrack-app/traintrack/internal/auth/service"
	"github.com/traintrack-app/traintrack/pkg/httpx"
	"github.com/traintrack-app/traintrack/pkg/slogx"
)

// MeHandler serves GET /v1/auth/me, behind the auth gate. This is the same
// identity projection downstream resource controllers consume.
type MeHandler struct {
	Users *service.UserService
}

func (h *MeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	userID := httpx.UserIDFromCtx(ctx)
	user, err := h.Users.GetUserByID(ctx, userID)
	if err != nil {
		log.Warn("failed to load user", "user_id", userID, "err", err)
		ErrUserNotFound.WriteError(w)
		return
	}

	name := ""
	if profile, err := h.Users.GetProfile(ctx, user.ID); err == nil {
		name = profile.Name
	}

	httpx.WriteJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"user":    newUserView(user, name),
	})
}
