package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/traintrack-app/traintrack/internal/auth/service"
	"github.com/traintrack-app/traintrack/pkg/httpx"
	"github.com/traintrack-app/traintrack/pkg/slogx"
)

// LoginHandler serves POST /v1/auth/login.
type LoginHandler struct {
	Sessions     *service.SessionService
	Users        *service.UserService
	SecureCookie bool
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		ErrInvalidBody.WriteError(w)
		return
	}
	if req.Email == "" || req.Password == "" {
		ErrInvalidCredentials.WriteError(w)
		return
	}

	user, pair, err := h.Sessions.Login(ctx, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			ErrInvalidCredentials.WriteError(w)
			return
		}
		log.Error("login failed", "err", err)
		ErrServerError.WriteError(w)
		return
	}

	setRefreshCookie(w, pair.RefreshToken, pair.RefreshTTL, h.SecureCookie)
	httpx.WriteJSON(w, http.StatusOK, authResponse{
		Success: true,
		User:    newUserView(user, h.profileName(r, user.ID)),
		Token:   pair.AccessToken,
	})
}

// profileName resolves the display name for the response body. A missing
// profile degrades to an empty name rather than failing the login.
func (h *LoginHandler) profileName(r *http.Request, userID string) string {
	profile, err := h.Users.GetProfile(r.Context(), userID)
	if err != nil {
		return ""
	}
	return profile.Name
}
