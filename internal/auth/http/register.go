package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/traintrack-app/traintrack/internal/auth/service"
	"github.com/traintrack-app/traintrack/pkg/httpx"
	"github.com/traintrack-app/traintrack/pkg/slogx"
)

// RegisterHandler serves POST /v1/auth/register.
type RegisterHandler struct {
	Sessions     *service.SessionService
	SecureCookie bool
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *RegisterHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		ErrInvalidBody.WriteError(w)
		return
	}

	details := map[string]string{}
	if req.Name == "" {
		details["name"] = "name is required"
	}
	if msg := validateEmail(req.Email); msg != "" {
		details["email"] = msg
	}
	if msg := validatePassword(req.Password); msg != "" {
		details["password"] = msg
	}
	if len(details) > 0 {
		writeValidationError(w, details)
		return
	}

	user, pair, err := h.Sessions.Register(ctx, req.Name, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			ErrUserExists.WriteError(w)
			return
		}
		log.Error("register failed", "err", err)
		ErrServerError.WriteError(w)
		return
	}

	setRefreshCookie(w, pair.RefreshToken, pair.RefreshTTL, h.SecureCookie)
	httpx.WriteJSON(w, http.StatusCreated, authResponse{
		Success: true,
		User:    newUserView(user, req.Name),
		Token:   pair.AccessToken,
	})
}
