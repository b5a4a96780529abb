package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/traintrack-app/traintrack/internal/auth/service"
	"github.com/traintrack-app/traintrack/pkg/httpx"
	"github.com/traintrack-app/traintrack/pkg/slogx"
)

// PasswordHandler serves PUT /v1/auth/password, behind the auth gate.
type PasswordHandler struct {
	Sessions *service.SessionService
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

func (h *PasswordHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req changePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		ErrInvalidBody.WriteError(w)
		return
	}

	if msg := validatePassword(req.NewPassword); msg != "" {
		writeValidationError(w, map[string]string{"newPassword": msg})
		return
	}

	userID := httpx.UserIDFromCtx(ctx)
	if err := h.Sessions.ChangePassword(ctx, userID, req.CurrentPassword, req.NewPassword); err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			ErrInvalidCredentials.WriteError(w)
		case errors.Is(err, service.ErrUserNotFound):
			ErrUserNotFound.WriteError(w)
		default:
			log.Error("password change failed", "err", err)
			ErrServerError.WriteError(w)
		}
		return
	}

	httpx.WriteJSON(w, http.StatusOK, messageResponse{
		Success: true,
		Message: "Password updated successfully",
	})
}
