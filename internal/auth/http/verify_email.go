package http

import (
	"errors"
	"net/http"

	"github.com/traintrack-app/traintrack/internal/auth/service"
	"github.com/traintrack-app/traintrack/pkg/httpx"
	"github.com/traintrack-app/traintrack/pkg/slogx"
)

// VerifyEmailHandler serves GET /v1/auth/verify-email?token=...
type VerifyEmailHandler struct {
	Sessions *service.SessionService
}

func (h *VerifyEmailHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	token := r.URL.Query().Get("token")
	if token == "" {
		ErrInvalidVerifyToken.WriteError(w)
		return
	}

	if _, err := h.Sessions.VerifyEmail(ctx, token); err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidToken):
			ErrInvalidVerifyToken.WriteError(w)
		case errors.Is(err, service.ErrUserNotFound):
			ErrUserNotFound.WriteError(w)
		case errors.Is(err, service.ErrAlreadyVerified):
			ErrAlreadyVerified.WriteError(w)
		default:
			log.Error("email verification failed", "err", err)
			ErrServerError.WriteError(w)
		}
		return
	}

	httpx.WriteJSON(w, http.StatusOK, messageResponse{
		Success: true,
		Message: "Email verified successfully",
	})
}
