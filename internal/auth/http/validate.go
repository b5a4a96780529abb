package http

import (
	"net/http"
	"net/mail"
	"strings"
	"unicode"

	"github.com/traintrack-app/traintrack/pkg/httpx"
)

// validatePassword enforces the registration password policy: at least 8
// characters with an uppercase letter, a digit and a symbol.
func validatePassword(password string) string {
	if len(password) < 8 {
		return "password must be at least 8 characters"
	}

	var hasUpper, hasDigit, hasSymbol bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsDigit(r):
			hasDigit = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			hasSymbol = true
		}
	}

	switch {
	case !hasUpper:
		return "password must contain an uppercase letter"
	case !hasDigit:
		return "password must contain a digit"
	case !hasSymbol:
		return "password must contain a symbol"
	}
	return ""
}

func validateEmail(email string) string {
	email = strings.TrimSpace(email)
	if email == "" {
		return "email is required"
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return "email is not a valid address"
	}
	return ""
}

// writeValidationError emits the standard error shape plus per-field detail.
func writeValidationError(w http.ResponseWriter, details map[string]string) {
	httpx.WriteJSON(w, http.StatusBadRequest, map[string]any{
		"success": false,
		"error":   "Validation failed",
		"code":    CodeValidation,
		"details": details,
	})
}
