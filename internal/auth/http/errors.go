package http

import (
	"fmt"
	"net/http"

	"github.com/traintrack-app/traintrack/pkg/httpx"
)

// Stable wire-level error codes. Clients switch on these, not on messages.
const (
	CodeUserExists      = "USER_EXISTS"
	CodeUserNotFound    = "USER_NOT_FOUND"
	CodeAlreadyVerified = "USER_ALREADY_VERIFIED"
	CodeInvalidToken    = "INVALID_TOKEN"
	CodeInvalidCreds    = "INVALID_CREDENTIALS"
	CodeNoToken         = "NO_TOKEN"
	CodeValidation      = "VALIDATION_ERROR"
	CodeServerError     = "SERVER_ERROR"
)

// APIError is the structured error every auth endpoint returns. It
// implements the error interface and knows how to write itself as the fixed
// {success:false, error, code} response body.
type APIError struct {
	// StatusCode is the HTTP status code for this error
	StatusCode int `json:"-"`

	// Code is the stable error code (e.g. "USER_EXISTS")
	Code string `json:"code"`

	// Message is a human-readable description of the error
	Message string `json:"error"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// WriteError writes this APIError to an HTTP response writer.
func (e *APIError) WriteError(w http.ResponseWriter) {
	httpx.WriteJSON(w, e.StatusCode, map[string]any{
		"success": false,
		"error":   e.Message,
		"code":    e.Code,
	})
}

var (
	// ErrUserExists is returned when registration hits a duplicate email.
	ErrUserExists = &APIError{
		StatusCode: http.StatusBadRequest,
		Code:       CodeUserExists,
		Message:    "User with this email already exists",
	}

	// ErrUserNotFound is returned when a referenced identity is missing.
	ErrUserNotFound = &APIError{
		StatusCode: http.StatusNotFound,
		Code:       CodeUserNotFound,
		Message:    "User not found",
	}

	// ErrAlreadyVerified is returned when verify-email hits an active account.
	ErrAlreadyVerified = &APIError{
		StatusCode: http.StatusBadRequest,
		Code:       CodeAlreadyVerified,
		Message:    "Email is already verified",
	}

	// ErrInvalidVerifyToken is the verify-email flavour of a token failure.
	ErrInvalidVerifyToken = &APIError{
		StatusCode: http.StatusBadRequest,
		Code:       CodeInvalidToken,
		Message:    "Invalid or expired verification token",
	}

	// ErrInvalidRefreshToken is the refresh flavour of a token failure.
	ErrInvalidRefreshToken = &APIError{
		StatusCode: http.StatusUnauthorized,
		Code:       CodeInvalidToken,
		Message:    "Invalid or expired refresh token",
	}

	// ErrInvalidCredentials deliberately covers unknown email, unverified
	// account and wrong password so accounts can't be enumerated.
	ErrInvalidCredentials = &APIError{
		StatusCode: http.StatusUnauthorized,
		Code:       CodeInvalidCreds,
		Message:    "Invalid email or password",
	}

	// ErrNoToken is returned when refresh is attempted without a cookie.
	ErrNoToken = &APIError{
		StatusCode: http.StatusUnauthorized,
		Code:       CodeNoToken,
		Message:    "No refresh token provided",
	}

	// ErrInvalidBody is returned for unparseable request bodies.
	ErrInvalidBody = &APIError{
		StatusCode: http.StatusBadRequest,
		Code:       CodeValidation,
		Message:    "Invalid request body",
	}

	// ErrServerError hides internal detail; the real error is logged.
	ErrServerError = &APIError{
		StatusCode: http.StatusInternalServerError,
		Code:       CodeServerError,
		Message:    "Something went wrong",
	}
)
