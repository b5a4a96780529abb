package http

import (
	"net/http"
	"time"
)

// RefreshCookieName is the cookie carrying the refresh token. HTTP-only so
// script can never read it.
const RefreshCookieName = "refreshToken"

// refreshCookiePath scopes the cookie to the auth endpoints; no other route
// ever needs the refresh token.
const refreshCookiePath = "/v1/auth"

func setRefreshCookie(w http.ResponseWriter, token string, ttl time.Duration, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     RefreshCookieName,
		Value:    token,
		Path:     refreshCookiePath,
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteStrictMode,
	})
}

func clearRefreshCookie(w http.ResponseWriter, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     RefreshCookieName,
		Value:    "",
		Path:     refreshCookiePath,
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteStrictMode,
	})
}
