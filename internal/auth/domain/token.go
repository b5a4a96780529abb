package domain

import "time"

// TokenPair carries the two bearer credentials a successful auth flow mints.
// The access token travels in the response body, the refresh token in an
// HTTP-only cookie. Neither is persisted server-side.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
	AccessTTL    time.Duration
	RefreshTTL   time.Duration
}
