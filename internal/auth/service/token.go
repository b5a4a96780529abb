package service

import (
	"errors"
	"time"

	"github.com/traintrack-app/traintrack/internal/auth/domain"
	"github.com/traintrack-app/traintrack/pkg/jwtx"
)

// ErrInvalidToken is the single outcome for every token verification
// failure. Wrong secret, bad signature and elapsed expiry are deliberately
// indistinguishable so callers can't probe which check failed.
var ErrInvalidToken = errors.New("invalid_token")

// TokenService issues and verifies the two bearer token classes. Access and
// refresh tokens are signed with independent secrets so one leaking never
// compromises the other class. Tokens are stateless: nothing is persisted,
// so revocation before natural expiry is not possible.
type TokenService struct {
	accessSigner    *jwtx.HS256Signer
	refreshSigner   *jwtx.HS256Signer
	accessVerifier  *jwtx.HS256Verifier
	refreshVerifier *jwtx.HS256Verifier

	Issuer     string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

// NewTokenService builds a TokenService from the two raw signing secrets.
func NewTokenService(
	accessSecret, refreshSecret []byte,
	issuer string,
	accessTTL, refreshTTL time.Duration,
) (*TokenService, error) {
	accessSigner, err := jwtx.NewSignerHS256(accessSecret)
	if err != nil {
		return nil, err
	}
	refreshSigner, err := jwtx.NewSignerHS256(refreshSecret)
	if err != nil {
		return nil, err
	}

	return &TokenService{
		accessSigner:    accessSigner,
		refreshSigner:   refreshSigner,
		accessVerifier:  jwtx.NewVerifierHS256(accessSecret, issuer),
		refreshVerifier: jwtx.NewVerifierHS256(refreshSecret, issuer),
		Issuer:          issuer,
		AccessTTL:       accessTTL,
		RefreshTTL:      refreshTTL,
	}, nil
}

// IssueAccess mints a new access token for the user, valid for AccessTTL
// from now.
func (s *TokenService) IssueAccess(userID, email string, now time.Time) (string, error) {
	claims := jwtx.NewClaims(userID, email, s.AccessTTL, s.Issuer, now)
	return s.accessSigner.Sign(claims)
}

// IssueRefresh mints a new refresh token, valid for RefreshTTL from now.
func (s *TokenService) IssueRefresh(userID, email string, now time.Time) (string, error) {
	claims := jwtx.NewClaims(userID, email, s.RefreshTTL, s.Issuer, now)
	return s.refreshSigner.Sign(claims)
}

// IssuePair mints both token classes at once, as login and registration do.
func (s *TokenService) IssuePair(userID, email string, now time.Time) (domain.TokenPair, error) {
	access, err := s.IssueAccess(userID, email, now)
	if err != nil {
		return domain.TokenPair{}, err
	}
	refresh, err := s.IssueRefresh(userID, email, now)
	if err != nil {
		return domain.TokenPair{}, err
	}
	return domain.TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		AccessTTL:    s.AccessTTL,
		RefreshTTL:   s.RefreshTTL,
	}, nil
}

// VerifyAccess checks signature and expiry of an access token.
func (s *TokenService) VerifyAccess(token string) (jwtx.Claims, error) {
	claims, err := s.accessVerifier.Verify(token)
	if err != nil {
		return jwtx.Claims{}, ErrInvalidToken
	}
	return claims, nil
}

// VerifyRefresh checks signature and expiry of a refresh token.
func (s *TokenService) VerifyRefresh(token string) (jwtx.Claims, error) {
	claims, err := s.refreshVerifier.Verify(token)
	if err != nil {
		return jwtx.Claims{}, ErrInvalidToken
	}
	return claims, nil
}

// AccessVerifier exposes the access-token verifier for the HTTP auth gate.
func (s *TokenService) AccessVerifier() jwtx.Verifier {
	return s.accessVerifier
}
