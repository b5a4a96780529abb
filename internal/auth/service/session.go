package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/traintrack-app/traintrack/internal/auth/domain"
	"github.com/traintrack-app/traintrack/internal/auth/store"
	"github.com/traintrack-app/traintrack/pkg/cryptox"
	"github.com/traintrack-app/traintrack/pkg/idx"
	"github.com/traintrack-app/traintrack/pkg/slogx"
)

var (
	ErrEmailTaken         = errors.New("email_taken")
	ErrUserNotFound       = errors.New("user_not_found")
	ErrAlreadyVerified    = errors.New("already_verified")
	ErrInvalidCredentials = errors.New("invalid_credentials")
)

// SessionService orchestrates the registration, verification, login,
// refresh and logout flows.
type SessionService struct {
	Store  store.Store
	Tokens *TokenService
}

// Register creates a new inactive identity plus its seed profile record and
// immediately issues a token pair. Tokens-before-verification mirrors the
// original product behaviour; login itself stays gated on verification.
func (s *SessionService) Register(
	ctx context.Context,
	name, email, password string,
) (domain.User, domain.TokenPair, error) {
	now := time.Now().UTC()

	hash, err := cryptox.HashPassword(password)
	if err != nil {
		return domain.User{}, domain.TokenPair{}, err
	}

	user := domain.User{
		ID:           idx.New().String(),
		Email:        normalizeEmail(email),
		PasswordHash: hash,
		IsActive:     false,
	}

	// User and profile are created in one transaction. Email uniqueness is
	// enforced by the users table index, so two concurrent registrations for
	// the same address race in the database and exactly one wins.
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Users().Create(ctx, user); err != nil {
			if errors.Is(err, store.ErrAlreadyExists) {
				return ErrEmailTaken
			}
			return err
		}
		return tx.Profiles().Create(ctx, domain.Profile{
			ID:     idx.New().String(),
			UserID: user.ID,
			Name:   name,
		})
	})
	if err != nil {
		return domain.User{}, domain.TokenPair{}, err
	}

	pair, err := s.Tokens.IssuePair(user.ID, user.Email, now)
	if err != nil {
		return domain.User{}, domain.TokenPair{}, err
	}

	slogx.FromContext(ctx).Info("user registered", "user_id", user.ID)
	return user, pair, nil
}

// VerifyEmail flips the account active from a proof-of-ownership token. The
// token is verified against the access secret, matching the issuance side.
func (s *SessionService) VerifyEmail(ctx context.Context, token string) (domain.User, error) {
	claims, err := s.Tokens.VerifyAccess(token)
	if err != nil {
		return domain.User{}, ErrInvalidToken
	}

	user, err := s.Store.Users().GetByID(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, ErrUserNotFound
		}
		return domain.User{}, err
	}

	if user.IsActive {
		return domain.User{}, ErrAlreadyVerified
	}

	if err := s.Store.Users().Activate(ctx, user.ID); err != nil {
		return domain.User{}, err
	}

	user.IsActive = true
	slogx.FromContext(ctx).Info("email verified", "user_id", user.ID)
	return user, nil
}

// Login authenticates an active account by email and password. Unknown
// email, unverified account and wrong password all collapse into the same
// failure so callers can't enumerate accounts.
func (s *SessionService) Login(
	ctx context.Context,
	email, password string,
) (domain.User, domain.TokenPair, error) {
	now := time.Now().UTC()

	user, err := s.Store.Users().GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, domain.TokenPair{}, ErrInvalidCredentials
		}
		return domain.User{}, domain.TokenPair{}, err
	}

	if !user.IsActive {
		return domain.User{}, domain.TokenPair{}, ErrInvalidCredentials
	}

	ok, err := cryptox.VerifyPassword(password, user.PasswordHash)
	if err != nil {
		return domain.User{}, domain.TokenPair{}, err
	}
	if !ok {
		return domain.User{}, domain.TokenPair{}, ErrInvalidCredentials
	}

	if err := s.Store.Users().UpdateLastLogin(ctx, user.ID); err != nil {
		return domain.User{}, domain.TokenPair{}, err
	}
	user.LastLoginAt = &now

	pair, err := s.Tokens.IssuePair(user.ID, user.Email, now)
	if err != nil {
		return domain.User{}, domain.TokenPair{}, err
	}

	slogx.FromContext(ctx).Info("user logged in", "user_id", user.ID)
	return user, pair, nil
}

// Refresh mints a fresh access token from a valid refresh token. The
// refresh token itself is not rotated; it stays good until its own expiry.
func (s *SessionService) Refresh(ctx context.Context, refreshToken string) (domain.User, string, error) {
	claims, err := s.Tokens.VerifyRefresh(refreshToken)
	if err != nil {
		return domain.User{}, "", ErrInvalidToken
	}

	user, err := s.Store.Users().GetByID(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, "", ErrUserNotFound
		}
		return domain.User{}, "", err
	}

	access, err := s.Tokens.IssueAccess(user.ID, user.Email, time.Now().UTC())
	if err != nil {
		return domain.User{}, "", err
	}

	return user, access, nil
}

// Logout confirms the identity still exists. Tokens are stateless, so the
// only server-visible effect is the cookie clear the handler performs.
func (s *SessionService) Logout(ctx context.Context, userID string) (domain.User, error) {
	user, err := s.Store.Users().GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, ErrUserNotFound
		}
		return domain.User{}, err
	}
	slogx.FromContext(ctx).Info("user logged out", "user_id", user.ID)
	return user, nil
}

// ChangePassword rehashes and persists a new password after checking the
// current one.
func (s *SessionService) ChangePassword(ctx context.Context, userID, current, next string) error {
	user, err := s.Store.Users().GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	ok, err := cryptox.VerifyPassword(current, user.PasswordHash)
	if err != nil {
		return err
	}
	if !ok {
		return ErrInvalidCredentials
	}

	hash, err := cryptox.HashPassword(next)
	if err != nil {
		return err
	}

	return s.Store.Users().UpdatePasswordHash(ctx, userID, hash)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
