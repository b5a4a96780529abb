package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/traintrack-app/traintrack/internal/auth/store/drivers/sqlite"
	"github.com/traintrack-app/traintrack/pkg/cryptox"
	"github.com/traintrack-app/traintrack/pkg/jwtx"
)

func TestMain(m *testing.M) {
	tmpDir := os.TempDir()
	pepperPath := filepath.Join(tmpDir, "service-test-pepper")
	cryptox.SetPepperPath(pepperPath)

	os.Remove(pepperPath)
	defer os.Remove(pepperPath)

	os.Exit(m.Run())
}

func newTestSessionService(t *testing.T) *SessionService {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)",
		filepath.Join(t.TempDir(), "auth.db"))
	st, err := sqlite.NewStore(dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	require.NoError(t, st.ApplyMigrations())

	return &SessionService{
		Store:  st,
		Tokens: newTestTokenService(t),
	}
}

// activate registers a user and flips them active via the verification flow.
func activate(t *testing.T, s *SessionService, name, email, password string) {
	t.Helper()
	ctx := context.Background()

	_, pair, err := s.Register(ctx, name, email, password)
	require.NoError(t, err)

	_, err = s.VerifyEmail(ctx, pair.AccessToken)
	require.NoError(t, err)
}

func TestRegister(t *testing.T) {
	s := newTestSessionService(t)
	ctx := context.Background()

	user, pair, err := s.Register(ctx, "Alice", "alice@example.com", "Str0ng!pass")
	require.NoError(t, err)
	require.NotEmpty(t, user.ID)
	require.Equal(t, "alice@example.com", user.Email)
	require.False(t, user.IsActive, "new accounts start unverified")
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)

	// The issued access token belongs to the new user
	claims, err := s.Tokens.VerifyAccess(pair.AccessToken)
	require.NoError(t, err)
	require.Equal(t, user.ID, claims.Subject)

	// The seed profile carries the display name
	profile, err := s.Store.Profiles().GetByUserID(ctx, user.ID)
	require.NoError(t, err)
	require.Equal(t, "Alice", profile.Name)
}

func TestRegister_NormalizesEmail(t *testing.T) {
	s := newTestSessionService(t)
	ctx := context.Background()

	user, _, err := s.Register(ctx, "Alice", "  Alice@Example.COM ", "Str0ng!pass")
	require.NoError(t, err)
	require.Equal(t, "alice@example.com", user.Email)

	// Same address with different casing is a duplicate
	_, _, err = s.Register(ctx, "Mallory", "ALICE@example.com", "Str0ng!pass")
	require.ErrorIs(t, err, ErrEmailTaken)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	s := newTestSessionService(t)
	ctx := context.Background()

	_, _, err := s.Register(ctx, "Alice", "alice@example.com", "Str0ng!pass")
	require.NoError(t, err)

	_, _, err = s.Register(ctx, "Alice Again", "alice@example.com", "Str0ng!pass")
	require.ErrorIs(t, err, ErrEmailTaken)
}

func TestRegister_ConcurrentSameEmail(t *testing.T) {
	s := newTestSessionService(t)
	ctx := context.Background()

	const attempts = 5
	errs := make([]error, attempts)

	var wg sync.WaitGroup
	for i := range attempts {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _, errs[i] = s.Register(ctx, "Racer", "race@example.com", "Str0ng!pass")
		}()
	}
	wg.Wait()

	// Exactly one attempt wins; the rest observe the duplicate
	var won int
	for _, err := range errs {
		if err == nil {
			won++
		} else {
			require.ErrorIs(t, err, ErrEmailTaken)
		}
	}
	require.Equal(t, 1, won)
}

func TestVerifyEmail(t *testing.T) {
	s := newTestSessionService(t)
	ctx := context.Background()

	user, pair, err := s.Register(ctx, "Alice", "alice@example.com", "Str0ng!pass")
	require.NoError(t, err)

	verified, err := s.VerifyEmail(ctx, pair.AccessToken)
	require.NoError(t, err)
	require.Equal(t, user.ID, verified.ID)
	require.True(t, verified.IsActive)

	// Verifying again reports the account is already active
	_, err = s.VerifyEmail(ctx, pair.AccessToken)
	require.ErrorIs(t, err, ErrAlreadyVerified)
}

func TestVerifyEmail_InvalidToken(t *testing.T) {
	s := newTestSessionService(t)
	ctx := context.Background()

	_, err := s.VerifyEmail(ctx, "not-a-token")
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyEmail_RefreshTokenRejected(t *testing.T) {
	s := newTestSessionService(t)
	ctx := context.Background()

	_, pair, err := s.Register(ctx, "Alice", "alice@example.com", "Str0ng!pass")
	require.NoError(t, err)

	// Verification expects an access-class token
	_, err = s.VerifyEmail(ctx, pair.RefreshToken)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyEmail_DeletedUser(t *testing.T) {
	s := newTestSessionService(t)
	ctx := context.Background()

	user, pair, err := s.Register(ctx, "Alice", "alice@example.com", "Str0ng!pass")
	require.NoError(t, err)

	require.NoError(t, s.Store.Users().Delete(ctx, user.ID))

	_, err = s.VerifyEmail(ctx, pair.AccessToken)
	require.ErrorIs(t, err, ErrUserNotFound)
}

func TestLogin(t *testing.T) {
	s := newTestSessionService(t)
	ctx := context.Background()

	activate(t, s, "Alice", "alice@example.com", "Str0ng!pass")

	user, pair, err := s.Login(ctx, "alice@example.com", "Str0ng!pass")
	require.NoError(t, err)
	require.True(t, user.IsActive)
	require.NotNil(t, user.LastLoginAt)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)

	// Last login is persisted
	stored, err := s.Store.Users().GetByID(ctx, user.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.LastLoginAt)
}

func TestLogin_FailuresAreIndistinguishable(t *testing.T) {
	s := newTestSessionService(t)
	ctx := context.Background()

	// Registered but never verified
	_, _, err := s.Register(ctx, "Bob", "bob@example.com", "Str0ng!pass")
	require.NoError(t, err)

	tests := []struct {
		name     string
		email    string
		password string
	}{
		{"unknown email", "ghost@example.com", "Str0ng!pass"},
		{"unverified account", "bob@example.com", "Str0ng!pass"},
		{"wrong password", "bob@example.com", "wrong-password"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := s.Login(ctx, tt.email, tt.password)
			require.ErrorIs(t, err, ErrInvalidCredentials)
		})
	}
}

func TestRefresh(t *testing.T) {
	s := newTestSessionService(t)
	ctx := context.Background()

	activate(t, s, "Alice", "alice@example.com", "Str0ng!pass")
	user, pair, err := s.Login(ctx, "alice@example.com", "Str0ng!pass")
	require.NoError(t, err)

	got, access, err := s.Refresh(ctx, pair.RefreshToken)
	require.NoError(t, err)
	require.Equal(t, user.ID, got.ID)
	require.NotEmpty(t, access)

	claims, err := s.Tokens.VerifyAccess(access)
	require.NoError(t, err)
	require.Equal(t, user.ID, claims.Subject)

	// The refresh token is not rotated: it keeps minting access tokens
	_, again, err := s.Refresh(ctx, pair.RefreshToken)
	require.NoError(t, err)
	require.NotEmpty(t, again)
}

func TestRefresh_InvalidToken(t *testing.T) {
	s := newTestSessionService(t)
	ctx := context.Background()

	activate(t, s, "Alice", "alice@example.com", "Str0ng!pass")
	_, pair, err := s.Login(ctx, "alice@example.com", "Str0ng!pass")
	require.NoError(t, err)

	// An access token is not a refresh token
	_, _, err = s.Refresh(ctx, pair.AccessToken)
	require.ErrorIs(t, err, ErrInvalidToken)

	_, _, err = s.Refresh(ctx, "garbage")
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestLogout_DoesNotRevokeTokens(t *testing.T) {
	s := newTestSessionService(t)
	ctx := context.Background()

	activate(t, s, "Alice", "alice@example.com", "Str0ng!pass")
	user, pair, err := s.Login(ctx, "alice@example.com", "Str0ng!pass")
	require.NoError(t, err)

	_, err = s.Logout(ctx, user.ID)
	require.NoError(t, err)

	// Tokens are stateless: both classes still verify after logout
	_, err = s.Tokens.VerifyAccess(pair.AccessToken)
	require.NoError(t, err)
	_, _, err = s.Refresh(ctx, pair.RefreshToken)
	require.NoError(t, err)
}

func TestLogout_UnknownUser(t *testing.T) {
	s := newTestSessionService(t)

	_, err := s.Logout(context.Background(), "no-such-user")
	require.ErrorIs(t, err, ErrUserNotFound)
}

func TestChangePassword(t *testing.T) {
	s := newTestSessionService(t)
	ctx := context.Background()

	activate(t, s, "Alice", "alice@example.com", "Str0ng!pass")
	user, _, err := s.Login(ctx, "alice@example.com", "Str0ng!pass")
	require.NoError(t, err)

	require.NoError(t, s.ChangePassword(ctx, user.ID, "Str0ng!pass", "N3w!password"))

	// Old password no longer works, new one does
	_, _, err = s.Login(ctx, "alice@example.com", "Str0ng!pass")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = s.Login(ctx, "alice@example.com", "N3w!password")
	require.NoError(t, err)
}

func TestChangePassword_WrongCurrent(t *testing.T) {
	s := newTestSessionService(t)
	ctx := context.Background()

	activate(t, s, "Alice", "alice@example.com", "Str0ng!pass")
	user, _, err := s.Login(ctx, "alice@example.com", "Str0ng!pass")
	require.NoError(t, err)

	err = s.ChangePassword(ctx, user.ID, "wrong-current", "N3w!password")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRefresh_TokensCarryIndependentLifetimes(t *testing.T) {
	s := newTestSessionService(t)
	ctx := context.Background()

	activate(t, s, "Alice", "alice@example.com", "Str0ng!pass")
	_, pair, err := s.Login(ctx, "alice@example.com", "Str0ng!pass")
	require.NoError(t, err)

	access, err := s.Tokens.VerifyAccess(pair.AccessToken)
	require.NoError(t, err)
	refresh, err := s.Tokens.VerifyRefresh(pair.RefreshToken)
	require.NoError(t, err)

	accessLife := access.ExpiresAt.Sub(access.IssuedAt.Time)
	refreshLife := refresh.ExpiresAt.Sub(refresh.IssuedAt.Time)
	require.Equal(t, jwtx.DefaultAccessTokenTTL, accessLife)
	require.Equal(t, jwtx.DefaultRefreshTokenTTL, refreshLife)
	require.Greater(t, refreshLife, accessLife)
}
