package service

import (
	"context"

	"github.com/traintrack-app/traintrack/internal/auth/domain"
	"github.com/traintrack-app/traintrack/internal/auth/store"
)

type UserService struct {
	Store store.Store
}

// GetUserByID fetches a user by id.
func (s *UserService) GetUserByID(ctx context.Context, userID string) (domain.User, error) {
	return s.Store.Users().GetByID(ctx, userID)
}

// GetProfile fetches the profile record seeded at registration.
func (s *UserService) GetProfile(ctx context.Context, userID string) (domain.Profile, error) {
	return s.Store.Profiles().GetByUserID(ctx, userID)
}
