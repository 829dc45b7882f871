// internal/repository/user_repo.go
package repository

import (
	"context"

	"vestflow-engine/internal/domain"
)

// UserRepository defines the interface for user data operations.
type UserRepository interface {
	// CreateUser adds a new user to the database using the provided DBExecutor.
	CreateUser(ctx context.Context, q DBExecutor, user *domain.User) error
	// GetUserByID retrieves a user by their ID using the provided DBExecutor.
	GetUserByID(ctx context.Context, q DBExecutor, id int64) (*domain.User, error)
	// GetUserByReferralCode retrieves a user by their referral code using the provided DBExecutor.
	// The referral resolver uses this to follow sponsor edges upward.
	GetUserByReferralCode(ctx context.Context, q DBExecutor, code string) (*domain.User, error)
}
