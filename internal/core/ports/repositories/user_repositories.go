package repositories

import (
	"context"

	"github.com/SscSPs/ledgerlite/internal/core/domain"
)

// UserReader defines read operations for user data
type UserReader interface {
	// FindUserByID retrieves a specific user by their ID.
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)

	// FindUserByPhone retrieves the user registered with phone.
	FindUserByPhone(ctx context.Context, phone string) (*domain.User, error)
}

// UserWriter defines write operations for user data
type UserWriter interface {
	// SaveUser persists a new user. A duplicate phone is a conflict error.
	SaveUser(ctx context.Context, user domain.User) error
}

// UserRepositoryFacade combines all user-related repository interfaces
type UserRepositoryFacade interface {
	UserReader
	UserWriter
}

// OTPRepository keeps at most one pending challenge per phone.
type OTPRepository interface {
	// SaveChallenge stores challenge, replacing any pending one for the same phone.
	SaveChallenge(ctx context.Context, challenge domain.OTPChallenge) error
	FindChallenge(ctx context.Context, phone string) (*domain.OTPChallenge, error)
	// ConsumeAttempt counts one verification attempt if fewer than maxAttempts were made.
	// It reports false when the challenge is absent or exhausted.
	ConsumeAttempt(ctx context.Context, phone string, maxAttempts int) (bool, error)
	DeleteChallenge(ctx context.Context, phone string) error
}
