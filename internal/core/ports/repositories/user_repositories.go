package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/secure_auth_app/internal/core/domain"
)

// UserReader defines read operations for user data
type UserReader interface {
	// FindUserByID retrieves a specific user by their ID.
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)

	// FindUserByUsername retrieves a specific user by their unique username.
	FindUserByUsername(ctx context.Context, username string) (*domain.User, error)

	// FindUserByEmail retrieves a specific user by their unique email.
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)

	// FindUserByGoogleID retrieves the user linked to the given Google subject ID.
	FindUserByGoogleID(ctx context.Context, googleID string) (*domain.User, error)
}

// UserWriter defines write operations for user data.
//
// The state-transition methods are atomic conditional updates: two concurrent
// requests racing on the same row must never both succeed where only one should.
type UserWriter interface {
	// SaveUser persists a new user.
	SaveUser(ctx context.Context, user domain.User) error

	// RecordSuccessfulLogin stamps last_login_at/last_login_ip and resets the
	// failed-attempt counter to zero.
	RecordSuccessfulLogin(ctx context.Context, userID string, ipAddress string) error

	// RecordFailedLogin increments the failed-attempt counter and derives the
	// locked flag in a single statement, returning the post-increment state.
	// A failure that brings the counter to lockThreshold locks the account.
	RecordFailedLogin(ctx context.Context, username string, lockThreshold int) (attempts int, locked bool, err error)

	// RotateVerificationToken replaces the stored verification token and expiry
	// for the given email.
	RotateVerificationToken(ctx context.Context, email string, token string, expiresAt time.Time) error

	// ConsumeVerificationToken activates the matching unexpired account and clears
	// the token fields in one conditional update. A second consumption of the same
	// token (or an expired/unknown one) returns apperrors.ErrInvalidToken.
	ConsumeVerificationToken(ctx context.Context, token string) (*domain.User, error)
}

// UserRepositoryFacade combines all user-related repository interfaces.
type UserRepositoryFacade interface {
	UserReader
	UserWriter
}
