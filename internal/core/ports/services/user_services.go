package services

import (
	"context"

	"github.com/SscSPs/secure_auth_app/internal/core/domain"
)

// UserSvcFacade is the account state machine: registration, admission control,
// verification lifecycle and session resolution.
type UserSvcFacade interface {
	// RegisterUser creates an unverified, inactive account and dispatches the
	// verification email. Duplicate username or email returns apperrors.ErrDuplicate.
	RegisterUser(ctx context.Context, username, email, password string) (*domain.User, error)

	// AuthenticateUser runs the full admission sequence for a password login:
	// existence, lock state, active state, then password. Every attempt is logged.
	// On success it returns the user together with the risk verdict for the attempt.
	AuthenticateUser(ctx context.Context, username, password, ipAddress, userAgent string) (*domain.User, domain.RiskAssessment, error)

	// AuthenticateGoogleUser logs in or provisions the account for a validated
	// Google identity. New accounts are created active and verified.
	AuthenticateGoogleUser(ctx context.Context, email, googleID, ipAddress, userAgent string) (*domain.User, domain.RiskAssessment, error)

	// VerifyEmail consumes a verification token, activating the account.
	VerifyEmail(ctx context.Context, token string) (*domain.User, error)

	// ResendVerification rotates the verification token for an unverified account
	// and re-sends the email. It is enumeration-safe: unknown or already verified
	// emails produce no observable difference to the caller.
	ResendVerification(ctx context.Context, email string) error

	// GetUserByUsername retrieves a user by username.
	GetUserByUsername(ctx context.Context, username string) (*domain.User, error)

	// GetUserByID retrieves a user by ID.
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)

	// ResolveSession maps a token subject to a live user and re-checks that the
	// account is still active and not locked. Locking or deactivating an account
	// invalidates its outstanding tokens through this check.
	ResolveSession(ctx context.Context, username string) (*domain.User, error)
}
