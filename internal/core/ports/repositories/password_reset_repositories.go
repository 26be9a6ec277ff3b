package repositories

import (
	"context"

	"github.com/SscSPs/secure_auth_app/internal/core/domain"
)

// PasswordResetRepository manages single-use password reset requests.
type PasswordResetRepository interface {
	// ReplaceResetRequest deletes all prior live requests for the email and stores
	// the new one, in a single transaction (single-flight per email).
	ReplaceResetRequest(ctx context.Context, reset domain.PasswordReset) error

	// ConsumeResetToken atomically deletes the matching unexpired request and, in
	// the same transaction, sets the new password hash and clears the lockout state
	// (is_locked=false, failed_login_attempts=0) on the user owning the email.
	// Returns the email on success, apperrors.ErrInvalidToken when the token is
	// unknown, expired, or already consumed.
	ConsumeResetToken(ctx context.Context, token string, newPasswordHash string) (email string, err error)
}
