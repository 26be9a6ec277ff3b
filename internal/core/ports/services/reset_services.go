package services

import "context"

// PasswordResetSvcFacade drives the forgot/reset password flow.
type PasswordResetSvcFacade interface {
	// RequestPasswordReset issues a fresh single-use reset token for the email,
	// replacing any outstanding one, and dispatches the reset email. Unknown
	// emails are handled without any observable difference to the caller.
	RequestPasswordReset(ctx context.Context, email string) error

	// ResetPassword consumes the token and installs the new password. A successful
	// reset also clears any lockout on the account.
	ResetPassword(ctx context.Context, token, newPassword string) error
}
