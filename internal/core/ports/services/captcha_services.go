package services

import "context"

// CaptchaVerifier checks a client-supplied captcha response token.
type CaptchaVerifier interface {
	// Verify returns nil when the token passes (or verification is disabled by
	// configuration) and apperrors.ErrValidation when it does not.
	Verify(ctx context.Context, token string, remoteIP string) error
}
