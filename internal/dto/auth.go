package dto

// RegisterRequest defines the payload for creating a new account.
type RegisterRequest struct {
	Username     string `json:"username" binding:"required,alphanumunderscore,min=3,max=20" example:"newuser"`
	Email        string `json:"email" binding:"required,email" example:"new@example.com"`
	Password     string `json:"password" binding:"required,strongpassword" example:"Str0ngPass"`
	CaptchaToken string `json:"captcha_token" binding:"required" example:"10000000-aaaa-bbbb-cccc-000000000001"`
}

// LoginRequest defines the payload for a password login. Unlike registration,
// logins carry no captcha; brute force is handled by rate limiting and lockout.
type LoginRequest struct {
	Username string `json:"username" binding:"required" example:"newuser"`
	Password string `json:"password" binding:"required" example:"Str0ngPass"`
}

// GoogleLoginRequest carries the Google-issued ID token for token-based login.
type GoogleLoginRequest struct {
	IDToken string `json:"id_token" binding:"required"`
}

// VerifyEmailRequest carries the emailed verification token.
type VerifyEmailRequest struct {
	Token string `json:"token" binding:"required"`
}

// ResendVerificationRequest asks for a fresh verification email.
type ResendVerificationRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// ForgotPasswordRequest starts the password reset flow.
type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// ResetPasswordRequest consumes a reset token and sets a new password.
type ResetPasswordRequest struct {
	Token       string `json:"token" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,strongpassword"`
}
