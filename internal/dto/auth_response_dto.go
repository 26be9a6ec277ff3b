package dto

// TokenResponse represents a successful login or refresh.
// SuspiciousLogin is only populated on login responses, never on refresh.
type TokenResponse struct {
	AccessToken     string `json:"access_token"`
	TokenType       string `json:"token_type"`
	SuspiciousLogin *bool  `json:"suspicious_login,omitempty"`
}

// MessageResponse is the generic acknowledgement body used by the verification
// and reset flows, which must not reveal whether the target account exists.
type MessageResponse struct {
	Message string `json:"message"`
}

// RegisterResponse confirms a successful registration.
type RegisterResponse struct {
	Message  string `json:"message"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// VerifyEmailResponse confirms a consumed verification token. A session token is
// included so the fresh account is logged in right away.
type VerifyEmailResponse struct {
	Message     string `json:"message"`
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}
