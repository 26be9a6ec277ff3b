package domain

import "time"

// Default role and starting points balance for newly registered users.
const (
	DefaultRole   = "free"
	DefaultPoints = 100
)

// User represents an account in the domain.
//
// Account state is a small machine: a freshly registered user is inactive until the
// verification token is consumed (Unverified -> Active); repeated failed password
// checks lock the account (any state -> Locked); only a successful password reset
// unlocks it. IsLocked is orthogonal to IsActive and takes priority for login
// admission.
type User struct {
	UserID       string  `json:"userID"`
	Username     string  `json:"username"`
	Email        string  `json:"email"`
	PasswordHash *string `json:"-"` // nil for OAuth-only accounts
	Role         string  `json:"role"`
	Points       int64   `json:"points"`

	EmailVerified            bool       `json:"emailVerified"`
	VerificationToken        *string    `json:"-"`
	VerificationTokenExpires *time.Time `json:"-"`

	GoogleID *string `json:"-"`

	IsActive            bool `json:"isActive"`
	IsLocked            bool `json:"isLocked"`
	FailedLoginAttempts int  `json:"-"`

	LastLoginAt *time.Time `json:"lastLoginAt,omitempty"`
	LastLoginIP *string    `json:"-"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// HasPassword reports whether the account can authenticate with a password at all.
func (u *User) HasPassword() bool {
	return u.PasswordHash != nil && *u.PasswordHash != ""
}
