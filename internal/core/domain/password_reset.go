package domain

import "time"

// PasswordReset is a single-use password reset request. It is keyed by email rather
// than user ID because a reset is requested before any authentication has happened.
// At most one live request exists per email: issuing a new one deletes prior ones.
type PasswordReset struct {
	Email     string    `json:"email"`
	Token     string    `json:"-"`
	ExpiresAt time.Time `json:"expiresAt"`
	CreatedAt time.Time `json:"createdAt"`
}

// Expired reports whether the request is past its expiry ceiling at the given time.
func (p *PasswordReset) Expired(now time.Time) bool {
	return !now.Before(p.ExpiresAt)
}
