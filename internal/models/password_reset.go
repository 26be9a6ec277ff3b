package models

import "time"

// PasswordReset is the database representation of a pending reset request row.
type PasswordReset struct {
	Email     string    `db:"email"`
	Token     string    `db:"token"`
	ExpiresAt time.Time `db:"expires_at"`
	CreatedAt time.Time `db:"created_at"`
}
