package models

import (
	"database/sql"
	"time"
)

// User is the database representation of an account row.
// Nullable columns use sql.Null* types; mapping to/from domain.User lives in the
// pgsql repository.
type User struct {
	UserID       string         `db:"id"`
	Username     string         `db:"username"`
	Email        string         `db:"email"`
	PasswordHash sql.NullString `db:"password_hash"`
	Role         string         `db:"role"`
	Points       int64          `db:"points"`

	EmailVerified            bool           `db:"email_verified"`
	VerificationToken        sql.NullString `db:"verification_token"`
	VerificationTokenExpires sql.NullTime   `db:"verification_token_expires"`

	GoogleID sql.NullString `db:"google_id"`

	IsActive            bool `db:"is_active"`
	IsLocked            bool `db:"is_locked"`
	FailedLoginAttempts int  `db:"failed_login_attempts"`

	LastLoginAt sql.NullTime   `db:"last_login_at"`
	LastLoginIP sql.NullString `db:"last_login_ip"`

	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}
