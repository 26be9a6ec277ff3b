package models

import (
	"database/sql"
	"time"
)

// LoginLog is the database representation of a login audit row.
type LoginLog struct {
	ID               int64          `db:"id"`
	UserID           sql.NullString `db:"user_id"`
	Username         string         `db:"username"`
	LoginMethod      string         `db:"login_method"`
	Success          bool           `db:"success"`
	IPAddress        string         `db:"ip_address"`
	UserAgent        string         `db:"user_agent"`
	DeviceType       string         `db:"device_type"`
	IsSuspicious     bool           `db:"is_suspicious"`
	SuspiciousReason sql.NullString `db:"suspicious_reason"`
	CreatedAt        time.Time      `db:"created_at"`
}
