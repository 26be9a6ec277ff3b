package repositories

import (
	"context"

	"github.com/SscSPs/secure_auth_app/internal/core/domain"
)

// LoginLogRepository persists and queries the append-only login audit trail.
type LoginLogRepository interface {
	// SaveLoginLog appends one attempt record. Entries are never mutated or deleted.
	SaveLoginLog(ctx context.Context, entry domain.LoginLogEntry) error

	// CountSuccessfulByIP counts prior successful logins for the user from the
	// exact IP address.
	CountSuccessfulByIP(ctx context.Context, userID string, ipAddress string) (int64, error)

	// CountSuccessfulByDeviceType counts prior successful logins for the user from
	// the given device class.
	CountSuccessfulByDeviceType(ctx context.Context, userID string, deviceType domain.DeviceType) (int64, error)
}
