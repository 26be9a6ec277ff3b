package pgsql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/SscSPs/secure_auth_app/internal/core/domain"
	portsrepo "github.com/SscSPs/secure_auth_app/internal/core/ports/repositories"
	"github.com/SscSPs/secure_auth_app/internal/models"
)

type PgxLoginLogRepository struct {
	db *pgxpool.Pool
}

func newPgxLoginLogRepository(db *pgxpool.Pool) portsrepo.LoginLogRepository {
	return &PgxLoginLogRepository{db: db}
}

var _ portsrepo.LoginLogRepository = (*PgxLoginLogRepository)(nil)

func toModelLoginLog(d domain.LoginLogEntry) models.LoginLog {
	return models.LoginLog{
		UserID:           nullString(d.UserID),
		Username:         d.Username,
		LoginMethod:      string(d.LoginMethod),
		Success:          d.Success,
		IPAddress:        d.IPAddress,
		UserAgent:        d.UserAgent,
		DeviceType:       string(d.DeviceType),
		IsSuspicious:     d.IsSuspicious,
		SuspiciousReason: nullString(d.SuspiciousReason),
		CreatedAt:        d.CreatedAt,
	}
}

func (r *PgxLoginLogRepository) SaveLoginLog(ctx context.Context, entry domain.LoginLogEntry) error {
	m := toModelLoginLog(entry)
	query := `
		INSERT INTO login_logs (user_id, username, login_method, success, ip_address,
			user_agent, device_type, is_suspicious, suspicious_reason, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.db.Exec(ctx, query,
		m.UserID,
		m.Username,
		m.LoginMethod,
		m.Success,
		m.IPAddress,
		m.UserAgent,
		m.DeviceType,
		m.IsSuspicious,
		m.SuspiciousReason,
		m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save login log: %w", err)
	}
	return nil
}

func (r *PgxLoginLogRepository) CountSuccessfulByIP(ctx context.Context, userID string, ipAddress string) (int64, error) {
	query := `
		SELECT COUNT(*) FROM login_logs
		WHERE user_id = $1 AND ip_address = $2 AND success = TRUE;
	`
	var count int64
	if err := r.db.QueryRow(ctx, query, userID, ipAddress).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count logins by IP: %w", err)
	}
	return count, nil
}

func (r *PgxLoginLogRepository) CountSuccessfulByDeviceType(ctx context.Context, userID string, deviceType domain.DeviceType) (int64, error) {
	query := `
		SELECT COUNT(*) FROM login_logs
		WHERE user_id = $1 AND device_type = $2 AND success = TRUE;
	`
	var count int64
	if err := r.db.QueryRow(ctx, query, userID, string(deviceType)).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count logins by device type: %w", err)
	}
	return count, nil
}
