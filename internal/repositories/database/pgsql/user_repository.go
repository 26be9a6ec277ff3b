package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/SscSPs/secure_auth_app/internal/apperrors"
	"github.com/SscSPs/secure_auth_app/internal/core/domain"
	portsrepo "github.com/SscSPs/secure_auth_app/internal/core/ports/repositories"
	"github.com/SscSPs/secure_auth_app/internal/models"
)

type PgxUserRepository struct {
	db *pgxpool.Pool
}

func newPgxUserRepository(db *pgxpool.Pool) portsrepo.UserRepositoryFacade {
	return &PgxUserRepository{db: db}
}

// Ensure PgxUserRepository implements portsrepo.UserRepositoryFacade
var _ portsrepo.UserRepositoryFacade = (*PgxUserRepository)(nil)

const userColumns = `id, username, email, password_hash, role, points,
		email_verified, verification_token, verification_token_expires,
		google_id, is_active, is_locked, failed_login_attempts,
		last_login_at, last_login_ip, created_at, updated_at`

// Helper to convert domain.User to models.User
func toModelUser(d domain.User) models.User {
	return models.User{
		UserID:                   d.UserID,
		Username:                 d.Username,
		Email:                    d.Email,
		PasswordHash:             nullString(d.PasswordHash),
		Role:                     d.Role,
		Points:                   d.Points,
		EmailVerified:            d.EmailVerified,
		VerificationToken:        nullString(d.VerificationToken),
		VerificationTokenExpires: nullTime(d.VerificationTokenExpires),
		GoogleID:                 nullString(d.GoogleID),
		IsActive:                 d.IsActive,
		IsLocked:                 d.IsLocked,
		FailedLoginAttempts:      d.FailedLoginAttempts,
		LastLoginAt:              nullTime(d.LastLoginAt),
		LastLoginIP:              nullString(d.LastLoginIP),
		CreatedAt:                d.CreatedAt,
		UpdatedAt:                d.UpdatedAt,
	}
}

// Helper to convert models.User to domain.User
func toDomainUser(m models.User) domain.User {
	return domain.User{
		UserID:                   m.UserID,
		Username:                 m.Username,
		Email:                    m.Email,
		PasswordHash:             stringPtr(m.PasswordHash),
		Role:                     m.Role,
		Points:                   m.Points,
		EmailVerified:            m.EmailVerified,
		VerificationToken:        stringPtr(m.VerificationToken),
		VerificationTokenExpires: timePtr(m.VerificationTokenExpires),
		GoogleID:                 stringPtr(m.GoogleID),
		IsActive:                 m.IsActive,
		IsLocked:                 m.IsLocked,
		FailedLoginAttempts:      m.FailedLoginAttempts,
		LastLoginAt:              timePtr(m.LastLoginAt),
		LastLoginIP:              stringPtr(m.LastLoginIP),
		CreatedAt:                m.CreatedAt,
		UpdatedAt:                m.UpdatedAt,
	}
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var m models.User
	err := row.Scan(
		&m.UserID,
		&m.Username,
		&m.Email,
		&m.PasswordHash,
		&m.Role,
		&m.Points,
		&m.EmailVerified,
		&m.VerificationToken,
		&m.VerificationTokenExpires,
		&m.GoogleID,
		&m.IsActive,
		&m.IsLocked,
		&m.FailedLoginAttempts,
		&m.LastLoginAt,
		&m.LastLoginIP,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	u := toDomainUser(m)
	return &u, nil
}

func (r *PgxUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	m := toModelUser(user)
	query := `
        INSERT INTO users (` + userColumns + `)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17);
    `
	_, err := r.db.Exec(ctx, query,
		m.UserID,
		m.Username,
		m.Email,
		m.PasswordHash,
		m.Role,
		m.Points,
		m.EmailVerified,
		m.VerificationToken,
		m.VerificationTokenExpires,
		m.GoogleID,
		m.IsActive,
		m.IsLocked,
		m.FailedLoginAttempts,
		m.LastLoginAt,
		m.LastLoginIP,
		m.CreatedAt,
		m.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicate
		}
		return fmt.Errorf("failed to save user: %w", err)
	}
	return nil
}

func (r *PgxUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1;`
	user, err := scanUser(r.db.QueryRow(ctx, query, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find user by ID %s: %w", userID, err)
	}
	return user, nil
}

func (r *PgxUserRepository) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username = $1;`
	user, err := scanUser(r.db.QueryRow(ctx, query, username))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find user by username: %w", err)
	}
	return user, nil
}

func (r *PgxUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1;`
	user, err := scanUser(r.db.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find user by email: %w", err)
	}
	return user, nil
}

func (r *PgxUserRepository) FindUserByGoogleID(ctx context.Context, googleID string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE google_id = $1;`
	user, err := scanUser(r.db.QueryRow(ctx, query, googleID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find user by google ID: %w", err)
	}
	return user, nil
}

func (r *PgxUserRepository) RecordSuccessfulLogin(ctx context.Context, userID string, ipAddress string) error {
	query := `
		UPDATE users
		SET last_login_at = now(),
		    last_login_ip = $2,
		    failed_login_attempts = 0,
		    updated_at = now()
		WHERE id = $1;
	`
	tag, err := r.db.Exec(ctx, query, userID, ipAddress)
	if err != nil {
		return fmt.Errorf("failed to record successful login: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// RecordFailedLogin bumps the failure counter and derives the lock flag in one
// statement. The comparison reads the pre-increment column value, so the row
// locks exactly when the counter reaches lockThreshold, no matter how many
// requests race on it.
func (r *PgxUserRepository) RecordFailedLogin(ctx context.Context, username string, lockThreshold int) (int, bool, error) {
	query := `
		UPDATE users
		SET failed_login_attempts = failed_login_attempts + 1,
		    is_locked = is_locked OR (failed_login_attempts + 1 >= $2),
		    updated_at = now()
		WHERE username = $1
		RETURNING failed_login_attempts, is_locked;
	`
	var attempts int
	var locked bool
	err := r.db.QueryRow(ctx, query, username, lockThreshold).Scan(&attempts, &locked)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, false, apperrors.ErrNotFound
		}
		return 0, false, fmt.Errorf("failed to record failed login: %w", err)
	}
	return attempts, locked, nil
}

func (r *PgxUserRepository) RotateVerificationToken(ctx context.Context, email string, token string, expiresAt time.Time) error {
	query := `
		UPDATE users
		SET verification_token = $2,
		    verification_token_expires = $3,
		    updated_at = now()
		WHERE email = $1;
	`
	tag, err := r.db.Exec(ctx, query, email, token, expiresAt)
	if err != nil {
		return fmt.Errorf("failed to rotate verification token: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// ConsumeVerificationToken is a single conditional update so the token can only
// ever be spent once; the losing request of a race sees zero rows.
func (r *PgxUserRepository) ConsumeVerificationToken(ctx context.Context, token string) (*domain.User, error) {
	query := `
		UPDATE users
		SET email_verified = TRUE,
		    is_active = TRUE,
		    verification_token = NULL,
		    verification_token_expires = NULL,
		    updated_at = now()
		WHERE verification_token = $1
		  AND verification_token_expires > now()
		RETURNING ` + userColumns + `;
	`
	user, err := scanUser(r.db.QueryRow(ctx, query, token))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrInvalidToken
		}
		return nil, fmt.Errorf("failed to consume verification token: %w", err)
	}
	return user, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505" // unique_violation
}

func nullString(p *string) sql.NullString {
	if p == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *p, Valid: true}
}

func nullTime(p *time.Time) sql.NullTime {
	if p == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *p, Valid: true}
}

func stringPtr(n sql.NullString) *string {
	if !n.Valid {
		return nil
	}
	s := n.String
	return &s
}

func timePtr(n sql.NullTime) *time.Time {
	if !n.Valid {
		return nil
	}
	t := n.Time
	return &t
}
