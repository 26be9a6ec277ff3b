package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/SscSPs/secure_auth_app/internal/apperrors"
	"github.com/SscSPs/secure_auth_app/internal/core/domain"
	portsrepo "github.com/SscSPs/secure_auth_app/internal/core/ports/repositories"
)

type PgxPasswordResetRepository struct {
	BaseRepository
}

func newPgxPasswordResetRepository(db *pgxpool.Pool) portsrepo.PasswordResetRepository {
	return &PgxPasswordResetRepository{BaseRepository{Pool: db}}
}

var _ portsrepo.PasswordResetRepository = (*PgxPasswordResetRepository)(nil)

// ReplaceResetRequest keeps at most one live reset request per email: the delete
// and insert share a transaction so concurrent requests cannot leave two tokens
// standing.
func (r *PgxPasswordResetRepository) ReplaceResetRequest(ctx context.Context, reset domain.PasswordReset) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	if _, err := tx.Exec(ctx, `DELETE FROM password_resets WHERE email = $1;`, reset.Email); err != nil {
		return fmt.Errorf("failed to clear prior reset requests: %w", err)
	}

	insert := `
		INSERT INTO password_resets (email, token, expires_at, created_at)
		VALUES ($1, $2, $3, $4);
	`
	if _, err := tx.Exec(ctx, insert, reset.Email, reset.Token, reset.ExpiresAt, reset.CreatedAt); err != nil {
		return fmt.Errorf("failed to store reset request: %w", err)
	}

	return r.Commit(ctx, tx)
}

// ConsumeResetToken spends the token and applies the new credentials in one
// transaction. The DELETE ... RETURNING is the single-use gate: whichever of two
// racing requests deletes the row wins, the other sees ErrInvalidToken.
// A consumed reset also clears any lockout, so a locked-out owner can recover
// their account through this flow.
func (r *PgxPasswordResetRepository) ConsumeResetToken(ctx context.Context, token string, newPasswordHash string) (string, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return "", err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	var email string
	consume := `
		DELETE FROM password_resets
		WHERE token = $1 AND expires_at > now()
		RETURNING email;
	`
	if err := tx.QueryRow(ctx, consume, token).Scan(&email); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", apperrors.ErrInvalidToken
		}
		return "", fmt.Errorf("failed to consume reset token: %w", err)
	}

	update := `
		UPDATE users
		SET password_hash = $2,
		    is_locked = FALSE,
		    failed_login_attempts = 0,
		    updated_at = now()
		WHERE email = $1;
	`
	tag, err := tx.Exec(ctx, update, email, newPasswordHash)
	if err != nil {
		return "", fmt.Errorf("failed to update password: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return "", apperrors.ErrNotFound
	}

	if err := r.Commit(ctx, tx); err != nil {
		return "", err
	}
	return email, nil
}
