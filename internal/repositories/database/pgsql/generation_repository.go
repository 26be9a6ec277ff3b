package pgsql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/SscSPs/secure_auth_app/internal/apperrors"
	"github.com/SscSPs/secure_auth_app/internal/core/domain"
	portsrepo "github.com/SscSPs/secure_auth_app/internal/core/ports/repositories"
	"github.com/SscSPs/secure_auth_app/internal/models"
)

type PgxGenerationRepository struct {
	db *pgxpool.Pool
}

func newPgxGenerationRepository(db *pgxpool.Pool) portsrepo.GenerationRepository {
	return &PgxGenerationRepository{db: db}
}

var _ portsrepo.GenerationRepository = (*PgxGenerationRepository)(nil)

func toModelGeneration(d domain.Generation) models.Generation {
	return models.Generation{
		TaskID:      d.TaskID,
		Model:       d.Model,
		Prompt:      d.Prompt,
		Images:      d.Images,
		AspectRatio: d.AspectRatio,
		Status:      string(d.Status),
		VideoURL:    nullString(d.VideoURL),
		CreatedAt:   d.CreatedAt,
		CompletedAt: nullTime(d.CompletedAt),
	}
}

func (r *PgxGenerationRepository) SaveGeneration(ctx context.Context, generation domain.Generation) error {
	m := toModelGeneration(generation)
	query := `
		INSERT INTO generations (task_id, model, prompt, images, aspect_ratio, status,
			video_url, created_at, completed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.db.Exec(ctx, query,
		m.TaskID,
		m.Model,
		m.Prompt,
		m.Images,
		m.AspectRatio,
		m.Status,
		m.VideoURL,
		m.CreatedAt,
		m.CompletedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save generation: %w", err)
	}
	return nil
}

func (r *PgxGenerationRepository) MarkGenerationSucceeded(ctx context.Context, taskID string, videoURL *string) error {
	query := `
		UPDATE generations
		SET status = $2, video_url = $3, completed_at = now()
		WHERE task_id = $1 AND status = $4;
	`
	tag, err := r.db.Exec(ctx, query, taskID, string(domain.GenerationSucceeded), nullString(videoURL), string(domain.GenerationPending))
	if err != nil {
		return fmt.Errorf("failed to mark generation succeeded: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxGenerationRepository) MarkGenerationFailed(ctx context.Context, taskID string) error {
	query := `
		UPDATE generations
		SET status = $2, completed_at = now()
		WHERE task_id = $1 AND status = $3;
	`
	tag, err := r.db.Exec(ctx, query, taskID, string(domain.GenerationFailed), string(domain.GenerationPending))
	if err != nil {
		return fmt.Errorf("failed to mark generation failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
