package repositories

import (
	"context"

	"github.com/SscSPs/secure_auth_app/internal/core/domain"
)

// GenerationRepository persists bookkeeping rows for proxied generation tasks.
type GenerationRepository interface {
	// SaveGeneration inserts a new task record.
	SaveGeneration(ctx context.Context, generation domain.Generation) error

	// MarkGenerationSucceeded resolves a pending task with its result URL.
	MarkGenerationSucceeded(ctx context.Context, taskID string, videoURL *string) error

	// MarkGenerationFailed resolves a pending task as failed.
	MarkGenerationFailed(ctx context.Context, taskID string) error
}
