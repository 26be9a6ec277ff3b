package services

import (
	"context"

	"github.com/SscSPs/secure_auth_app/internal/dto"
)

// GenerationSvcFacade proxies generation requests to the upstream providers and
// keeps bookkeeping records for issued tasks. Upstream responses are relayed to
// the caller largely as-is.
type GenerationSvcFacade interface {
	// GenerateVideo submits a video generation task, routing to the provider that
	// serves the requested model, and returns the normalized task handle.
	GenerateVideo(ctx context.Context, req dto.VideoGenerateRequest) (*dto.TaskCreatedResponse, error)

	// GetTaskStatus polls the provider owning the task for its current state.
	GetTaskStatus(ctx context.Context, taskID string) (map[string]any, error)

	// SoraGenerate submits a task to the Sora provider.
	SoraGenerate(ctx context.Context, req dto.SoraGenerateRequest) (map[string]any, error)

	// SoraResult fetches the result of a Sora task.
	SoraResult(ctx context.Context, taskID string) (map[string]any, error)

	// NanoGenerate runs a synchronous image generation and returns the provider
	// payload under a locally minted task ID.
	NanoGenerate(ctx context.Context, req dto.NanoGenerateRequest) (map[string]any, error)
}
