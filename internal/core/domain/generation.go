package domain

import "time"

// GenerationStatus is the lifecycle state of a generation task. Closed set.
type GenerationStatus string

const (
	GenerationPending   GenerationStatus = "pending"
	GenerationSucceeded GenerationStatus = "succeeded"
	GenerationFailed    GenerationStatus = "failed"
)

// Generation records a video or image generation task proxied to an upstream
// provider. The record is best-effort bookkeeping around the pass-through call:
// it starts pending and is resolved when a status poll reports a terminal state.
type Generation struct {
	TaskID      string           `json:"taskID"`
	Model       string           `json:"model"`
	Prompt      string           `json:"prompt"`
	Images      []string         `json:"images,omitempty"`
	AspectRatio string           `json:"aspectRatio"`
	Status      GenerationStatus `json:"status"`
	VideoURL    *string          `json:"videoURL,omitempty"`
	CreatedAt   time.Time        `json:"createdAt"`
	CompletedAt *time.Time       `json:"completedAt,omitempty"`
}
