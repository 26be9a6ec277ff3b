package dto

// VideoGenerateRequest is the unified video generation payload. The model field
// selects the upstream provider; images are optional first/last frames for the
// frame-conditioned models.
type VideoGenerateRequest struct {
	Prompt         string   `json:"prompt" binding:"required"`
	Model          string   `json:"model"`
	AspectRatio    string   `json:"aspect_ratio"`
	EnhancePrompt  *bool    `json:"enhance_prompt"`
	EnableUpsample *bool    `json:"enable_upsample"`
	Images         []string `json:"images"`
}

// TaskCreatedResponse is the normalized handle returned for an accepted
// asynchronous generation task.
type TaskCreatedResponse struct {
	TaskID string `json:"task_id"`
}

// SoraGenerateRequest is the payload for the Sora video provider.
type SoraGenerateRequest struct {
	Prompt      string `json:"prompt" binding:"required"`
	URL         string `json:"url,omitempty"`
	AspectRatio string `json:"aspectRatio"`
	Duration    int    `json:"duration"`
	Size        string `json:"size"`
}

// NanoGenerateRequest is the payload for the synchronous Nano image provider.
type NanoGenerateRequest struct {
	Model       string   `json:"model" binding:"required"`
	Prompt      string   `json:"prompt" binding:"required"`
	AspectRatio string   `json:"aspect_ratio"`
	ImageSize   string   `json:"image_size"`
	Images      []string `json:"images"`
}
