package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/SscSPs/secure_auth_app/internal/apperrors"
	"github.com/SscSPs/secure_auth_app/internal/core/domain"
	portsrepo "github.com/SscSPs/secure_auth_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/secure_auth_app/internal/core/ports/services"
	"github.com/SscSPs/secure_auth_app/internal/dto"
	"github.com/SscSPs/secure_auth_app/internal/middleware"
	"github.com/SscSPs/secure_auth_app/internal/platform/config"
)

// jeniyaModels are the video models served by the Jeniya upstream; everything
// else on the unified endpoint goes to XGAI.
var jeniyaModels = map[string]bool{
	"veo3":        true,
	"veo3-fast":   true,
	"veo3-frames": true,
}

// generationService proxies generation calls to the upstream providers and
// keeps a bookkeeping row per task. The bookkeeping is best effort: a failed
// insert or update is logged and never surfaced to the caller.
type generationService struct {
	cfg        *config.Config
	genRepo    portsrepo.GenerationRepository
	httpClient *http.Client
}

// NewGenerationService creates a new instance of generationService.
func NewGenerationService(cfg *config.Config, genRepo portsrepo.GenerationRepository) portssvc.GenerationSvcFacade {
	return &generationService{
		cfg:     cfg,
		genRepo: genRepo,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

var _ portssvc.GenerationSvcFacade = (*generationService)(nil)

// GenerateVideo submits a unified video generation request, routing by model,
// and normalizes the provider's task handle to task_id.
func (s *generationService) GenerateVideo(ctx context.Context, req dto.VideoGenerateRequest) (*dto.TaskCreatedResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.Model == "" {
		req.Model = "veo2"
	}
	if req.AspectRatio == "" {
		req.AspectRatio = "16:9"
	}

	payload := map[string]any{
		"prompt":       req.Prompt,
		"model":        req.Model,
		"aspect_ratio": req.AspectRatio,
	}
	if req.EnhancePrompt != nil {
		payload["enhance_prompt"] = *req.EnhancePrompt
	}
	if req.EnableUpsample != nil {
		payload["enable_upsample"] = *req.EnableUpsample
	}
	if len(req.Images) > 0 {
		payload["images"] = req.Images
	}

	var data map[string]any
	var taskIDField string
	if jeniyaModels[req.Model] {
		var err error
		data, err = s.postJSON(ctx, s.cfg.Veo3CreateURL, s.cfg.Veo3APIKey, payload)
		if err != nil {
			return nil, err
		}
		// Jeniya returns the handle as id.
		taskIDField = "id"
	} else {
		var err error
		data, err = s.postJSON(ctx, s.cfg.Veo.BaseURL, s.cfg.Veo.APIKey, payload)
		if err != nil {
			return nil, err
		}
		taskIDField = "task_id"
	}

	taskID, _ := data[taskIDField].(string)
	if taskID == "" {
		return nil, fmt.Errorf("%w: provider returned no task handle", apperrors.ErrExternalService)
	}

	if err := s.genRepo.SaveGeneration(ctx, domain.Generation{
		TaskID:      taskID,
		Model:       req.Model,
		Prompt:      req.Prompt,
		Images:      req.Images,
		AspectRatio: req.AspectRatio,
		Status:      domain.GenerationPending,
		CreatedAt:   time.Now(),
	}); err != nil {
		logger.Warn("Failed to record generation", slog.String("task_id", taskID), slog.String("error", err.Error()))
	}

	return &dto.TaskCreatedResponse{TaskID: taskID}, nil
}

// GetTaskStatus polls the provider owning the task. Jeniya task IDs carry a
// veo3 prefix and are queried by parameter; XGAI tasks by path. A terminal
// status in the response resolves the bookkeeping row.
func (s *generationService) GetTaskStatus(ctx context.Context, taskID string) (map[string]any, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	var data map[string]any
	var err error
	if strings.HasPrefix(taskID, "veo3") {
		queryURL := fmt.Sprintf("%s?id=%s", s.cfg.Veo3QueryURL, url.QueryEscape(taskID))
		data, err = s.getJSON(ctx, queryURL, s.cfg.Veo3APIKey)
		if err != nil {
			return nil, err
		}
		// Jeniya nests the playable URL under detail; lift it so clients get a
		// uniform shape across providers.
		if detail, ok := data["detail"].(map[string]any); ok {
			if videoURL, ok := detail["video_url"]; ok {
				data["video_url"] = videoURL
			}
		}
	} else {
		data, err = s.getJSON(ctx, s.cfg.Veo.BaseURL+"/"+url.PathEscape(taskID), s.cfg.Veo.APIKey)
		if err != nil {
			return nil, err
		}
	}

	status, _ := data["status"].(string)
	switch status {
	case "succeeded":
		videoURL := extractVideoURL(data)
		if err := s.genRepo.MarkGenerationSucceeded(ctx, taskID, videoURL); err != nil {
			logger.Warn("Failed to resolve generation", slog.String("task_id", taskID), slog.String("error", err.Error()))
		}
	case "failed":
		if err := s.genRepo.MarkGenerationFailed(ctx, taskID); err != nil {
			logger.Warn("Failed to resolve generation", slog.String("task_id", taskID), slog.String("error", err.Error()))
		}
	}

	return data, nil
}

// SoraGenerate submits a Sora task and records it as pending.
func (s *generationService) SoraGenerate(ctx context.Context, req dto.SoraGenerateRequest) (map[string]any, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.AspectRatio == "" {
		req.AspectRatio = "9:16"
	}
	if req.Duration == 0 {
		req.Duration = 10
	}
	if req.Size == "" {
		req.Size = "small"
	}

	payload := map[string]any{
		"model":        "sora-2",
		"prompt":       req.Prompt,
		"webHook":      "-1",
		"aspectRatio":  req.AspectRatio,
		"duration":     req.Duration,
		"size":         req.Size,
		"shutProgress": false,
	}
	if req.URL != "" {
		payload["url"] = req.URL
	}

	data, err := s.postJSON(ctx, s.cfg.Sora.BaseURL+"/video/sora-video", s.cfg.Sora.APIKey, payload)
	if err != nil {
		return nil, err
	}

	if code, ok := data["code"].(float64); !ok || code != 0 {
		msg, _ := data["msg"].(string)
		if msg == "" {
			msg = "unknown provider error"
		}
		return nil, fmt.Errorf("%w: %s", apperrors.ErrExternalService, msg)
	}

	inner, _ := data["data"].(map[string]any)
	taskID, _ := inner["id"].(string)
	if taskID == "" {
		return nil, fmt.Errorf("%w: provider returned no task handle", apperrors.ErrExternalService)
	}

	if err := s.genRepo.SaveGeneration(ctx, domain.Generation{
		TaskID:      taskID,
		Model:       "sora2",
		Prompt:      req.Prompt,
		Images:      []string{},
		AspectRatio: req.AspectRatio,
		Status:      domain.GenerationPending,
		CreatedAt:   time.Now(),
	}); err != nil {
		logger.Warn("Failed to record generation", slog.String("task_id", taskID), slog.String("error", err.Error()))
	}

	return map[string]any{"task_id": taskID}, nil
}

// SoraResult queries the result of a Sora task (the upstream uses POST for
// result lookups) and maps it to the uniform status shape.
func (s *generationService) SoraResult(ctx context.Context, taskID string) (map[string]any, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	data, err := s.postJSON(ctx, s.cfg.Sora.BaseURL+"/draw/result", s.cfg.Sora.APIKey, map[string]any{"id": taskID})
	if err != nil {
		return nil, err
	}

	if code, ok := data["code"].(float64); !ok || code != 0 {
		msg, _ := data["msg"].(string)
		return map[string]any{"status": "failed", "error": msg}, nil
	}

	inner, _ := data["data"].(map[string]any)
	status, _ := inner["status"].(string)

	switch status {
	case "succeeded":
		var videoURL *string
		if results, ok := inner["results"].([]any); ok && len(results) > 0 {
			if first, ok := results[0].(map[string]any); ok {
				if u, ok := first["url"].(string); ok {
					videoURL = &u
				}
			}
		}
		if err := s.genRepo.MarkGenerationSucceeded(ctx, taskID, videoURL); err != nil {
			logger.Warn("Failed to resolve generation", slog.String("task_id", taskID), slog.String("error", err.Error()))
		}
		result := map[string]any{"status": "succeeded", "raw": inner}
		if videoURL != nil {
			result["video_url"] = *videoURL
		} else {
			result["video_url"] = nil
		}
		return result, nil
	case "failed":
		if err := s.genRepo.MarkGenerationFailed(ctx, taskID); err != nil {
			logger.Warn("Failed to resolve generation", slog.String("task_id", taskID), slog.String("error", err.Error()))
		}
		return map[string]any{"status": "failed", "error": inner["failure_reason"]}, nil
	default:
		progress, ok := inner["progress"]
		if !ok {
			progress = 0
		}
		return map[string]any{"status": "processing", "progress": progress}, nil
	}
}

// NanoGenerate runs a synchronous image generation. The provider answers with
// the finished result, so the bookkeeping row is inserted already succeeded
// under a locally minted task ID, which is echoed back to the caller.
func (s *generationService) NanoGenerate(ctx context.Context, req dto.NanoGenerateRequest) (map[string]any, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.AspectRatio == "" {
		req.AspectRatio = "16:9"
	}

	payload := map[string]any{
		"model":           req.Model,
		"prompt":          req.Prompt,
		"aspect_ratio":    req.AspectRatio,
		"response_format": "url",
	}
	if req.Model == "nano-banana-2" && req.ImageSize != "" {
		payload["image_size"] = req.ImageSize
	}
	if len(req.Images) > 0 {
		payload["image"] = req.Images
	}

	data, err := s.postJSON(ctx, s.cfg.Nano.BaseURL+"/images/generations", s.cfg.Nano.APIKey, payload)
	if err != nil {
		return nil, err
	}

	taskID := "nano-" + strings.ReplaceAll(uuid.NewString(), "-", "")

	var imageURLs []string
	if items, ok := data["data"].([]any); ok {
		for _, item := range items {
			if m, ok := item.(map[string]any); ok {
				if u, ok := m["url"].(string); ok && u != "" {
					imageURLs = append(imageURLs, u)
				}
			}
		}
	} else if u, ok := data["url"].(string); ok && u != "" {
		imageURLs = append(imageURLs, u)
	}

	now := time.Now()
	if err := s.genRepo.SaveGeneration(ctx, domain.Generation{
		TaskID:      taskID,
		Model:       req.Model,
		Prompt:      req.Prompt,
		Images:      imageURLs,
		AspectRatio: req.AspectRatio,
		Status:      domain.GenerationSucceeded,
		CreatedAt:   now,
		CompletedAt: &now,
	}); err != nil {
		logger.Warn("Failed to record generation", slog.String("task_id", taskID), slog.String("error", err.Error()))
	}

	data["task_id"] = taskID
	return data, nil
}

func (s *generationService) postJSON(ctx context.Context, endpoint, apiKey string, payload map[string]any) (map[string]any, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode provider payload: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build provider request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+apiKey)
	return s.doJSON(ctx, req)
}

func (s *generationService) getJSON(ctx context.Context, endpoint, apiKey string) (map[string]any, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build provider request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+apiKey)
	return s.doJSON(ctx, req)
}

func (s *generationService) doJSON(ctx context.Context, req *http.Request) (map[string]any, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		logger.Error("Provider request failed", slog.String("url", req.URL.String()), slog.String("error", err.Error()))
		return nil, fmt.Errorf("%w: provider unreachable", apperrors.ErrExternalService)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read provider response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		logger.Error("Provider returned non-200",
			slog.String("url", req.URL.String()),
			slog.Int("status", resp.StatusCode),
			slog.String("body", string(raw)),
		)
		return nil, fmt.Errorf("%w: provider returned status %d", apperrors.ErrExternalService, resp.StatusCode)
	}

	var data map[string]any
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("failed to decode provider response: %w", err)
	}
	return data, nil
}

func extractVideoURL(data map[string]any) *string {
	if u, ok := data["video_url"].(string); ok && u != "" {
		return &u
	}
	if inner, ok := data["data"].(map[string]any); ok {
		if u, ok := inner["video_url"].(string); ok && u != "" {
			return &u
		}
	}
	return nil
}
