package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SscSPs/secure_auth_app/internal/apperrors"
	portssvc "github.com/SscSPs/secure_auth_app/internal/core/ports/services"
	"github.com/SscSPs/secure_auth_app/internal/dto"
	"github.com/SscSPs/secure_auth_app/internal/middleware"
)

// generationHandler exposes the authenticated proxy endpoints for the upstream
// generation providers.
type generationHandler struct {
	generationService portssvc.GenerationSvcFacade
}

// newGenerationHandler creates a new generationHandler.
func newGenerationHandler(services *portssvc.ServiceContainer) *generationHandler {
	return &generationHandler{generationService: services.Generation}
}

// registerGenerationRoutes registers the generation proxy routes.
func registerGenerationRoutes(rg *gin.RouterGroup, services *portssvc.ServiceContainer) {
	h := newGenerationHandler(services)

	rg.POST("/api/generate/video", h.generateVideo)
	rg.GET("/api/tasks/:taskID", h.getTaskStatus)
	rg.POST("/api/proxy/sora/generate", h.soraGenerate)
	rg.GET("/api/proxy/sora/result/:taskID", h.soraResult)
	rg.POST("/api/proxy/nano/generate", h.nanoGenerate)
}

func (h *generationHandler) respondError(c *gin.Context, err error, action string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	if errors.Is(err, apperrors.ErrExternalService) {
		logger.Error(action+" failed upstream", slog.String("error", err.Error()))
		respondError(c, apperrors.NewBadGatewayError(err.Error()))
		return
	}
	logger.Error(action+" failed", slog.String("error", err.Error()))
	respondError(c, apperrors.NewInternalServerError("Internal server error"))
}

// generateVideo godoc
// @Summary Generate a video
// @Description Submits a video generation task, routed by model to the serving provider.
// @Tags generation
// @Accept json
// @Produce json
// @Param request body dto.VideoGenerateRequest true "Generation request"
// @Success 200 {object} dto.TaskCreatedResponse
// @Failure 400 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Security BearerAuth
// @Router /api/generate/video [post]
func (h *generationHandler) generateVideo(c *gin.Context) {
	var req dto.VideoGenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	resp, err := h.generationService.GenerateVideo(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, err, "Video generation")
		return
	}

	c.JSON(http.StatusOK, resp)
}

// getTaskStatus godoc
// @Summary Get generation task status
// @Description Polls the provider owning the task and relays its status payload.
// @Tags generation
// @Produce json
// @Param taskID path string true "Task ID"
// @Success 200 {object} map[string]interface{}
// @Failure 502 {object} ErrorResponse
// @Security BearerAuth
// @Router /api/tasks/{taskID} [get]
func (h *generationHandler) getTaskStatus(c *gin.Context) {
	result, err := h.generationService.GetTaskStatus(c.Request.Context(), c.Param("taskID"))
	if err != nil {
		h.respondError(c, err, "Task status lookup")
		return
	}

	c.JSON(http.StatusOK, result)
}

// soraGenerate godoc
// @Summary Generate a Sora video
// @Description Submits a task to the Sora provider and returns its task handle.
// @Tags generation
// @Accept json
// @Produce json
// @Param request body dto.SoraGenerateRequest true "Generation request"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Security BearerAuth
// @Router /api/proxy/sora/generate [post]
func (h *generationHandler) soraGenerate(c *gin.Context) {
	var req dto.SoraGenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	result, err := h.generationService.SoraGenerate(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, err, "Sora generation")
		return
	}

	c.JSON(http.StatusOK, result)
}

// soraResult godoc
// @Summary Get Sora task result
// @Description Fetches the result of a Sora task, normalized to status/video_url.
// @Tags generation
// @Produce json
// @Param taskID path string true "Task ID"
// @Success 200 {object} map[string]interface{}
// @Failure 502 {object} ErrorResponse
// @Security BearerAuth
// @Router /api/proxy/sora/result/{taskID} [get]
func (h *generationHandler) soraResult(c *gin.Context) {
	result, err := h.generationService.SoraResult(c.Request.Context(), c.Param("taskID"))
	if err != nil {
		h.respondError(c, err, "Sora result lookup")
		return
	}

	c.JSON(http.StatusOK, result)
}

// nanoGenerate godoc
// @Summary Generate an image
// @Description Runs a synchronous image generation and relays the provider payload with a local task ID attached.
// @Tags generation
// @Accept json
// @Produce json
// @Param request body dto.NanoGenerateRequest true "Generation request"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Security BearerAuth
// @Router /api/proxy/nano/generate [post]
func (h *generationHandler) nanoGenerate(c *gin.Context) {
	var req dto.NanoGenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	result, err := h.generationService.NanoGenerate(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, err, "Nano generation")
		return
	}

	c.JSON(http.StatusOK, result)
}
