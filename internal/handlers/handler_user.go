package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SscSPs/secure_auth_app/internal/apperrors"
	portssvc "github.com/SscSPs/secure_auth_app/internal/core/ports/services"
	"github.com/SscSPs/secure_auth_app/internal/dto"
	"github.com/SscSPs/secure_auth_app/internal/middleware"
)

// userHandler handles requests about the authenticated account.
type userHandler struct {
	tokenService portssvc.TokenSvcFacade
}

// newUserHandler creates a new userHandler.
func newUserHandler(services *portssvc.ServiceContainer) *userHandler {
	return &userHandler{tokenService: services.Token}
}

// registerUserRoutes registers the authenticated account routes.
func registerUserRoutes(rg *gin.RouterGroup, services *portssvc.ServiceContainer) {
	h := newUserHandler(services)

	rg.GET("/me", h.getMe)
	rg.POST("/refresh", h.refresh)
}

// getMe godoc
// @Summary Get current user
// @Description Returns the public profile of the authenticated account.
// @Tags users
// @Produce json
// @Success 200 {object} dto.UserResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /me [get]
func (h *userHandler) getMe(c *gin.Context) {
	user, ok := middleware.GetCurrentUserFromContext(c)
	if !ok {
		respondError(c, apperrors.NewUnauthorizedError("Unauthorized"))
		return
	}

	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

// refresh godoc
// @Summary Refresh access token
// @Description Issues a fresh JWT for the authenticated account with current role and points.
// @Tags users
// @Produce json
// @Success 200 {object} dto.TokenResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /refresh [post]
func (h *userHandler) refresh(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	user, ok := middleware.GetCurrentUserFromContext(c)
	if !ok {
		respondError(c, apperrors.NewUnauthorizedError("Unauthorized"))
		return
	}

	token, err := h.tokenService.GenerateAccessToken(c.Request.Context(), user)
	if err != nil {
		logger.Error("Failed to generate token", slog.String("error", err.Error()))
		respondError(c, apperrors.NewInternalServerError("Failed to generate token"))
		return
	}

	c.JSON(http.StatusOK, dto.TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
	})
}
