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

// GoogleOAuthHandler handles Google token-based login. The frontend obtains an
// ID token from Google directly; this handler only verifies it and admits the
// matching account.
type GoogleOAuthHandler struct {
	googleOAuthService portssvc.GoogleOAuthSvcFacade
	userService        portssvc.UserSvcFacade
	tokenService       portssvc.TokenSvcFacade
}

// NewGoogleOAuthHandler creates a new instance of GoogleOAuthHandler.
func NewGoogleOAuthHandler(services *portssvc.ServiceContainer) *GoogleOAuthHandler {
	return &GoogleOAuthHandler{
		googleOAuthService: services.GoogleOAuth,
		userService:        services.User,
		tokenService:       services.Token,
	}
}

func registerGoogleOAuthRoutes(r *gin.Engine, services *portssvc.ServiceContainer) {
	h := NewGoogleOAuthHandler(services)
	r.POST("/login/google", h.LoginGoogle)
}

// LoginGoogle godoc
// @Summary Login with a Google ID token
// @Description Validates a Google-issued ID token and logs the matching account in, provisioning it on first contact.
// @Tags auth
// @Accept json
// @Produce json
// @Param login body dto.GoogleLoginRequest true "Google ID token"
// @Success 200 {object} dto.TokenResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /login/google [post]
func (h *GoogleOAuthHandler) LoginGoogle(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.GoogleLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	payload, err := h.googleOAuthService.ValidateGoogleIDToken(c.Request.Context(), req.IDToken)
	if err != nil {
		logger.Warn("Google ID token validation failed", slog.String("error", err.Error()))
		respondError(c, apperrors.NewUnauthorizedError("Google token validation failed"))
		return
	}

	email, _ := payload.Claims["email"].(string)
	if email == "" {
		logger.Error("Google ID token has no email claim")
		respondError(c, apperrors.NewUnauthorizedError("Google token validation failed"))
		return
	}

	user, risk, err := h.userService.AuthenticateGoogleUser(c.Request.Context(), email, payload.Subject, c.ClientIP(), c.Request.UserAgent())
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrAccountLocked):
			respondError(c, apperrors.NewForbiddenError("Account is locked, please contact an administrator"))
		case errors.Is(err, apperrors.ErrAccountInactive):
			respondError(c, apperrors.NewForbiddenError("Account is not active, please verify your email first"))
		default:
			logger.Error("Google login failed", slog.String("error", err.Error()))
			respondError(c, apperrors.NewInternalServerError("Internal server error"))
		}
		return
	}

	token, err := h.tokenService.GenerateAccessToken(c.Request.Context(), user)
	if err != nil {
		logger.Error("Failed to generate token", slog.String("error", err.Error()))
		respondError(c, apperrors.NewInternalServerError("Failed to generate token"))
		return
	}

	suspicious := risk.Suspicious
	c.JSON(http.StatusOK, dto.TokenResponse{
		AccessToken:     token,
		TokenType:       "bearer",
		SuspiciousLogin: &suspicious,
	})
}
