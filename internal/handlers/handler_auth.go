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

// ErrorResponse is a generic error response structure for handlers.
type ErrorResponse struct {
	Error string `json:"error"`
}

// respondError writes an AppError at its status code. The serialized body has
// the same {"error": ...} shape as ErrorResponse.
func respondError(c *gin.Context, appErr *apperrors.AppError) {
	c.JSON(appErr.Code, appErr)
}

// AuthHandler handles authentication related requests.
type AuthHandler struct {
	userService  portssvc.UserSvcFacade
	tokenService portssvc.TokenSvcFacade
	resetService portssvc.PasswordResetSvcFacade
	captchaSvc   portssvc.CaptchaVerifier
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(services *portssvc.ServiceContainer) *AuthHandler {
	return &AuthHandler{
		userService:  services.User,
		tokenService: services.Token,
		resetService: services.PasswordReset,
		captchaSvc:   services.Captcha,
	}
}

// registerAuthRoutes sets up the public authentication routes. The rate limit
// middleware guards the endpoints an attacker can grind on.
func registerAuthRoutes(r *gin.Engine, services *portssvc.ServiceContainer, rateLimit gin.HandlerFunc) {
	h := NewAuthHandler(services)

	r.POST("/register", rateLimit, h.Register)
	r.POST("/token", rateLimit, h.Login)
	r.POST("/verify-email", h.VerifyEmail)
	r.POST("/resend-verification", rateLimit, h.ResendVerification)
	r.POST("/forgot-password", rateLimit, h.ForgotPassword)
	r.POST("/reset-password", h.ResetPassword)
}

// Register godoc
// @Summary Register new user
// @Description Creates an unverified account and sends a verification email. Requires a captcha token.
// @Tags auth
// @Accept json
// @Produce json
// @Param register body dto.RegisterRequest true "Registration details"
// @Success 201 {object} dto.RegisterResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	if err := h.captchaSvc.Verify(c.Request.Context(), req.CaptchaToken, c.ClientIP()); err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			respondError(c, apperrors.NewBadRequestError("Captcha verification failed"))
			return
		}
		logger.Error("Captcha verification errored", slog.String("error", err.Error()))
		respondError(c, apperrors.NewBadGatewayError("Captcha verification unavailable"))
		return
	}

	user, err := h.userService.RegisterUser(c.Request.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			respondError(c, apperrors.NewConflictError("Username or email already registered"))
			return
		}
		logger.Error("Failed to register user", slog.String("error", err.Error()))
		respondError(c, apperrors.NewInternalServerError("Failed to create account"))
		return
	}

	c.JSON(http.StatusCreated, dto.RegisterResponse{
		Message:  "Registration successful. Please check your email to activate the account.",
		Username: user.Username,
		Email:    user.Email,
	})
}

// Login godoc
// @Summary User login
// @Description Authenticates with username and password and returns a JWT. The response flags logins that deviate from the account's history.
// @Tags auth
// @Accept json
// @Produce json
// @Param login body dto.LoginRequest true "Login credentials"
// @Success 200 {object} dto.TokenResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /token [post]
func (h *AuthHandler) Login(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	user, risk, err := h.userService.AuthenticateUser(c.Request.Context(), req.Username, req.Password, c.ClientIP(), c.Request.UserAgent())
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrInvalidCredentials):
			respondError(c, apperrors.NewUnauthorizedError("Invalid username or password"))
		case errors.Is(err, apperrors.ErrAccountLocked):
			respondError(c, apperrors.NewForbiddenError("Account is locked, please contact an administrator"))
		case errors.Is(err, apperrors.ErrAccountInactive):
			respondError(c, apperrors.NewForbiddenError("Account is not active, please verify your email first"))
		default:
			logger.Error("Login failed", slog.String("error", err.Error()))
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

// VerifyEmail godoc
// @Summary Verify email address
// @Description Consumes an emailed verification token, activates the account and logs it in.
// @Tags auth
// @Accept json
// @Produce json
// @Param verify body dto.VerifyEmailRequest true "Verification token"
// @Success 200 {object} dto.VerifyEmailResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /verify-email [post]
func (h *AuthHandler) VerifyEmail(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.VerifyEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	user, err := h.userService.VerifyEmail(c.Request.Context(), req.Token)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidToken) {
			respondError(c, apperrors.NewBadRequestError("Verification link is invalid or expired"))
			return
		}
		logger.Error("Failed to verify email", slog.String("error", err.Error()))
		respondError(c, apperrors.NewInternalServerError("Internal server error"))
		return
	}

	token, err := h.tokenService.GenerateAccessToken(c.Request.Context(), user)
	if err != nil {
		logger.Error("Failed to generate token", slog.String("error", err.Error()))
		respondError(c, apperrors.NewInternalServerError("Failed to generate token"))
		return
	}

	c.JSON(http.StatusOK, dto.VerifyEmailResponse{
		Message:     "Email verified successfully",
		AccessToken: token,
		TokenType:   "bearer",
	})
}

// ResendVerification godoc
// @Summary Resend verification email
// @Description Issues a fresh verification token. The response is identical whether or not the email is registered or already verified.
// @Tags auth
// @Accept json
// @Produce json
// @Param resend body dto.ResendVerificationRequest true "Target email"
// @Success 200 {object} dto.MessageResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /resend-verification [post]
func (h *AuthHandler) ResendVerification(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.ResendVerificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	if err := h.userService.ResendVerification(c.Request.Context(), req.Email); err != nil {
		logger.Error("Failed to resend verification", slog.String("error", err.Error()))
		respondError(c, apperrors.NewInternalServerError("Internal server error"))
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{
		Message: "If the email is registered, a verification email will be sent",
	})
}

// ForgotPassword godoc
// @Summary Request password reset
// @Description Issues a single-use reset token. The response is identical whether or not the email is registered.
// @Tags auth
// @Accept json
// @Produce json
// @Param forgot body dto.ForgotPasswordRequest true "Target email"
// @Success 200 {object} dto.MessageResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /forgot-password [post]
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	if err := h.resetService.RequestPasswordReset(c.Request.Context(), req.Email); err != nil {
		logger.Error("Failed to request password reset", slog.String("error", err.Error()))
		respondError(c, apperrors.NewInternalServerError("Internal server error"))
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{
		Message: "If the email is registered, a reset email will be sent",
	})
}

// ResetPassword godoc
// @Summary Reset password
// @Description Consumes a reset token and installs a new password. A successful reset also unlocks the account.
// @Tags auth
// @Accept json
// @Produce json
// @Param reset body dto.ResetPasswordRequest true "Reset token and new password"
// @Success 200 {object} dto.MessageResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /reset-password [post]
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	if err := h.resetService.ResetPassword(c.Request.Context(), req.Token, req.NewPassword); err != nil {
		if errors.Is(err, apperrors.ErrInvalidToken) {
			respondError(c, apperrors.NewBadRequestError("Reset link is invalid or expired"))
			return
		}
		logger.Error("Failed to reset password", slog.String("error", err.Error()))
		respondError(c, apperrors.NewInternalServerError("Internal server error"))
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{
		Message: "Password reset successfully, please log in with the new password",
	})
}
