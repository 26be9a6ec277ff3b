package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/secure_auth_app/internal/apperrors"
	"github.com/SscSPs/secure_auth_app/internal/core/domain"
	portsrepo "github.com/SscSPs/secure_auth_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/secure_auth_app/internal/core/ports/services"
	"github.com/SscSPs/secure_auth_app/internal/middleware"
	"github.com/SscSPs/secure_auth_app/internal/platform/config"
	"github.com/SscSPs/secure_auth_app/internal/utils"
)

// passwordResetService drives the forgot/reset flow on single-use tokens.
type passwordResetService struct {
	cfg       *config.Config
	userRepo  portsrepo.UserRepositoryFacade
	resetRepo portsrepo.PasswordResetRepository
	mailer    portssvc.MailerSvc
}

// NewPasswordResetService creates a new instance of passwordResetService.
func NewPasswordResetService(cfg *config.Config, userRepo portsrepo.UserRepositoryFacade, resetRepo portsrepo.PasswordResetRepository, mailer portssvc.MailerSvc) portssvc.PasswordResetSvcFacade {
	return &passwordResetService{
		cfg:       cfg,
		userRepo:  userRepo,
		resetRepo: resetRepo,
		mailer:    mailer,
	}
}

var _ portssvc.PasswordResetSvcFacade = (*passwordResetService)(nil)

// RequestPasswordReset issues a fresh token when the email belongs to an
// account. It returns nil either way; the caller's response must not betray
// whether the email exists.
func (s *passwordResetService) RequestPasswordReset(ctx context.Context, email string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	_, err := s.userRepo.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Info("Password reset requested for unknown email")
			return nil
		}
		return fmt.Errorf("failed to look up email for reset: %w", err)
	}

	token, err := utils.GenerateSecureRandomString(32)
	if err != nil {
		return fmt.Errorf("failed to generate reset token: %w", err)
	}

	now := time.Now()
	reset := domain.PasswordReset{
		Email:     email,
		Token:     token,
		ExpiresAt: now.Add(s.cfg.ResetTokenTTL),
		CreatedAt: now,
	}
	if err := s.resetRepo.ReplaceResetRequest(ctx, reset); err != nil {
		return fmt.Errorf("failed to store reset request: %w", err)
	}

	s.mailer.SendPasswordResetEmail(email, token)
	logger.Info("Password reset token issued")
	return nil
}

// ResetPassword consumes the token and installs the new password. Consumption,
// credential update and unlock happen in one repository transaction.
func (s *passwordResetService) ResetPassword(ctx context.Context, token, newPassword string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	hash, err := utils.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash new password: %w", err)
	}

	email, err := s.resetRepo.ConsumeResetToken(ctx, token, hash)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidToken) {
			return apperrors.ErrInvalidToken
		}
		return fmt.Errorf("failed to reset password: %w", err)
	}

	logger.Info("Password reset completed", slog.String("email", email))
	return nil
}
