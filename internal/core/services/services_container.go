package services

import (
	"log/slog"

	portsrepo "github.com/SscSPs/secure_auth_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/secure_auth_app/internal/core/ports/services"
	"github.com/SscSPs/secure_auth_app/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, logger *slog.Logger) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Mailer and risk detector first since the user service depends on them
	container.Mailer = NewMailService(cfg, logger)
	container.Risk = NewRiskService(repos.LoginLogRepo)

	container.User = NewUserService(cfg, repos.UserRepo, repos.LoginLogRepo, container.Risk, container.Mailer)
	container.Token = NewTokenService(cfg)
	container.GoogleOAuth = NewGoogleOAuthService(cfg)
	container.PasswordReset = NewPasswordResetService(cfg, repos.UserRepo, repos.PasswordResetRepo, container.Mailer)
	container.Captcha = NewCaptchaVerifier(cfg)
	container.Generation = NewGenerationService(cfg, repos.GenerationRepo)

	return container
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.UserSvcFacade       = (*userService)(nil)
	_ portssvc.RiskSvcFacade       = (*riskService)(nil)
	_ portssvc.GenerationSvcFacade = (*generationService)(nil)
)
