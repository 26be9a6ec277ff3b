package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/SscSPs/secure_auth_app/internal/apperrors"
	"github.com/SscSPs/secure_auth_app/internal/core/domain"
	portsrepo "github.com/SscSPs/secure_auth_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/secure_auth_app/internal/core/ports/services"
	"github.com/SscSPs/secure_auth_app/internal/middleware"
	"github.com/SscSPs/secure_auth_app/internal/platform/config"
	"github.com/SscSPs/secure_auth_app/internal/utils"
)

// userService is the account state machine. It owns registration, the login
// admission sequence, the verification lifecycle and session resolution.
type userService struct {
	cfg          *config.Config
	userRepo     portsrepo.UserRepositoryFacade
	loginLogRepo portsrepo.LoginLogRepository
	riskSvc      portssvc.RiskSvcFacade
	mailer       portssvc.MailerSvc
}

// NewUserService creates a new instance of userService.
func NewUserService(cfg *config.Config, userRepo portsrepo.UserRepositoryFacade, loginLogRepo portsrepo.LoginLogRepository, riskSvc portssvc.RiskSvcFacade, mailer portssvc.MailerSvc) portssvc.UserSvcFacade {
	return &userService{
		cfg:          cfg,
		userRepo:     userRepo,
		loginLogRepo: loginLogRepo,
		riskSvc:      riskSvc,
		mailer:       mailer,
	}
}

var _ portssvc.UserSvcFacade = (*userService)(nil)

// RegisterUser creates a new account in the Unverified state and dispatches the
// verification email. The account cannot log in until the token is consumed.
func (s *userService) RegisterUser(ctx context.Context, username, email, password string) (*domain.User, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.userRepo.FindUserByUsername(ctx, username); err == nil {
		return nil, fmt.Errorf("%w: username already registered", apperrors.ErrDuplicate)
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check username availability: %w", err)
	}

	if _, err := s.userRepo.FindUserByEmail(ctx, email); err == nil {
		return nil, fmt.Errorf("%w: email already registered", apperrors.ErrDuplicate)
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check email availability: %w", err)
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	token, err := utils.GenerateSecureRandomString(32)
	if err != nil {
		return nil, fmt.Errorf("failed to generate verification token: %w", err)
	}

	now := time.Now()
	expires := now.Add(s.cfg.VerificationTokenTTL)
	user := domain.User{
		UserID:                   uuid.NewString(),
		Username:                 username,
		Email:                    email,
		PasswordHash:             &hash,
		Role:                     domain.DefaultRole,
		Points:                   domain.DefaultPoints,
		EmailVerified:            false,
		VerificationToken:        &token,
		VerificationTokenExpires: &expires,
		IsActive:                 false,
		CreatedAt:                now,
		UpdatedAt:                now,
	}

	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			// Lost a race with a concurrent registration on the same unique column.
			return nil, fmt.Errorf("%w: username or email already registered", apperrors.ErrDuplicate)
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.mailer.SendVerificationEmail(email, token)
	logger.Info("User registered", slog.String("username", username))

	return &user, nil
}

// AuthenticateUser runs the password login admission sequence: existence, lock
// state, active state, then the password itself. Unknown usernames and wrong
// passwords share one generic error; lock and activation failures are explicit.
// Every attempt, admitted or not, lands in the login log.
func (s *userService) AuthenticateUser(ctx context.Context, username, password, ipAddress, userAgent string) (*domain.User, domain.RiskAssessment, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	deviceType := utils.ClassifyDevice(userAgent)

	user, err := s.userRepo.FindUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.logAttempt(ctx, nil, username, domain.LoginMethodPassword, false, ipAddress, userAgent, deviceType, domain.RiskAssessment{})
			return nil, domain.RiskAssessment{}, apperrors.ErrInvalidCredentials
		}
		return nil, domain.RiskAssessment{}, fmt.Errorf("failed to look up user: %w", err)
	}

	if user.IsLocked {
		s.logAttempt(ctx, &user.UserID, username, domain.LoginMethodPassword, false, ipAddress, userAgent, deviceType,
			domain.RiskAssessment{Suspicious: true, Reason: "account is locked"})
		return nil, domain.RiskAssessment{}, apperrors.ErrAccountLocked
	}

	if !user.IsActive {
		s.logAttempt(ctx, &user.UserID, username, domain.LoginMethodPassword, false, ipAddress, userAgent, deviceType,
			domain.RiskAssessment{Suspicious: true, Reason: "account is not active"})
		return nil, domain.RiskAssessment{}, apperrors.ErrAccountInactive
	}

	if !user.HasPassword() || !utils.CheckPasswordHash(password, *user.PasswordHash) {
		attempts, locked, err := s.userRepo.RecordFailedLogin(ctx, username, s.cfg.MaxFailedLogins)
		if err != nil {
			logger.Error("Failed to record failed login", slog.String("error", err.Error()))
		} else if locked {
			logger.Warn("Account locked after repeated failures",
				slog.String("username", username),
				slog.Int("attempts", attempts),
			)
		}
		s.logAttempt(ctx, &user.UserID, username, domain.LoginMethodPassword, false, ipAddress, userAgent, deviceType, domain.RiskAssessment{})
		return nil, domain.RiskAssessment{}, apperrors.ErrInvalidCredentials
	}

	risk := s.riskSvc.AssessLogin(ctx, user.UserID, ipAddress, deviceType)

	s.logAttempt(ctx, &user.UserID, username, domain.LoginMethodPassword, true, ipAddress, userAgent, deviceType, risk)

	if err := s.userRepo.RecordSuccessfulLogin(ctx, user.UserID, ipAddress); err != nil {
		logger.Error("Failed to record successful login", slog.String("error", err.Error()))
	}

	return user, risk, nil
}

// AuthenticateGoogleUser admits a login for a verified Google identity,
// provisioning the account on first contact. Provisioned accounts are active
// and verified immediately and carry no password.
func (s *userService) AuthenticateGoogleUser(ctx context.Context, email, googleID, ipAddress, userAgent string) (*domain.User, domain.RiskAssessment, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	deviceType := utils.ClassifyDevice(userAgent)

	user, err := s.userRepo.FindUserByGoogleID(ctx, googleID)
	if errors.Is(err, apperrors.ErrNotFound) {
		user, err = s.userRepo.FindUserByEmail(ctx, email)
	}
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			return nil, domain.RiskAssessment{}, fmt.Errorf("failed to look up google user: %w", err)
		}
		user, err = s.provisionGoogleUser(ctx, email, googleID)
		if err != nil {
			return nil, domain.RiskAssessment{}, err
		}
		logger.Info("Provisioned account for Google identity", slog.String("username", user.Username))
	}

	// Same admission rules as password logins; a locked or unactivated account
	// is not reachable through the OAuth door either.
	if user.IsLocked {
		s.logAttempt(ctx, &user.UserID, user.Username, domain.LoginMethodGoogle, false, ipAddress, userAgent, deviceType,
			domain.RiskAssessment{Suspicious: true, Reason: "account is locked"})
		return nil, domain.RiskAssessment{}, apperrors.ErrAccountLocked
	}
	if !user.IsActive {
		s.logAttempt(ctx, &user.UserID, user.Username, domain.LoginMethodGoogle, false, ipAddress, userAgent, deviceType,
			domain.RiskAssessment{Suspicious: true, Reason: "account is not active"})
		return nil, domain.RiskAssessment{}, apperrors.ErrAccountInactive
	}

	risk := s.riskSvc.AssessLogin(ctx, user.UserID, ipAddress, deviceType)

	s.logAttempt(ctx, &user.UserID, user.Username, domain.LoginMethodGoogle, true, ipAddress, userAgent, deviceType, risk)

	if err := s.userRepo.RecordSuccessfulLogin(ctx, user.UserID, ipAddress); err != nil {
		logger.Error("Failed to record successful login", slog.String("error", err.Error()))
	}

	return user, risk, nil
}

// provisionGoogleUser creates an account for a new Google identity, deriving a
// unique username from the email local part with a numeric suffix on collision.
func (s *userService) provisionGoogleUser(ctx context.Context, email, googleID string) (*domain.User, error) {
	base, _, _ := strings.Cut(email, "@")
	username := base
	for counter := 1; ; counter++ {
		_, err := s.userRepo.FindUserByUsername(ctx, username)
		if errors.Is(err, apperrors.ErrNotFound) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to check username availability: %w", err)
		}
		username = fmt.Sprintf("%s%d", base, counter)
	}

	now := time.Now()
	user := domain.User{
		UserID:        uuid.NewString(),
		Username:      username,
		Email:         email,
		Role:          domain.DefaultRole,
		Points:        domain.DefaultPoints,
		EmailVerified: true,
		GoogleID:      &googleID,
		IsActive:      true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to provision google user: %w", err)
	}
	return &user, nil
}

// VerifyEmail consumes a verification token and activates the account.
func (s *userService) VerifyEmail(ctx context.Context, token string) (*domain.User, error) {
	user, err := s.userRepo.ConsumeVerificationToken(ctx, token)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidToken) {
			return nil, apperrors.ErrInvalidToken
		}
		return nil, fmt.Errorf("failed to verify email: %w", err)
	}
	middleware.GetLoggerFromCtx(ctx).Info("Email verified", slog.String("username", user.Username))
	return user, nil
}

// ResendVerification rotates the verification token and re-sends the email.
// Unknown and already verified emails return nil without side effects, so the
// caller's response is identical in every case.
func (s *userService) ResendVerification(ctx context.Context, email string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	user, err := s.userRepo.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Info("Verification resend requested for unknown email")
			return nil
		}
		return fmt.Errorf("failed to look up email: %w", err)
	}

	if user.EmailVerified {
		logger.Info("Verification resend requested for already verified email")
		return nil
	}

	token, err := utils.GenerateSecureRandomString(32)
	if err != nil {
		return fmt.Errorf("failed to generate verification token: %w", err)
	}

	if err := s.userRepo.RotateVerificationToken(ctx, email, token, time.Now().Add(s.cfg.VerificationTokenTTL)); err != nil {
		return fmt.Errorf("failed to rotate verification token: %w", err)
	}

	s.mailer.SendVerificationEmail(email, token)
	return nil
}

func (s *userService) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	return s.userRepo.FindUserByUsername(ctx, username)
}

func (s *userService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	return s.userRepo.FindUserByID(ctx, userID)
}

// ResolveSession re-checks the live account behind a token subject. This is
// what makes lock and deactivate act as immediate soft revocation.
func (s *userService) ResolveSession(ctx context.Context, username string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user.IsLocked {
		return nil, apperrors.ErrAccountLocked
	}
	if !user.IsActive {
		return nil, apperrors.ErrAccountInactive
	}
	return user, nil
}

// logAttempt appends to the login audit trail. Logging is best effort: a
// failure here never changes the outcome of the login itself.
func (s *userService) logAttempt(ctx context.Context, userID *string, username string, method domain.LoginMethod, success bool, ipAddress, userAgent string, deviceType domain.DeviceType, risk domain.RiskAssessment) {
	entry := domain.LoginLogEntry{
		UserID:       userID,
		Username:     username,
		LoginMethod:  method,
		Success:      success,
		IPAddress:    ipAddress,
		UserAgent:    userAgent,
		DeviceType:   deviceType,
		IsSuspicious: risk.Suspicious,
		CreatedAt:    time.Now(),
	}
	if risk.Reason != "" {
		reason := risk.Reason
		entry.SuspiciousReason = &reason
	}
	if err := s.loginLogRepo.SaveLoginLog(ctx, entry); err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to save login log", slog.String("error", err.Error()))
	}
}
