package services

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/api/idtoken"

	"github.com/SscSPs/secure_auth_app/internal/core/domain"
	portssvc "github.com/SscSPs/secure_auth_app/internal/core/ports/services"
	"github.com/SscSPs/secure_auth_app/internal/platform/config"
	"github.com/SscSPs/secure_auth_app/internal/utils"
)

// tokenService implements the TokenSvcFacade for minting and validating JWTs.
// It requires access to application configuration for the secret, issuer and
// expiry duration.
type tokenService struct {
	cfg *config.Config
}

// NewTokenService creates a new instance of tokenService.
func NewTokenService(cfg *config.Config) portssvc.TokenSvcFacade {
	return &tokenService{cfg: cfg}
}

var _ portssvc.TokenSvcFacade = (*tokenService)(nil)

// GenerateAccessToken creates a new JWT access token for the given user.
// The subject is the username; role and points ride along as a snapshot for
// clients, not as authorization inputs.
func (s *tokenService) GenerateAccessToken(ctx context.Context, user *domain.User) (string, error) {
	accessToken, err := utils.GenerateJWT(user.Username, user.Role, user.Points, s.cfg.JWTSecret, s.cfg.JWTExpiryDuration, s.cfg.JWTIssuer)
	if err != nil {
		return "", fmt.Errorf("failed to generate access token: %w", err)
	}
	return accessToken, nil
}

// ValidateAccessToken verifies the token and returns its subject.
func (s *tokenService) ValidateAccessToken(ctx context.Context, tokenString string) (string, error) {
	claims, err := utils.ParseAndValidateJWT(tokenString, s.cfg.JWTSecret)
	if err != nil {
		return "", err
	}
	if claims.Subject == "" {
		return "", errors.New("token has no subject")
	}
	return claims.Subject, nil
}

// googleOAuthService implements the GoogleOAuthSvcFacade. The frontend obtains
// the ID token directly from Google; the backend only verifies it.
type googleOAuthService struct {
	cfg *config.Config
}

// NewGoogleOAuthService creates a new instance of googleOAuthService.
func NewGoogleOAuthService(cfg *config.Config) portssvc.GoogleOAuthSvcFacade {
	return &googleOAuthService{cfg: cfg}
}

var _ portssvc.GoogleOAuthSvcFacade = (*googleOAuthService)(nil)

// ValidateGoogleIDToken validates the Google ID token string.
// idtoken.Validate checks the signature against Google's public keys and the
// audience against our client ID.
func (s *googleOAuthService) ValidateGoogleIDToken(ctx context.Context, idTokenString string) (*idtoken.Payload, error) {
	if s.cfg.GoogleClientID == "" {
		// This should ideally be caught at startup, but as a safeguard:
		return nil, errors.New("google client ID is not configured in the application")
	}

	payload, err := idtoken.Validate(ctx, idTokenString, s.cfg.GoogleClientID)
	if err != nil {
		return nil, fmt.Errorf("google ID token validation failed: %w", err)
	}

	return payload, nil
}
