package services

import (
	"context"

	"google.golang.org/api/idtoken"

	"github.com/SscSPs/secure_auth_app/internal/core/domain"
)

// TokenSvcFacade mints and validates access tokens.
type TokenSvcFacade interface {
	// GenerateAccessToken creates a signed JWT carrying the user's username as
	// subject plus role and points claims.
	GenerateAccessToken(ctx context.Context, user *domain.User) (string, error)

	// ValidateAccessToken verifies signature and time claims and returns the
	// token subject (username).
	ValidateAccessToken(ctx context.Context, tokenString string) (string, error)
}

// GoogleOAuthSvcFacade validates Google-issued ID tokens.
type GoogleOAuthSvcFacade interface {
	// ValidateGoogleIDToken verifies the token signature and audience against the
	// configured client ID and returns its payload.
	ValidateGoogleIDToken(ctx context.Context, idToken string) (*idtoken.Payload, error)
}
