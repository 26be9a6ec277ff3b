package services

import (
	"context"

	"github.com/SscSPs/secure_auth_app/internal/core/domain"
)

// RiskSvcFacade classifies successful logins against the user's history.
type RiskSvcFacade interface {
	// AssessLogin returns a verdict for the attempt. The check is advisory and
	// fails open: a history lookup error yields a non-suspicious verdict.
	AssessLogin(ctx context.Context, userID string, ipAddress string, deviceType domain.DeviceType) domain.RiskAssessment
}
