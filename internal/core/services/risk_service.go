package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SscSPs/secure_auth_app/internal/core/domain"
	portsrepo "github.com/SscSPs/secure_auth_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/secure_auth_app/internal/core/ports/services"
	"github.com/SscSPs/secure_auth_app/internal/middleware"
)

// riskService flags logins that don't match the user's history. Two checks run
// in order, first match wins: unseen IP address, then unseen device class.
// History comes from prior successful attempts in the login log.
type riskService struct {
	loginLogRepo portsrepo.LoginLogRepository
}

// NewRiskService creates a new instance of riskService.
func NewRiskService(loginLogRepo portsrepo.LoginLogRepository) portssvc.RiskSvcFacade {
	return &riskService{loginLogRepo: loginLogRepo}
}

var _ portssvc.RiskSvcFacade = (*riskService)(nil)

func (s *riskService) AssessLogin(ctx context.Context, userID string, ipAddress string, deviceType domain.DeviceType) domain.RiskAssessment {
	logger := middleware.GetLoggerFromCtx(ctx)

	ipCount, err := s.loginLogRepo.CountSuccessfulByIP(ctx, userID, ipAddress)
	if err != nil {
		// Fail open: an unavailable history must not block or flag logins.
		logger.Error("Risk check failed, treating login as not suspicious", slog.String("error", err.Error()))
		return domain.RiskAssessment{}
	}
	if ipCount == 0 {
		return domain.RiskAssessment{Suspicious: true, Reason: "new IP address login"}
	}

	// The device novelty check only distinguishes mobile from pc; unclassifiable
	// agents count as pc here even though the log records them as bot.
	checkType := deviceType
	if checkType == domain.DeviceBot {
		checkType = domain.DevicePC
	}

	deviceCount, err := s.loginLogRepo.CountSuccessfulByDeviceType(ctx, userID, checkType)
	if err != nil {
		logger.Error("Risk check failed, treating login as not suspicious", slog.String("error", err.Error()))
		return domain.RiskAssessment{}
	}
	if deviceCount == 0 {
		return domain.RiskAssessment{Suspicious: true, Reason: fmt.Sprintf("new device type login: %s", checkType)}
	}

	return domain.RiskAssessment{}
}
