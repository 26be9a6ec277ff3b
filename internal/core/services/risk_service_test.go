package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/SscSPs/secure_auth_app/internal/core/domain"
	portssvc "github.com/SscSPs/secure_auth_app/internal/core/ports/services"
	"github.com/SscSPs/secure_auth_app/internal/core/services"
)

type RiskServiceTestSuite struct {
	suite.Suite
	mockLoginLogRepo *MockLoginLogRepository
	service          portssvc.RiskSvcFacade
	userID           string
}

func (suite *RiskServiceTestSuite) SetupTest() {
	suite.mockLoginLogRepo = new(MockLoginLogRepository)
	suite.service = services.NewRiskService(suite.mockLoginLogRepo)
	suite.userID = uuid.NewString()
}

func (suite *RiskServiceTestSuite) TestAssessLogin_KnownIPAndDevice() {
	ctx := context.Background()

	suite.mockLoginLogRepo.On("CountSuccessfulByIP", ctx, suite.userID, "1.2.3.4").Return(int64(7), nil).Once()
	suite.mockLoginLogRepo.On("CountSuccessfulByDeviceType", ctx, suite.userID, domain.DevicePC).Return(int64(7), nil).Once()

	risk := suite.service.AssessLogin(ctx, suite.userID, "1.2.3.4", domain.DevicePC)

	suite.False(risk.Suspicious)
	suite.Empty(risk.Reason)
	suite.mockLoginLogRepo.AssertExpectations(suite.T())
}

func (suite *RiskServiceTestSuite) TestAssessLogin_NewIP() {
	ctx := context.Background()

	suite.mockLoginLogRepo.On("CountSuccessfulByIP", ctx, suite.userID, "9.9.9.9").Return(int64(0), nil).Once()

	risk := suite.service.AssessLogin(ctx, suite.userID, "9.9.9.9", domain.DevicePC)

	suite.True(risk.Suspicious)
	suite.Equal("new IP address login", risk.Reason)
	// First match wins, the device check never runs.
	suite.mockLoginLogRepo.AssertNotCalled(suite.T(), "CountSuccessfulByDeviceType", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *RiskServiceTestSuite) TestAssessLogin_NewDeviceType() {
	ctx := context.Background()

	suite.mockLoginLogRepo.On("CountSuccessfulByIP", ctx, suite.userID, "1.2.3.4").Return(int64(3), nil).Once()
	suite.mockLoginLogRepo.On("CountSuccessfulByDeviceType", ctx, suite.userID, domain.DeviceMobile).Return(int64(0), nil).Once()

	risk := suite.service.AssessLogin(ctx, suite.userID, "1.2.3.4", domain.DeviceMobile)

	suite.True(risk.Suspicious)
	suite.Equal("new device type login: mobile", risk.Reason)
}

func (suite *RiskServiceTestSuite) TestAssessLogin_BotCountsAsPC() {
	ctx := context.Background()

	suite.mockLoginLogRepo.On("CountSuccessfulByIP", ctx, suite.userID, "1.2.3.4").Return(int64(3), nil).Once()
	// Unclassifiable agents are checked against pc history, not bot history.
	suite.mockLoginLogRepo.On("CountSuccessfulByDeviceType", ctx, suite.userID, domain.DevicePC).Return(int64(2), nil).Once()

	risk := suite.service.AssessLogin(ctx, suite.userID, "1.2.3.4", domain.DeviceBot)

	suite.False(risk.Suspicious)
	suite.mockLoginLogRepo.AssertExpectations(suite.T())
}

func (suite *RiskServiceTestSuite) TestAssessLogin_IPCheckErrorFailsOpen() {
	ctx := context.Background()

	suite.mockLoginLogRepo.On("CountSuccessfulByIP", ctx, suite.userID, "1.2.3.4").Return(int64(0), assert.AnError).Once()

	risk := suite.service.AssessLogin(ctx, suite.userID, "1.2.3.4", domain.DevicePC)

	suite.False(risk.Suspicious)
	suite.Empty(risk.Reason)
}

func (suite *RiskServiceTestSuite) TestAssessLogin_DeviceCheckErrorFailsOpen() {
	ctx := context.Background()

	suite.mockLoginLogRepo.On("CountSuccessfulByIP", ctx, suite.userID, "1.2.3.4").Return(int64(3), nil).Once()
	suite.mockLoginLogRepo.On("CountSuccessfulByDeviceType", ctx, suite.userID, domain.DevicePC).Return(int64(0), assert.AnError).Once()

	risk := suite.service.AssessLogin(ctx, suite.userID, "1.2.3.4", domain.DevicePC)

	suite.False(risk.Suspicious)
}

func TestRiskService(t *testing.T) {
	suite.Run(t, new(RiskServiceTestSuite))
}
