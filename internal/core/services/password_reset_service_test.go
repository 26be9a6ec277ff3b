package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/SscSPs/secure_auth_app/internal/apperrors"
	"github.com/SscSPs/secure_auth_app/internal/core/domain"
	portssvc "github.com/SscSPs/secure_auth_app/internal/core/ports/services"
	"github.com/SscSPs/secure_auth_app/internal/core/services"
	"github.com/SscSPs/secure_auth_app/internal/platform/config"
)

// --- Mock PasswordResetRepository ---
type MockPasswordResetRepository struct {
	mock.Mock
}

func (m *MockPasswordResetRepository) ReplaceResetRequest(ctx context.Context, reset domain.PasswordReset) error {
	args := m.Called(ctx, reset)
	return args.Error(0)
}

func (m *MockPasswordResetRepository) ConsumeResetToken(ctx context.Context, token string, newPasswordHash string) (string, error) {
	args := m.Called(ctx, token, newPasswordHash)
	return args.String(0), args.Error(1)
}

// --- Test Suite ---
type PasswordResetServiceTestSuite struct {
	suite.Suite
	mockUserRepo  *MockUserRepository
	mockResetRepo *MockPasswordResetRepository
	mockMailer    *MockMailer
	service       portssvc.PasswordResetSvcFacade
}

func (suite *PasswordResetServiceTestSuite) SetupTest() {
	suite.mockUserRepo = new(MockUserRepository)
	suite.mockResetRepo = new(MockPasswordResetRepository)
	suite.mockMailer = new(MockMailer)
	cfg := &config.Config{ResetTokenTTL: 24 * time.Hour}
	suite.service = services.NewPasswordResetService(cfg, suite.mockUserRepo, suite.mockResetRepo, suite.mockMailer)
}

func (suite *PasswordResetServiceTestSuite) TestRequestPasswordReset_Success() {
	ctx := context.Background()
	email := "known@example.com"
	user := &domain.User{Email: email, Username: "known", IsActive: true}

	suite.mockUserRepo.On("FindUserByEmail", ctx, email).Return(user, nil).Once()
	suite.mockResetRepo.On("ReplaceResetRequest", ctx, mock.MatchedBy(func(reset domain.PasswordReset) bool {
		return reset.Email == email && reset.Token != "" && reset.ExpiresAt.After(time.Now())
	})).Return(nil).Once()
	suite.mockMailer.On("SendPasswordResetEmail", email, mock.AnythingOfType("string")).Return().Once()

	err := suite.service.RequestPasswordReset(ctx, email)

	suite.Require().NoError(err)
	suite.mockResetRepo.AssertExpectations(suite.T())
	suite.mockMailer.AssertExpectations(suite.T())
}

func (suite *PasswordResetServiceTestSuite) TestRequestPasswordReset_UnknownEmail() {
	ctx := context.Background()

	suite.mockUserRepo.On("FindUserByEmail", ctx, "nobody@example.com").Return(nil, apperrors.ErrNotFound).Once()

	err := suite.service.RequestPasswordReset(ctx, "nobody@example.com")

	// Same outcome as a known email; the endpoint must not leak existence.
	suite.Require().NoError(err)
	suite.mockResetRepo.AssertNotCalled(suite.T(), "ReplaceResetRequest", mock.Anything, mock.Anything)
	suite.mockMailer.AssertNotCalled(suite.T(), "SendPasswordResetEmail", mock.Anything, mock.Anything)
}

func (suite *PasswordResetServiceTestSuite) TestRequestPasswordReset_RepoError() {
	ctx := context.Background()
	email := "known@example.com"
	user := &domain.User{Email: email, Username: "known"}
	expectedErr := assert.AnError

	suite.mockUserRepo.On("FindUserByEmail", ctx, email).Return(user, nil).Once()
	suite.mockResetRepo.On("ReplaceResetRequest", ctx, mock.AnythingOfType("domain.PasswordReset")).Return(expectedErr).Once()

	err := suite.service.RequestPasswordReset(ctx, email)

	suite.Require().Error(err)
	suite.ErrorIs(err, expectedErr)
	suite.mockMailer.AssertNotCalled(suite.T(), "SendPasswordResetEmail", mock.Anything, mock.Anything)
}

func (suite *PasswordResetServiceTestSuite) TestResetPassword_Success() {
	ctx := context.Background()

	suite.mockResetRepo.On("ConsumeResetToken", ctx, "good-token", mock.MatchedBy(func(hash string) bool {
		// The service hashes before handing over; the raw password must not reach the repository.
		return hash != "NewPassword1" && hash != ""
	})).Return("known@example.com", nil).Once()

	err := suite.service.ResetPassword(ctx, "good-token", "NewPassword1")

	suite.Require().NoError(err)
	suite.mockResetRepo.AssertExpectations(suite.T())
}

func (suite *PasswordResetServiceTestSuite) TestResetPassword_InvalidToken() {
	ctx := context.Background()

	suite.mockResetRepo.On("ConsumeResetToken", ctx, "bad-token", mock.AnythingOfType("string")).
		Return("", apperrors.ErrInvalidToken).Once()

	err := suite.service.ResetPassword(ctx, "bad-token", "NewPassword1")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvalidToken)
}

func TestPasswordResetService(t *testing.T) {
	suite.Run(t, new(PasswordResetServiceTestSuite))
}
