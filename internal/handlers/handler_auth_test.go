package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"google.golang.org/api/idtoken"

	"github.com/SscSPs/secure_auth_app/internal/apperrors"
	"github.com/SscSPs/secure_auth_app/internal/core/domain"
	portssvc "github.com/SscSPs/secure_auth_app/internal/core/ports/services"
	"github.com/SscSPs/secure_auth_app/internal/dto"
	"github.com/SscSPs/secure_auth_app/internal/handlers"
	"github.com/SscSPs/secure_auth_app/internal/platform/config"
	"github.com/SscSPs/secure_auth_app/internal/utils"
)

const testJWTSecret = "handler-test-secret"

// --- Mock UserService ---
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) RegisterUser(ctx context.Context, username, email, password string) (*domain.User, error) {
	args := m.Called(ctx, username, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) AuthenticateUser(ctx context.Context, username, password, ipAddress, userAgent string) (*domain.User, domain.RiskAssessment, error) {
	args := m.Called(ctx, username, password, ipAddress, userAgent)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Get(1).(domain.RiskAssessment), args.Error(2)
}

func (m *MockUserService) AuthenticateGoogleUser(ctx context.Context, email, googleID, ipAddress, userAgent string) (*domain.User, domain.RiskAssessment, error) {
	args := m.Called(ctx, email, googleID, ipAddress, userAgent)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Get(1).(domain.RiskAssessment), args.Error(2)
}

func (m *MockUserService) VerifyEmail(ctx context.Context, token string) (*domain.User, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) ResendVerification(ctx context.Context, email string) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}

func (m *MockUserService) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) ResolveSession(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

var _ portssvc.UserSvcFacade = (*MockUserService)(nil)

// --- Mock TokenService ---
type MockTokenService struct {
	mock.Mock
}

func (m *MockTokenService) GenerateAccessToken(ctx context.Context, user *domain.User) (string, error) {
	args := m.Called(ctx, user)
	return args.String(0), args.Error(1)
}

func (m *MockTokenService) ValidateAccessToken(ctx context.Context, tokenString string) (string, error) {
	args := m.Called(ctx, tokenString)
	return args.String(0), args.Error(1)
}

var _ portssvc.TokenSvcFacade = (*MockTokenService)(nil)

// --- Mock PasswordResetService ---
type MockPasswordResetService struct {
	mock.Mock
}

func (m *MockPasswordResetService) RequestPasswordReset(ctx context.Context, email string) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}

func (m *MockPasswordResetService) ResetPassword(ctx context.Context, token, newPassword string) error {
	args := m.Called(ctx, token, newPassword)
	return args.Error(0)
}

var _ portssvc.PasswordResetSvcFacade = (*MockPasswordResetService)(nil)

// --- Mock CaptchaVerifier ---
type MockCaptchaVerifier struct {
	mock.Mock
}

func (m *MockCaptchaVerifier) Verify(ctx context.Context, token, remoteIP string) error {
	args := m.Called(ctx, token, remoteIP)
	return args.Error(0)
}

var _ portssvc.CaptchaVerifier = (*MockCaptchaVerifier)(nil)

// --- Mock GoogleOAuthService ---
type MockGoogleOAuthService struct {
	mock.Mock
}

func (m *MockGoogleOAuthService) ValidateGoogleIDToken(ctx context.Context, idTokenString string) (*idtoken.Payload, error) {
	args := m.Called(ctx, idTokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*idtoken.Payload), args.Error(1)
}

var _ portssvc.GoogleOAuthSvcFacade = (*MockGoogleOAuthService)(nil)

// --- Mock GenerationService ---
type MockGenerationService struct {
	mock.Mock
}

func (m *MockGenerationService) GenerateVideo(ctx context.Context, req dto.VideoGenerateRequest) (*dto.TaskCreatedResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.TaskCreatedResponse), args.Error(1)
}

func (m *MockGenerationService) GetTaskStatus(ctx context.Context, taskID string) (map[string]any, error) {
	args := m.Called(ctx, taskID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]any), args.Error(1)
}

func (m *MockGenerationService) SoraGenerate(ctx context.Context, req dto.SoraGenerateRequest) (map[string]any, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]any), args.Error(1)
}

func (m *MockGenerationService) SoraResult(ctx context.Context, taskID string) (map[string]any, error) {
	args := m.Called(ctx, taskID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]any), args.Error(1)
}

func (m *MockGenerationService) NanoGenerate(ctx context.Context, req dto.NanoGenerateRequest) (map[string]any, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]any), args.Error(1)
}

var _ portssvc.GenerationSvcFacade = (*MockGenerationService)(nil)

// --- Test Suite ---
type AuthHandlerTestSuite struct {
	suite.Suite
	router          *gin.Engine
	mockUserSvc     *MockUserService
	mockTokenSvc    *MockTokenService
	mockResetSvc    *MockPasswordResetService
	mockCaptchaSvc  *MockCaptchaVerifier
	mockGoogleSvc   *MockGoogleOAuthService
	mockGenerateSvc *MockGenerationService
}

func (suite *AuthHandlerTestSuite) SetupSuite() {
	gin.SetMode(gin.TestMode)
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		suite.Require().NoError(dto.RegisterCustomValidators(v))
	}
}

func (suite *AuthHandlerTestSuite) SetupTest() {
	suite.mockUserSvc = new(MockUserService)
	suite.mockTokenSvc = new(MockTokenService)
	suite.mockResetSvc = new(MockPasswordResetService)
	suite.mockCaptchaSvc = new(MockCaptchaVerifier)
	suite.mockGoogleSvc = new(MockGoogleOAuthService)
	suite.mockGenerateSvc = new(MockGenerationService)

	container := &portssvc.ServiceContainer{
		User:          suite.mockUserSvc,
		Token:         suite.mockTokenSvc,
		GoogleOAuth:   suite.mockGoogleSvc,
		PasswordReset: suite.mockResetSvc,
		Captcha:       suite.mockCaptchaSvc,
		Generation:    suite.mockGenerateSvc,
	}
	cfg := &config.Config{
		JWTSecret:    testJWTSecret,
		IsProduction: true,
	}

	suite.router = gin.New()
	handlers.RegisterRoutes(suite.router, cfg, container)
}

func (suite *AuthHandlerTestSuite) postJSON(path string, body any) *httptest.ResponseRecorder {
	payload, err := json.Marshal(body)
	suite.Require().NoError(err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

// --- Register Tests ---

func (suite *AuthHandlerTestSuite) TestRegister_Success() {
	user := &domain.User{Username: "alice", Email: "alice@example.com"}
	suite.mockCaptchaSvc.On("Verify", mock.Anything, "captcha-ok", mock.Anything).Return(nil).Once()
	suite.mockUserSvc.On("RegisterUser", mock.Anything, "alice", "alice@example.com", "Password123").Return(user, nil).Once()

	w := suite.postJSON("/register", dto.RegisterRequest{
		Username:     "alice",
		Email:        "alice@example.com",
		Password:     "Password123",
		CaptchaToken: "captcha-ok",
	})

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.RegisterResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("alice", resp.Username)
	suite.mockUserSvc.AssertExpectations(suite.T())
}

func (suite *AuthHandlerTestSuite) TestRegister_WeakPasswordRejected() {
	w := suite.postJSON("/register", dto.RegisterRequest{
		Username:     "alice",
		Email:        "alice@example.com",
		Password:     "weak",
		CaptchaToken: "captcha-ok",
	})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockUserSvc.AssertNotCalled(suite.T(), "RegisterUser", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AuthHandlerTestSuite) TestRegister_CaptchaRejected() {
	suite.mockCaptchaSvc.On("Verify", mock.Anything, "captcha-bad", mock.Anything).
		Return(apperrors.ErrValidation).Once()

	w := suite.postJSON("/register", dto.RegisterRequest{
		Username:     "alice",
		Email:        "alice@example.com",
		Password:     "Password123",
		CaptchaToken: "captcha-bad",
	})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Contains(w.Body.String(), "Captcha verification failed")
	suite.mockUserSvc.AssertNotCalled(suite.T(), "RegisterUser", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AuthHandlerTestSuite) TestRegister_Duplicate() {
	suite.mockCaptchaSvc.On("Verify", mock.Anything, "captcha-ok", mock.Anything).Return(nil).Once()
	suite.mockUserSvc.On("RegisterUser", mock.Anything, "alice", "alice@example.com", "Password123").
		Return(nil, apperrors.ErrDuplicate).Once()

	w := suite.postJSON("/register", dto.RegisterRequest{
		Username:     "alice",
		Email:        "alice@example.com",
		Password:     "Password123",
		CaptchaToken: "captcha-ok",
	})

	suite.Equal(http.StatusConflict, w.Code)
	suite.Contains(w.Body.String(), "already registered")
}

// --- Login Tests ---

func (suite *AuthHandlerTestSuite) TestLogin_Success() {
	user := &domain.User{Username: "alice", Role: "free", Points: 100}
	suite.mockUserSvc.On("AuthenticateUser", mock.Anything, "alice", "Password123", mock.Anything, mock.Anything).
		Return(user, domain.RiskAssessment{}, nil).Once()
	suite.mockTokenSvc.On("GenerateAccessToken", mock.Anything, user).Return("signed-token", nil).Once()

	w := suite.postJSON("/token", dto.LoginRequest{Username: "alice", Password: "Password123"})

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.TokenResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("signed-token", resp.AccessToken)
	suite.Equal("bearer", resp.TokenType)
	suite.Require().NotNil(resp.SuspiciousLogin)
	suite.False(*resp.SuspiciousLogin)

	// Only registration is captcha-gated; a login never consults the verifier.
	suite.mockCaptchaSvc.AssertNotCalled(suite.T(), "Verify", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AuthHandlerTestSuite) TestLogin_SuspiciousFlagSurfaces() {
	user := &domain.User{Username: "alice", Role: "free", Points: 100}
	suite.mockUserSvc.On("AuthenticateUser", mock.Anything, "alice", "Password123", mock.Anything, mock.Anything).
		Return(user, domain.RiskAssessment{Suspicious: true, Reason: "new IP address login"}, nil).Once()
	suite.mockTokenSvc.On("GenerateAccessToken", mock.Anything, user).Return("signed-token", nil).Once()

	w := suite.postJSON("/token", dto.LoginRequest{Username: "alice", Password: "Password123"})

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.TokenResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Require().NotNil(resp.SuspiciousLogin)
	suite.True(*resp.SuspiciousLogin)
}

func (suite *AuthHandlerTestSuite) TestLogin_InvalidCredentials() {
	suite.mockUserSvc.On("AuthenticateUser", mock.Anything, "alice", "wrong", mock.Anything, mock.Anything).
		Return(nil, domain.RiskAssessment{}, apperrors.ErrInvalidCredentials).Once()

	w := suite.postJSON("/token", dto.LoginRequest{Username: "alice", Password: "wrong"})

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.Contains(w.Body.String(), "Invalid username or password")
}

func (suite *AuthHandlerTestSuite) TestLogin_LockedAccount() {
	suite.mockUserSvc.On("AuthenticateUser", mock.Anything, "alice", "Password123", mock.Anything, mock.Anything).
		Return(nil, domain.RiskAssessment{}, apperrors.ErrAccountLocked).Once()

	w := suite.postJSON("/token", dto.LoginRequest{Username: "alice", Password: "Password123"})

	suite.Equal(http.StatusForbidden, w.Code)
	suite.Contains(w.Body.String(), "Account is locked")
}

func (suite *AuthHandlerTestSuite) TestLogin_InactiveAccount() {
	suite.mockUserSvc.On("AuthenticateUser", mock.Anything, "alice", "Password123", mock.Anything, mock.Anything).
		Return(nil, domain.RiskAssessment{}, apperrors.ErrAccountInactive).Once()

	w := suite.postJSON("/token", dto.LoginRequest{Username: "alice", Password: "Password123"})

	suite.Equal(http.StatusForbidden, w.Code)
	suite.Contains(w.Body.String(), "verify your email")
}

// --- VerifyEmail Tests ---

func (suite *AuthHandlerTestSuite) TestVerifyEmail_Success() {
	user := &domain.User{Username: "alice", Role: "free", Points: 100}
	suite.mockUserSvc.On("VerifyEmail", mock.Anything, "good-token").Return(user, nil).Once()
	suite.mockTokenSvc.On("GenerateAccessToken", mock.Anything, user).Return("signed-token", nil).Once()

	w := suite.postJSON("/verify-email", dto.VerifyEmailRequest{Token: "good-token"})

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.VerifyEmailResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("signed-token", resp.AccessToken)
}

func (suite *AuthHandlerTestSuite) TestVerifyEmail_InvalidToken() {
	suite.mockUserSvc.On("VerifyEmail", mock.Anything, "bad-token").Return(nil, apperrors.ErrInvalidToken).Once()

	w := suite.postJSON("/verify-email", dto.VerifyEmailRequest{Token: "bad-token"})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Contains(w.Body.String(), "invalid or expired")
}

// --- ForgotPassword / ResetPassword Tests ---

func (suite *AuthHandlerTestSuite) TestForgotPassword_AlwaysGeneric() {
	suite.mockResetSvc.On("RequestPasswordReset", mock.Anything, "anyone@example.com").Return(nil).Once()

	w := suite.postJSON("/forgot-password", dto.ForgotPasswordRequest{Email: "anyone@example.com"})

	suite.Equal(http.StatusOK, w.Code)
	suite.Contains(w.Body.String(), "If the email is registered")
}

func (suite *AuthHandlerTestSuite) TestResetPassword_Success() {
	suite.mockResetSvc.On("ResetPassword", mock.Anything, "good-token", "NewPassword1").Return(nil).Once()

	w := suite.postJSON("/reset-password", dto.ResetPasswordRequest{Token: "good-token", NewPassword: "NewPassword1"})

	suite.Equal(http.StatusOK, w.Code)
}

func (suite *AuthHandlerTestSuite) TestResetPassword_InvalidToken() {
	suite.mockResetSvc.On("ResetPassword", mock.Anything, "bad-token", "NewPassword1").
		Return(apperrors.ErrInvalidToken).Once()

	w := suite.postJSON("/reset-password", dto.ResetPasswordRequest{Token: "bad-token", NewPassword: "NewPassword1"})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Contains(w.Body.String(), "invalid or expired")
}

// --- Protected Route Tests ---

func (suite *AuthHandlerTestSuite) bearerToken(username string) string {
	token, err := utils.GenerateJWT(username, "free", 100, testJWTSecret, time.Hour, "test")
	suite.Require().NoError(err)
	return "Bearer " + token
}

func (suite *AuthHandlerTestSuite) TestGetMe_Success() {
	user := &domain.User{Username: "alice", Email: "alice@example.com", Role: "free", Points: 100, IsActive: true}
	suite.mockUserSvc.On("ResolveSession", mock.Anything, "alice").Return(user, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", suite.bearerToken("alice"))
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.UserResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("alice", resp.Username)
}

func (suite *AuthHandlerTestSuite) TestGetMe_LockedAccountRevoked() {
	suite.mockUserSvc.On("ResolveSession", mock.Anything, "alice").
		Return(nil, apperrors.ErrAccountLocked).Once()

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", suite.bearerToken("alice"))
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	// A valid signature is not enough; the live lock state refuses the request.
	suite.Equal(http.StatusForbidden, w.Code)
	suite.Contains(w.Body.String(), "Account is locked")
}

func (suite *AuthHandlerTestSuite) TestGetMe_NoToken() {
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
}

func (suite *AuthHandlerTestSuite) TestGetMe_ExpiredToken() {
	token, err := utils.GenerateJWT("alice", "free", 100, testJWTSecret, -time.Minute, "test")
	suite.Require().NoError(err)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.Contains(w.Body.String(), "Token has expired")
	suite.mockUserSvc.AssertNotCalled(suite.T(), "ResolveSession", mock.Anything, mock.Anything)
}

func TestAuthHandler(t *testing.T) {
	suite.Run(t, new(AuthHandlerTestSuite))
}
