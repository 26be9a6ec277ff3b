package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/SscSPs/secure_auth_app/internal/apperrors"
	portssvc "github.com/SscSPs/secure_auth_app/internal/core/ports/services"
	"github.com/SscSPs/secure_auth_app/internal/middleware"
	"github.com/SscSPs/secure_auth_app/internal/platform/config"
)

// hCaptchaVerifier checks captcha response tokens against the hCaptcha
// siteverify endpoint. With no secret configured, verification is skipped
// entirely so local development works without captcha keys.
type hCaptchaVerifier struct {
	cfg        *config.Config
	httpClient *http.Client
}

// NewCaptchaVerifier creates a new instance of hCaptchaVerifier.
func NewCaptchaVerifier(cfg *config.Config) portssvc.CaptchaVerifier {
	return &hCaptchaVerifier{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

var _ portssvc.CaptchaVerifier = (*hCaptchaVerifier)(nil)

type siteverifyResponse struct {
	Success    bool     `json:"success"`
	ErrorCodes []string `json:"error-codes"`
}

func (v *hCaptchaVerifier) Verify(ctx context.Context, token string, remoteIP string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if v.cfg.HCaptchaSecret == "" {
		logger.Warn("Captcha verification skipped: no secret configured")
		return nil
	}

	if token == "" {
		return fmt.Errorf("%w: captcha token is required", apperrors.ErrValidation)
	}

	form := url.Values{}
	form.Set("secret", v.cfg.HCaptchaSecret)
	form.Set("response", token)
	if remoteIP != "" {
		form.Set("remoteip", remoteIP)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, v.cfg.HCaptchaVerifyURL, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("failed to build captcha verify request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := v.httpClient.Do(req)
	if err != nil {
		logger.Error("Captcha verify request failed", slog.String("error", err.Error()))
		return fmt.Errorf("%w: captcha verification unavailable", apperrors.ErrExternalService)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		logger.Error("Captcha verify returned non-200", slog.Int("status", resp.StatusCode))
		return fmt.Errorf("%w: captcha verification unavailable", apperrors.ErrExternalService)
	}

	var result siteverifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return fmt.Errorf("failed to decode captcha verify response: %w", err)
	}

	if !result.Success {
		logger.Warn("Captcha verification rejected", slog.Any("error_codes", result.ErrorCodes))
		return fmt.Errorf("%w: captcha verification failed", apperrors.ErrValidation)
	}

	return nil
}
