package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// ProviderConfig holds the endpoint and credentials of one upstream generation API.
type ProviderConfig struct {
	APIKey  string
	BaseURL string
}

// Config holds application configuration. It is built once at startup and passed
// explicitly to constructors; nothing reads environment variables after this.
type Config struct {
	DatabaseURL  string
	Port         string
	IsProduction bool

	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string

	// Account lockout: a login failure that brings the consecutive-failure count to
	// this value locks the account.
	MaxFailedLogins      int
	VerificationTokenTTL time.Duration
	ResetTokenTTL        time.Duration

	GoogleClientID string

	HCaptchaSecret    string
	HCaptchaVerifyURL string

	SMTPHost     string
	SMTPPort     string
	SMTPUser     string
	SMTPPassword string
	SMTPFrom     string

	FrontendBaseURL  string
	RedisURL         string
	CORSAllowOrigins []string

	PosthogAPIKey string

	Sora ProviderConfig
	Nano ProviderConfig
	Veo  ProviderConfig
	// Veo3 uses a separate upstream with distinct create/query endpoints.
	Veo3APIKey    string
	Veo3CreateURL string
	Veo3QueryURL  string
}

// LoadConfig loads configuration from environment variables and a .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("JWT_EXPIRY_DURATION", "336h") // 14 days
	viper.SetDefault("JWT_ISSUER", "secure-auth-app")
	viper.SetDefault("MAX_FAILED_LOGINS", 5)
	viper.SetDefault("VERIFICATION_TOKEN_TTL", "24h")
	viper.SetDefault("RESET_TOKEN_TTL", "24h")
	viper.SetDefault("GOOGLE_CLIENT_ID", "")
	viper.SetDefault("HCAPTCHA_SECRET", "")
	viper.SetDefault("HCAPTCHA_VERIFY_URL", "https://hcaptcha.com/siteverify")
	viper.SetDefault("SMTP_HOST", "smtp.gmail.com")
	viper.SetDefault("SMTP_PORT", "587")
	viper.SetDefault("SMTP_USER", "")
	viper.SetDefault("SMTP_PASSWORD", "")
	viper.SetDefault("SMTP_FROM", "noreply@yourdomain.com")
	viper.SetDefault("FRONTEND_BASE_URL", "http://localhost:3002")
	viper.SetDefault("REDIS_URL", "")
	viper.SetDefault("CORS_ALLOW_ORIGINS", "http://localhost:3000,http://localhost:3002")
	viper.SetDefault("POSTHOG_API_KEY", "")
	viper.SetDefault("SORA_API_KEY", "")
	viper.SetDefault("SORA_BASE_URL", "https://api.grsai.com/v1")
	viper.SetDefault("NANO_API_KEY", "")
	viper.SetDefault("NANO_BASE_URL", "https://api.xgai.site/v1")
	viper.SetDefault("VEO_API_KEY", "")
	viper.SetDefault("VEO_BASE_URL", "https://api.xgai.site/v2/videos/generations")
	viper.SetDefault("VEO3_API_KEY", "")
	viper.SetDefault("VEO3_CREATE_URL", "http://jeniya.top/v1/video/create")
	viper.SetDefault("VEO3_QUERY_URL", "http://jeniya.top/v1/video/query")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "a-very-secret-key-should-be-longer-and-random" {
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	jwtExpiryStr := viper.GetString("JWT_EXPIRY_DURATION")
	jwtExpiryDuration, err := time.ParseDuration(jwtExpiryStr)
	if err != nil {
		jwtExpiryDuration = 14 * 24 * time.Hour
		log.Printf("Warning: Invalid value for JWT_EXPIRY_DURATION ('%s'). Defaulting to %s.\n", jwtExpiryStr, jwtExpiryDuration.String())
	}
	cfg.JWTExpiryDuration = jwtExpiryDuration
	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")

	cfg.MaxFailedLogins = viper.GetInt("MAX_FAILED_LOGINS")
	if cfg.MaxFailedLogins <= 0 {
		cfg.MaxFailedLogins = 5
		log.Printf("Warning: MAX_FAILED_LOGINS must be positive. Defaulting to %d.\n", cfg.MaxFailedLogins)
	}

	cfg.VerificationTokenTTL = parseDurationOrDefault("VERIFICATION_TOKEN_TTL", 24*time.Hour)
	cfg.ResetTokenTTL = parseDurationOrDefault("RESET_TOKEN_TTL", 24*time.Hour)

	cfg.GoogleClientID = viper.GetString("GOOGLE_CLIENT_ID")
	if cfg.GoogleClientID == "" {
		log.Println("Warning: GOOGLE_CLIENT_ID not set. Google login will not function.")
	}

	cfg.HCaptchaSecret = viper.GetString("HCAPTCHA_SECRET")
	cfg.HCaptchaVerifyURL = viper.GetString("HCAPTCHA_VERIFY_URL")
	if cfg.HCaptchaSecret == "" {
		log.Println("Warning: HCAPTCHA_SECRET not set. Captcha verification will be skipped (development mode).")
	}

	cfg.SMTPHost = viper.GetString("SMTP_HOST")
	cfg.SMTPPort = viper.GetString("SMTP_PORT")
	cfg.SMTPUser = viper.GetString("SMTP_USER")
	cfg.SMTPPassword = viper.GetString("SMTP_PASSWORD")
	cfg.SMTPFrom = viper.GetString("SMTP_FROM")
	if cfg.SMTPUser == "" {
		log.Println("Warning: SMTP_USER not set. Emails will not be sent; links are logged instead.")
	}

	cfg.FrontendBaseURL = viper.GetString("FRONTEND_BASE_URL")
	cfg.RedisURL = viper.GetString("REDIS_URL")
	if cfg.RedisURL == "" {
		log.Println("Warning: REDIS_URL not set. Rate limiting falls back to an in-memory store.")
	}

	for _, origin := range strings.Split(viper.GetString("CORS_ALLOW_ORIGINS"), ",") {
		if o := strings.TrimSpace(origin); o != "" {
			cfg.CORSAllowOrigins = append(cfg.CORSAllowOrigins, o)
		}
	}

	cfg.PosthogAPIKey = viper.GetString("POSTHOG_API_KEY")

	cfg.Sora = ProviderConfig{APIKey: viper.GetString("SORA_API_KEY"), BaseURL: viper.GetString("SORA_BASE_URL")}
	cfg.Nano = ProviderConfig{APIKey: viper.GetString("NANO_API_KEY"), BaseURL: viper.GetString("NANO_BASE_URL")}
	cfg.Veo = ProviderConfig{APIKey: viper.GetString("VEO_API_KEY"), BaseURL: viper.GetString("VEO_BASE_URL")}
	cfg.Veo3APIKey = viper.GetString("VEO3_API_KEY")
	cfg.Veo3CreateURL = viper.GetString("VEO3_CREATE_URL")
	cfg.Veo3QueryURL = viper.GetString("VEO3_QUERY_URL")

	return cfg, nil
}

func parseDurationOrDefault(key string, fallback time.Duration) time.Duration {
	raw := viper.GetString(key)
	d, err := time.ParseDuration(raw)
	if err != nil {
		log.Printf("Warning: Invalid value for %s ('%s'). Defaulting to %s.\n", key, raw, fallback.String())
		return fallback
	}
	return d
}
