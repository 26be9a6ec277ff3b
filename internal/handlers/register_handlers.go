package handlers

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/SscSPs/secure_auth_app/cmd/docs"
	portssvc "github.com/SscSPs/secure_auth_app/internal/core/ports/services"
	"github.com/SscSPs/secure_auth_app/internal/middleware"
	"github.com/SscSPs/secure_auth_app/internal/platform/config"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	r.GET("/", getHome)
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	// Rate limit for the grindable public endpoints: 5 requests per minute per IP.
	ipLimiter, err := middleware.NewIPRateLimiter("5-M", cfg.RedisURL)
	if err != nil {
		slog.Error("Failed to build rate limiter, falling back to in-memory store", slog.String("error", err.Error()))
		ipLimiter, _ = middleware.NewIPRateLimiter("5-M", "")
	}
	rateLimit := middleware.RateLimit(ipLimiter)

	registerAuthRoutes(r, services, rateLimit)
	registerGoogleOAuthRoutes(r, services)

	setupProtectedRoutes(r, cfg, services)
	setupSwaggerRoutes(r, cfg)
}

// setupProtectedRoutes configures the bearer-authenticated route group.
// Every request through here re-resolves the live account; a locked or
// deactivated user is cut off even with a valid token in hand.
func setupProtectedRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	protected := r.Group("/", middleware.AuthMiddleware(cfg.JWTSecret, services.User))

	registerUserRoutes(protected, services)
	registerGenerationRoutes(protected, services)
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	// Swagger setup
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
