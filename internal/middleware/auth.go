package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/SscSPs/secure_auth_app/internal/apperrors"
	portssvc "github.com/SscSPs/secure_auth_app/internal/core/ports/services"
	"github.com/SscSPs/secure_auth_app/internal/utils"
)

// AuthMiddleware creates a Gin middleware handler that validates JWT bearer
// tokens and resolves the live account behind them.
//
// The token alone is not enough to pass: after signature and expiry checks, the
// subject is re-resolved against the store and the account must still be active
// and unlocked. Locking or deactivating an account therefore cuts off its
// outstanding tokens immediately, without any revocation list.
func AuthMiddleware(jwtSecret string, userSvc portssvc.UserSvcFacade) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := GetLoggerFromCtx(c.Request.Context())

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			logger.Warn("Authorization header missing")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			logger.Warn("Authorization header format invalid")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header format must be Bearer {token}"})
			return
		}

		claims, err := utils.ParseAndValidateJWT(parts[1], jwtSecret)
		if err != nil {
			logger.Warn("Invalid token", "error", err)
			msg := "Invalid token"
			if errors.Is(err, jwt.ErrTokenExpired) {
				msg = "Token has expired"
			} else if errors.Is(err, jwt.ErrTokenNotValidYet) {
				msg = "Token not valid yet"
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msg})
			return
		}

		username := claims.Subject
		if username == "" {
			logger.Error("Subject missing from valid token")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token claims"})
			return
		}

		// Live-state re-check: the signed token is only a hint, the stored
		// account state is the authorization decision.
		user, err := userSvc.ResolveSession(c.Request.Context(), username)
		if err != nil {
			switch {
			case errors.Is(err, apperrors.ErrAccountLocked):
				logger.Warn("Token refused for locked account", slog.String("username", username))
				c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Account is locked"})
			case errors.Is(err, apperrors.ErrAccountInactive):
				logger.Warn("Token refused for inactive account", slog.String("username", username))
				c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Account is not active"})
			case errors.Is(err, apperrors.ErrNotFound):
				logger.Warn("Token subject no longer exists", slog.String("username", username))
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			default:
				logger.Error("Failed to resolve session", slog.String("error", err.Error()))
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			}
			return
		}

		enrichedLogger := logger.With(slog.String("username", user.Username))

		ctx := addUserToCtx(c.Request.Context(), user)
		ctx = AddLoggerToCtx(ctx, enrichedLogger)
		c.Request = c.Request.WithContext(ctx)

		c.Set(string(userIDKey), user.UserID)
		c.Set(string(currentUserKey), user)
		c.Set(string(loggerKey), enrichedLogger)

		c.Next()
	}
}
