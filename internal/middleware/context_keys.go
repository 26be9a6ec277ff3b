package middleware

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/SscSPs/secure_auth_app/internal/core/domain"
)

// userIDKey is the key used to store the authenticated user's ID in the context.
// Using a custom type prevents collisions.
const userIDKey = contextKey("userID")

// currentUserKey holds the fully resolved *domain.User for the request, set by
// the auth middleware after the live-state check.
const currentUserKey = contextKey("currentUser")

// GetUserIDFromContext retrieves the authenticated user ID from the Gin context.
// It returns the user ID and a boolean indicating if it was found.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	userIDVal, exists := c.Get(string(userIDKey))
	if !exists {
		// check in the request context as well
		userIDVal := c.Request.Context().Value(userIDKey)
		if userIDVal != nil {
			return userIDVal.(string), true
		}
		return "", false
	}

	userID, ok := userIDVal.(string)
	if !ok {
		return "", false
	}

	return userID, true
}

// GetCurrentUserFromContext retrieves the resolved user set by the auth
// middleware. The second return is false on unauthenticated requests.
func GetCurrentUserFromContext(c *gin.Context) (*domain.User, bool) {
	val, exists := c.Get(string(currentUserKey))
	if !exists {
		val = c.Request.Context().Value(currentUserKey)
		if val == nil {
			return nil, false
		}
	}
	user, ok := val.(*domain.User)
	return user, ok
}

func addUserToCtx(ctx context.Context, user *domain.User) context.Context {
	ctx = context.WithValue(ctx, userIDKey, user.UserID)
	return context.WithValue(ctx, currentUserKey, user)
}
