package dto

import (
	"time"

	"github.com/SscSPs/secure_auth_app/internal/core/domain"
)

// UserResponse is the public projection of an account.
type UserResponse struct {
	Username      string    `json:"username"`
	Email         string    `json:"email"`
	Role          string    `json:"role"`
	Points        int64     `json:"points"`
	EmailVerified bool      `json:"email_verified"`
	CreatedAt     time.Time `json:"created_at"`
}

// ToUserResponse converts a domain.User to its public projection.
func ToUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		Username:      user.Username,
		Email:         user.Email,
		Role:          user.Role,
		Points:        user.Points,
		EmailVerified: user.EmailVerified,
		CreatedAt:     user.CreatedAt,
	}
}
