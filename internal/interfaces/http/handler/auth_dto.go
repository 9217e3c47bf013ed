package handler

import (
	"time"

	identityapp "github.com/a7delivery/backend/internal/application/identity"
)

// LoginRequest is the body of POST /auth/login
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse is the payload of a successful login
type LoginResponse struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	ExpiresAt   time.Time    `json:"expires_at"`
	User        UserResponse `json:"user"`
}

// UserResponse is the client-facing account representation
type UserResponse struct {
	ID        string     `json:"id"`
	Username  string     `json:"username"`
	Role      string     `json:"role"`
	IsActive  bool       `json:"is_active"`
	ExpiresAt *time.Time `json:"expires_at"`
	Status    string     `json:"status"`
	CreatedAt time.Time  `json:"created_at"`
}

// UserResponseFromInfo maps an application user info onto the response shape
func UserResponseFromInfo(info identityapp.UserInfo) UserResponse {
	return UserResponse{
		ID:        info.ID.String(),
		Username:  info.Username,
		Role:      string(info.Role),
		IsActive:  info.IsActive,
		ExpiresAt: info.ExpiresAt,
		Status:    string(info.Status),
		CreatedAt: info.CreatedAt,
	}
}
