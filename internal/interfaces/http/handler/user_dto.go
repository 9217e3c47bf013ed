package handler

import "time"

// CreateUserRequest is the body of POST /users
type CreateUserRequest struct {
	Username  string     `json:"username" binding:"required,min=3,max=100"`
	Password  string     `json:"password" binding:"required,min=8"`
	ExpiresAt *time.Time `json:"expires_at"`
}

// UpdateUserRequest is the body of PUT /users/:id. Empty password keeps
// the stored one; clear_expiry removes the expiry date; a nil is_active
// keeps the stored flag.
type UpdateUserRequest struct {
	Password    string     `json:"password" binding:"omitempty,min=8"`
	IsActive    *bool      `json:"is_active"`
	ExpiresAt   *time.Time `json:"expires_at"`
	ClearExpiry bool       `json:"clear_expiry"`
}

// ToggleUserResponse reports the account state after a toggle
type ToggleUserResponse struct {
	ID       string `json:"id"`
	IsActive bool   `json:"is_active"`
}
