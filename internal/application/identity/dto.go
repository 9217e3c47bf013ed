package identity

import (
	"time"

	"github.com/google/uuid"

	"github.com/a7delivery/backend/internal/domain/identity"
)

// LoginInput contains the input for user login
type LoginInput struct {
	Username string
	Password string
}

// LoginResult contains the result of a successful login
type LoginResult struct {
	AccessToken string
	ExpiresAt   time.Time
	TokenType   string
	User        UserInfo
}

// UserInfo contains the account information exposed to clients
type UserInfo struct {
	ID        uuid.UUID
	Username  string
	Role      identity.Role
	IsActive  bool
	ExpiresAt *time.Time
	Status    identity.AccountStatus
	CreatedAt time.Time
}

// GetCurrentUserInput contains the input for getting current user info
type GetCurrentUserInput struct {
	UserID uuid.UUID
}

// CreateUserInput contains the input for creating a dashboard account
type CreateUserInput struct {
	Username  string
	Password  string
	ExpiresAt *time.Time
}

// UpdateUserInput contains the input for a partial account update.
// A zero Password keeps the stored hash; a nil IsActive keeps the stored
// flag; ClearExpiry removes the expiry and wins over ExpiresAt.
type UpdateUserInput struct {
	UserID      string
	Password    string
	IsActive    *bool
	ExpiresAt   *time.Time
	ClearExpiry bool
}

// ToggleUserResult reports the account state after a toggle
type ToggleUserResult struct {
	UserID   uuid.UUID
	IsActive bool
}

// userInfo maps a domain user onto the client-facing info value
func userInfo(u *identity.User, now time.Time) UserInfo {
	return UserInfo{
		ID:        u.ID,
		Username:  u.Username,
		Role:      u.Role,
		IsActive:  u.IsActive,
		ExpiresAt: u.ExpiresAt,
		Status:    u.StatusAt(now),
		CreatedAt: u.CreatedAt,
	}
}
