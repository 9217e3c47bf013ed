package dashboard

import (
	"context"
	"strings"
	"time"
)

// Account status values derived at render time
const (
	StatusActive       = "active"
	StatusExpiringSoon = "expiring_soon"
	StatusExpired      = "expired"
	StatusDisabled     = "disabled"
)

// expiryWarningWindow is how far ahead of expiry an account is flagged
// as expiring soon
const expiryWarningWindow = 7 * 24 * time.Hour

// ClassifyStatus derives an account's lifecycle status at the given
// time. Disabled always wins; admin accounts never expire.
func ClassifyStatus(user User, now time.Time) string {
	if !user.IsActive {
		return StatusDisabled
	}
	if user.IsAdmin() || user.ExpiresAt == nil {
		return StatusActive
	}
	if user.ExpiresAt.Before(now) {
		return StatusExpired
	}
	if user.ExpiresAt.Sub(now) <= expiryWarningWindow {
		return StatusExpiringSoon
	}
	return StatusActive
}

// UserAdminPanel drives the account administration screen. It is only
// shown to admin sessions; the backend enforces the role regardless.
type UserAdminPanel struct {
	client *Client
}

// NewUserAdminPanel creates a user administration panel
func NewUserAdminPanel(client *Client) *UserAdminPanel {
	return &UserAdminPanel{client: client}
}

// List returns the managed accounts
func (p *UserAdminPanel) List(ctx context.Context) ([]User, error) {
	return p.client.Users(ctx)
}

// Create validates and creates an account. Empty username or password
// fail client-side without a request.
func (p *UserAdminPanel) Create(ctx context.Context, input CreateUserInput) (*User, error) {
	if strings.TrimSpace(input.Username) == "" {
		return nil, &ValidationError{Message: "username is required"}
	}
	if input.Password == "" {
		return nil, &ValidationError{Message: "password is required"}
	}
	return p.client.CreateUser(ctx, input)
}

// Update applies a partial update to an account
func (p *UserAdminPanel) Update(ctx context.Context, userID string, input UpdateUserInput) (*User, error) {
	return p.client.UpdateUser(ctx, userID, input)
}

// ToggleActive flips the active flag of an account
func (p *UserAdminPanel) ToggleActive(ctx context.Context, userID string) (*ToggleResult, error) {
	return p.client.ToggleUser(ctx, userID)
}

// Delete removes an account. The CLI confirms before calling this.
func (p *UserAdminPanel) Delete(ctx context.Context, userID string) error {
	return p.client.DeleteUser(ctx, userID)
}
