package identity

import (
	"strings"
	"time"

	"github.com/a7delivery/backend/internal/domain/shared"
	"golang.org/x/crypto/bcrypt"
)

// Role represents the role of a dashboard account
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// IsValid returns true if the role is a known role
func (r Role) IsValid() bool {
	return r == RoleAdmin || r == RoleUser
}

// AccountStatus is the derived lifecycle status of an account.
// It is never stored; it is recomputed from the account fields and a clock.
type AccountStatus string

const (
	AccountStatusActive       AccountStatus = "active"
	AccountStatusExpiringSoon AccountStatus = "expiring_soon"
	AccountStatusExpired      AccountStatus = "expired"
	AccountStatusDisabled     AccountStatus = "disabled"
)

// ExpiryWarningWindow is how far ahead of expiry an account is flagged as expiring soon.
const ExpiryWarningWindow = 7 * 24 * time.Hour

// Password cost for bcrypt
const bcryptCost = 12

// User represents a dashboard account.
// It is the aggregate root for account operations.
type User struct {
	shared.BaseEntity
	Username     string
	PasswordHash string
	Role         Role
	IsActive     bool
	ExpiresAt    *time.Time
}

// NewUser creates a new active user with the given credentials
func NewUser(username, password string, role Role) (*User, error) {
	if err := validateUsername(username); err != nil {
		return nil, err
	}
	if err := validatePassword(password); err != nil {
		return nil, err
	}
	if !role.IsValid() {
		return nil, shared.NewDomainError("INVALID_ROLE", "Role must be admin or user")
	}

	passwordHash, err := hashPassword(password)
	if err != nil {
		return nil, shared.NewDomainError("PASSWORD_HASH_ERROR", "Failed to hash password")
	}

	return &User{
		BaseEntity:   shared.NewBaseEntity(),
		Username:     strings.ToLower(strings.TrimSpace(username)),
		PasswordHash: passwordHash,
		Role:         role,
		IsActive:     true,
	}, nil
}

// VerifyPassword verifies if the provided password matches
func (u *User) VerifyPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
	return err == nil
}

// SetPassword sets a new password (admin reset, no old password check)
func (u *User) SetPassword(newPassword string) error {
	if err := validatePassword(newPassword); err != nil {
		return err
	}

	passwordHash, err := hashPassword(newPassword)
	if err != nil {
		return shared.NewDomainError("PASSWORD_HASH_ERROR", "Failed to hash password")
	}

	u.PasswordHash = passwordHash
	u.Touch()
	return nil
}

// SetExpiry sets or clears the account expiry date
func (u *User) SetExpiry(expiresAt *time.Time) {
	u.ExpiresAt = expiresAt
	u.Touch()
}

// SetActive enables or disables the account
func (u *User) SetActive(active bool) {
	u.IsActive = active
	u.Touch()
}

// ToggleActive flips the active flag and returns the new value
func (u *User) ToggleActive() bool {
	u.IsActive = !u.IsActive
	u.Touch()
	return u.IsActive
}

// IsAdmin returns true for administrator accounts
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// IsExpired returns true if the account has a passed expiry date.
// Admin accounts never expire.
func (u *User) IsExpired(now time.Time) bool {
	if u.IsAdmin() || u.ExpiresAt == nil {
		return false
	}
	return u.ExpiresAt.Before(now)
}

// CanLogin returns true if the account may authenticate at the given time
func (u *User) CanLogin(now time.Time) bool {
	return u.IsActive && !u.IsExpired(now)
}

// StatusAt derives the account status at the given time.
// Disabled always wins over expiry.
func (u *User) StatusAt(now time.Time) AccountStatus {
	if !u.IsActive {
		return AccountStatusDisabled
	}
	if u.IsExpired(now) {
		return AccountStatusExpired
	}
	if !u.IsAdmin() && u.ExpiresAt != nil && u.ExpiresAt.Sub(now) <= ExpiryWarningWindow {
		return AccountStatusExpiringSoon
	}
	return AccountStatusActive
}

func validateUsername(username string) error {
	username = strings.TrimSpace(username)
	if username == "" {
		return shared.NewDomainError("INVALID_USERNAME", "Username cannot be empty")
	}
	if len(username) > 100 {
		return shared.NewDomainError("INVALID_USERNAME", "Username cannot exceed 100 characters")
	}
	return nil
}

func validatePassword(password string) error {
	if password == "" {
		return shared.NewDomainError("INVALID_PASSWORD", "Password cannot be empty")
	}
	if len(password) > 128 {
		return shared.NewDomainError("INVALID_PASSWORD", "Password cannot exceed 128 characters")
	}
	return nil
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
