package models

import (
	"time"

	"github.com/a7delivery/backend/internal/domain/identity"
	"github.com/google/uuid"
)

// UserModel is the GORM model for dashboard accounts
type UserModel struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Username     string     `gorm:"type:varchar(100);uniqueIndex;not null"`
	PasswordHash string     `gorm:"type:varchar(255);not null"`
	Role         string     `gorm:"type:varchar(20);not null;default:'user'"`
	IsActive     bool       `gorm:"not null;default:true"`
	ExpiresAt    *time.Time `gorm:"index"`
	CreatedAt    time.Time  `gorm:"not null"`
	UpdatedAt    time.Time  `gorm:"not null"`
}

// TableName returns the table name for UserModel
func (UserModel) TableName() string {
	return "users"
}

// ToDomain converts the model to a domain entity
func (m *UserModel) ToDomain() *identity.User {
	return &identity.User{
		BaseEntity:   baseEntity(m.ID, m.CreatedAt, m.UpdatedAt),
		Username:     m.Username,
		PasswordHash: m.PasswordHash,
		Role:         identity.Role(m.Role),
		IsActive:     m.IsActive,
		ExpiresAt:    m.ExpiresAt,
	}
}

// UserModelFromDomain converts a domain entity to a model
func UserModelFromDomain(u *identity.User) *UserModel {
	return &UserModel{
		ID:           u.ID,
		Username:     u.Username,
		PasswordHash: u.PasswordHash,
		Role:         string(u.Role),
		IsActive:     u.IsActive,
		ExpiresAt:    u.ExpiresAt,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}
