package models

import (
	"time"

	"github.com/a7delivery/backend/internal/domain/settings"
)

// SettingsModel is the GORM model for the integration settings singleton
type SettingsModel struct {
	ID              int       `gorm:"primaryKey"` // always 1
	ShopStoreURL    string    `gorm:"type:varchar(255)"`
	ShopAccessToken string    `gorm:"type:varchar(255)"`
	CarrierToken    string    `gorm:"type:varchar(255)"`
	CarrierKey      string    `gorm:"type:varchar(255)"`
	UpdatedAt       time.Time `gorm:"not null"`
}

// TableName returns the table name for SettingsModel
func (SettingsModel) TableName() string {
	return "integration_settings"
}

// ToDomain converts the model to a domain value
func (m *SettingsModel) ToDomain() *settings.IntegrationSettings {
	return &settings.IntegrationSettings{
		ShopStoreURL:    m.ShopStoreURL,
		ShopAccessToken: m.ShopAccessToken,
		CarrierToken:    m.CarrierToken,
		CarrierKey:      m.CarrierKey,
		UpdatedAt:       m.UpdatedAt,
	}
}

// SettingsModelFromDomain converts a domain value to a model
func SettingsModelFromDomain(s *settings.IntegrationSettings) *SettingsModel {
	return &SettingsModel{
		ID:              1,
		ShopStoreURL:    s.ShopStoreURL,
		ShopAccessToken: s.ShopAccessToken,
		CarrierToken:    s.CarrierToken,
		CarrierKey:      s.CarrierKey,
		UpdatedAt:       s.UpdatedAt,
	}
}
