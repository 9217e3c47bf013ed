package settings

import (
	"context"
	"time"

	"github.com/a7delivery/backend/internal/domain/integration"
)

// IntegrationSettings is the single row of stored integration credentials
type IntegrationSettings struct {
	ShopStoreURL    string
	ShopAccessToken string
	CarrierToken    string
	CarrierKey      string
	UpdatedAt       time.Time
}

// ShopCredentials returns the stored store credentials
func (s *IntegrationSettings) ShopCredentials() integration.ShopCredentials {
	return integration.ShopCredentials{
		StoreURL:    s.ShopStoreURL,
		AccessToken: s.ShopAccessToken,
	}
}

// CarrierCredentials returns the stored carrier credentials
func (s *IntegrationSettings) CarrierCredentials() integration.CarrierCredentials {
	return integration.CarrierCredentials{
		Token: s.CarrierToken,
		Key:   s.CarrierKey,
	}
}

// Repository persists the settings singleton
type Repository interface {
	// Get returns the current settings, or an empty value if none were saved yet
	Get(ctx context.Context) (*IntegrationSettings, error)
	// Save upserts the singleton row
	Save(ctx context.Context, s *IntegrationSettings) error
}
