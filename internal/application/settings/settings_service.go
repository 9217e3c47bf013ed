package settings

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/a7delivery/backend/internal/domain/integration"
	"github.com/a7delivery/backend/internal/domain/settings"
	"github.com/a7delivery/backend/internal/domain/shared"
)

// SettingsView is the client-facing projection of the integration
// settings. Secrets never leave the server; the *Set flags tell the
// client whether a credential exists.
type SettingsView struct {
	ShopStoreURL       string
	ShopAccessTokenSet bool
	CarrierTokenSet    bool
	CarrierKeySet      bool
	UpdatedAt          time.Time
}

// SaveSettingsInput contains the input for saving integration settings.
// Empty secret fields preserve the stored values, so a masked round-trip
// cannot wipe credentials.
type SaveSettingsInput struct {
	ShopStoreURL    string
	ShopAccessToken string
	CarrierToken    string
	CarrierKey      string
}

// TestResult reports the outcome of probing both integrations
type TestResult struct {
	Shop    integration.ConnectionStatus
	Carrier integration.ConnectionStatus
}

// Service handles integration settings management
type Service struct {
	repo     settings.Repository
	platform integration.ShopPlatform
	carrier  integration.Carrier
	logger   *zap.Logger
}

// NewService creates a new settings service
func NewService(repo settings.Repository, platform integration.ShopPlatform, carrier integration.Carrier, logger *zap.Logger) *Service {
	return &Service{
		repo:     repo,
		platform: platform,
		carrier:  carrier,
		logger:   logger,
	}
}

// Get returns the stored settings with secrets masked out
func (s *Service) Get(ctx context.Context) (*SettingsView, error) {
	stored, err := s.repo.Get(ctx)
	if err != nil {
		s.logger.Error("Failed to load settings", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to load settings")
	}

	return &SettingsView{
		ShopStoreURL:       stored.ShopStoreURL,
		ShopAccessTokenSet: stored.ShopAccessToken != "",
		CarrierTokenSet:    stored.CarrierToken != "",
		CarrierKeySet:      stored.CarrierKey != "",
		UpdatedAt:          stored.UpdatedAt,
	}, nil
}

// Save stores the settings. Empty secret fields keep the stored values.
func (s *Service) Save(ctx context.Context, input SaveSettingsInput) (*SettingsView, error) {
	stored, err := s.repo.Get(ctx)
	if err != nil {
		s.logger.Error("Failed to load settings", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to load settings")
	}

	stored.ShopStoreURL = input.ShopStoreURL
	if input.ShopAccessToken != "" {
		stored.ShopAccessToken = input.ShopAccessToken
	}
	if input.CarrierToken != "" {
		stored.CarrierToken = input.CarrierToken
	}
	if input.CarrierKey != "" {
		stored.CarrierKey = input.CarrierKey
	}
	stored.UpdatedAt = time.Now().UTC()

	if err := s.repo.Save(ctx, stored); err != nil {
		s.logger.Error("Failed to save settings", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to save settings")
	}

	s.logger.Info("Integration settings saved")

	return &SettingsView{
		ShopStoreURL:       stored.ShopStoreURL,
		ShopAccessTokenSet: stored.ShopAccessToken != "",
		CarrierTokenSet:    stored.CarrierToken != "",
		CarrierKeySet:      stored.CarrierKey != "",
		UpdatedAt:          stored.UpdatedAt,
	}, nil
}

// TestConnections probes both integrations once and reports per-integration
// status. Probe failures are reported in the result, not as errors.
func (s *Service) TestConnections(ctx context.Context) (*TestResult, error) {
	stored, err := s.repo.Get(ctx)
	if err != nil {
		s.logger.Error("Failed to load settings", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to load settings")
	}

	result := &TestResult{
		Shop:    s.platform.TestConnection(ctx, stored.ShopCredentials()),
		Carrier: s.carrier.TestConnection(ctx, stored.CarrierCredentials()),
	}

	s.logger.Info("Integration probe finished",
		zap.Bool("shop_ok", result.Shop.OK),
		zap.Bool("carrier_ok", result.Carrier.OK))
	return result, nil
}
