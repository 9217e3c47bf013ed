package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/a7delivery/backend/internal/domain/settings"
	"github.com/a7delivery/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormSettingsRepository implements settings.Repository using GORM
type GormSettingsRepository struct {
	db *gorm.DB
}

// NewGormSettingsRepository creates a new GORM-backed settings repository
func NewGormSettingsRepository(db *gorm.DB) *GormSettingsRepository {
	return &GormSettingsRepository{db: db}
}

// Get returns the stored integration settings, or an empty value if none were saved yet
func (r *GormSettingsRepository) Get(ctx context.Context) (*settings.IntegrationSettings, error) {
	var model models.SettingsModel
	err := r.db.WithContext(ctx).Where("id = ?", 1).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &settings.IntegrationSettings{}, nil
		}
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}
	return model.ToDomain(), nil
}

// Save upserts the integration settings singleton row
func (r *GormSettingsRepository) Save(ctx context.Context, s *settings.IntegrationSettings) error {
	model := models.SettingsModelFromDomain(s)
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).
		Create(model).Error
	if err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}
