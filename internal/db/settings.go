package db

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm/clause"

	"showreel/internal/models"
)

// SettingsRepository handles the open-ended key/value settings store
type SettingsRepository struct {
	db *DB
}

// NewSettingsRepository creates a new settings repository
func NewSettingsRepository(db *DB) *SettingsRepository {
	return &SettingsRepository{db: db}
}

// Get retrieves a setting by key
func (r *SettingsRepository) Get(ctx context.Context, key string) (*models.Setting, error) {
	var setting models.Setting
	result := r.db.WithContext(ctx).Where("key = ?", key).First(&setting)
	if result.Error != nil {
		return nil, MapGormError(result.Error)
	}
	return &setting, nil
}

// Set creates or replaces a setting
func (r *SettingsRepository) Set(ctx context.Context, key, value string) error {
	setting := models.Setting{
		Key:       key,
		Value:     value,
		UpdatedAt: time.Now().UTC(),
	}
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&setting)
	if result.Error != nil {
		return fmt.Errorf("failed to set setting %q: %w", key, MapGormError(result.Error))
	}
	return nil
}

// All retrieves every setting, ordered by key
func (r *SettingsRepository) All(ctx context.Context) ([]*models.Setting, error) {
	var settings []*models.Setting
	result := r.db.WithContext(ctx).Order("key ASC").Find(&settings)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to list settings: %w", MapGormError(result.Error))
	}
	return settings, nil
}
