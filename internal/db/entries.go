package db

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"showreel/internal/models"
)

// EntryRepository handles database operations for slideshow entries
type EntryRepository struct {
	db *DB
}

// NewEntryRepository creates a new entry repository
func NewEntryRepository(db *DB) *EntryRepository {
	return &EntryRepository{db: db}
}

// Create inserts a new entry. A remote path that already exists surfaces as
// ErrDuplicate so callers can treat the entry as already present.
func (r *EntryRepository) Create(ctx context.Context, entry *models.Entry) error {
	result := r.db.WithContext(ctx).Create(entry)
	if result.Error != nil {
		return fmt.Errorf("failed to create entry: %w", MapGormError(result.Error))
	}
	return nil
}

// GetByID retrieves an entry by its UUID
func (r *EntryRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Entry, error) {
	var entry models.Entry
	result := r.db.WithContext(ctx).Where("id = ?", id.String()).First(&entry)
	if result.Error != nil {
		return nil, MapGormError(result.Error)
	}
	return &entry, nil
}

// GetByPath retrieves an entry by its remote path
func (r *EntryRepository) GetByPath(ctx context.Context, remotePath string) (*models.Entry, error) {
	var entry models.Entry
	result := r.db.WithContext(ctx).Where("remote_path = ?", remotePath).First(&entry)
	if result.Error != nil {
		return nil, MapGormError(result.Error)
	}
	return &entry, nil
}

// ListActive retrieves entries with a position and disabled unset, ordered by
// position ascending (the render order)
func (r *EntryRepository) ListActive(ctx context.Context) ([]*models.Entry, error) {
	var entries []*models.Entry
	result := r.db.WithContext(ctx).
		Where("disabled = ? AND position IS NOT NULL", false).
		Order("position ASC").
		Find(&entries)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to list active entries: %w", MapGormError(result.Error))
	}
	return entries, nil
}

// ListStaging retrieves unplaced, enabled entries, newest first
func (r *EntryRepository) ListStaging(ctx context.Context) ([]*models.Entry, error) {
	var entries []*models.Entry
	result := r.db.WithContext(ctx).
		Where("disabled = ? AND position IS NULL", false).
		Order("created_at DESC").
		Find(&entries)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to list staging entries: %w", MapGormError(result.Error))
	}
	return entries, nil
}

// ListDisabled retrieves disabled entries, most recently touched first
func (r *EntryRepository) ListDisabled(ctx context.Context) ([]*models.Entry, error) {
	var entries []*models.Entry
	result := r.db.WithContext(ctx).
		Where("disabled = ?", true).
		Order("updated_at DESC").
		Find(&entries)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to list disabled entries: %w", MapGormError(result.Error))
	}
	return entries, nil
}

// ListAll retrieves every entry in the three-tier editor order: active by
// position, then staging newest-first, then disabled by last update. Composed
// from the three tier queries rather than a single CASE ordering so the sort
// specification stays storage-agnostic.
func (r *EntryRepository) ListAll(ctx context.Context) ([]*models.Entry, error) {
	active, err := r.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	staging, err := r.ListStaging(ctx)
	if err != nil {
		return nil, err
	}
	disabled, err := r.ListDisabled(ctx)
	if err != nil {
		return nil, err
	}

	all := make([]*models.Entry, 0, len(active)+len(staging)+len(disabled))
	all = append(all, active...)
	all = append(all, staging...)
	all = append(all, disabled...)
	return all, nil
}

// Update applies a partial update and returns the resulting entry. An empty
// patch is a successful no-op that returns the current record untouched; a
// non-empty patch always advances updated_at.
func (r *EntryRepository) Update(ctx context.Context, id uuid.UUID, patch models.EntryPatch) (*models.Entry, error) {
	if patch.IsEmpty() {
		return r.GetByID(ctx, id)
	}

	updates := map[string]interface{}{
		"updated_at": time.Now().UTC(),
	}
	if patch.Title.Valid {
		updates["title"] = patch.Title.Value
	}
	if patch.Transcript.Valid {
		updates["transcript"] = patch.Transcript.Value
	}
	if patch.Position.Valid {
		updates["position"] = patch.Position.Value
	}
	if patch.Disabled != nil {
		updates["disabled"] = *patch.Disabled
	}
	if patch.HasNarration != nil {
		updates["has_narration"] = *patch.HasNarration
	}

	result := r.db.WithContext(ctx).Model(&models.Entry{}).Where("id = ?", id.String()).Updates(updates)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to update entry: %w", MapGormError(result.Error))
	}
	if result.RowsAffected == 0 {
		return nil, ErrNotFound
	}

	return r.GetByID(ctx, id)
}

// Reorder sets position = index for each id in the given order, as a single
// atomic unit. Entries omitted from the list keep their positions. An id with
// no matching row aborts and rolls the whole reorder back. An empty list is a
// legal no-op.
func (r *EntryRepository) Reorder(ctx context.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}

	return r.db.WithTransaction(ctx, func(tx *gorm.DB) error {
		now := time.Now().UTC()
		for index, id := range ids {
			result := tx.Model(&models.Entry{}).
				Where("id = ?", id.String()).
				Updates(map[string]interface{}{
					"position":   index,
					"updated_at": now,
				})
			if result.Error != nil {
				return fmt.Errorf("failed to update position for entry %s: %w", id, MapGormError(result.Error))
			}
			if result.RowsAffected == 0 {
				return fmt.Errorf("entry %s: %w", id, ErrNotFound)
			}
		}
		return nil
	})
}

// Delete removes an entry and reports whether a row was actually removed.
// Deleting a missing id is not an error.
func (r *EntryRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	result := r.db.WithContext(ctx).Where("id = ?", id.String()).Delete(&models.Entry{})
	if result.Error != nil {
		return false, fmt.Errorf("failed to delete entry: %w", MapGormError(result.Error))
	}
	return result.RowsAffected > 0, nil
}

// NextPosition returns one past the current maximum position, or 0 when no
// entry has a position. Used when promoting an entry to active without
// disturbing the existing order.
func (r *EntryRepository) NextPosition(ctx context.Context) (int, error) {
	var next int
	result := r.db.WithContext(ctx).
		Model(&models.Entry{}).
		Select("COALESCE(MAX(position) + 1, 0)").
		Where("position IS NOT NULL").
		Scan(&next)
	if result.Error != nil {
		return 0, fmt.Errorf("failed to compute next position: %w", MapGormError(result.Error))
	}
	return next, nil
}
