// Package catalog implements the business logic over the entry repository:
// lookups, partial updates, lifecycle transitions, and reordering.
package catalog

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"showreel/internal/db"
	"showreel/internal/logger"
	"showreel/internal/models"
)

// Service handles business logic for catalog operations
type Service struct {
	repos *db.Repositories
}

// NewService creates a new catalog service instance
func NewService(repos *db.Repositories) *Service {
	return &Service{repos: repos}
}

// Get retrieves an entry by its ID
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*models.Entry, error) {
	entry, err := s.repos.Entries.GetByID(ctx, id)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, ErrEntryNotFound
		}
		logger.With("catalog").Error().
			Err(err).
			Str("entry_id", id.String()).
			Msg("Failed to get entry by ID")
		return nil, fmt.Errorf("failed to get entry: %w", err)
	}
	return entry, nil
}

// GetByPath retrieves an entry by its remote path
func (s *Service) GetByPath(ctx context.Context, remotePath string) (*models.Entry, error) {
	entry, err := s.repos.Entries.GetByPath(ctx, remotePath)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, ErrEntryNotFound
		}
		logger.With("catalog").Error().
			Err(err).
			Str("remote_path", remotePath).
			Msg("Failed to get entry by path")
		return nil, fmt.Errorf("failed to get entry: %w", err)
	}
	return entry, nil
}

// ListAll retrieves every entry in the three-tier editor order
func (s *Service) ListAll(ctx context.Context) ([]*models.Entry, error) {
	entries, err := s.repos.Entries.ListAll(ctx)
	if err != nil {
		logger.With("catalog").Error().Err(err).Msg("Failed to list entries")
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}
	return entries, nil
}

// ListByStatus retrieves entries in one lifecycle state, in that state's
// natural order
func (s *Service) ListByStatus(ctx context.Context, status models.Status) ([]*models.Entry, error) {
	var (
		entries []*models.Entry
		err     error
	)
	switch status {
	case models.StatusActive:
		entries, err = s.repos.Entries.ListActive(ctx)
	case models.StatusStaging:
		entries, err = s.repos.Entries.ListStaging(ctx)
	case models.StatusDisabled:
		entries, err = s.repos.Entries.ListDisabled(ctx)
	default:
		return nil, ErrInvalidStatus
	}
	if err != nil {
		logger.With("catalog").Error().
			Err(err).
			Str("status", string(status)).
			Msg("Failed to list entries by status")
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}
	return entries, nil
}

// Update applies a partial update to an entry. An empty patch succeeds and
// returns the current record unchanged.
func (s *Service) Update(ctx context.Context, id uuid.UUID, patch models.EntryPatch) (*models.Entry, error) {
	if patch.Position.Valid && patch.Position.Value != nil && *patch.Position.Value < 0 {
		return nil, ErrInvalidPosition
	}

	entry, err := s.repos.Entries.Update(ctx, id, patch)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, ErrEntryNotFound
		}
		logger.With("catalog").Error().
			Err(err).
			Str("entry_id", id.String()).
			Msg("Failed to update entry")
		return nil, fmt.Errorf("failed to update entry: %w", err)
	}

	logger.With("catalog").Info().
		Str("entry_id", id.String()).
		Msg("Entry updated")

	return entry, nil
}

// SetStatus moves an entry to the requested lifecycle state using the
// transition composition rules:
//   - active: clear disabled; assign the next free position only when the
//     entry has none, so a re-enabled entry restores its old slot
//   - staging: clear disabled and position (the entry loses its slot)
//   - disabled: set disabled, keep position for later re-activation
func (s *Service) SetStatus(ctx context.Context, id uuid.UUID, status models.Status) (*models.Entry, error) {
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}

	entry, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	disabled := status == models.StatusDisabled
	patch := models.EntryPatch{Disabled: &disabled}

	switch status {
	case models.StatusActive:
		if entry.Position == nil {
			next, err := s.repos.Entries.NextPosition(ctx)
			if err != nil {
				return nil, fmt.Errorf("failed to assign position: %w", err)
			}
			patch.Position = models.Set(next)
		}
	case models.StatusStaging:
		patch.Position = models.Clear[int]()
	case models.StatusDisabled:
		// Position untouched so re-activating restores placement
	}

	updated, err := s.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}

	logger.With("catalog").Info().
		Str("entry_id", id.String()).
		Str("status", string(status)).
		Msg("Entry status changed")

	return updated, nil
}

// Reorder replaces the positions of the listed entries with their list index,
// atomically. Entries not listed keep their positions.
func (s *Service) Reorder(ctx context.Context, ids []uuid.UUID) error {
	if err := s.repos.Entries.Reorder(ctx, ids); err != nil {
		if db.IsNotFound(err) {
			return fmt.Errorf("failed to reorder entries: %w", ErrEntryNotFound)
		}
		logger.With("catalog").Error().
			Err(err).
			Int("count", len(ids)).
			Msg("Failed to reorder entries")
		return fmt.Errorf("failed to reorder entries: %w", err)
	}

	logger.With("catalog").Info().
		Int("count", len(ids)).
		Msg("Entries reordered")

	return nil
}

// Delete removes an entry, reporting whether a row was removed. Deleting a
// missing entry is not an error.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	removed, err := s.repos.Entries.Delete(ctx, id)
	if err != nil {
		logger.With("catalog").Error().
			Err(err).
			Str("entry_id", id.String()).
			Msg("Failed to delete entry")
		return false, fmt.Errorf("failed to delete entry: %w", err)
	}

	if removed {
		logger.With("catalog").Info().
			Str("entry_id", id.String()).
			Msg("Entry deleted")
	}

	return removed, nil
}
