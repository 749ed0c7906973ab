// Package reconcile implements the one-shot, operator-triggered diff between
// the remote file listing and the local entry catalog.
package reconcile

import (
	"context"
	"fmt"

	"showreel/internal/db"
	"showreel/internal/logger"
	"showreel/internal/models"
	"showreel/internal/remote"
)

// Lister supplies the authoritative remote listing
type Lister interface {
	ListFiles(ctx context.Context) ([]remote.RemoteFile, error)
}

// Report holds the counts of a completed (or partially completed) pass
type Report struct {
	Added     int `json:"added"`
	Removed   int `json:"removed"`
	Unchanged int `json:"unchanged"`
}

// Engine diffs the remote listing against the catalog and applies idempotent
// corrective writes. It is not a background process: one call, one pass.
type Engine struct {
	repos  *db.Repositories
	lister Lister
}

// NewEngine creates a reconciliation engine
func NewEngine(repos *db.Repositories, lister Lister) *Engine {
	return &Engine{repos: repos, lister: lister}
}

// Run executes one reconciliation pass:
//   - remote files with no local entry are created as staging entries (added)
//   - present entries get their narration flag corrected when the remote
//     observation disagrees (still counted unchanged)
//   - local entries whose remote file is gone are only counted (removed); no
//     destructive action is taken
//
// A listing failure aborts before any local write. A mid-pass write failure
// propagates with the counts completed so far; each per-entry write is
// self-contained, so re-running is always safe.
func (e *Engine) Run(ctx context.Context) (Report, error) {
	var report Report

	files, err := e.lister.ListFiles(ctx)
	if err != nil {
		logger.With("reconcile").Error().Err(err).Msg("Remote listing failed, aborting pass")
		return report, fmt.Errorf("sync failed: %w", err)
	}

	entries, err := e.repos.Entries.ListAll(ctx)
	if err != nil {
		return report, fmt.Errorf("sync failed: %w", err)
	}

	local := make(map[string]*models.Entry, len(entries))
	for _, entry := range entries {
		local[entry.RemotePath] = entry
	}

	seen := make(map[string]struct{}, len(files))
	for _, file := range files {
		seen[file.Path] = struct{}{}

		entry, exists := local[file.Path]
		if !exists {
			added, err := e.createEntry(ctx, file)
			if err != nil {
				return report, fmt.Errorf("sync failed: %w", err)
			}
			if added {
				report.Added++
			} else {
				// A concurrent pass created it first; the unique
				// constraint on remote_path is the de-duplication
				// mechanism of record.
				report.Unchanged++
			}
			continue
		}

		if entry.HasNarration != file.HasNarration {
			patch := models.EntryPatch{HasNarration: &file.HasNarration}
			if _, err := e.repos.Entries.Update(ctx, entry.ID, patch); err != nil {
				return report, fmt.Errorf("sync failed: %w", err)
			}
			logger.With("reconcile").Info().
				Str("remote_path", file.Path).
				Bool("has_narration", file.HasNarration).
				Msg("Corrected narration flag")
		}
		report.Unchanged++
	}

	for path := range local {
		if _, ok := seen[path]; !ok {
			// Counted for reporting only; local records are never
			// auto-deleted when remote files disappear.
			report.Removed++
		}
	}

	logger.With("reconcile").Info().
		Int("added", report.Added).
		Int("removed", report.Removed).
		Int("unchanged", report.Unchanged).
		Msg("Reconciliation pass completed")

	return report, nil
}

// createEntry records a newly observed remote file, tolerating a racing
// create from a concurrent pass. Returns whether this pass created the entry.
func (e *Engine) createEntry(ctx context.Context, file remote.RemoteFile) (bool, error) {
	entry := models.NewEntry(file.Path)
	entry.HasNarration = file.HasNarration

	err := e.repos.Entries.Create(ctx, entry)
	if err == nil {
		logger.With("reconcile").Info().
			Str("remote_path", file.Path).
			Bool("has_narration", file.HasNarration).
			Msg("Created entry for new remote file")
		return true, nil
	}

	if !db.IsDuplicate(err) {
		return false, err
	}

	// Already present: make sure the narration flag matches this observation
	existing, err := e.repos.Entries.GetByPath(ctx, file.Path)
	if err != nil {
		return false, fmt.Errorf("failed to fetch entry after duplicate: %w", err)
	}
	if existing.HasNarration != file.HasNarration {
		patch := models.EntryPatch{HasNarration: &file.HasNarration}
		if _, err := e.repos.Entries.Update(ctx, existing.ID, patch); err != nil {
			return false, err
		}
	}
	return false, nil
}
