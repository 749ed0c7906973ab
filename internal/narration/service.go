// Package narration implements the narration editing flow: uploading and
// deleting the sibling audio object for an entry, keeping the catalog's
// narration flag and transcript in step, and evicting stale temporary links.
package narration

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"

	"showreel/internal/catalog"
	"showreel/internal/logger"
	"showreel/internal/models"
	"showreel/internal/remote"
)

const narrationContentType = "audio/mpeg"

// ObjectStore is the slice of the remote store the narration flow writes to
type ObjectStore interface {
	Upload(ctx context.Context, remotePath string, reader io.Reader, size int64, contentType string) error
	Delete(ctx context.Context, remotePath string) error
}

// LinkInvalidator evicts cached temporary links for a path
type LinkInvalidator interface {
	Invalidate(remotePath string)
}

// Transcriber converts narration audio to text. It is an external
// collaborator; a nil transcriber skips transcription.
type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte) (string, error)
}

// Service orchestrates narration uploads and deletes
type Service struct {
	catalog     *catalog.Service
	store       ObjectStore
	links       LinkInvalidator
	transcriber Transcriber
}

// NewService creates a narration service. transcriber may be nil.
func NewService(cat *catalog.Service, store ObjectStore, links LinkInvalidator, transcriber Transcriber) *Service {
	return &Service{
		catalog:     cat,
		store:       store,
		links:       links,
		transcriber: transcriber,
	}
}

// Upload stores narration audio at the entry's deterministic sibling path,
// evicts any cached link for that path (the path is reused on every
// re-recording, so a stale link would serve the old audio), marks the entry as
// narrated, and derives a fresh transcript when a transcriber is wired.
func (s *Service) Upload(ctx context.Context, id uuid.UUID, audio []byte) (*models.Entry, error) {
	entry, err := s.catalog.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	narrationPath := remote.NarrationPath(entry.RemotePath)

	if err := s.store.Upload(ctx, narrationPath, bytes.NewReader(audio), int64(len(audio)), narrationContentType); err != nil {
		return nil, fmt.Errorf("failed to upload narration: %w", err)
	}
	s.links.Invalidate(narrationPath)

	hasNarration := true
	patch := models.EntryPatch{HasNarration: &hasNarration}

	if s.transcriber != nil {
		text, err := s.transcriber.Transcribe(ctx, audio)
		if err != nil {
			// The narration itself is already stored; a failed transcription
			// leaves the previous transcript in place.
			logger.With("narration").Warn().
				Err(err).
				Str("entry_id", id.String()).
				Msg("Transcription failed, keeping existing transcript")
		} else {
			patch.Transcript = models.Set(text)
		}
	}

	updated, err := s.catalog.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}

	logger.With("narration").Info().
		Str("entry_id", id.String()).
		Str("path", narrationPath).
		Int("bytes", len(audio)).
		Msg("Narration uploaded")

	return updated, nil
}

// Delete removes the entry's narration object (an already-absent object is
// success), evicts its cached link, clears the narration flag, and clears the
// transcript since it derives from the deleted audio.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) (*models.Entry, error) {
	entry, err := s.catalog.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	narrationPath := remote.NarrationPath(entry.RemotePath)

	if err := s.store.Delete(ctx, narrationPath); err != nil {
		return nil, fmt.Errorf("failed to delete narration: %w", err)
	}
	s.links.Invalidate(narrationPath)

	hasNarration := false
	patch := models.EntryPatch{
		HasNarration: &hasNarration,
		Transcript:   models.Clear[string](),
	}

	updated, err := s.catalog.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}

	logger.With("narration").Info().
		Str("entry_id", id.String()).
		Str("path", narrationPath).
		Msg("Narration deleted")

	return updated, nil
}
