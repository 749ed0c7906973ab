package remote

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"path"
	"sort"
	"strings"

	"github.com/minio/minio-go/v7"

	"showreel/internal/config"
	"showreel/internal/logger"
)

// NarrationSuffix is appended to a media object's path to derive its sibling
// narration object. The narration path is deterministic and reused on every
// re-recording, which is why cached links for it must be evicted on overwrite.
const NarrationSuffix = ".narration.mp3"

// NarrationPath derives the narration object path for a media object
func NarrationPath(remotePath string) string {
	return remotePath + NarrationSuffix
}

// Media object extensions recognized by the listing pass
var (
	imageExtensions = []string{".jpg", ".jpeg", ".png", ".gif", ".webp"}
	videoExtensions = []string{".mp4", ".mov", ".webm"}
)

// RemoteFile is one media object observed during a listing pass. It is
// ephemeral and never persisted.
type RemoteFile struct {
	Path         string `json:"path"`
	Name         string `json:"name"`
	IsVideo      bool   `json:"is_video"`
	HasNarration bool   `json:"has_narration"`
}

// Store lists, uploads, deletes, and presigns objects under the configured
// bucket and root prefix
type Store struct {
	clients *ClientCache
	cfg     config.RemoteConfig
}

// NewStore creates a store over the given client cache
func NewStore(clients *ClientCache, cfg config.RemoteConfig) *Store {
	return &Store{clients: clients, cfg: cfg}
}

// ListFiles returns all media objects under the root prefix, classified and
// with narration presence resolved against the same pass's key set
func (s *Store) ListFiles(ctx context.Context) ([]RemoteFile, error) {
	client, err := s.clients.Handle(ctx)
	if err != nil {
		return nil, err
	}

	keys := make(map[string]struct{})
	for object := range client.ListObjects(ctx, s.cfg.Bucket, minio.ListObjectsOptions{
		Prefix:    s.cfg.RootPrefix,
		Recursive: true,
	}) {
		if object.Err != nil {
			return nil, fmt.Errorf("%w: listing failed: %v", ErrRemoteUnavailable, object.Err)
		}
		keys[object.Key] = struct{}{}
	}

	files := ClassifyListing(keys)

	logger.With("remote").Debug().
		Int("objects", len(keys)).
		Int("media_files", len(files)).
		Str("prefix", s.cfg.RootPrefix).
		Msg("Listed remote objects")

	return files, nil
}

// ClassifyListing filters a set of object keys down to media files and
// computes narration presence from sibling keys. Results are ordered by path
// for deterministic output.
func ClassifyListing(keys map[string]struct{}) []RemoteFile {
	files := make([]RemoteFile, 0, len(keys))
	for key := range keys {
		if strings.HasSuffix(key, NarrationSuffix) {
			continue
		}
		isVideo, ok := classifyExtension(key)
		if !ok {
			continue
		}
		_, hasNarration := keys[NarrationPath(key)]
		files = append(files, RemoteFile{
			Path:         key,
			Name:         path.Base(key),
			IsVideo:      isVideo,
			HasNarration: hasNarration,
		})
	}

	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })
	return files
}

// classifyExtension reports whether the key is a media object and whether it
// is a video
func classifyExtension(key string) (isVideo, isMedia bool) {
	ext := strings.ToLower(path.Ext(key))
	for _, e := range videoExtensions {
		if ext == e {
			return true, true
		}
	}
	for _, e := range imageExtensions {
		if ext == e {
			return false, true
		}
	}
	return false, false
}

// Upload writes an object, replacing any existing object at the path
func (s *Store) Upload(ctx context.Context, remotePath string, reader io.Reader, size int64, contentType string) error {
	client, err := s.clients.Handle(ctx)
	if err != nil {
		return err
	}

	_, err = client.PutObject(ctx, s.cfg.Bucket, remotePath, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return fmt.Errorf("%w: upload of %s failed: %v", ErrRemoteUnavailable, remotePath, err)
	}
	return nil
}

// Delete removes an object. An already-absent object is success, not an
// error: absence is the desired end state.
func (s *Store) Delete(ctx context.Context, remotePath string) error {
	client, err := s.clients.Handle(ctx)
	if err != nil {
		return err
	}

	err = client.RemoveObject(ctx, s.cfg.Bucket, remotePath, minio.RemoveObjectOptions{})
	if err != nil {
		if resp := minio.ToErrorResponse(err); resp.Code == "NoSuchKey" {
			return nil
		}
		return fmt.Errorf("%w: delete of %s failed: %v", ErrRemoteUnavailable, remotePath, err)
	}
	return nil
}

// PresignGet mints a short-lived, directly fetchable URL for an object
func (s *Store) PresignGet(ctx context.Context, remotePath string) (string, error) {
	client, err := s.clients.Handle(ctx)
	if err != nil {
		return "", err
	}

	link, err := client.PresignedGetObject(ctx, s.cfg.Bucket, remotePath, s.cfg.LinkLifetime, url.Values{})
	if err != nil {
		return "", fmt.Errorf("%w: presign of %s failed: %v", ErrRemoteUnavailable, remotePath, err)
	}
	return link.String(), nil
}
