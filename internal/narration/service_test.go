package narration

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"showreel/internal/catalog"
	"showreel/internal/db"
	"showreel/internal/models"
	"showreel/internal/remote"
)

// fakeStore records objects written and deleted
type fakeStore struct {
	objects   map[string][]byte
	uploadErr error
	deleteErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{objects: map[string][]byte{}}
}

func (s *fakeStore) Upload(ctx context.Context, remotePath string, reader io.Reader, size int64, contentType string) error {
	if s.uploadErr != nil {
		return s.uploadErr
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return err
	}
	s.objects[remotePath] = data
	return nil
}

func (s *fakeStore) Delete(ctx context.Context, remotePath string) error {
	if s.deleteErr != nil {
		return s.deleteErr
	}
	delete(s.objects, remotePath)
	return nil
}

// fakeInvalidator records which paths were evicted
type fakeInvalidator struct {
	evicted []string
}

func (f *fakeInvalidator) Invalidate(remotePath string) {
	f.evicted = append(f.evicted, remotePath)
}

type fakeTranscriber struct {
	text string
	err  error
}

func (f *fakeTranscriber) Transcribe(ctx context.Context, audio []byte) (string, error) {
	return f.text, f.err
}

type fixture struct {
	service *Service
	catalog *catalog.Service
	store   *fakeStore
	links   *fakeInvalidator
	entry   *models.Entry
}

func setupFixture(t *testing.T, transcriber Transcriber) *fixture {
	t.Helper()

	tmpFile := filepath.Join(t.TempDir(), "test.db")
	database, err := db.New(tmpFile)
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })

	sqlDB, err := database.GetSQLDB()
	require.NoError(t, err)
	require.NoError(t, db.RunMigrations(sqlDB, "file://../../migrations"))

	repos := db.NewRepositories(database)
	catalogSvc := catalog.NewService(repos)

	entry := models.NewEntry("slideshow/a.jpg")
	require.NoError(t, repos.Entries.Create(context.Background(), entry))

	store := newFakeStore()
	links := &fakeInvalidator{}

	return &fixture{
		service: NewService(catalogSvc, store, links, transcriber),
		catalog: catalogSvc,
		store:   store,
		links:   links,
		entry:   entry,
	}
}

func TestUpload_StoresAudioAndFlagsEntry(t *testing.T) {
	f := setupFixture(t, nil)
	ctx := context.Background()

	updated, err := f.service.Upload(ctx, f.entry.ID, []byte("audio-bytes"))
	require.NoError(t, err)

	narrationPath := remote.NarrationPath("slideshow/a.jpg")
	assert.Equal(t, []byte("audio-bytes"), f.store.objects[narrationPath])
	assert.True(t, updated.HasNarration)
	assert.Nil(t, updated.Transcript)
	assert.Equal(t, []string{narrationPath}, f.links.evicted)
}

func TestUpload_TranscribesWhenWired(t *testing.T) {
	f := setupFixture(t, &fakeTranscriber{text: "spoken words"})
	ctx := context.Background()

	updated, err := f.service.Upload(ctx, f.entry.ID, []byte("audio-bytes"))
	require.NoError(t, err)

	require.NotNil(t, updated.Transcript)
	assert.Equal(t, "spoken words", *updated.Transcript)
}

func TestUpload_TranscriptionFailureKeepsOldTranscript(t *testing.T) {
	f := setupFixture(t, &fakeTranscriber{err: errors.New("model unavailable")})
	ctx := context.Background()

	old := "earlier words"
	_, err := f.catalog.Update(ctx, f.entry.ID, models.EntryPatch{Transcript: models.Set(old)})
	require.NoError(t, err)

	updated, err := f.service.Upload(ctx, f.entry.ID, []byte("audio-bytes"))
	require.NoError(t, err)

	assert.True(t, updated.HasNarration)
	require.NotNil(t, updated.Transcript)
	assert.Equal(t, old, *updated.Transcript)
}

func TestUpload_StoreFailureLeavesEntryUntouched(t *testing.T) {
	f := setupFixture(t, nil)
	f.store.uploadErr = errors.New("connection reset")
	ctx := context.Background()

	_, err := f.service.Upload(ctx, f.entry.ID, []byte("audio-bytes"))
	require.Error(t, err)

	entry, err := f.catalog.Get(ctx, f.entry.ID)
	require.NoError(t, err)
	assert.False(t, entry.HasNarration)
	assert.Empty(t, f.links.evicted)
}

func TestUpload_UnknownEntry(t *testing.T) {
	f := setupFixture(t, nil)

	_, err := f.service.Upload(context.Background(), uuid.New(), []byte("audio-bytes"))
	assert.True(t, catalog.IsEntryNotFound(err))
}

func TestDelete_ClearsFlagAndTranscript(t *testing.T) {
	f := setupFixture(t, &fakeTranscriber{text: "spoken words"})
	ctx := context.Background()

	_, err := f.service.Upload(ctx, f.entry.ID, []byte("audio-bytes"))
	require.NoError(t, err)

	updated, err := f.service.Delete(ctx, f.entry.ID)
	require.NoError(t, err)

	narrationPath := remote.NarrationPath("slideshow/a.jpg")
	_, exists := f.store.objects[narrationPath]
	assert.False(t, exists)
	assert.False(t, updated.HasNarration)
	assert.Nil(t, updated.Transcript)

	// Evicted on upload and again on delete
	assert.Equal(t, []string{narrationPath, narrationPath}, f.links.evicted)
}

func TestDelete_AbsentObjectIsSuccess(t *testing.T) {
	f := setupFixture(t, nil)

	updated, err := f.service.Delete(context.Background(), f.entry.ID)
	require.NoError(t, err)
	assert.False(t, updated.HasNarration)
}
