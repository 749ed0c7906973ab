package ttlcache

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock is a manually advanced clock for expiry tests
type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time          { return c.now }
func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)}
}

func TestGet_MissOnEmptyCache(t *testing.T) {
	cache := New[string, string](time.Hour, nil)

	_, ok := cache.Get("k")
	assert.False(t, ok)
}

func TestSetAndGet(t *testing.T) {
	clock := newFakeClock()
	cache := New[string, int](time.Hour, clock.Now)

	cache.Set("k", 42)

	v, ok := cache.Get("k")
	require.True(t, ok)
	assert.Equal(t, 42, v)
}

func TestGet_ExpiresAfterTTL(t *testing.T) {
	clock := newFakeClock()
	cache := New[string, int](time.Hour, clock.Now)

	cache.Set("k", 42)

	clock.Advance(59 * time.Minute)
	_, ok := cache.Get("k")
	assert.True(t, ok)

	clock.Advance(2 * time.Minute)
	_, ok = cache.Get("k")
	assert.False(t, ok)
}

func TestSet_RefreshesTTL(t *testing.T) {
	clock := newFakeClock()
	cache := New[string, int](time.Hour, clock.Now)

	cache.Set("k", 1)
	clock.Advance(50 * time.Minute)
	cache.Set("k", 2)
	clock.Advance(50 * time.Minute)

	v, ok := cache.Get("k")
	require.True(t, ok)
	assert.Equal(t, 2, v)
}

func TestInvalidate(t *testing.T) {
	cache := New[string, int](time.Hour, nil)

	cache.Set("k", 42)
	cache.Invalidate("k")

	_, ok := cache.Get("k")
	assert.False(t, ok)
}

func TestGetOrPopulate(t *testing.T) {
	clock := newFakeClock()
	cache := New[string, int](time.Hour, clock.Now)

	calls := 0
	populate := func() (int, error) {
		calls++
		return 7, nil
	}

	v, err := cache.GetOrPopulate("k", populate)
	require.NoError(t, err)
	assert.Equal(t, 7, v)
	assert.Equal(t, 1, calls)

	// Cached: populate not called again
	v, err = cache.GetOrPopulate("k", populate)
	require.NoError(t, err)
	assert.Equal(t, 7, v)
	assert.Equal(t, 1, calls)

	// Expired: populate runs again
	clock.Advance(2 * time.Hour)
	_, err = cache.GetOrPopulate("k", populate)
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestGetOrPopulate_ErrorNotCached(t *testing.T) {
	cache := New[string, int](time.Hour, nil)

	wantErr := errors.New("boom")
	_, err := cache.GetOrPopulate("k", func() (int, error) { return 0, wantErr })
	assert.ErrorIs(t, err, wantErr)

	_, ok := cache.Get("k")
	assert.False(t, ok)
}
