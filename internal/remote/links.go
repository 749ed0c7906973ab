package remote

import (
	"context"
	"time"

	"showreel/internal/logger"
	"showreel/internal/ttlcache"
)

// LinkMinter mints a fresh temporary URL for a remote path
type LinkMinter func(ctx context.Context, remotePath string) (string, error)

// LinkCache caches temporary links per remote path for less than the
// provider's link validity, so a served link never expires mid-use. Writes
// that replace or remove the underlying object must call Invalidate, or the
// cache will keep serving a URL to the old bytes.
type LinkCache struct {
	cache *ttlcache.Cache[string, string]
	mint  LinkMinter
}

// NewLinkCache creates a link cache backed by the store's presigner
func NewLinkCache(store *Store, ttl time.Duration, clock func() time.Time) *LinkCache {
	return NewLinkCacheWithMinter(store.PresignGet, ttl, clock)
}

// NewLinkCacheWithMinter creates a link cache over an arbitrary minter
func NewLinkCacheWithMinter(mint LinkMinter, ttl time.Duration, clock func() time.Time) *LinkCache {
	return &LinkCache{
		cache: ttlcache.New[string, string](ttl, clock),
		mint:  mint,
	}
}

// GetLink returns a cached temporary link for the path, minting and caching a
// fresh one when absent or expired
func (l *LinkCache) GetLink(ctx context.Context, remotePath string) (string, error) {
	return l.cache.GetOrPopulate(remotePath, func() (string, error) {
		link, err := l.mint(ctx, remotePath)
		if err != nil {
			return "", err
		}

		logger.With("remote").Debug().
			Str("path", remotePath).
			Msg("Minted temporary link")

		return link, nil
	})
}

// Invalidate evicts the cached link for a path. Required after any write that
// replaces or removes the underlying object.
func (l *LinkCache) Invalidate(remotePath string) {
	l.cache.Invalidate(remotePath)
}
