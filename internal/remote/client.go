// Package remote talks to the S3-compatible object store that holds the
// slideshow media: session-credential lifecycle, listing and classification,
// uploads, deletes, and presigned temporary links.
package remote

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"showreel/internal/config"
	"showreel/internal/logger"
)

// ClientCache hands out a ready-to-use object-store client backed by expiring
// STS session credentials. One client is cached and re-minted shortly before
// its session expires. Two concurrent callers that both miss may both mint; the
// spare mint is harmless and the last one wins.
type ClientCache struct {
	cfg config.RemoteConfig
	now func() time.Time

	mu        sync.Mutex
	client    *minio.Client
	expiresAt time.Time
}

// NewClientCache creates a credential cache for the given remote config. A nil
// clock defaults to time.Now.
func NewClientCache(cfg config.RemoteConfig, clock func() time.Time) *ClientCache {
	if clock == nil {
		clock = time.Now
	}
	return &ClientCache{cfg: cfg, now: clock}
}

// Handle returns an authorized client, minting a new one when the cached
// session is within the refresh buffer of its expiry.
func (c *ClientCache) Handle(ctx context.Context) (*minio.Client, error) {
	c.mu.Lock()
	if c.client != nil && c.now().Before(c.expiresAt.Add(-c.cfg.SessionBuffer)) {
		client := c.client
		c.mu.Unlock()
		return client, nil
	}
	c.mu.Unlock()

	// Credentials are validated at call time, not startup, so the catalog
	// stays readable without a configured store.
	if c.cfg.Endpoint == "" || c.cfg.AccessKey == "" || c.cfg.SecretKey == "" || c.cfg.Bucket == "" {
		return nil, ErrMissingCredentials
	}

	client, err := c.mint()
	if err != nil {
		return nil, fmt.Errorf("%w: minting client failed: %v", ErrRemoteUnavailable, err)
	}

	expiresAt := c.now().Add(c.cfg.SessionLifetime)

	c.mu.Lock()
	c.client = client
	c.expiresAt = expiresAt
	c.mu.Unlock()

	logger.With("remote").Debug().
		Time("expires_at", expiresAt).
		Msg("Minted object-store client")

	return client, nil
}

// mint builds a client on fresh STS session credentials
func (c *ClientCache) mint() (*minio.Client, error) {
	scheme := "http"
	if c.cfg.UseSSL {
		scheme = "https"
	}
	stsEndpoint := fmt.Sprintf("%s://%s", scheme, c.cfg.Endpoint)

	creds, err := credentials.NewSTSAssumeRole(stsEndpoint, credentials.STSAssumeRoleOptions{
		AccessKey:       c.cfg.AccessKey,
		SecretKey:       c.cfg.SecretKey,
		Location:        c.cfg.Region,
		DurationSeconds: int(c.cfg.SessionLifetime.Seconds()),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create session credentials: %w", err)
	}

	client, err := minio.New(c.cfg.Endpoint, &minio.Options{
		Creds:  creds,
		Secure: c.cfg.UseSSL,
		Region: c.cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create object-store client: %w", err)
	}

	return client, nil
}
