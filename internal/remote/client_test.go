package remote

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"showreel/internal/config"
)

func remoteConfig() config.RemoteConfig {
	return config.RemoteConfig{
		Endpoint:        "store.example:9000",
		AccessKey:       "access",
		SecretKey:       "secret",
		Bucket:          "slideshow",
		RootPrefix:      "slideshow/",
		UseSSL:          true,
		SessionLifetime: 4 * time.Hour,
		SessionBuffer:   5 * time.Minute,
		LinkLifetime:    4 * time.Hour,
		LinkCacheTTL:    3 * time.Hour,
	}
}

func TestHandle_MissingCredentialsFailFast(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.RemoteConfig)
	}{
		{"no endpoint", func(c *config.RemoteConfig) { c.Endpoint = "" }},
		{"no access key", func(c *config.RemoteConfig) { c.AccessKey = "" }},
		{"no secret key", func(c *config.RemoteConfig) { c.SecretKey = "" }},
		{"no bucket", func(c *config.RemoteConfig) { c.Bucket = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := remoteConfig()
			tt.mutate(&cfg)

			cache := NewClientCache(cfg, nil)
			_, err := cache.Handle(context.Background())
			assert.True(t, IsMissingCredentials(err))
		})
	}
}

func TestHandle_ReusesClientWithinSession(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }

	cache := NewClientCache(remoteConfig(), clock)

	first, err := cache.Handle(context.Background())
	assert.NoError(t, err)

	// Well inside the session window: same handle back
	now = now.Add(time.Hour)
	second, err := cache.Handle(context.Background())
	assert.NoError(t, err)
	assert.Same(t, first, second)
}

func TestHandle_RemintsInsideRefreshBuffer(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }

	cache := NewClientCache(remoteConfig(), clock)

	first, err := cache.Handle(context.Background())
	assert.NoError(t, err)

	// 4h session minus 5m buffer: 3h56m in, the handle must be re-minted
	now = now.Add(3*time.Hour + 56*time.Minute)
	second, err := cache.Handle(context.Background())
	assert.NoError(t, err)
	assert.NotSame(t, first, second)
}
