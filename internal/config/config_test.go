package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:         8080,
			Host:         "0.0.0.0",
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		Database: DatabaseConfig{
			Path:           "./data/showreel.db",
			MigrationsPath: "file://./migrations",
		},
		Logging: LoggingConfig{Level: "info"},
		Remote: RemoteConfig{
			SessionLifetime: 4 * time.Hour,
			SessionBuffer:   5 * time.Minute,
			LinkLifetime:    4 * time.Hour,
			LinkCacheTTL:    3 * time.Hour,
		},
	}
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, "./data/showreel.db", cfg.Database.Path)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "slideshow/", cfg.Remote.RootPrefix)
	assert.True(t, cfg.Remote.UseSSL)
	assert.Equal(t, 4*time.Hour, cfg.Remote.SessionLifetime)
	assert.Equal(t, 5*time.Minute, cfg.Remote.SessionBuffer)
	assert.Equal(t, 4*time.Hour, cfg.Remote.LinkLifetime)
	assert.Equal(t, 3*time.Hour, cfg.Remote.LinkCacheTTL)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("SHOWREEL_SERVER_PORT", "9090")
	t.Setenv("SHOWREEL_REMOTE_ENDPOINT", "store.example:9000")
	t.Setenv("SHOWREEL_LOGGING_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "store.example:9000", cfg.Remote.Endpoint)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoad_EnvCredentialsAndToken(t *testing.T) {
	t.Setenv("SHOWREEL_REMOTE_ENDPOINT", "store.example:9000")
	t.Setenv("SHOWREEL_REMOTE_ACCESSKEY", "access")
	t.Setenv("SHOWREEL_REMOTE_SECRETKEY", "secret")
	t.Setenv("SHOWREEL_REMOTE_BUCKET", "slideshow")
	t.Setenv("SHOWREEL_REMOTE_REGION", "us-east-1")
	t.Setenv("SHOWREEL_AUTH_EDITORTOKEN", "editor-token")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "store.example:9000", cfg.Remote.Endpoint)
	assert.Equal(t, "access", cfg.Remote.AccessKey)
	assert.Equal(t, "secret", cfg.Remote.SecretKey)
	assert.Equal(t, "slideshow", cfg.Remote.Bucket)
	assert.Equal(t, "us-east-1", cfg.Remote.Region)
	assert.Equal(t, "editor-token", cfg.Auth.EditorToken)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(c *Config) {}, false},
		{"zero port", func(c *Config) { c.Server.Port = 0 }, true},
		{"port too high", func(c *Config) { c.Server.Port = 70000 }, true},
		{"zero read timeout", func(c *Config) { c.Server.ReadTimeout = 0 }, true},
		{"zero write timeout", func(c *Config) { c.Server.WriteTimeout = 0 }, true},
		{"bad log level", func(c *Config) { c.Logging.Level = "verbose" }, true},
		{"buffer exceeds session", func(c *Config) {
			c.Remote.SessionBuffer = 5 * time.Hour
		}, true},
		{"cache TTL exceeds link lifetime", func(c *Config) {
			c.Remote.LinkCacheTTL = 5 * time.Hour
		}, true},
		{"cache TTL equal to link lifetime", func(c *Config) {
			c.Remote.LinkCacheTTL = 4 * time.Hour
		}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
