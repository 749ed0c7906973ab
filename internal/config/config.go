// Package config provides configuration management using Viper.
// It loads configuration from environment variables, .env files, and config files.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	defaultServerPort         = 8080
	defaultServerHost         = "0.0.0.0"
	defaultReadTimeout        = 30 * time.Second
	defaultWriteTimeout       = 30 * time.Second
	defaultDatabasePath       = "./data/showreel.db"
	defaultMigrationsPath     = "file://./migrations"
	defaultLogLevel           = "info"
	defaultLogPretty          = false
	defaultRemoteUseSSL       = true
	defaultRemoteRootPrefix   = "slideshow/"
	defaultSessionLifetime    = 4 * time.Hour
	defaultSessionBuffer      = 5 * time.Minute
	defaultLinkLifetime       = 4 * time.Hour
	defaultLinkCacheTTL       = 3 * time.Hour
	envPrefix                 = "SHOWREEL"
)

// Config holds all application configuration
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Logging  LoggingConfig
	Remote   RemoteConfig
	Auth     AuthConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port         int
	Host         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// DatabaseConfig holds database connection configuration
type DatabaseConfig struct {
	Path           string
	MigrationsPath string
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string
	Pretty bool
}

// RemoteConfig holds object-store configuration.
// Endpoint and credentials are validated when a remote operation is attempted,
// not here, so the catalog remains usable without a configured store.
type RemoteConfig struct {
	Endpoint        string
	AccessKey       string
	SecretKey       string
	Bucket          string
	RootPrefix      string
	Region          string
	UseSSL          bool
	SessionLifetime time.Duration
	SessionBuffer   time.Duration
	LinkLifetime    time.Duration
	LinkCacheTTL    time.Duration
}

// AuthConfig holds the editor API token
type AuthConfig struct {
	EditorToken string
}

// Load reads configuration from .env file, config files, environment variables, and defaults
func Load() (*Config, error) {
	// .env files are optional in production and CI where env vars are set directly
	_ = godotenv.Load() // nolint:errcheck // .env file is optional

	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/showreel")

	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
		// Config file not found is OK, we'll use defaults and env vars
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults configures default values for all configuration options
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", defaultServerPort)
	v.SetDefault("server.host", defaultServerHost)
	v.SetDefault("server.readtimeout", defaultReadTimeout)
	v.SetDefault("server.writetimeout", defaultWriteTimeout)

	v.SetDefault("database.path", defaultDatabasePath)
	v.SetDefault("database.migrationspath", defaultMigrationsPath)

	v.SetDefault("logging.level", defaultLogLevel)
	v.SetDefault("logging.pretty", defaultLogPretty)

	// Empty-string defaults so AutomaticEnv can see keys no config file sets
	v.SetDefault("remote.endpoint", "")
	v.SetDefault("remote.accesskey", "")
	v.SetDefault("remote.secretkey", "")
	v.SetDefault("remote.bucket", "")
	v.SetDefault("remote.region", "")
	v.SetDefault("remote.rootprefix", defaultRemoteRootPrefix)
	v.SetDefault("remote.usessl", defaultRemoteUseSSL)
	v.SetDefault("remote.sessionlifetime", defaultSessionLifetime)
	v.SetDefault("remote.sessionbuffer", defaultSessionBuffer)
	v.SetDefault("remote.linklifetime", defaultLinkLifetime)
	v.SetDefault("remote.linkcachettl", defaultLinkCacheTTL)

	v.SetDefault("auth.editortoken", "")
}

// Validate checks that configuration values are valid
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d (must be between 1 and 65535)", c.Server.Port)
	}

	if c.Server.ReadTimeout <= 0 {
		return fmt.Errorf("invalid read timeout: %v (must be > 0)", c.Server.ReadTimeout)
	}
	if c.Server.WriteTimeout <= 0 {
		return fmt.Errorf("invalid write timeout: %v (must be > 0)", c.Server.WriteTimeout)
	}

	validLevels := []string{"debug", "info", "warn", "error"}
	if !contains(validLevels, c.Logging.Level) {
		return fmt.Errorf("invalid log level: %s (must be one of: %s)", c.Logging.Level, strings.Join(validLevels, ", "))
	}

	if c.Remote.SessionLifetime <= c.Remote.SessionBuffer {
		return fmt.Errorf("session lifetime %v must exceed refresh buffer %v", c.Remote.SessionLifetime, c.Remote.SessionBuffer)
	}
	if c.Remote.LinkCacheTTL > c.Remote.LinkLifetime {
		return fmt.Errorf("link cache TTL %v must not exceed link lifetime %v", c.Remote.LinkCacheTTL, c.Remote.LinkLifetime)
	}

	return nil
}

// contains checks if a string slice contains a specific value
func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
