package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/Nahom-cyber-coder/Web-based-operating-system/backend/internal/shared/paths"
)

// DefaultEnvFile is read by Load when present
const DefaultEnvFile = ".env"

// Config holds all application configuration.
type Config struct {
	Server      ServerConfig
	Logging     LogConfig
	RateLimit   RateLimitConfig
	Storage     StorageConfig
	Persistence PersistenceConfig
	Desktop     DesktopConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port            string        `envconfig:"PORT" default:"8000"`
	Host            string        `envconfig:"HOST" default:"0.0.0.0"`
	AllowedOrigins  []string      `envconfig:"CORS_ORIGINS" default:"http://localhost:3000,http://localhost:5173"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL" default:"info"`
	Development bool   `envconfig:"LOG_DEV" default:"false"`
}

// RateLimitConfig holds rate limiting configuration.
type RateLimitConfig struct {
	RequestsPerSecond int  `envconfig:"RATE_LIMIT_RPS" default:"100"`
	Burst             int  `envconfig:"RATE_LIMIT_BURST" default:"200"`
	Enabled           bool `envconfig:"RATE_LIMIT_ENABLED" default:"true"`
}

// StorageConfig selects the key-value backend.
type StorageConfig struct {
	Driver   string `envconfig:"STORAGE_DRIVER" default:"memory"`
	Path     string `envconfig:"STORAGE_PATH" default:"data/webdesk.db"`
	Quota    int64  `envconfig:"STORAGE_QUOTA" default:"5242880"`
	Compress bool   `envconfig:"STORAGE_COMPRESS" default:"false"`
}

// PersistenceConfig holds write timing.
type PersistenceConfig struct {
	Debounce    time.Duration `envconfig:"PERSIST_DEBOUNCE" default:"1s"`
	AppDebounce time.Duration `envconfig:"PERSIST_APP_DEBOUNCE" default:"0s"`
}

// DesktopConfig holds desktop defaults.
type DesktopConfig struct {
	ViewportWidth  int    `envconfig:"VIEWPORT_WIDTH" default:"1920"`
	ViewportHeight int    `envconfig:"VIEWPORT_HEIGHT" default:"1080"`
	TaskbarHeight  int    `envconfig:"TASKBAR_HEIGHT" default:"48"`
	DefaultProfile string `envconfig:"DEFAULT_PROFILE" default:"user"`
	CatalogDir     string `envconfig:"CATALOG_DIR"`
}

// Load loads configuration from environment variables, after reading
// DefaultEnvFile if it exists. Variables already set win over the file.
func Load() (*Config, error) {
	if err := godotenv.Load(DefaultEnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to read %s: %w", DefaultEnvFile, err)
	}
	return process()
}

// LoadFile is Load with an explicit env file, which must exist.
func LoadFile(path string) (*Config, error) {
	if err := godotenv.Load(path); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return process()
}

// LoadOrDefault loads configuration from environment or returns default.
func LoadOrDefault() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

func process() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects values no component can run with.
func (c *Config) Validate() error {
	switch {
	case c.Desktop.ViewportWidth <= 0 || c.Desktop.ViewportHeight <= 0:
		return fmt.Errorf("invalid viewport %dx%d", c.Desktop.ViewportWidth, c.Desktop.ViewportHeight)
	case c.Desktop.TaskbarHeight < 0:
		return fmt.Errorf("invalid taskbar height %d", c.Desktop.TaskbarHeight)
	case c.Storage.Quota < 0:
		return fmt.Errorf("invalid storage quota %d", c.Storage.Quota)
	case c.Persistence.Debounce < 0 || c.Persistence.AppDebounce < 0:
		return errors.New("persistence debounce must not be negative")
	case c.RateLimit.Enabled && (c.RateLimit.RequestsPerSecond <= 0 || c.RateLimit.Burst <= 0):
		return errors.New("rate limit needs positive rps and burst")
	}
	return nil
}

// Addr returns the listen address.
func (s ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, s.Port)
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            "8000",
			Host:            "0.0.0.0",
			AllowedOrigins:  []string{"http://localhost:3000", "http://localhost:5173"},
			ShutdownTimeout: 10 * time.Second,
		},
		Logging: LogConfig{
			Level:       "info",
			Development: false,
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: 100,
			Burst:             200,
			Enabled:           true,
		},
		Storage: StorageConfig{
			Driver: "memory",
			Path:   paths.DefaultDB,
			Quota:  5 * 1024 * 1024,
		},
		Persistence: PersistenceConfig{
			Debounce: time.Second,
		},
		Desktop: DesktopConfig{
			ViewportWidth:  1920,
			ViewportHeight: 1080,
			TaskbarHeight:  48,
			DefaultProfile: "user",
		},
	}
}
