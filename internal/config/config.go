package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/neexbeast/countries-api/internal/upstream"
)

// Config holds application configuration.
type Config struct {
	Port               string
	UpstreamURL        string
	UpstreamTimeout    time.Duration
	RedisURL           string
	APIToken           string
	RateLimitPerMinute int
	LogLevel           slog.Level
	ShutdownTimeout    time.Duration
}

// Load reads configuration from environment variables. Values from the given
// .env files (default ".env") are applied first; missing files are ignored and
// real environment variables always win.
func Load(envFiles ...string) (*Config, error) {
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("loading env file: %w", err)
	}

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("PORT", "8080")
	v.SetDefault("UPSTREAM_URL", upstream.DefaultURL)
	v.SetDefault("UPSTREAM_TIMEOUT", upstream.DefaultTimeout)
	v.SetDefault("RATE_LIMIT_PER_MINUTE", 60)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("SHUTDOWN_TIMEOUT", 30*time.Second)

	cfg := &Config{
		Port:               v.GetString("PORT"),
		UpstreamURL:        v.GetString("UPSTREAM_URL"),
		UpstreamTimeout:    v.GetDuration("UPSTREAM_TIMEOUT"),
		RedisURL:           v.GetString("REDIS_URL"),
		APIToken:           v.GetString("API_TOKEN"),
		RateLimitPerMinute: v.GetInt("RATE_LIMIT_PER_MINUTE"),
		LogLevel:           LevelFromString(v.GetString("LOG_LEVEL")),
		ShutdownTimeout:    v.GetDuration("SHUTDOWN_TIMEOUT"),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	u, err := url.Parse(c.UpstreamURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("UPSTREAM_URL must be an absolute http(s) URL, got %q", c.UpstreamURL)
	}
	if c.UpstreamTimeout <= 0 {
		return errors.New("UPSTREAM_TIMEOUT must be positive")
	}
	if c.RateLimitPerMinute <= 0 {
		return fmt.Errorf("RATE_LIMIT_PER_MINUTE must be positive, got %d", c.RateLimitPerMinute)
	}
	if c.ShutdownTimeout <= 0 {
		return errors.New("SHUTDOWN_TIMEOUT must be positive")
	}
	return nil
}

// LevelFromString converts a level name to a slog.Level.
// Unrecognized names map to Info.
func LevelFromString(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
