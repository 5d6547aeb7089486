package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
)

const (
	CacheBackendMemory = "memory"
	CacheBackendRedis  = "redis"
	CacheBackendBadger = "badger"
	CacheBackendNone   = "none"
)

var ErrUnsupportedDatabaseURL = errors.New("unsupported database url")

type Config struct {
	DatabaseURL     string        `env:"DATABASE_URL" envDefault:"sqlite:///data/wavelength.db"`
	Port            string        `env:"PORT" envDefault:"8080"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
	SeedOnStart     bool          `env:"SEED_ON_START" envDefault:"true"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`

	CacheBackend       string        `env:"CACHE_BACKEND" envDefault:"memory"`
	CacheTTL           time.Duration `env:"CACHE_TTL" envDefault:"5m"`
	CacheMaxEntries    int           `env:"CACHE_MAX_ENTRIES" envDefault:"10000"`
	CacheSweepSchedule string        `env:"CACHE_SWEEP_SCHEDULE" envDefault:"@every 1m"`
	RedisURL           string        `env:"REDIS_URL" envDefault:"redis://localhost:6379/0"`
	BadgerPath         string        `env:"BADGER_PATH"`

	RateLimitRPS   float64 `env:"RATE_LIMIT_RPS" envDefault:"0"`
	RateLimitBurst int     `env:"RATE_LIMIT_BURST" envDefault:"20"`

	CORSAllowOrigins string `env:"CORS_ALLOW_ORIGINS" envDefault:"*"`
}

// Load reads the process environment.
func Load() (Config, error) {
	return load(env.Options{})
}

// LoadFrom reads configuration from the given variables only.
func LoadFrom(environment map[string]string) (Config, error) {
	return load(env.Options{Environment: environment})
}

func load(options env.Options) (Config, error) {
	cfg := Config{}
	if err := env.Parse(&cfg, options); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (cfg Config) Validate() error {
	if strings.TrimSpace(cfg.Port) == "" {
		return errors.New("PORT must not be empty")
	}
	switch cfg.CacheBackend {
	case CacheBackendMemory, CacheBackendRedis, CacheBackendBadger, CacheBackendNone:
	default:
		return fmt.Errorf("unsupported CACHE_BACKEND %q", cfg.CacheBackend)
	}
	if cfg.CacheTTL <= 0 {
		return errors.New("CACHE_TTL must be positive")
	}
	if cfg.CacheMaxEntries < 0 {
		return errors.New("CACHE_MAX_ENTRIES must not be negative")
	}
	if cfg.RateLimitRPS < 0 {
		return errors.New("RATE_LIMIT_RPS must not be negative")
	}
	if cfg.RateLimitRPS > 0 && cfg.RateLimitBurst < 1 {
		return errors.New("RATE_LIMIT_BURST must be at least 1 when rate limiting is enabled")
	}
	if _, err := cfg.SQLitePath(); err != nil {
		return err
	}
	return nil
}

// SQLitePath resolves DATABASE_URL into a filesystem path. SQLAlchemy style
// URLs are accepted: sqlite:///relative.db and sqlite:////absolute.db.
func (cfg Config) SQLitePath() (string, error) {
	raw := strings.TrimSpace(cfg.DatabaseURL)
	if raw == "" {
		return "", fmt.Errorf("%w: empty", ErrUnsupportedDatabaseURL)
	}

	if !strings.Contains(raw, "://") {
		return raw, nil
	}
	if !strings.HasPrefix(raw, "sqlite://") {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedDatabaseURL, raw)
	}

	path := strings.TrimPrefix(raw, "sqlite://")
	path = strings.TrimPrefix(path, "/")
	if path == "" {
		return ":memory:", nil
	}
	return path, nil
}

func (cfg Config) ListenAddress() string {
	return ":" + strings.TrimPrefix(strings.TrimSpace(cfg.Port), ":")
}
