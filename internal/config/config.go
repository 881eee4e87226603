// Package config provides application configuration management.
// It loads configuration from environment variables with support for .env files.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// Config holds all application configuration.
type Config struct {
	Server  ServerConfig
	Scraper ScraperConfig
	Cache   CacheConfig
	Workers WorkerConfig
	Logging LoggingConfig
	App     AppConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         int           `env:"SERVER_PORT" envDefault:"8080"`
	ReadTimeout  time.Duration `env:"SERVER_READ_TIMEOUT" envDefault:"10s"`
	WriteTimeout time.Duration `env:"SERVER_WRITE_TIMEOUT" envDefault:"10m"`
}

// ScraperConfig holds browser and extraction policy settings. The scroll
// and wait values are empirically tuned against the target site's current
// behavior; they are policy knobs, not algorithmic constants.
type ScraperConfig struct {
	// AutoHeadless runs automated searches headless; manual-mode sessions
	// always reopen visible.
	AutoHeadless bool `env:"SCRAPER_AUTO_HEADLESS" envDefault:"true"`

	// BlockResources aborts image/media/font requests during headless
	// automated runs.
	BlockResources bool `env:"SCRAPER_BLOCK_RESOURCES" envDefault:"true"`

	// ProfileDir is the persistent browser profile directory. Cookies and
	// login state survive across runs. Empty means an ephemeral profile.
	ProfileDir string `env:"SCRAPER_PROFILE_DIR" envDefault:"browser_profile"`

	PageLoadTimeout time.Duration `env:"SCRAPER_PAGE_LOAD_TIMEOUT" envDefault:"60s"`
	DataWaitTimeout time.Duration `env:"SCRAPER_DATA_WAIT_TIMEOUT" envDefault:"30s"`
	StabilizeDelay  time.Duration `env:"SCRAPER_STABILIZE_DELAY" envDefault:"1500ms"`

	ScrollPause             time.Duration `env:"SCRAPER_SCROLL_PAUSE" envDefault:"1s"`
	InternationalMaxScrolls int           `env:"SCRAPER_INTL_MAX_SCROLLS" envDefault:"20"`

	DomesticMaxScrolls        int           `env:"SCRAPER_DOMESTIC_MAX_SCROLLS" envDefault:"300"`
	DomesticScrollPause       time.Duration `env:"SCRAPER_DOMESTIC_SCROLL_PAUSE" envDefault:"300ms"`
	DomesticBottomPause       time.Duration `env:"SCRAPER_DOMESTIC_BOTTOM_PAUSE" envDefault:"500ms"`
	DomesticReturnWaitTimeout time.Duration `env:"SCRAPER_DOMESTIC_RETURN_WAIT" envDefault:"15s"`
	DomesticReturnSettle      time.Duration `env:"SCRAPER_DOMESTIC_RETURN_SETTLE" envDefault:"500ms"`

	// CombinationTopN truncates outbound and inbound lists to their
	// cheapest N before pairing, bounding the round-trip cross-product.
	CombinationTopN int `env:"SCRAPER_COMBINATION_TOP_N" envDefault:"150"`

	NavigationRetries    int           `env:"SCRAPER_NAV_RETRIES" envDefault:"3"`
	NavigationRetryDelay time.Duration `env:"SCRAPER_NAV_RETRY_DELAY" envDefault:"2s"`
}

// CacheConfig holds result cache settings.
type CacheConfig struct {
	Enabled    bool          `env:"CACHE_ENABLED" envDefault:"true"`
	TTL        time.Duration `env:"CACHE_TTL" envDefault:"180s"`
	MaxEntries int           `env:"CACHE_MAX_ENTRIES" envDefault:"64"`
}

// WorkerConfig holds parallel search settings.
type WorkerConfig struct {
	// Concurrency bounds how many browser sessions run at once.
	Concurrency int `env:"WORKER_CONCURRENCY" envDefault:"2"`

	// MaxDates caps how many departure dates one date-range run searches.
	MaxDates int `env:"WORKER_MAX_DATES" envDefault:"30"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"`
}

// AppConfig holds general application settings.
type AppConfig struct {
	Env string `env:"APP_ENV" envDefault:"development"`
}

// Load reads configuration from environment variables.
// It attempts to load a .env file first (optional - won't fail if missing).
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found, using environment variables")
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

// MustLoad loads configuration or panics on error.
// Use this in main() where configuration is required to start.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}
	return cfg
}

// validate checks configuration values for correctness.
func validate(cfg *Config) error {
	if cfg.Server.Port < 1 || cfg.Server.Port > 65535 {
		return fmt.Errorf("SERVER_PORT must be between 1 and 65535, got %d", cfg.Server.Port)
	}
	if cfg.Server.ReadTimeout <= 0 {
		return fmt.Errorf("SERVER_READ_TIMEOUT must be positive")
	}
	if cfg.Server.WriteTimeout <= 0 {
		return fmt.Errorf("SERVER_WRITE_TIMEOUT must be positive")
	}

	if cfg.Scraper.PageLoadTimeout <= 0 {
		return fmt.Errorf("SCRAPER_PAGE_LOAD_TIMEOUT must be positive")
	}
	if cfg.Scraper.DataWaitTimeout <= 0 {
		return fmt.Errorf("SCRAPER_DATA_WAIT_TIMEOUT must be positive")
	}
	if cfg.Scraper.InternationalMaxScrolls < 1 {
		return fmt.Errorf("SCRAPER_INTL_MAX_SCROLLS must be at least 1")
	}
	if cfg.Scraper.DomesticMaxScrolls < 1 {
		return fmt.Errorf("SCRAPER_DOMESTIC_MAX_SCROLLS must be at least 1")
	}
	if cfg.Scraper.CombinationTopN < 1 {
		return fmt.Errorf("SCRAPER_COMBINATION_TOP_N must be at least 1")
	}
	if cfg.Scraper.NavigationRetries < 1 {
		return fmt.Errorf("SCRAPER_NAV_RETRIES must be at least 1")
	}

	if cfg.Cache.TTL <= 0 {
		return fmt.Errorf("CACHE_TTL must be positive")
	}
	if cfg.Cache.MaxEntries < 1 {
		return fmt.Errorf("CACHE_MAX_ENTRIES must be at least 1")
	}

	if cfg.Workers.Concurrency < 1 {
		return fmt.Errorf("WORKER_CONCURRENCY must be at least 1")
	}
	if cfg.Workers.MaxDates < 1 {
		return fmt.Errorf("WORKER_MAX_DATES must be at least 1")
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[cfg.Logging.Level] {
		return fmt.Errorf("LOG_LEVEL must be one of: debug, info, warn, error; got %q", cfg.Logging.Level)
	}
	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[cfg.Logging.Format] {
		return fmt.Errorf("LOG_FORMAT must be one of: json, console; got %q", cfg.Logging.Format)
	}
	validEnvs := map[string]bool{"development": true, "staging": true, "production": true}
	if !validEnvs[cfg.App.Env] {
		return fmt.Errorf("APP_ENV must be one of: development, staging, production; got %q", cfg.App.Env)
	}

	return nil
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.App.Env == "development"
}

// IsProduction returns true if running in production mode.
func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}
