package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/eugenenazirov/knapsack-solver/internal/solver"
)

const (
	defaultPort           = "8080"
	defaultRateLimitRPS   = 25.0
	defaultRateLimitBurst = 50
)

// Config aggregates runtime configuration resolved from multiple sources.
// Precedence: CLI flags > config file > Environment variables > Defaults
type Config struct {
	Port                 string
	Bounds               solver.Bounds
	HistoryPath          string
	ShutdownGracePeriod  time.Duration
	ReadHeaderTimeout    time.Duration
	WriteTimeout         time.Duration
	IdleTimeout          time.Duration
	EnableRequestLogging bool
	RateLimitRPS         float64
	RateLimitBurst       int
}

// fileConfig represents the configuration file structure, shared between the
// YAML and TOML decoders. Durations are strings so both formats accept the
// usual "10s" notation.
type fileConfig struct {
	Port                 string        `yaml:"port" toml:"port"`
	MaxItems             int           `yaml:"max_items" toml:"max_items"`
	MaxCapacity          int           `yaml:"max_capacity" toml:"max_capacity"`
	HistoryPath          string        `yaml:"history_path" toml:"history_path"`
	ShutdownGracePeriod  string        `yaml:"shutdown_grace_period" toml:"shutdown_grace_period"`
	ReadHeaderTimeout    string        `yaml:"read_header_timeout" toml:"read_header_timeout"`
	WriteTimeout         string        `yaml:"write_timeout" toml:"write_timeout"`
	IdleTimeout          string        `yaml:"idle_timeout" toml:"idle_timeout"`
	EnableRequestLogging bool          `yaml:"enable_request_logging" toml:"enable_request_logging"`
	RateLimit            fileRateLimit `yaml:"rate_limit" toml:"rate_limit"`
}

// fileRateLimit represents the rate limit section of the configuration file.
type fileRateLimit struct {
	RPS   float64 `yaml:"rps" toml:"rps"`
	Burst int     `yaml:"burst" toml:"burst"`
}

// CLIOverrides holds command-line flag overrides.
type CLIOverrides struct {
	ConfigFile     string
	Port           *string
	MaxItems       *int
	MaxCapacity    *int
	HistoryPath    *string
	RateLimitRPS   *float64
	RateLimitBurst *int
}

// Load extracts configuration from multiple sources with precedence:
// CLI flags > config file > Environment variables > Defaults
func Load(overrides *CLIOverrides) (Config, error) {
	cfg := defaultConfig()

	// Load from the config file if specified
	if overrides != nil && overrides.ConfigFile != "" {
		fileCfg, err := loadFromFile(overrides.ConfigFile)
		if err != nil {
			return Config{}, fmt.Errorf("load config file: %w", err)
		}
		applyFileConfig(&cfg, fileCfg)
	}

	// Apply environment variables (override file values)
	applyEnvConfig(&cfg)

	// Apply CLI overrides (highest precedence)
	if overrides != nil {
		applyCLIOverrides(&cfg, overrides)
	}

	// Validate final configuration
	if err := validateConfig(cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// defaultConfig returns a Config with default values.
func defaultConfig() Config {
	return Config{
		Port:                 defaultPort,
		Bounds:               solver.DefaultBounds(),
		ShutdownGracePeriod:  10 * time.Second,
		ReadHeaderTimeout:    5 * time.Second,
		WriteTimeout:         15 * time.Second,
		IdleTimeout:          60 * time.Second,
		EnableRequestLogging: true,
		RateLimitRPS:         defaultRateLimitRPS,
		RateLimitBurst:       defaultRateLimitBurst,
	}
}

// loadFromFile loads configuration from a YAML or TOML file, chosen by
// extension.
func loadFromFile(path string) (*fileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	var fileCfg fileConfig
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &fileCfg); err != nil {
			return nil, fmt.Errorf("parse YAML: %w", err)
		}
	case ".toml":
		if err := toml.Unmarshal(data, &fileCfg); err != nil {
			return nil, fmt.Errorf("parse TOML: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported config format %q", ext)
	}

	return &fileCfg, nil
}

// applyFileConfig applies file configuration to the Config struct.
func applyFileConfig(cfg *Config, fileCfg *fileConfig) {
	if fileCfg.Port != "" {
		cfg.Port = fileCfg.Port
	}

	if fileCfg.MaxItems > 0 {
		cfg.Bounds.MaxItems = fileCfg.MaxItems
	}

	if fileCfg.MaxCapacity > 0 {
		cfg.Bounds.MaxCapacity = fileCfg.MaxCapacity
	}

	if fileCfg.HistoryPath != "" {
		cfg.HistoryPath = fileCfg.HistoryPath
	}

	if fileCfg.ShutdownGracePeriod != "" {
		if d, err := time.ParseDuration(fileCfg.ShutdownGracePeriod); err == nil {
			cfg.ShutdownGracePeriod = d
		}
	}

	if fileCfg.ReadHeaderTimeout != "" {
		if d, err := time.ParseDuration(fileCfg.ReadHeaderTimeout); err == nil {
			cfg.ReadHeaderTimeout = d
		}
	}

	if fileCfg.WriteTimeout != "" {
		if d, err := time.ParseDuration(fileCfg.WriteTimeout); err == nil {
			cfg.WriteTimeout = d
		}
	}

	if fileCfg.IdleTimeout != "" {
		if d, err := time.ParseDuration(fileCfg.IdleTimeout); err == nil {
			cfg.IdleTimeout = d
		}
	}

	cfg.EnableRequestLogging = fileCfg.EnableRequestLogging

	if fileCfg.RateLimit.RPS >= 0 {
		cfg.RateLimitRPS = fileCfg.RateLimit.RPS
	}

	if fileCfg.RateLimit.Burst >= 0 {
		cfg.RateLimitBurst = fileCfg.RateLimit.Burst
	}
}

// applyEnvConfig applies environment variable configuration.
func applyEnvConfig(cfg *Config) {
	if port := strings.TrimSpace(os.Getenv("PORT")); port != "" {
		cfg.Port = port
	}

	if raw := strings.TrimSpace(os.Getenv("MAX_ITEMS")); raw != "" {
		if value, err := strconv.Atoi(raw); err == nil && value > 0 {
			cfg.Bounds.MaxItems = value
		}
	}

	if raw := strings.TrimSpace(os.Getenv("MAX_CAPACITY")); raw != "" {
		if value, err := strconv.Atoi(raw); err == nil && value > 0 {
			cfg.Bounds.MaxCapacity = value
		}
	}

	if path := strings.TrimSpace(os.Getenv("HISTORY_PATH")); path != "" {
		cfg.HistoryPath = path
	}

	if rps := strings.TrimSpace(os.Getenv("RATE_LIMIT_RPS")); rps != "" {
		if value, err := strconv.ParseFloat(rps, 64); err == nil && value >= 0 {
			cfg.RateLimitRPS = value
		}
	}

	if burst := strings.TrimSpace(os.Getenv("RATE_LIMIT_BURST")); burst != "" {
		if value, err := strconv.Atoi(burst); err == nil && value >= 0 {
			cfg.RateLimitBurst = value
		}
	}
}

// applyCLIOverrides applies command-line flag overrides.
func applyCLIOverrides(cfg *Config, overrides *CLIOverrides) {
	if overrides.Port != nil && *overrides.Port != "" {
		cfg.Port = *overrides.Port
	}

	if overrides.MaxItems != nil && *overrides.MaxItems > 0 {
		cfg.Bounds.MaxItems = *overrides.MaxItems
	}

	if overrides.MaxCapacity != nil && *overrides.MaxCapacity > 0 {
		cfg.Bounds.MaxCapacity = *overrides.MaxCapacity
	}

	if overrides.HistoryPath != nil && *overrides.HistoryPath != "" {
		cfg.HistoryPath = *overrides.HistoryPath
	}

	if overrides.RateLimitRPS != nil && *overrides.RateLimitRPS >= 0 {
		cfg.RateLimitRPS = *overrides.RateLimitRPS
	}

	if overrides.RateLimitBurst != nil && *overrides.RateLimitBurst >= 0 {
		cfg.RateLimitBurst = *overrides.RateLimitBurst
	}
}

// validateConfig validates the final configuration.
func validateConfig(cfg Config) error {
	if cfg.RateLimitRPS < 0 {
		return fmt.Errorf("RATE_LIMIT_RPS must be >= 0")
	}
	if cfg.RateLimitBurst < 0 {
		return fmt.Errorf("RATE_LIMIT_BURST must be >= 0")
	}
	if cfg.Bounds.MaxItems <= 0 {
		return fmt.Errorf("MAX_ITEMS must be positive")
	}
	if cfg.Bounds.MaxCapacity <= 0 {
		return fmt.Errorf("MAX_CAPACITY must be positive")
	}
	return nil
}
