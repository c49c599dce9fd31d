// Package config provides configuration management for the TTS gateway.
//
// Configuration loads in two layers: a TOML file discovered by walking up
// from a starting directory (github.com/book-expert/configurator), then an
// environment-variable overlay (github.com/caarlos0/env/v11) that wins over
// anything the file set, matching the env-then-file precedence the original
// server used for locating its API key file.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/book-expert/configurator"
	"github.com/caarlos0/env/v11"
)

// Static errors.
var (
	ErrPoolSizePositive      = errors.New("pool.size must be positive")
	ErrModelDirEmpty         = errors.New("pool.model_dir cannot be empty")
	ErrEngineBinaryEmpty     = errors.New("pool.engine_binary cannot be empty")
	ErrRequestTimeoutInvalid = errors.New("pool.request_timeout_seconds must be positive")
	ErrServerPortRange       = errors.New("server.port must be between 1 and 65535")
	ErrServerHostEmpty       = errors.New("server.host cannot be empty")
	ErrRateLimitModeInvalid  = errors.New("ratelimit.mode must be one of: auto, per-key, per-ip, disabled")
	ErrRateLimitPositive     = errors.New("ratelimit.per_second and ratelimit.burst must be positive")
	ErrLoggingLevelInvalid   = errors.New("logging.level must be one of: debug, info, warn, error")
	ErrLoggingDirEmpty       = errors.New("logging.log_dir cannot be empty")
	ErrLoggingSizePositive   = errors.New("logging.max_file_size_mb must be positive")
	ErrLoggingFilesPositive  = errors.New("logging.max_files must be positive")
)

// Config is the complete gateway configuration.
type Config struct {
	Server    ServerConfig    `toml:"server"`
	Pool      PoolConfig      `toml:"pool"`
	Auth      AuthConfig      `toml:"auth"`
	RateLimit RateLimitConfig `toml:"ratelimit"`
	Logging   LoggingConfig   `toml:"logging"`
}

// ServerConfig controls the HTTP listener.
type ServerConfig struct {
	Host string `toml:"host" env:"TTS_HOST" envDefault:"0.0.0.0"`
	Port int    `toml:"port" env:"TTS_PORT" envDefault:"3000"`
}

// PoolConfig controls the synthesis engine pool.
type PoolConfig struct {
	Size                  int    `toml:"size"                    env:"TTS_POOL_SIZE"           envDefault:"2"`
	ModelDir              string `toml:"model_dir"               env:"TTS_MODEL_DIR"`
	EngineBinary          string `toml:"engine_binary"           env:"TTS_ENGINE_BINARY"`
	RequestTimeoutSeconds int    `toml:"request_timeout_seconds" env:"REQUEST_TIMEOUT_SECONDS" envDefault:"60"`
}

// AuthConfig controls API key loading.
type AuthConfig struct {
	KeyFile string `toml:"key_file" env:"TTS_API_KEY_FILE"`
}

// RateLimitConfig controls per-key request throttling.
type RateLimitConfig struct {
	Mode      string  `toml:"mode"       env:"RATE_LIMIT_MODE" envDefault:"auto"`
	PerSecond float64 `toml:"per_second"                       envDefault:"10"`
	Burst     int     `toml:"burst"                            envDefault:"20"`
}

// LoggingConfig controls the gateway's structured logger.
type LoggingConfig struct {
	Level         string `toml:"level"            envDefault:"info"`
	LogDir        string `toml:"log_dir"          envDefault:"./logs"`
	MaxFileSizeMB int    `toml:"max_file_size_mb" envDefault:"50"`
	MaxFiles      int    `toml:"max_files"        envDefault:"5"`
}

// Load loads project.toml starting from startDir, overlays environment
// variables, resolves relative paths against the discovered project root,
// and validates the result.
func Load(startDir string) (*Config, string, error) {
	var cfg Config

	projectRoot, err := configurator.LoadFromProject(startDir, &cfg)
	if err != nil {
		return nil, "", fmt.Errorf("failed to load project config: %w", err)
	}

	if err := env.Parse(&cfg); err != nil {
		return nil, "", fmt.Errorf("failed to parse environment overrides: %w", err)
	}

	cfg.resolvePaths(projectRoot)

	if err := cfg.Validate(); err != nil {
		return nil, "", fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, projectRoot, nil
}

// Validate validates every section of the configuration.
func (c *Config) Validate() error {
	if err := c.Server.Validate(); err != nil {
		return fmt.Errorf("server config: %w", err)
	}

	if err := c.Pool.Validate(); err != nil {
		return fmt.Errorf("pool config: %w", err)
	}

	if err := c.RateLimit.Validate(); err != nil {
		return fmt.Errorf("ratelimit config: %w", err)
	}

	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("logging config: %w", err)
	}

	return nil
}

// Validate validates the server configuration.
func (c *ServerConfig) Validate() error {
	if c.Host == "" {
		return ErrServerHostEmpty
	}

	if c.Port <= 0 || c.Port > 65535 {
		return ErrServerPortRange
	}

	return nil
}

// Validate validates the pool configuration.
func (c *PoolConfig) Validate() error {
	if c.Size <= 0 {
		return ErrPoolSizePositive
	}

	if c.ModelDir == "" {
		return ErrModelDirEmpty
	}

	if c.EngineBinary == "" {
		return ErrEngineBinaryEmpty
	}

	if c.RequestTimeoutSeconds <= 0 {
		return ErrRequestTimeoutInvalid
	}

	return nil
}

// Validate validates the rate-limit configuration.
func (c *RateLimitConfig) Validate() error {
	validModes := []string{"auto", "per-key", "per-ip", "disabled"}
	if !slices.Contains(validModes, c.Mode) {
		return fmt.Errorf("%w: got %q", ErrRateLimitModeInvalid, c.Mode)
	}

	if c.Mode == "disabled" {
		return nil
	}

	if c.PerSecond <= 0 || c.Burst <= 0 {
		return ErrRateLimitPositive
	}

	return nil
}

// Validate validates the logging configuration.
func (c *LoggingConfig) Validate() error {
	if c.LogDir == "" {
		return ErrLoggingDirEmpty
	}

	validLevels := []string{"debug", "info", "warn", "error"}
	if !slices.Contains(validLevels, strings.ToLower(c.Level)) {
		return fmt.Errorf("%w: got %q", ErrLoggingLevelInvalid, c.Level)
	}

	if c.MaxFileSizeMB <= 0 {
		return ErrLoggingSizePositive
	}

	if c.MaxFiles <= 0 {
		return ErrLoggingFilesPositive
	}

	return nil
}

// resolvePaths converts relative paths to absolute paths based on project root.
func (c *Config) resolvePaths(projectRoot string) {
	if c.Pool.ModelDir != "" && !filepath.IsAbs(c.Pool.ModelDir) {
		c.Pool.ModelDir = filepath.Join(projectRoot, c.Pool.ModelDir)
	}

	if c.Logging.LogDir != "" && !filepath.IsAbs(c.Logging.LogDir) {
		c.Logging.LogDir = filepath.Join(projectRoot, c.Logging.LogDir)
	}
}
