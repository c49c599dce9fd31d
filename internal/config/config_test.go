// Package config_test tests configuration loading for the TTS gateway.
package config_test

import (
	"testing"

	"github.com/pelletier/go-toml/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/book-expert/tts-gateway/internal/config"
)

func TestUnmarshalTOML(t *testing.T) {
	t.Parallel()

	tomlData := `
[server]
host = "0.0.0.0"
port = 8080

[pool]
size = 4
model_dir = "models/kokoro"
engine_binary = "bin/synth"
request_timeout_seconds = 45

[auth]
key_file = "./api_keys.txt"

[ratelimit]
mode = "per-key"
per_second = 5
burst = 10

[logging]
level = "debug"
log_dir = "logs"
max_file_size_mb = 20
max_files = 3
`

	var cfg config.Config

	err := toml.Unmarshal([]byte(tomlData), &cfg)
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 4, cfg.Pool.Size)
	assert.Equal(t, "models/kokoro", cfg.Pool.ModelDir)
	assert.Equal(t, "bin/synth", cfg.Pool.EngineBinary)
	assert.Equal(t, 45, cfg.Pool.RequestTimeoutSeconds)
	assert.Equal(t, "./api_keys.txt", cfg.Auth.KeyFile)
	assert.Equal(t, "per-key", cfg.RateLimit.Mode)
	assert.InEpsilon(t, 5.0, cfg.RateLimit.PerSecond, 0.001)
	assert.Equal(t, 10, cfg.RateLimit.Burst)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, 3, cfg.Logging.MaxFiles)
}

func validConfig() config.Config {
	return config.Config{
		Server: config.ServerConfig{Host: "0.0.0.0", Port: 3000},
		Pool: config.PoolConfig{
			Size:                  2,
			ModelDir:              "/models",
			EngineBinary:          "/usr/bin/synth",
			RequestTimeoutSeconds: 60,
		},
		RateLimit: config.RateLimitConfig{Mode: "auto", PerSecond: 10, Burst: 20},
		Logging: config.LoggingConfig{
			Level:         "info",
			LogDir:        "/var/log/tts",
			MaxFileSizeMB: 50,
			MaxFiles:      5,
		},
	}
}

func TestValidateAcceptsWellFormedConfig(t *testing.T) {
	t.Parallel()

	cfg := validConfig()
	assert.NoError(t, cfg.Validate())
}

func TestValidateRejectsZeroPoolSize(t *testing.T) {
	t.Parallel()

	cfg := validConfig()
	cfg.Pool.Size = 0

	err := cfg.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrPoolSizePositive)
}

func TestValidateRejectsEmptyModelDir(t *testing.T) {
	t.Parallel()

	cfg := validConfig()
	cfg.Pool.ModelDir = ""

	assert.ErrorIs(t, cfg.Validate(), config.ErrModelDirEmpty)
}

func TestValidateRejectsBadPort(t *testing.T) {
	t.Parallel()

	cfg := validConfig()
	cfg.Server.Port = 70000

	assert.ErrorIs(t, cfg.Validate(), config.ErrServerPortRange)
}

func TestValidateAllowsDisabledRateLimitWithoutRates(t *testing.T) {
	t.Parallel()

	cfg := validConfig()
	cfg.RateLimit = config.RateLimitConfig{Mode: "disabled"}

	assert.NoError(t, cfg.Validate())
}

func TestValidateRejectsUnknownRateLimitMode(t *testing.T) {
	t.Parallel()

	cfg := validConfig()
	cfg.RateLimit.Mode = "unlimited"

	err := cfg.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrRateLimitModeInvalid)
}

func TestValidateRejectsUnknownLogLevel(t *testing.T) {
	t.Parallel()

	cfg := validConfig()
	cfg.Logging.Level = "verbose"

	assert.ErrorIs(t, cfg.Validate(), config.ErrLoggingLevelInvalid)
}
