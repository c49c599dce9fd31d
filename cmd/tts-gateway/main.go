// Command tts-gateway runs the TTS gateway: a pooled-engine HTTP
// server in --server mode, or a one-shot text-to-file synthesis in
// CLI mode.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/book-expert/logger"

	"github.com/book-expert/tts-gateway/internal/apperrors"
	"github.com/book-expert/tts-gateway/internal/auth"
	"github.com/book-expert/tts-gateway/internal/config"
	"github.com/book-expert/tts-gateway/internal/enginepool"
	"github.com/book-expert/tts-gateway/internal/httpapi"
	"github.com/book-expert/tts-gateway/internal/metadata"
	"github.com/book-expert/tts-gateway/internal/ratelimit"
	"github.com/book-expert/tts-gateway/internal/synth"
	"github.com/book-expert/tts-gateway/internal/voices"
)

const (
	version           = "0.1.0"
	defaultCLIText    = "Hello, this is the TTS gateway speaking!"
	cliOutputWAV      = "output.wav"
	cliOutputMetadata = "output.json"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

type cliFlags struct {
	server  bool
	port    int
	help    bool
	version bool
	text    string
}

func parseFlags(args []string) cliFlags {
	fs := flag.NewFlagSet("tts-gateway", flag.ExitOnError)

	var flags cliFlags

	fs.BoolVar(&flags.server, "server", false, "Start HTTP server mode")
	fs.IntVar(&flags.port, "port", 0, "Server port (overrides config/env)")
	fs.BoolVar(&flags.help, "h", false, "Print this help message")
	fs.BoolVar(&flags.help, "help", false, "Print this help message")
	fs.BoolVar(&flags.version, "v", false, "Print version information")
	fs.BoolVar(&flags.version, "version", false, "Print version information")
	_ = fs.Parse(args)

	flags.text = strings.Join(fs.Args(), " ")

	return flags
}

func run() error {
	flags := parseFlags(os.Args[1:])

	if flags.help {
		printHelp()

		return nil
	}

	if flags.version {
		fmt.Printf("tts-gateway v%s\n", version)

		return nil
	}

	cfg, _, err := config.Load(".")
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if flags.port != 0 {
		cfg.Server.Port = flags.port
	}

	log, err := logger.New(cfg.Logging.LogDir, "tts-gateway.log")
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}

	defer func() {
		if closeErr := log.Close(); closeErr != nil {
			fmt.Fprintf(os.Stderr, "error closing logger: %v\n", closeErr)
		}
	}()

	pool, err := buildPool(cfg, log)
	if err != nil {
		return fmt.Errorf("build engine pool: %w", err)
	}

	if flags.server {
		return runServer(cfg, pool, log)
	}

	text := flags.text
	if text == "" {
		text = defaultCLIText
	}

	return runCLI(cfg, pool, text)
}

func buildPool(cfg *config.Config, log *logger.Logger) (*enginepool.Pool, error) {
	engines := make([]synth.Engine, cfg.Pool.Size)
	for i := range engines {
		engines[i] = synth.NewExecEngine(cfg.Pool.EngineBinary, cfg.Pool.ModelDir, log)
	}

	return enginepool.New(engines), nil
}

func runServer(cfg *config.Config, pool *enginepool.Pool, log *logger.Logger) error {
	keys := auth.LoadKeys(cfg.Auth.KeyFile)

	var limiter *ratelimit.Limiter
	if cfg.RateLimit.Mode != "disabled" {
		limiter = ratelimit.New(cfg.RateLimit.PerSecond, cfg.RateLimit.Burst)
	}

	deps := httpapi.Deps{
		Pool:           pool,
		Keys:           keys,
		Limiter:        limiter,
		RequestTimeout: time.Duration(cfg.Pool.RequestTimeoutSeconds) * time.Second,
		Log:            log,
		DebugMetadata:  os.Getenv("TTS_DEBUG_METADATA") == "1",
		Version:        version,
	}

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := httpapi.New(addr, deps)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	log.System("TTS gateway listening on http://%s (pool size %d)", addr, cfg.Pool.Size)
	logAuthStatus(log, keys)

	if err := srv.Start(ctx); err != nil {
		return fmt.Errorf("server: %w", err)
	}

	log.Info("Shutdown complete.")

	return nil
}

func logAuthStatus(log *logger.Logger, keys auth.KeySet) {
	if keys.Enabled() {
		log.Info("Authentication: ENABLED (%d key(s) configured)", keys.Count())

		return
	}

	log.Info("Authentication: DISABLED (set TTS_API_KEY_FILE or create ./api_keys.txt to enable)")
}

// runCLI synthesizes text once, writing the WAV to cliOutputWAV and
// its timing metadata to cliOutputMetadata in the current directory.
func runCLI(cfg *config.Config, pool *enginepool.Pool, text string) error {
	ctx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Pool.RequestTimeoutSeconds)*time.Second,
	)
	defer cancel()

	permit, err := pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("acquire engine: %w", err)
	}
	defer permit.Release()

	outputPath, err := filepath.Abs(cliOutputWAV)
	if err != nil {
		return fmt.Errorf("resolve output path: %w", err)
	}

	fmt.Printf("Generating speech for: %q\n", text)

	if err := permit.Engine().Synthesize(ctx, text, voices.DefaultVoiceID, 1.0, outputPath); err != nil {
		return apperrors.TTSEngine(err)
	}

	fmt.Printf("Speech saved to %s\n", cliOutputWAV)

	audioBytes, err := os.ReadFile(outputPath) //nolint:gosec // CLI-mode path under the user's own control
	if err != nil {
		return fmt.Errorf("read synthesized audio: %w", err)
	}

	chunkMeta, err := metadata.Build(audioBytes, text, 0, 0)
	if err != nil {
		return fmt.Errorf("build metadata: %w", err)
	}

	metaBytes, err := json.MarshalIndent(chunkMeta, "", "  ")
	if err != nil {
		return fmt.Errorf("encode metadata: %w", err)
	}

	if err := os.WriteFile(cliOutputMetadata, metaBytes, 0o600); err != nil {
		return fmt.Errorf("write metadata: %w", err)
	}

	fmt.Printf("Metadata saved to %s\n", cliOutputMetadata)
	fmt.Printf("\nTiming Summary:\n  Total duration: %.2fs\n  Number of phrases: %d\n",
		chunkMeta.DurationMs/1000.0, len(chunkMeta.Phrases))

	return nil
}

func printHelp() {
	fmt.Printf(`tts-gateway v%s
Text-to-Speech HTTP gateway powered by a pooled synthesis engine.

USAGE:
    tts-gateway [OPTIONS] [TEXT]

OPTIONS:
    --server              Start HTTP server mode
    --port <PORT>         Server port (overrides config/env)
    -h, --help            Print this help message
    -v, --version         Print version information

EXAMPLES:
    tts-gateway --server
    tts-gateway --server --port 8080
    tts-gateway "Hello, world!"

SERVER ENDPOINTS:
    POST   /tts          - Generate speech from text
    POST   /tts/stream   - Stream speech with chunked response
    GET    /voices       - List available voices
    GET    /health       - Health check
    GET    /stats        - Pool statistics

ENVIRONMENT VARIABLES:
    TTS_MODEL_DIR             - Directory containing TTS models
    TTS_ENGINE_BINARY         - Path to the synthesis binary
    TTS_POOL_SIZE             - Number of TTS engines (default: 2)
    TTS_API_KEY_FILE          - Path to API keys file
    RATE_LIMIT_MODE           - Rate limit mode (auto/per-key/per-ip/disabled)
    REQUEST_TIMEOUT_SECONDS   - Request timeout in seconds (default: 60)
    TTS_DEBUG_METADATA        - Set to 1 to include debug_info in stream metadata
`, version)
}
