// Package synth defines the external collaborator contract for the
// neural TTS engine and an exec-based adapter that satisfies it by
// shelling out to a synthesis binary. The model/runtime behind that
// binary is treated as a black box: it blocks until a valid WAV file
// exists at the requested output path, or it returns an error.
package synth

import (
	"context"
	"fmt"
	"os/exec"
	"strconv"

	"github.com/book-expert/logger"
)

// Engine synthesizes text to a WAV file at outputPath, blocking until
// the file is written or an error occurs. Every chunk synthesized
// through one engine within a request must share the same WAV spec
// (channels, sample rate, bit depth, sample format), since downstream
// concatenation requires it.
type Engine interface {
	Synthesize(ctx context.Context, text, voiceID string, speed float64, outputPath string) error
}

// ExecEngine is an Engine backed by a command-line synthesis binary,
// following the same "write audio to a path, block until done"
// contract the teacher's chatllm-based processor used for its local
// model invocation.
type ExecEngine struct {
	// BinaryPath is the synthesis executable to invoke.
	BinaryPath string
	// ModelDir is passed to the binary as its model-directory flag.
	ModelDir string
	log      *logger.Logger
}

// NewExecEngine builds an ExecEngine for the binary at binaryPath,
// configured to load models from modelDir.
func NewExecEngine(binaryPath, modelDir string, log *logger.Logger) *ExecEngine {
	return &ExecEngine{BinaryPath: binaryPath, ModelDir: modelDir, log: log}
}

// Synthesize invokes the configured binary and waits for it to write
// a WAV file at outputPath.
func (e *ExecEngine) Synthesize(ctx context.Context, text, voiceID string, speed float64, outputPath string) error {
	args := buildArgs(e.ModelDir, text, voiceID, speed, outputPath)

	// #nosec G204 -- binary path and model dir come from validated
	// startup configuration, not request input; text is passed as a
	// single argument, never interpolated into a shell string.
	cmd := exec.CommandContext(ctx, e.BinaryPath, args...)

	output, err := cmd.CombinedOutput()
	if err != nil {
		if e.log != nil {
			e.log.Error("synthesis binary failed: %v - output: %s", err, string(output))
		}

		return fmt.Errorf("synthesis binary execution failed: %w", err)
	}

	return nil
}

// buildArgs constructs the synthesis binary's command-line arguments.
// Split out from Synthesize so the argument shape can be tested
// without invoking a real binary.
func buildArgs(modelDir, text, voiceID string, speed float64, outputPath string) []string {
	return []string{
		"--model-dir", modelDir,
		"--voice", voiceID,
		"--speed", strconv.FormatFloat(speed, 'f', 2, 64),
		"--text", text,
		"--output", outputPath,
	}
}
