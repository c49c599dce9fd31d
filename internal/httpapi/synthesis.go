package httpapi

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/book-expert/tts-gateway/internal/apperrors"
)

// synthesizeOne acquires one engine permit, synthesizes text to a
// unique temp file, reads it back, and removes the file regardless of
// outcome. The temp file is named with a UUID so concurrent chunk
// tasks sharing the OS temp directory never collide.
func (h *handler) synthesizeOne(ctx context.Context, text, voice string, speed float64) ([]byte, error) {
	permit, err := h.deps.Pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer permit.Release()

	outputPath := filepath.Join(os.TempDir(), fmt.Sprintf("tts-gateway-%s.wav", uuid.NewString()))

	defer func() {
		if removeErr := os.Remove(outputPath); removeErr != nil && !os.IsNotExist(removeErr) {
			if h.deps.Log != nil {
				h.deps.Log.Warn("failed to remove temp synthesis file %q: %v", outputPath, removeErr)
			}
		}
	}()

	if err := permit.Engine().Synthesize(ctx, text, voice, speed, outputPath); err != nil {
		return nil, apperrors.TTSEngine(err)
	}

	audioBytes, err := os.ReadFile(outputPath) //nolint:gosec // path built from os.TempDir + generated uuid, not request input
	if err != nil {
		return nil, apperrors.IO(err)
	}

	return audioBytes, nil
}
