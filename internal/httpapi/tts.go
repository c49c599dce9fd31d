package httpapi

import (
	"context"
	"net/http"

	"golang.org/x/sync/errgroup"

	"github.com/book-expert/tts-gateway/internal/apperrors"
	"github.com/book-expert/tts-gateway/internal/textproc/chunk"
	"github.com/book-expert/tts-gateway/internal/wavutil"
)

// chunkingThreshold is the text length above which chunking (if
// enabled on the request) actually kicks in — short text gets the
// single-shot path regardless, to avoid fan-out overhead on trivial
// requests.
const chunkingThreshold = 200

func (h *handler) handleTTS(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		h.writeError(w, r, apperrors.InvalidRequest("method not allowed"))

		return
	}

	req, ok := h.decodeRequest(w, r)
	if !ok {
		return
	}

	text, voice, speed, enableChunking := req.normalized()

	if verr := validateRequest(text, speed); verr != nil {
		h.writeError(w, r, verr)

		return
	}

	ctx, cancel := h.requestContext(r)
	defer cancel()

	var (
		wav []byte
		err error
	)

	if enableChunking && len(text) > chunkingThreshold {
		wav, err = h.synthesizeChunked(ctx, text, voice, speed)
	} else {
		wav, err = h.synthesizeOne(ctx, text, voice, speed)
	}

	if err != nil {
		h.writeError(w, r, asAppError(err))

		return
	}

	w.Header().Set("X-Request-ID", requestIDFrom(r.Context()))
	w.Header().Set("Content-Type", "audio/wav")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(wav)
}

// requestContext applies the configured per-request synthesis
// timeout on top of the inbound request's context.
func (h *handler) requestContext(r *http.Request) (context.Context, context.CancelFunc) {
	if h.deps.RequestTimeout <= 0 {
		return context.WithCancel(r.Context())
	}

	return context.WithTimeout(r.Context(), h.deps.RequestTimeout)
}

// synthesizeChunked partitions text into §4.3 chunks, synthesizes
// each one independently and in parallel, and concatenates the
// results in chunk-index order regardless of completion order. The
// first chunk failure cancels the remaining ones; no partial WAV is
// ever returned.
func (h *handler) synthesizeChunked(ctx context.Context, text, voice string, speed float64) ([]byte, error) {
	chunks := chunk.Split(text, chunk.DefaultConfig())

	results := make([][]byte, len(chunks))

	group, gctx := errgroup.WithContext(ctx)

	for i, c := range chunks {
		group.Go(func() error {
			audioBytes, err := h.synthesizeOne(gctx, c, voice, speed)
			if err != nil {
				return err
			}

			results[i] = audioBytes

			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}

	combined, err := wavutil.Concatenate(results)
	if err != nil {
		return nil, apperrors.WavConcatenation("%v", err)
	}

	return combined, nil
}

// asAppError coerces a bare error into the generic apperrors.Unknown
// kind when it did not already carry a gateway error kind, so every
// response path goes through the same status/message mapping.
func asAppError(err error) *apperrors.Error {
	if appErr, ok := apperrors.As(err); ok {
		return appErr
	}

	return apperrors.Unknown(err)
}
