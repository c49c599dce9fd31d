package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	"github.com/book-expert/tts-gateway/internal/apperrors"
	"github.com/book-expert/tts-gateway/internal/metadata"
	"github.com/book-expert/tts-gateway/internal/textproc/chunk"
	"github.com/book-expert/tts-gateway/internal/textproc/normalize"
)

const (
	multipartBoundary = "tts_chunk_boundary"
	boundaryStart     = "\r\n--" + multipartBoundary + "\r\n"
	boundaryEnd       = "\r\n--" + multipartBoundary + "--\r\n"
	msPerChar         = 80.0
	streamPartBacklog = 10
)

// handleStream implements the multipart/mixed chunk-by-chunk pipeline:
// normalize the whole text first (unlike handleTTS, which never
// normalizes — see DESIGN.md), split into chunks, then synthesize and
// emit each chunk as a metadata part followed by an audio part as soon
// as its synthesis finishes. Chunks reach the wire in completion order,
// not chunk order; each metadata part carries chunk_index. A chunk whose
// synthesis fails is logged and skipped; every other chunk still
// streams, producing a truncated-but-valid multipart body rather than
// aborting the whole response.
func (h *handler) handleStream(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		h.writeError(w, r, apperrors.InvalidRequest("method not allowed"))

		return
	}

	req, ok := h.decodeRequest(w, r)
	if !ok {
		return
	}

	text, voice, speed, _ := req.normalized()

	if verr := validateRequest(text, speed); verr != nil {
		h.writeError(w, r, verr)

		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		h.writeError(w, r, apperrors.Unknown(fmt.Errorf("response writer does not support streaming")))

		return
	}

	normalized := normalize.Simple(text)
	chunks := chunk.Split(normalized, chunk.DefaultConfig())

	offsets := make([]float64, len(chunks))

	cumulative := 0.0
	for i, c := range chunks {
		offsets[i] = cumulative
		cumulative += float64(len(c)) * msPerChar
	}

	ctx, cancel := h.requestContext(r)
	defer cancel()

	parts := make(chan []byte, streamPartBacklog)

	var wg sync.WaitGroup

	for i, c := range chunks {
		wg.Add(1)

		go func(index int, text string, startOffsetMs float64) {
			defer wg.Done()
			h.streamChunk(ctx, index, text, voice, speed, startOffsetMs, parts)
		}(i, c, offsets[i])
	}

	go func() {
		wg.Wait()
		close(parts)
	}()

	w.Header().Set("X-Request-ID", requestIDFrom(r.Context()))
	w.Header().Set("Content-Type", "multipart/mixed; boundary="+multipartBoundary)
	w.Header().Set("Transfer-Encoding", "chunked")
	w.WriteHeader(http.StatusOK)

	for part := range parts {
		if _, err := w.Write(part); err != nil {
			return
		}

		flusher.Flush()
	}

	_, _ = w.Write([]byte(boundaryEnd))
	flusher.Flush()
}

// streamChunk synthesizes one chunk and, on success, sends its
// metadata part followed by its audio part on parts. On failure it
// logs and sends nothing, so the caller's goroutine set still
// terminates cleanly via the shared WaitGroup.
func (h *handler) streamChunk(
	ctx context.Context,
	index int,
	text, voice string,
	speed, startOffsetMs float64,
	parts chan<- []byte,
) {
	audioBytes, err := h.synthesizeOne(ctx, text, voice, speed)
	if err != nil {
		if h.deps.Log != nil {
			h.deps.Log.Warn("stream chunk %d failed, skipping: %v", index, err)
		}

		return
	}

	chunkMeta, err := metadata.Build(audioBytes, text, index, startOffsetMs)
	if err != nil {
		if h.deps.Log != nil {
			h.deps.Log.Warn("stream chunk %d metadata build failed, skipping: %v", index, err)
		}

		return
	}

	metadata.Enrich(&chunkMeta, text, voice, 0, h.deps.DebugMetadata)

	metaBytes, err := json.Marshal(chunkMeta)
	if err != nil {
		if h.deps.Log != nil {
			h.deps.Log.Warn("stream chunk %d metadata encode failed, skipping: %v", index, err)
		}

		return
	}

	parts <- buildMetadataPart(metaBytes)
	parts <- buildAudioPart(audioBytes)
}

func buildMetadataPart(metaBytes []byte) []byte {
	var buf bytes.Buffer

	buf.WriteString(boundaryStart)
	buf.WriteString("Content-Type: application/json\r\n\r\n")
	buf.Write(metaBytes)
	buf.WriteString("\r\n")

	return buf.Bytes()
}

func buildAudioPart(audioBytes []byte) []byte {
	var buf bytes.Buffer

	buf.WriteString(boundaryStart)
	fmt.Fprintf(&buf, "Content-Type: audio/wav\r\nContent-Length: %d\r\n\r\n", len(audioBytes))
	buf.Write(audioBytes)

	return buf.Bytes()
}
