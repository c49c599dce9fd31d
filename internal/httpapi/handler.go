// Package httpapi wires the synthesis engine pool, rate limiter, and
// API key set into an HTTP server: admission (auth + rate limit) runs
// in front of every route, then each handler validates its own
// request body before dispatching to single-shot, chunked, or
// streaming synthesis.
package httpapi

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/book-expert/logger"

	"github.com/book-expert/tts-gateway/internal/apperrors"
	"github.com/book-expert/tts-gateway/internal/auth"
	"github.com/book-expert/tts-gateway/internal/enginepool"
	"github.com/book-expert/tts-gateway/internal/ratelimit"
	"github.com/book-expert/tts-gateway/internal/voices"
)

// Deps are the dependencies NewHandler wires into the router. Limiter
// may be nil (treated as unlimited) even when Keys is enabled, for
// tests and for a "disabled" rate-limit mode.
type Deps struct {
	Pool           *enginepool.Pool
	Keys           auth.KeySet
	Limiter        *ratelimit.Limiter
	RequestTimeout time.Duration
	Log            *logger.Logger
	DebugMetadata  bool
	Version        string
}

type handler struct {
	deps Deps
}

// NewHandler builds the full gateway router: /tts, /tts/stream,
// /voices, /health, /stats, wrapped in the request-ID and admission
// middleware.
func NewHandler(deps Deps) http.Handler {
	h := &handler{deps: deps}

	mux := http.NewServeMux()
	mux.HandleFunc("/tts", h.handleTTS)
	mux.HandleFunc("/tts/stream", h.handleStream)
	mux.HandleFunc("/voices", h.handleVoices)
	mux.HandleFunc("/health", h.handleHealth)
	mux.HandleFunc("/stats", h.handleStats)

	return withRequestIDMiddleware(h.admissionMiddleware(mux))
}

func (h *handler) handleVoices(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		h.writeError(w, r, apperrors.InvalidRequest("method not allowed"))

		return
	}

	h.writeJSON(w, r, http.StatusOK, voicesResponse{Voices: voices.List()})
}

func (h *handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		h.writeError(w, r, apperrors.InvalidRequest("method not allowed"))

		return
	}

	h.writeJSON(w, r, http.StatusOK, healthResponse{Status: "ok", Version: h.deps.Version})
}

func (h *handler) handleStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		h.writeError(w, r, apperrors.InvalidRequest("method not allowed"))

		return
	}

	stats := h.deps.Pool.Stats()

	h.writeJSON(w, r, http.StatusOK, statsResponse{
		PoolSize:         stats.PoolSize,
		ActiveRequests:   stats.ActiveRequests,
		AvailableEngines: stats.AvailableEngines,
		TotalRequests:    stats.TotalRequests,
	})
}

func (h *handler) writeJSON(w http.ResponseWriter, r *http.Request, status int, body any) {
	w.Header().Set("X-Request-ID", requestIDFrom(r.Context()))
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil && h.deps.Log != nil {
		h.deps.Log.Warn("failed to encode response body: %v", err)
	}
}

func (h *handler) writeError(w http.ResponseWriter, r *http.Request, err *apperrors.Error) {
	if err.Loggable() && h.deps.Log != nil {
		h.deps.Log.Error("request %s failed: %v", requestIDFrom(r.Context()), err)
	}

	w.Header().Set("X-Request-ID", requestIDFrom(r.Context()))
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(err.Status())

	body := errorResponse{Status: "error", Error: err.ClientMessage()}
	if encErr := json.NewEncoder(w).Encode(body); encErr != nil && h.deps.Log != nil {
		h.deps.Log.Warn("failed to encode error body: %v", encErr)
	}
}

func (h *handler) decodeRequest(w http.ResponseWriter, r *http.Request) (ttsRequest, bool) {
	var req ttsRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, r, apperrors.InvalidRequest("invalid JSON: %v", err))

		return ttsRequest{}, false
	}

	return req, true
}
