package httpapi

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/book-expert/tts-gateway/internal/apperrors"
	"github.com/book-expert/tts-gateway/internal/auth"
)

// withRequestIDMiddleware echoes an incoming X-Request-ID header, or
// generates one, and always sends it back on the response.
func withRequestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}

		w.Header().Set("X-Request-ID", id)
		r = r.WithContext(withRequestID(r.Context(), id))
		next.ServeHTTP(w, r)
	})
}

// admissionMiddleware applies to every route, including /health: auth
// then rate-limit, in that order, matching spec §4.7's admission
// sequence. Rate limiting is skipped entirely when no keys are
// configured, since it is bound to authentication being enabled.
func (h *handler) admissionMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !h.deps.Keys.Enabled() {
			next.ServeHTTP(w, r)

			return
		}

		key := auth.Extract(r.Header)
		if key == "" {
			h.writeError(w, r, apperrors.Unauthorized(
				"API key required. Provide via X-API-Key or Authorization: Bearer header"))

			return
		}

		if !h.deps.Keys.Valid(key) {
			h.writeError(w, r, apperrors.InvalidAPIKey())

			return
		}

		if h.deps.Limiter != nil {
			if ok, retryAfter := h.deps.Limiter.Allow(key); !ok {
				seconds := int64(retryAfter.Seconds())

				w.Header().Set("Retry-After", strconv.FormatInt(seconds, 10))
				h.writeError(w, r, apperrors.RateLimited(seconds))

				return
			}
		}

		next.ServeHTTP(w, r)
	})
}
