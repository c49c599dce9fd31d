package httpapi

import "github.com/book-expert/tts-gateway/internal/apperrors"

// maxTextLength is the longest request text the gateway will accept,
// chosen to bound synthesis cost and temp-file size per request.
const maxTextLength = 10_000

const (
	minSpeed = 0.0
	maxSpeed = 3.0
)

// validateRequest enforces spec order: empty text, then length, then
// speed range. Voice existence is not itself a 400 — an unknown voice
// is passed through to the engine, which is the external authority on
// what voices it supports.
func validateRequest(text string, speed float64) *apperrors.Error {
	if isBlank(text) {
		return apperrors.EmptyText()
	}

	if len(text) > maxTextLength {
		return apperrors.InvalidRequest("Text too long: %d chars (max %d)", len(text), maxTextLength)
	}

	if speed <= minSpeed || speed > maxSpeed {
		return apperrors.InvalidSpeed(speed)
	}

	return nil
}

func isBlank(s string) bool {
	for _, r := range s {
		if r != ' ' && r != '\t' && r != '\n' && r != '\r' {
			return false
		}
	}

	return true
}
