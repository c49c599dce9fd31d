// Package apperrors provides the error taxonomy for the TTS gateway,
// mapping internal failure kinds onto HTTP statuses and client-safe
// messages.
package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind identifies the category of a gateway error.
type Kind int

// Error kinds, grouped the way the HTTP status mapping groups them.
const (
	KindUnknown Kind = iota
	KindEmptyText
	KindInvalidSpeed
	KindInvalidRequest
	KindUnauthorized
	KindInvalidAPIKey
	KindRateLimited
	KindFileNotFound
	KindTTSEngine
	KindPoolExhausted
	KindAudioParsing
	KindWavConcatenation
	KindIO
	KindTaskJoin
)

// Static sentinels for errors.Is comparisons. EmptyText, Unauthorized,
// InvalidAPIKey, FileNotFound, PoolExhausted and WavConcatenation wrap
// their sentinel as the Cause. The constructors that take a cause wrap
// that cause instead, and no constructor attaches ErrInvalidRequest,
// ErrTTSEngine, ErrAudioParsing or ErrTaskJoin; use Kind to tell those
// kinds apart.
var (
	ErrEmptyText       = errors.New("text cannot be empty")
	ErrInvalidRequest  = errors.New("invalid request")
	ErrUnauthorized    = errors.New("unauthorized")
	ErrInvalidAPIKey   = errors.New("invalid API key")
	ErrFileNotFound    = errors.New("file not found")
	ErrTTSEngine       = errors.New("TTS engine error")
	ErrPoolExhausted   = errors.New("TTS pool exhausted")
	ErrAudioParsing    = errors.New("audio parsing error")
	ErrWavConcat       = errors.New("WAV concatenation error")
	ErrTaskJoin        = errors.New("task execution error")
	genericServerError = "Internal server error"
)

// Error is a gateway error carrying an HTTP status and a client-safe
// message, with an optional wrapped cause for logging.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}

	return e.Message
}

// Unwrap exposes the wrapped cause for errors.Is/errors.As.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Status returns the HTTP status code for this error's kind.
func (e *Error) Status() int {
	switch e.Kind {
	case KindEmptyText, KindInvalidSpeed, KindInvalidRequest:
		return http.StatusBadRequest
	case KindUnauthorized, KindInvalidAPIKey:
		return http.StatusUnauthorized
	case KindRateLimited:
		return http.StatusTooManyRequests
	case KindFileNotFound:
		return http.StatusNotFound
	case KindTTSEngine, KindPoolExhausted, KindAudioParsing,
		KindWavConcatenation, KindIO, KindTaskJoin, KindUnknown:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// ClientMessage returns the message that is safe to return to the
// caller. Internal-failure kinds are collapsed to a generic message;
// their detail is expected to be logged by the caller before this is
// surfaced.
func (e *Error) ClientMessage() string {
	switch e.Kind {
	case KindTTSEngine, KindPoolExhausted, KindAudioParsing,
		KindWavConcatenation, KindIO, KindTaskJoin, KindUnknown:
		return genericServerError
	default:
		return e.Message
	}
}

// Loggable reports whether this error kind should be logged with full
// detail on the server side (the internal-failure kinds, whose client
// message is generic).
func (e *Error) Loggable() bool {
	return e.ClientMessage() == genericServerError
}

// EmptyText builds the EmptyText error.
func EmptyText() *Error {
	return &Error{Kind: KindEmptyText, Message: "Text cannot be empty", Cause: ErrEmptyText}
}

// InvalidSpeed builds the InvalidSpeed error for a rejected speed value.
func InvalidSpeed(speed float64) *Error {
	return &Error{
		Kind:    KindInvalidSpeed,
		Message: fmt.Sprintf("Invalid speed: %v (must be 0.0-3.0)", speed),
	}
}

// InvalidRequest builds a generic 400 with the given message.
func InvalidRequest(format string, args ...any) *Error {
	return &Error{Kind: KindInvalidRequest, Message: fmt.Sprintf(format, args...)}
}

// Unauthorized builds the Unauthorized error (missing key).
func Unauthorized(message string) *Error {
	return &Error{Kind: KindUnauthorized, Message: message, Cause: ErrUnauthorized}
}

// InvalidAPIKey builds the InvalidApiKey error (present but wrong key).
func InvalidAPIKey() *Error {
	return &Error{Kind: KindInvalidAPIKey, Message: "Invalid API key", Cause: ErrInvalidAPIKey}
}

// RateLimited builds the rate-limit error; callers attach Retry-After
// themselves since it is a response header, not part of the body.
func RateLimited(retryAfterSeconds int64) *Error {
	return &Error{
		Kind: KindRateLimited,
		Message: fmt.Sprintf(
			"Rate limit exceeded. Please retry after %d seconds.",
			retryAfterSeconds,
		),
	}
}

// FileNotFound builds the FileNotFound error for a missing path.
func FileNotFound(path string) *Error {
	return &Error{
		Kind:    KindFileNotFound,
		Message: fmt.Sprintf("File not found: %s", path),
		Cause:   ErrFileNotFound,
	}
}

// TTSEngine wraps an error from the synthesis engine.
func TTSEngine(cause error) *Error {
	return &Error{
		Kind:    KindTTSEngine,
		Message: fmt.Sprintf("TTS engine error: %v", cause),
		Cause:   cause,
	}
}

// PoolExhausted builds the PoolExhausted error (no permit available
// before the request deadline).
func PoolExhausted() *Error {
	return &Error{Kind: KindPoolExhausted, Message: "TTS pool exhausted", Cause: ErrPoolExhausted}
}

// AudioParsing wraps a WAV-parsing failure.
func AudioParsing(cause error) *Error {
	return &Error{
		Kind:    KindAudioParsing,
		Message: fmt.Sprintf("Audio parsing error: %v", cause),
		Cause:   cause,
	}
}

// WavConcatenation wraps a WAV-concatenation spec mismatch.
func WavConcatenation(format string, args ...any) *Error {
	msg := fmt.Sprintf(format, args...)

	return &Error{
		Kind:    KindWavConcatenation,
		Message: fmt.Sprintf("WAV concatenation error: %s", msg),
		Cause:   ErrWavConcat,
	}
}

// IO wraps a generic I/O failure.
func IO(cause error) *Error {
	return &Error{Kind: KindIO, Message: fmt.Sprintf("I/O error: %v", cause), Cause: cause}
}

// TaskJoin wraps a fan-out task failure.
func TaskJoin(cause error) *Error {
	return &Error{
		Kind:    KindTaskJoin,
		Message: fmt.Sprintf("Task execution error: %v", cause),
		Cause:   cause,
	}
}

// Unknown wraps an unclassified failure.
func Unknown(cause error) *Error {
	return &Error{Kind: KindUnknown, Message: fmt.Sprintf("Unknown error: %v", cause), Cause: cause}
}

// As extracts a *Error from err, or returns (nil, false) if err does
// not wrap one.
func As(err error) (*Error, bool) {
	var target *Error
	if errors.As(err, &target) {
		return target, true
	}

	return nil, false
}
