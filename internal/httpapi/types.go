package httpapi

import "github.com/book-expert/tts-gateway/internal/voices"

// ttsRequest is the wire shape of POST /tts and /tts/stream bodies.
// Speed and EnableChunking are pointers so a caller's explicit zero
// value can be told apart from an omitted field, since both have
// non-zero defaults.
type ttsRequest struct {
	Text           string   `json:"text"`
	Voice          string   `json:"voice"`
	Speed          *float64 `json:"speed"`
	EnableChunking *bool    `json:"enable_chunking"`
}

const (
	defaultSpeed          = 1.0
	defaultEnableChunking = true
)

// normalized returns the request with defaults applied.
func (r ttsRequest) normalized() (text, voice string, speed float64, enableChunking bool) {
	voice = r.Voice
	if voice == "" {
		voice = voices.DefaultVoiceID
	}

	speed = defaultSpeed
	if r.Speed != nil {
		speed = *r.Speed
	}

	enableChunking = defaultEnableChunking
	if r.EnableChunking != nil {
		enableChunking = *r.EnableChunking
	}

	return r.Text, voice, speed, enableChunking
}

// voicesResponse is the body of GET /voices.
type voicesResponse struct {
	Voices []voices.Info `json:"voices"`
}

// healthResponse is the body of GET /health.
type healthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

// statsResponse is the body of GET /stats.
type statsResponse struct {
	PoolSize         int    `json:"pool_size"`
	ActiveRequests   int64  `json:"active_requests"`
	AvailableEngines int64  `json:"available_engines"`
	TotalRequests    uint64 `json:"total_requests"`
}

// errorResponse is the body every non-2xx response carries.
type errorResponse struct {
	Status string `json:"status"`
	Error  string `json:"error"`
}
