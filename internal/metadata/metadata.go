// Package metadata builds per-chunk phrase timing metadata from a
// synthesized WAV file and the text it was synthesized from. The
// phrase/word segmentation here is a simple punctuation-and-length
// split, distinct from (and coarser than) the sentence splitter used
// for chunking input text before synthesis.
package metadata

import (
	"strings"

	"github.com/book-expert/tts-gateway/internal/wavutil"
)

// maxPhraseWords is the longest a phrase is allowed to run before it
// is broken into fixed-size word groups.
const maxPhraseWords = 5

// PhraseMetadata is the timing and content of one phrase within a chunk.
type PhraseMetadata struct {
	Text       string   `json:"text"`
	Words      []string `json:"-"`
	StartMs    float64  `json:"start_ms"`
	DurationMs float64  `json:"duration_ms"`

	// OriginalText and the char offsets are optional, pre-normalization
	// back-references, omitted from the wire format when unset so the
	// concrete scenarios in spec.md §8 still hold. Neither Build nor
	// Enrich sets them, so they are currently always omitted.
	OriginalText    *string `json:"original_text,omitempty"`
	CharOffsetStart *int    `json:"char_offset_start,omitempty"`
	CharOffsetEnd   *int    `json:"char_offset_end,omitempty"`
}

// ChunkMetadata is the complete timing record for one synthesized chunk.
type ChunkMetadata struct {
	Version       string            `json:"version,omitempty"`
	ChunkIndex    int               `json:"chunk_index"`
	Text          string            `json:"text"`
	OriginalText  string            `json:"original_text,omitempty"`
	Phrases       []PhraseMetadata  `json:"phrases"`
	DurationMs    float64           `json:"duration_ms"`
	StartOffsetMs float64           `json:"start_offset_ms"`
	Validation    *ValidationResult `json:"validation,omitempty"`
	DebugInfo     *DebugInfo        `json:"debug_info,omitempty"`
}

// ValidationResult reports phrase-level validation findings for a chunk.
type ValidationResult struct {
	Valid    bool                `json:"valid"`
	Errors   []ValidationError   `json:"errors,omitempty"`
	Warnings []ValidationWarning `json:"warnings,omitempty"`
}

// ValidationError flags a phrase that failed validation outright.
type ValidationError struct {
	PhraseIndex int    `json:"phrase_index"`
	ErrorType   string `json:"error_type"`
	Message     string `json:"message"`
}

// ValidationWarning flags a phrase worth a client's attention without
// failing the chunk.
type ValidationWarning struct {
	PhraseIndex int    `json:"phrase_index"`
	WarningType string `json:"warning_type"`
	Message     string `json:"message"`
}

// DebugInfo carries engine and normalization diagnostics, populated
// only when debug metadata is requested.
type DebugInfo struct {
	TTSEngine            string  `json:"tts_engine"`
	TextLengthOriginal   int     `json:"text_length_original"`
	TextLengthNormalized int     `json:"text_length_normalized"`
	NormalizationChanges int     `json:"normalization_changes"`
	PhraseCount          int     `json:"phrase_count"`
	TotalDurationMs      float64 `json:"total_duration_ms"`
}

// Build computes a ChunkMetadata from the synthesized audio bytes and
// the text that produced them. Phrase durations are assigned by
// character-weighted share of the chunk's total audio duration: a
// phrase with twice the characters of another gets roughly twice the
// time, which is a reasonable approximation without per-phrase
// alignment from the synthesis engine.
func Build(audioBytes []byte, text string, chunkIndex int, startOffsetMs float64) (ChunkMetadata, error) {
	durationMs, err := wavutil.Duration(audioBytes)
	if err != nil {
		return ChunkMetadata{}, err
	}

	phraseTexts := segmentPhrases(text)

	totalChars := 0
	for _, p := range phraseTexts {
		totalChars += len(p)
	}

	phrases := make([]PhraseMetadata, 0, len(phraseTexts))
	cumulative := 0.0

	for _, phraseText := range phraseTexts {
		weight := 0.0
		if totalChars > 0 {
			weight = float64(len(phraseText)) / float64(totalChars)
		}

		phraseDuration := durationMs * weight

		phrases = append(phrases, PhraseMetadata{
			Text:       phraseText,
			Words:      segmentWords(phraseText),
			StartMs:    cumulative,
			DurationMs: phraseDuration,
		})

		cumulative += phraseDuration
	}

	return ChunkMetadata{
		ChunkIndex:    chunkIndex,
		Text:          text,
		Phrases:       phrases,
		DurationMs:    durationMs,
		StartOffsetMs: startOffsetMs,
	}, nil
}

// apiVersion is the value stamped into ChunkMetadata.Version by Enrich.
const apiVersion = "1.0"

// Enrich attaches the optional diagnostic fields spec.md's terser
// ChunkMetadata definition omits: the version tag, a pre-normalization
// back-reference, a phrase validation pass, and — only when debug is
// true — engine/normalization debug counters. Callers enable debug via
// the TTS_DEBUG_METADATA=1 environment variable; it is never on by
// default.
func Enrich(cm *ChunkMetadata, originalText string, engineName string, normalizationChanges int, debug bool) {
	cm.Version = apiVersion
	cm.OriginalText = originalText

	validation := Validate(cm)
	cm.Validation = &validation

	if !debug {
		return
	}

	cm.DebugInfo = &DebugInfo{
		TTSEngine:            engineName,
		TextLengthOriginal:   len(originalText),
		TextLengthNormalized: len(cm.Text),
		NormalizationChanges: normalizationChanges,
		PhraseCount:          len(cm.Phrases),
		TotalDurationMs:      cm.DurationMs,
	}
}

// Validate flags phrases with no audible content (empty after
// trimming) as errors and unusually long phrases as warnings, mirroring
// the sanity checks the original metadata builder ran before handing a
// chunk to a client.
func Validate(cm *ChunkMetadata) ValidationResult {
	const longPhraseWords = 20

	result := ValidationResult{Valid: true}

	for i, phrase := range cm.Phrases {
		if strings.TrimSpace(phrase.Text) == "" {
			result.Valid = false
			result.Errors = append(result.Errors, ValidationError{
				PhraseIndex: i,
				ErrorType:   "empty_phrase",
				Message:     "phrase has no audible text",
			})

			continue
		}

		if len(phrase.Words) > longPhraseWords {
			result.Warnings = append(result.Warnings, ValidationWarning{
				PhraseIndex: i,
				WarningType: "long_phrase",
				Message:     "phrase exceeds the usual word-count window",
			})
		}
	}

	return result
}

// segmentWords splits text on whitespace, preserving punctuation
// attached to words.
func segmentWords(text string) []string {
	return strings.Fields(text)
}

// segmentPhrases splits text into sentences on '.', '!', '?', then
// breaks any sentence longer than maxPhraseWords words into
// fixed-size word groups.
func segmentPhrases(text string) []string {
	sentences := strings.FieldsFunc(text, func(r rune) bool {
		return r == '.' || r == '!' || r == '?'
	})

	phrases := make([]string, 0, len(sentences))

	for _, sentence := range sentences {
		sentence = strings.TrimSpace(sentence)
		if sentence == "" {
			continue
		}

		words := segmentWords(sentence)
		if len(words) <= maxPhraseWords {
			phrases = append(phrases, sentence)

			continue
		}

		for start := 0; start < len(words); start += maxPhraseWords {
			end := min(start+maxPhraseWords, len(words))
			phrases = append(phrases, strings.Join(words[start:end], " "))
		}
	}

	return phrases
}
