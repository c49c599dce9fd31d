// Package chunk splits normalized text into pieces small enough for
// low-latency synthesis, at sentence boundaries when possible, at
// clause boundaries when a sentence alone is too long, and at word
// boundaries as a last resort.
package chunk

import (
	"strings"

	"github.com/book-expert/tts-gateway/internal/textproc/sentence"
)

// DefaultMaxChunkSize is the default maximum characters per chunk,
// chosen for low-latency streaming (roughly one to two sentences).
const DefaultMaxChunkSize = 200

// DefaultMinChunkSize is the default minimum characters per chunk. It
// is carried in Config, but Split does not read it: short chunks are
// not merged or padded.
const DefaultMinChunkSize = 50

// Config controls chunk sizing.
type Config struct {
	MaxChunkSize int
	MinChunkSize int
}

// DefaultConfig returns the default chunking configuration.
func DefaultConfig() Config {
	return Config{MaxChunkSize: DefaultMaxChunkSize, MinChunkSize: DefaultMinChunkSize}
}

// Split breaks text into chunks at sentence boundaries, respecting
// config.MaxChunkSize. Oversized sentences are split at clause
// boundaries (commas, semicolons), and oversized clauses are split at
// word boundaries.
func Split(text string, config Config) []string {
	if len(text) <= config.MaxChunkSize {
		return []string{text}
	}

	var (
		chunks       []string
		currentChunk strings.Builder
	)

	sentences := sentence.Split(text)

	for _, sent := range sentences {
		sentenceLen := len(sent)

		if sentenceLen > config.MaxChunkSize {
			if currentChunk.Len() > 0 {
				chunks = append(chunks, strings.TrimSpace(currentChunk.String()))
				currentChunk.Reset()
			}

			chunks = append(chunks, splitLongSentence(sent, config.MaxChunkSize)...)

			continue
		}

		if currentChunk.Len()+1+sentenceLen > config.MaxChunkSize && currentChunk.Len() > 0 {
			chunks = append(chunks, strings.TrimSpace(currentChunk.String()))
			currentChunk.Reset()
			currentChunk.WriteString(sent)
		} else {
			if currentChunk.Len() > 0 {
				currentChunk.WriteByte(' ')
			}

			currentChunk.WriteString(sent)
		}
	}

	if currentChunk.Len() > 0 {
		chunks = append(chunks, strings.TrimSpace(currentChunk.String()))
	}

	if len(chunks) == 0 {
		chunks = append(chunks, text)
	}

	return chunks
}

// splitLongSentence splits one oversized sentence at clause
// boundaries (commas and semicolons), reattaching a trailing comma to
// all but the last clause, then hard-splits any clause that is still
// too long.
func splitLongSentence(text string, maxSize int) []string {
	rawParts := strings.FieldsFunc(text, func(r rune) bool { return r == ',' || r == ';' })

	var (
		chunks  []string
		current strings.Builder
	)

	for i, part := range rawParts {
		partWithPunct := strings.TrimSpace(part)
		if i < len(rawParts)-1 {
			partWithPunct += ","
		}

		if current.Len()+len(partWithPunct) > maxSize && current.Len() > 0 {
			chunks = append(chunks, strings.TrimSpace(current.String()))
			current.Reset()
			current.WriteString(partWithPunct)
		} else {
			if current.Len() > 0 {
				current.WriteByte(' ')
			}

			current.WriteString(partWithPunct)
		}
	}

	if current.Len() > 0 {
		chunks = append(chunks, strings.TrimSpace(current.String()))
	}

	finalChunks := make([]string, 0, len(chunks))

	for _, c := range chunks {
		if len(c) > maxSize {
			finalChunks = append(finalChunks, hardSplitByWords(c, maxSize)...)
		} else {
			finalChunks = append(finalChunks, c)
		}
	}

	return finalChunks
}

// hardSplitByWords is the last resort: split on whitespace when a
// clause has no punctuation to split at.
func hardSplitByWords(text string, maxSize int) []string {
	var (
		chunks  []string
		current strings.Builder
	)

	for _, word := range strings.Fields(text) {
		if current.Len()+len(word)+1 > maxSize && current.Len() > 0 {
			chunks = append(chunks, strings.TrimSpace(current.String()))
			current.Reset()
			current.WriteString(word)
		} else {
			if current.Len() > 0 {
				current.WriteByte(' ')
			}

			current.WriteString(word)
		}
	}

	if current.Len() > 0 {
		chunks = append(chunks, strings.TrimSpace(current.String()))
	}

	return chunks
}
