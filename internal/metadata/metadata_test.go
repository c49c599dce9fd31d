package metadata_test

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/book-expert/tts-gateway/internal/metadata"
)

// buildPCM16 constructs a minimal 16-bit PCM mono WAV file with silent
// samples, used as a fixture below.
func buildPCM16(sampleRate uint32, frames int) []byte {
	data := make([]byte, frames*2)

	header := make([]byte, 44)
	copy(header[0:4], "RIFF")
	binary.LittleEndian.PutUint32(header[4:8], uint32(36+len(data)))
	copy(header[8:12], "WAVE")
	copy(header[12:16], "fmt ")
	binary.LittleEndian.PutUint32(header[16:20], 16)
	binary.LittleEndian.PutUint16(header[20:22], 1)
	binary.LittleEndian.PutUint16(header[22:24], 1)
	binary.LittleEndian.PutUint32(header[24:28], sampleRate)
	binary.LittleEndian.PutUint32(header[28:32], sampleRate*2)
	binary.LittleEndian.PutUint16(header[32:34], 2)
	binary.LittleEndian.PutUint16(header[34:36], 16)
	copy(header[36:40], "data")
	binary.LittleEndian.PutUint32(header[40:44], uint32(len(data)))

	return append(header, data...)
}

func TestBuildSplitsShortSentencesAsIs(t *testing.T) {
	t.Parallel()

	wav := buildPCM16(24000, 24000)

	got, err := metadata.Build(wav, "Hello world. This is great!", 0, 0)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	if len(got.Phrases) != 2 {
		t.Fatalf("got %d phrases, want 2: %+v", len(got.Phrases), got.Phrases)
	}

	if got.Phrases[0].Text != "Hello world" {
		t.Errorf("phrase 0: got %q, want %q", got.Phrases[0].Text, "Hello world")
	}

	if got.Phrases[1].Text != "This is great" {
		t.Errorf("phrase 1: got %q, want %q", got.Phrases[1].Text, "This is great")
	}
}

func TestBuildSplitsLongSentenceIntoFiveWordGroups(t *testing.T) {
	t.Parallel()

	wav := buildPCM16(24000, 24000)
	text := "This is a very long sentence with more than five words in it."

	got, err := metadata.Build(wav, text, 0, 0)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	want := []string{
		"This is a very long",
		"sentence with more than five",
		"words in it",
	}

	if len(got.Phrases) != len(want) {
		t.Fatalf("got %d phrases, want %d: %+v", len(got.Phrases), len(want), got.Phrases)
	}

	for i, w := range want {
		if got.Phrases[i].Text != w {
			t.Errorf("phrase %d: got %q, want %q", i, got.Phrases[i].Text, w)
		}
	}
}

func TestBuildDurationsAreCharacterWeightedAndSumToTotal(t *testing.T) {
	t.Parallel()

	wav := buildPCM16(24000, 24000)

	got, err := metadata.Build(wav, "Hi there. This is a much longer phrase by far!", 2, 500)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	if got.ChunkIndex != 2 {
		t.Errorf("got chunk index %d, want 2", got.ChunkIndex)
	}

	if got.StartOffsetMs != 500 {
		t.Errorf("got start offset %v, want 500", got.StartOffsetMs)
	}

	sum := 0.0
	for _, p := range got.Phrases {
		sum += p.DurationMs
	}

	if math.Abs(sum-got.DurationMs) > 0.01 {
		t.Errorf("phrase durations sum to %v, want %v", sum, got.DurationMs)
	}

	if got.Phrases[1].DurationMs <= got.Phrases[0].DurationMs {
		t.Errorf("expected the longer phrase to get more time: %+v", got.Phrases)
	}
}

func TestBuildShortSentenceSingleShortPhrase(t *testing.T) {
	t.Parallel()

	wav := buildPCM16(24000, 12000)

	got, err := metadata.Build(wav, "Hello there!", 0, 0)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	if len(got.Phrases) != 1 {
		t.Fatalf("got %d phrases, want 1", len(got.Phrases))
	}

	if got.Phrases[0].Text != "Hello there" {
		t.Errorf("got %q, want %q", got.Phrases[0].Text, "Hello there")
	}
}

func TestEnrichSetsVersionAndOriginalTextButNotDebugInfoByDefault(t *testing.T) {
	t.Parallel()

	wav := buildPCM16(24000, 24000)

	got, err := metadata.Build(wav, "Hello world.", 0, 0)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	metadata.Enrich(&got, "Hello  world.", "kokoro", 1, false)

	if got.Version == "" {
		t.Error("expected Version to be set")
	}

	if got.OriginalText != "Hello  world." {
		t.Errorf("got OriginalText %q, want the pre-normalization text", got.OriginalText)
	}

	if got.Validation == nil || !got.Validation.Valid {
		t.Errorf("expected a valid ValidationResult, got %+v", got.Validation)
	}

	if got.DebugInfo != nil {
		t.Error("expected DebugInfo to stay nil when debug is false")
	}
}

func TestEnrichPopulatesDebugInfoWhenRequested(t *testing.T) {
	t.Parallel()

	wav := buildPCM16(24000, 24000)

	got, err := metadata.Build(wav, "Hello world.", 0, 0)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	metadata.Enrich(&got, "Hello world.", "kokoro", 0, true)

	if got.DebugInfo == nil {
		t.Fatal("expected DebugInfo to be populated")
	}

	if got.DebugInfo.TTSEngine != "kokoro" {
		t.Errorf("got engine %q, want %q", got.DebugInfo.TTSEngine, "kokoro")
	}

	if got.DebugInfo.PhraseCount != len(got.Phrases) {
		t.Errorf("got phrase count %d, want %d", got.DebugInfo.PhraseCount, len(got.Phrases))
	}
}

func TestBuildPropagatesDurationError(t *testing.T) {
	t.Parallel()

	if _, err := metadata.Build(make([]byte, 4), "hello", 0, 0); err == nil {
		t.Error("expected an error for invalid WAV data")
	}
}
