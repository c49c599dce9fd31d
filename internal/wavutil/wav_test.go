package wavutil_test

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/book-expert/tts-gateway/internal/wavutil"
)

// buildPCM16 constructs a minimal 16-bit PCM mono/stereo WAV file with
// silent samples, used as a fixture across the tests below.
func buildPCM16(sampleRate uint32, channels uint16, frames int) []byte {
	numSamples := frames * int(channels)
	data := make([]byte, numSamples*2)

	byteRate := sampleRate * uint32(channels) * 2
	blockAlign := channels * 2

	header := make([]byte, 44)
	copy(header[0:4], "RIFF")
	binary.LittleEndian.PutUint32(header[4:8], uint32(36+len(data)))
	copy(header[8:12], "WAVE")
	copy(header[12:16], "fmt ")
	binary.LittleEndian.PutUint32(header[16:20], 16)
	binary.LittleEndian.PutUint16(header[20:22], 1) // PCM
	binary.LittleEndian.PutUint16(header[22:24], channels)
	binary.LittleEndian.PutUint32(header[24:28], sampleRate)
	binary.LittleEndian.PutUint32(header[28:32], byteRate)
	binary.LittleEndian.PutUint16(header[32:34], blockAlign)
	binary.LittleEndian.PutUint16(header[34:36], 16)
	copy(header[36:40], "data")
	binary.LittleEndian.PutUint32(header[40:44], uint32(len(data)))

	return append(header, data...)
}

func TestDurationMono(t *testing.T) {
	t.Parallel()

	wav := buildPCM16(24000, 1, 24000)

	got, err := wavutil.Duration(wav)
	if err != nil {
		t.Fatalf("Duration: %v", err)
	}

	if math.Abs(got-1000.0) > 1.0 {
		t.Errorf("got %v ms, want ~1000ms", got)
	}
}

func TestDurationStereo(t *testing.T) {
	t.Parallel()

	wav := buildPCM16(24000, 2, 24000)

	got, err := wavutil.Duration(wav)
	if err != nil {
		t.Fatalf("Duration: %v", err)
	}

	if math.Abs(got-1000.0) > 1.0 {
		t.Errorf("got %v ms, want ~1000ms", got)
	}
}

func TestDurationVariousSampleRates(t *testing.T) {
	t.Parallel()

	for _, rate := range []uint32{8000, 16000, 44100, 48000} {
		wav := buildPCM16(rate, 1, int(rate))

		got, err := wavutil.Duration(wav)
		if err != nil {
			t.Fatalf("Duration at %dHz: %v", rate, err)
		}

		if math.Abs(got-1000.0) > 1.0 {
			t.Errorf("rate %d: got %v ms, want ~1000ms", rate, got)
		}
	}
}

func TestDurationHalfSecond(t *testing.T) {
	t.Parallel()

	wav := buildPCM16(24000, 1, 12000)

	got, err := wavutil.Duration(wav)
	if err != nil {
		t.Fatalf("Duration: %v", err)
	}

	if math.Abs(got-500.0) > 1.0 {
		t.Errorf("got %v ms, want ~500ms", got)
	}
}

func TestDurationInvalidData(t *testing.T) {
	t.Parallel()

	if _, err := wavutil.Duration(make([]byte, 100)); err == nil {
		t.Error("expected error for invalid WAV data")
	}
}

func TestDurationEmptyData(t *testing.T) {
	t.Parallel()

	if _, err := wavutil.Duration(nil); err == nil {
		t.Error("expected error for empty data")
	}
}

func TestDurationMultiChannel(t *testing.T) {
	t.Parallel()

	wav := buildPCM16(48000, 6, 48000)

	got, err := wavutil.Duration(wav)
	if err != nil {
		t.Fatalf("Duration: %v", err)
	}

	if math.Abs(got-1000.0) > 1.0 {
		t.Errorf("got %v ms, want ~1000ms", got)
	}
}

func TestConcatenateRejectsEmpty(t *testing.T) {
	t.Parallel()

	if _, err := wavutil.Concatenate(nil); err == nil {
		t.Error("expected error for empty input")
	}
}

func TestConcatenateSingleReturnsAsIs(t *testing.T) {
	t.Parallel()

	wav := buildPCM16(24000, 1, 100)

	got, err := wavutil.Concatenate([][]byte{wav})
	if err != nil {
		t.Fatalf("Concatenate: %v", err)
	}

	if string(got) != string(wav) {
		t.Error("single-element concatenate should return the input unchanged")
	}
}

func TestConcatenateCombinesDuration(t *testing.T) {
	t.Parallel()

	first := buildPCM16(24000, 1, 24000)
	second := buildPCM16(24000, 1, 12000)

	combined, err := wavutil.Concatenate([][]byte{first, second})
	if err != nil {
		t.Fatalf("Concatenate: %v", err)
	}

	got, err := wavutil.Duration(combined)
	if err != nil {
		t.Fatalf("Duration of combined: %v", err)
	}

	if math.Abs(got-1500.0) > 1.0 {
		t.Errorf("got %v ms, want ~1500ms", got)
	}
}

func TestConcatenateRejectsMismatchedSpec(t *testing.T) {
	t.Parallel()

	mono := buildPCM16(24000, 1, 100)
	stereo := buildPCM16(24000, 2, 100)

	if _, err := wavutil.Concatenate([][]byte{mono, stereo}); err == nil {
		t.Error("expected error for mismatched specs")
	}
}
