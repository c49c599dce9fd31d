// Package wavutil reads and writes the minimal subset of the RIFF/WAVE
// container format the synthesis engine produces: a single fmt chunk
// (PCM integer or IEEE float samples) followed by a single data chunk.
// No third-party WAV codec is used here; see the package's design
// notes for why a hand-rolled reader/writer was chosen instead.
package wavutil

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// SampleFormat identifies how data-chunk bytes decode into samples.
type SampleFormat int

// Sample formats supported by the synthesis engine's WAV output.
const (
	FormatInt SampleFormat = iota
	FormatFloat
)

const (
	audioFormatPCM   uint16 = 1
	audioFormatFloat uint16 = 3

	riffHeaderSize = 44
)

// Spec describes a WAV file's audio format.
type Spec struct {
	Channels      uint16
	SampleRate    uint32
	BitsPerSample uint16
	Format        SampleFormat
}

// parsed is a decoded WAV file: its format spec and the raw
// little-endian sample bytes from its data chunk.
type parsed struct {
	spec Spec
	data []byte
}

// parse walks a WAV file's chunks, extracting the fmt and data chunks.
// Chunks besides fmt and data (e.g. LIST, fact) are skipped.
func parse(wav []byte) (parsed, error) {
	if len(wav) < 12 || string(wav[0:4]) != "RIFF" || string(wav[8:12]) != "WAVE" {
		return parsed{}, errors.New("wavutil: not a RIFF/WAVE file")
	}

	var (
		spec              Spec
		data              []byte
		haveFmt, haveData bool
	)

	offset := 12
	for offset+8 <= len(wav) {
		chunkID := string(wav[offset : offset+4])
		chunkSize := binary.LittleEndian.Uint32(wav[offset+4 : offset+8])
		bodyStart := offset + 8
		bodyEnd := bodyStart + int(chunkSize)

		if bodyEnd > len(wav) {
			return parsed{}, errors.New("wavutil: truncated chunk")
		}

		switch chunkID {
		case "fmt ":
			s, err := parseFmtChunk(wav[bodyStart:bodyEnd])
			if err != nil {
				return parsed{}, err
			}

			spec = s
			haveFmt = true
		case "data":
			data = wav[bodyStart:bodyEnd]
			haveData = true
		}

		offset = bodyEnd
		if chunkSize%2 == 1 {
			offset++ // chunks are word-aligned; odd-sized bodies carry a pad byte
		}
	}

	if !haveFmt {
		return parsed{}, errors.New("wavutil: missing fmt chunk")
	}

	if !haveData {
		return parsed{}, errors.New("wavutil: missing data chunk")
	}

	return parsed{spec: spec, data: data}, nil
}

func parseFmtChunk(body []byte) (Spec, error) {
	if len(body) < 16 {
		return Spec{}, errors.New("wavutil: fmt chunk too small")
	}

	audioFormat := binary.LittleEndian.Uint16(body[0:2])

	var format SampleFormat

	switch audioFormat {
	case audioFormatPCM:
		format = FormatInt
	case audioFormatFloat:
		format = FormatFloat
	default:
		return Spec{}, fmt.Errorf("wavutil: unsupported audio format code %d", audioFormat)
	}

	return Spec{
		Channels:      binary.LittleEndian.Uint16(body[2:4]),
		SampleRate:    binary.LittleEndian.Uint32(body[4:8]),
		BitsPerSample: binary.LittleEndian.Uint16(body[14:16]),
		Format:        format,
	}, nil
}

// Duration returns the duration, in milliseconds, of the WAV audio in
// wav, computed from the fmt chunk's channel count and sample rate and
// the data chunk's byte length.
func Duration(wav []byte) (float64, error) {
	p, err := parse(wav)
	if err != nil {
		return 0, err
	}

	return duration(p)
}

func duration(p parsed) (float64, error) {
	bytesPerSample := int(p.spec.BitsPerSample) / 8
	if bytesPerSample == 0 || p.spec.Channels == 0 || p.spec.SampleRate == 0 {
		return 0, errors.New("wavutil: invalid spec for duration calculation")
	}

	numSamples := float64(len(p.data) / bytesPerSample)
	numFrames := numSamples / float64(p.spec.Channels)

	return (numFrames / float64(p.spec.SampleRate)) * 1000.0, nil
}

// Concatenate joins multiple WAV byte buffers into one, in order. An
// empty slice is an error; a single-element slice is returned as-is.
// All inputs after the first must share the first's spec exactly
// (channels, sample rate, bit depth, sample format); a mismatch is an
// error rather than a best-effort resample.
func Concatenate(wavs [][]byte) ([]byte, error) {
	if len(wavs) == 0 {
		return nil, errors.New("wavutil: no audio files to concatenate")
	}

	if len(wavs) == 1 {
		return wavs[0], nil
	}

	first, err := parse(wavs[0])
	if err != nil {
		return nil, err
	}

	if err := checkSupportedSpec(first.spec); err != nil {
		return nil, err
	}

	combined := make([]byte, 0, len(first.data)*len(wavs))
	combined = append(combined, first.data...)

	for i := 1; i < len(wavs); i++ {
		p, err := parse(wavs[i])
		if err != nil {
			return nil, err
		}

		if p.spec != first.spec {
			return nil, fmt.Errorf("wavutil: WAV file %d has a different spec", i)
		}

		combined = append(combined, p.data...)
	}

	return encode(first.spec, combined), nil
}

func checkSupportedSpec(spec Spec) error {
	switch spec.Format {
	case FormatFloat:
		if spec.BitsPerSample != 32 {
			return fmt.Errorf("wavutil: unsupported float bit depth: %d", spec.BitsPerSample)
		}
	case FormatInt:
		if spec.BitsPerSample != 16 && spec.BitsPerSample != 32 {
			return fmt.Errorf("wavutil: unsupported bits per sample: %d", spec.BitsPerSample)
		}
	default:
		return fmt.Errorf("wavutil: unknown sample format %d", spec.Format)
	}

	return nil
}

// encode writes a canonical 44-byte RIFF/WAVE header followed by data.
func encode(spec Spec, data []byte) []byte {
	byteRate := spec.SampleRate * uint32(spec.Channels) * uint32(spec.BitsPerSample) / 8
	blockAlign := spec.Channels * spec.BitsPerSample / 8

	audioFormat := audioFormatPCM
	if spec.Format == FormatFloat {
		audioFormat = audioFormatFloat
	}

	out := make([]byte, riffHeaderSize+len(data))

	copy(out[0:4], "RIFF")
	binary.LittleEndian.PutUint32(out[4:8], uint32(36+len(data))) //nolint:gosec // data length from []byte, not overflow-prone here
	copy(out[8:12], "WAVE")
	copy(out[12:16], "fmt ")
	binary.LittleEndian.PutUint32(out[16:20], 16)
	binary.LittleEndian.PutUint16(out[20:22], audioFormat)
	binary.LittleEndian.PutUint16(out[22:24], spec.Channels)
	binary.LittleEndian.PutUint32(out[24:28], spec.SampleRate)
	binary.LittleEndian.PutUint32(out[28:32], byteRate)
	binary.LittleEndian.PutUint16(out[32:34], blockAlign)
	binary.LittleEndian.PutUint16(out[34:36], spec.BitsPerSample)
	copy(out[36:40], "data")
	binary.LittleEndian.PutUint32(out[40:44], uint32(len(data))) //nolint:gosec // see above
	copy(out[riffHeaderSize:], data)

	return out
}
