// Package audio implements the PCM audio pipeline: MIME descriptor parsing,
// WAV container synthesis, and silence generation.
package audio

import (
	"strconv"
	"strings"
)

const (
	// DefaultBitsPerSample is assumed when a MIME type does not declare one.
	DefaultBitsPerSample = 16
	// DefaultSampleRate is assumed when a MIME type does not declare one.
	DefaultSampleRate = 24000
)

// Descriptor governs how raw PCM bytes are interpreted.
type Descriptor struct {
	BitsPerSample int
	SampleRate    int
}

// DefaultDescriptor returns the 16-bit 24000 Hz descriptor used whenever the
// upstream format is unknown.
func DefaultDescriptor() Descriptor {
	return Descriptor{BitsPerSample: DefaultBitsPerSample, SampleRate: DefaultSampleRate}
}

// ParseMIME extracts bits per sample and sample rate from an audio MIME type
// such as "audio/L16;rate=24000". Parsing is permissive: segments that do not
// parse keep the defaults, and the function never fails. A malformed MIME
// string must not abort synthesis.
func ParseMIME(mimeType string) Descriptor {
	d := DefaultDescriptor()

	for _, param := range strings.Split(mimeType, ";") {
		param = strings.TrimSpace(param)
		switch {
		case strings.HasPrefix(strings.ToLower(param), "rate="):
			if rate, err := strconv.Atoi(param[len("rate="):]); err == nil {
				d.SampleRate = rate
			}
		case strings.HasPrefix(param, "audio/L"):
			if bits, err := strconv.Atoi(param[len("audio/L"):]); err == nil {
				d.BitsPerSample = bits
			}
		}
	}

	return d
}
