package audio

import "testing"

func TestParseMIME(t *testing.T) {
	tests := []struct {
		name     string
		mimeType string
		wantBits int
		wantRate int
	}{
		{"canonical", "audio/L16;rate=24000", 16, 24000},
		{"other format", "audio/L24;rate=48000", 24, 48000},
		{"spaced parameters", "audio/L16; rate=44100", 16, 44100},
		{"rate case insensitive", "audio/L16;RATE=8000", 16, 8000},
		{"rate only", "rate=16000", 16, 16000},
		{"bits only", "audio/L8", 8, 24000},
		{"unrecognized container", "audio/ogg", 16, 24000},
		{"empty string", "", 16, 24000},
		{"malformed rate", "audio/L16;rate=abc", 16, 24000},
		{"malformed bits", "audio/Lxx;rate=22050", 16, 22050},
		{"lowercase prefix not matched", "AUDIO/l16;rate=24000", 16, 24000},
		{"extra parameters ignored", "audio/L16;codec=pcm;rate=32000", 16, 32000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := ParseMIME(tt.mimeType)
			if d.BitsPerSample != tt.wantBits {
				t.Errorf("BitsPerSample = %d, want %d", d.BitsPerSample, tt.wantBits)
			}
			if d.SampleRate != tt.wantRate {
				t.Errorf("SampleRate = %d, want %d", d.SampleRate, tt.wantRate)
			}
		})
	}
}

func TestDefaultDescriptor(t *testing.T) {
	d := DefaultDescriptor()
	if d.BitsPerSample != 16 || d.SampleRate != 24000 {
		t.Errorf("DefaultDescriptor() = %+v, want 16-bit 24000 Hz", d)
	}
}
