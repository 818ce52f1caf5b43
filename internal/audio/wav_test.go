package audio

import (
	"bytes"
	"encoding/binary"
	"testing"
)

func TestEncodeWAVHeader(t *testing.T) {
	payload := make([]byte, 48000)
	out := EncodeWAV(payload, Descriptor{BitsPerSample: 16, SampleRate: 24000})

	if len(out) != 44+48000 {
		t.Fatalf("container length = %d, want %d", len(out), 44+48000)
	}
	if !bytes.Equal(out[0:4], []byte("RIFF")) {
		t.Errorf("bytes 0-3 = %q, want RIFF", out[0:4])
	}
	if !bytes.Equal(out[8:12], []byte("WAVE")) {
		t.Errorf("bytes 8-11 = %q, want WAVE", out[8:12])
	}
	if !bytes.Equal(out[12:16], []byte("fmt ")) {
		t.Errorf("bytes 12-15 = %q, want 'fmt '", out[12:16])
	}
	if !bytes.Equal(out[36:40], []byte("data")) {
		t.Errorf("bytes 36-39 = %q, want data", out[36:40])
	}

	if got := binary.LittleEndian.Uint32(out[4:8]); got != 36+48000 {
		t.Errorf("chunk size = %d, want %d", got, 36+48000)
	}
	if got := binary.LittleEndian.Uint32(out[16:20]); got != 16 {
		t.Errorf("fmt chunk size = %d, want 16", got)
	}
	if got := binary.LittleEndian.Uint16(out[20:22]); got != 1 {
		t.Errorf("format code = %d, want 1 (PCM)", got)
	}
	if got := binary.LittleEndian.Uint16(out[22:24]); got != 1 {
		t.Errorf("channels = %d, want 1", got)
	}
	if got := binary.LittleEndian.Uint32(out[24:28]); got != 24000 {
		t.Errorf("sample rate = %d, want 24000", got)
	}
	if got := binary.LittleEndian.Uint32(out[28:32]); got != 48000 {
		t.Errorf("byte rate = %d, want 48000", got)
	}
	if got := binary.LittleEndian.Uint16(out[32:34]); got != 2 {
		t.Errorf("block align = %d, want 2", got)
	}
	if got := binary.LittleEndian.Uint16(out[34:36]); got != 16 {
		t.Errorf("bits per sample = %d, want 16", got)
	}
	if got := binary.LittleEndian.Uint32(out[40:44]); got != 48000 {
		t.Errorf("data size = %d, want 48000", got)
	}
}

func TestEncodeWAVSizing(t *testing.T) {
	// Declared sizes must track the payload exactly for any payload length.
	for _, n := range []int{0, 1, 2, 1023, 48000} {
		payload := bytes.Repeat([]byte{0x7f}, n)
		out := EncodeWAV(payload, Descriptor{BitsPerSample: 24, SampleRate: 48000})

		if got := binary.LittleEndian.Uint32(out[40:44]); got != uint32(n) {
			t.Errorf("payload %d: data size field = %d", n, got)
		}
		if got := binary.LittleEndian.Uint32(out[4:8]); got != uint32(36+n) {
			t.Errorf("payload %d: chunk size field = %d", n, got)
		}
		if !bytes.Equal(out[44:], payload) {
			t.Errorf("payload %d: payload bytes were modified", n)
		}
	}
}

func TestEncodeWAVDerivedFields(t *testing.T) {
	out := EncodeWAV(nil, Descriptor{BitsPerSample: 24, SampleRate: 48000})

	if got := binary.LittleEndian.Uint16(out[32:34]); got != 3 {
		t.Errorf("block align = %d, want 3", got)
	}
	if got := binary.LittleEndian.Uint32(out[28:32]); got != 144000 {
		t.Errorf("byte rate = %d, want 144000", got)
	}
}

func TestSilence(t *testing.T) {
	out := Silence(1, DefaultDescriptor())

	if len(out) != 44+48000 {
		t.Fatalf("silent container length = %d, want %d", len(out), 44+48000)
	}
	for i, b := range out[44:] {
		if b != 0 {
			t.Fatalf("sample byte %d = %#x, want zero", i, b)
		}
	}
	if got := binary.LittleEndian.Uint32(out[40:44]); got != 48000 {
		t.Errorf("data size = %d, want 48000", got)
	}
}
