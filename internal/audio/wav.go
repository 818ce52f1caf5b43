package audio

import "encoding/binary"

// headerSize is the canonical PCM WAV header length: no extension chunks.
const headerSize = 44

// EncodeWAV wraps raw PCM payload in a self-describing RIFF/WAVE container.
// The topology is fixed: one channel, linear PCM (format code 1). The payload
// bytes are appended unmodified after the 44-byte header.
func EncodeWAV(payload []byte, d Descriptor) []byte {
	bytesPerSample := d.BitsPerSample / 8
	blockAlign := 1 * bytesPerSample // mono
	byteRate := d.SampleRate * blockAlign
	dataSize := len(payload)
	chunkSize := 36 + dataSize // total file size minus the first 8 bytes

	out := make([]byte, headerSize, headerSize+dataSize)
	copy(out[0:4], "RIFF")
	binary.LittleEndian.PutUint32(out[4:8], uint32(chunkSize))
	copy(out[8:12], "WAVE")
	copy(out[12:16], "fmt ")
	binary.LittleEndian.PutUint32(out[16:20], 16) // fmt chunk size for PCM
	binary.LittleEndian.PutUint16(out[20:22], 1)  // PCM format code
	binary.LittleEndian.PutUint16(out[22:24], 1)  // channels
	binary.LittleEndian.PutUint32(out[24:28], uint32(d.SampleRate))
	binary.LittleEndian.PutUint32(out[28:32], uint32(byteRate))
	binary.LittleEndian.PutUint16(out[32:34], uint16(blockAlign))
	binary.LittleEndian.PutUint16(out[34:36], uint16(d.BitsPerSample))
	copy(out[36:40], "data")
	binary.LittleEndian.PutUint32(out[40:44], uint32(dataSize))

	return append(out, payload...)
}

// Silence produces a valid container holding the given duration of digital
// silence at the descriptor's format. Used as a degraded-but-playable
// response when true synthesis output is unavailable.
func Silence(seconds int, d Descriptor) []byte {
	samples := d.SampleRate * seconds
	payload := make([]byte, samples*(d.BitsPerSample/8))
	return EncodeWAV(payload, d)
}
