package usecase

import (
	"context"
	"errors"
	"iter"
	"strings"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/voxprep/interview-server/domain/repositories"
	"github.com/voxprep/interview-server/internal/audio"
)

// ErrEmptyText is returned when synthesis is requested for empty or
// whitespace-only text. Checked before any upstream call.
var ErrEmptyText = errors.New("synthesis text cannot be empty or whitespace only")

// Fallback tags how a synthesis result was produced, so callers can tell a
// degraded response apart from real provider audio without inspecting bytes.
type Fallback string

const (
	// FallbackNone means the audio came from the provider.
	FallbackNone Fallback = ""
	// FallbackSilence means a silent container substituted for missing or
	// failed provider output.
	FallbackSilence Fallback = "silence"
	// FallbackQuota means the provider's quota is exhausted. Audio is empty
	// and the caller must switch to a local TTS path. The fixed voice is
	// never substituted server-side.
	FallbackQuota Fallback = "quota"
)

// SpeechResult is the outcome of one synthesis call.
type SpeechResult struct {
	Audio  []byte
	Reason Fallback
}

// silenceSeconds is the duration of the degraded silent container.
const silenceSeconds = 1

// SpeechService turns text into a playable WAV container by driving the
// streaming provider, aggregating its chunks, and wrapping raw PCM in a
// RIFF/WAVE header.
type SpeechService struct {
	synthesizer repositories.SpeechSynthesizer
	logger      *zap.Logger
}

// NewSpeechService creates a new speech service
func NewSpeechService(synthesizer repositories.SpeechSynthesizer, logger *zap.Logger) *SpeechService {
	return &SpeechService{
		synthesizer: synthesizer,
		logger:      logger,
	}
}

// aggregatedAudio is the reduction of one provider chunk stream.
type aggregatedAudio struct {
	payload  []byte
	mimeType string // MIME type of the first payload-bearing chunk
}

// aggregate consumes the provider's chunk sequence front to back. Audio
// payloads are concatenated in arrival order; the first payload-bearing
// chunk's MIME type describes the whole stream and later chunks are assumed
// to share it. Text chunks are informational only. An empty payload is a
// valid outcome, not an error.
func (s *SpeechService) aggregate(stream iter.Seq2[repositories.SpeechChunk, error]) (aggregatedAudio, error) {
	var agg aggregatedAudio
	seenAudio := false
	chunkCount := 0

	for chunk, err := range stream {
		if err != nil {
			return agg, err
		}

		switch chunk.Kind {
		case repositories.ChunkAudio:
			agg.payload = append(agg.payload, chunk.Data...)
			if !seenAudio {
				agg.mimeType = chunk.MIMEType
				seenAudio = true
			}
			chunkCount++
			s.logger.Debug("Aggregated audio chunk",
				zap.Int("chunk", chunkCount),
				zap.Int("bytes", len(chunk.Data)),
				zap.String("mimeType", chunk.MIMEType))
		case repositories.ChunkText:
			s.logger.Info("Provider text note during synthesis",
				zap.String("text", chunk.Text))
		default:
			// Chunk carried no content. Skip.
		}
	}

	return agg, nil
}

// Synthesize generates speech for the given text with the service's fixed
// voice. On quota exhaustion the result carries zero-length audio and the
// quota reason; on an empty stream or a non-quota transport failure it
// carries a one-second silent container. No error path ever substitutes a
// different voice or synthesis backend.
func (s *SpeechService) Synthesize(ctx context.Context, text string) (SpeechResult, error) {
	if strings.TrimSpace(text) == "" {
		return SpeechResult{}, ErrEmptyText
	}

	s.logger.Info("Generating speech",
		zap.String("text", truncate(text, 50)),
		zap.String("voice", s.synthesizer.Voice()))

	agg, err := s.aggregate(s.synthesizer.StreamSpeech(ctx, text))
	if err != nil {
		if isQuotaExhausted(err) {
			s.logger.Warn("TTS quota exhausted, signaling caller to use local synthesis",
				zap.Error(err))
			return SpeechResult{Audio: []byte{}, Reason: FallbackQuota}, nil
		}

		s.logger.Error("Speech synthesis failed, substituting silence",
			zap.String("text", truncate(text, 50)),
			zap.Error(err))
		return s.silentFallback(), nil
	}

	if len(agg.payload) == 0 {
		s.logger.Warn("No audio data received from stream, substituting silence",
			zap.String("text", truncate(text, 50)),
			zap.String("mimeType", agg.mimeType))
		return s.silentFallback(), nil
	}

	result := agg.payload
	if !isPlayableContainer(agg.mimeType) {
		descriptor := audio.ParseMIME(agg.mimeType)
		result = audio.EncodeWAV(agg.payload, descriptor)
	}

	s.logger.Info("Speech generated",
		zap.Int("payloadBytes", len(agg.payload)),
		zap.Int("containerBytes", len(result)),
		zap.String("mimeType", agg.mimeType))

	return SpeechResult{Audio: result, Reason: FallbackNone}, nil
}

// silentFallback emits a valid but silent container at the default format.
func (s *SpeechService) silentFallback() SpeechResult {
	silence := audio.Silence(silenceSeconds, audio.DefaultDescriptor())
	s.logger.Info("Generated silent fallback container",
		zap.Int("bytes", len(silence)))
	return SpeechResult{Audio: silence, Reason: FallbackSilence}
}

// isPlayableContainer reports whether the MIME type already denotes a
// self-describing format that players accept without rewrapping.
func isPlayableContainer(mimeType string) bool {
	switch strings.ToLower(strings.TrimSpace(strings.Split(mimeType, ";")[0])) {
	case "audio/wav", "audio/x-wav", "audio/wave":
		return true
	}
	return false
}

// isQuotaExhausted matches the provider's rate/usage limit rejection, which
// must be handled differently from other transport failures.
func isQuotaExhausted(err error) bool {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		if apiErr.Code == 429 || apiErr.Status == "RESOURCE_EXHAUSTED" {
			return true
		}
	}

	msg := err.Error()
	return strings.Contains(msg, "429") ||
		strings.Contains(msg, "RESOURCE_EXHAUSTED") ||
		strings.Contains(strings.ToLower(msg), "quota")
}

// truncate shortens s for log output.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
