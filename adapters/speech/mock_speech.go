package speech

import (
	"context"
	"iter"

	"go.uber.org/zap"

	"github.com/voxprep/interview-server/domain/repositories"
)

// MockSpeech is a scripted SpeechSynthesizer for tests and development. It
// replays the configured chunks in order and then, if Err is set, terminates
// the stream with that error.
type MockSpeech struct {
	Chunks     []repositories.SpeechChunk
	Err        error
	FixedVoice string

	// Requests records the texts passed to StreamSpeech, in order.
	Requests []string

	logger *zap.Logger
}

// Ensure MockSpeech implements the SpeechSynthesizer interface
var _ repositories.SpeechSynthesizer = (*MockSpeech)(nil)

// NewMockSpeech creates a new mock speech synthesizer
func NewMockSpeech(logger *zap.Logger) *MockSpeech {
	return &MockSpeech{
		FixedVoice: "Charon",
		logger:     logger,
	}
}

// Voice implements repositories.SpeechSynthesizer
func (m *MockSpeech) Voice() string {
	return m.FixedVoice
}

// StreamSpeech implements repositories.SpeechSynthesizer
func (m *MockSpeech) StreamSpeech(ctx context.Context, text string) iter.Seq2[repositories.SpeechChunk, error] {
	m.Requests = append(m.Requests, text)
	m.logger.Info("Mock speech stream requested",
		zap.String("voice", m.FixedVoice),
		zap.Int("scriptedChunks", len(m.Chunks)))

	return func(yield func(repositories.SpeechChunk, error) bool) {
		for _, chunk := range m.Chunks {
			if !yield(chunk, nil) {
				return
			}
		}
		if m.Err != nil {
			yield(repositories.SpeechChunk{}, m.Err)
		}
	}
}
