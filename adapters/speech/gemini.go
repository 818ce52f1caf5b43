package speech

import (
	"context"
	"iter"
	"os"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/voxprep/interview-server/domain/repositories"
)

const (
	defaultTTSModel = "gemini-2.5-pro-preview-tts"
	// defaultVoice is the prebuilt voice this service commits to. Synthesis
	// fails rather than silently switching to another voice.
	defaultVoice = "Charon"
)

// GeminiSpeechConfig holds configuration for the GeminiSpeech adapter
// Optional fields with defaults:
// - Model: the TTS model to use (default: "gemini-2.5-pro-preview-tts")
// - Voice: the prebuilt voice name (default: "Charon")
type GeminiSpeechConfig struct {
	Model string
	Voice string
}

// NewGeminiSpeechConfigFromEnv creates a GeminiSpeechConfig from environment variables
func NewGeminiSpeechConfigFromEnv() GeminiSpeechConfig {
	return GeminiSpeechConfig{
		Model: os.Getenv("GEMINI_TTS_MODEL"),
		Voice: os.Getenv("GEMINI_TTS_VOICE"),
	}
}

// GeminiSpeech implements the SpeechSynthesizer interface using Gemini's
// streaming TTS models.
type GeminiSpeech struct {
	client *genai.Client
	logger *zap.Logger
	model  string
	voice  string
}

// Ensure GeminiSpeech implements the SpeechSynthesizer interface
var _ repositories.SpeechSynthesizer = (*GeminiSpeech)(nil)

// NewGeminiSpeech creates a new Gemini speech synthesizer
func NewGeminiSpeech(client *genai.Client, config GeminiSpeechConfig, logger *zap.Logger) *GeminiSpeech {
	model := config.Model
	if model == "" {
		model = defaultTTSModel
		logger.Info("Using default TTS model", zap.String("model", model))
	}

	voice := config.Voice
	if voice == "" {
		voice = defaultVoice
		logger.Info("Using default voice", zap.String("voice", voice))
	}

	return &GeminiSpeech{
		client: client,
		logger: logger,
		model:  model,
		voice:  voice,
	}
}

// Voice reports the fixed voice this synthesizer is bound to
func (g *GeminiSpeech) Voice() string {
	return g.voice
}

// StreamSpeech issues a streaming synthesis request with the fixed voice and
// maps each provider response onto a SpeechChunk. The speech config is passed
// on the streaming call itself so every chunk carries the configured voice.
func (g *GeminiSpeech) StreamSpeech(ctx context.Context, text string) iter.Seq2[repositories.SpeechChunk, error] {
	contents := []*genai.Content{
		genai.NewContentFromText(text, genai.RoleUser),
	}

	config := &genai.GenerateContentConfig{
		Temperature:        genai.Ptr(float32(1)),
		ResponseModalities: []string{"AUDIO"},
		SpeechConfig: &genai.SpeechConfig{
			VoiceConfig: &genai.VoiceConfig{
				PrebuiltVoiceConfig: &genai.PrebuiltVoiceConfig{
					VoiceName: g.voice,
				},
			},
		},
	}

	g.logger.Debug("Requesting speech stream",
		zap.String("model", g.model),
		zap.String("voice", g.voice))

	return func(yield func(repositories.SpeechChunk, error) bool) {
		for resp, err := range g.client.Models.GenerateContentStream(ctx, g.model, contents, config) {
			if err != nil {
				yield(repositories.SpeechChunk{}, err)
				return
			}
			if !yield(g.toChunk(resp), nil) {
				return
			}
		}
	}
}

// toChunk reduces one streaming response to the tagged chunk variant.
func (g *GeminiSpeech) toChunk(resp *genai.GenerateContentResponse) repositories.SpeechChunk {
	if len(resp.Candidates) == 0 ||
		resp.Candidates[0].Content == nil ||
		len(resp.Candidates[0].Content.Parts) == 0 {
		return repositories.SpeechChunk{Kind: repositories.ChunkEmpty}
	}

	part := resp.Candidates[0].Content.Parts[0]
	if part.InlineData != nil && len(part.InlineData.Data) > 0 {
		return repositories.SpeechChunk{
			Kind:     repositories.ChunkAudio,
			Data:     part.InlineData.Data,
			MIMEType: part.InlineData.MIMEType,
		}
	}
	if part.Text != "" {
		return repositories.SpeechChunk{
			Kind: repositories.ChunkText,
			Text: part.Text,
		}
	}

	return repositories.SpeechChunk{Kind: repositories.ChunkEmpty}
}
