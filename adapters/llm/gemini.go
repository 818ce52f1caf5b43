package llm

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/voxprep/interview-server/domain/repositories"
)

const defaultModel = "gemini-2.0-flash"

// GeminiLLM implements the LargeLanguageModel interface using Google's Gemini API
type GeminiLLM struct {
	client *genai.Client
	logger *zap.Logger
	model  string
}

// Ensure GeminiLLM implements the LargeLanguageModel interface
var _ repositories.LargeLanguageModel = (*GeminiLLM)(nil)

// NewGeminiLLM creates a new Gemini LLM instance over an existing client
func NewGeminiLLM(client *genai.Client, model string, logger *zap.Logger) *GeminiLLM {
	if model == "" {
		model = defaultModel
		logger.Info("Using default model", zap.String("model", model))
	}

	return &GeminiLLM{
		client: client,
		logger: logger,
		model:  model,
	}
}

// Generate sends a one-shot prompt and returns the model's text reply
func (g *GeminiLLM) Generate(ctx context.Context, prompt string, opts repositories.GenerateOptions) (string, error) {
	contents := []*genai.Content{
		genai.NewContentFromText(prompt, genai.RoleUser),
	}

	config := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(opts.Temperature),
	}

	// Add retry logic
	var response *genai.GenerateContentResponse
	var err error
	for attempt := 0; attempt < 3; attempt++ {
		response, err = g.client.Models.GenerateContent(ctx, g.model, contents, config)
		if err == nil {
			break
		}

		g.logger.Warn("Failed to generate content, retrying",
			zap.Int("attempt", attempt+1),
			zap.Error(err))

		if attempt < 2 {
			time.Sleep(time.Duration(attempt+1) * time.Second)
		}
	}
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	if len(response.Candidates) == 0 ||
		response.Candidates[0].Content == nil ||
		len(response.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no content generated")
	}

	// Extract text from the response
	var responseText string
	for _, part := range response.Candidates[0].Content.Parts {
		if part.Text != "" {
			responseText += part.Text
		}
	}

	if responseText == "" {
		return "", fmt.Errorf("empty response from model")
	}

	return responseText, nil
}
