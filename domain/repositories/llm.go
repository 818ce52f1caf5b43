package repositories

import "context"

// LargeLanguageModel abstracts any text-completion provider.
type LargeLanguageModel interface {
	// Generate takes a fully rendered prompt and returns the model's reply.
	Generate(ctx context.Context, prompt string, opts GenerateOptions) (string, error)
}

// GenerateOptions tunes a single generation call.
type GenerateOptions struct {
	Temperature float32
}
