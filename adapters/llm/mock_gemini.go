package llm

import (
	"context"

	"github.com/voxprep/interview-server/domain/repositories"
)

// MockLLM is a scripted LargeLanguageModel for tests and development. It
// replays Responses in order, or returns Err when set.
type MockLLM struct {
	Responses []string
	Err       error

	// Prompts records every prompt passed to Generate, in order.
	Prompts []string

	calls int
}

// Ensure MockLLM implements the LargeLanguageModel interface
var _ repositories.LargeLanguageModel = (*MockLLM)(nil)

// NewMockLLM creates a new mock LLM
func NewMockLLM(responses ...string) *MockLLM {
	return &MockLLM{Responses: responses}
}

// Generate implements repositories.LargeLanguageModel
func (m *MockLLM) Generate(ctx context.Context, prompt string, opts repositories.GenerateOptions) (string, error) {
	m.Prompts = append(m.Prompts, prompt)
	if m.Err != nil {
		return "", m.Err
	}
	if len(m.Responses) == 0 {
		return "Tell me about a challenging project you've worked on.", nil
	}

	response := m.Responses[min(m.calls, len(m.Responses)-1)]
	m.calls++
	return response, nil
}
