package generator

import "context"

// MockLLM is a canned LLMClient for tests and local development. It never
// calls the network.
type MockLLM struct {
	Response string
	Err      error
	// LastPrompt captures the most recent prompt for assertions
	LastPrompt string
}

// Complete returns the canned response or error
func (m *MockLLM) Complete(_ context.Context, prompt string, _ CompletionOptions) (string, error) {
	m.LastPrompt = prompt
	if m.Err != nil {
		return "", m.Err
	}
	if m.Response != "" {
		return m.Response, nil
	}
	return "Excited to share a quick update with my network today!\n\n#Growth #Learning", nil
}
