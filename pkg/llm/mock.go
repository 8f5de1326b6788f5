package llm

import "context"

// MockClient is a configurable mock for testing insight generation.
// Set the function field to control behavior in tests.
type MockClient struct {
	// GenerateInsightFunc is called when GenerateInsight is invoked.
	// If nil, returns empty string and nil error.
	GenerateInsightFunc func(ctx context.Context, prompt, systemMessage string, temperature float64) (string, error)

	// ModelName is returned by Model. Defaults to "mock-model".
	ModelName string

	// Call tracking for verification
	GenerateInsightCalls int
	LastPrompt           string
}

// NewMockClient creates a new mock with sensible defaults.
func NewMockClient() *MockClient {
	return &MockClient{ModelName: "mock-model"}
}

var _ Client = (*MockClient)(nil)

// GenerateInsight implements Client.
func (m *MockClient) GenerateInsight(ctx context.Context, prompt, systemMessage string, temperature float64) (string, error) {
	m.GenerateInsightCalls++
	m.LastPrompt = prompt
	if m.GenerateInsightFunc != nil {
		return m.GenerateInsightFunc(ctx, prompt, systemMessage, temperature)
	}
	return "", nil
}

// Model implements Client.
func (m *MockClient) Model() string {
	if m.ModelName == "" {
		return "mock-model"
	}
	return m.ModelName
}
