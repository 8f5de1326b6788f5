// Package llm provides the generative-AI clients behind dashboard insights.
package llm

import "context"

// Client defines the interface for insight generation. Use this interface for
// dependency injection to enable mocking in tests.
type Client interface {
	// GenerateInsight generates a completion for the given prompt.
	GenerateInsight(ctx context.Context, prompt, systemMessage string, temperature float64) (string, error)

	// Model returns the configured model name.
	Model() string
}
