package llm

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/frostline-foods/frostline-admin/pkg/config"
)

// NewFromConfig builds the configured provider's client. Returns an error for
// unknown providers rather than silently defaulting, so a typo in config is
// caught at startup instead of at first request.
func NewFromConfig(cfg *config.AIConfig, logger *zap.Logger) (Client, error) {
	switch cfg.Provider {
	case "openai", "":
		return NewOpenAIClient(&Config{
			Endpoint: cfg.BaseURL,
			Model:    cfg.Model,
			APIKey:   cfg.APIKey,
		}, logger)
	case "anthropic":
		return NewAnthropicClient(&Config{
			Endpoint: cfg.BaseURL,
			Model:    cfg.Model,
			APIKey:   cfg.APIKey,
		}, logger)
	default:
		return nil, fmt.Errorf("unknown AI provider %q", cfg.Provider)
	}
}
