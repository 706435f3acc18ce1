package ai

import (
	"context"
	"fmt"

	"github.com/Vovarama1992/persona_relay/internal/config"
)

// NewCompleter выбирает провайдера по LLM_PROVIDER.
func NewCompleter(ctx context.Context, cfg config.LLMConfig) (Completer, error) {
	switch cfg.Provider {
	case config.ProviderGemini:
		return NewGeminiClient(ctx, cfg.APIKey, cfg.Model)
	case config.ProviderOpenAI:
		return NewOpenAIClient(cfg.APIKey, cfg.BaseURL, cfg.Model), nil
	default:
		return nil, fmt.Errorf("unknown llm provider %q", cfg.Provider)
	}
}
