package llm

import (
	"context"
	"fmt"
	"time"

	"github.com/CodexForgeBR/casegen/internal/config"
)

// NewProvider builds the raw, non-retrying completer for settings.
func NewProvider(ctx context.Context, settings config.LLMSettings) (Completer, error) {
	switch settings.Provider {
	case "openai", "":
		return NewOpenAICompleter(settings.APIKey, settings.BaseURL, settings.Model), nil
	case "gemini":
		return NewGeminiCompleter(ctx, settings.APIKey, settings.Model)
	case "ollama":
		return NewOllamaCompleter(settings.BaseURL, settings.Model)
	default:
		return nil, fmt.Errorf("unknown llm provider %q (want openai, gemini or ollama)", settings.Provider)
	}
}

// RetryConfigFor converts the retry fields of settings.
func RetryConfigFor(settings config.LLMSettings) RetryConfig {
	return RetryConfig{
		MaxAttempts:    settings.MaxRetries,
		Backoff:        time.Duration(settings.RetryBackoffSeconds) * time.Second,
		AttemptTimeout: time.Duration(settings.TimeoutSeconds) * time.Second,
	}
}

// ForModule resolves module's settings from cfg and returns a retrying
// completer along with the settings it was built from.
func ForModule(ctx context.Context, cfg *config.Config, module string) (Completer, config.LLMSettings, error) {
	settings := ResolveSettings(cfg.LLM, cfg.LLMProfiles, cfg.LLMModules, module)
	provider, err := NewProvider(ctx, settings)
	if err != nil {
		return nil, settings, fmt.Errorf("llm module %s: %w", module, err)
	}
	return &RetryCompleter{
		Inner:    provider,
		RetryCfg: RetryConfigFor(settings),
		Module:   module,
	}, settings, nil
}
