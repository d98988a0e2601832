package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/CodexForgeBR/casegen/internal/config"
)

func TestResolveSettings(t *testing.T) {
	base := config.LLMSettings{Provider: "openai", Model: "gpt-4o-mini", MaxRetries: 3}
	profiles := map[string]config.LLMSettings{
		"strict": {Model: "gpt-4.1", MaxRetries: 5},
		"local":  {Provider: "ollama", Model: "llama3", BaseURL: "http://gpu:11434"},
	}

	tests := []struct {
		name    string
		modules map[string]config.ModuleBinding
		module  string
		want    config.LLMSettings
	}{
		{
			name:   "no modules returns base",
			module: ModuleAgentJudge,
			want:   base,
		},
		{
			name:    "profile by name",
			modules: map[string]config.ModuleBinding{ModuleAgentJudge: {Profile: "strict"}},
			module:  ModuleAgentJudge,
			want:    config.LLMSettings{Provider: "openai", Model: "gpt-4.1", MaxRetries: 5},
		},
		{
			name:    "inline mapping",
			modules: map[string]config.ModuleBinding{ModuleAgentGenerator: {Inline: &config.LLMSettings{Model: "gpt-4o"}}},
			module:  ModuleAgentGenerator,
			want:    config.LLMSettings{Provider: "openai", Model: "gpt-4o", MaxRetries: 3},
		},
		{
			name:    "unknown profile string is a model name",
			modules: map[string]config.ModuleBinding{ModuleAgentJudge: {Profile: "o3-mini"}},
			module:  ModuleAgentJudge,
			want:    config.LLMSettings{Provider: "openai", Model: "o3-mini", MaxRetries: 3},
		},
		{
			name:    "default entry used when module missing",
			modules: map[string]config.ModuleBinding{"default": {Profile: "local"}},
			module:  ModuleCaseGenerator,
			want:    config.LLMSettings{Provider: "ollama", Model: "llama3", BaseURL: "http://gpu:11434", MaxRetries: 3},
		},
		{
			name:    "no matching entry returns base",
			modules: map[string]config.ModuleBinding{ModuleAgentJudge: {Profile: "strict"}},
			module:  ModuleCaseGenerator,
			want:    base,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveSettings(base, profiles, tt.modules, tt.module))
		})
	}
}

func TestResolveSettings_ProviderSwitchDropsBaseCredentials(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-openai-secret")
	t.Setenv("GEMINI_API_KEY", "gemini-key")

	base := config.LLMSettings{Provider: "openai", APIKey: "sk-openai-secret", BaseURL: "https://proxy.internal/v1", Model: "gpt-4o-mini"}
	profiles := map[string]config.LLMSettings{
		"review":       {Provider: "gemini", Model: "gemini-2.0-flash"},
		"review-keyed": {Provider: "gemini", APIKey: "explicit", Model: "gemini-2.0-flash"},
		"tuned":        {Model: "gpt-4.1"},
	}

	tests := []struct {
		name        string
		binding     config.ModuleBinding
		wantKey     string
		wantBaseURL string
	}{
		{"profile switches provider", config.ModuleBinding{Profile: "review"}, "gemini-key", ""},
		{"inline switches provider", config.ModuleBinding{Inline: &config.LLMSettings{Provider: "gemini"}}, "gemini-key", ""},
		{"explicit key kept", config.ModuleBinding{Profile: "review-keyed"}, "explicit", ""},
		{"same provider inherits", config.ModuleBinding{Profile: "tuned"}, "sk-openai-secret", "https://proxy.internal/v1"},
		{"ollama gets no key", config.ModuleBinding{Inline: &config.LLMSettings{Provider: "ollama"}}, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			modules := map[string]config.ModuleBinding{ModuleAgentJudge: tt.binding}
			got := ResolveSettings(base, profiles, modules, ModuleAgentJudge)

			assert.Equal(t, tt.wantKey, got.APIKey)
			assert.Equal(t, tt.wantBaseURL, got.BaseURL)
		})
	}
}
