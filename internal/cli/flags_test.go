package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CodexForgeBR/casegen/internal/config"
)

func generateCmd(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{Use: "generate"}
	BindPersistentFlags(cmd, cfg)
	BindGenerateFlags(cmd, cfg)
	return cmd
}

func TestBindGenerateFlags_DefaultValues(t *testing.T) {
	cfg := config.NewDefaultConfig()
	cmd := generateCmd(cfg)

	require.NoError(t, cmd.ParseFlags([]string{}))

	assert.Equal(t, DefaultSettingsFile, cfg.ConfigFile)
	assert.Equal(t, ".env", cfg.EnvFile)
	assert.Equal(t, "openai", cfg.LLM.Provider)
	assert.Equal(t, "gpt-4o-mini", cfg.LLM.Model)
	assert.Equal(t, 2, cfg.Agentic.MaxRounds)
	assert.Equal(t, 1, cfg.RAG.Workers)
	assert.Empty(t, cfg.DocPath)
	assert.False(t, cfg.RAG.Enabled)
	assert.False(t, cfg.Agentic.Enabled)
	assert.False(t, cfg.Agentic.FailFast)
	assert.False(t, cfg.Verbose)
}

func TestBindGenerateFlags_Values(t *testing.T) {
	cfg := config.NewDefaultConfig()
	cmd := generateCmd(cfg)

	require.NoError(t, cmd.ParseFlags([]string{
		"--provider", "ollama",
		"--model", "qwen2.5",
		"--max-rounds", "4",
		"--workers", "3",
		"--rag",
		"--agentic",
		"--fail-fast",
		"--output-per-chunk",
		"-v",
	}))

	assert.Equal(t, "ollama", cfg.LLM.Provider)
	assert.Equal(t, "qwen2.5", cfg.LLM.Model)
	assert.Equal(t, 4, cfg.Agentic.MaxRounds)
	assert.Equal(t, 3, cfg.RAG.Workers)
	assert.True(t, cfg.RAG.Enabled)
	assert.True(t, cfg.Agentic.Enabled)
	assert.True(t, cfg.Agentic.FailFast)
	assert.True(t, cfg.RAG.OutputPerChunk)
	assert.True(t, cfg.Verbose)
}

func TestValidateGenerateFlags_NegationFlags(t *testing.T) {
	cfg := config.NewDefaultConfig()
	cfg.RAG.Enabled = true
	cfg.Agentic.Enabled = true
	cmd := generateCmd(cfg)

	require.NoError(t, cmd.ParseFlags([]string{"--no-rag", "--no-agentic"}))
	require.NoError(t, ValidateGenerateFlags(cmd, cfg))

	assert.False(t, cfg.RAG.Enabled)
	assert.False(t, cfg.Agentic.Enabled)
}

func TestValidateGenerateFlags_Errors(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{"missing config", []string{"--config", "/nonexistent/settings.yaml"}, "--config"},
		{"missing doc", []string{"--doc", "/nonexistent/doc.md"}, "--doc"},
		{"missing prompts", []string{"--prompts", "/nonexistent/prompts.yaml"}, "--prompts"},
		{"bad provider", []string{"--provider", "claude"}, "--provider must be"},
		{"zero rounds", []string{"--max-rounds", "0"}, "--max-rounds must be at least 1"},
		{"zero workers", []string{"--workers", "0"}, "--workers must be at least 1"},
		{"rag conflict", []string{"--rag", "--no-rag"}, "mutually exclusive"},
		{"agentic conflict", []string{"--agentic", "--no-agentic"}, "mutually exclusive"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.NewDefaultConfig()
			cmd := generateCmd(cfg)
			require.NoError(t, cmd.ParseFlags(tt.args))

			err := ValidateGenerateFlags(cmd, cfg)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidateGenerateFlags_ExistingFiles(t *testing.T) {
	dir := t.TempDir()
	settings := filepath.Join(dir, "settings.yaml")
	doc := filepath.Join(dir, "login.md")
	require.NoError(t, os.WriteFile(settings, []byte("llm:\n  provider: openai\n"), 0o644))
	require.NoError(t, os.WriteFile(doc, []byte("# Login\n"), 0o644))

	cfg := config.NewDefaultConfig()
	cmd := generateCmd(cfg)
	require.NoError(t, cmd.ParseFlags([]string{"--config", settings, "--doc", doc}))

	assert.NoError(t, ValidateGenerateFlags(cmd, cfg))
}

func TestValidateGenerateFlags_DefaultConfigMayBeAbsent(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg := config.NewDefaultConfig()
	cmd := generateCmd(cfg)
	require.NoError(t, cmd.ParseFlags([]string{}))

	assert.NoError(t, ValidateGenerateFlags(cmd, cfg))
}

func TestValidateVerifyFlags(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{"valid", []string{"--expected", "成功", "--actual", "{}"}, ""},
		{"valid exact", []string{"--expected", "a", "--actual", "a", "--assert-type", "exact_match"}, ""},
		{"missing expected", []string{"--actual", "{}"}, "--expected is required"},
		{"missing actual", []string{"--expected", "x"}, "--actual is required"},
		{"bad assert type", []string{"--expected", "x", "--actual", "y", "--assert-type", "fuzzy"}, "--assert-type must be"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.NewDefaultConfig()
			var opts VerifyOptions
			cmd := &cobra.Command{Use: "verify"}
			BindPersistentFlags(cmd, cfg)
			BindVerifyFlags(cmd, &opts)
			require.NoError(t, cmd.ParseFlags(tt.args))

			err := ValidateVerifyFlags(cmd, cfg, &opts)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
