// Package cli provides flag binding and validation for the casegen CLI.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/CodexForgeBR/casegen/internal/cases"
	"github.com/CodexForgeBR/casegen/internal/config"
)

// DefaultSettingsFile is read when --config is not given. It may be absent.
const DefaultSettingsFile = "config/settings.yaml"

var providers = map[string]bool{"openai": true, "gemini": true, "ollama": true}

// BindPersistentFlags registers the flags shared by every subcommand.
func BindPersistentFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.PersistentFlags()
	flags.StringVar(&cfg.ConfigFile, "config", DefaultSettingsFile, "Path to the YAML settings file")
	flags.StringVar(&cfg.EnvFile, "env-file", ".env", "Path to a dotenv file loaded before CASEGEN_* variables")
	flags.BoolVarP(&cfg.Verbose, "verbose", "v", false, "Enable debug logging")
}

// BindGenerateFlags registers the flags of the generate subcommand. The
// flags write directly into cfg. Call ValidateGenerateFlags after parsing.
func BindGenerateFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()

	// Input
	flags.StringVar(&cfg.DocPath, "doc", "", "Generate from this document only (default: every .md/.txt in raw_docs_dir)")
	flags.StringVar(&cfg.PromptsFile, "prompts", "", "YAML file overriding the built-in prompts")

	// Model
	flags.StringVar(&cfg.LLM.Provider, "provider", cfg.LLM.Provider, "Model provider: openai, gemini or ollama")
	flags.StringVar(&cfg.LLM.Model, "model", cfg.LLM.Model, "Model name")

	// Slicing
	flags.BoolVar(&cfg.RAG.Enabled, "rag", cfg.RAG.Enabled, "Slice documents by heading and generate per chunk")
	flags.BoolVar(&cfg.RAG.OutputPerChunk, "output-per-chunk", cfg.RAG.OutputPerChunk, "Write one case file per chunk")
	flags.IntVar(&cfg.RAG.Workers, "workers", cfg.RAG.Workers, "Chunks processed in parallel")

	// Generate-judge loop
	flags.BoolVar(&cfg.Agentic.Enabled, "agentic", cfg.Agentic.Enabled, "Review each chunk's cases and regenerate on failure")
	flags.IntVar(&cfg.Agentic.MaxRounds, "max-rounds", cfg.Agentic.MaxRounds, "Default generate-judge round budget")
	flags.BoolVar(&cfg.Agentic.FailFast, "fail-fast", cfg.Agentic.FailFast, "Stop a chunk's loop at the first failed review")

	// Negation flags need special handling via Changed detection
	var noRAG, noAgentic bool
	flags.BoolVar(&noRAG, "no-rag", false, "Disable slicing (overrides settings)")
	flags.BoolVar(&noAgentic, "no-agentic", false, "Disable the generate-judge loop (overrides settings)")
}

// ValidatePersistentFlags checks the shared flags. An explicitly given
// --config must exist.
func ValidatePersistentFlags(cmd *cobra.Command, cfg *config.Config) error {
	if cmd.Flags().Changed("config") {
		if _, err := os.Stat(cfg.ConfigFile); err != nil {
			return fmt.Errorf("--config: %w", err)
		}
	}
	return nil
}

// ValidateGenerateFlags checks generate flag values and combinations.
// Must be called after cmd.Execute() or cmd.ParseFlags().
func ValidateGenerateFlags(cmd *cobra.Command, cfg *config.Config) error {
	if err := ValidatePersistentFlags(cmd, cfg); err != nil {
		return err
	}

	if cfg.DocPath != "" {
		if _, err := os.Stat(cfg.DocPath); err != nil {
			return fmt.Errorf("--doc: %w", err)
		}
	}
	if cfg.PromptsFile != "" && cmd.Flags().Changed("prompts") {
		if _, err := os.Stat(cfg.PromptsFile); err != nil {
			return fmt.Errorf("--prompts: %w", err)
		}
	}

	if cmd.Flags().Changed("rag") && cmd.Flags().Changed("no-rag") {
		return fmt.Errorf("--rag and --no-rag are mutually exclusive")
	}
	if cmd.Flags().Changed("agentic") && cmd.Flags().Changed("no-agentic") {
		return fmt.Errorf("--agentic and --no-agentic are mutually exclusive")
	}
	if cmd.Flags().Changed("no-rag") {
		cfg.RAG.Enabled = false
	}
	if cmd.Flags().Changed("no-agentic") {
		cfg.Agentic.Enabled = false
	}

	if cmd.Flags().Changed("provider") && !providers[cfg.LLM.Provider] {
		return fmt.Errorf("--provider must be 'openai', 'gemini' or 'ollama', got: %s", cfg.LLM.Provider)
	}
	if cfg.Agentic.MaxRounds < 1 {
		return fmt.Errorf("--max-rounds must be at least 1, got: %d", cfg.Agentic.MaxRounds)
	}
	if cfg.RAG.Workers < 1 {
		return fmt.Errorf("--workers must be at least 1, got: %d", cfg.RAG.Workers)
	}

	return nil
}

// VerifyOptions holds the flags of the verify subcommand.
type VerifyOptions struct {
	Expected   string
	Actual     string
	AssertType string
	NoAI       bool
}

// BindVerifyFlags registers the flags of the verify subcommand.
func BindVerifyFlags(cmd *cobra.Command, opts *VerifyOptions) {
	flags := cmd.Flags()
	flags.StringVar(&opts.Expected, "expected", "", "Expected outcome text")
	flags.StringVar(&opts.Actual, "actual", "", "Actual response body")
	flags.StringVar(&opts.AssertType, "assert-type", "", "exact_match or semantic_match (default: execution.default_assert_type)")
	flags.BoolVar(&opts.NoAI, "no-ai", false, "Use the heuristic instead of a model for semantic_match")
}

// ValidateVerifyFlags checks the verify flags.
func ValidateVerifyFlags(cmd *cobra.Command, cfg *config.Config, opts *VerifyOptions) error {
	if err := ValidatePersistentFlags(cmd, cfg); err != nil {
		return err
	}
	if !cmd.Flags().Changed("expected") {
		return fmt.Errorf("--expected is required")
	}
	if !cmd.Flags().Changed("actual") {
		return fmt.Errorf("--actual is required")
	}
	switch opts.AssertType {
	case "", cases.AssertExact, cases.AssertSemantic:
		return nil
	default:
		return fmt.Errorf("--assert-type must be '%s' or '%s', got: %s", cases.AssertExact, cases.AssertSemantic, opts.AssertType)
	}
}
