package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/CodexForgeBR/casegen/internal/config"
	"github.com/CodexForgeBR/casegen/internal/logging"
)

// buildCLIOverrides creates a map of CLI flag overrides from the config.
// Uses cmd.Flags().Changed() so that flag defaults never shadow values from
// the settings file or the environment.
func buildCLIOverrides(cmd *cobra.Command, cfg *config.Config) map[string]string {
	overrides := make(map[string]string)
	flags := cmd.Flags()

	stringFlags := map[string]struct {
		key string
		val string
	}{
		"provider": {"LLM_PROVIDER", cfg.LLM.Provider},
		"model":    {"LLM_MODEL", cfg.LLM.Model},
	}
	for flag, mapping := range stringFlags {
		if flags.Lookup(flag) != nil && flags.Changed(flag) {
			overrides[mapping.key] = mapping.val
		}
	}

	intFlags := map[string]struct {
		key string
		val int
	}{
		"max-rounds": {"MAX_ROUNDS", cfg.Agentic.MaxRounds},
		"workers":    {"WORKERS", cfg.RAG.Workers},
	}
	for flag, mapping := range intFlags {
		if flags.Lookup(flag) != nil && flags.Changed(flag) {
			overrides[mapping.key] = strconv.Itoa(mapping.val)
		}
	}

	boolFlags := map[string]struct {
		key string
		val bool
	}{
		"rag":              {"RAG_ENABLED", cfg.RAG.Enabled},
		"agentic":          {"AGENTIC_ENABLED", cfg.Agentic.Enabled},
		"fail-fast":        {"FAIL_FAST", cfg.Agentic.FailFast},
		"output-per-chunk": {"OUTPUT_PER_CHUNK", cfg.RAG.OutputPerChunk},
		"verbose":          {"VERBOSE", cfg.Verbose},
	}
	for flag, mapping := range boolFlags {
		if flags.Lookup(flag) != nil && flags.Changed(flag) {
			overrides[mapping.key] = strconv.FormatBool(mapping.val)
		}
	}

	// Negation flags
	if flags.Lookup("no-rag") != nil && flags.Changed("no-rag") {
		overrides["RAG_ENABLED"] = "false"
	}
	if flags.Lookup("no-agentic") != nil && flags.Changed("no-agentic") {
		overrides["AGENTIC_ENABLED"] = "false"
	}

	return overrides
}

// loadConfig assembles the effective configuration for cmd. The settings
// file is required only when --config was given explicitly.
func loadConfig(cmd *cobra.Command, cfg *config.Config) (*config.Config, error) {
	finalCfg, err := config.LoadWithPrecedence(
		cfg.ConfigFile,
		cmd.Flags().Changed("config"),
		cfg.EnvFile,
		buildCLIOverrides(cmd, cfg),
	)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	// Merge CLI-only flags (not in config files)
	finalCfg.ConfigFile = cfg.ConfigFile
	finalCfg.EnvFile = cfg.EnvFile
	finalCfg.DocPath = cfg.DocPath
	if f := cmd.Flags().Lookup("prompts"); f != nil && f.Changed {
		finalCfg.PromptsFile = cfg.PromptsFile
	}

	logging.SetVerbose(finalCfg.Verbose)
	return finalCfg, nil
}
