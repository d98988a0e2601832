package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// EnvPrefix namespaces environment overrides, e.g. CASEGEN_MAX_ROUNDS=3.
const EnvPrefix = "CASEGEN_"

// WhitelistedVars lists every override key accepted from the environment or
// the CLI. Keys not in this list are silently ignored.
var WhitelistedVars = [16]string{
	"LLM_PROVIDER",
	"LLM_MODEL",
	"LLM_BASE_URL",
	"LLM_API_KEY",
	"LLM_MAX_RETRIES",
	"RAW_DOCS_DIR",
	"TEST_CASES_DIR",
	"STATE_DIR",
	"METRICS_FILE",
	"RAG_ENABLED",
	"OUTPUT_PER_CHUNK",
	"WORKERS",
	"AGENTIC_ENABLED",
	"MAX_ROUNDS",
	"FAIL_FAST",
	"VERBOSE",
}

// whitelistSet is a precomputed lookup table for fast whitelist membership checks.
var whitelistSet map[string]bool

func init() {
	whitelistSet = make(map[string]bool, len(WhitelistedVars))
	for _, v := range WhitelistedVars {
		whitelistSet[v] = true
	}
}

// LoadFile decodes the YAML settings file at path on top of cfg.
// Keys absent from the file keep their current value.
func LoadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("open config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

// LoadEnv loads envFile (if it exists) into the process environment without
// overwriting variables that are already set, then returns every whitelisted
// CASEGEN_* variable as an override map.
func LoadEnv(envFile string) (map[string]string, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("load env file: %w", err)
		}
	}

	result := make(map[string]string)
	for _, key := range WhitelistedVars {
		if v, ok := os.LookupEnv(EnvPrefix + key); ok {
			result[key] = strings.TrimSpace(v)
		}
	}
	return result, nil
}

// LoadWithPrecedence assembles a Config by merging sources in order of
// increasing priority:
//
//  1. Built-in defaults
//  2. YAML settings file (settingsPath)
//  3. Environment: envFile plus CASEGEN_* variables
//  4. CLI overrides (cliOverrides map)
//
// An empty settingsPath is skipped. A missing settings file is tolerated
// unless required is true. API keys left empty fall back to the provider's
// conventional environment variable.
func LoadWithPrecedence(settingsPath string, required bool, envFile string, cliOverrides map[string]string) (*Config, error) {
	cfg := NewDefaultConfig()

	// Layer 2: YAML settings file.
	if settingsPath != "" {
		if err := LoadFile(settingsPath, cfg); err != nil {
			if required || !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("settings: %w", err)
			}
		}
	}

	// Layer 3: environment.
	envOverrides, err := LoadEnv(envFile)
	if err != nil {
		return nil, err
	}
	ApplyMapToConfig(cfg, envOverrides)

	// Layer 4: CLI overrides (highest priority).
	if len(cliOverrides) > 0 {
		ApplyMapToConfig(cfg, cliOverrides)
	}

	applyAPIKeyFallback(cfg)
	return cfg, nil
}

// ApplyMapToConfig sets fields on cfg from the key-value pairs in m.
// Keys must use the WhitelistedVars naming convention (e.g., "MAX_ROUNDS").
// Unknown keys are silently ignored. Integer fields that fail to parse
// are silently ignored (the previous value is preserved).
func ApplyMapToConfig(cfg *Config, m map[string]string) {
	for key, value := range m {
		if !whitelistSet[key] {
			continue
		}
		switch key {
		case "LLM_PROVIDER":
			cfg.LLM.Provider = value
		case "LLM_MODEL":
			cfg.LLM.Model = value
		case "LLM_BASE_URL":
			cfg.LLM.BaseURL = value
		case "LLM_API_KEY":
			cfg.LLM.APIKey = value
		case "LLM_MAX_RETRIES":
			if v, err := strconv.Atoi(value); err == nil {
				cfg.LLM.MaxRetries = v
			}
		case "RAW_DOCS_DIR":
			cfg.Paths.RawDocsDir = value
		case "TEST_CASES_DIR":
			cfg.Paths.TestCasesDir = value
		case "STATE_DIR":
			cfg.Paths.StateDir = value
		case "METRICS_FILE":
			cfg.Paths.MetricsFile = value
		case "RAG_ENABLED":
			cfg.RAG.Enabled = parseBool(value)
		case "OUTPUT_PER_CHUNK":
			cfg.RAG.OutputPerChunk = parseBool(value)
		case "WORKERS":
			if v, err := strconv.Atoi(value); err == nil {
				cfg.RAG.Workers = v
			}
		case "AGENTIC_ENABLED":
			cfg.Agentic.Enabled = parseBool(value)
		case "MAX_ROUNDS":
			if v, err := strconv.Atoi(value); err == nil {
				cfg.Agentic.MaxRounds = v
			}
		case "FAIL_FAST":
			cfg.Agentic.FailFast = parseBool(value)
		case "VERBOSE":
			cfg.Verbose = parseBool(value)
		}
	}
}

// applyAPIKeyFallback fills an empty base API key from the provider's
// conventional environment variable.
func applyAPIKeyFallback(cfg *Config) {
	if cfg.LLM.APIKey == "" {
		cfg.LLM.APIKey = DefaultAPIKey(cfg.LLM.Provider)
	}
}

// DefaultAPIKey returns the conventional environment key for provider:
// OPENAI_API_KEY for openai (and the empty default), GEMINI_API_KEY for
// gemini, nothing for ollama.
func DefaultAPIKey(provider string) string {
	switch provider {
	case "openai", "":
		return os.Getenv("OPENAI_API_KEY")
	case "gemini":
		return os.Getenv("GEMINI_API_KEY")
	default:
		return ""
	}
}

// parseBool interprets common boolean representations.
// "true", "1", "yes" (case-insensitive) return true; everything else returns false.
func parseBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "1", "yes":
		return true
	default:
		return false
	}
}
