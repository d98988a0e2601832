// Package config defines the casegen configuration model and default values.
//
// Configuration is assembled from multiple sources with a strict precedence
// chain: built-in defaults < YAML settings file < environment (.env and
// CASEGEN_* variables) < CLI flag overrides.
package config

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// LLMSettings holds connection and retry parameters for one model endpoint.
type LLMSettings struct {
	Provider            string `yaml:"provider"`
	APIKey              string `yaml:"api_key"`
	BaseURL             string `yaml:"base_url"`
	Model               string `yaml:"model"`
	TimeoutSeconds      int    `yaml:"timeout_seconds"`
	MaxRetries          int    `yaml:"max_retries"`
	RetryBackoffSeconds int    `yaml:"retry_backoff_seconds"`
}

// Merge returns s with every non-zero field of o applied on top.
func (s LLMSettings) Merge(o LLMSettings) LLMSettings {
	if o.Provider != "" {
		s.Provider = o.Provider
	}
	if o.APIKey != "" {
		s.APIKey = o.APIKey
	}
	if o.BaseURL != "" {
		s.BaseURL = o.BaseURL
	}
	if o.Model != "" {
		s.Model = o.Model
	}
	if o.TimeoutSeconds != 0 {
		s.TimeoutSeconds = o.TimeoutSeconds
	}
	if o.MaxRetries != 0 {
		s.MaxRetries = o.MaxRetries
	}
	if o.RetryBackoffSeconds != 0 {
		s.RetryBackoffSeconds = o.RetryBackoffSeconds
	}
	return s
}

// ModuleBinding selects model settings for one logical caller. In YAML it is
// either a profile name (scalar) or an inline settings mapping.
type ModuleBinding struct {
	Profile string
	Inline  *LLMSettings
}

// UnmarshalYAML accepts both the scalar and the mapping form.
func (b *ModuleBinding) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		b.Profile = node.Value
		return nil
	case yaml.MappingNode:
		var inline LLMSettings
		if err := node.Decode(&inline); err != nil {
			return fmt.Errorf("decode inline module settings: %w", err)
		}
		b.Inline = &inline
		return nil
	default:
		return fmt.Errorf("line %d: llm module binding must be a profile name or a mapping", node.Line)
	}
}

// MarshalYAML writes the binding back in the form it was read.
func (b ModuleBinding) MarshalYAML() (interface{}, error) {
	if b.Inline != nil {
		return b.Inline, nil
	}
	return b.Profile, nil
}

// Paths groups filesystem locations.
type Paths struct {
	RawDocsDir   string `yaml:"raw_docs_dir"`
	TestCasesDir string `yaml:"test_cases_dir"`
	StateDir     string `yaml:"state_dir"`
	MetricsFile  string `yaml:"metrics_file"`
}

// RAG controls document slicing and chunk filtering.
type RAG struct {
	Enabled          bool     `yaml:"enabled"`
	HeaderLevels     []int    `yaml:"header_levels"`
	Splitter         string   `yaml:"splitter"`
	MaxChunkChars    int      `yaml:"max_chunk_chars"`
	OutputPerChunk   bool     `yaml:"output_per_chunk"`
	MinContentLength int      `yaml:"min_content_length"`
	IncludeKeywords  []string `yaml:"include_keywords"`
	ExcludeKeywords  []string `yaml:"exclude_keywords"`
	Workers          int      `yaml:"workers"`
}

// Agentic controls the generate-judge loop.
type Agentic struct {
	Enabled           bool           `yaml:"enabled"`
	MaxRounds         int            `yaml:"max_rounds"`
	MaxRoundsByModule map[string]int `yaml:"max_rounds_by_module"`
	FailFast          bool           `yaml:"fail_fast"`
}

// GlobalVars points at an optional YAML file rendered into every prompt.
type GlobalVars struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// Execution holds assertion defaults used when a case does not set them.
type Execution struct {
	DefaultAssertType string `yaml:"default_assert_type"`
	UseAIAssertion    bool   `yaml:"use_ai_assertion"`
}

// Config holds every configuration field for the casegen CLI.
type Config struct {
	LLM         LLMSettings              `yaml:"llm"`
	LLMProfiles map[string]LLMSettings   `yaml:"llm_profiles"`
	LLMModules  map[string]ModuleBinding `yaml:"llm_modules"`
	Paths       Paths                    `yaml:"paths"`
	RAG         RAG                      `yaml:"rag"`
	Agentic     Agentic                  `yaml:"agentic"`
	GlobalVars  GlobalVars               `yaml:"global_vars"`
	Execution   Execution                `yaml:"execution"`
	PromptsFile string                   `yaml:"prompts_file"`

	// Runtime flags.
	Verbose bool `yaml:"verbose"`

	// CLI-only flags (not loaded from config files).
	ConfigFile string `yaml:"-"`
	EnvFile    string `yaml:"-"`
	DocPath    string `yaml:"-"`
}

// NewDefaultConfig returns a Config populated with all built-in default values.
func NewDefaultConfig() *Config {
	return &Config{
		LLM: LLMSettings{
			Provider:            "openai",
			Model:               "gpt-4o-mini",
			TimeoutSeconds:      60,
			MaxRetries:          3,
			RetryBackoffSeconds: 2,
		},
		Paths: Paths{
			RawDocsDir:   "data/raw_docs",
			TestCasesDir: "data/test_cases",
			StateDir:     ".casegen",
		},
		RAG: RAG{
			HeaderLevels:     []int{1, 2},
			Splitter:         "markdown",
			MinContentLength: 200,
			Workers:          1,
		},
		Agentic: Agentic{
			MaxRounds: 2,
		},
		GlobalVars: GlobalVars{
			Path: "config/global_vars.yaml",
		},
		Execution: Execution{
			DefaultAssertType: "semantic_match",
			UseAIAssertion:    true,
		},
	}
}

// ResolveModuleInt picks the effective integer setting for module: an exact
// entry in overrides wins, then a "default" entry, then def.
func ResolveModuleInt(module string, overrides map[string]int, def int) int {
	if v, ok := overrides[module]; ok {
		return v
	}
	if v, ok := overrides["default"]; ok {
		return v
	}
	return def
}
