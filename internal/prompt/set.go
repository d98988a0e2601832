package prompt

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Keys recognised in a prompts file.
const (
	KeyGeneration      = "generation_prompt"
	KeyJudge           = "judge_prompt"
	KeyAgentGeneration = "agent_generation_prompt"
	KeyAgentJudge      = "agent_judge_prompt"
)

// Set holds the system prompt for every model caller.
type Set struct {
	Generation      string // single-shot generation
	AgentGeneration string // generation inside the generate-judge loop
	AgentJudge      string // case review inside the loop
	Judge           string // semantic assertion
}

// Defaults returns the built-in prompts.
func Defaults() *Set {
	return &Set{
		Generation:      GenerationTemplate,
		AgentGeneration: AgentGenerationTemplate,
		AgentJudge:      AgentJudgeTemplate,
		Judge:           JudgeTemplate,
	}
}

// Load reads a YAML mapping of prompt keys to text from path and applies it
// over the built-in prompts. An empty path returns the defaults.
//
// The agent prompts fall back to their single-shot counterparts from the same
// file: a file that only sets generation_prompt changes both generators.
func Load(path string) (*Set, error) {
	set := Defaults()
	if path == "" {
		return set, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read prompts file: %w", err)
	}
	var raw map[string]string
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse prompts file %s: %w", path, err)
	}

	set.Generation = pick(raw, set.Generation, KeyGeneration)
	set.Judge = pick(raw, set.Judge, KeyJudge)
	set.AgentGeneration = pick(raw, set.AgentGeneration, KeyAgentGeneration, KeyGeneration)
	set.AgentJudge = pick(raw, set.AgentJudge, KeyAgentJudge, KeyJudge)
	return set, nil
}

// pick returns the first non-blank value among keys, or def.
func pick(raw map[string]string, def string, keys ...string) string {
	for _, k := range keys {
		if v := raw[k]; strings.TrimSpace(v) != "" {
			return v
		}
	}
	return def
}
