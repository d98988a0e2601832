package prompt

import _ "embed"

// Built-in system prompts, used when no prompts file overrides them.
var (
	//go:embed templates/generation.txt
	GenerationTemplate string

	//go:embed templates/agent-generation.txt
	AgentGenerationTemplate string

	//go:embed templates/agent-judge.txt
	AgentJudgeTemplate string

	//go:embed templates/judge.txt
	JudgeTemplate string
)
