// Package agent produces test cases for one document chunk: a generator
// asks the model for cases, a judge reviews them, and the orchestrator loops
// the two until the judge accepts or the round budget runs out.
package agent

import (
	"context"
	"fmt"

	"github.com/CodexForgeBR/casegen/internal/llm"
	"github.com/CodexForgeBR/casegen/internal/parser"
	"github.com/CodexForgeBR/casegen/internal/prompt"
)

// CaseGenerator produces raw cases for a chunk, optionally guided by the
// previous round's review.
type CaseGenerator interface {
	Generate(ctx context.Context, chunk, feedback string) ([]any, error)
}

// Generator makes exactly one model call per Generate. Retries belong to the
// Completer.
type Generator struct {
	LLM    llm.Completer
	Prompt string
}

// NewGenerator creates a generator using systemPrompt.
func NewGenerator(c llm.Completer, systemPrompt string) *Generator {
	return &Generator{LLM: c, Prompt: systemPrompt}
}

// Generate implements CaseGenerator. Malformed model output yields an empty
// list, not an error; only transport failures are returned.
func (g *Generator) Generate(ctx context.Context, chunk, feedback string) ([]any, error) {
	out, err := g.LLM.Complete(ctx, g.Prompt, prompt.GenerationInput(chunk, feedback))
	if err != nil {
		return nil, fmt.Errorf("generate cases: %w", err)
	}
	return parser.ExtractCases(out), nil
}
