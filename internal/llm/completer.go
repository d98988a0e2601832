// Package llm wraps chat-completion providers behind a single two-message
// call: a system prompt plus one user turn in, the first choice's text out.
package llm

import (
	"context"
	"errors"
)

// Module names select per-caller settings through llm_modules.
const (
	ModuleCaseGenerator  = "case_generator"
	ModuleAgentGenerator = "agent_generator"
	ModuleAgentJudge     = "agent_judge"
	ModuleAIJudge        = "ai_judge"
)

// ErrRetriesExhausted wraps the last failure once every attempt has failed.
var ErrRetriesExhausted = errors.New("llm request failed after retries")

// Completer sends one system prompt and one user turn and returns the text of
// the first choice. An empty completion is returned as "" with a nil error.
type Completer interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

// CompleterFunc adapts a plain function to the Completer interface.
type CompleterFunc func(ctx context.Context, system, user string) (string, error)

// Complete calls f.
func (f CompleterFunc) Complete(ctx context.Context, system, user string) (string, error) {
	return f(ctx, system, user)
}
