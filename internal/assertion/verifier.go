// Package assertion decides whether an actual API response satisfies a
// case's expected outcome, by exact comparison, a message heuristic, or a
// model call.
package assertion

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/CodexForgeBR/casegen/internal/cases"
	"github.com/CodexForgeBR/casegen/internal/config"
	"github.com/CodexForgeBR/casegen/internal/llm"
	"github.com/CodexForgeBR/casegen/internal/logging"
	"github.com/CodexForgeBR/casegen/internal/prompt"
)

// Verifier checks expected against actual. LLM may be nil when AI
// assertions are never requested.
type Verifier struct {
	LLM    llm.Completer
	Prompt string
}

// NewVerifier creates a verifier using the ai_judge completer.
func NewVerifier(c llm.Completer, systemPrompt string) *Verifier {
	return &Verifier{LLM: c, Prompt: systemPrompt}
}

// Verify reports whether actual satisfies expected. exact_match compares the
// trimmed text forms. Any other assert type is a semantic match, decided by
// the model when useAI is set and by Heuristic otherwise.
func (v *Verifier) Verify(ctx context.Context, expected, actual any, assertType string, useAI bool) (bool, error) {
	exp := strings.TrimSpace(textOf(expected))
	act := strings.TrimSpace(textOf(actual))

	if assertType == cases.AssertExact {
		return exp == act, nil
	}
	if !useAI {
		return Heuristic(exp, act), nil
	}
	if v.LLM == nil {
		return false, fmt.Errorf("semantic assertion needs a model but none is configured")
	}

	out, err := v.LLM.Complete(ctx, v.Prompt, prompt.AssertionInput(exp, act))
	if err != nil {
		return false, fmt.Errorf("semantic assertion: %w", err)
	}
	normalized := strings.ToLower(strings.TrimSpace(out))
	switch {
	case strings.Contains(normalized, "true"):
		return true, nil
	case strings.Contains(normalized, "false"):
		return false, nil
	default:
		logging.Warn(fmt.Sprintf("AI judge returned unexpected value, treating as false: %q", out))
		return false, nil
	}
}

// Strategy resolves the assert type and AI flag for tc, falling back to the
// execution defaults for fields the case leaves unset.
func Strategy(tc cases.TestCase, defaults config.Execution) (string, bool) {
	assertType := tc.AssertType
	if assertType == "" {
		assertType = defaults.DefaultAssertType
	}
	if assertType == "" {
		assertType = cases.AssertSemantic
	}
	useAI := defaults.UseAIAssertion
	if tc.UseAIAssertion != nil {
		useAI = *tc.UseAIAssertion
	}
	return assertType, useAI
}

// textOf renders v the way it would appear in a response body.
func textOf(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case []byte:
		return string(t)
	default:
		out, err := json.Marshal(t)
		if err != nil {
			return fmt.Sprint(t)
		}
		return string(out)
	}
}
