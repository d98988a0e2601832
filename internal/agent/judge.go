package agent

import (
	"context"
	"fmt"
	"strings"

	"github.com/CodexForgeBR/casegen/internal/llm"
	"github.com/CodexForgeBR/casegen/internal/logging"
	"github.com/CodexForgeBR/casegen/internal/prompt"
)

// Verdict is the judge's decision plus the text it was derived from.
type Verdict struct {
	Passed   bool
	Feedback string
}

// CaseJudge reviews the cases generated for a chunk.
type CaseJudge interface {
	Review(ctx context.Context, chunk string, cases []any) (Verdict, error)
}

// Judge reviews cases with one model call.
type Judge struct {
	LLM    llm.Completer
	Prompt string
}

// NewJudge creates a judge using systemPrompt.
func NewJudge(c llm.Completer, systemPrompt string) *Judge {
	return &Judge{LLM: c, Prompt: systemPrompt}
}

// Review implements CaseJudge.
func (j *Judge) Review(ctx context.Context, chunk string, cases []any) (Verdict, error) {
	out, err := j.LLM.Complete(ctx, j.Prompt, prompt.JudgeInput(chunk, cases))
	if err != nil {
		return Verdict{}, fmt.Errorf("review cases: %w", err)
	}
	return ClassifyVerdict(out), nil
}

// ClassifyVerdict reads a free-text review. "pass" without "fail" accepts,
// any "fail" rejects, and text with neither is rejected with a warning.
func ClassifyVerdict(text string) Verdict {
	feedback := strings.TrimSpace(text)
	normalized := strings.ToLower(feedback)

	hasPass := strings.Contains(normalized, "pass")
	hasFail := strings.Contains(normalized, "fail")
	switch {
	case hasPass && !hasFail:
		return Verdict{Passed: true, Feedback: feedback}
	case hasFail:
		return Verdict{Passed: false, Feedback: feedback}
	default:
		logging.Warn(fmt.Sprintf("Judge returned an unexpected verdict, treating as FAIL: %q", feedback))
		return Verdict{Passed: false, Feedback: feedback}
	}
}
