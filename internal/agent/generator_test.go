package agent

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CodexForgeBR/casegen/internal/cases"
	"github.com/CodexForgeBR/casegen/internal/config"
	"github.com/CodexForgeBR/casegen/internal/llm"
	"github.com/CodexForgeBR/casegen/internal/slicer"
)

func TestGenerator_SingleCallWithFeedback(t *testing.T) {
	calls := 0
	var gotSystem, gotUser string
	g := NewGenerator(llm.CompleterFunc(func(_ context.Context, system, user string) (string, error) {
		calls++
		gotSystem, gotUser = system, user
		return "Here you go:\n```json\n{\"url\": \"/a\"}\n```", nil
	}), "gen prompt")

	out, err := g.Generate(context.Background(), "# A", "FAIL: more cases")
	require.NoError(t, err)

	assert.Equal(t, 1, calls)
	assert.Equal(t, "gen prompt", gotSystem)
	assert.Equal(t, "# A\n\n[Judge Feedback]\nFAIL: more cases", gotUser)
	assert.Equal(t, []any{map[string]any{"url": "/a"}}, out)
}

func TestGenerator_MalformedOutputIsEmpty(t *testing.T) {
	g := NewGenerator(llm.CompleterFunc(func(context.Context, string, string) (string, error) {
		return "sorry, I cannot help with that", nil
	}), "p")

	out, err := g.Generate(context.Background(), "chunk", "")
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestGenerator_TransportError(t *testing.T) {
	g := NewGenerator(llm.CompleterFunc(func(context.Context, string, string) (string, error) {
		return "", llm.ErrRetriesExhausted
	}), "p")

	_, err := g.Generate(context.Background(), "chunk", "")
	assert.ErrorIs(t, err, llm.ErrRetriesExhausted)
}

func TestLoginDocumentEndToEnd(t *testing.T) {
	doc := "# Login\nPOST /api/login with body {user,pass}"
	chunks := slicer.NewRegexSplitter([]int{1}).Split(doc)
	require.Len(t, chunks, 1)
	assert.Equal(t, "Login", chunks[0].Title)

	gen := NewGenerator(llm.CompleterFunc(func(context.Context, string, string) (string, error) {
		return "```json [{\"request\":{\"url\":\"/api/login\",\"method\":\"POST\",\"body\":{\"user\":\"a\"}}}] ```", nil
	}), "gen")
	judge := NewJudge(llm.CompleterFunc(func(context.Context, string, string) (string, error) {
		return "PASS: covers login", nil
	}), "judge")
	o := NewOrchestrator(gen, judge, config.Agentic{MaxRounds: 2}, "")

	res, err := o.Run(context.Background(), chunks[0].Content)
	require.NoError(t, err)
	assert.Equal(t, StateAccepted, res.State)
	require.Len(t, res.Cases, 1)

	normalized := cases.Normalize(res.Cases[0].(map[string]any))
	assert.Equal(t, map[string]any{
		"url":    "/api/login",
		"method": "POST",
		"data":   map[string]any{"user": "a"},
	}, normalized)
}
