package assertion

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CodexForgeBR/casegen/internal/cases"
	"github.com/CodexForgeBR/casegen/internal/config"
	"github.com/CodexForgeBR/casegen/internal/llm"
	"github.com/CodexForgeBR/casegen/internal/logging"
)

func init() {
	logging.SetOutput(io.Discard, io.Discard)
}

func replying(text string, calls *int) llm.Completer {
	return llm.CompleterFunc(func(context.Context, string, string) (string, error) {
		*calls++
		return text, nil
	})
}

func TestVerify_ExactMatch(t *testing.T) {
	calls := 0
	v := NewVerifier(replying("true", &calls), "p")

	ok, err := v.Verify(context.Background(), " 200 ", "200\n", cases.AssertExact, true)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = v.Verify(context.Background(), "200", "201", cases.AssertExact, true)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Zero(t, calls, "exact match never calls the model")
}

func TestVerify_ExactMatchStructuredValues(t *testing.T) {
	v := NewVerifier(nil, "")
	ok, err := v.Verify(context.Background(), map[string]any{"code": 0}, `{"code":0}`, cases.AssertExact, false)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestVerify_SemanticWithoutAIUsesHeuristic(t *testing.T) {
	calls := 0
	v := NewVerifier(replying("false", &calls), "p")

	ok, err := v.Verify(context.Background(), "成功：登录成功", `{"code":0,"msg":"登录成功"}`, cases.AssertSemantic, false)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Zero(t, calls)
}

func TestVerify_SemanticWithAI(t *testing.T) {
	tests := []struct {
		reply string
		want  bool
	}{
		{"true", true},
		{"TRUE.", true},
		{"false", false},
		{"maybe", false},
	}
	for _, tt := range tests {
		t.Run(tt.reply, func(t *testing.T) {
			var gotUser string
			v := NewVerifier(llm.CompleterFunc(func(_ context.Context, _, user string) (string, error) {
				gotUser = user
				return tt.reply, nil
			}), "judge prompt")

			ok, err := v.Verify(context.Background(), "login succeeds", `{"msg":"welcome"}`, cases.AssertSemantic, true)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ok)
			assert.Equal(t, "A (expected): login succeeds\nB (actual): {\"msg\":\"welcome\"}", gotUser)
		})
	}
}

func TestVerify_AIWithoutModel(t *testing.T) {
	_, err := NewVerifier(nil, "").Verify(context.Background(), "a", "b", cases.AssertSemantic, true)
	assert.Error(t, err)
}

func TestVerify_TransportError(t *testing.T) {
	v := NewVerifier(llm.CompleterFunc(func(context.Context, string, string) (string, error) {
		return "", errors.New("down")
	}), "p")

	ok, err := v.Verify(context.Background(), "a", "b", cases.AssertSemantic, true)
	assert.False(t, ok)
	assert.ErrorContains(t, err, "down")
}

func TestStrategy(t *testing.T) {
	defaults := config.Execution{DefaultAssertType: cases.AssertSemantic, UseAIAssertion: true}
	no := false

	typ, ai := Strategy(cases.TestCase{}, defaults)
	assert.Equal(t, cases.AssertSemantic, typ)
	assert.True(t, ai)

	typ, ai = Strategy(cases.TestCase{AssertType: cases.AssertExact, UseAIAssertion: &no}, defaults)
	assert.Equal(t, cases.AssertExact, typ)
	assert.False(t, ai)

	typ, _ = Strategy(cases.TestCase{}, config.Execution{})
	assert.Equal(t, cases.AssertSemantic, typ)
}
