package prompt

import (
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// FeedbackDelimiter separates chunk text from the previous round's review.
const FeedbackDelimiter = "\n\n[Judge Feedback]\n"

// GenerationInput builds the user turn for a generation call. Feedback, when
// present, is appended under FeedbackDelimiter.
func GenerationInput(chunk, feedback string) string {
	if feedback == "" {
		return chunk
	}
	return strings.TrimSpace(chunk + FeedbackDelimiter + feedback)
}

// JudgeInput pairs the chunk with a JSON rendering of the candidate cases.
func JudgeInput(chunk string, cases []any) string {
	return fmt.Sprintf("[Document Chunk]\n%s\n\n[Generated Cases]\n%s", chunk, renderCases(cases))
}

func renderCases(cases []any) string {
	if cases == nil {
		cases = []any{}
	}
	out, err := json.MarshalIndent(cases, "", "  ")
	if err != nil {
		return fmt.Sprintf("%v", cases)
	}
	return string(out)
}

// AssertionInput builds the user turn for a semantic assertion.
func AssertionInput(expected, actual string) string {
	return fmt.Sprintf("A (expected): %s\nB (actual): %s", expected, actual)
}

// GlobalContext renders global variables as a "Global Vars:" block. Empty
// input renders as "".
func GlobalContext(vars map[string]any) (string, error) {
	if len(vars) == 0 {
		return "", nil
	}
	dumped, err := yaml.Marshal(vars)
	if err != nil {
		return "", fmt.Errorf("failed to render global vars: %w", err)
	}
	return "Global Vars:\n" + strings.TrimSpace(string(dumped)), nil
}

// WithContext prepends a context block to content, separated by a blank line.
func WithContext(context, content string) string {
	if context == "" {
		return content
	}
	return strings.TrimSpace(context + "\n\n" + content)
}
