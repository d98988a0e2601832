package assertion

import (
	"encoding/json"
	"fmt"
	"strings"
)

const (
	prefixSuccess = "成功"
	prefixFailure = "失败"
)

// Heuristic is the semantic match used without a model. When actual is a
// JSON object with a msg or message field, that message is compared with
// the key phrase of expected (the text after its last colon) and with the
// success/failure prefix of expected. Otherwise expected must appear in
// actual.
func Heuristic(expected, actual string) bool {
	expected = strings.TrimSpace(expected)
	actual = strings.TrimSpace(actual)

	msg := responseMessage(actual)
	key := keyPhrase(expected)

	if msg != "" {
		if key != "" && (strings.Contains(msg, key) || strings.Contains(key, msg)) {
			return true
		}
		if strings.HasPrefix(expected, prefixSuccess) {
			return strings.Contains(msg, prefixSuccess)
		}
		if strings.HasPrefix(expected, prefixFailure) {
			return strings.Contains(msg, prefixFailure)
		}
		if strings.Contains(expected, msg) {
			return true
		}
	}
	return strings.Contains(actual, expected)
}

// responseMessage extracts msg (or message) from a JSON object body.
func responseMessage(body string) string {
	var obj map[string]any
	if err := json.Unmarshal([]byte(body), &obj); err != nil {
		return ""
	}
	for _, k := range []string{"msg", "message"} {
		v, ok := obj[k]
		if !ok || v == nil {
			continue
		}
		if s := strings.TrimSpace(fmt.Sprint(v)); s != "" {
			return s
		}
	}
	return ""
}

// keyPhrase returns the text after the last full-width or ASCII colon. The
// full-width colon is checked first.
func keyPhrase(expected string) string {
	if i := strings.LastIndex(expected, "："); i >= 0 {
		return strings.Trim(expected[i+len("："):], " 。")
	}
	if i := strings.LastIndex(expected, ":"); i >= 0 {
		return strings.Trim(expected[i+1:], " .")
	}
	return ""
}
