package cases

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/CodexForgeBR/casegen/internal/logging"
)

// Assertion strategies.
const (
	AssertExact    = "exact_match"
	AssertSemantic = "semantic_match"
)

// TestCase is the canonical, flat test case. Fields the schema does not name
// are kept in Extra and written back out unchanged.
type TestCase struct {
	Module         string
	Story          string
	Title          string
	Name           string
	URL            string
	Method         string
	Headers        map[string]any
	Params         map[string]any
	Data           any
	Expected       any
	AssertType     string
	UseAIAssertion *bool
	Extra          map[string]any
}

var knownKeys = map[string]bool{
	"module": true, "story": true, "title": true, "name": true,
	"url": true, "method": true, "headers": true, "params": true, "data": true,
	"expected": true, "assert_type": true, "use_ai_assertion": true,
}

// FromRaw converts a normalized mapping into a TestCase. Method defaults to
// GET. Headers, params and data default to empty mappings. A missing URL is
// left empty for the executor to skip.
func FromRaw(m map[string]any) TestCase {
	tc := TestCase{
		Module:     stringOf(m["module"]),
		Story:      stringOf(m["story"]),
		Title:      stringOf(m["title"]),
		Name:       stringOf(m["name"]),
		URL:        strings.TrimSpace(stringOf(m["url"])),
		Method:     strings.ToUpper(strings.TrimSpace(stringOf(m["method"]))),
		Headers:    mapOf("headers", m["headers"]),
		Params:     mapOf("params", m["params"]),
		Data:       m["data"],
		Expected:   m["expected"],
		AssertType: stringOf(m["assert_type"]),
	}
	if tc.Method == "" {
		tc.Method = "GET"
	}
	if tc.Data == nil {
		tc.Data = map[string]any{}
	}
	if b, ok := boolOf(m["use_ai_assertion"]); ok {
		tc.UseAIAssertion = &b
	}
	for k, v := range m {
		if knownKeys[k] {
			continue
		}
		if tc.Extra == nil {
			tc.Extra = map[string]any{}
		}
		tc.Extra[k] = v
	}
	return tc
}

// DisplayTitle returns the title, falling back to the name.
func (tc TestCase) DisplayTitle() string {
	if tc.Title != "" {
		return tc.Title
	}
	return tc.Name
}

// Map renders the case as a flat mapping.
func (tc TestCase) Map() map[string]any {
	m := make(map[string]any, len(tc.Extra)+len(knownKeys))
	for k, v := range tc.Extra {
		m[k] = v
	}
	putString(m, "module", tc.Module)
	putString(m, "story", tc.Story)
	putString(m, "title", tc.Title)
	putString(m, "name", tc.Name)
	putString(m, "assert_type", tc.AssertType)
	m["url"] = tc.URL
	m["method"] = tc.Method
	m["headers"] = orEmpty(tc.Headers)
	m["params"] = orEmpty(tc.Params)
	m["data"] = tc.Data
	if m["data"] == nil {
		m["data"] = map[string]any{}
	}
	if tc.Expected != nil {
		m["expected"] = tc.Expected
	}
	if tc.UseAIAssertion != nil {
		m["use_ai_assertion"] = *tc.UseAIAssertion
	}
	return m
}

// MarshalJSON implements json.Marshaler.
func (tc TestCase) MarshalJSON() ([]byte, error) {
	return json.Marshal(tc.Map())
}

// UnmarshalJSON implements json.Unmarshaler. The input is normalized first.
func (tc *TestCase) UnmarshalJSON(data []byte) error {
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	*tc = FromRaw(Normalize(m))
	return nil
}

func putString(m map[string]any, key, v string) {
	if v != "" {
		m[key] = v
	}
}

func orEmpty(m map[string]any) map[string]any {
	if m == nil {
		return map[string]any{}
	}
	return m
}

func stringOf(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	default:
		return fmt.Sprint(s)
	}
}

// mapOf coerces a headers or params value into a mapping. Lists of
// [key, value] pairs or {name|key, value} objects are converted; any other
// shape is dropped with a warning.
func mapOf(field string, v any) map[string]any {
	switch t := v.(type) {
	case nil:
		return map[string]any{}
	case map[string]any:
		return t
	case []any:
		if m, ok := pairsOf(t); ok {
			return m
		}
	}
	logging.Warn(fmt.Sprintf("Case %s is %s, not a mapping; dropping it", field, preview(v)))
	return map[string]any{}
}

func pairsOf(items []any) (map[string]any, bool) {
	out := make(map[string]any, len(items))
	for _, item := range items {
		switch p := item.(type) {
		case []any:
			if len(p) != 2 {
				return nil, false
			}
			k, ok := p[0].(string)
			if !ok {
				return nil, false
			}
			out[k] = p[1]
		case map[string]any:
			k, ok := p["name"].(string)
			if !ok {
				k, ok = p["key"].(string)
			}
			v, hasValue := p["value"]
			if !ok || !hasValue {
				return nil, false
			}
			out[k] = v
		default:
			return nil, false
		}
	}
	return out, true
}

func preview(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%T", v)
	}
	if len(b) > 80 {
		b = append(b[:77], "..."...)
	}
	return string(b)
}

func boolOf(v any) (bool, bool) {
	switch b := v.(type) {
	case bool:
		return b, true
	case string:
		parsed, err := strconv.ParseBool(strings.TrimSpace(b))
		return parsed, err == nil
	default:
		return false, false
	}
}
