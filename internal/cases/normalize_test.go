package cases

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize_LiftsRequestWrapper(t *testing.T) {
	raw := map[string]any{
		"title": "login ok",
		"request": map[string]any{
			"url":     "/api/login",
			"method":  "POST",
			"headers": map[string]any{"X-Trace": "1"},
			"body":    map[string]any{"user": "a"},
		},
	}

	got := Normalize(raw)

	assert.Equal(t, map[string]any{
		"title":   "login ok",
		"url":     "/api/login",
		"method":  "POST",
		"headers": map[string]any{"X-Trace": "1"},
		"data":    map[string]any{"user": "a"},
	}, got)
}

func TestNormalize_FlatKeysWin(t *testing.T) {
	raw := map[string]any{
		"url":    "/flat",
		"params": map[string]any{"flat": true},
		"request": map[string]any{
			"url":    "/nested",
			"method": "DELETE",
			"query":  map[string]any{"nested": true},
		},
	}

	got := Normalize(raw)

	assert.Equal(t, "/flat", got["url"])
	assert.Equal(t, "DELETE", got["method"])
	assert.Equal(t, map[string]any{"flat": true}, got["params"])
	assert.NotContains(t, got, "request")
}

func TestNormalize_AliasPrecedence(t *testing.T) {
	tests := []struct {
		name       string
		request    map[string]any
		wantParams any
		wantData   any
	}{
		{
			name:       "query before query_params",
			request:    map[string]any{"query": map[string]any{"x": 1}, "query_params": map[string]any{"y": 2}},
			wantParams: map[string]any{"x": 1},
		},
		{
			name:       "params before query",
			request:    map[string]any{"params": map[string]any{"p": 1}, "query": map[string]any{"q": 1}},
			wantParams: map[string]any{"p": 1},
		},
		{
			name:       "null alias skipped",
			request:    map[string]any{"params": nil, "query_params": map[string]any{"y": 2}},
			wantParams: map[string]any{"y": 2},
		},
		{
			name:     "data before body before json",
			request:  map[string]any{"json": map[string]any{"j": 1}, "body": map[string]any{"b": 1}, "data": map[string]any{"d": 1}},
			wantData: map[string]any{"d": 1},
		},
		{
			name:     "body before json",
			request:  map[string]any{"json": map[string]any{"j": 1}, "body": map[string]any{"b": 1}},
			wantData: map[string]any{"b": 1},
		},
		{
			name:     "json alone",
			request:  map[string]any{"json": map[string]any{"j": 1}},
			wantData: map[string]any{"j": 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(map[string]any{"request": tt.request})
			assert.Equal(t, tt.wantParams, got["params"])
			assert.Equal(t, tt.wantData, got["data"])
			assert.NotContains(t, got, "request")
		})
	}
}

func TestNormalize_WrapperAlwaysRemoved(t *testing.T) {
	assert.Equal(t, map[string]any{"url": "/x"}, Normalize(map[string]any{"url": "/x", "request": map[string]any{}}))
	assert.Equal(t, map[string]any{"url": "/x"}, Normalize(map[string]any{"url": "/x", "request": "GET /x"}))
}

func TestNormalize_TopLevelBodyRenamed(t *testing.T) {
	got := Normalize(map[string]any{"url": "/x", "body": map[string]any{"a": 1}})
	assert.Equal(t, map[string]any{"url": "/x", "data": map[string]any{"a": 1}}, got)

	kept := Normalize(map[string]any{"data": "d", "body": "b"})
	assert.Equal(t, "d", kept["data"])
	assert.Equal(t, "b", kept["body"])
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []map[string]any{
		{"url": "/a", "method": "GET"},
		{"request": map[string]any{"url": "/b", "query": map[string]any{"q": "1"}, "json": map[string]any{"k": "v"}}},
		{"body": map[string]any{"a": 1}},
		{"data": "d", "body": "b", "request": map[string]any{"body": "ignored"}},
		{"request": []any{"not", "a", "map"}},
		{},
	}

	for _, in := range inputs {
		once := Normalize(deepCopy(in))
		twice := Normalize(deepCopy(once))
		if diff := cmp.Diff(once, twice); diff != "" {
			t.Errorf("Normalize not idempotent (-once +twice):\n%s", diff)
		}
	}
}

func TestNormalizeAll_DropsNonMappings(t *testing.T) {
	got := NormalizeAll([]any{
		map[string]any{"request": map[string]any{"url": "/a"}},
		"stray string",
		42.0,
		nil,
		map[string]any{"url": "/b", "method": "post"},
	})

	require.Len(t, got, 2)
	assert.Equal(t, "/a", got[0].URL)
	assert.Equal(t, "GET", got[0].Method)
	assert.Equal(t, "/b", got[1].URL)
	assert.Equal(t, "POST", got[1].Method)
}

// deepCopy clones the nested map shapes used in these tests.
func deepCopy(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		if nested, ok := v.(map[string]any); ok {
			out[k] = deepCopy(nested)
			continue
		}
		out[k] = v
	}
	return out
}
