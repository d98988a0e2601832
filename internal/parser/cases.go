package parser

import (
	"encoding/json"
	"fmt"

	"github.com/tailscale/hujson"
	"github.com/titanous/json5"

	"github.com/CodexForgeBR/casegen/internal/logging"
)

// ParseCases decodes payload into a list of raw cases. It never returns an
// error: anything unrecoverable degrades to an empty list plus a warning so
// one malformed generation cannot abort a batch.
//
// Decoding order is strict JSON, then JWCC (comments and trailing commas),
// then JSON5 (unquoted keys, single quotes, comments mixed with either). A single object is wrapped in a
// one-element list. List elements are returned as-is; non-object elements are
// dropped later by the normalizer.
func ParseCases(payload string) []any {
	data, err := decodeLenient(payload)
	if err != nil {
		logging.Warn(fmt.Sprintf("Failed to parse JSON payload: %v", err))
		return []any{}
	}

	switch v := data.(type) {
	case map[string]any:
		return []any{v}
	case []any:
		return v
	default:
		logging.Warn(fmt.Sprintf("Unsupported JSON payload for test cases (%T)", data))
		return []any{}
	}
}

// ExtractCases is ExtractPayload followed by ParseCases.
func ExtractCases(output string) []any {
	return ParseCases(ExtractPayload(output))
}

func decodeLenient(payload string) (any, error) {
	var data any
	strictErr := json.Unmarshal([]byte(payload), &data)
	if strictErr == nil {
		return data, nil
	}

	if std, err := hujson.Standardize([]byte(payload)); err == nil {
		data = nil
		if err := json.Unmarshal(std, &data); err == nil {
			return data, nil
		}
	}

	data = nil
	if err := json5.Unmarshal([]byte(payload), &data); err != nil {
		return nil, fmt.Errorf("strict: %v; relaxed: %w", strictErr, err)
	}
	return data, nil
}
