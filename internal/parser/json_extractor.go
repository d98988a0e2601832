// Package parser turns raw model output into untyped case data.
//
// ExtractPayload isolates the JSON value inside free-form text. It tries a
// fenced-code-block extraction first, then falls back to bracket matching.
// ParseCases decodes that payload leniently and never fails.
package parser

import (
	"regexp"
	"strings"
)

// jsonFenceRe captures the body of a ```json ... ``` block.
var jsonFenceRe = regexp.MustCompile("(?is)```json\\s*(.*?)\\s*```")

// ExtractPayload returns the substring of text believed to hold one JSON
// value.
//
// Strategy:
//  1. If a ```json fenced code block exists, return its trimmed body.
//  2. Otherwise fall back to ScanPayload on the trimmed text.
func ExtractPayload(text string) string {
	if m := jsonFenceRe.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}
	return ScanPayload(strings.TrimSpace(text))
}

// ScanPayload finds the first '{' or '[' in text and walks forward counting
// nesting depth while respecting string literals (including escaped quotes).
// It returns the substring up to the bracket that brings depth back to zero.
// When there is no opening bracket, or nesting never closes, text is returned
// unchanged and the caller's parser fails gracefully.
func ScanPayload(text string) string {
	if payload, ok := scanBalanced(text); ok {
		return payload
	}
	return text
}

// scanBalanced locates the first '{' or '[' in s and returns the balanced
// value starting there. Object and array brackets share one depth counter.
func scanBalanced(s string) (string, bool) {
	start := strings.IndexAny(s, "{[")
	if start == -1 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(s); i++ {
		ch := s[i]

		if inString {
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"':
				inString = false
			}
			continue
		}

		switch ch {
		case '"':
			inString = true
		case '{', '[':
			depth++
		case '}', ']':
			depth--
			if depth == 0 {
				return s[start : i+1], true
			}
		}
	}

	return "", false
}
