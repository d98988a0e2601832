package slicer

import "strings"

// Filter decides whether a chunk describes an interface worth generating
// cases for.
type Filter struct {
	MinContentLength int
	IncludeKeywords  []string
	ExcludeKeywords  []string
}

// Keep reports whether c passes the filter. Chunks whose trimmed content is
// shorter than MinContentLength are always rejected. Any exclude keyword in
// title+content (case-insensitive) rejects. When include keywords are set at
// least one must appear; otherwise the chunk is kept.
func (f Filter) Keep(c Chunk) bool {
	content := strings.TrimSpace(c.Content)
	if len([]rune(content)) < f.MinContentLength {
		return false
	}

	haystack := strings.ToLower(strings.TrimSpace(c.Title) + "\n" + content)
	for _, kw := range f.ExcludeKeywords {
		if strings.Contains(haystack, strings.ToLower(kw)) {
			return false
		}
	}
	if len(f.IncludeKeywords) == 0 {
		return true
	}
	for _, kw := range f.IncludeKeywords {
		if strings.Contains(haystack, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}
