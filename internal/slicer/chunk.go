// Package slicer cuts a document into titled chunks at heading boundaries
// and decides which chunks are worth generating cases for.
package slicer

import (
	"fmt"
	"strings"
)

// Chunk is a titled, contiguous slice of a source document.
type Chunk struct {
	Index    int               `json:"index"`
	Title    string            `json:"title"`
	Content  string            `json:"content"`
	Metadata map[string]string `json:"metadata"`
}

// Splitter turns document text into ordered chunks. Implementations must
// cover the whole input with no gaps or overlaps, drop chunks that are blank
// after trimming, and return a single index-0 chunk holding the original text
// when nothing else survives.
type Splitter interface {
	Split(text string) []Chunk
}

// Splitter names accepted by New.
const (
	StrategyMarkdown = "markdown"
	StrategyRegex    = "regex"
)

// New returns the splitter for strategy. Unknown or empty strategies select
// the regex splitter, which has no dependencies.
func New(strategy string, headerLevels []int) Splitter {
	switch strategy {
	case StrategyMarkdown:
		return NewMarkdownSplitter(headerLevels)
	default:
		return NewRegexSplitter(headerLevels)
	}
}

// levelKey is the metadata key for a heading level, e.g. "H2".
func levelKey(level int) string {
	return fmt.Sprintf("H%d", level)
}

// section is a pending chunk: its byte range plus the headings in force.
type section struct {
	start, end int
	title      string
	metadata   map[string]string
}

// levelSet normalizes configured header levels, defaulting to 1 and 2.
func levelSet(levels []int) map[int]bool {
	if len(levels) == 0 {
		levels = []int{1, 2}
	}
	set := make(map[int]bool, len(levels))
	for _, l := range levels {
		if l >= 1 && l <= 6 {
			set[l] = true
		}
	}
	return set
}

// headingTracker keeps the nearest enclosing heading text per level.
type headingTracker map[int]string

// enter records a heading and forgets every deeper one.
func (h headingTracker) enter(level int, text string) {
	for l := range h {
		if l >= level {
			delete(h, l)
		}
	}
	h[level] = text
}

func (h headingTracker) metadata() map[string]string {
	md := make(map[string]string, len(h))
	for l, text := range h {
		md[levelKey(l)] = text
	}
	return md
}

// assemble converts sections into chunks, dropping blank ones and
// guaranteeing at least one chunk.
func assemble(text string, sections []section) []Chunk {
	chunks := make([]Chunk, 0, len(sections))
	for _, s := range sections {
		content := text[s.start:s.end]
		if strings.TrimSpace(content) == "" {
			continue
		}
		chunks = append(chunks, Chunk{
			Index:    len(chunks),
			Title:    s.title,
			Content:  strings.TrimRight(content, "\n"),
			Metadata: s.metadata,
		})
	}
	if len(chunks) == 0 {
		return []Chunk{{Index: 0, Title: "", Content: text, Metadata: map[string]string{}}}
	}
	return chunks
}

// cutAt splits text at the given heading starts. Text before the first cut
// becomes a leading untitled section.
func cutAt(text string, cuts []section) []section {
	if len(cuts) == 0 {
		return []section{{start: 0, end: len(text), metadata: map[string]string{}}}
	}
	sections := make([]section, 0, len(cuts)+1)
	if cuts[0].start > 0 {
		sections = append(sections, section{start: 0, end: cuts[0].start, metadata: map[string]string{}})
	}
	for i, c := range cuts {
		c.end = len(text)
		if i+1 < len(cuts) {
			c.end = cuts[i+1].start
		}
		sections = append(sections, c)
	}
	return sections
}
