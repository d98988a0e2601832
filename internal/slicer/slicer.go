package slicer

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/tmc/langchaingo/textsplitter"

	"github.com/CodexForgeBR/casegen/internal/logging"
)

// DocSlicer applies a Splitter and, when MaxChunkChars is positive, breaks
// oversized chunks into parts without overlap.
type DocSlicer struct {
	Splitter      Splitter
	MaxChunkChars int
}

// NewDocSlicer creates a slicer using the named splitter strategy.
func NewDocSlicer(strategy string, headerLevels []int, maxChunkChars int) *DocSlicer {
	return &DocSlicer{
		Splitter:      New(strategy, headerLevels),
		MaxChunkChars: maxChunkChars,
	}
}

// Slice splits text into chunks indexed in document order.
func (s *DocSlicer) Slice(text string) []Chunk {
	chunks := s.Splitter.Split(text)
	if s.MaxChunkChars <= 0 {
		return chunks
	}

	out := make([]Chunk, 0, len(chunks))
	for _, c := range chunks {
		for _, part := range s.subdivide(c) {
			part.Index = len(out)
			out = append(out, part)
		}
	}
	return out
}

func (s *DocSlicer) subdivide(c Chunk) []Chunk {
	if utf8.RuneCountInString(c.Content) <= s.MaxChunkChars {
		return []Chunk{c}
	}

	splitter := textsplitter.NewRecursiveCharacter(
		textsplitter.WithChunkSize(s.MaxChunkChars),
		textsplitter.WithChunkOverlap(0),
	)
	pieces, err := splitter.SplitText(c.Content)
	if err != nil || len(pieces) <= 1 {
		if err != nil {
			logging.Warn(fmt.Sprintf("Could not subdivide chunk %q: %v", c.Title, err))
		}
		return []Chunk{c}
	}

	title := c.Title
	if title == "" {
		title = "chunk"
	}
	parts := make([]Chunk, 0, len(pieces))
	for i, p := range pieces {
		if strings.TrimSpace(p) == "" {
			continue
		}
		parts = append(parts, Chunk{
			Title:    fmt.Sprintf("%s (part %d)", title, i+1),
			Content:  p,
			Metadata: c.Metadata,
		})
	}
	return parts
}
