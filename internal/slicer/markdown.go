package slicer

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

// MarkdownSplitter splits on top-level headings found by a CommonMark
// parser, so ATX and setext headings are recognised and anything inside code
// blocks, lists or block quotes is not.
type MarkdownSplitter struct {
	levels map[int]bool
	parser parser.Parser
}

// NewMarkdownSplitter creates a splitter for the given heading levels.
func NewMarkdownSplitter(headerLevels []int) *MarkdownSplitter {
	return &MarkdownSplitter{
		levels: levelSet(headerLevels),
		parser: goldmark.New().Parser(),
	}
}

// Split implements Splitter.
func (s *MarkdownSplitter) Split(src string) []Chunk {
	source := []byte(src)
	doc := s.parser.Parse(text.NewReader(source))

	var cuts []section
	tracker := headingTracker{}
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		h, ok := n.(*ast.Heading)
		if !ok || !s.levels[h.Level] || h.Lines().Len() == 0 {
			continue
		}
		title := headingText(h, source)
		tracker.enter(h.Level, title)
		cuts = append(cuts, section{
			start:    lineStart(source, h.Lines().At(0).Start),
			title:    title,
			metadata: tracker.metadata(),
		})
	}

	return assemble(src, cutAt(src, cuts))
}

func headingText(h *ast.Heading, source []byte) string {
	var b strings.Builder
	lines := h.Lines()
	for i := 0; i < lines.Len(); i++ {
		if i > 0 {
			b.WriteByte(' ')
		}
		seg := lines.At(i)
		b.Write(seg.Value(source))
	}
	return strings.TrimSpace(b.String())
}

// lineStart returns the offset of the first byte of the line holding pos.
func lineStart(source []byte, pos int) int {
	for pos > 0 && source[pos-1] != '\n' {
		pos--
	}
	return pos
}
