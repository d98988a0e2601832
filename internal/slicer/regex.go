package slicer

import (
	"regexp"
	"strings"
)

var (
	atxHeadingRe = regexp.MustCompile(`^ {0,3}(#{1,6})(?:[ \t]+(.*?))?(?:[ \t]+#+)?[ \t]*$`)
	fenceRe      = regexp.MustCompile("^ {0,3}(`{3,}|~{3,})(.*)$")
)

// RegexSplitter splits on ATX headings ("# Title") found line by line.
// Headings inside fenced code blocks are ignored.
type RegexSplitter struct {
	levels map[int]bool
}

// NewRegexSplitter creates a splitter for the given heading levels.
func NewRegexSplitter(headerLevels []int) *RegexSplitter {
	return &RegexSplitter{levels: levelSet(headerLevels)}
}

// Split implements Splitter.
func (s *RegexSplitter) Split(text string) []Chunk {
	var cuts []section
	tracker := headingTracker{}
	fence := ""
	offset := 0

	for _, line := range strings.SplitAfter(text, "\n") {
		lineStart := offset
		offset += len(line)
		bare := strings.TrimRight(line, "\r\n")

		if m := fenceRe.FindStringSubmatch(bare); m != nil {
			marker, info := m[1], m[2]
			switch {
			case fence == "":
				// A backtick info string may not contain backticks; such a
				// line is inline code, not a fence.
				if marker[0] != '`' || !strings.Contains(info, "`") {
					fence = marker
					continue
				}
			case closesFence(fence, marker, info):
				fence = ""
				continue
			default:
				continue
			}
		}
		if fence != "" {
			continue
		}

		m := atxHeadingRe.FindStringSubmatch(bare)
		if m == nil {
			continue
		}
		level := len(m[1])
		if !s.levels[level] {
			continue
		}
		title := strings.TrimSpace(m[2])
		tracker.enter(level, title)
		cuts = append(cuts, section{start: lineStart, title: title, metadata: tracker.metadata()})
	}

	return assemble(text, cutAt(text, cuts))
}

// closesFence reports whether a fence line ends the block opened by open:
// same character, at least as long, nothing but spaces after it.
func closesFence(open, marker, info string) bool {
	return marker[0] == open[0] && len(marker) >= len(open) && strings.TrimSpace(info) == ""
}
