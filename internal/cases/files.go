package cases

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"
)

var unsafeNameRe = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// SafeChunkFilename derives a per-chunk output file name from the chunk
// title. Titles with no usable characters fall back to chunk_<index>.
func SafeChunkFilename(title string, index int) string {
	cleaned := strings.Trim(unsafeNameRe.ReplaceAllString(title, "_"), "_")
	if cleaned == "" {
		cleaned = fmt.Sprintf("chunk_%d", index)
	}
	return cleaned + "_cases.json"
}

// OutputFilename names the single output file of a run: the stem of the
// requested document, the stem of the only document read, combined_<n> for
// several documents, or a timestamp when there is no document name at all.
func OutputFilename(sources []string, docPath string, now time.Time) string {
	switch {
	case docPath != "":
		return stem(docPath) + "_cases.json"
	case len(sources) == 1:
		return stem(sources[0]) + "_cases.json"
	case len(sources) > 1:
		return fmt.Sprintf("combined_%d_cases.json", len(sources))
	default:
		return "cases_" + now.Format("20060102_150405") + ".json"
	}
}

func stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// WriteFile writes cases as an indented JSON list, creating parent
// directories as needed. A nil slice is written as [].
func WriteFile(path string, cases []TestCase) error {
	if cases == nil {
		cases = []TestCase{}
	}
	data, err := json.MarshalIndent(cases, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal cases: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create cases dir: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("write cases file: %w", err)
	}
	return nil
}

// ReadFile reads a case file holding either a list of cases or one case.
// Elements that are not objects are skipped.
func ReadFile(path string) ([]TestCase, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read cases file: %w", err)
	}

	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse cases file %s: %w", path, err)
	}
	switch v := doc.(type) {
	case []any:
		return NormalizeAll(v), nil
	case map[string]any:
		return NormalizeAll([]any{v}), nil
	default:
		return nil, fmt.Errorf("parse cases file %s: expected a list or an object", path)
	}
}

// Source is the set of cases read from one file.
type Source struct {
	Path  string
	Cases []TestCase
}

// Collect reads every *.json file in dir, sorted by name. A missing
// directory yields no sources.
func Collect(dir string) ([]Source, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("list cases dir: %w", err)
	}
	sort.Strings(paths)

	sources := make([]Source, 0, len(paths))
	for _, p := range paths {
		cs, err := ReadFile(p)
		if err != nil {
			return nil, err
		}
		sources = append(sources, Source{Path: p, Cases: cs})
	}
	return sources, nil
}

// Flatten concatenates the cases of every source in order.
func Flatten(sources []Source) []TestCase {
	var out []TestCase
	for _, s := range sources {
		out = append(out, s.Cases...)
	}
	return out
}
