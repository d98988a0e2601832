package pipeline

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/CodexForgeBR/casegen/internal/config"
	"github.com/CodexForgeBR/casegen/internal/logging"
)

// ErrNoDocumentContent means there was nothing to generate from. It is
// distinct from a run where the model produced no cases.
var ErrNoDocumentContent = errors.New("no document content found to generate cases")

var docExtensions = map[string]bool{".md": true, ".txt": true}

// LoadDocuments reads docPath when set (it must exist), otherwise every .md
// and .txt file directly under rawDir in name order. Contents are joined with
// a blank line and trimmed. A missing rawDir yields no content.
func LoadDocuments(rawDir, docPath string) (string, []string, error) {
	var paths []string
	if docPath != "" {
		if _, err := os.Stat(docPath); err != nil {
			return "", nil, fmt.Errorf("document not found: %w", err)
		}
		paths = []string{docPath}
	} else {
		entries, err := os.ReadDir(rawDir)
		if errors.Is(err, os.ErrNotExist) {
			logging.Warn(fmt.Sprintf("Raw docs directory not found: %s", rawDir))
			return "", nil, nil
		}
		if err != nil {
			return "", nil, fmt.Errorf("list raw docs: %w", err)
		}
		for _, e := range entries {
			if e.IsDir() || !docExtensions[filepath.Ext(e.Name())] {
				continue
			}
			paths = append(paths, filepath.Join(rawDir, e.Name()))
		}
		sort.Strings(paths)
	}

	contents := make([]string, 0, len(paths))
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			return "", nil, fmt.Errorf("read document: %w", err)
		}
		contents = append(contents, string(data))
	}
	return strings.TrimSpace(strings.Join(contents, "\n\n")), paths, nil
}

// LoadGlobalVars reads the global variables file when enabled. A missing
// file is a warning, not an error.
func LoadGlobalVars(cfg config.GlobalVars) (map[string]any, error) {
	if !cfg.Enabled {
		return nil, nil
	}
	data, err := os.ReadFile(cfg.Path)
	if errors.Is(err, os.ErrNotExist) {
		logging.Warn(fmt.Sprintf("Global vars file not found: %s", cfg.Path))
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read global vars: %w", err)
	}

	var vars map[string]any
	if err := yaml.Unmarshal(data, &vars); err != nil {
		return nil, fmt.Errorf("parse global vars %s: %w", cfg.Path, err)
	}
	return vars, nil
}
