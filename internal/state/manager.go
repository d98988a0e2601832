package state

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

const reportFileName = "last-run.json"

// SaveReport persists the run report as indented JSON.
func SaveReport(r *RunReport, dir string) error {
	data, err := json.MarshalIndent(r, "", "    ")
	if err != nil {
		return fmt.Errorf("marshal run report: %w", err)
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create state dir: %w", err)
	}

	path := filepath.Join(dir, reportFileName)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write run report: %w", err)
	}

	return nil
}

// LoadReport reads the last run report from the state directory.
func LoadReport(dir string) (*RunReport, error) {
	path := filepath.Join(dir, reportFileName)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read run report: %w", err)
	}

	var r RunReport
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("unmarshal run report: %w", err)
	}

	return &r, nil
}

// HashFile returns the lowercase hexadecimal SHA-256 digest of the entire
// contents of filePath.
func HashFile(filePath string) (string, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}

// HashDocuments records the hash of every path.
func HashDocuments(paths []string) ([]DocumentRecord, error) {
	records := make([]DocumentRecord, 0, len(paths))
	for _, p := range paths {
		sum, err := HashFile(p)
		if err != nil {
			return nil, fmt.Errorf("hash document: %w", err)
		}
		records = append(records, DocumentRecord{Path: p, SHA256: sum})
	}
	return records, nil
}

// ChangedDocuments lists the documents of r that are missing or whose
// content no longer matches the recorded hash.
func ChangedDocuments(r *RunReport) []string {
	var changed []string
	for _, d := range r.Documents {
		sum, err := HashFile(d.Path)
		if err != nil || sum != d.SHA256 {
			changed = append(changed, d.Path)
		}
	}
	return changed
}
