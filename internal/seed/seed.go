// Package seed loads JSON seed files used to pre-populate the in-memory mock
// file store for sandboxing and tests.
package seed

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// FileEntry describes one seeded file. Contents are base64 encoded so binary
// payloads survive the JSON round trip.
type FileEntry struct {
	Path        string `json:"path"`
	Base64      string `json:"base64"`
	ContentType string `json:"content_type,omitempty"`
}

// LoadFiles reads seed entries from the JSON document at path.
func LoadFiles(path string) ([]FileEntry, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("seed: read %s: %w", path, err)
	}
	var entries []FileEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("seed: decode %s: %w", path, err)
	}
	for i, e := range entries {
		if strings.TrimSpace(e.Path) == "" {
			return nil, fmt.Errorf("seed: entry %d missing path", i)
		}
	}
	return entries, nil
}
