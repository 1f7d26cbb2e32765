// Package sfsapi parses responses returned by the simple-file-server REST
// API. The server answers uploads with the server-relative path of the stored
// file as plain text and directory listings as a JSON document.
package sfsapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// ListEntry describes one file reported by a directory listing.
type ListEntry struct {
	Name    string    `json:"name"`
	Size    int64     `json:"size"`
	ModTime time.Time `json:"modTime"`
	Dir     bool      `json:"dir,omitempty"`
}

// StoredPath extracts the server-relative path confirmed by an upload
// response. The path is normalized to carry a single leading slash.
func StoredPath(body []byte) (string, error) {
	raw := strings.TrimSpace(string(body))
	if raw == "" {
		return "", fmt.Errorf("sfsapi: empty upload response")
	}
	// Some proxies wrap the path into a JSON string; unwrap it.
	if strings.HasPrefix(raw, `"`) {
		var unquoted string
		if err := json.Unmarshal([]byte(raw), &unquoted); err == nil {
			raw = strings.TrimSpace(unquoted)
		}
	}
	if strings.Contains(raw, "\n") {
		return "", fmt.Errorf("sfsapi: malformed upload response %q", raw)
	}
	if !strings.HasPrefix(raw, "/") {
		raw = "/" + raw
	}
	return raw, nil
}

// ParseListing decodes a directory listing. Both a bare JSON array and an
// object carrying the array under "files" are accepted.
func ParseListing(body []byte) ([]ListEntry, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil, nil
	}

	var entries []ListEntry
	if err := json.Unmarshal(trimmed, &entries); err == nil {
		return entries, nil
	}

	var envelope struct {
		Files []ListEntry `json:"files"`
	}
	if err := json.Unmarshal(trimmed, &envelope); err != nil {
		return nil, fmt.Errorf("sfsapi: decode listing: %w", err)
	}
	return envelope.Files, nil
}
