// Package mock provides an in-memory file store that is API compatible with
// the HTTP-backed sfs client. It backs tests and the sandbox server.
package mock

import (
	"context"
	"encoding/base64"
	"fmt"
	"path"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/sfskit/sfs_sdk_go/internal/seed"
	"github.com/sfskit/sfs_sdk_go/pkg/sfs"
)

type fileEntry struct {
	data        []byte
	contentType string
	modTime     time.Time
}

// Store implements sfs.Backend with an in-memory file tree.
type Store struct {
	mu    sync.RWMutex
	files map[string]*fileEntry
	now   func() time.Time
}

// New constructs an empty store.
func New() *Store {
	return &Store{
		files: make(map[string]*fileEntry),
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// Seed loads files from seed entries.
func (s *Store) Seed(entries []seed.FileEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, e := range entries {
		data, err := base64.StdEncoding.DecodeString(e.Base64)
		if err != nil {
			return fmt.Errorf("mock sfs: decode base64 for %s: %w", e.Path, err)
		}
		s.files[normalize(e.Path)] = &fileEntry{
			data:        data,
			contentType: e.ContentType,
			modTime:     s.now(),
		}
	}
	return nil
}

// BaseURL returns a synthetic address for descriptor building.
func (s *Store) BaseURL() string { return "mock://sfs" }

// Ping always succeeds; the store is in-process.
func (s *Store) Ping(ctx context.Context) error {
	return ctx.Err()
}

// Put stores data under the given path.
func (s *Store) Put(ctx context.Context, p string, data []byte, contentType string) (*sfs.FileStat, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(p) == "" {
		return nil, fmt.Errorf("mock sfs: path is required")
	}
	norm := normalize(p)
	entry := &fileEntry{
		data:        append([]byte(nil), data...),
		contentType: contentType,
		modTime:     s.now(),
	}

	s.mu.Lock()
	s.files[norm] = entry
	s.mu.Unlock()

	mod := entry.modTime
	return &sfs.FileStat{
		Path:        norm,
		Size:        int64(len(entry.data)),
		ContentType: contentType,
		ModTime:     &mod,
	}, nil
}

// Get returns the stored contents for a path.
func (s *Store) Get(ctx context.Context, p string) ([]byte, *sfs.FileStat, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}
	norm := normalize(p)

	s.mu.RLock()
	entry, ok := s.files[norm]
	s.mu.RUnlock()
	if !ok {
		return nil, nil, fmt.Errorf("%w: %s", sfs.ErrNotFound, p)
	}
	mod := entry.modTime
	stat := &sfs.FileStat{
		Path:        norm,
		Size:        int64(len(entry.data)),
		ContentType: entry.contentType,
		ModTime:     &mod,
	}
	return append([]byte(nil), entry.data...), stat, nil
}

// List enumerates the direct children of a directory.
func (s *Store) List(ctx context.Context, dir string) ([]sfs.Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	prefix := normalize(dir)
	if prefix != "/" {
		prefix += "/"
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	byName := make(map[string]sfs.Entry)
	for p, entry := range s.files {
		if !strings.HasPrefix(p, prefix) {
			continue
		}
		rest := strings.TrimPrefix(p, prefix)
		if idx := strings.Index(rest, "/"); idx >= 0 {
			name := rest[:idx]
			if _, seen := byName[name]; !seen {
				byName[name] = sfs.Entry{Name: name, Dir: true}
			}
			continue
		}
		byName[rest] = sfs.Entry{
			Name:    rest,
			Size:    int64(len(entry.data)),
			ModTime: entry.modTime,
		}
	}

	entries := make([]sfs.Entry, 0, len(byName))
	for _, e := range byName {
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
	return entries, nil
}

// Delete removes a stored file.
func (s *Store) Delete(ctx context.Context, p string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	norm := normalize(p)

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.files[norm]; !ok {
		return fmt.Errorf("%w: %s", sfs.ErrNotFound, p)
	}
	delete(s.files, norm)
	return nil
}

// Len reports how many files the store holds.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.files)
}

func normalize(p string) string {
	cleaned := path.Clean("/" + strings.TrimSpace(p))
	return cleaned
}
