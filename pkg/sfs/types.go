package sfs

import (
	"errors"
	"fmt"
	"time"
)

// FileStat describes a stored file.
type FileStat struct {
	Path        string
	Size        int64
	ContentType string
	ModTime     *time.Time
}

// Entry describes one item reported by List.
type Entry struct {
	Name    string
	Size    int64
	ModTime time.Time
	Dir     bool
}

// ErrNotFound indicates the requested file is missing on the server.
var ErrNotFound = errors.New("sfs: not found")

// ConnectionError indicates the server could not be reached, including
// request timeouts.
type ConnectionError struct {
	URL string
	Err error
}

func (e *ConnectionError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("sfs: connect %s: %v", e.URL, e.Err)
}

func (e *ConnectionError) Unwrap() error { return e.Err }

// APIError indicates the server answered with a non-success status.
type APIError struct {
	StatusCode int
	Body       []byte
}

func (e *APIError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("sfs: api error: status=%d body=%s", e.StatusCode, string(e.Body))
}
