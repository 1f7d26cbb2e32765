package httpx

import (
	"fmt"
	"net/http"
	"strings"
)

// StatusError represents a non-2xx HTTP response returned by the remote
// service.
type StatusError struct {
	StatusCode int
	Body       []byte
	Header     http.Header
}

func (e *StatusError) Error() string {
	if e == nil {
		return "<nil>"
	}
	body := strings.TrimSpace(string(e.Body))
	if body == "" {
		return fmt.Sprintf("httpx: status %d", e.StatusCode)
	}
	return fmt.Sprintf("httpx: status %d: %s", e.StatusCode, body)
}

// Retryable reports whether the response status is considered transient.
func (e *StatusError) Retryable() bool {
	if e == nil {
		return false
	}
	return e.StatusCode == http.StatusTooManyRequests ||
		e.StatusCode == http.StatusRequestTimeout ||
		(e.StatusCode >= 500 && e.StatusCode <= 599)
}
