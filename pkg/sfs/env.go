package sfs

import (
	"fmt"
	"os"
	"strings"
)

const (
	envAPIURL   = "SFS_API_URL"
	envWriteKey = "SFS_WRITE_KEY"
	envReadKey  = "SFS_READ_KEY"
)

// NewFromEnv initialises an HTTP client from SFS_API_URL and the optional
// SFS_WRITE_KEY / SFS_READ_KEY shared keys.
func NewFromEnv() (*Client, error) {
	baseURL := strings.TrimSpace(os.Getenv(envAPIURL))
	if baseURL == "" {
		return nil, fmt.Errorf("sfs: HTTP mode requires %s", envAPIURL)
	}
	return New(baseURL, WithKeys(os.Getenv(envWriteKey), os.Getenv(envReadKey)))
}
