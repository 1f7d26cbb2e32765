package sfssdk

import (
	"fmt"
	"os"
	"strings"

	"github.com/sfskit/sfs_sdk_go/internal/seed"
	"github.com/sfskit/sfs_sdk_go/pkg/sfs"
	sfsmock "github.com/sfskit/sfs_sdk_go/pkg/sfs/mock"
)

const (
	envMode     = "SFS_RUNTIME_MODE"
	envAPIURL   = "SFS_API_URL"
	envMockSeed = "SFS_MOCK_SEED"
	modeAuto    = "auto"
	modeHTTP    = "http"
	modeMock    = "mock"
)

// NewFromEnv initialises a file-server client based on environment variables
// and returns the resolved mode ("http" or "mock"). In auto mode the HTTP
// client is used when SFS_API_URL is set, otherwise an in-memory mock is
// produced, optionally seeded from SFS_MOCK_SEED.
func NewFromEnv() (*sfs.Client, string, error) {
	mode := strings.ToLower(strings.TrimSpace(os.Getenv(envMode)))
	apiURL := strings.TrimSpace(os.Getenv(envAPIURL))

	switch mode {
	case "", modeAuto:
		if apiURL != "" {
			return newHTTPClient()
		}
		return newMockClient()
	case modeHTTP:
		if apiURL == "" {
			return nil, "", fmt.Errorf("sfssdk: HTTP mode requires %s", envAPIURL)
		}
		return newHTTPClient()
	case modeMock:
		return newMockClient()
	default:
		return nil, "", fmt.Errorf("sfssdk: unsupported %s value %q", envMode, mode)
	}
}

func newHTTPClient() (*sfs.Client, string, error) {
	client, err := sfs.NewFromEnv()
	if err != nil {
		return nil, "", fmt.Errorf("sfssdk: init HTTP client: %w", err)
	}
	return client, modeHTTP, nil
}

func newMockClient() (*sfs.Client, string, error) {
	store := sfsmock.New()
	if path := strings.TrimSpace(os.Getenv(envMockSeed)); path != "" {
		entries, err := seed.LoadFiles(path)
		if err != nil {
			return nil, "", fmt.Errorf("sfssdk: load mock seed: %w", err)
		}
		if err := store.Seed(entries); err != nil {
			return nil, "", fmt.Errorf("sfssdk: apply mock seed: %w", err)
		}
	}
	return sfs.NewWithBackend(store), modeMock, nil
}
