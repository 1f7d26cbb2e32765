package sfssdk

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModeMock(t *testing.T) {
	t.Setenv(envMode, "mock")
	t.Setenv(envAPIURL, "")
	t.Setenv(envMockSeed, "")

	client, mode, err := NewFromEnv()
	require.NoError(t, err)
	assert.Equal(t, modeMock, mode)

	_, err = client.Put(context.Background(), "a.txt", []byte("x"), "text/plain")
	require.NoError(t, err)
}

func TestModeMockWithSeed(t *testing.T) {
	seedPath := filepath.Join(t.TempDir(), "seed.json")
	payload := `[{"path":"seeded/a.txt","base64":"aGVsbG8=","content_type":"text/plain"}]`
	require.NoError(t, os.WriteFile(seedPath, []byte(payload), 0o644))

	t.Setenv(envMode, "mock")
	t.Setenv(envMockSeed, seedPath)

	client, mode, err := NewFromEnv()
	require.NoError(t, err)
	assert.Equal(t, modeMock, mode)

	data, _, err := client.Get(context.Background(), "seeded/a.txt")
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))
}

func TestModeHTTPRequiresURL(t *testing.T) {
	t.Setenv(envMode, "http")
	t.Setenv(envAPIURL, "")

	_, _, err := NewFromEnv()
	assert.ErrorContains(t, err, envAPIURL)
}

func TestModeAutoPrefersHTTP(t *testing.T) {
	t.Setenv(envMode, "auto")
	t.Setenv(envAPIURL, "http://127.0.0.1:4000")

	client, mode, err := NewFromEnv()
	require.NoError(t, err)
	assert.Equal(t, modeHTTP, mode)
	assert.Equal(t, "http://127.0.0.1:4000", client.BaseURL())
}

func TestModeAutoFallsBackToMock(t *testing.T) {
	t.Setenv(envMode, "auto")
	t.Setenv(envAPIURL, "")
	t.Setenv(envMockSeed, "")

	_, mode, err := NewFromEnv()
	require.NoError(t, err)
	assert.Equal(t, modeMock, mode)
}

func TestUnsupportedMode(t *testing.T) {
	t.Setenv(envMode, "bogus")
	_, _, err := NewFromEnv()
	assert.ErrorContains(t, err, "unsupported")
}
