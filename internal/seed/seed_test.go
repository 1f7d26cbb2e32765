package seed

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFiles(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.json")
	payload := `[{"path":"docs/a.txt","base64":"aGVsbG8=","content_type":"text/plain"}]`
	require.NoError(t, os.WriteFile(path, []byte(payload), 0o644))

	entries, err := LoadFiles(path)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "docs/a.txt", entries[0].Path)
	assert.Equal(t, "text/plain", entries[0].ContentType)
}

func TestLoadFilesMissingPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"base64":"aGk="}]`), 0o644))

	_, err := LoadFiles(path)
	assert.ErrorContains(t, err, "missing path")
}

func TestLoadFilesMissingFile(t *testing.T) {
	_, err := LoadFiles(filepath.Join(t.TempDir(), "absent.json"))
	assert.Error(t, err)
}
