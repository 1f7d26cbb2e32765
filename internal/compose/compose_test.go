package compose

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestGenerate(t *testing.T) {
	data, err := Generate(Params{
		Port:      4001,
		Workspace: "/srv/files",
		BaseURL:   "http://localhost:4001",
		WriteKey:  "wk",
		ReadKey:   "rk",
	})
	require.NoError(t, err)

	var parsed struct {
		Services map[string]struct {
			Image       string            `yaml:"image"`
			Ports       []string          `yaml:"ports"`
			Volumes     []string          `yaml:"volumes"`
			Environment map[string]string `yaml:"environment"`
			Restart     string            `yaml:"restart"`
		} `yaml:"services"`
	}
	require.NoError(t, yaml.Unmarshal(data, &parsed))

	svc, ok := parsed.Services["simple-file-server"]
	require.True(t, ok)
	assert.Equal(t, DefaultImage, svc.Image)
	assert.Equal(t, []string{"4001:4000"}, svc.Ports)
	assert.Equal(t, []string{"/srv/files:/data"}, svc.Volumes)
	assert.Equal(t, "http://localhost:4001", svc.Environment["LOCATION_BASE_URL"])
	assert.Equal(t, "wk", svc.Environment["WRITE_SHARED_KEY"])
	assert.Equal(t, "rk", svc.Environment["READ_SHARED_KEY"])
	assert.Equal(t, "info", svc.Environment["LOG_LEVEL"])
	assert.Equal(t, "unless-stopped", svc.Restart)
}

func TestGenerateValidation(t *testing.T) {
	_, err := Generate(Params{Workspace: "/srv/files"})
	assert.ErrorContains(t, err, "port")

	_, err = Generate(Params{Port: 4000})
	assert.ErrorContains(t, err, "workspace")
}

func TestPathIn(t *testing.T) {
	assert.Equal(t, "/srv/files/docker-compose.yml", PathIn("/srv/files"))
}
