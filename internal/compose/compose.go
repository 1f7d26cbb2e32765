// Package compose generates the docker-compose document used to run the
// simple-file-server container next to a workspace directory.
package compose

import (
	"fmt"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultImage is the published file-server container.
const DefaultImage = "flaviostutz/simple-file-server"

// FileName is the compose file written into the workspace.
const FileName = "docker-compose.yml"

// containerPort is the port the server listens on inside the container.
const containerPort = 4000

// Params describes the container configuration rendered into the compose
// document.
type Params struct {
	Image     string
	Port      int
	Workspace string
	BaseURL   string
	WriteKey  string
	ReadKey   string
	LogLevel  string
}

type composeFile struct {
	Services map[string]composeService `yaml:"services"`
}

type composeService struct {
	Image       string            `yaml:"image"`
	Ports       []string          `yaml:"ports,omitempty"`
	Volumes     []string          `yaml:"volumes,omitempty"`
	Environment map[string]string `yaml:"environment,omitempty"`
	Restart     string            `yaml:"restart"`
}

// Generate renders the compose document for the given parameters.
func Generate(p Params) ([]byte, error) {
	if p.Port <= 0 {
		return nil, fmt.Errorf("compose: port is required")
	}
	if p.Workspace == "" {
		return nil, fmt.Errorf("compose: workspace is required")
	}
	image := p.Image
	if image == "" {
		image = DefaultImage
	}
	logLevel := p.LogLevel
	if logLevel == "" {
		logLevel = "info"
	}

	cf := composeFile{
		Services: map[string]composeService{
			"simple-file-server": {
				Image:   image,
				Ports:   []string{fmt.Sprintf("%d:%d", p.Port, containerPort)},
				Volumes: []string{fmt.Sprintf("%s:/data", p.Workspace)},
				Environment: map[string]string{
					"WRITE_SHARED_KEY":  p.WriteKey,
					"READ_SHARED_KEY":   p.ReadKey,
					"LOCATION_BASE_URL": p.BaseURL,
					"LOG_LEVEL":         logLevel,
				},
				Restart: "unless-stopped",
			},
		},
	}

	data, err := yaml.Marshal(cf)
	if err != nil {
		return nil, fmt.Errorf("compose: marshal: %w", err)
	}
	return data, nil
}

// PathIn returns the compose file location inside a workspace.
func PathIn(workspace string) string {
	return filepath.Join(workspace, FileName)
}
