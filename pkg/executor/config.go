package executor

import (
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
	"time"
)

// Config describes one executor invocation. It is consumed once at
// construction and never mutated afterwards.
type Config struct {
	// Host is the address of the file server (IP, domain name, or localhost).
	Host string

	// Port is the file-server port, 1-65535.
	Port int

	// Workspace is the absolute path used as the server-side storage root.
	// The generated compose file lives here as well.
	Workspace string

	// Teardown stops the hosting container when the executor is closed.
	Teardown bool

	// ExternalHost, when set, is the base used to build the external_url tag
	// on document descriptors (for example an ngrok or CDN address).
	ExternalHost string

	// WriteKey and ReadKey are the optional shared keys of the server.
	WriteKey string
	ReadKey  string

	// Timeout bounds each request; zero selects the default.
	Timeout time.Duration

	// Retries is the retry budget for transient failures. Zero selects the
	// default, negative disables retries.
	Retries int

	// AutoStart generates a compose file and starts the container when the
	// server is unreachable at construction time.
	AutoStart bool

	// StartWait bounds how long AutoStart waits for the container to answer.
	StartWait time.Duration

	// LogLevel is passed to the container via LOG_LEVEL.
	LogLevel string

	// OmitFileURLTag suppresses the file_url tag on descriptors.
	OmitFileURLTag bool
}

const (
	defaultTimeout   = 10 * time.Second
	defaultStartWait = 15 * time.Second
)

// ConfigError reports an invalid configuration field.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("executor: invalid config: %s: %s", e.Field, e.Reason)
}

// Validate checks the configuration, returning a *ConfigError on the first
// violation.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Host) == "" {
		return &ConfigError{Field: "host", Reason: "must not be empty"}
	}
	if c.Port < 1 || c.Port > 65535 {
		return &ConfigError{Field: "port", Reason: fmt.Sprintf("%d out of range 1-65535", c.Port)}
	}
	if strings.TrimSpace(c.Workspace) == "" {
		return &ConfigError{Field: "workspace", Reason: "must not be empty"}
	}
	if !filepath.IsAbs(c.Workspace) {
		return &ConfigError{Field: "workspace", Reason: fmt.Sprintf("%q is not an absolute path", c.Workspace)}
	}
	if c.ExternalHost != "" {
		parsed, err := url.Parse(c.ExternalHost)
		if err != nil || parsed.Scheme == "" || parsed.Host == "" {
			return &ConfigError{Field: "external_host", Reason: fmt.Sprintf("%q is not an absolute URL", c.ExternalHost)}
		}
	}
	if c.Timeout < 0 {
		return &ConfigError{Field: "timeout", Reason: "must not be negative"}
	}
	return nil
}

// BaseURL returns the server address derived from host and port.
func (c Config) BaseURL() string {
	return fmt.Sprintf("http://%s:%d", c.Host, c.Port)
}

func (c Config) withDefaults() Config {
	if c.Timeout == 0 {
		c.Timeout = defaultTimeout
	}
	if c.StartWait == 0 {
		c.StartWait = defaultStartWait
	}
	return c
}
