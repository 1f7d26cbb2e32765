// Package executor turns a configuration plus an operation into REST calls
// against a simple-file-server instance. It can start the hosting container
// when the server is down and tear it down again once the work is done.
package executor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/sfskit/sfs_sdk_go/internal/compose"
	"github.com/sfskit/sfs_sdk_go/internal/docker"
	"github.com/sfskit/sfs_sdk_go/internal/runner"
	"github.com/sfskit/sfs_sdk_go/pkg/sfs"
)

// Executor issues file operations against the server described by its
// configuration.
type Executor struct {
	cfg    Config
	client *sfs.Client
	run    runner.Runner
	log    *slog.Logger

	teardownOnce sync.Once
}

// Option configures an Executor beyond its Config.
type Option func(*Executor)

// WithLogger sets the structured logger. Library code logs nothing by
// default.
func WithLogger(log *slog.Logger) Option {
	return func(e *Executor) {
		if log != nil {
			e.log = log
		}
	}
}

// WithRunner overrides how container lifecycle commands are executed.
func WithRunner(r runner.Runner) Option {
	return func(e *Executor) {
		if r != nil {
			e.run = r
		}
	}
}

// WithClient overrides the file-server client, bypassing host and port.
func WithClient(c *sfs.Client) Option {
	return func(e *Executor) {
		if c != nil {
			e.client = c
		}
	}
}

// New validates the configuration, builds the client, and probes the server.
// When the server is unreachable and AutoStart is set, the hosting container
// is started from a generated compose file and probed again within StartWait.
func New(ctx context.Context, cfg Config, opts ...Option) (*Executor, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	e := &Executor{
		cfg: cfg.withDefaults(),
		run: runner.NewLocal(),
		log: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.client == nil {
		clientOpts := []sfs.Option{
			sfs.WithTimeout(e.cfg.Timeout),
			sfs.WithKeys(e.cfg.WriteKey, e.cfg.ReadKey),
		}
		if e.cfg.Retries != 0 {
			retries := e.cfg.Retries
			if retries < 0 {
				retries = 0
			}
			clientOpts = append(clientOpts, sfs.WithRetries(retries))
		}
		client, err := sfs.New(e.cfg.BaseURL(), clientOpts...)
		if err != nil {
			return nil, err
		}
		e.client = client
	}

	if err := e.ensureUp(ctx); err != nil {
		return nil, err
	}
	return e, nil
}

func (e *Executor) ensureUp(ctx context.Context) error {
	err := e.client.Ping(ctx)
	if err == nil {
		return nil
	}
	var connErr *sfs.ConnectionError
	if !errors.As(err, &connErr) || !e.cfg.AutoStart {
		return err
	}

	e.log.Info("file server unreachable, starting container",
		"base_url", e.client.BaseURL(), "workspace", e.cfg.Workspace)

	if !docker.Installed(ctx, e.run) {
		return fmt.Errorf("executor: server unreachable and docker is not available: %w", err)
	}

	doc, err := compose.Generate(compose.Params{
		Port:      e.cfg.Port,
		Workspace: e.cfg.Workspace,
		BaseURL:   e.cfg.BaseURL(),
		WriteKey:  e.cfg.WriteKey,
		ReadKey:   e.cfg.ReadKey,
		LogLevel:  e.cfg.LogLevel,
	})
	if err != nil {
		return err
	}
	composePath := compose.PathIn(e.cfg.Workspace)
	if err := e.run.WriteFile(ctx, composePath, doc, 0o644); err != nil {
		return fmt.Errorf("executor: write compose file: %w", err)
	}
	if err := docker.ComposeUp(ctx, e.run, composePath); err != nil {
		return err
	}

	deadline := time.Now().Add(e.cfg.StartWait)
	for {
		if err = e.client.Ping(ctx); err == nil {
			e.log.Info("file server started", "base_url", e.client.BaseURL())
			return nil
		}
		if !errors.As(err, &connErr) {
			return err
		}
		if time.Now().After(deadline) {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(500 * time.Millisecond):
		}
	}
}

// Store uploads data under a generated name and returns its descriptor. An
// empty mimeType is sniffed from the payload.
func (e *Executor) Store(ctx context.Context, data []byte, mimeType string) (*Document, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("executor: data is required")
	}
	if mimeType == "" {
		mimeType = http.DetectContentType(data)
	}
	docID := uuid.NewString()
	name := uuid.NewString() + extensionForType(mimeType)
	relPath := docID + "/" + name

	e.log.Debug("storing document", "path", relPath, "mime_type", mimeType, "size", len(data))
	stat, err := e.client.Put(ctx, relPath, data, mimeType)
	if err != nil {
		return nil, err
	}
	return e.describe(docID, stat.Path, mimeType, stat.Size), nil
}

// StoreFile uploads a local file, keeping its base name. The MIME type is
// derived from the extension, falling back to content sniffing.
func (e *Executor) StoreFile(ctx context.Context, localPath string) (*Document, error) {
	data, err := os.ReadFile(localPath)
	if err != nil {
		return nil, fmt.Errorf("executor: read %s: %w", localPath, err)
	}
	mimeType := mime.TypeByExtension(filepath.Ext(localPath))
	if mimeType == "" {
		mimeType = http.DetectContentType(data)
	}
	docID := uuid.NewString()
	relPath := docID + "/" + filepath.Base(localPath)

	stat, err := e.client.Put(ctx, relPath, data, mimeType)
	if err != nil {
		return nil, err
	}
	return e.describe(docID, stat.Path, mimeType, stat.Size), nil
}

// Fetch downloads the file stored under a server-relative path and returns
// its contents along with a descriptor.
func (e *Executor) Fetch(ctx context.Context, relPath string) ([]byte, *Document, error) {
	data, stat, err := e.client.Get(ctx, relPath)
	if err != nil {
		return nil, nil, err
	}
	return data, e.describe(docIDFromPath(stat.Path), stat.Path, stat.ContentType, stat.Size), nil
}

// List enumerates the files stored under a directory, one descriptor each.
// Subdirectories are skipped.
func (e *Executor) List(ctx context.Context, dir string) ([]*Document, error) {
	entries, err := e.client.List(ctx, dir)
	if err != nil {
		return nil, err
	}
	docs := make([]*Document, 0, len(entries))
	for _, entry := range entries {
		if entry.Dir {
			continue
		}
		relPath := path.Join("/", dir, entry.Name)
		mimeType := mime.TypeByExtension(path.Ext(entry.Name))
		docs = append(docs, e.describe(docIDFromPath(relPath), relPath, mimeType, entry.Size))
	}
	return docs, nil
}

// Delete removes the file stored under a server-relative path.
func (e *Executor) Delete(ctx context.Context, relPath string) error {
	return e.client.Delete(ctx, relPath)
}

// Close runs the optional teardown. It is safe to call more than once; the
// teardown is issued at most once, its failures are logged and never returned
// so they cannot mask the primary operation's result.
func (e *Executor) Close(ctx context.Context) error {
	e.teardownOnce.Do(func() {
		if !e.cfg.Teardown {
			e.log.Debug("teardown disabled, leaving file server running")
			return
		}
		composePath := compose.PathIn(e.cfg.Workspace)
		e.log.Info("tearing down file server", "compose_file", composePath)
		if err := docker.ComposeDown(ctx, e.run, composePath); err != nil {
			e.log.Warn("teardown failed", "error", err)
			return
		}
		if err := e.run.Remove(ctx, composePath); err != nil {
			e.log.Warn("compose file not removed", "error", err)
		}
		e.log.Info("file server stopped")
	})
	return nil
}

func (e *Executor) describe(docID, relPath, mimeType string, size int64) *Document {
	uri := e.client.BaseURL() + "/" + strings.TrimLeft(relPath, "/")
	tags := make(map[string]string)
	if !e.cfg.OmitFileURLTag {
		tags[TagFileURL] = uri
	}
	if e.cfg.ExternalHost != "" {
		tags[TagExternalURL] = externalURL(e.cfg.ExternalHost, relPath)
	}
	return &Document{
		ID:       docID,
		URI:      uri,
		MimeType: mimeType,
		Size:     size,
		Tags:     tags,
	}
}

func docIDFromPath(relPath string) string {
	trimmed := strings.TrimLeft(relPath, "/")
	if idx := strings.Index(trimmed, "/"); idx > 0 {
		return trimmed[:idx]
	}
	return ""
}
