package sfs

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sfskit/sfs_sdk_go/internal/httpx"
	"github.com/sfskit/sfs_sdk_go/internal/sfsapi"
)

// Client provides access to a simple-file-server instance.
type Client struct {
	backend Backend
}

// Option configures the HTTP-backed client.
type Option func(*settings)

type settings struct {
	timeout    time.Duration
	retries    int
	hasRetries bool
	writeKey   string
	readKey    string
	httpClient *http.Client
}

// WithTimeout bounds every request issued by the client.
func WithTimeout(d time.Duration) Option {
	return func(s *settings) { s.timeout = d }
}

// WithRetries sets the maximum retry count for transient failures.
func WithRetries(max int) Option {
	return func(s *settings) {
		s.retries = max
		s.hasRetries = true
	}
}

// WithKeys configures the shared keys sent as bearer tokens on write and read
// operations. Empty keys disable authentication for that direction.
func WithKeys(writeKey, readKey string) Option {
	return func(s *settings) {
		s.writeKey = writeKey
		s.readKey = readKey
	}
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(s *settings) { s.httpClient = h }
}

// New constructs an HTTP-backed client for the provided base URL.
func New(baseURL string, opts ...Option) (*Client, error) {
	var s settings
	for _, opt := range opts {
		opt(&s)
	}

	httpOpts := []httpx.Option{}
	if s.timeout > 0 {
		httpOpts = append(httpOpts, httpx.WithTimeout(s.timeout))
	}
	if s.hasRetries {
		policy := httpx.DefaultRetryPolicy
		policy.MaxRetries = s.retries
		httpOpts = append(httpOpts, httpx.WithRetryPolicy(policy))
	}
	if s.httpClient != nil {
		httpOpts = append(httpOpts, httpx.WithHTTPClient(s.httpClient))
	}

	cl, err := httpx.NewClient(baseURL, httpOpts...)
	if err != nil {
		return nil, fmt.Errorf("sfs: %w", err)
	}
	return NewWithBackend(&httpBackend{
		client:   cl,
		writeKey: s.writeKey,
		readKey:  s.readKey,
	}), nil
}

// NewWithBackend allows callers to provide a custom backend (e.g., mocks).
func NewWithBackend(b Backend) *Client {
	return &Client{backend: b}
}

// BaseURL returns the server address the client talks to.
func (c *Client) BaseURL() string {
	if c == nil || c.backend == nil {
		return ""
	}
	return c.backend.BaseURL()
}

// Ping checks that the server answers at all.
func (c *Client) Ping(ctx context.Context) error {
	if c == nil || c.backend == nil {
		return fmt.Errorf("sfs: client is nil")
	}
	return c.backend.Ping(ctx)
}

// Put stores data under the given server-relative path.
func (c *Client) Put(ctx context.Context, path string, data []byte, contentType string) (*FileStat, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("sfs: path is required")
	}
	if c == nil || c.backend == nil {
		return nil, fmt.Errorf("sfs: client is nil")
	}
	return c.backend.Put(ctx, cleanPath(path), data, contentType)
}

// Get retrieves the file stored under the given server-relative path.
func (c *Client) Get(ctx context.Context, path string) ([]byte, *FileStat, error) {
	if strings.TrimSpace(path) == "" {
		return nil, nil, fmt.Errorf("sfs: path is required")
	}
	if c == nil || c.backend == nil {
		return nil, nil, fmt.Errorf("sfs: client is nil")
	}
	return c.backend.Get(ctx, cleanPath(path))
}

// List enumerates the files stored under a directory.
func (c *Client) List(ctx context.Context, dir string) ([]Entry, error) {
	if c == nil || c.backend == nil {
		return nil, fmt.Errorf("sfs: client is nil")
	}
	return c.backend.List(ctx, cleanPath(dir))
}

// Delete removes the file stored under the given server-relative path.
func (c *Client) Delete(ctx context.Context, path string) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("sfs: path is required")
	}
	if c == nil || c.backend == nil {
		return fmt.Errorf("sfs: client is nil")
	}
	return c.backend.Delete(ctx, cleanPath(path))
}

func cleanPath(path string) string {
	return strings.TrimLeft(strings.TrimSpace(path), "/")
}

// Backend is the transport behind a Client.
type Backend interface {
	BaseURL() string
	Ping(ctx context.Context) error
	Put(ctx context.Context, path string, data []byte, contentType string) (*FileStat, error)
	Get(ctx context.Context, path string) ([]byte, *FileStat, error)
	List(ctx context.Context, dir string) ([]Entry, error)
	Delete(ctx context.Context, path string) error
}

type httpBackend struct {
	client   *httpx.Client
	writeKey string
	readKey  string
}

func (b *httpBackend) BaseURL() string {
	return b.client.BaseURL()
}

func (b *httpBackend) Ping(ctx context.Context) error {
	req := &httpx.Request{
		Method:       http.MethodGet,
		Path:         "/",
		Header:       bearer(b.readKey),
		DisableRetry: true,
	}
	resp, err := b.client.Do(ctx, req)
	if err != nil {
		return b.wrapErr(err, "/")
	}
	_, err = httpx.ReadAllAndClose(resp.Body)
	return err
}

func (b *httpBackend) Put(ctx context.Context, path string, data []byte, contentType string) (*FileStat, error) {
	header := bearer(b.writeKey)
	if contentType != "" {
		header.Set("Content-Type", contentType)
	}
	req := &httpx.Request{
		Method: http.MethodPut,
		Path:   path,
		Header: header,
		Body:   data,
	}
	resp, err := b.client.Do(ctx, req)
	if err != nil {
		return nil, b.wrapErr(err, path)
	}
	body, err := httpx.ReadAllAndClose(resp.Body)
	if err != nil {
		return nil, err
	}
	stored, err := sfsapi.StoredPath(body)
	if err != nil {
		return nil, err
	}
	if stored != "/"+path {
		return nil, fmt.Errorf("sfs: server stored %q, want %q", stored, "/"+path)
	}
	return &FileStat{
		Path:        stored,
		Size:        int64(len(data)),
		ContentType: contentType,
	}, nil
}

func (b *httpBackend) Get(ctx context.Context, path string) ([]byte, *FileStat, error) {
	req := &httpx.Request{
		Method: http.MethodGet,
		Path:   path,
		Header: bearer(b.readKey),
	}
	resp, err := b.client.Do(ctx, req)
	if err != nil {
		return nil, nil, b.wrapErr(err, path)
	}
	data, err := httpx.ReadAllAndClose(resp.Body)
	if err != nil {
		return nil, nil, err
	}
	stat := &FileStat{
		Path:        "/" + path,
		Size:        int64(len(data)),
		ContentType: resp.Header.Get("Content-Type"),
	}
	if raw := resp.Header.Get("Last-Modified"); raw != "" {
		if mod, perr := http.ParseTime(raw); perr == nil {
			stat.ModTime = &mod
		}
	}
	return data, stat, nil
}

func (b *httpBackend) List(ctx context.Context, dir string) ([]Entry, error) {
	path := dir
	if path != "" && !strings.HasSuffix(path, "/") {
		path += "/"
	}
	req := &httpx.Request{
		Method: http.MethodGet,
		Path:   path,
		Query:  url.Values{"list": []string{"1"}},
		Header: bearer(b.readKey),
	}
	resp, err := b.client.Do(ctx, req)
	if err != nil {
		return nil, b.wrapErr(err, path)
	}
	body, err := httpx.ReadAllAndClose(resp.Body)
	if err != nil {
		return nil, err
	}
	raw, err := sfsapi.ParseListing(body)
	if err != nil {
		return nil, err
	}
	entries := make([]Entry, 0, len(raw))
	for _, e := range raw {
		entries = append(entries, Entry{
			Name:    e.Name,
			Size:    e.Size,
			ModTime: e.ModTime,
			Dir:     e.Dir,
		})
	}
	return entries, nil
}

func (b *httpBackend) Delete(ctx context.Context, path string) error {
	req := &httpx.Request{
		Method: http.MethodDelete,
		Path:   path,
		Header: bearer(b.writeKey),
	}
	resp, err := b.client.Do(ctx, req)
	if err != nil {
		return b.wrapErr(err, path)
	}
	_, err = httpx.ReadAllAndClose(resp.Body)
	return err
}

// wrapErr maps transport and status failures onto the package error taxonomy.
func (b *httpBackend) wrapErr(err error, path string) error {
	var se *httpx.StatusError
	if errors.As(err, &se) {
		if se.StatusCode == http.StatusNotFound {
			return fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return &APIError{StatusCode: se.StatusCode, Body: se.Body}
	}
	if errors.Is(err, context.Canceled) {
		return err
	}
	return &ConnectionError{URL: b.client.BaseURL(), Err: err}
}

func bearer(key string) http.Header {
	h := make(http.Header)
	if key != "" {
		h.Set("Authorization", "Bearer "+key)
	}
	return h
}
