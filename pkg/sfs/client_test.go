package sfs_test

import (
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sfskit/sfs_sdk_go/pkg/sfs"
)

func newFileServerHandler() http.Handler {
	var (
		mu    sync.Mutex
		files = make(map[string][]byte)
		types = make(map[string]string)
	)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPut:
			defer r.Body.Close()
			data, err := io.ReadAll(r.Body)
			if err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			mu.Lock()
			files[r.URL.Path] = data
			types[r.URL.Path] = r.Header.Get("Content-Type")
			mu.Unlock()
			w.WriteHeader(http.StatusCreated)
			io.WriteString(w, r.URL.Path)

		case http.MethodGet:
			if r.URL.Query().Get("list") != "" {
				prefix := r.URL.Path
				mu.Lock()
				var names []map[string]any
				for p, data := range files {
					if strings.HasPrefix(p, prefix) && !strings.Contains(strings.TrimPrefix(p, prefix), "/") {
						names = append(names, map[string]any{
							"name": strings.TrimPrefix(p, prefix),
							"size": len(data),
						})
					}
				}
				mu.Unlock()
				w.Header().Set("Content-Type", "application/json")
				json.NewEncoder(w).Encode(names)
				return
			}
			mu.Lock()
			data, ok := files[r.URL.Path]
			ct := types[r.URL.Path]
			mu.Unlock()
			if !ok && r.URL.Path != "/" {
				http.Error(w, "not found", http.StatusNotFound)
				return
			}
			if ct != "" {
				w.Header().Set("Content-Type", ct)
			}
			w.Write(data)

		case http.MethodDelete:
			mu.Lock()
			_, ok := files[r.URL.Path]
			delete(files, r.URL.Path)
			mu.Unlock()
			if !ok {
				http.Error(w, "not found", http.StatusNotFound)
				return
			}
			w.WriteHeader(http.StatusNoContent)

		default:
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		}
	})
}

func TestPutGetListDelete(t *testing.T) {
	srv := newLocalHTTPServer(t, newFileServerHandler())
	defer srv.Close()

	client, err := sfs.New(srv.URL)
	require.NoError(t, err)
	assert.Equal(t, srv.URL, client.BaseURL())

	ctx := context.Background()
	require.NoError(t, client.Ping(ctx))

	stat, err := client.Put(ctx, "docs/a.txt", []byte("hello world"), "text/plain")
	require.NoError(t, err)
	assert.Equal(t, "/docs/a.txt", stat.Path)
	assert.EqualValues(t, 11, stat.Size)

	data, got, err := client.Get(ctx, "docs/a.txt")
	require.NoError(t, err)
	assert.Equal(t, "hello world", string(data))
	assert.Equal(t, "text/plain", got.ContentType)

	entries, err := client.List(ctx, "docs")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "a.txt", entries[0].Name)

	require.NoError(t, client.Delete(ctx, "docs/a.txt"))
	_, _, err = client.Get(ctx, "docs/a.txt")
	assert.ErrorIs(t, err, sfs.ErrNotFound)
}

func TestSharedKeysSentAsBearerTokens(t *testing.T) {
	var mu sync.Mutex
	seen := make(map[string]string)
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		seen[r.Method] = r.Header.Get("Authorization")
		mu.Unlock()
		if r.Method == http.MethodPut {
			io.WriteString(w, r.URL.Path)
			return
		}
		w.Write([]byte("data"))
	})
	srv := newLocalHTTPServer(t, handler)
	defer srv.Close()

	client, err := sfs.New(srv.URL, sfs.WithKeys("write-secret", "read-secret"))
	require.NoError(t, err)

	ctx := context.Background()
	_, err = client.Put(ctx, "k.txt", []byte("x"), "")
	require.NoError(t, err)
	_, _, err = client.Get(ctx, "k.txt")
	require.NoError(t, err)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, "Bearer write-secret", seen[http.MethodPut])
	assert.Equal(t, "Bearer read-secret", seen[http.MethodGet])
}

func TestServerErrorSurfacesAsAPIError(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "disk full", http.StatusInternalServerError)
	})
	srv := newLocalHTTPServer(t, handler)
	defer srv.Close()

	client, err := sfs.New(srv.URL, sfs.WithRetries(0))
	require.NoError(t, err)

	_, err = client.Put(context.Background(), "a.txt", []byte("x"), "")
	var apiErr *sfs.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
	assert.Contains(t, string(apiErr.Body), "disk full")
}

func TestUnreachableServerSurfacesAsConnectionError(t *testing.T) {
	ln, err := net.Listen("tcp4", "127.0.0.1:0")
	if err != nil {
		t.Skipf("network disabled for tests: %v", err)
	}
	addr := ln.Addr().String()
	require.NoError(t, ln.Close())

	client, err := sfs.New("http://"+addr, sfs.WithRetries(0))
	require.NoError(t, err)

	err = client.Ping(context.Background())
	var connErr *sfs.ConnectionError
	require.ErrorAs(t, err, &connErr)
	assert.Contains(t, connErr.URL, addr)
}

func TestTransientErrorRetried(t *testing.T) {
	var mu sync.Mutex
	calls := 0
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		calls++
		n := calls
		mu.Unlock()
		if n == 1 {
			http.Error(w, "busy", http.StatusServiceUnavailable)
			return
		}
		io.WriteString(w, r.URL.Path)
	})
	srv := newLocalHTTPServer(t, handler)
	defer srv.Close()

	client, err := sfs.New(srv.URL, sfs.WithRetries(2))
	require.NoError(t, err)

	stat, err := client.Put(context.Background(), "retry.txt", []byte("x"), "")
	require.NoError(t, err)
	assert.Equal(t, "/retry.txt", stat.Path)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 2, calls)
}

func TestStoredPathMismatchRejected(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, "/somewhere/else.txt")
	})
	srv := newLocalHTTPServer(t, handler)
	defer srv.Close()

	client, err := sfs.New(srv.URL)
	require.NoError(t, err)

	_, err = client.Put(context.Background(), "a.txt", []byte("x"), "")
	assert.ErrorContains(t, err, "server stored")
}

type testServer struct {
	URL      string
	listener net.Listener
	server   *http.Server
}

func (s *testServer) Close() {
	_ = s.server.Shutdown(context.Background())
	_ = s.listener.Close()
}

func newLocalHTTPServer(t *testing.T, handler http.Handler) *testServer {
	t.Helper()
	ln, err := net.Listen("tcp4", "127.0.0.1:0")
	if err != nil {
		t.Skipf("network disabled for tests: %v", err)
	}
	srv := &http.Server{Handler: handler}
	ts := &testServer{
		URL:      "http://" + ln.Addr().String(),
		listener: ln,
		server:   srv,
	}
	go func() {
		if err := srv.Serve(ln); err != nil && err != http.ErrServerClosed {
			t.Logf("test server serve error: %v", err)
		}
	}()
	return ts
}
