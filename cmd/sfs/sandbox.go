package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"math/rand"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/sfskit/sfs_sdk_go/internal/seed"
	"github.com/sfskit/sfs_sdk_go/pkg/sfs"
	sfsmock "github.com/sfskit/sfs_sdk_go/pkg/sfs/mock"
)

var (
	sandboxAddr     string
	sandboxSeed     string
	sandboxLatency  time.Duration
	sandboxFail     string
	sandboxWriteKey string
	sandboxReadKey  string
)

// sandboxCmd serves an in-process stand-in for the file-server container so
// clients can be developed without docker.
var sandboxCmd = &cobra.Command{
	Use:   "sandbox",
	Short: "Run an in-memory file server for local development",
	RunE: func(cmd *cobra.Command, args []string) error {
		store := sfsmock.New()
		if sandboxSeed != "" {
			entries, err := seed.LoadFiles(sandboxSeed)
			if err != nil {
				return fmt.Errorf("load seed: %w", err)
			}
			if err := store.Seed(entries); err != nil {
				return fmt.Errorf("apply seed: %w", err)
			}
		}

		failCfg, err := parseFailConfig(sandboxFail)
		if err != nil {
			return fmt.Errorf("parse fail flag: %w", err)
		}

		handler := withSandboxMiddleware(sandboxLatency, failCfg, sandboxHandler(store))
		server := &http.Server{Addr: sandboxAddr, Handler: handler}

		log.Printf("sfs sandbox listening on %s (%d seeded files)", sandboxAddr, store.Len())
		host := sandboxAddr
		if strings.HasPrefix(host, ":") {
			host = "localhost" + host
		}
		fmt.Println()
		fmt.Printf("export SFS_API_URL=http://%s\n", host)
		fmt.Println()

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	},
}

func init() {
	f := sandboxCmd.Flags()
	f.StringVar(&sandboxAddr, "addr", ":4000", "listen address")
	f.StringVar(&sandboxSeed, "seed", "", "path to JSON seed for the in-memory store")
	f.DurationVar(&sandboxLatency, "latency", 0, "artificial latency to inject per request")
	f.StringVar(&sandboxFail, "fail", "", "failure injection (rate=<float>,code=<httpStatus>)")
	f.StringVar(&sandboxWriteKey, "write-key", "", "require this bearer token on writes")
	f.StringVar(&sandboxReadKey, "read-key", "", "require this bearer token on reads")
}

type failConfig struct {
	rate float64
	code int
}

func withSandboxMiddleware(delay time.Duration, failCfg failConfig, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if delay > 0 {
			time.Sleep(delay)
		}
		if failCfg.rate > 0 && rand.Float64() < failCfg.rate {
			status := failCfg.code
			if status == 0 {
				status = http.StatusInternalServerError
			}
			http.Error(w, "failure injected", status)
			return
		}
		next(w, r)
	}
}

func sandboxHandler(store *sfsmock.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		switch r.Method {
		case http.MethodPut:
			if !authorized(r, sandboxWriteKey) {
				http.Error(w, "write key required", http.StatusUnauthorized)
				return
			}
			defer r.Body.Close()
			data, err := io.ReadAll(r.Body)
			if err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			stat, err := store.Put(ctx, r.URL.Path, data, r.Header.Get("Content-Type"))
			if err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			w.WriteHeader(http.StatusCreated)
			io.WriteString(w, stat.Path)

		case http.MethodGet:
			if !authorized(r, sandboxReadKey) {
				http.Error(w, "read key required", http.StatusUnauthorized)
				return
			}
			if r.URL.Query().Get("list") != "" {
				entries, err := store.List(ctx, r.URL.Path)
				if err != nil {
					http.Error(w, err.Error(), http.StatusInternalServerError)
					return
				}
				listing := make([]map[string]any, 0, len(entries))
				for _, e := range entries {
					listing = append(listing, map[string]any{
						"name":    e.Name,
						"size":    e.Size,
						"modTime": e.ModTime,
						"dir":     e.Dir,
					})
				}
				w.Header().Set("Content-Type", "application/json")
				json.NewEncoder(w).Encode(listing)
				return
			}
			if r.URL.Path == "/" {
				w.Header().Set("Content-Type", "application/json")
				json.NewEncoder(w).Encode(map[string]any{"files": store.Len()})
				return
			}
			data, stat, err := store.Get(ctx, r.URL.Path)
			if err != nil {
				status := http.StatusInternalServerError
				if errors.Is(err, sfs.ErrNotFound) {
					status = http.StatusNotFound
				}
				http.Error(w, err.Error(), status)
				return
			}
			if stat.ContentType != "" {
				w.Header().Set("Content-Type", stat.ContentType)
			}
			w.Write(data)

		case http.MethodDelete:
			if !authorized(r, sandboxWriteKey) {
				http.Error(w, "write key required", http.StatusUnauthorized)
				return
			}
			if err := store.Delete(ctx, r.URL.Path); err != nil {
				status := http.StatusInternalServerError
				if errors.Is(err, sfs.ErrNotFound) {
					status = http.StatusNotFound
				}
				http.Error(w, err.Error(), status)
				return
			}
			w.WriteHeader(http.StatusNoContent)

		default:
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		}
	}
}

func authorized(r *http.Request, key string) bool {
	if key == "" {
		return true
	}
	return r.Header.Get("Authorization") == "Bearer "+key
}

func parseFailConfig(raw string) (failConfig, error) {
	if strings.TrimSpace(raw) == "" {
		return failConfig{}, nil
	}
	cfg := failConfig{code: http.StatusInternalServerError}
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		keyVal := strings.SplitN(part, "=", 2)
		if len(keyVal) != 2 {
			return failConfig{}, fmt.Errorf("invalid fail segment %q", part)
		}
		switch strings.TrimSpace(keyVal[0]) {
		case "rate":
			val, err := strconv.ParseFloat(strings.TrimSpace(keyVal[1]), 64)
			if err != nil {
				return failConfig{}, err
			}
			cfg.rate = val
		case "code":
			val, err := strconv.Atoi(strings.TrimSpace(keyVal[1]))
			if err != nil {
				return failConfig{}, err
			}
			cfg.code = val
		default:
			return failConfig{}, fmt.Errorf("unknown fail key %q", keyVal[0])
		}
	}
	return cfg, nil
}
