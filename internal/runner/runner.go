// Package runner abstracts command execution and file access on the machine
// hosting the file-server container, so container lifecycle code can be
// exercised against a recording mock in tests.
package runner

import (
	"context"
	"os"
)

type Runner interface {
	Run(ctx context.Context, cmd string) (string, error)
	WriteFile(ctx context.Context, path string, content []byte, mode os.FileMode) error
	ReadFile(ctx context.Context, path string) ([]byte, error)
	Remove(ctx context.Context, path string) error
}
