// Package docker drives the docker compose lifecycle of the file-server
// container through a runner.
package docker

import (
	"context"
	"fmt"

	"github.com/sfskit/sfs_sdk_go/internal/runner"
)

// Installed reports whether the docker CLI is available.
func Installed(ctx context.Context, run runner.Runner) bool {
	_, err := run.Run(ctx, "docker --version")
	return err == nil
}

// ComposeUp starts the services described by the compose file, detached.
func ComposeUp(ctx context.Context, run runner.Runner, composePath string) error {
	cmd := fmt.Sprintf("docker compose -f %s up -d", composePath)
	if _, err := run.Run(ctx, cmd); err != nil {
		return fmt.Errorf("docker: compose up: %w", err)
	}
	return nil
}

// ComposeDown stops the services described by the compose file.
func ComposeDown(ctx context.Context, run runner.Runner, composePath string) error {
	cmd := fmt.Sprintf("docker compose -f %s down", composePath)
	if _, err := run.Run(ctx, cmd); err != nil {
		return fmt.Errorf("docker: compose down: %w", err)
	}
	return nil
}
