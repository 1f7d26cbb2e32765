package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sfskit/sfs_sdk_go/internal/compose"
	"github.com/sfskit/sfs_sdk_go/internal/docker"
	"github.com/sfskit/sfs_sdk_go/internal/runner"
	"github.com/sfskit/sfs_sdk_go/internal/ui"
)

var keepComposeFlag bool

var downCmd = &cobra.Command{
	Use:   "down",
	Short: "Stop the file-server container",
	RunE: func(cmd *cobra.Command, args []string) error {
		if workspaceFlag == "" {
			return fmt.Errorf("--workspace is required")
		}
		ctx := context.Background()
		run := runner.NewLocal()
		composePath := compose.PathIn(workspaceFlag)

		if err := docker.ComposeDown(ctx, run, composePath); err != nil {
			ui.Error(err.Error())
			return err
		}
		if !keepComposeFlag {
			if err := run.Remove(ctx, composePath); err != nil {
				ui.Warn(fmt.Sprintf("compose file not removed: %v", err))
			}
		}
		ui.Success("file server stopped")
		return nil
	},
}

func init() {
	downCmd.Flags().BoolVar(&keepComposeFlag, "keep-compose", false, "leave the generated compose file in the workspace")
}
