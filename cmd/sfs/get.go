package main

import (
	"context"
	"fmt"
	"os"
	"path"

	"github.com/spf13/cobra"

	"github.com/sfskit/sfs_sdk_go/internal/ui"
	"github.com/sfskit/sfs_sdk_go/pkg/executor"
)

var getCmd = &cobra.Command{
	Use:   "get <remote-path> [<local-path>]",
	Short: "Download a file from the file server",
	Long:  "Downloads the file stored under the server-relative path. Writes to the path's base name unless a local path is given; \"-\" writes to stdout.",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		exec, err := executor.New(ctx, newConfig(), executor.WithLogger(newLogger()))
		if err != nil {
			return err
		}
		defer exec.Close(ctx)

		data, doc, err := exec.Fetch(ctx, args[0])
		if err != nil {
			return err
		}

		target := path.Base(args[0])
		if len(args) == 2 {
			target = args[1]
		}
		if target == "-" {
			_, err = os.Stdout.Write(data)
			return err
		}
		if err := os.WriteFile(target, data, 0o644); err != nil {
			return err
		}
		ui.Success(fmt.Sprintf("%s -> %s (%d bytes, %s)", doc.URI, target, doc.Size, doc.MimeType))
		return nil
	},
}
