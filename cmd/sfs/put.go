package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sfskit/sfs_sdk_go/internal/ui"
	"github.com/sfskit/sfs_sdk_go/pkg/executor"
)

var putCmd = &cobra.Command{
	Use:   "put <file> [<file>...]",
	Short: "Upload local files to the file server",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		exec, err := executor.New(ctx, newConfig(), executor.WithLogger(newLogger()))
		if err != nil {
			return err
		}
		defer exec.Close(ctx)

		for _, local := range args {
			doc, err := exec.StoreFile(ctx, local)
			if err != nil {
				ui.Error(fmt.Sprintf("%s: %v", local, err))
				return err
			}
			ui.Success(fmt.Sprintf("%s -> %s", local, doc.URI))
			if external, ok := doc.Tags[executor.TagExternalURL]; ok {
				ui.Info(external)
			}
		}
		return nil
	},
}
