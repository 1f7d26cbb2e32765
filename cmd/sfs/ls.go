package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sfskit/sfs_sdk_go/internal/ui"
	"github.com/sfskit/sfs_sdk_go/pkg/executor"
)

var lsCmd = &cobra.Command{
	Use:   "ls [<dir>]",
	Short: "List files stored under a directory",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		exec, err := executor.New(ctx, newConfig(), executor.WithLogger(newLogger()))
		if err != nil {
			return err
		}
		defer exec.Close(ctx)

		dir := "/"
		if len(args) == 1 {
			dir = args[0]
		}
		docs, err := exec.List(ctx, dir)
		if err != nil {
			return err
		}
		if len(docs) == 0 {
			ui.Info("no files")
			return nil
		}
		for _, doc := range docs {
			line := fmt.Sprintf("%8d  %s", doc.Size, doc.URI)
			if external, ok := doc.Tags[executor.TagExternalURL]; ok {
				line += "  " + external
			}
			fmt.Println(line)
		}
		return nil
	},
}
