package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/sfskit/sfs_sdk_go/internal/ui"
	"github.com/sfskit/sfs_sdk_go/pkg/executor"
)

var promptKeysFlag bool

var upCmd = &cobra.Command{
	Use:   "up",
	Short: "Start the file-server container and wait until it answers",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		cfg := newConfig()
		cfg.AutoStart = true
		cfg.Teardown = false
		if promptKeysFlag {
			var err error
			if cfg.WriteKey, err = ui.PromptSecret("write shared key"); err != nil {
				return err
			}
			if cfg.ReadKey, err = ui.PromptSecret("read shared key"); err != nil {
				return err
			}
		}

		ui.Header("Starting file server...")
		exec, err := executor.New(ctx, cfg, executor.WithLogger(newLogger()))
		if err != nil {
			ui.Error(err.Error())
			return err
		}
		defer exec.Close(ctx)

		ui.Success("file server answering at " + cfg.BaseURL())
		return nil
	},
}

func init() {
	upCmd.Flags().BoolVar(&promptKeysFlag, "prompt-keys", false, "prompt for shared keys instead of reading SFS_WRITE_KEY/SFS_READ_KEY")
}
