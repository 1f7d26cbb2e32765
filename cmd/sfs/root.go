package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/sfskit/sfs_sdk_go/pkg/executor"
)

const version = "0.3.0"

var (
	hostFlag         string
	portFlag         int
	workspaceFlag    string
	externalHostFlag string
	teardownFlag     bool
	startFlag        bool
	timeoutFlag      time.Duration
	verboseFlag      bool
)

var rootCmd = &cobra.Command{
	Use:   "sfs",
	Short: "Store and fetch files on a simple-file-server container",
	Long: "sfs talks to a simple-file-server instance over its REST API. It can\n" +
		"start the container from a generated compose file when it is down and\n" +
		"tear it down again when the work is done.",
	SilenceUsage: true,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&hostFlag, "host", "localhost", "file-server host")
	pf.IntVar(&portFlag, "port", 4000, "file-server port")
	pf.StringVar(&workspaceFlag, "workspace", "", "absolute path of the server-side storage root")
	pf.StringVar(&externalHostFlag, "external-host", "", "base URL for external_url tags")
	pf.BoolVar(&teardownFlag, "teardown", false, "stop the hosting container when done")
	pf.BoolVar(&startFlag, "start", false, "start the container when the server is unreachable")
	pf.DurationVar(&timeoutFlag, "timeout", 10*time.Second, "per-request timeout")
	pf.BoolVarP(&verboseFlag, "verbose", "v", false, "debug logging")

	rootCmd.AddCommand(putCmd, getCmd, lsCmd, upCmd, downCmd, sandboxCmd, versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print sfs version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("sfs", version)
	},
}

func newConfig() executor.Config {
	return executor.Config{
		Host:         hostFlag,
		Port:         portFlag,
		Workspace:    workspaceFlag,
		Teardown:     teardownFlag,
		ExternalHost: externalHostFlag,
		WriteKey:     os.Getenv("SFS_WRITE_KEY"),
		ReadKey:      os.Getenv("SFS_READ_KEY"),
		Timeout:      timeoutFlag,
		AutoStart:    startFlag,
	}
}

func newLogger() *slog.Logger {
	if !verboseFlag {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
