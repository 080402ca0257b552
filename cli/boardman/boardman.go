package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/glorpus-work/boardman/internal/cli"
	"github.com/spf13/cobra"
)

var (
	configPath string
	logLevel   string
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	rootCmd := newRootCmd()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		cancel()
		os.Exit(1)
	}

	cancel()
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "boardman",
		Short: "Board platform and tool manager",
		Long: `boardman installs versioned board-support platforms and the shared
tools they depend on, described by signed package indexes:
- update: refresh the package indexes (signature gated)
- install/remove: manage platforms and their tools
- list: show available and installed platforms`,
		SilenceUsage: true,
	}

	// Global flags
	cmd.PersistentFlags().StringVar(&configPath, "config", "", "config file path (default: auto-detect)")
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")

	// Set up CLI pkg variables
	cli.ConfigPath = &configPath
	cli.LogLevel = &logLevel

	// Add subcommands
	cmd.AddCommand(
		cli.NewUpdateCmd(),
		cli.NewInstallCmd(),
		cli.NewRemoveCmd(),
		cli.NewListCmd(),
		cli.NewCleanCmd(),
		cli.NewVersionCmd(),
	)

	return cmd
}
