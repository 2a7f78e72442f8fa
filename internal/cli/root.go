// Package cli provides the command-line interface for wslforge.
package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wslforge/wslforge/internal/config"
	"github.com/wslforge/wslforge/internal/keyring"
	"github.com/wslforge/wslforge/internal/system"
)

// CLI holds the application state for the CLI.
type CLI struct {
	Config  *config.Config
	Keyring keyring.Store
	Exec    system.Executor
	rootCmd *cobra.Command

	// Flags
	verboseFlag bool
	outputFlag  string
}

// New creates a new CLI instance.
func New() *CLI {
	cli := &CLI{
		Keyring: keyring.DefaultStore(),
		Exec:    system.LiveExecutor{},
	}

	cli.rootCmd = &cobra.Command{
		Use:   "wslforge [command]",
		Short: "wslforge - WSL distribution build and configuration toolkit",
		Long: `wslforge builds, configures, validates and troubleshoots a WSL
distribution.

It renders wsl.conf documents from named configuration profiles,
assembles the launcher bundle from a docker base image, checks a build
tree against the launcher's requirements and diagnoses the build
environment.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return cli.initialize()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			return fmt.Errorf("unknown command %q", args[0])
		},
	}

	// Global flags
	cli.rootCmd.PersistentFlags().BoolVarP(&cli.verboseFlag, "verbose", "v", false, "Enable verbose output")
	cli.rootCmd.PersistentFlags().StringVarP(&cli.outputFlag, "output", "o", "text", "Output format (text, json)")

	cli.addCommands()

	return cli
}

// addCommands adds all subcommands to the root command.
func (cli *CLI) addCommands() {
	cli.rootCmd.AddCommand(
		cli.newVersionCmd(),
		cli.newProfileCmd(),
		cli.newValidateCmd(),
		cli.newStartupCmd(),
		cli.newBuildCmd(),
		cli.newReleaseCmd(),
		cli.newDoctorCmd(),
		cli.newConfigCmd(),
		cli.newCompletionCmd(),
	)
}

// initialize loads the tool configuration.
func (cli *CLI) initialize() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	cli.Config = cfg
	return nil
}

// Execute runs the CLI.
func (cli *CLI) Execute(ctx context.Context) error {
	return cli.rootCmd.ExecuteContext(ctx)
}

// defaultLogPath returns the log file path used when none is
// configured.
func (cli *CLI) defaultLogPath() string {
	return config.GetPaths().LogFile
}

// logConfig returns the logging configuration with the persistent
// verbose flag applied.
func (cli *CLI) logConfig() config.LogConfig {
	cfg := cli.Config.Log
	if cli.verboseFlag {
		cfg.Level = "debug"
	}
	return cfg
}
