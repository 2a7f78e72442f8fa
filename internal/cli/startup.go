package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wslforge/wslforge/internal/buildenv"
	"github.com/wslforge/wslforge/internal/profile"
	"github.com/wslforge/wslforge/internal/startup"
)

// newStartupCmd creates the startup command group.
func (cli *CLI) newStartupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "startup",
		Short: "Emit or run the distribution startup sequence",
		Long: `Emit or run the per-profile startup sequence.

The startup sequence starts the systemd units a profile depends on,
such as docker and sshd for development. It refuses to run outside a
WSL environment.

Examples:
  # Print the startup script for the development profile
  wslforge startup emit --profile development

  # Start the services for the current profile (inside WSL)
  wslforge startup run --profile server`,
	}

	cmd.AddCommand(
		cli.newStartupEmitCmd(),
		cli.newStartupRunCmd(),
	)

	return cmd
}

// newStartupEmitCmd creates the startup emit command.
func (cli *CLI) newStartupEmitCmd() *cobra.Command {
	var (
		profileName string
		outputFile  string
	)

	cmd := &cobra.Command{
		Use:   "emit",
		Short: "Emit the startup script for a profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := cli.resolveProfile(profileName)
			if err != nil {
				return err
			}

			script, err := startup.EmitScript(kind)
			if err != nil {
				return err
			}

			if err := writeDocument(outputFile, script, 0o755); err != nil {
				return err
			}
			if outputFile != "" {
				fmt.Printf("Wrote startup script for %s to %s\n", kind, outputFile)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&profileName, "profile", "p", "", "Profile to emit the script for (default from config)")
	cmd.Flags().StringVarP(&outputFile, "output", "O", "", "Write the script to a file instead of stdout")

	return cmd
}

// newStartupRunCmd creates the startup run command.
func (cli *CLI) newStartupRunCmd() *cobra.Command {
	var profileName string

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Start the services for a profile",
		Long: `Start the systemd services a profile depends on.

This command only works inside a WSL distribution and fails
immediately anywhere else.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := cli.resolveProfile(profileName)
			if err != nil {
				return err
			}

			log, closeLog, err := buildenv.NewRunLogger(cli.logConfig(), cli.defaultLogPath())
			if err != nil {
				return err
			}
			defer func() {
				// #nosec G104 - log file close failure is not actionable here
				_ = closeLog()
			}()

			return startup.Run(cli.Exec, kind, log)
		},
	}

	cmd.Flags().StringVarP(&profileName, "profile", "p", "", "Profile to start services for (default from config)")

	return cmd
}

// resolveProfile parses the given profile name, falling back to the
// configured default when empty.
func (cli *CLI) resolveProfile(name string) (profile.Kind, error) {
	if name == "" {
		name = cli.Config.DefaultProfile
	}
	return profile.ParseKind(name)
}
