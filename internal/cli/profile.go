package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/google/renameio/v2"
	"github.com/spf13/cobra"

	"github.com/wslforge/wslforge/internal/profile"
	"github.com/wslforge/wslforge/internal/startup"
)

// profileInfo represents a single profile for JSON output.
type profileInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Systemd     bool   `json:"systemd"`
	Automount   bool   `json:"automount"`
	Interop     bool   `json:"interop"`
}

// ProfileListOutput represents profile list output for JSON.
type ProfileListOutput struct {
	Profiles []profileInfo `json:"profiles"`
}

// newProfileCmd creates the profile command group.
func (cli *CLI) newProfileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "profile",
		Aliases: []string{"profiles"},
		Short:   "Manage wsl.conf configuration profiles",
		Long: `Manage the named configuration profiles used to render wsl.conf.

Profiles bundle automount, network, interop, user and boot settings
for a distribution use case. The rendered document is written to the
build tree and shipped inside the distribution bundle.

Examples:
  # List available profiles
  wslforge profile list

  # Render the server profile to a file
  wslforge profile generate server --output wsl.conf

  # Build a custom configuration interactively
  wslforge profile custom --interactive`,
	}

	cmd.AddCommand(
		cli.newProfileListCmd(),
		cli.newProfileGenerateCmd(),
		cli.newProfileCustomCmd(),
	)

	return cmd
}

// newProfileListCmd creates the profile list command.
func (cli *CLI) newProfileListCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List available configuration profiles",
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := ParseOutputFormat(cli.outputFlag)
			if err != nil {
				return err
			}
			return cli.runProfileList(format)
		},
	}
}

// runProfileList displays all available profiles.
func (cli *CLI) runProfileList(format OutputFormat) error {
	output := NewOutputWriter(format)

	catalog := profile.Catalog()
	infos := make([]profileInfo, 0, len(catalog))
	for _, p := range catalog {
		infos = append(infos, profileInfo{
			Name:        p.Kind.String(),
			Description: p.Description,
			Systemd:     p.Boot.Systemd,
			Automount:   p.Automount.Enabled,
			Interop:     p.Interop.Enabled,
		})
	}

	list := ProfileListOutput{Profiles: infos}

	return output.Write(list, func() {
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "NAME\tSYSTEMD\tAUTOMOUNT\tINTEROP\tDESCRIPTION")

		for _, p := range infos {
			defaultMark := ""
			if p.Name == cli.Config.DefaultProfile {
				defaultMark = "* "
			}
			fmt.Fprintf(w, "%s%s\t%t\t%t\t%t\t%s\n",
				defaultMark, p.Name, p.Systemd, p.Automount, p.Interop, p.Description)
		}

		// #nosec G104 - Flush error on stdout; if write fails, user will see incomplete output
		_ = w.Flush()

		fmt.Printf("\n* = default profile (%s)\n", cli.Config.DefaultProfile)
	})
}

// newProfileGenerateCmd creates the profile generate command.
func (cli *CLI) newProfileGenerateCmd() *cobra.Command {
	var (
		outputFile  string
		withStartup bool
	)

	cmd := &cobra.Command{
		Use:   "generate <name>",
		Short: "Render a named profile to wsl.conf",
		Long: `Render a named configuration profile as a wsl.conf document.

Without --output the document is written to standard output. With
--startup the matching startup script is emitted alongside the
configuration.

Examples:
  # Print the development profile
  wslforge profile generate development

  # Write the server profile to the build tree
  wslforge profile generate server --output build/wsl.conf

  # Also emit the startup script next to the configuration
  wslforge profile generate development --output wsl.conf --startup`,
		Args: cobra.ExactArgs(1),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			if len(args) > 0 {
				return nil, cobra.ShellCompDirectiveNoFileComp
			}
			return profileNames(), cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := profile.ParseKind(args[0])
			if err != nil {
				return err
			}

			p, err := profile.ForKind(kind)
			if err != nil {
				return err
			}

			conf, err := profile.Render(p)
			if err != nil {
				return err
			}

			if err := writeDocument(outputFile, conf, 0o644); err != nil {
				return err
			}
			if outputFile != "" {
				fmt.Printf("Wrote %s profile to %s\n", kind, outputFile)
			}

			if withStartup {
				script, err := startup.EmitScript(kind)
				if err != nil {
					return err
				}
				scriptPath := ""
				if outputFile != "" {
					scriptPath = outputFile + ".startup.sh"
				}
				if err := writeDocument(scriptPath, script, 0o755); err != nil {
					return err
				}
				if scriptPath != "" {
					fmt.Printf("Wrote startup script to %s\n", scriptPath)
				}
			}

			return nil
		},
	}

	cmd.Flags().StringVarP(&outputFile, "output", "O", "", "Write the document to a file instead of stdout")
	cmd.Flags().BoolVar(&withStartup, "startup", false, "Also emit the startup script for the profile")

	return cmd
}

// newProfileCustomCmd creates the profile custom command.
func (cli *CLI) newProfileCustomCmd() *cobra.Command {
	var (
		interactive bool
		outputFile  string
		automount   bool
		interop     bool
		appendPath  bool
		systemd     bool
		bootCommand string
	)

	cmd := &cobra.Command{
		Use:   "custom",
		Short: "Build a custom wsl.conf from individual settings",
		Long: `Build a custom wsl.conf document from individual settings.

Settings are taken from flags, or gathered interactively with
--interactive. The interactive wizard asks for each setting in turn,
shows a summary and asks for confirmation before writing anything.

Examples:
  # Custom configuration from flags
  wslforge profile custom --automount=false --boot-command="service ssh start"

  # Interactive wizard
  wslforge profile custom --interactive --output wsl.conf`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := profile.DefaultCustomOptions()
			if cmd.Flags().Changed("automount") {
				opts.AutomountEnabled = automount
			}
			if cmd.Flags().Changed("interop") {
				opts.InteropEnabled = interop
			}
			if cmd.Flags().Changed("append-windows-path") {
				opts.AppendWindowsPath = appendPath
			}
			if cmd.Flags().Changed("systemd") {
				opts.SystemdEnabled = systemd
			}
			if cmd.Flags().Changed("boot-command") {
				opts.BootCommand = bootCommand
			}

			if interactive {
				var err error
				opts, err = runCustomWizard(cmd.InOrStdin(), os.Stdout, opts)
				if err != nil {
					return err
				}
			}

			conf, err := profile.Render(profile.NewCustom(opts))
			if err != nil {
				return err
			}

			if err := writeDocument(outputFile, conf, 0o644); err != nil {
				return err
			}
			if outputFile != "" {
				fmt.Printf("Wrote custom profile to %s\n", outputFile)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "Gather settings with an interactive wizard")
	cmd.Flags().StringVarP(&outputFile, "output", "O", "", "Write the document to a file instead of stdout")
	cmd.Flags().BoolVar(&automount, "automount", true, "Mount Windows drives under /mnt")
	cmd.Flags().BoolVar(&interop, "interop", true, "Allow launching Windows executables")
	cmd.Flags().BoolVar(&appendPath, "append-windows-path", false, "Append the Windows PATH to $PATH")
	cmd.Flags().BoolVar(&systemd, "systemd", true, "Boot with systemd as init")
	cmd.Flags().StringVar(&bootCommand, "boot-command", "", "Command to run at distribution boot")

	return cmd
}

// profileNames returns all profile names for completion.
func profileNames() []string {
	kinds := profile.Kinds()
	names := make([]string, 0, len(kinds))
	for _, k := range kinds {
		names = append(names, k.String())
	}
	return names
}

// writeDocument writes content to path atomically, or to stdout when
// path is empty.
func writeDocument(path, content string, mode os.FileMode) error {
	if path == "" {
		fmt.Print(content)
		return nil
	}
	if err := renameio.WriteFile(path, []byte(content), mode); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
