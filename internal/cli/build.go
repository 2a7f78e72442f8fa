package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/wslforge/wslforge/internal/buildenv"
	"github.com/wslforge/wslforge/internal/config"
	"github.com/wslforge/wslforge/internal/notify"
)

// BuildOutput represents build output for JSON.
type BuildOutput struct {
	Bundle  string `json:"bundle"`
	Profile string `json:"profile"`
	Elapsed string `json:"elapsed"`
}

// newBuildCmd creates the build command.
func (cli *CLI) newBuildCmd() *cobra.Command {
	var (
		profileName string
		outputDir   string
		keepWorkdir bool
	)

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build the distribution bundle",
		Long: `Build the distribution bundle from the configured docker base image.

The build exports the image's root filesystem, compresses it, renders
the wsl.conf for the selected profile and packs everything into the
launcher zip. Intermediate files live in a per-run working directory
that is removed when the build finishes.

Examples:
  # Build with the default profile
  wslforge build

  # Build a server bundle into a specific directory
  wslforge build --profile server --output ./dist

  # Keep the working directory for inspection
  wslforge build --keep-workdir`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := ParseOutputFormat(cli.outputFlag)
			if err != nil {
				return err
			}

			kind, err := cli.resolveProfile(profileName)
			if err != nil {
				return err
			}

			cfg := *cli.Config
			if outputDir != "" {
				cfg.Build.OutputDir = outputDir
			}
			if keepWorkdir {
				cfg.Build.KeepWorkdir = true
			}

			log, closeLog, err := buildenv.NewRunLogger(cli.logConfig(), cli.defaultLogPath())
			if err != nil {
				return err
			}
			defer func() {
				// #nosec G104 - log file close failure is not actionable here
				_ = closeLog()
			}()

			workRoot := buildWorkRoot()
			if err := os.MkdirAll(workRoot, 0o700); err != nil {
				return fmt.Errorf("failed to create work root %s: %w", workRoot, err)
			}

			builder := buildenv.New(&cfg, cli.Exec, log, notify.New(cfg.Notifications), workRoot)
			result, err := builder.Run(kind)
			if err != nil {
				return err
			}

			output := BuildOutput{
				Bundle:  result.BundlePath,
				Profile: result.Profile.String(),
				Elapsed: result.Elapsed.Round(time.Millisecond).String(),
			}

			writer := NewOutputWriter(format)
			return writer.Write(output, func() {
				fmt.Printf("Bundle:  %s\n", output.Bundle)
				fmt.Printf("Profile: %s\n", output.Profile)
				fmt.Printf("Elapsed: %s\n", output.Elapsed)
			})
		},
	}

	cmd.Flags().StringVarP(&profileName, "profile", "p", "", "Profile to bake into the bundle (default from config)")
	cmd.Flags().StringVarP(&outputDir, "output", "O", "", "Directory to place the bundle in")
	cmd.Flags().BoolVar(&keepWorkdir, "keep-workdir", false, "Keep the per-run working directory")

	return cmd
}

// buildWorkRoot returns the root for per-run working directories:
// WSLFORGE_WORK_DIR when set, the cache dir otherwise.
func buildWorkRoot() string {
	if env := os.Getenv("WSLFORGE_WORK_DIR"); env != "" {
		return env
	}
	return config.GetPaths().CacheDir
}
