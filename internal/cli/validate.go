package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wslforge/wslforge/internal/validate"
)

// newValidateCmd creates the validate command.
func (cli *CLI) newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [dir]",
		Short: "Validate a distribution build tree",
		Long: `Check a distribution build tree against the launcher's requirements.

All rules are evaluated even when earlier ones fail, so a single run
reports everything that needs fixing. Warnings do not fail the
validation.

Examples:
  # Validate the current directory
  wslforge validate

  # Validate a specific build tree
  wslforge validate ./distro

  # Machine-readable report
  wslforge validate -o json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := ParseOutputFormat(cli.outputFlag)
			if err != nil {
				return err
			}

			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			report := validate.Run(dir, validate.DefaultRules())

			writer := NewOutputWriter(format)
			writeErr := writer.Write(report, func() {
				fmt.Printf("Validating %s\n", report.Dir)
				fmt.Println()

				for _, r := range report.Results {
					fmt.Printf("%s %s", r.Status.Icon(), r.Name)
					if r.Message != "" {
						fmt.Printf(": %s", r.Message)
					}
					fmt.Println()
				}

				fmt.Println()
				switch {
				case report.Errors > 0:
					fmt.Printf("%d error(s), %d warning(s)\n", report.Errors, report.Warnings)
				case report.Warnings > 0:
					fmt.Printf("All checks passed with %d warning(s)\n", report.Warnings)
				default:
					fmt.Println("All checks passed!")
				}
			})

			if writeErr != nil {
				return writeErr
			}

			if report.Failed() {
				return fmt.Errorf("validation failed")
			}
			return nil
		},
	}
}
