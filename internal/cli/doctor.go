package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/wslforge/wslforge/internal/buildenv"
	"github.com/wslforge/wslforge/internal/config"
	"github.com/wslforge/wslforge/internal/keyring"
	"github.com/wslforge/wslforge/internal/release"
	"github.com/wslforge/wslforge/internal/system"
	"github.com/wslforge/wslforge/internal/validate"
	"github.com/wslforge/wslforge/internal/version"
)

// CheckResult represents the result of a diagnostic check. Statuses
// are the validator's; doctor and validate render the same way.
type CheckResult struct {
	Name    string          `json:"name"`
	Status  validate.Status `json:"status"`
	Message string          `json:"message"`
	Fix     string          `json:"fix,omitempty"`
}

// Aliases keep the diagnostic checks readable.
const (
	CheckOK      = validate.StatusOK
	CheckWarning = validate.StatusWarning
	CheckError   = validate.StatusError
	CheckSkipped = validate.StatusSkipped
)

// DoctorOutput represents the doctor command output for JSON.
type DoctorOutput struct {
	Checks      []CheckResult `json:"checks"`
	HasErrors   bool          `json:"has_errors"`
	HasWarnings bool          `json:"has_warnings"`
}

// newDoctorCmd creates the doctor command.
func (cli *CLI) newDoctorCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Diagnose common build environment issues",
		Long: `Run diagnostic checks to identify and troubleshoot common issues.

The doctor command checks:
  - Configuration file validity
  - WSL environment
  - Required build tools (docker, gzip, zip)
  - Docker daemon reachability
  - Free disk space
  - Build log writability
  - Keyring availability
  - Upstream release reachability

Use --verbose for suggested fixes.

Examples:
  # Run diagnostics
  wslforge doctor

  # Run with verbose output and suggested fixes
  wslforge doctor --verbose

  # Output as JSON
  wslforge doctor -o json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := ParseOutputFormat(cli.outputFlag)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()

			results := cli.runDiagnostics(ctx)

			hasErrors := false
			hasWarnings := false
			for _, r := range results {
				if r.Status == CheckError {
					hasErrors = true
				}
				if r.Status == CheckWarning {
					hasWarnings = true
				}
			}

			output := DoctorOutput{
				Checks:      results,
				HasErrors:   hasErrors,
				HasWarnings: hasWarnings,
			}

			writer := NewOutputWriter(format)
			writeErr := writer.Write(output, func() {
				fmt.Println("wslforge Diagnostics")
				fmt.Println("====================")
				fmt.Println()

				for _, r := range results {
					fmt.Printf("%s %s", r.Status.Icon(), r.Name)
					if r.Message != "" {
						fmt.Printf(": %s", r.Message)
					}
					fmt.Println()

					if (r.Status == CheckError || r.Status == CheckWarning) && r.Fix != "" && cli.verboseFlag {
						fmt.Printf("      -> %s\n", r.Fix)
					}
				}

				fmt.Println()
				if hasErrors {
					fmt.Println("Some checks failed. Run with --verbose for suggested fixes.")
				} else if hasWarnings {
					fmt.Println("All critical checks passed with some warnings.")
				} else {
					fmt.Println("All checks passed!")
				}
			})

			if writeErr != nil {
				return writeErr
			}

			if hasErrors {
				return fmt.Errorf("diagnostics failed")
			}
			return nil
		},
	}

	return cmd
}

func (cli *CLI) runDiagnostics(ctx context.Context) []CheckResult {
	var results []CheckResult

	results = append(results, cli.checkConfigFile())
	results = append(results, cli.checkWSLEnvironment())
	results = append(results, cli.checkBuildTools()...)
	results = append(results, cli.checkDockerDaemon())
	results = append(results, cli.checkDiskSpace())
	results = append(results, cli.checkBuildLog())
	results = append(results, cli.checkKeyring())
	results = append(results, cli.checkUpstreamRelease(ctx))

	return results
}

func (cli *CLI) checkConfigFile() CheckResult {
	paths := config.GetPaths()

	if _, err := os.Stat(paths.ConfigFile); os.IsNotExist(err) {
		return CheckResult{
			Name:    "Configuration file",
			Status:  CheckWarning,
			Message: "not found, using defaults",
			Fix:     "Run 'wslforge config edit' to create one",
		}
	}

	if _, err := config.Load(); err != nil {
		return CheckResult{
			Name:    "Configuration file",
			Status:  CheckError,
			Message: fmt.Sprintf("invalid: %v", err),
			Fix:     "Run 'wslforge config edit' to fix the file",
		}
	}

	return CheckResult{
		Name:    "Configuration file",
		Status:  CheckOK,
		Message: paths.ConfigFile,
	}
}

func (cli *CLI) checkWSLEnvironment() CheckResult {
	if system.IsWSL() {
		return CheckResult{
			Name:    "WSL environment",
			Status:  CheckOK,
			Message: "running inside WSL",
		}
	}
	return CheckResult{
		Name:    "WSL environment",
		Status:  CheckOK,
		Message: "not inside WSL (builds run anywhere, 'startup run' will not)",
	}
}

func (cli *CLI) checkBuildTools() []CheckResult {
	var results []CheckResult

	for _, tool := range []string{"docker", "gzip", "zip"} {
		path, err := cli.Exec.LookPath(tool)
		if err != nil {
			results = append(results, CheckResult{
				Name:    fmt.Sprintf("Tool: %s", tool),
				Status:  CheckError,
				Message: "not found in PATH",
				Fix:     fmt.Sprintf("Install %s with your package manager", tool),
			})
			continue
		}
		results = append(results, CheckResult{
			Name:    fmt.Sprintf("Tool: %s", tool),
			Status:  CheckOK,
			Message: path,
		})
	}

	return results
}

func (cli *CLI) checkDockerDaemon() CheckResult {
	if _, err := cli.Exec.LookPath("docker"); err != nil {
		return CheckResult{
			Name:    "Docker daemon",
			Status:  CheckSkipped,
			Message: "docker not installed",
		}
	}

	if err := cli.Exec.Run(exec.Command("docker", "info")); err != nil {
		return CheckResult{
			Name:    "Docker daemon",
			Status:  CheckError,
			Message: "not reachable",
			Fix:     "Start the docker service or docker desktop",
		}
	}

	return CheckResult{
		Name:    "Docker daemon",
		Status:  CheckOK,
		Message: "reachable",
	}
}

func (cli *CLI) checkDiskSpace() CheckResult {
	free, err := system.FreeSpace(os.TempDir())
	if err != nil {
		return CheckResult{
			Name:    "Disk space",
			Status:  CheckSkipped,
			Message: fmt.Sprintf("cannot probe %s: %v", os.TempDir(), err),
		}
	}

	min := cli.Config.Build.MinFreeSpace
	if free < min {
		return CheckResult{
			Name:    "Disk space",
			Status:  CheckWarning,
			Message: fmt.Sprintf("%s free, %s needed for a build", buildenv.FormatBytes(free), buildenv.FormatBytes(min)),
			Fix:     "Free up disk space before building",
		}
	}

	return CheckResult{
		Name:    "Disk space",
		Status:  CheckOK,
		Message: fmt.Sprintf("%s free", buildenv.FormatBytes(free)),
	}
}

func (cli *CLI) checkBuildLog() CheckResult {
	logPath := cli.Config.Log.File
	if logPath == "" {
		logPath = cli.defaultLogPath()
	}

	if err := os.MkdirAll(filepath.Dir(logPath), 0o700); err != nil {
		return CheckResult{
			Name:    "Build log",
			Status:  CheckWarning,
			Message: fmt.Sprintf("cannot create log directory: %v", err),
		}
	}

	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return CheckResult{
			Name:    "Build log",
			Status:  CheckWarning,
			Message: fmt.Sprintf("not writable: %v", err),
			Fix:     "Check permissions on the log file or set a different log path",
		}
	}
	// #nosec G104 - probe handle, nothing was written
	_ = f.Close()

	return CheckResult{
		Name:    "Build log",
		Status:  CheckOK,
		Message: logPath,
	}
}

func (cli *CLI) checkKeyring() CheckResult {
	if err := cli.Keyring.IsAvailable(); err != nil {
		return CheckResult{
			Name:    "Keyring",
			Status:  CheckWarning,
			Message: fmt.Sprintf("unavailable: %v", err),
			Fix:     "Install a keyring service to store the GitHub token (gnome-keyring, kwallet, or Windows Credential Manager)",
		}
	}

	var keyringType string
	switch cli.Keyring.(type) {
	case *keyring.FileStore:
		keyringType = "file-based (test mode)"
	default:
		keyringType = "OS keyring"
	}

	return CheckResult{
		Name:    "Keyring",
		Status:  CheckOK,
		Message: keyringType,
	}
}

func (cli *CLI) checkUpstreamRelease(ctx context.Context) CheckResult {
	owner, name, err := cli.Config.RepoOwnerName()
	if err != nil {
		return CheckResult{
			Name:    "Upstream release",
			Status:  CheckWarning,
			Message: fmt.Sprintf("invalid repository %q", cli.Config.ReleaseRepo),
			Fix:     "Set release_repo to 'owner/name' in the configuration",
		}
	}

	token, err := cli.Keyring.Get(release.TokenKey)
	if err != nil && !errors.Is(err, keyring.ErrSecretNotFound) {
		token = ""
	}

	client := release.NewClient(token)
	rel, err := client.Latest(ctx, owner, name)
	if err != nil {
		if errors.Is(err, release.ErrNoReleases) {
			return CheckResult{
				Name:    "Upstream release",
				Status:  CheckOK,
				Message: fmt.Sprintf("%s/%s has no published releases", owner, name),
			}
		}
		return CheckResult{
			Name:    "Upstream release",
			Status:  CheckWarning,
			Message: fmt.Sprintf("probe failed: %v", err),
			Fix:     "Check network connectivity, or store a token with 'wslforge release token set'",
		}
	}

	status := release.Compare(version.Get().Version, rel)
	if status.UpdateAvailable {
		return CheckResult{
			Name:    "Upstream release",
			Status:  CheckOK,
			Message: fmt.Sprintf("%s available (current %s)", status.LatestTag, status.Current),
		}
	}

	return CheckResult{
		Name:    "Upstream release",
		Status:  CheckOK,
		Message: fmt.Sprintf("latest is %s", status.LatestTag),
	}
}
