package buildenv

import (
	"fmt"
	"os/exec"

	"github.com/wslforge/wslforge/internal/system"
)

// requiredTools are the external commands the build pipeline shells out
// to. A missing tool is immediately fatal.
var requiredTools = []string{"docker", "gzip", "zip"}

// Preflight verifies the build environment: required tools on PATH, a
// responsive docker daemon and enough free disk space in the working
// root. The first unmet precondition aborts the build.
func Preflight(exe system.Executor, workRoot string, minFreeSpace uint64) error {
	for _, tool := range requiredTools {
		if _, err := exe.LookPath(tool); err != nil {
			return fmt.Errorf("required tool %q not found in PATH: %w", tool, err)
		}
	}

	if err := exe.Run(exec.Command("docker", "info")); err != nil {
		return fmt.Errorf("docker daemon is not responding: %w", err)
	}

	free, err := system.FreeSpace(workRoot)
	if err != nil {
		return fmt.Errorf("cannot determine free disk space for %s: %w", workRoot, err)
	}
	if free < minFreeSpace {
		return fmt.Errorf("insufficient disk space in %s: %s free, %s required",
			workRoot, FormatBytes(free), FormatBytes(minFreeSpace))
	}

	return nil
}

// FormatBytes renders a byte count in a human-readable unit.
func FormatBytes(n uint64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := uint64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
