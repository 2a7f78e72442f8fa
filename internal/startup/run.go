package startup

import (
	"errors"
	"fmt"
	"os/exec"

	"github.com/sirupsen/logrus"

	"github.com/wslforge/wslforge/internal/profile"
	"github.com/wslforge/wslforge/internal/system"
)

// ErrNotWSL is returned when the dispatch runs outside a WSL guest.
var ErrNotWSL = errors.New("not running inside a WSL distribution")

// isWSL is swapped out in tests.
var isWSL = system.IsWSL

// Run executes the profile's dispatch sequence natively through
// systemctl. Best-effort failures are logged and skipped; only a
// non-best-effort failure or a wrong environment aborts.
func Run(exe system.Executor, kind profile.Kind, log *logrus.Logger) error {
	if !isWSL() {
		return ErrNotWSL
	}

	for _, action := range DispatchFor(kind) {
		log.WithField("service", action.Name).Info("starting service")
		cmd := exec.Command("systemctl", "start", action.Name)
		if err := exe.Run(cmd); err != nil {
			if action.BestEffort {
				log.WithField("service", action.Name).WithError(err).Warn("failed to start service")
				continue
			}
			return fmt.Errorf("failed to start %s: %w", action.Name, err)
		}
	}
	return nil
}
