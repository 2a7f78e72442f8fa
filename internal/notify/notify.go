// Package notify sends desktop notifications when long-running build
// operations finish.
package notify

import (
	"fmt"
	"time"

	"github.com/wslforge/wslforge/internal/config"
)

// Notifier announces build outcomes.
type Notifier interface {
	// BuildSucceeded reports a finished build and its duration.
	BuildSucceeded(distro string, elapsed time.Duration) error
	// BuildFailed reports a failed build.
	BuildFailed(distro string, err error) error
}

// Option configures a Notifier.
type Option func(*notifier)

// WithBackend sets a custom notification backend (for testing).
func WithBackend(backend Backend) Option {
	return func(n *notifier) {
		n.backend = backend
	}
}

type notifier struct {
	onSuccess bool
	onFailure bool
	backend   Backend
}

// New creates a Notifier from the notification settings. When
// notifications are disabled entirely, a no-op Notifier is returned.
func New(cfg config.NotificationConfig, opts ...Option) Notifier {
	if !cfg.Enabled {
		return noop{}
	}

	n := &notifier{
		onSuccess: cfg.OnSuccess,
		onFailure: cfg.OnFailure,
		backend:   newDesktopBackend(),
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

func (n *notifier) BuildSucceeded(distro string, elapsed time.Duration) error {
	if !n.onSuccess {
		return nil
	}
	title := "wslforge: Build Finished"
	message := fmt.Sprintf("%s bundle built in %s.", distro, elapsed.Round(time.Second))
	return n.backend.Notify(title, message, "")
}

func (n *notifier) BuildFailed(distro string, err error) error {
	if !n.onFailure {
		return nil
	}
	title := "wslforge: Build Failed"
	message := fmt.Sprintf("Build of %s failed.\nError: %v", distro, err)
	return n.backend.Alert(title, message, "")
}

// noop silently swallows every notification.
type noop struct{}

func (noop) BuildSucceeded(string, time.Duration) error { return nil }
func (noop) BuildFailed(string, error) error            { return nil }
