package notify

import (
	"errors"
	"testing"
	"time"

	"github.com/wslforge/wslforge/internal/config"
)

// recordingBackend captures notifications instead of displaying them.
type recordingBackend struct {
	notifies []string
	alerts   []string
}

func (r *recordingBackend) Notify(title, message, iconPath string) error {
	r.notifies = append(r.notifies, title+": "+message)
	return nil
}

func (r *recordingBackend) Alert(title, message, iconPath string) error {
	r.alerts = append(r.alerts, title+": "+message)
	return nil
}

func TestNew_Disabled(t *testing.T) {
	n := New(config.NotificationConfig{Enabled: false})

	if err := n.BuildSucceeded("ArchWSL", time.Minute); err != nil {
		t.Errorf("BuildSucceeded() error = %v", err)
	}
	if err := n.BuildFailed("ArchWSL", errors.New("boom")); err != nil {
		t.Errorf("BuildFailed() error = %v", err)
	}
}

func TestBuildSucceeded(t *testing.T) {
	backend := &recordingBackend{}
	n := New(config.NotificationConfig{Enabled: true, OnSuccess: true, OnFailure: true}, WithBackend(backend))

	if err := n.BuildSucceeded("ArchWSL", 90*time.Second); err != nil {
		t.Fatalf("BuildSucceeded() error = %v", err)
	}

	if len(backend.notifies) != 1 {
		t.Fatalf("notifies = %d, want 1", len(backend.notifies))
	}
	if len(backend.alerts) != 0 {
		t.Errorf("alerts = %d, want 0", len(backend.alerts))
	}
}

func TestBuildFailed(t *testing.T) {
	backend := &recordingBackend{}
	n := New(config.NotificationConfig{Enabled: true, OnSuccess: true, OnFailure: true}, WithBackend(backend))

	if err := n.BuildFailed("ArchWSL", errors.New("docker not running")); err != nil {
		t.Fatalf("BuildFailed() error = %v", err)
	}

	if len(backend.alerts) != 1 {
		t.Fatalf("alerts = %d, want 1", len(backend.alerts))
	}
}

func TestSelectiveToggles(t *testing.T) {
	backend := &recordingBackend{}
	n := New(config.NotificationConfig{Enabled: true, OnSuccess: false, OnFailure: true}, WithBackend(backend))

	if err := n.BuildSucceeded("ArchWSL", time.Second); err != nil {
		t.Fatal(err)
	}
	if len(backend.notifies) != 0 {
		t.Errorf("notifies = %d, want 0 when OnSuccess is false", len(backend.notifies))
	}
}
