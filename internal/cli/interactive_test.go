package cli

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/wslforge/wslforge/internal/profile"
)

func TestRunCustomWizard_AcceptDefaults(t *testing.T) {
	// Enter for every prompt, then confirm.
	in := strings.NewReader("\n\n\n\n\ny\n")
	var out bytes.Buffer

	opts, err := runCustomWizard(in, &out, profile.DefaultCustomOptions())
	if err != nil {
		t.Fatalf("runCustomWizard() error = %v", err)
	}

	want := profile.DefaultCustomOptions()
	if opts != want {
		t.Errorf("runCustomWizard() = %+v, want defaults %+v", opts, want)
	}
	if !strings.Contains(out.String(), "Summary:") {
		t.Error("runCustomWizard() did not print a summary")
	}
}

func TestRunCustomWizard_Cancelled(t *testing.T) {
	// Accept every default, decline the confirmation.
	in := strings.NewReader("\n\n\n\n\nn\n")
	var out bytes.Buffer

	_, err := runCustomWizard(in, &out, profile.DefaultCustomOptions())
	if !errors.Is(err, ErrWizardCancelled) {
		t.Fatalf("runCustomWizard() error = %v, want ErrWizardCancelled", err)
	}
}

func TestRunCustomWizard_CustomAnswers(t *testing.T) {
	// Disable automount and interop, keep systemd, set a boot command.
	in := strings.NewReader("n\nn\n\n\nservice ssh start\ny\n")
	var out bytes.Buffer

	opts, err := runCustomWizard(in, &out, profile.DefaultCustomOptions())
	if err != nil {
		t.Fatalf("runCustomWizard() error = %v", err)
	}

	if opts.AutomountEnabled {
		t.Error("AutomountEnabled = true, want false")
	}
	if opts.InteropEnabled {
		t.Error("InteropEnabled = true, want false")
	}
	if opts.AppendWindowsPath {
		t.Error("AppendWindowsPath = true, want false when interop is disabled")
	}
	if !opts.SystemdEnabled {
		t.Error("SystemdEnabled = false, want true")
	}
	if opts.BootCommand != "service ssh start" {
		t.Errorf("BootCommand = %q, want %q", opts.BootCommand, "service ssh start")
	}
}

func TestRunCustomWizard_WindowsPathForcedOffWithoutInterop(t *testing.T) {
	// Every setting is prompted, but answering yes to the Windows PATH
	// question cannot stick when interop is disabled.
	in := strings.NewReader("y\nn\ny\n\n\ny\n")
	var out bytes.Buffer

	opts, err := runCustomWizard(in, &out, profile.DefaultCustomOptions())
	if err != nil {
		t.Fatalf("runCustomWizard() error = %v", err)
	}

	if !strings.Contains(out.String(), "Windows PATH to $PATH") {
		t.Error("wizard did not ask about the Windows PATH")
	}
	if opts.AppendWindowsPath {
		t.Error("AppendWindowsPath = true, want false when interop is disabled")
	}
}

func TestRunCustomWizard_RetriesOnBadInput(t *testing.T) {
	// Garbage answer first, then a valid one.
	in := strings.NewReader("maybe\ny\n\n\n\n\ny\n")
	var out bytes.Buffer

	opts, err := runCustomWizard(in, &out, profile.DefaultCustomOptions())
	if err != nil {
		t.Fatalf("runCustomWizard() error = %v", err)
	}

	if !opts.AutomountEnabled {
		t.Error("AutomountEnabled = false, want true after retry")
	}
	if !strings.Contains(out.String(), "Please answer") {
		t.Error("wizard did not re-prompt after invalid input")
	}
}
