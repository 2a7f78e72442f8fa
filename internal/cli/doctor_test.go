package cli

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/wslforge/wslforge/internal/config"
	"github.com/wslforge/wslforge/internal/keyring"
	"github.com/wslforge/wslforge/internal/system"
	"github.com/wslforge/wslforge/internal/validate"
)

func TestCheckStatusAliases(t *testing.T) {
	// Doctor reports with the validator's status type so both surfaces
	// render identically.
	tests := []struct {
		status validate.Status
		want   string
	}{
		{CheckOK, "OK"},
		{CheckWarning, "WARN"},
		{CheckError, "ERROR"},
		{CheckSkipped, "SKIP"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.status.String(); got != tt.want {
				t.Errorf("status.String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func testCLI() *CLI {
	return &CLI{
		Config:  config.Default(),
		Keyring: keyring.NewMockStore(),
		Exec:    &system.MockExecutor{},
	}
}

func TestCheckBuildTools_AllPresent(t *testing.T) {
	cli := testCLI()

	results := cli.checkBuildTools()
	if len(results) != 3 {
		t.Fatalf("checkBuildTools() returned %d results, want 3", len(results))
	}
	for _, r := range results {
		if r.Status != CheckOK {
			t.Errorf("check %q status = %v, want OK", r.Name, r.Status)
		}
	}
}

func TestCheckBuildTools_Missing(t *testing.T) {
	cli := testCLI()
	cli.Exec = &system.MockExecutor{MissingBinaries: []string{"zip"}}

	results := cli.checkBuildTools()
	if len(results) != 3 {
		t.Fatalf("checkBuildTools() returned %d results, want 3", len(results))
	}

	var missing *CheckResult
	for i := range results {
		if results[i].Name == "Tool: zip" {
			missing = &results[i]
		}
	}
	if missing == nil {
		t.Fatal("checkBuildTools() did not report the zip tool")
	}
	if missing.Status != CheckError {
		t.Errorf("missing tool status = %v, want ERROR", missing.Status)
	}
}

func TestCheckDockerDaemon(t *testing.T) {
	t.Run("reachable", func(t *testing.T) {
		cli := testCLI()

		r := cli.checkDockerDaemon()
		if r.Status != CheckOK {
			t.Errorf("checkDockerDaemon() status = %v, want OK", r.Status)
		}
	})

	t.Run("docker missing is skipped", func(t *testing.T) {
		cli := testCLI()
		cli.Exec = &system.MockExecutor{MissingBinaries: []string{"docker"}}

		r := cli.checkDockerDaemon()
		if r.Status != CheckSkipped {
			t.Errorf("checkDockerDaemon() status = %v, want SKIP", r.Status)
		}
	})

	t.Run("daemon down is an error", func(t *testing.T) {
		cli := testCLI()
		cli.Exec = &system.MockExecutor{
			FailOn: map[string]error{"docker": fmt.Errorf("daemon not running")},
		}

		r := cli.checkDockerDaemon()
		if r.Status != CheckError {
			t.Errorf("checkDockerDaemon() status = %v, want ERROR", r.Status)
		}
	})
}

func TestCheckKeyring(t *testing.T) {
	t.Run("available", func(t *testing.T) {
		cli := testCLI()

		r := cli.checkKeyring()
		if r.Status != CheckOK {
			t.Errorf("checkKeyring() status = %v, want OK", r.Status)
		}
	})

	t.Run("unavailable is a warning", func(t *testing.T) {
		cli := testCLI()
		mock := keyring.NewMockStore()
		mock.SetFailing(true)
		cli.Keyring = mock

		r := cli.checkKeyring()
		if r.Status != CheckWarning {
			t.Errorf("checkKeyring() status = %v, want WARN", r.Status)
		}
		if !strings.Contains(r.Message, "unavailable") {
			t.Errorf("checkKeyring() message = %q, want it to mention unavailability", r.Message)
		}
	})
}

func TestCheckUpstreamRelease_InvalidRepo(t *testing.T) {
	cli := testCLI()
	cli.Config.ReleaseRepo = "not-a-repo"

	r := cli.checkUpstreamRelease(context.Background())
	if r.Status != CheckWarning {
		t.Errorf("checkUpstreamRelease() status = %v, want WARN", r.Status)
	}
}
