package system

import (
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
)

func TestIsWSLFile(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    bool
	}{
		{
			name:    "wsl2 kernel",
			content: "Linux version 5.15.167.4-microsoft-standard-WSL2 (root@..) ...",
			want:    true,
		},
		{
			name:    "wsl1 kernel",
			content: "Linux version 4.4.0-19041-Microsoft (Microsoft@Microsoft.com) ...",
			want:    true,
		},
		{
			name:    "plain linux",
			content: "Linux version 6.8.0-45-generic (buildd@lcy02) ...",
			want:    false,
		},
		{
			name:    "empty",
			content: "",
			want:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "version")
			if err := os.WriteFile(path, []byte(tt.content), 0600); err != nil {
				t.Fatal(err)
			}
			if got := isWSLFile(path); got != tt.want {
				t.Errorf("isWSLFile() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsWSLFile_Missing(t *testing.T) {
	if isWSLFile(filepath.Join(t.TempDir(), "absent")) {
		t.Error("missing version file should not look like WSL")
	}
}

func TestFreeSpace(t *testing.T) {
	free, err := FreeSpace(t.TempDir())
	if err != nil {
		t.Fatalf("FreeSpace() error = %v", err)
	}
	if free == 0 {
		t.Error("FreeSpace() = 0, expected some free space in a temp dir")
	}
}

func TestMockExecutor(t *testing.T) {
	m := &MockExecutor{
		FailOn:          map[string]error{"docker": os.ErrPermission},
		MissingBinaries: []string{"zip"},
	}

	if _, err := m.LookPath("tar"); err != nil {
		t.Errorf("LookPath(tar) error = %v", err)
	}
	if _, err := m.LookPath("zip"); err == nil {
		t.Error("LookPath(zip) should fail")
	}

	if err := m.Run(exec.Command("docker", "ps")); !errors.Is(err, os.ErrPermission) {
		t.Errorf("Run(docker) error = %v, want %v", err, os.ErrPermission)
	}
	if err := m.Run(exec.Command("tar", "-cf", "x.tar", ".")); err != nil {
		t.Errorf("Run(tar) error = %v", err)
	}

	if !m.Ran("docker") || !m.Ran("tar") {
		t.Errorf("commands not recorded: %v", m.Commands)
	}
	if m.Ran("zip") {
		t.Error("zip should not be recorded")
	}
}
