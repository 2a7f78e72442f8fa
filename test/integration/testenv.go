//go:build integration

// Package integration provides end-to-end tests that drive the built
// wslforge binary.
package integration

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

// TestEnv is an isolated environment for one CLI invocation: its own
// config, data and keyring directories under a temp root.
type TestEnv struct {
	ConfigDir  string
	DataDir    string
	KeyringDir string
}

// NewTestEnv creates an isolated environment rooted in a temp dir.
func NewTestEnv(t *testing.T) *TestEnv {
	t.Helper()

	root := t.TempDir()
	env := &TestEnv{
		ConfigDir:  filepath.Join(root, "config"),
		DataDir:    filepath.Join(root, "data"),
		KeyringDir: filepath.Join(root, "keyring"),
	}

	for _, dir := range []string{env.ConfigDir, env.DataDir, env.KeyringDir} {
		if err := os.MkdirAll(dir, 0700); err != nil {
			t.Fatalf("failed to create %s: %v", dir, err)
		}
	}

	return env
}

// WriteConfig writes a config.yaml into the environment's config dir.
func (e *TestEnv) WriteConfig(t *testing.T, content string) {
	t.Helper()
	path := filepath.Join(e.ConfigDir, "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
}

// BinaryPath returns the path to the wslforge binary.
func BinaryPath(t *testing.T) string {
	t.Helper()

	// Check if WSLFORGE_BINARY is set
	if path := os.Getenv("WSLFORGE_BINARY"); path != "" {
		return path
	}

	// Try to find it relative to the test directory
	_, filename, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("failed to get caller information")
	}

	// Go up from test/integration to project root
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(filename)))
	binaryPath := filepath.Join(projectRoot, "bin", "wslforge")

	if runtime.GOOS == "windows" {
		binaryPath += ".exe"
	}

	// Check if binary exists
	if _, err := os.Stat(binaryPath); os.IsNotExist(err) {
		t.Fatalf("wslforge binary not found at %s - run 'go build -o bin/wslforge ./cmd/wslforge' first", binaryPath)
	}

	return binaryPath
}

// Run runs the wslforge CLI inside the environment.
func (e *TestEnv) Run(ctx context.Context, t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	cmd := exec.CommandContext(ctx, BinaryPath(t), args...)
	cmd.Env = append(os.Environ(),
		"WSLFORGE_CONFIG_DIR="+e.ConfigDir,
		"WSLFORGE_DATA_DIR="+e.DataDir,
		"WSLFORGE_TEST_KEYRING_DIR="+e.KeyringDir,
	)

	var stdout, stderr strings.Builder
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}

// ExitCode extracts the process exit code from a Run error. A nil
// error is exit code 0.
func ExitCode(t *testing.T, err error) int {
	t.Helper()

	if err == nil {
		return 0
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	t.Fatalf("command did not run: %v", err)
	return -1
}
