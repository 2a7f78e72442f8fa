package buildenv

import (
	"errors"
	"io"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wslforge/wslforge/internal/config"
	"github.com/wslforge/wslforge/internal/profile"
	"github.com/wslforge/wslforge/internal/system"
)

// recordingNotifier counts outcome notifications.
type recordingNotifier struct {
	succeeded int
	failed    int
}

func (r *recordingNotifier) BuildSucceeded(string, time.Duration) error {
	r.succeeded++
	return nil
}

func (r *recordingNotifier) BuildFailed(string, error) error {
	r.failed++
	return nil
}

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.DistroName = "TestWSL"
	cfg.Build.OutputDir = t.TempDir()
	cfg.Build.MinFreeSpace = 1
	return cfg
}

// buildDirs lists the per-run working directories under root.
func buildDirs(t *testing.T, root string) []string {
	t.Helper()
	entries, err := os.ReadDir(root)
	require.NoError(t, err)
	var dirs []string
	for _, e := range entries {
		if e.IsDir() {
			dirs = append(dirs, e.Name())
		}
	}
	return dirs
}

func TestPreflight_MissingTool(t *testing.T) {
	exe := &system.MockExecutor{MissingBinaries: []string{"zip"}}

	err := Preflight(exe, t.TempDir(), 1)

	require.Error(t, err)
	assert.Contains(t, err.Error(), `required tool "zip"`)
	assert.Empty(t, exe.Commands, "no command may run when a tool is missing")
}

func TestPreflight_DaemonDown(t *testing.T) {
	exe := &system.MockExecutor{
		FailOn: map[string]error{"docker": errors.New("cannot connect to the Docker daemon")},
	}

	err := Preflight(exe, t.TempDir(), 1)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "docker daemon")
}

func TestPreflight_InsufficientSpace(t *testing.T) {
	exe := &system.MockExecutor{}

	err := Preflight(exe, t.TempDir(), math.MaxUint64)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "insufficient disk space")
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		n    uint64
		want string
	}{
		{512, "512 B"},
		{2048, "2.0 KiB"},
		{5 << 20, "5.0 MiB"},
		{2 << 30, "2.0 GiB"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatBytes(tt.n))
	}
}

func TestWorkdir_Cleanup(t *testing.T) {
	root := t.TempDir()

	wd, err := NewWorkdir(root, false)
	require.NoError(t, err)
	assert.DirExists(t, wd.Path)

	require.NoError(t, wd.Cleanup())
	assert.NoDirExists(t, wd.Path)
}

func TestWorkdir_Keep(t *testing.T) {
	root := t.TempDir()

	wd, err := NewWorkdir(root, true)
	require.NoError(t, err)
	require.NoError(t, wd.Cleanup())

	assert.DirExists(t, wd.Path, "kept working directory must survive cleanup")
}

func TestWorkdir_Unique(t *testing.T) {
	root := t.TempDir()

	a, err := NewWorkdir(root, false)
	require.NoError(t, err)
	b, err := NewWorkdir(root, false)
	require.NoError(t, err)

	assert.NotEqual(t, a.Path, b.Path)
}

func TestBuilder_Run(t *testing.T) {
	cfg := testConfig(t)
	workRoot := t.TempDir()
	exe := &system.MockExecutor{}
	notifier := &recordingNotifier{}

	b := New(cfg, exe, testLogger(), notifier, workRoot)
	res, err := b.Run(profile.KindServer)

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(cfg.Build.OutputDir, "TestWSL.zip"), res.BundlePath)
	assert.Equal(t, profile.KindServer, res.Profile)

	// The pipeline is strictly sequential.
	var names []string
	for _, args := range exe.Commands {
		names = append(names, args[0]+" "+args[1])
	}
	assert.Equal(t, []string{
		"docker info",
		"docker create",
		"docker export",
		"gzip -f",
		"docker rm",
		"zip -j",
	}, names)

	// The rendered wsl.conf went into the working directory before it
	// was cleaned up; only the cleanup result is observable.
	assert.Empty(t, buildDirs(t, workRoot), "working directory must be removed")
	assert.Equal(t, 1, notifier.succeeded)
	assert.Zero(t, notifier.failed)
}

func TestBuilder_Run_FailureCleansUp(t *testing.T) {
	cfg := testConfig(t)
	workRoot := t.TempDir()
	exe := &system.MockExecutor{
		FailOn: map[string]error{"gzip": errors.New("gzip: out of space")},
	}
	notifier := &recordingNotifier{}

	b := New(cfg, exe, testLogger(), notifier, workRoot)
	_, err := b.Run(profile.KindMinimal)

	require.Error(t, err)
	assert.Empty(t, buildDirs(t, workRoot), "working directory must be removed on failure")
	assert.Equal(t, 1, notifier.failed)
	assert.Zero(t, notifier.succeeded)
}

func TestBuilder_Run_KeepWorkdir(t *testing.T) {
	cfg := testConfig(t)
	cfg.Build.KeepWorkdir = true
	workRoot := t.TempDir()
	exe := &system.MockExecutor{}

	b := New(cfg, exe, testLogger(), &recordingNotifier{}, workRoot)
	_, err := b.Run(profile.KindDesktop)

	require.NoError(t, err)
	dirs := buildDirs(t, workRoot)
	require.Len(t, dirs, 1, "working directory must be kept")

	// The kept directory holds the rendered wsl.conf.
	data, err := os.ReadFile(filepath.Join(workRoot, dirs[0], "wsl.conf"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "[automount]")
}

func TestBuilder_Run_PreflightFailure(t *testing.T) {
	cfg := testConfig(t)
	workRoot := t.TempDir()
	exe := &system.MockExecutor{MissingBinaries: []string{"docker"}}
	notifier := &recordingNotifier{}

	b := New(cfg, exe, testLogger(), notifier, workRoot)
	_, err := b.Run(profile.KindServer)

	require.Error(t, err)
	assert.Equal(t, 1, notifier.failed)
	assert.Empty(t, buildDirs(t, workRoot))
}
