package buildenv

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wslforge/wslforge/internal/config"
)

func TestNewRunLogger(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "run.log")

	log, closeLog, err := NewRunLogger(config.LogConfig{Level: "info"}, path)
	require.NoError(t, err)

	log.Info("build started")
	require.NoError(t, closeLog())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "build started")
}

func TestNewRunLogger_Append(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.log")

	for _, msg := range []string{"first run", "second run"} {
		log, closeLog, err := NewRunLogger(config.LogConfig{Level: "info"}, path)
		require.NoError(t, err)
		log.Info(msg)
		require.NoError(t, closeLog())
	}

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "first run")
	assert.Contains(t, string(data), "second run")
}

func TestNewRunLogger_ConfiguredPathWins(t *testing.T) {
	configured := filepath.Join(t.TempDir(), "custom.log")
	fallback := filepath.Join(t.TempDir(), "fallback.log")

	log, closeLog, err := NewRunLogger(config.LogConfig{File: configured, Level: "debug"}, fallback)
	require.NoError(t, err)
	log.Debug("hello")
	require.NoError(t, closeLog())

	assert.FileExists(t, configured)
	assert.NoFileExists(t, fallback)
}

func TestNewRunLogger_InvalidLevel(t *testing.T) {
	_, _, err := NewRunLogger(config.LogConfig{Level: "chatty"}, filepath.Join(t.TempDir(), "x.log"))
	require.Error(t, err)
}
