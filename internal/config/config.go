package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrInvalidRepo indicates the release repository is not in owner/name form.
var ErrInvalidRepo = errors.New("invalid release repository")

// BuildConfig holds settings for the distribution build pipeline.
type BuildConfig struct {
	// DockerImage is the base image the rootfs is exported from.
	DockerImage string `yaml:"docker_image,omitempty"`
	// OutputDir is where finished bundles are written.
	OutputDir string `yaml:"output_dir,omitempty"`
	// MinFreeSpace is the minimum free disk space in bytes required
	// before a build is attempted.
	MinFreeSpace uint64 `yaml:"min_free_space,omitempty"`
	// KeepWorkdir disables removal of the per-run working directory,
	// for debugging failed builds.
	KeepWorkdir bool `yaml:"keep_workdir,omitempty"`
}

// NotificationConfig holds settings for desktop notifications.
type NotificationConfig struct {
	// Enabled enables desktop notifications.
	Enabled bool `yaml:"enabled,omitempty"`
	// OnSuccess sends a notification when a build finishes.
	OnSuccess bool `yaml:"on_success,omitempty"`
	// OnFailure sends a notification when a build fails.
	OnFailure bool `yaml:"on_failure,omitempty"`
}

// LogConfig holds settings for the run log.
type LogConfig struct {
	// File is the path to the log file. Empty means the default
	// location under the data directory.
	File string `yaml:"file,omitempty"`
	// Level is the logging level (debug, info, warn, error).
	Level string `yaml:"level,omitempty"`
}

// Config represents the wslforge configuration.
type Config struct {
	// DistroName is the name of the WSL distribution being packaged.
	DistroName string `yaml:"distro_name,omitempty"`
	// DefaultProfile is the profile used when none is given on the
	// command line.
	DefaultProfile string `yaml:"default_profile,omitempty"`
	// ReleaseRepo is the GitHub repository (owner/name) whose releases
	// carry the launcher bundles.
	ReleaseRepo string `yaml:"release_repo,omitempty"`
	// Build holds build pipeline settings.
	Build BuildConfig `yaml:"build,omitempty"`
	// Log holds run log settings.
	Log LogConfig `yaml:"log,omitempty"`
	// Notifications holds desktop notification settings.
	Notifications NotificationConfig `yaml:"notifications,omitempty"`

	// filePath is the path where this config was loaded from.
	filePath string `yaml:"-"`
}

// DefaultMinFreeSpace is the free disk space floor for builds (2 GiB,
// roughly twice the size of a finished rootfs tarball).
const DefaultMinFreeSpace = 2 << 30

// Default returns a new Config with default values.
func Default() *Config {
	paths := GetPaths()
	return &Config{
		DistroName:     "ArchWSL",
		DefaultProfile: "development",
		ReleaseRepo:    "yuk7/ArchWSL",
		Build: BuildConfig{
			DockerImage:  "archlinux:latest",
			OutputDir:    ".",
			MinFreeSpace: DefaultMinFreeSpace,
		},
		Log: LogConfig{
			Level: "info",
		},
		Notifications: NotificationConfig{
			Enabled:   false,
			OnSuccess: true,
			OnFailure: true,
		},
		filePath: paths.ConfigFile,
	}
}

// Load loads the configuration from the default path.
func Load() (*Config, error) {
	paths := GetPaths()
	return LoadFrom(paths.ConfigFile)
}

// LoadFrom loads the configuration from a specific path.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()
	cfg.filePath = path

	// #nosec G304 - path is the config file path (controlled, from user config directory)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// No config file, return defaults
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Apply defaults for missing values
	if cfg.Build.DockerImage == "" {
		cfg.Build.DockerImage = "archlinux:latest"
	}
	if cfg.Build.OutputDir == "" {
		cfg.Build.OutputDir = "."
	}
	if cfg.Build.MinFreeSpace == 0 {
		cfg.Build.MinFreeSpace = DefaultMinFreeSpace
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}

	return cfg, nil
}

// Save writes the configuration to its file path.
func (c *Config) Save() error {
	if c.filePath == "" {
		return errors.New("config file path not set")
	}

	paths := GetPaths()
	if err := paths.EnsureDirs(); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(c.filePath, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// RepoOwnerName splits ReleaseRepo into its owner and name parts.
func (c *Config) RepoOwnerName() (owner, name string, err error) {
	parts := strings.Split(c.ReleaseRepo, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("%w: %q is not in owner/name form", ErrInvalidRepo, c.ReleaseRepo)
	}
	return parts[0], parts[1], nil
}

// FilePath returns the path where this config was loaded from.
func (c *Config) FilePath() string {
	return c.filePath
}
