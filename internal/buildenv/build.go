// Package buildenv assembles the distribution bundle: a rootfs tarball
// exported from a docker image plus the rendered wsl.conf, zipped into
// the launcher package.
package buildenv

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/google/renameio/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/wslforge/wslforge/internal/config"
	"github.com/wslforge/wslforge/internal/notify"
	"github.com/wslforge/wslforge/internal/profile"
	"github.com/wslforge/wslforge/internal/system"
)

// Builder runs the sequential build pipeline. Every step blocks until
// completion; there is no retry logic.
type Builder struct {
	cfg      *config.Config
	exe      system.Executor
	log      *logrus.Logger
	notifier notify.Notifier
	workRoot string
}

// Result describes a finished build.
type Result struct {
	BundlePath string        `json:"bundle_path"`
	Profile    profile.Kind  `json:"profile"`
	Elapsed    time.Duration `json:"elapsed"`
}

// New creates a Builder. workRoot is the directory per-run working
// directories are created under, normally the cache dir.
func New(cfg *config.Config, exe system.Executor, log *logrus.Logger, notifier notify.Notifier, workRoot string) *Builder {
	return &Builder{
		cfg:      cfg,
		exe:      exe,
		log:      log,
		notifier: notifier,
		workRoot: workRoot,
	}
}

// Run builds the bundle for the given profile. The working directory is
// removed on every exit path unless keep_workdir is configured.
func (b *Builder) Run(kind profile.Kind) (*Result, error) {
	start := time.Now()

	res, err := b.run(kind)
	if err != nil {
		if nerr := b.notifier.BuildFailed(b.cfg.DistroName, err); nerr != nil {
			b.log.WithError(nerr).Warn("failed to send notification")
		}
		return nil, err
	}

	res.Elapsed = time.Since(start)
	if nerr := b.notifier.BuildSucceeded(b.cfg.DistroName, res.Elapsed); nerr != nil {
		b.log.WithError(nerr).Warn("failed to send notification")
	}
	return res, nil
}

func (b *Builder) run(kind profile.Kind) (*Result, error) {
	b.log.WithFields(logrus.Fields{
		"distro":  b.cfg.DistroName,
		"profile": kind,
		"image":   b.cfg.Build.DockerImage,
	}).Info("starting build")

	if err := Preflight(b.exe, b.workRoot, b.cfg.Build.MinFreeSpace); err != nil {
		return nil, err
	}

	wd, err := NewWorkdir(b.workRoot, b.cfg.Build.KeepWorkdir)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := wd.Cleanup(); cerr != nil {
			b.log.WithError(cerr).Warn("failed to remove working directory")
		}
	}()

	if err := b.exportRootfs(wd.Path); err != nil {
		return nil, err
	}

	if err := b.writeConf(wd.Path, kind); err != nil {
		return nil, err
	}

	bundle, err := b.zipBundle(wd.Path)
	if err != nil {
		return nil, err
	}

	b.log.WithField("bundle", bundle).Info("build finished")
	return &Result{BundlePath: bundle, Profile: kind}, nil
}

// exportRootfs exports the base image filesystem into a compressed
// tarball inside the working directory.
func (b *Builder) exportRootfs(dir string) error {
	container := "wslforge-build-" + uuid.NewString()

	b.log.WithField("container", container).Info("creating container")
	if err := b.exe.Run(exec.Command("docker", "create", "--name", container, b.cfg.Build.DockerImage)); err != nil {
		return fmt.Errorf("failed to create container from %s: %w", b.cfg.Build.DockerImage, err)
	}
	// Container removal is best-effort cleanup on every path below.
	defer func() {
		if err := b.exe.Run(exec.Command("docker", "rm", container)); err != nil {
			b.log.WithField("container", container).WithError(err).Warn("failed to remove container")
		}
	}()

	tarPath := filepath.Join(dir, "rootfs.tar")
	b.log.Info("exporting rootfs")
	if err := b.exe.Run(exec.Command("docker", "export", "--output", tarPath, container)); err != nil {
		return fmt.Errorf("failed to export rootfs: %w", err)
	}

	b.log.Info("compressing rootfs")
	if err := b.exe.Run(exec.Command("gzip", "-f", tarPath)); err != nil {
		return fmt.Errorf("failed to compress rootfs: %w", err)
	}

	return nil
}

// writeConf renders the profile's wsl.conf into the working directory.
func (b *Builder) writeConf(dir string, kind profile.Kind) error {
	p, err := profile.ForKind(kind)
	if err != nil {
		return err
	}
	doc, err := profile.Render(p)
	if err != nil {
		return err
	}

	path := filepath.Join(dir, "wsl.conf")
	if err := renameio.WriteFile(path, []byte(doc), 0644); err != nil {
		return fmt.Errorf("failed to write wsl.conf: %w", err)
	}
	return nil
}

// zipBundle packs the working directory artifacts into the launcher
// bundle under the configured output directory.
func (b *Builder) zipBundle(dir string) (string, error) {
	if err := os.MkdirAll(b.cfg.Build.OutputDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	bundle := filepath.Join(b.cfg.Build.OutputDir, b.cfg.DistroName+".zip")
	cmd := exec.Command("zip", "-j", bundle,
		filepath.Join(dir, "rootfs.tar.gz"),
		filepath.Join(dir, "wsl.conf"))
	if out, err := b.exe.CombinedOutput(cmd); err != nil {
		return "", fmt.Errorf("failed to zip bundle: %w (output: %s)", err, out)
	}
	return bundle, nil
}
