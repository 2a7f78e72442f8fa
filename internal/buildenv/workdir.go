package buildenv

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// Workdir is the per-run working directory. Two concurrent runs get
// distinct directories; nothing guards a deliberately shared one.
type Workdir struct {
	Path string
	keep bool
}

// NewWorkdir creates a fresh working directory under root.
func NewWorkdir(root string, keep bool) (*Workdir, error) {
	path := filepath.Join(root, "build-"+uuid.NewString())
	if err := os.MkdirAll(path, 0700); err != nil {
		return nil, fmt.Errorf("failed to create working directory: %w", err)
	}
	return &Workdir{Path: path, keep: keep}, nil
}

// Cleanup removes the working directory unless it was kept for
// debugging. Safe to call on every exit path.
func (w *Workdir) Cleanup() error {
	if w.keep {
		return nil
	}
	return os.RemoveAll(w.Path)
}
