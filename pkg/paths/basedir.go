package paths

import (
	"path/filepath"

	"github.com/arthur-debert/dotlink/pkg/errors"
)

// BaseDir is the root against which relative dotfile sources are resolved
type BaseDir interface {
	// Resolve returns the absolute base directory. With canonicalize set,
	// symlinks in the path are resolved first.
	Resolve(canonicalize bool) (string, error)
}

type baseDirectory struct {
	dir string
}

// NewBaseDir creates a BaseDir rooted at dir. A relative dir is taken
// relative to the working directory at resolution time.
func NewBaseDir(dir string) BaseDir {
	return &baseDirectory{dir: dir}
}

func (b *baseDirectory) Resolve(canonicalize bool) (string, error) {
	abs, err := Absolute(b.dir)
	if err != nil {
		return "", err
	}
	if !canonicalize {
		return abs, nil
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrFileAccess, "failed to canonicalize base directory %s", abs)
	}
	return resolved, nil
}
