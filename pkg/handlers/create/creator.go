package create

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/arthur-debert/dotlink/pkg/errors"
	"github.com/arthur-debert/dotlink/pkg/logging"
	"github.com/arthur-debert/dotlink/pkg/paths"
	"github.com/arthur-debert/dotlink/pkg/types"
)

// Creator makes directories. Failures are logged and reported as false,
// never returned.
type Creator struct {
	fs  types.FS
	log logging.Sink
}

// NewCreator creates a Creator acting on fs and reporting to log
func NewCreator(fs types.FS, log logging.Sink) *Creator {
	return &Creator{fs: fs, log: log}
}

// Create makes path and all missing ancestors with mode. It returns true
// when the path exists afterwards.
func (c *Creator) Create(path string, mode os.FileMode) bool {
	outcome, _ := c.Ensure(path, mode)
	return outcome.OK()
}

// CreateParent makes the directory that contains path
func (c *Creator) CreateParent(path string) bool {
	abs, err := paths.Absolute(path)
	if err != nil {
		c.log.Warning(fmt.Sprintf("Failed to create directory %s (%v)", path, err))
		return false
	}
	parent := filepath.Dir(abs)
	if c.exists(parent) {
		return true
	}

	c.log.Debug(fmt.Sprintf("Try to create parent: %s", parent))
	if err := c.fs.MkdirAll(parent, types.DefaultCreateMode); err != nil {
		c.log.Warning(fmt.Sprintf("Failed to create directory %s (%v)", parent, err))
		return false
	}
	c.log.LowInfo(fmt.Sprintf("Creating directory %s", parent))
	return true
}

// Ensure is Create with a detailed result: OutcomeCreated,
// OutcomeAlreadyCorrect, or OutcomeFailed with the cause.
func (c *Creator) Ensure(path string, mode os.FileMode) (types.Outcome, error) {
	path = paths.ExpandUser(path)
	if c.exists(path) {
		c.log.LowInfo(fmt.Sprintf("Path exists %s", path))
		return types.OutcomeAlreadyCorrect, nil
	}

	c.log.Debug(fmt.Sprintf("Trying to create path %s with mode %o", path, mode))
	c.log.LowInfo(fmt.Sprintf("Creating path %s", path))
	if err := c.fs.MkdirAll(path, mode); err != nil {
		c.log.Warning(fmt.Sprintf("Failed to create path %s (%v)", path, err))
		return types.OutcomeFailed, errors.Wrapf(err, errors.ErrDirCreate, "failed to create %s", path)
	}
	return types.OutcomeCreated, nil
}

// exists follows symlinks: a dangling link does not count
func (c *Creator) exists(path string) bool {
	_, err := c.fs.Stat(path)
	return err == nil
}
