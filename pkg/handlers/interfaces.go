package handlers

import (
	"context"

	"github.com/arthur-debert/dotlink/pkg/logging"
	"github.com/arthur-debert/dotlink/pkg/paths"
	"github.com/arthur-debert/dotlink/pkg/platform"
	"github.com/arthur-debert/dotlink/pkg/shell"
	"github.com/arthur-debert/dotlink/pkg/types"
	"gopkg.in/yaml.v3"
)

// Handler processes the data of one directive
type Handler interface {
	// Name returns the directive this handler owns
	Name() string

	// Description returns a human-readable description of what this handler does
	Description() string

	// Validate checks the directive data without touching the filesystem
	Validate(data *yaml.Node) error

	// Handle reconciles the filesystem with the directive data. A non-nil
	// error means the data was malformed and no entry was processed.
	Handle(ctx context.Context, data *yaml.Node, defaults types.Defaults) (*types.Report, error)
}

// Env holds the capabilities handlers act through
type Env struct {
	FS       types.FS
	Log      logging.Sink
	Runner   shell.Runner
	Platform platform.Matcher
	BaseDir  paths.BaseDir
}
