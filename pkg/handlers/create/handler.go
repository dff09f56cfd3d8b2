package create

import (
	"context"
	"fmt"

	"github.com/arthur-debert/dotlink/pkg/config"
	"github.com/arthur-debert/dotlink/pkg/handlers"
	"github.com/arthur-debert/dotlink/pkg/logging"
	"github.com/arthur-debert/dotlink/pkg/paths"
	"github.com/arthur-debert/dotlink/pkg/platform"
	"github.com/arthur-debert/dotlink/pkg/types"
	"gopkg.in/yaml.v3"
)

// DirectiveName is the directive handled by this package
const DirectiveName = "create"

const (
	msgLegacyList = "Create from list syntax is soft deprecated, should use dict " +
		"syntax with keys & null values instead for up to date behaviour."
	msgAllCreated  = "All paths have been set up"
	msgSomeFailed  = "Some paths were not successfully set up"
	msgPathSkipped = "Path skipped %s (%s only)"
)

// Handler runs the create directive
type Handler struct {
	creator  *Creator
	log      logging.Sink
	platform platform.Matcher
}

var _ handlers.Handler = (*Handler)(nil)

// NewHandler creates a create directive handler
func NewHandler(env handlers.Env) *Handler {
	return &Handler{
		creator:  NewCreator(env.FS, env.Log),
		log:      env.Log,
		platform: env.Platform,
	}
}

// Name returns the directive name
func (h *Handler) Name() string {
	return DirectiveName
}

// Description returns a human-readable description
func (h *Handler) Description() string {
	return "Creates empty directories"
}

// Validate decodes the directive data
func (h *Handler) Validate(data *yaml.Node) error {
	_, _, err := config.DecodeCreateEntries(data)
	return err
}

// Handle creates every declared path. Malformed data is returned before
// any path is touched.
func (h *Handler) Handle(_ context.Context, data *yaml.Node, defaults types.Defaults) (*types.Report, error) {
	entries, legacy, err := config.DecodeCreateEntries(data)
	if legacy {
		h.log.Warning(msgLegacyList)
	}
	if err != nil {
		return nil, err
	}

	report := types.NewReport(DirectiveName)
	for _, entry := range entries {
		spec := types.ResolveCreateSpec(entry.Path, defaults.Create, entry.Options)
		expanded := paths.ExpandUser(paths.ExpandVars(spec.Path))

		if !h.platform.Matches(spec.OSConstraint) {
			h.log.LowInfo(fmt.Sprintf(msgPathSkipped, expanded, spec.OSConstraint))
			report.Add(types.EntryResult{Destination: expanded, Outcome: types.OutcomeSkipped})
			continue
		}

		outcome, err := h.creator.Ensure(expanded, spec.Mode)
		report.Add(types.EntryResult{Destination: expanded, Outcome: outcome, Err: err})
	}

	if report.OK() {
		h.log.Info(msgAllCreated)
	} else {
		h.log.Error(msgSomeFailed)
	}
	return report, nil
}
