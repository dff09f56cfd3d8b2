package link

import (
	"context"

	"github.com/arthur-debert/dotlink/pkg/config"
	"github.com/arthur-debert/dotlink/pkg/handlers"
	"github.com/arthur-debert/dotlink/pkg/types"
	"gopkg.in/yaml.v3"
)

// DirectiveName is the directive handled by this package
const DirectiveName = "link"

// Handler runs the link directive
type Handler struct {
	reconciler *Reconciler
}

var _ handlers.Handler = (*Handler)(nil)

// NewHandler creates a link directive handler
func NewHandler(env handlers.Env) *Handler {
	return &Handler{reconciler: NewReconciler(env)}
}

// Name returns the directive name
func (h *Handler) Name() string {
	return DirectiveName
}

// Description returns a human-readable description
func (h *Handler) Description() string {
	return "Symbolically links dotfiles"
}

// Validate decodes the directive data
func (h *Handler) Validate(data *yaml.Node) error {
	_, err := config.DecodeLinkEntries(data)
	return err
}

// Handle decodes the entries and reconciles them
func (h *Handler) Handle(ctx context.Context, data *yaml.Node, defaults types.Defaults) (*types.Report, error) {
	entries, err := config.DecodeLinkEntries(data)
	if err != nil {
		return nil, err
	}
	return h.reconciler.Process(ctx, entries, defaults.Link), nil
}
