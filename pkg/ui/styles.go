package ui

import (
	"github.com/arthur-debert/dotlink/pkg/types"
	"github.com/charmbracelet/lipgloss"
)

// Colors adapt to light and dark terminal backgrounds
var (
	successColor = lipgloss.AdaptiveColor{Light: "#28A745", Dark: "#4CDD76"}
	errorColor   = lipgloss.AdaptiveColor{Light: "#DC3545", Dark: "#FF6B7D"}
	warningColor = lipgloss.AdaptiveColor{Light: "#B8860B", Dark: "#FFD54F"}
	headingColor = lipgloss.AdaptiveColor{Light: "#212529", Dark: "#F8F9FA"}
	mutedColor   = lipgloss.AdaptiveColor{Light: "#6C757D", Dark: "#A0A8B0"}
	pathColor    = lipgloss.AdaptiveColor{Light: "#007ACC", Dark: "#3D9EFF"}
)

// styles are bound to one lipgloss renderer so color detection follows
// the writer they print to.
type styles struct {
	heading lipgloss.Style
	success lipgloss.Style
	failure lipgloss.Style
	skipped lipgloss.Style
	muted   lipgloss.Style
	path    lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) styles {
	return styles{
		heading: r.NewStyle().Foreground(headingColor).Bold(true),
		success: r.NewStyle().Foreground(successColor).Bold(true),
		failure: r.NewStyle().Foreground(errorColor).Bold(true),
		skipped: r.NewStyle().Foreground(warningColor),
		muted:   r.NewStyle().Foreground(mutedColor),
		path:    r.NewStyle().Foreground(pathColor),
	}
}

// outcome returns the marker and style for an entry outcome
func (s styles) outcome(o types.Outcome) (string, lipgloss.Style) {
	switch o {
	case types.OutcomeCreated:
		return "+", s.success
	case types.OutcomeAlreadyCorrect:
		return "=", s.muted
	case types.OutcomeSkipped:
		return "-", s.skipped
	default:
		return "!", s.failure
	}
}
