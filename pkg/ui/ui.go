package ui

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/arthur-debert/dotlink/pkg/dispatcher"
	"github.com/arthur-debert/dotlink/pkg/errors"
	"github.com/arthur-debert/dotlink/pkg/types"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Summary lines printed after a run
const (
	MsgAllSucceeded = "All tasks executed successfully"
	MsgSomeFailed   = "Some tasks were not executed successfully"
)

// Renderer prints run results
type Renderer interface {
	// RenderResult renders the outcome of a dispatch run
	RenderResult(result *dispatcher.Result) error

	// RenderError renders an error that stopped the run
	RenderError(err error) error

	// RenderMessage renders a simple message
	RenderMessage(msg string) error
}

// Options tune the human-readable renderers
type Options struct {
	// Verbose lists every entry; otherwise only entries that did not
	// succeed are listed under each directive's counts.
	Verbose bool
}

// NewRenderer creates a renderer for format. FormatAuto is resolved
// against output first.
func NewRenderer(format Format, output io.Writer, opts Options) (Renderer, error) {
	switch format {
	case FormatAuto:
		return NewRenderer(Resolve(format, output, false), output, opts)
	case FormatTerminal:
		r := lipgloss.NewRenderer(output)
		return &styledRenderer{w: output, s: newStyles(r), opts: opts}, nil
	case FormatText:
		r := lipgloss.NewRenderer(output)
		r.SetColorProfile(termenv.Ascii)
		return &styledRenderer{w: output, s: newStyles(r), opts: opts}, nil
	case FormatJSON:
		return &jsonRenderer{w: output}, nil
	default:
		return nil, errors.Newf(errors.ErrInvalidInput, "unknown format: %v", format)
	}
}

type styledRenderer struct {
	w    io.Writer
	s    styles
	opts Options
}

func (r *styledRenderer) RenderResult(result *dispatcher.Result) error {
	var b strings.Builder
	for _, report := range result.Reports {
		r.writeReport(&b, report)
	}
	for _, failure := range result.Errors {
		fmt.Fprintf(&b, "%s %s\n", r.s.failure.Render("!"), r.s.heading.Render(failure.Task.String()))
		fmt.Fprintf(&b, "    %s\n", r.s.muted.Render(failure.Err.Error()))
	}
	if len(result.Skipped) > 0 {
		fmt.Fprintf(&b, "%s\n", r.s.muted.Render("skipped: "+strings.Join(result.Skipped, ", ")))
	}

	if result.OK() {
		b.WriteString(r.s.success.Render(MsgAllSucceeded))
	} else {
		b.WriteString(r.s.failure.Render(MsgSomeFailed))
	}
	b.WriteString("\n")

	_, err := io.WriteString(r.w, b.String())
	return err
}

func (r *styledRenderer) writeReport(b *strings.Builder, report *types.Report) {
	counts := []string{}
	for _, o := range []types.Outcome{
		types.OutcomeCreated, types.OutcomeAlreadyCorrect, types.OutcomeSkipped,
		types.OutcomeSkippedAmbiguousGlob, types.OutcomeFailed,
	} {
		if n := report.Count(o); n > 0 {
			counts = append(counts, fmt.Sprintf("%d %s", n, o))
		}
	}
	fmt.Fprintf(b, "%s %s\n", r.s.heading.Render(report.Directive), r.s.muted.Render(strings.Join(counts, ", ")))

	for _, entry := range report.Entries {
		if !r.opts.Verbose && entry.Outcome.OK() {
			continue
		}
		marker, style := r.s.outcome(entry.Outcome)
		line := r.s.path.Render(entry.Destination)
		if entry.Source != "" {
			line += " -> " + entry.Source
		}
		fmt.Fprintf(b, "  %s %s\n", style.Render(marker), line)
		if entry.Err != nil {
			fmt.Fprintf(b, "    %s\n", r.s.muted.Render(entry.Err.Error()))
		}
	}
}

func (r *styledRenderer) RenderError(err error) error {
	_, werr := fmt.Fprintf(r.w, "%s %v\n", r.s.failure.Render("Error:"), err)
	return werr
}

func (r *styledRenderer) RenderMessage(msg string) error {
	_, err := fmt.Fprintln(r.w, msg)
	return err
}

type jsonRenderer struct {
	w io.Writer
}

type jsonEntry struct {
	Destination string                 `json:"destination"`
	Source      string                 `json:"source,omitempty"`
	Outcome     string                 `json:"outcome"`
	Error       string                 `json:"error,omitempty"`
	Code        string                 `json:"code,omitempty"`
	Details     map[string]interface{} `json:"details,omitempty"`
}

type jsonReport struct {
	Directive string      `json:"directive"`
	OK        bool        `json:"ok"`
	Entries   []jsonEntry `json:"entries"`
}

type jsonDirectiveError struct {
	Directive string `json:"directive"`
	Location  string `json:"location"`
	Error     string `json:"error"`
}

type jsonResult struct {
	OK      bool                 `json:"ok"`
	Reports []jsonReport         `json:"reports"`
	Errors  []jsonDirectiveError `json:"errors,omitempty"`
	Skipped []string             `json:"skipped,omitempty"`
}

func (r *jsonRenderer) RenderResult(result *dispatcher.Result) error {
	out := jsonResult{OK: result.OK(), Reports: []jsonReport{}, Skipped: result.Skipped}
	for _, report := range result.Reports {
		jr := jsonReport{Directive: report.Directive, OK: report.OK(), Entries: []jsonEntry{}}
		for _, e := range report.Entries {
			je := jsonEntry{Destination: e.Destination, Source: e.Source, Outcome: e.Outcome.String()}
			if e.Err != nil {
				je.Error = e.Err.Error()
				je.Code = string(errors.GetErrorCode(e.Err))
				je.Details = errors.GetErrorDetails(e.Err)
			}
			jr.Entries = append(jr.Entries, je)
		}
		out.Reports = append(out.Reports, jr)
	}
	for _, failure := range result.Errors {
		out.Errors = append(out.Errors, jsonDirectiveError{
			Directive: failure.Task.Directive,
			Location:  failure.Task.String(),
			Error:     failure.Err.Error(),
		})
	}
	return r.encode(out)
}

func (r *jsonRenderer) RenderError(err error) error {
	return r.encode(map[string]interface{}{"ok": false, "error": err.Error()})
}

func (r *jsonRenderer) RenderMessage(msg string) error {
	return r.encode(map[string]string{"message": msg})
}

func (r *jsonRenderer) encode(v interface{}) error {
	enc := json.NewEncoder(r.w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
