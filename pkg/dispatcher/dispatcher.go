// Package dispatcher runs a parsed install configuration. Tasks run in
// order; each defaults directive replaces the defaults seen by the
// directives after it. The run succeeds only if every directive does.
package dispatcher

import (
	"context"
	"fmt"
	"slices"

	"github.com/arthur-debert/dotlink/pkg/config"
	"github.com/arthur-debert/dotlink/pkg/errors"
	"github.com/arthur-debert/dotlink/pkg/handlers"
	"github.com/arthur-debert/dotlink/pkg/handlers/create"
	"github.com/arthur-debert/dotlink/pkg/handlers/link"
	"github.com/arthur-debert/dotlink/pkg/logging"
	"github.com/arthur-debert/dotlink/pkg/types"
)

// Options controls a dispatch run
type Options struct {
	Registry *handlers.Registry
	Log      logging.Sink

	// Only, when not empty, restricts the run to these directives
	Only []string
	// Except lists directives to skip
	Except []string

	// Validate decodes every directive without running it
	Validate bool
}

// DirectiveError records a directive that could not run
type DirectiveError struct {
	Task config.Task
	Err  error
}

// Result is the outcome of a dispatch run
type Result struct {
	Reports []*types.Report
	Errors  []DirectiveError
	// Skipped lists directives left out by Only/Except
	Skipped []string
}

// OK is true when no directive errored and every report is OK
func (r *Result) OK() bool {
	if len(r.Errors) > 0 {
		return false
	}
	for _, report := range r.Reports {
		if !report.OK() {
			return false
		}
	}
	return true
}

// NewRegistry returns a registry holding the built-in directives
func NewRegistry(env handlers.Env) (*handlers.Registry, error) {
	return handlers.NewRegistry(
		link.NewHandler(env),
		create.NewHandler(env),
	)
}

// Dispatch runs tasks in order. A failing directive never stops the
// directives after it.
func Dispatch(ctx context.Context, tasks []config.Task, opts Options) *Result {
	logger := logging.GetLogger("dispatcher")
	logger.Debug().
		Int("tasks", len(tasks)).
		Strs("only", opts.Only).
		Strs("except", opts.Except).
		Bool("validate", opts.Validate).
		Msg("Dispatching install configuration")

	result := &Result{}
	fail := func(task config.Task, err error) {
		opts.Log.Error(fmt.Sprintf("%s: %v", task, err))
		result.Errors = append(result.Errors, DirectiveError{Task: task, Err: err})
	}

	var defaults types.Defaults
	for _, task := range tasks {
		if task.Directive == config.DirectiveDefaults {
			decoded, err := config.DecodeDefaults(task.Data)
			if err != nil {
				fail(task, err)
				continue
			}
			defaults = decoded
			logger.Debug().Str("task", task.String()).Msg("Defaults replaced")
			continue
		}

		if !selected(task.Directive, opts.Only, opts.Except) {
			opts.Log.LowInfo(fmt.Sprintf("Skipping action %s", task.Directive))
			result.Skipped = append(result.Skipped, task.Directive)
			continue
		}

		handler, err := opts.Registry.Get(task.Directive)
		if err != nil {
			fail(task, err)
			continue
		}

		if opts.Validate {
			if err := handler.Validate(task.Data); err != nil {
				fail(task, err)
			}
			continue
		}

		logger.Debug().Str("task", task.String()).Msg("Running directive")
		report, err := handler.Handle(ctx, task.Data, defaults)
		if err != nil {
			fail(task, errors.Wrapf(err, errors.GetErrorCode(err), "%s aborted", task.Directive))
			continue
		}
		result.Reports = append(result.Reports, report)
	}
	return result
}

func selected(directive string, only, except []string) bool {
	if len(only) > 0 && !slices.Contains(only, directive) {
		return false
	}
	return !slices.Contains(except, directive)
}
