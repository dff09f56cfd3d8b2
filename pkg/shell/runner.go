// Package shell runs the "if" precondition commands of link entries.
//
// Commands are parsed and executed in-process by mvdan.cc/sh, so they
// behave the same on every platform dotlink supports. External programs
// named in a command are still executed from PATH.
package shell

import (
	"context"
	"io"
	"os"
	"strings"

	dlerrors "github.com/arthur-debert/dotlink/pkg/errors"
	"github.com/arthur-debert/dotlink/pkg/logging"
	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/interp"
	"mvdan.cc/sh/v3/syntax"
)

// Runner executes a shell command and reports its exit status
type Runner interface {
	// Run executes command with cwd as working directory. The error is
	// non-nil only when the command could not be run at all.
	Run(ctx context.Context, command, cwd string) (int, error)
}

// Interpreter is the default Runner. Output of the command is discarded
// unless Stdout/Stderr are set.
type Interpreter struct {
	Stdout io.Writer
	Stderr io.Writer
	// Env overrides the process environment when non-nil
	Env []string
}

// NewInterpreter creates an Interpreter that discards command output
func NewInterpreter() *Interpreter {
	return &Interpreter{}
}

// Run parses and executes command
func (r *Interpreter) Run(ctx context.Context, command, cwd string) (int, error) {
	logger := logging.GetLogger("shell")

	prog, err := syntax.NewParser().Parse(strings.NewReader(command), "if")
	if err != nil {
		return 1, dlerrors.Wrapf(err, dlerrors.ErrShellParse, "failed to parse command %q", command)
	}

	env := r.Env
	if env == nil {
		env = os.Environ()
	}
	stdout, stderr := r.Stdout, r.Stderr
	if stdout == nil {
		stdout = io.Discard
	}
	if stderr == nil {
		stderr = io.Discard
	}

	runner, err := interp.New(
		interp.Dir(cwd),
		interp.Env(expand.ListEnviron(env...)),
		interp.StdIO(nil, stdout, stderr),
	)
	if err != nil {
		return 1, dlerrors.Wrap(err, dlerrors.ErrShellRun, "failed to create interpreter")
	}

	logger.Trace().Str("command", command).Str("cwd", cwd).Msg("Running test command")
	err = runner.Run(ctx, prog)
	if err != nil {
		if exitStatus, ok := interp.IsExitStatus(err); ok {
			return int(exitStatus), nil
		}
		return 1, dlerrors.Wrapf(err, dlerrors.ErrShellRun, "command %q failed", command)
	}
	return 0, nil
}
