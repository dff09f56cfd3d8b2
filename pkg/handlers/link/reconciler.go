package link

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/dotlink/pkg/errors"
	"github.com/arthur-debert/dotlink/pkg/handlers"
	"github.com/arthur-debert/dotlink/pkg/handlers/create"
	"github.com/arthur-debert/dotlink/pkg/logging"
	"github.com/arthur-debert/dotlink/pkg/paths"
	"github.com/arthur-debert/dotlink/pkg/platform"
	"github.com/arthur-debert/dotlink/pkg/shell"
	"github.com/arthur-debert/dotlink/pkg/types"
)

const (
	msgAllLinked  = "All links have been set up"
	msgSomeFailed = "Some links were not successfully set up"
)

// Reconciler makes the filesystem match a set of declared links
type Reconciler struct {
	fs       types.FS
	log      logging.Sink
	runner   shell.Runner
	platform platform.Matcher
	baseDir  paths.BaseDir
	creator  *create.Creator
}

// NewReconciler creates a Reconciler using the capabilities in env
func NewReconciler(env handlers.Env) *Reconciler {
	return &Reconciler{
		fs:       env.FS,
		log:      env.Log,
		runner:   env.Runner,
		platform: env.Platform,
		baseDir:  env.BaseDir,
		creator:  create.NewCreator(env.FS, env.Log),
	}
}

// Process reconciles every entry in order and returns one result per link
// attempted. A failing entry never stops the entries after it.
func (r *Reconciler) Process(ctx context.Context, entries []types.LinkEntry, defaults types.LinkOptions) *types.Report {
	report := types.NewReport(DirectiveName)
	for _, entry := range entries {
		r.processEntry(ctx, entry, defaults, report)
	}

	if report.OK() {
		r.log.Info(msgAllLinked)
	} else {
		r.log.Error(msgSomeFailed)
	}
	return report
}

func (r *Reconciler) processEntry(ctx context.Context, entry types.LinkEntry, defaults types.LinkOptions, report *types.Report) {
	resolved := types.LinkSpec{
		Destination: paths.ExpandVars(entry.Destination),
		Policy:      types.ResolveLinkPolicy(defaults, entry.Options),
	}
	shown := displayPath(resolved.Destination)

	if !r.platform.Matches(resolved.Policy.OSConstraint) {
		r.log.LowInfo(fmt.Sprintf("Skipping link %s (%s only)", shown, resolved.Policy.OSConstraint))
		report.Add(types.EntryResult{Destination: shown, Outcome: types.OutcomeSkipped})
		return
	}

	if entry.Options.Path != nil {
		resolved.Source = *entry.Options.Path
	} else {
		resolved.Source = DefaultSource(resolved.Destination)
	}

	if resolved.Policy.TestCommand != "" && !r.testPasses(ctx, resolved.Policy.TestCommand) {
		r.log.LowInfo(fmt.Sprintf("Skipping %s", shown))
		report.Add(types.EntryResult{Destination: shown, Source: resolved.Source, Outcome: types.OutcomeSkipped})
		return
	}

	resolved.Source = paths.Expand(resolved.Source)
	if resolved.Policy.Glob {
		r.processGlob(resolved, report)
		return
	}
	report.Add(r.linkPair(resolved.Destination, resolved.Source, resolved.Policy, true))
}

func (r *Reconciler) processGlob(entry types.LinkSpec, report *types.Report) {
	destination, pattern, policy := entry.Destination, entry.Source, entry.Policy
	fail := func(outcome types.Outcome, err error) {
		report.Add(types.EntryResult{Destination: destination, Source: pattern, Outcome: outcome, Err: err})
	}

	base, err := r.baseDir.Resolve(policy.Canonicalize)
	if err != nil {
		r.log.Warning(fmt.Sprintf("Cannot resolve base directory for %s (%v)", destination, err))
		fail(types.OutcomeFailed, err)
		return
	}
	absPattern := paths.Join(base, pattern)

	matches, err := r.expandGlob(absPattern, base, policy.ExcludePatterns)
	if err != nil {
		r.log.Warning(fmt.Sprintf("Globbing failed for %s (%v)", pattern, err))
		fail(types.OutcomeFailed, err)
		return
	}

	switch {
	case len(matches) == 0:
		r.log.Warning(fmt.Sprintf("Globbing couldn't find anything matching %s", pattern))
		fail(types.OutcomeFailed, errors.Newf(errors.ErrGlobNoMatch, "no match for %s", pattern))

	case len(matches) == 1 && paths.HasTrailingSeparator(destination):
		r.log.Error("Ambiguous action requested.")
		r.log.Error(fmt.Sprintf("No wildcard in glob, directory use undefined: %s -> %v", destination, matches))
		r.log.Warning("Did you want to link the directory or into it?")
		fail(types.OutcomeSkippedAmbiguousGlob,
			errors.Newf(errors.ErrGlobAmbiguous, "single match %s for directory destination %s", matches[0], destination))

	case len(matches) == 1:
		report.Add(r.linkPair(destination, matches[0], policy, false))

	default:
		r.log.LowInfo(fmt.Sprintf("Globs from '%s': %v", pattern, matches))
		for _, match := range matches {
			report.Add(r.linkPair(FanOutDestination(absPattern, match, destination), match, policy, false))
		}
	}
}

// expandGlob returns the sorted matches of pattern minus every match of
// the exclude patterns. Relative exclude patterns are taken from base.
// Hidden names only match pattern segments that start with a dot, and a
// directory is dropped when matches below it were found as well.
func (r *Reconciler) expandGlob(pattern, base string, exclude []string) ([]string, error) {
	r.log.Debug(fmt.Sprintf("Globbing with path: %s", pattern))
	found, err := r.fs.Glob(pattern)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrGlob, "invalid pattern %s", pattern)
	}
	include := make([]string, 0, len(found))
	for _, match := range found {
		if VisibleMatch(pattern, match) {
			include = append(include, match)
		}
	}
	include = PruneAncestors(include)

	var excluded []string
	for _, ex := range exclude {
		exPattern := paths.Join(base, paths.Expand(ex))
		r.log.Debug(fmt.Sprintf("Excluding globs with path: %s", exPattern))
		found, err := r.fs.Glob(exPattern)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrGlob, "invalid exclude pattern %s", ex)
		}
		excluded = append(excluded, found...)
	}
	if len(excluded) > 0 {
		r.log.Debug(fmt.Sprintf("Excluded globs from '%s': %v", pattern, excluded))
	}
	return SubtractMatches(include, excluded), nil
}

// linkPair runs create, delete and link for one source/destination pair.
// precheck refuses to touch the destination when the source is missing.
func (r *Reconciler) linkPair(destination, source string, policy types.LinkPolicy, precheck bool) types.EntryResult {
	result := types.EntryResult{Destination: displayPath(destination), Source: source}

	var stepErr error
	if policy.Create && !r.creator.CreateParent(destination) {
		stepErr = errors.Newf(errors.ErrDirCreate, "failed to create parent directory of %s", destination)
	}

	if precheck && !policy.IgnoreMissing {
		absSource, err := r.resolveSource(source, policy)
		if err != nil || !r.exists(absSource) {
			r.log.Warning(fmt.Sprintf("Nonexistent source %s -> %s", destination, source))
			result.Outcome = types.OutcomeFailed
			result.Err = errors.Newf(errors.ErrSourceMissing, "source %s does not exist", source)
			return result
		}
	}

	if policy.Force || policy.Relink {
		if err := r.remove(source, destination, policy); err != nil && stepErr == nil {
			stepErr = err
		}
	}

	result.Outcome, result.Err = r.link(source, destination, policy)
	if result.Outcome.OK() && stepErr != nil {
		result.Outcome, result.Err = types.OutcomeFailed, stepErr
	}
	return result
}

// Delete removes whatever occupies destination when it is in the way of
// the link to source: a symlink with a different target is always
// removed, a real file or directory only when policy.Force is set.
// It returns false when a removal failed.
func (r *Reconciler) Delete(source, destination string, policy types.LinkPolicy) bool {
	return r.remove(source, destination, policy) == nil
}

func (r *Reconciler) remove(source, destination string, policy types.LinkPolicy) error {
	dest, target, err := r.resolvePair(source, destination, policy)
	if err != nil {
		r.log.Warning(fmt.Sprintf("Failed to remove %s (%v)", destination, err))
		return err
	}

	info, err := r.fs.Lstat(dest)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		r.log.Warning(fmt.Sprintf("Failed to remove %s (%v)", destination, err))
		return errors.Wrapf(err, errors.ErrFileAccess, "cannot inspect %s", dest)
	}

	if isSymlink(info) {
		actual, err := r.fs.Readlink(dest)
		if err != nil {
			r.log.Warning(fmt.Sprintf("Failed to read link %s (%v)", destination, err))
			return errors.Wrapf(err, errors.ErrSymlinkRead, "cannot read link %s", dest)
		}
		if paths.NormalizeLinkTarget(actual) == target {
			return nil
		}
		if err := r.fs.Remove(dest); err != nil {
			r.log.Warning(fmt.Sprintf("Failed to remove %s (%v)", destination, err))
			return errors.Wrapf(err, errors.ErrRemove, "cannot remove %s", dest)
		}
		r.log.LowInfo(fmt.Sprintf("Removing %s", destination))
		return nil
	}

	if !policy.Force {
		return nil
	}
	if r.resolvesToSource(source, dest, policy) {
		r.log.Warning(fmt.Sprintf("Not removing %s, it resolves to the link source", destination))
		return nil
	}
	if info.IsDir() {
		err = r.fs.RemoveAll(dest)
	} else {
		err = r.fs.Remove(dest)
	}
	if err != nil {
		r.log.Warning(fmt.Sprintf("Failed to remove %s (%v)", destination, err))
		return errors.Wrapf(err, errors.ErrRemove, "cannot remove %s", dest)
	}
	r.log.LowInfo(fmt.Sprintf("Removing %s", destination))
	return nil
}

// Link creates the symlink at destination pointing at source. It never
// removes anything: an incorrect link or a real file at destination is
// reported as OutcomeFailed.
func (r *Reconciler) Link(source, destination string, policy types.LinkPolicy) types.Outcome {
	outcome, _ := r.link(source, destination, policy)
	return outcome
}

func (r *Reconciler) link(source, destination string, policy types.LinkPolicy) (types.Outcome, error) {
	absSource, err := r.resolveSource(source, policy)
	if err != nil {
		r.log.Warning(fmt.Sprintf("Linking failed %s -> %s (%v)", destination, source, err))
		return types.OutcomeFailed, err
	}
	if !policy.IgnoreMissing && !r.exists(absSource) {
		r.log.Warning(fmt.Sprintf("Nonexistent source %s <-> %s", destination, source))
		return types.OutcomeFailed, errors.Newf(errors.ErrSourceMissing, "source %s does not exist", absSource)
	}

	dest, target, err := r.resolvePair(source, destination, policy)
	if err != nil {
		r.log.Warning(fmt.Sprintf("Linking failed %s -> %s (%v)", destination, source, err))
		return types.OutcomeFailed, err
	}

	info, err := r.fs.Lstat(dest)
	switch {
	case os.IsNotExist(err):
		if err := r.fs.Symlink(target, dest); err != nil {
			r.log.Warning(fmt.Sprintf("Linking failed %s -> %s (%v)", dest, target, err))
			return types.OutcomeFailed, errors.Wrapf(err, errors.ErrSymlinkCreate, "cannot link %s", dest)
		}
		r.log.LowInfo(fmt.Sprintf("Creating link %s -> %s", dest, target))
		return types.OutcomeCreated, nil

	case err != nil:
		r.log.Warning(fmt.Sprintf("Linking failed %s -> %s (%v)", dest, target, err))
		return types.OutcomeFailed, errors.Wrapf(err, errors.ErrFileAccess, "cannot inspect %s", dest)

	case isSymlink(info):
		actual, err := r.fs.Readlink(dest)
		if err != nil {
			r.log.Warning(fmt.Sprintf("Failed to read link %s (%v)", dest, err))
			return types.OutcomeFailed, errors.Wrapf(err, errors.ErrSymlinkRead, "cannot read link %s", dest)
		}
		actual = paths.NormalizeLinkTarget(actual)
		if actual == target {
			r.log.LowInfo(fmt.Sprintf("Link exists %s -> %s", dest, target))
			return types.OutcomeAlreadyCorrect, nil
		}

		pointsAt := actual
		if !filepath.IsAbs(pointsAt) {
			pointsAt = filepath.Join(filepath.Dir(dest), pointsAt)
		}
		if r.exists(dest) {
			r.log.Warning(fmt.Sprintf("Incorrect link (link exists but target is incorrect): %s -> %s, expected %s",
				dest, pointsAt, target))
		} else {
			r.log.Warning(fmt.Sprintf("Symlink Invalid: %s -> %s", dest, pointsAt))
		}
		return types.OutcomeFailed, errors.Newf(errors.ErrLinkIncorrect, "%s points at %s, expected %s", dest, actual, target).
			WithDetail("dangling", !r.exists(dest))

	default:
		r.log.Warning(fmt.Sprintf("%s already exists but is a regular file or directory", dest))
		return types.OutcomeFailed, errors.Newf(errors.ErrPathBlocked, "%s is in the way", dest)
	}
}

// resolveSource joins source onto the base directory
func (r *Reconciler) resolveSource(source string, policy types.LinkPolicy) (string, error) {
	base, err := r.baseDir.Resolve(policy.Canonicalize)
	if err != nil {
		return "", err
	}
	return paths.Join(base, paths.ExpandUser(source)), nil
}

// resolvePair returns the absolute destination and the link target it
// should carry: the absolute source or, with policy.Relative, the source
// relative to the destination's directory.
func (r *Reconciler) resolvePair(source, destination string, policy types.LinkPolicy) (dest, target string, err error) {
	absSource, err := r.resolveSource(source, policy)
	if err != nil {
		return "", "", err
	}
	dest, err = paths.Absolute(destination)
	if err != nil {
		return "", "", err
	}
	if !policy.Relative {
		return dest, filepath.Clean(absSource), nil
	}
	target, err = paths.RelativeTo(absSource, dest)
	if err != nil {
		return "", "", err
	}
	return dest, target, nil
}

func (r *Reconciler) testPasses(ctx context.Context, command string) bool {
	cwd, err := r.baseDir.Resolve(true)
	if err != nil {
		r.log.Warning(fmt.Sprintf("Test '%s' not run (%v)", command, err))
		return false
	}
	code, err := r.runner.Run(ctx, command, cwd)
	if err != nil {
		r.log.Warning(fmt.Sprintf("Test '%s' failed to run (%v)", command, err))
		return false
	}
	if code != 0 {
		r.log.Debug(fmt.Sprintf("Test '%s' returned false", command))
	}
	return code == 0
}

// resolvesToSource reports whether dest reaches the source file itself,
// for example through a parent directory that is already a link into the
// dotfiles.
func (r *Reconciler) resolvesToSource(source, dest string, policy types.LinkPolicy) bool {
	absSource, err := r.resolveSource(source, policy)
	if err != nil {
		return false
	}
	destInfo, err := r.fs.Stat(dest)
	if err != nil {
		return false
	}
	sourceInfo, err := r.fs.Stat(absSource)
	if err != nil {
		return false
	}
	return os.SameFile(destInfo, sourceInfo)
}

// displayPath is the form a destination takes in report rows
func displayPath(destination string) string {
	if abs, err := paths.Absolute(destination); err == nil {
		return abs
	}
	return filepath.Clean(paths.ExpandUser(destination))
}

// exists follows symlinks: a dangling link does not exist
func (r *Reconciler) exists(path string) bool {
	_, err := r.fs.Stat(path)
	return err == nil
}

func isSymlink(info os.FileInfo) bool {
	return info.Mode()&os.ModeSymlink != 0
}

// DefaultSource derives the source of an entry that names none: the
// destination's base name without its leading dot.
func DefaultSource(destination string) string {
	return strings.TrimPrefix(filepath.Base(destination), ".")
}
