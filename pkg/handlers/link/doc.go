// Package link implements the link directive.
//
// For every declared destination the Reconciler resolves the effective
// policy (entry options over the defaults directive over built-in values),
// then runs three phases against the filesystem:
//
//   - an optional precondition: the os-constraint and the if command
//   - an optional delete of whatever is in the way (force, relink)
//   - the link itself, which never removes anything
//
// A symlink that already points at the computed target is never touched.
// Glob sources fan out into one link per match; the pure helpers in
// glob.go compute the per-match destinations.
package link
