// Package testutil provides helpers for testing dotlink components.
//
// Key components:
//   - LogRecorder: a logging.Sink that keeps every message by level
//   - RecordingFS: wraps a types.FS, counts mutations and injects faults
//   - MockRunner: a shell.Runner driven by a function or fixed exit code
//   - Tree helpers: build a base directory of dotfiles under t.TempDir()
//
// Tests run against the real filesystem inside t.TempDir(); symlink
// semantics are the point of dotlink and in-memory filesystems do not
// model them faithfully.
package testutil
