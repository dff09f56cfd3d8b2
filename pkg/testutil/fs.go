package testutil

import (
	"io/fs"
	"sync"

	"github.com/arthur-debert/dotlink/pkg/filesystem"
	"github.com/arthur-debert/dotlink/pkg/types"
)

// FS operation names used by RecordingFS
const (
	OpMkdirAll  = "mkdirall"
	OpSymlink   = "symlink"
	OpReadlink  = "readlink"
	OpRemove    = "remove"
	OpRemoveAll = "removeall"
)

// Call is one mutating (or faultable) call seen by RecordingFS
type Call struct {
	Op   string
	Path string
}

// RecordingFS wraps a types.FS. It records mutating calls and returns
// the error registered in Faults for an operation instead of calling
// through.
type RecordingFS struct {
	types.FS

	// GlobFunc, when set, replaces Glob on the wrapped filesystem
	GlobFunc func(pattern string) ([]string, error)

	mu     sync.Mutex
	Calls  []Call
	Faults map[string]error
}

// NewRecordingFS wraps the OS filesystem
func NewRecordingFS() *RecordingFS {
	return WrapFS(filesystem.NewOS())
}

// WrapFS wraps an existing filesystem
func WrapFS(inner types.FS) *RecordingFS {
	return &RecordingFS{FS: inner, Faults: make(map[string]error)}
}

// Fail makes every later call of op return err
func (r *RecordingFS) Fail(op string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Faults[op] = err
}

// Mutations returns the number of calls that change the filesystem
func (r *RecordingFS) Mutations() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := 0
	for _, c := range r.Calls {
		if c.Op != OpReadlink {
			n++
		}
	}
	return n
}

// CallsOf returns the paths passed to op, in order
func (r *RecordingFS) CallsOf(op string) []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []string
	for _, c := range r.Calls {
		if c.Op == op {
			out = append(out, c.Path)
		}
	}
	return out
}

func (r *RecordingFS) enter(op, path string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Calls = append(r.Calls, Call{Op: op, Path: path})
	return r.Faults[op]
}

func (r *RecordingFS) MkdirAll(path string, perm fs.FileMode) error {
	if err := r.enter(OpMkdirAll, path); err != nil {
		return err
	}
	return r.FS.MkdirAll(path, perm)
}

func (r *RecordingFS) Symlink(oldname, newname string) error {
	if err := r.enter(OpSymlink, newname); err != nil {
		return err
	}
	return r.FS.Symlink(oldname, newname)
}

func (r *RecordingFS) Readlink(name string) (string, error) {
	if err := r.enter(OpReadlink, name); err != nil {
		return "", err
	}
	return r.FS.Readlink(name)
}

func (r *RecordingFS) Remove(name string) error {
	if err := r.enter(OpRemove, name); err != nil {
		return err
	}
	return r.FS.Remove(name)
}

func (r *RecordingFS) RemoveAll(path string) error {
	if err := r.enter(OpRemoveAll, path); err != nil {
		return err
	}
	return r.FS.RemoveAll(path)
}

func (r *RecordingFS) Glob(pattern string) ([]string, error) {
	if r.GlobFunc != nil {
		return r.GlobFunc(pattern)
	}
	return r.FS.Glob(pattern)
}
