package types

import (
	"io/fs"
)

// FS is the filesystem interface required for dotlink operations
type FS interface {
	// Inspection
	Stat(name string) (fs.FileInfo, error)
	Lstat(name string) (fs.FileInfo, error)
	Readlink(name string) (string, error)

	// Directory operations
	MkdirAll(path string, perm fs.FileMode) error

	// Symlink operations
	Symlink(oldname, newname string) error

	// Removal
	Remove(name string) error
	RemoveAll(path string) error

	// Glob returns the paths matching pattern. Order is unspecified.
	Glob(pattern string) ([]string, error)
}
