package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// WriteTree creates files under root. Keys are slash separated relative
// paths; a key ending in "/" creates a directory, otherwise the value is
// written as file content.
func WriteTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		if strings.HasSuffix(rel, "/") {
			require.NoError(t, os.MkdirAll(path, 0755))
			continue
		}
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
}

// HomeAndDotfiles sets HOME to a fresh directory and returns it with a
// dotfiles directory inside it. Both paths have symlinks resolved so
// tests can compare link targets literally.
func HomeAndDotfiles(t *testing.T) (home, dotfiles string) {
	t.Helper()
	home, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)
	t.Setenv("HOME", home)

	dotfiles = filepath.Join(home, "dotfiles")
	require.NoError(t, os.Mkdir(dotfiles, 0755))
	return home, dotfiles
}

// AssertLink fails unless path is a symlink whose target is exactly target
func AssertLink(t *testing.T, path, target string) {
	t.Helper()
	info, err := os.Lstat(path)
	require.NoError(t, err, "expected a link at %s", path)
	require.True(t, info.Mode()&os.ModeSymlink != 0, "%s is not a symlink", path)
	got, err := os.Readlink(path)
	require.NoError(t, err)
	require.Equal(t, target, got, "link target of %s", path)
}

// AssertAbsent fails if anything exists at path
func AssertAbsent(t *testing.T, path string) {
	t.Helper()
	_, err := os.Lstat(path)
	require.True(t, os.IsNotExist(err), "expected nothing at %s, got err=%v", path, err)
}
