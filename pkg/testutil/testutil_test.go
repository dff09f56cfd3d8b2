package testutil

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogRecorder(t *testing.T) {
	rec := NewLogRecorder()
	rec.LowInfo("Creating link a")
	rec.Warning("Nonexistent source b")
	rec.Info("All links have been set up")

	assert.Equal(t, []string{"Creating link a"}, rec.Messages(LevelLowInfo))
	assert.True(t, rec.Contains(LevelWarning, "Nonexistent"))
	assert.False(t, rec.Contains(LevelError, "Nonexistent"))
	assert.Equal(t, LogEntry{Level: LevelInfo, Message: "All links have been set up"}, rec.Last())
}

func TestRecordingFS(t *testing.T) {
	dir := t.TempDir()
	rfs := NewRecordingFS()

	require.NoError(t, rfs.MkdirAll(filepath.Join(dir, "a"), 0755))
	require.NoError(t, rfs.Symlink(filepath.Join(dir, "a"), filepath.Join(dir, "b")))
	_, err := rfs.Readlink(filepath.Join(dir, "b"))
	require.NoError(t, err)
	assert.Equal(t, 2, rfs.Mutations())
	assert.Equal(t, []string{filepath.Join(dir, "b")}, rfs.CallsOf(OpSymlink))

	boom := errors.New("boom")
	rfs.Fail(OpRemove, boom)
	assert.ErrorIs(t, rfs.Remove(filepath.Join(dir, "b")), boom)
	_, err = os.Lstat(filepath.Join(dir, "b"))
	assert.NoError(t, err, "faulted call must not reach the filesystem")
}

func TestMockRunner(t *testing.T) {
	runner := &MockRunner{ExitCode: 3}
	code, err := runner.Run(context.Background(), "false", "/tmp")
	require.NoError(t, err)
	assert.Equal(t, 3, code)

	runner.RunFunc = func(command, cwd string) (int, error) { return 0, nil }
	code, _ = runner.Run(context.Background(), "true", "/base")
	assert.Equal(t, 0, code)
	assert.Equal(t, []RunCall{{"false", "/tmp"}, {"true", "/base"}}, runner.Calls)
}

func TestMockBaseDir(t *testing.T) {
	base := &MockBaseDir{Dir: "/link/dotfiles", Canonical: "/real/dotfiles"}
	dir, _ := base.Resolve(false)
	assert.Equal(t, "/link/dotfiles", dir)
	dir, _ = base.Resolve(true)
	assert.Equal(t, "/real/dotfiles", dir)
}
