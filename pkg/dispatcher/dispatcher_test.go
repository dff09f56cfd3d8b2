package dispatcher

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/dotlink/pkg/config"
	"github.com/arthur-debert/dotlink/pkg/errors"
	"github.com/arthur-debert/dotlink/pkg/handlers"
	"github.com/arthur-debert/dotlink/pkg/paths"
	"github.com/arthur-debert/dotlink/pkg/platform"
	"github.com/arthur-debert/dotlink/pkg/testutil"
	"github.com/arthur-debert/dotlink/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type setup struct {
	home     string
	dotfiles string
	fs       *testutil.RecordingFS
	log      *testutil.LogRecorder
	opts     Options
}

func newSetup(t *testing.T) *setup {
	t.Helper()
	home, dotfiles := testutil.HomeAndDotfiles(t)
	s := &setup{
		home:     home,
		dotfiles: dotfiles,
		fs:       testutil.NewRecordingFS(),
		log:      testutil.NewLogRecorder(),
	}
	registry, err := NewRegistry(handlers.Env{
		FS:       s.fs,
		Log:      s.log,
		Runner:   &testutil.MockRunner{},
		Platform: platform.For(platform.Linux),
		BaseDir:  paths.NewBaseDir(dotfiles),
	})
	require.NoError(t, err)
	s.opts = Options{Registry: registry, Log: s.log}
	return s
}

func (s *setup) dispatch(t *testing.T, doc string) *Result {
	t.Helper()
	tasks, err := config.ParseInstallConfig([]byte(doc))
	require.NoError(t, err)
	return Dispatch(context.Background(), tasks, s.opts)
}

func TestNewRegistry(t *testing.T) {
	s := newSetup(t)
	assert.Equal(t, []string{"create", "link"}, s.opts.Registry.Names())
}

func TestDispatchRunsTasksInOrder(t *testing.T) {
	s := newSetup(t)
	testutil.WriteTree(t, s.dotfiles, map[string]string{"init.lua": ""})

	result := s.dispatch(t, `
- create:
    ~/.config/nvim:
- link:
    ~/.config/nvim/init.lua: init.lua
`)

	require.True(t, result.OK())
	require.Len(t, result.Reports, 2)
	assert.Equal(t, "create", result.Reports[0].Directive)
	assert.Equal(t, "link", result.Reports[1].Directive)
	testutil.AssertLink(t, filepath.Join(s.home, ".config/nvim/init.lua"), filepath.Join(s.dotfiles, "init.lua"))
}

func TestDispatchDefaultsApplyToLaterTasks(t *testing.T) {
	s := newSetup(t)
	testutil.WriteTree(t, s.dotfiles, map[string]string{"a": "", "b": "", "c": ""})

	result := s.dispatch(t, `
- link:
    ~/x/a: a
- defaults:
    link:
      create: true
- link:
    ~/y/b: b
- defaults:
    link: {}
- link:
    ~/z/c: c
`)

	require.Len(t, result.Reports, 3)
	assert.Equal(t, types.OutcomeFailed, result.Reports[0].Entries[0].Outcome, "no defaults yet")
	assert.Equal(t, types.OutcomeCreated, result.Reports[1].Entries[0].Outcome)
	assert.Equal(t, types.OutcomeFailed, result.Reports[2].Entries[0].Outcome, "defaults were replaced")
	assert.False(t, result.OK())
}

func TestDispatchUnknownDirective(t *testing.T) {
	s := newSetup(t)
	testutil.WriteTree(t, s.dotfiles, map[string]string{"vimrc": ""})

	result := s.dispatch(t, `
- shell:
    - echo hi
- link:
    ~/.vimrc:
`)

	assert.False(t, result.OK())
	require.Len(t, result.Errors, 1)
	assert.True(t, errors.IsErrorCode(result.Errors[0].Err, errors.ErrDirectiveUnknown))
	assert.True(t, s.log.Contains(testutil.LevelError, "action shell not handled"))
	require.Len(t, result.Reports, 1, "later directives still run")
	assert.True(t, result.Reports[0].OK())
}

func TestDispatchPolicyErrorAbortsOnlyThatDirective(t *testing.T) {
	s := newSetup(t)
	testutil.WriteTree(t, s.dotfiles, map[string]string{"vimrc": ""})

	result := s.dispatch(t, `
- create:
    - ~/a
    - ~/b:
        mode: 0o700
- link:
    ~/.vimrc:
`)

	require.Len(t, result.Errors, 1)
	assert.True(t, errors.IsErrorCode(result.Errors[0].Err, errors.ErrConfigInvalid))
	assert.Equal(t, "create", result.Errors[0].Task.Directive)
	testutil.AssertAbsent(t, filepath.Join(s.home, "a"))
	require.Len(t, result.Reports, 1)
	assert.Equal(t, types.OutcomeCreated, result.Reports[0].Entries[0].Outcome)
}

func TestDispatchOnlyAndExcept(t *testing.T) {
	doc := `
- create:
    ~/cache:
- link:
    ~/.vimrc:
`
	t.Run("only", func(t *testing.T) {
		s := newSetup(t)
		s.opts.Only = []string{"create"}
		result := s.dispatch(t, doc)

		require.Len(t, result.Reports, 1)
		assert.Equal(t, "create", result.Reports[0].Directive)
		assert.Equal(t, []string{"link"}, result.Skipped)
		assert.True(t, result.OK())
	})

	t.Run("except", func(t *testing.T) {
		s := newSetup(t)
		s.opts.Except = []string{"create"}
		testutil.WriteTree(t, s.dotfiles, map[string]string{"vimrc": ""})
		result := s.dispatch(t, doc)

		require.Len(t, result.Reports, 1)
		assert.Equal(t, "link", result.Reports[0].Directive)
		testutil.AssertAbsent(t, filepath.Join(s.home, "cache"))
	})
}

func TestDispatchValidate(t *testing.T) {
	s := newSetup(t)
	s.opts.Validate = true

	result := s.dispatch(t, `
- create:
    ~/cache:
- link:
    ~/.vimrc: [not, a, path]
- clean: ['~']
`)

	assert.Empty(t, result.Reports)
	require.Len(t, result.Errors, 2)
	assert.True(t, errors.IsErrorCode(result.Errors[0].Err, errors.ErrConfigInvalid))
	assert.True(t, errors.IsErrorCode(result.Errors[1].Err, errors.ErrDirectiveUnknown))
	assert.Zero(t, s.fs.Mutations())
	_, err := os.Stat(filepath.Join(s.home, "cache"))
	assert.True(t, os.IsNotExist(err))
}

func TestDispatchInvalidDefaults(t *testing.T) {
	s := newSetup(t)
	result := s.dispatch(t, "- defaults: [1]\n")

	require.Len(t, result.Errors, 1)
	assert.True(t, errors.IsErrorCode(result.Errors[0].Err, errors.ErrConfigInvalid))
}
