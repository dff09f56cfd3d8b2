package dotlink

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/dotlink/internal/version"
	"github.com/arthur-debert/dotlink/pkg/config"
	"github.com/arthur-debert/dotlink/pkg/errors"
	"github.com/arthur-debert/dotlink/pkg/testutil"
	"github.com/arthur-debert/dotlink/pkg/ui"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const installConfig = `
- defaults:
    link:
      create: true
- create:
    ~/.cache/app:
- link:
    ~/.vimrc:
    ~/.config/app/conf: app/conf
`

// setupEnv isolates HOME, settings and log locations and writes the
// install configuration into the dotfiles directory.
func setupEnv(t *testing.T, cfg string) (home, dotfiles, cfgPath string) {
	t.Helper()
	home, dotfiles = testutil.HomeAndDotfiles(t)
	t.Setenv("XDG_STATE_HOME", filepath.Join(home, ".local", "state"))
	t.Setenv("DOTLINK_CONFIG_DIR", filepath.Join(home, ".config", "dotlink"))

	testutil.WriteTree(t, dotfiles, map[string]string{
		"vimrc":             "set nocompatible\n",
		"app/conf":          "key = value\n",
		"install.conf.yaml": cfg,
	})
	return home, dotfiles, filepath.Join(dotfiles, "install.conf.yaml")
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd := NewRootCmd()
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestInstallCommand(t *testing.T) {
	home, dotfiles, cfgPath := setupEnv(t, installConfig)

	out, err := execute(t, "install", "-c", cfgPath, "--format", "text")
	require.NoError(t, err)
	assert.Contains(t, out, ui.MsgAllSucceeded)

	testutil.AssertLink(t, filepath.Join(home, ".vimrc"), filepath.Join(dotfiles, "vimrc"))
	testutil.AssertLink(t, filepath.Join(home, ".config", "app", "conf"), filepath.Join(dotfiles, "app", "conf"))
	info, err := os.Stat(filepath.Join(home, ".cache", "app"))
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	t.Run("second run leaves everything as is", func(t *testing.T) {
		out, err := execute(t, "install", "-c", cfgPath, "--format", "text")
		require.NoError(t, err)
		assert.Contains(t, out, "2 already-correct")
		testutil.AssertLink(t, filepath.Join(home, ".vimrc"), filepath.Join(dotfiles, "vimrc"))
	})
}

func TestInstallCommandBaseDirectory(t *testing.T) {
	home, dotfiles, _ := setupEnv(t, installConfig)

	// Config outside the dotfiles directory needs -d
	cfgPath := filepath.Join(home, "elsewhere.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("- link:\n    ~/.vimrc: vimrc\n"), 0644))

	_, err := execute(t, "install", "-c", cfgPath, "-d", dotfiles, "--format", "text")
	require.NoError(t, err)
	testutil.AssertLink(t, filepath.Join(home, ".vimrc"), filepath.Join(dotfiles, "vimrc"))
}

func TestInstallCommandFailure(t *testing.T) {
	home, _, cfgPath := setupEnv(t, `
- link:
    ~/.missing: does-not-exist
    ~/.vimrc:
`)

	out, err := execute(t, "install", "-c", cfgPath, "--format", "text")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrRunFailed))
	assert.Contains(t, out, ui.MsgSomeFailed)
	assert.Contains(t, out, ".missing")

	// The failing entry does not stop the next one
	_, statErr := os.Lstat(filepath.Join(home, ".vimrc"))
	assert.NoError(t, statErr)
}

func TestInstallCommandOnly(t *testing.T) {
	home, _, cfgPath := setupEnv(t, installConfig)

	out, err := execute(t, "install", "-c", cfgPath, "--only", "link", "--format", "text")
	require.NoError(t, err)
	assert.Contains(t, out, "skipped: create")
	testutil.AssertAbsent(t, filepath.Join(home, ".cache", "app"))
	_, err = os.Lstat(filepath.Join(home, ".vimrc"))
	assert.NoError(t, err)
}

func TestInstallCommandJSON(t *testing.T) {
	_, _, cfgPath := setupEnv(t, installConfig)

	out, err := execute(t, "install", "-c", cfgPath, "--format", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"ok": true`)
	assert.Contains(t, out, `"directive": "link"`)
}

func TestInstallCommandMissingConfig(t *testing.T) {
	home, _, _ := setupEnv(t, installConfig)

	_, err := execute(t, "install", "-c", filepath.Join(home, "nope.yaml"))
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigLoad))
}

func TestInstallCommandBadFormat(t *testing.T) {
	_, _, cfgPath := setupEnv(t, installConfig)

	_, err := execute(t, "install", "-c", cfgPath, "--format", "yaml")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}

func TestValidateCommand(t *testing.T) {
	t.Run("valid configuration changes nothing", func(t *testing.T) {
		home, _, cfgPath := setupEnv(t, installConfig)

		out, err := execute(t, "validate", "-c", cfgPath, "--format", "text")
		require.NoError(t, err)
		assert.Contains(t, out, MsgValidConfig)
		testutil.AssertAbsent(t, filepath.Join(home, ".vimrc"))
		testutil.AssertAbsent(t, filepath.Join(home, ".cache", "app"))
	})

	t.Run("unknown directive", func(t *testing.T) {
		_, _, cfgPath := setupEnv(t, "- shell:\n    - echo hi\n")

		out, err := execute(t, "validate", "-c", cfgPath, "--format", "text")
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrRunFailed))
		assert.Contains(t, out, "action shell not handled")
	})
}

func TestGenConfigCommand(t *testing.T) {
	setupEnv(t, installConfig)

	t.Run("defaults", func(t *testing.T) {
		out, err := execute(t, "genconfig", "--defaults")
		require.NoError(t, err)
		assert.Equal(t, config.GetDefaultSettingsContent(), out)
	})

	t.Run("effective settings include flags", func(t *testing.T) {
		out, err := execute(t, "genconfig", "-c", "/srv/dotfiles/install.yaml", "--only", "link")
		require.NoError(t, err)
		assert.Contains(t, out, "config_files")
		assert.Contains(t, out, "/srv/dotfiles/install.yaml")
		assert.Contains(t, out, "link")
	})

	t.Run("environment is layered under flags", func(t *testing.T) {
		t.Setenv("DOTLINK_BASE_DIR", "/from/env")
		out, err := execute(t, "genconfig")
		require.NoError(t, err)
		assert.Contains(t, out, "/from/env")

		out, err = execute(t, "genconfig", "-d", "/from/flag")
		require.NoError(t, err)
		assert.Contains(t, out, "/from/flag")
		assert.NotContains(t, out, "/from/env")
	})
}

func TestVersionCommand(t *testing.T) {
	setupEnv(t, installConfig)

	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "dotlink version "+version.Version)
	assert.Contains(t, out, "commit: "+version.Commit)
}

func TestCompletionCommand(t *testing.T) {
	setupEnv(t, installConfig)

	out, err := execute(t, "completion", "bash")
	require.NoError(t, err)
	assert.Contains(t, out, "dotlink")

	_, err = execute(t, "completion", "tcsh")
	assert.Error(t, err)
}

func TestFlagOverrides(t *testing.T) {
	rootCmd := NewRootCmd()
	require.NoError(t, rootCmd.PersistentFlags().Parse([]string{"-vv", "--except", "create,shell"}))

	var a globalFlags
	a.verbosity = 2
	a.except = []string{"create", "shell"}
	overrides := flagOverrides(rootCmd.PersistentFlags(), a)

	assert.Equal(t, map[string]interface{}{
		"verbosity": 2,
		"except":    []string{"create", "shell"},
	}, overrides)
}
