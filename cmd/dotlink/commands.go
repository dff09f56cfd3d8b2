package dotlink

import (
	"fmt"
	"path/filepath"

	"github.com/arthur-debert/dotlink/internal/version"
	"github.com/arthur-debert/dotlink/pkg/config"
	"github.com/arthur-debert/dotlink/pkg/dispatcher"
	"github.com/arthur-debert/dotlink/pkg/errors"
	"github.com/arthur-debert/dotlink/pkg/filesystem"
	"github.com/arthur-debert/dotlink/pkg/handlers"
	"github.com/arthur-debert/dotlink/pkg/logging"
	"github.com/arthur-debert/dotlink/pkg/paths"
	"github.com/arthur-debert/dotlink/pkg/platform"
	"github.com/arthur-debert/dotlink/pkg/shell"
	"github.com/arthur-debert/dotlink/pkg/ui"
	"github.com/spf13/cobra"
)

func newInstallCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "install",
		Short:   MsgInstallShort,
		Long:    MsgInstallLong,
		Example: MsgInstallExample,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, false)
		},
	}
}

func newValidateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "validate",
		Short:   MsgValidateShort,
		Long:    MsgValidateLong,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, true)
		},
	}
}

// run loads the install configuration and dispatches it. In validate mode
// directives are decoded but not executed.
func (a *app) run(cmd *cobra.Command, validate bool) error {
	logger := logging.GetLogger("cmd.install")
	done := logging.LogOperationStart(logger, cmd.Name())
	defer done()

	renderer, err := a.renderer(cmd)
	if err != nil {
		return err
	}

	files := a.settings.ConfigFiles
	if len(files) == 0 {
		return errors.New(errors.ErrConfigLoad, MsgErrNoConfig)
	}
	tasks, err := config.LoadInstallConfig(files...)
	if err != nil {
		return err
	}

	baseDir := a.settings.BaseDir
	if baseDir == "" {
		baseDir = filepath.Dir(files[0])
	}
	logger.Info().
		Strs("config_files", files).
		Str("base_dir", baseDir).
		Int("tasks", len(tasks)).
		Bool("validate", validate).
		Msg("Loaded install configuration")

	sink := logging.NewSink("dotlink")
	registry, err := dispatcher.NewRegistry(handlers.Env{
		FS:       filesystem.NewOS(),
		Log:      sink,
		Runner:   shell.NewInterpreter(),
		Platform: platform.Current(),
		BaseDir:  paths.NewBaseDir(baseDir),
	})
	if err != nil {
		return err
	}

	result := dispatcher.Dispatch(cmd.Context(), tasks, dispatcher.Options{
		Registry: registry,
		Log:      sink,
		Only:     a.settings.Only,
		Except:   a.settings.Except,
		Validate: validate,
	})

	if validate && result.OK() {
		if err := renderer.RenderMessage(MsgValidConfig); err != nil {
			return err
		}
	} else if err := renderer.RenderResult(result); err != nil {
		return err
	}

	if !result.OK() {
		return errors.Newf(errors.ErrRunFailed, MsgErrRunFailed, failedDirectives(result))
	}
	return nil
}

// renderer builds the output renderer from --format and the color settings
func (a *app) renderer(cmd *cobra.Command) (ui.Renderer, error) {
	format, err := ui.ParseFormat(a.flags.format)
	if err != nil {
		return nil, err
	}
	out := cmd.OutOrStdout()
	return ui.NewRenderer(ui.Resolve(format, out, a.settings.NoColor), out, ui.Options{Verbose: a.settings.Verbosity > 0})
}

func failedDirectives(result *dispatcher.Result) int {
	n := len(result.Errors)
	for _, report := range result.Reports {
		if !report.OK() {
			n++
		}
	}
	return n
}

func newGenConfigCmd(a *app) *cobra.Command {
	var defaults bool

	cmd := &cobra.Command{
		Use:     "genconfig",
		Short:   MsgGenConfigShort,
		Long:    MsgGenConfigLong,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if defaults {
				_, err := fmt.Fprint(out, config.GetDefaultSettingsContent())
				return err
			}
			rendered, err := config.RenderSettings(a.settings)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(out, MsgSettingsHeader+"%s", paths.SettingsPath(), rendered)
			return err
		},
	}
	cmd.Flags().BoolVar(&defaults, "defaults", false, MsgFlagDefaults)
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   MsgVersionShort,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, MsgVersionFormat, version.Version)
			_, _ = fmt.Fprintf(out, MsgCommitFormat, version.Commit)
			_, _ = fmt.Fprintf(out, MsgBuiltFormat, version.Date)
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 MsgCompletionShort,
		Long:                  MsgCompletionLong,
		GroupID:               "misc",
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(out)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			default:
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
		},
	}
}
