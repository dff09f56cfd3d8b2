package dotlink

import (
	"fmt"

	"github.com/arthur-debert/dotlink/internal/version"
	"github.com/arthur-debert/dotlink/pkg/config"
	"github.com/arthur-debert/dotlink/pkg/errors"
	"github.com/arthur-debert/dotlink/pkg/logging"
	"github.com/arthur-debert/dotlink/pkg/paths"
	"github.com/arthur-debert/dotlink/pkg/ui"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// globalFlags are the persistent flags shared by every command
type globalFlags struct {
	configFiles []string
	baseDir     string
	verbosity   int
	quiet       bool
	noColor     bool
	format      string
	only        []string
	except      []string
}

// app carries state from PersistentPreRunE to the commands
type app struct {
	flags    globalFlags
	settings *config.Settings
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	initTemplateFormatting()

	a := &app{}

	rootCmd := &cobra.Command{
		Use:     "dotlink",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			settings, err := config.LoadSettings(paths.SettingsPath(), flagOverrides(cmd.Flags(), a.flags))
			if err != nil {
				return errors.Wrap(err, errors.GetErrorCode(err), MsgErrLoadSettings)
			}
			a.settings = settings

			logging.SetupLogger(logging.Options{
				Verbosity: settings.Verbosity,
				Quiet:     settings.Quiet,
				NoColor:   settings.NoColor,
			})
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = cmd.Help()
			return fmt.Errorf("no command specified")
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	// Global flags
	pf := rootCmd.PersistentFlags()
	pf.StringArrayVarP(&a.flags.configFiles, "config", "c", nil, MsgFlagConfig)
	pf.StringVarP(&a.flags.baseDir, "base-directory", "d", "", MsgFlagBaseDir)
	pf.CountVarP(&a.flags.verbosity, "verbose", "v", MsgFlagVerbose)
	pf.BoolVarP(&a.flags.quiet, "quiet", "q", false, MsgFlagQuiet)
	pf.BoolVar(&a.flags.noColor, "no-color", false, MsgFlagNoColor)
	pf.StringVar(&a.flags.format, "format", "auto", MsgFlagFormat)
	pf.StringSliceVar(&a.flags.only, "only", nil, MsgFlagOnly)
	pf.StringSliceVar(&a.flags.except, "except", nil, MsgFlagExcept)
	_ = rootCmd.RegisterFlagCompletionFunc("format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return ui.FormatNames(), cobra.ShellCompDirectiveNoFileComp
	})

	rootCmd.AddGroup(&cobra.Group{ID: "core", Title: "COMMANDS:"})
	rootCmd.AddGroup(&cobra.Group{ID: "misc", Title: "MISC:"})
	rootCmd.SetUsageTemplate(MsgUsageTemplate)

	rootCmd.AddCommand(newInstallCmd(a))
	rootCmd.AddCommand(newValidateCmd(a))
	rootCmd.AddCommand(newGenConfigCmd(a))
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())

	return rootCmd
}

// flagOverrides returns the settings keys of the flags set on the command
// line, so that unset flags leave file and environment values alone.
func flagOverrides(fs *pflag.FlagSet, flags globalFlags) map[string]interface{} {
	overrides := map[string]interface{}{}
	set := func(name, key string, value interface{}) {
		if f := fs.Lookup(name); f != nil && f.Changed {
			overrides[key] = value
		}
	}
	set("config", "config_files", flags.configFiles)
	set("base-directory", "base_dir", flags.baseDir)
	set("verbose", "verbosity", flags.verbosity)
	set("quiet", "quiet", flags.quiet)
	set("no-color", "no_color", flags.noColor)
	set("only", "only", flags.only)
	set("except", "except", flags.except)
	return overrides
}
