package dotlink

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort       = "A declarative dotfile installer"
	MsgInstallShort    = "Link dotfiles and create directories from the install configuration"
	MsgValidateShort   = "Check the install configuration without changing anything"
	MsgGenConfigShort  = "Print dotlink settings as TOML"
	MsgGenConfigLong   = "Print the effective settings, or the commented defaults with --defaults, as a TOML document suitable for $XDG_CONFIG_HOME/dotlink/config.toml."
	MsgVersionShort    = "Print version information"
	MsgCompletionShort = "Generate shell completion script"

	// Status messages
	MsgValidConfig    = "Configuration is valid"
	MsgVersionFormat  = "dotlink version %s\n"
	MsgCommitFormat   = "  commit: %s\n"
	MsgBuiltFormat    = "  built:  %s\n"
	MsgSettingsHeader = "# Effective dotlink settings (%s)\n"

	// Error messages
	MsgErrNoConfig     = "no install configuration given"
	MsgErrLoadSettings = "failed to load settings"
	MsgErrRunFailed    = "%d directive(s) did not complete successfully"

	// Flag descriptions
	MsgFlagConfig   = "Install configuration file, may be repeated (default install.conf.yaml)"
	MsgFlagBaseDir  = "Directory that link sources are relative to (default: directory of the first config file)"
	MsgFlagVerbose  = "Increase verbosity (-v every entry, -vv debug output)"
	MsgFlagQuiet    = "Only print warnings and errors"
	MsgFlagNoColor  = "Disable colored output"
	MsgFlagFormat   = "Output format: auto, term, text or json"
	MsgFlagOnly     = "Only run these directives"
	MsgFlagExcept   = "Skip these directives"
	MsgFlagDefaults = "Print the built-in defaults instead of the effective settings"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/install-long.txt
	msgInstallLongRaw string
	MsgInstallLong    = strings.TrimSpace(msgInstallLongRaw)

	//go:embed msgs/install-example.txt
	msgInstallExampleRaw string
	MsgInstallExample    = strings.TrimRight(msgInstallExampleRaw, "\n")

	//go:embed msgs/validate-long.txt
	msgValidateLongRaw string
	MsgValidateLong    = strings.TrimSpace(msgValidateLongRaw)

	//go:embed msgs/completion-long.txt
	msgCompletionLongRaw string
	MsgCompletionLong    = strings.TrimSpace(msgCompletionLongRaw)

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw)
)
