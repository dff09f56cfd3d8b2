// Package paths provides centralized path handling for dotlink.
//
// It handles:
//
//   - Home and environment variable expansion of configured paths
//   - Base directory resolution, optionally canonicalized
//   - Link target computation (absolute or relative) and normalization
//   - XDG locations for dotlink's own settings
//
// # Environment Variables
//
//   - DOTLINK_CONFIG_DIR: Override the settings directory (default: $XDG_CONFIG_HOME/dotlink)
//   - HOME: used for ~ expansion when os.UserHomeDir fails
package paths
