package paths

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/dotlink/pkg/errors"
)

// Environment variable names
const (
	// EnvConfigDir overrides the XDG config directory for dotlink
	EnvConfigDir = "DOTLINK_CONFIG_DIR"

	// EnvHome is the standard home directory variable
	EnvHome = "HOME"
)

const (
	// DirName is the directory name for dotlink-specific files
	DirName = "dotlink"

	// SettingsFile is the name of the settings file inside ConfigDir
	SettingsFile = "config.toml"

	// extendedLengthPrefix is what Windows prepends to long link targets
	extendedLengthPrefix = `\\?\`
)

// ConfigDir returns the directory holding dotlink's own settings
func ConfigDir() string {
	if dir := os.Getenv(EnvConfigDir); dir != "" {
		return ExpandUser(dir)
	}
	return filepath.Join(xdg.ConfigHome, DirName)
}

// SettingsPath returns the full path of the settings file
func SettingsPath() string {
	return filepath.Join(ConfigDir(), SettingsFile)
}

// HomeDir returns the user's home directory, falling back to $HOME.
func HomeDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err == nil && homeDir != "" {
		return homeDir, nil
	}
	if homeDir = os.Getenv(EnvHome); homeDir != "" {
		return homeDir, nil
	}
	return "", errors.New(errors.ErrFileAccess, "unable to determine home directory")
}

// ExpandUser expands a leading ~ to the user's home directory.
// Paths that cannot be expanded are returned unchanged.
func ExpandUser(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}
	if len(path) > 1 && path[1] != '/' && path[1] != filepath.Separator {
		// ~user is not supported
		return path
	}
	homeDir, err := HomeDir()
	if err != nil {
		return path
	}
	if len(path) == 1 {
		return homeDir
	}
	return homeDir + path[1:]
}

// ExpandVars replaces $VAR and ${VAR} with their values. Unset variables
// are left in place rather than collapsed to an empty string.
func ExpandVars(path string) string {
	if !strings.Contains(path, "$") {
		return path
	}
	return os.Expand(path, func(name string) string {
		if value, ok := os.LookupEnv(name); ok {
			return value
		}
		return "${" + name + "}"
	})
}

// Expand applies ExpandVars then ExpandUser
func Expand(path string) string {
	return ExpandUser(ExpandVars(path))
}

// HasTrailingSeparator reports whether path ends in a path separator,
// marking it as a directory the caller wants to link into.
func HasTrailingSeparator(path string) bool {
	if path == "" {
		return false
	}
	last := path[len(path)-1]
	return last == '/' || last == filepath.Separator
}

// Join resolves p against base. Absolute paths are returned cleaned,
// without base.
func Join(base, p string) string {
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(base, p)
}

// Absolute expands ~ and returns the cleaned absolute form of path
func Absolute(path string) (string, error) {
	abs, err := filepath.Abs(ExpandUser(path))
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrFileAccess, "failed to get absolute path for %s", path)
	}
	return abs, nil
}

// RelativeTo returns the path of source as seen from the directory that
// contains destination. Both paths are made absolute first.
func RelativeTo(source, destination string) (string, error) {
	absSource, err := Absolute(source)
	if err != nil {
		return "", err
	}
	absDestination, err := Absolute(destination)
	if err != nil {
		return "", err
	}
	rel, err := filepath.Rel(filepath.Dir(absDestination), absSource)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrFileAccess, "failed to compute relative path from %s to %s", destination, source)
	}
	return rel, nil
}

// NormalizeLinkTarget strips the extended-length prefix the OS may report
// for a link target so it can be compared with a computed target.
func NormalizeLinkTarget(target string) string {
	return strings.TrimPrefix(target, extendedLengthPrefix)
}
