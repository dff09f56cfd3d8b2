package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/arthur-debert/dotlink/pkg/errors"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	gotoml "github.com/pelletier/go-toml/v2"
)

// EnvPrefix is the prefix of environment variables that override settings
const EnvPrefix = "DOTLINK_"

// Settings are dotlink's own options, as opposed to the install configuration
type Settings struct {
	ConfigFiles []string `koanf:"config_files" toml:"config_files"`
	BaseDir     string   `koanf:"base_dir" toml:"base_dir"`
	Verbosity   int      `koanf:"verbosity" toml:"verbosity"`
	Quiet       bool     `koanf:"quiet" toml:"quiet"`
	NoColor     bool     `koanf:"no_color" toml:"no_color"`
	Only        []string `koanf:"only" toml:"only"`
	Except      []string `koanf:"except" toml:"except"`
}

// LoadSettings layers settings from, lowest to highest priority:
//  1. embedded defaults
//  2. the settings file at path, if it exists
//  3. DOTLINK_* environment variables
//  4. overrides (typically explicitly set CLI flags)
func LoadSettings(path string, overrides map[string]interface{}) (*Settings, error) {
	k := koanf.New(".")

	// 1. Embedded defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultSettings}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load default settings")
	}

	// 2. Settings file
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to load settings from %s", path)
			}
		}
	}

	// 3. Environment
	err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load env vars")
	}

	// 4. Overrides
	if len(overrides) > 0 {
		if err := k.Load(confmap.Provider(overrides, "."), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load overrides")
		}
	}

	var settings Settings
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &settings,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToSliceHookFunc(","),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &settings, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigInvalid, "failed to unmarshal settings")
	}
	settings.ConfigFiles = compact(settings.ConfigFiles)
	settings.Only = compact(settings.Only)
	settings.Except = compact(settings.Except)

	return &settings, nil
}

// RenderSettings returns settings as a TOML document
func RenderSettings(settings *Settings) (string, error) {
	out, err := gotoml.Marshal(settings)
	if err != nil {
		return "", fmt.Errorf("failed to render settings: %w", err)
	}
	return string(out), nil
}

// compact trims entries and drops empty ones; StringToSliceHookFunc turns
// an empty env var into [""].
func compact(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
