// Package config handles configuration for dotlink.
//
// Two kinds of configuration live here:
//
//   - The install configuration: the YAML or JSON file listing directives
//     (defaults, link, create). It is decoded with yaml.v3 node trees so
//     the order of entries is preserved.
//   - dotlink's own settings: layered with koanf from embedded defaults,
//     the user's settings file and DOTLINK_ environment variables.
package config
