package types

import "os"

// DefaultCreateMode matches os.MkdirAll's conventional mode; the process
// umask still applies.
const DefaultCreateMode os.FileMode = 0o777

// CreateOptions is the options object of a create entry
type CreateOptions struct {
	Mode         *int    `yaml:"mode"`
	OSConstraint *string `yaml:"os-constraint"`
}

// CreateEntry is one declared path of the create directive
type CreateEntry struct {
	Path    string
	Options CreateOptions
}

// CreateSpec is a create entry after defaults are applied
type CreateSpec struct {
	Path         string
	Mode         os.FileMode
	OSConstraint string
}

// ResolveCreateSpec merges entry options over defaults over the built-in mode
func ResolveCreateSpec(path string, defaults, entry CreateOptions) CreateSpec {
	spec := CreateSpec{Path: path, Mode: DefaultCreateMode}
	for _, opts := range []CreateOptions{defaults, entry} {
		if opts.Mode != nil {
			spec.Mode = os.FileMode(*opts.Mode) & os.ModePerm
		}
		if opts.OSConstraint != nil {
			spec.OSConstraint = *opts.OSConstraint
		}
	}
	return spec
}

// Defaults holds the per-directive defaults set by a defaults directive
type Defaults struct {
	Link   LinkOptions   `yaml:"link"`
	Create CreateOptions `yaml:"create"`
}
