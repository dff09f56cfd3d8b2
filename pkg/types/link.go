package types

// LinkOptions is the long form of a link entry. Every field is optional;
// a nil field defers to the next tier when the policy is resolved.
type LinkOptions struct {
	Path         *string `yaml:"path"`
	If           *string `yaml:"if"`
	Relative     *bool   `yaml:"relative"`
	Canonicalize *bool   `yaml:"canonicalize"`
	// CanonicalizePath is the legacy spelling of Canonicalize. When both
	// are present on the same tier, Canonicalize wins.
	CanonicalizePath *bool    `yaml:"canonicalize-path"`
	Force            *bool    `yaml:"force"`
	Relink           *bool    `yaml:"relink"`
	Create           *bool    `yaml:"create"`
	Glob             *bool    `yaml:"glob"`
	IgnoreMissing    *bool    `yaml:"ignore-missing"`
	Exclude          []string `yaml:"exclude"`
	OSConstraint     *string  `yaml:"os-constraint"`
}

// LinkEntry is one declared link as it appears in the configuration:
// a destination and either a plain source string or an options object.
type LinkEntry struct {
	Destination string
	Options     LinkOptions
}

// LinkPolicy is the fully resolved set of flags for one link entry
type LinkPolicy struct {
	// Relative stores the link target relative to the link's directory
	Relative bool
	// Canonicalize resolves symlinks in the base directory before joining
	Canonicalize bool
	// Force removes a regular file or directory standing in the way
	Force bool
	// Relink removes an existing incorrect link
	Relink bool
	// Create makes missing parent directories of the destination
	Create bool
	// Glob treats the source as a pattern that fans out into many links
	Glob bool
	// TestCommand is a shell precondition; empty means none
	TestCommand string
	// IgnoreMissing links even when the source does not exist
	IgnoreMissing bool
	// ExcludePatterns are globs removed from the fan-out set
	ExcludePatterns []string
	// OSConstraint skips the entry on non-matching systems; empty means any
	OSConstraint string
}

// DefaultLinkPolicy returns the built-in policy used when neither the
// entry nor the defaults directive sets a flag.
func DefaultLinkPolicy() LinkPolicy {
	return LinkPolicy{
		Canonicalize:    true,
		ExcludePatterns: []string{},
	}
}

// Apply overlays the non-nil fields of opts onto p and returns the result
func (p LinkPolicy) Apply(opts LinkOptions) LinkPolicy {
	if opts.Relative != nil {
		p.Relative = *opts.Relative
	}
	if opts.CanonicalizePath != nil {
		p.Canonicalize = *opts.CanonicalizePath
	}
	if opts.Canonicalize != nil {
		p.Canonicalize = *opts.Canonicalize
	}
	if opts.Force != nil {
		p.Force = *opts.Force
	}
	if opts.Relink != nil {
		p.Relink = *opts.Relink
	}
	if opts.Create != nil {
		p.Create = *opts.Create
	}
	if opts.Glob != nil {
		p.Glob = *opts.Glob
	}
	if opts.If != nil {
		p.TestCommand = *opts.If
	}
	if opts.IgnoreMissing != nil {
		p.IgnoreMissing = *opts.IgnoreMissing
	}
	if opts.Exclude != nil {
		p.ExcludePatterns = append([]string(nil), opts.Exclude...)
	}
	if opts.OSConstraint != nil {
		p.OSConstraint = *opts.OSConstraint
	}
	return p
}

// ResolveLinkPolicy merges entry options over defaults over the built-in policy
func ResolveLinkPolicy(defaults, entry LinkOptions) LinkPolicy {
	return DefaultLinkPolicy().Apply(defaults).Apply(entry)
}

// LinkSpec is a link entry after policy resolution: variables in
// Destination are expanded and Source is filled in from the destination
// when the entry names none.
type LinkSpec struct {
	Destination string
	Source      string
	Policy      LinkPolicy
}
