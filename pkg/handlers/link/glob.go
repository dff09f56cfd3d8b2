package link

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// SubtractMatches returns the sorted, de-duplicated paths of include that
// do not appear in exclude.
func SubtractMatches(include, exclude []string) []string {
	excluded := make(map[string]struct{}, len(exclude))
	for _, p := range exclude {
		excluded[p] = struct{}{}
	}

	seen := make(map[string]struct{}, len(include))
	out := make([]string, 0, len(include))
	for _, p := range include {
		if _, skip := excluded[p]; skip {
			continue
		}
		if _, dup := seen[p]; dup {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// PruneAncestors drops every path that is a directory above another path
// in paths. A recursive pattern matches a directory and its contents; only
// the deepest matches are linked so no link is created through another.
func PruneAncestors(paths []string) []string {
	ancestors := make(map[string]struct{})
	for _, p := range paths {
		for child, dir := p, filepath.Dir(p); dir != child; child, dir = dir, filepath.Dir(dir) {
			ancestors[dir] = struct{}{}
		}
	}

	out := make([]string, 0, len(paths))
	for _, p := range paths {
		if _, skip := ancestors[p]; !skip {
			out = append(out, p)
		}
	}
	return out
}

// VisibleMatch reports whether match is a match of pattern under shell
// rules for hidden names: a wildcard segment, "**" included, never
// matches a name starting with a dot unless the segment itself starts
// with one. Matches whose segments cannot be lined up with the pattern
// are left to the glob engine and reported visible.
func VisibleMatch(pattern, match string) bool {
	sep := string(filepath.Separator)
	pat := strings.Split(pattern, sep)
	comps := strings.Split(match, sep)
	return alignSegments(pat, comps, true) || !alignSegments(pat, comps, false)
}

// alignSegments matches path components against pattern segments one by
// one. With hideDots set, dot-names are refused by wildcard segments.
func alignSegments(pat, comps []string, hideDots bool) bool {
	if len(pat) == 0 {
		return len(comps) == 0
	}

	if pat[0] == "**" {
		if alignSegments(pat[1:], comps, hideDots) {
			return true
		}
		if len(comps) == 0 || (hideDots && isHidden(comps[0])) {
			return false
		}
		return alignSegments(pat, comps[1:], hideDots)
	}

	if len(comps) == 0 {
		return false
	}
	if pat[0] != comps[0] {
		if hideDots && isHidden(comps[0]) && !strings.HasPrefix(pat[0], ".") {
			return false
		}
		if ok, err := doublestar.Match(pat[0], comps[0]); err != nil || !ok {
			return false
		}
	}
	return alignSegments(pat[1:], comps[1:], hideDots)
}

func isHidden(name string) bool {
	return strings.HasPrefix(name, ".") && name != "." && name != ".."
}

// FanOutDestination maps one match of a glob pattern onto destination.
// The part of match below the directory shared with pattern is kept, so
// "conf/*" matching "conf/b/c" links "b/c" under destination.
func FanOutDestination(pattern, match, destination string) string {
	dir := prefixDir(commonPrefix(pattern, match))
	item := match
	if dir != "" {
		item = strings.TrimLeft(match[len(dir):], string(filepath.Separator))
	}
	return filepath.Join(destination, item)
}

// commonPrefix is the longest character-wise prefix of a and b
func commonPrefix(a, b string) string {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return a[:i]
		}
	}
	return a[:n]
}

// prefixDir is the directory part of a path prefix: everything up to the
// last separator. A prefix without a separator has no directory.
func prefixDir(prefix string) string {
	i := strings.LastIndexByte(prefix, filepath.Separator)
	switch {
	case i < 0:
		return ""
	case i == 0:
		return string(filepath.Separator)
	default:
		return prefix[:i]
	}
}
