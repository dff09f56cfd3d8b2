package platform

import (
	"runtime"
	"strings"
)

// OS name constants for runtime.GOOS comparisons.
const (
	Windows = "windows"
	Darwin  = "darwin"
	Linux   = "linux"
)

var aliases = map[string]string{
	"macos": Darwin,
	"osx":   Darwin,
	"mac":   Darwin,
	"win":   Windows,
}

// Matcher decides whether an os-constraint permits the current system
type Matcher interface {
	// Matches returns true when constraint is empty or permits the OS
	Matches(constraint string) bool
}

type goosMatcher struct {
	goos string
}

// Current returns a Matcher for the running operating system
func Current() Matcher {
	return For(runtime.GOOS)
}

// For returns a Matcher that evaluates constraints as if running on goos
func For(goos string) Matcher {
	return &goosMatcher{goos: strings.ToLower(goos)}
}

func (m *goosMatcher) Matches(constraint string) bool {
	constraint = strings.TrimSpace(constraint)
	if constraint == "" {
		return true
	}

	included := false
	hasPositive := false
	for _, term := range strings.Split(constraint, ",") {
		term = strings.ToLower(strings.TrimSpace(term))
		if term == "" {
			continue
		}
		negated := strings.HasPrefix(term, "!")
		name := canonicalName(strings.TrimSpace(strings.TrimPrefix(term, "!")))
		if negated {
			if name == m.goos {
				return false
			}
			continue
		}
		hasPositive = true
		if name == m.goos {
			included = true
		}
	}

	return included || !hasPositive
}

func canonicalName(name string) string {
	if canonical, ok := aliases[name]; ok {
		return canonical
	}
	return name
}
