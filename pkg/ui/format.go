package ui

import (
	"io"
	"os"
	"slices"
	"strings"

	"github.com/arthur-debert/dotlink/pkg/errors"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

// Format selects how a run report is printed
type Format int

const (
	FormatAuto Format = iota
	FormatTerminal
	FormatText
	FormatJSON
)

// formatNames are the accepted spellings of each format, canonical first
var formatNames = map[Format][]string{
	FormatAuto:     {"auto", ""},
	FormatTerminal: {"term", "terminal"},
	FormatText:     {"text", "plain"},
	FormatJSON:     {"json"},
}

func (f Format) String() string {
	if names, ok := formatNames[f]; ok {
		return names[0]
	}
	return "unknown"
}

// FormatNames returns the canonical format names in declaration order
func FormatNames() []string {
	names := make([]string, 0, len(formatNames))
	for f := FormatAuto; f <= FormatJSON; f++ {
		names = append(names, f.String())
	}
	return names
}

// ParseFormat accepts any spelling of a format, ignoring case
func ParseFormat(s string) (Format, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for f, names := range formatNames {
		if slices.Contains(names, s) {
			return f, nil
		}
	}
	return FormatAuto, errors.Newf(errors.ErrInvalidInput, "unknown format: %s (want one of %s)",
		s, strings.Join(FormatNames(), ", "))
}

// Resolve turns FormatAuto into the concrete format for output. noColor
// forces plain text; writers that are not files are never styled.
func Resolve(f Format, output io.Writer, noColor bool) Format {
	if f != FormatAuto {
		return f
	}
	file, ok := output.(*os.File)
	if noColor || !ok {
		return FormatText
	}
	return DetectFormat(file)
}

// DetectFormat styles output only for a color-capable terminal. NO_COLOR,
// pipes and redirections get plain text.
func DetectFormat(output *os.File) Format {
	switch {
	case os.Getenv("NO_COLOR") != "", !IsTerminal(output):
		return FormatText
	case termenv.ColorProfile() == termenv.Ascii:
		return FormatText
	default:
		return FormatTerminal
	}
}

// IsTerminal reports whether f is an interactive terminal
func IsTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
