package main

import (
	"fmt"
	"os"

	"github.com/arthur-debert/dotlink/cmd/dotlink"
	"github.com/arthur-debert/dotlink/pkg/errors"
	"github.com/charmbracelet/lipgloss"
)

var errorStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#DC3545", Dark: "#FF6B7D"}).Bold(true)

func main() {
	rootCmd := dotlink.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		// The run report already says what failed
		if !errors.IsErrorCode(err, errors.ErrRunFailed) {
			fmt.Fprintln(os.Stderr, errorStyle.Render(fmt.Sprintf("Error: %v", err)))
		}
		os.Exit(1)
	}
}
