package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
)

func TestSetupLogger(t *testing.T) {
	previous := zerolog.GlobalLevel()
	defer zerolog.SetGlobalLevel(previous)

	tests := []struct {
		name      string
		opts      Options
		wantLevel zerolog.Level
	}{
		{"default info level", Options{}, zerolog.InfoLevel},
		{"lowinfo shown at debug", Options{Verbosity: 1}, zerolog.DebugLevel},
		{"trace level", Options{Verbosity: 2}, zerolog.TraceLevel},
		{"high verbosity defaults to trace", Options{Verbosity: 5}, zerolog.TraceLevel},
		{"quiet wins over verbosity", Options{Verbosity: 2, Quiet: true}, zerolog.WarnLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tempDir := t.TempDir()
			t.Setenv("XDG_STATE_HOME", tempDir)

			SetupLogger(tt.opts)

			assert.Equal(t, tt.wantLevel, zerolog.GlobalLevel())

			logPath := filepath.Join(tempDir, "dotlink", "dotlink.log")
			_, err := os.Stat(logPath)
			assert.NoError(t, err, "log file should be created at %s", logPath)
		})
	}
}

func TestGetLogFilePath(t *testing.T) {
	tests := []struct {
		name         string
		xdgState     string
		wantContains string
	}{
		{
			name:         "with XDG_STATE_HOME",
			xdgState:     "/custom/state",
			wantContains: "/custom/state/dotlink/dotlink.log",
		},
		{
			name:         "without XDG_STATE_HOME",
			xdgState:     "",
			wantContains: ".local/state/dotlink/dotlink.log",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("XDG_STATE_HOME", tt.xdgState)

			got := getLogFilePath()
			assert.True(t, filepath.IsAbs(got), "getLogFilePath() returned relative path: %s", got)
			assert.True(t, contains(got, tt.wantContains), "%s should contain %s", got, tt.wantContains)
		})
	}
}

func TestSinkLevels(t *testing.T) {
	previous := zerolog.GlobalLevel()
	zerolog.SetGlobalLevel(zerolog.TraceLevel)
	defer zerolog.SetGlobalLevel(previous)

	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.TraceLevel)
	sink := NewSinkFrom(logger)

	sink.Debug("debug line")
	sink.LowInfo("lowinfo line")
	sink.Info("info line")
	sink.Warning("warning line")
	sink.Error("error line")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if assert.Len(t, lines, 5) {
		assert.Contains(t, lines[0], `"level":"trace"`)
		assert.Contains(t, lines[1], `"level":"debug"`)
		assert.Contains(t, lines[2], `"level":"info"`)
		assert.Contains(t, lines[3], `"level":"warn"`)
		assert.Contains(t, lines[4], `"level":"error"`)
	}
}

func TestGetLoggerComponent(t *testing.T) {
	var buf bytes.Buffer
	previous := log.Logger
	log.Logger = zerolog.New(&buf)
	defer func() { log.Logger = previous }()

	NewSink("handlers.link").Info("All links have been set up")

	assert.Contains(t, buf.String(), `"component":"handlers.link"`)
	assert.Contains(t, buf.String(), "All links have been set up")
}

// Helper function
func contains(s, substr string) bool {
	// Clean paths to handle different OS separators
	cleanedS := filepath.ToSlash(s)
	cleanedSubstr := filepath.ToSlash(substr)
	return strings.Contains(cleanedS, cleanedSubstr)
}
