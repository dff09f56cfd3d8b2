package testutil

import (
	"strings"
	"sync"
)

// Log levels recorded by LogRecorder
const (
	LevelDebug   = "debug"
	LevelLowInfo = "lowinfo"
	LevelInfo    = "info"
	LevelWarning = "warning"
	LevelError   = "error"
)

// LogEntry is one recorded message
type LogEntry struct {
	Level   string
	Message string
}

// LogRecorder implements logging.Sink and keeps messages in order
type LogRecorder struct {
	mu      sync.Mutex
	Entries []LogEntry
}

// NewLogRecorder creates an empty recorder
func NewLogRecorder() *LogRecorder {
	return &LogRecorder{}
}

func (r *LogRecorder) record(level, msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Entries = append(r.Entries, LogEntry{Level: level, Message: msg})
}

func (r *LogRecorder) Debug(msg string)   { r.record(LevelDebug, msg) }
func (r *LogRecorder) LowInfo(msg string) { r.record(LevelLowInfo, msg) }
func (r *LogRecorder) Info(msg string)    { r.record(LevelInfo, msg) }
func (r *LogRecorder) Warning(msg string) { r.record(LevelWarning, msg) }
func (r *LogRecorder) Error(msg string)   { r.record(LevelError, msg) }

// Messages returns the messages logged at level
func (r *LogRecorder) Messages(level string) []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []string
	for _, e := range r.Entries {
		if e.Level == level {
			out = append(out, e.Message)
		}
	}
	return out
}

// Contains reports whether a message at level contains substr
func (r *LogRecorder) Contains(level, substr string) bool {
	for _, msg := range r.Messages(level) {
		if strings.Contains(msg, substr) {
			return true
		}
	}
	return false
}

// Last returns the last recorded entry, or the zero entry
func (r *LogRecorder) Last() LogEntry {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.Entries) == 0 {
		return LogEntry{}
	}
	return r.Entries[len(r.Entries)-1]
}
