package logging

import "github.com/rs/zerolog"

// Sink is the leveled message capability handlers report through.
// LowInfo sits between Debug and Info: per-entry progress lines that are
// shown with -v but hidden by default.
type Sink interface {
	Debug(msg string)
	LowInfo(msg string)
	Info(msg string)
	Warning(msg string)
	Error(msg string)
}

type zerologSink struct {
	logger zerolog.Logger
}

// NewSink returns a Sink writing to the global zerolog logger under the
// given component name.
func NewSink(component string) Sink {
	return &zerologSink{logger: GetLogger(component)}
}

// NewSinkFrom wraps an existing zerolog logger.
func NewSinkFrom(logger zerolog.Logger) Sink {
	return &zerologSink{logger: logger}
}

func (s *zerologSink) Debug(msg string)   { s.logger.Trace().Msg(msg) }
func (s *zerologSink) LowInfo(msg string) { s.logger.Debug().Msg(msg) }
func (s *zerologSink) Info(msg string)    { s.logger.Info().Msg(msg) }
func (s *zerologSink) Warning(msg string) { s.logger.Warn().Msg(msg) }
func (s *zerologSink) Error(msg string)   { s.logger.Error().Msg(msg) }
