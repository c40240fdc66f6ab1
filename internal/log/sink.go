package log

import "github.com/rs/zerolog"

// Sink receives leveled diagnostics from the extraction pipeline.
// Implementations must not block or panic.
type Sink interface {
	Info(component, msg string)
	Warn(component, msg string, err error)
}

type zerologSink struct {
	logger zerolog.Logger
}

// NewSink adapts a zerolog logger to Sink.
func NewSink(logger zerolog.Logger) Sink {
	return zerologSink{logger: logger}
}

func (s zerologSink) Info(component, msg string) {
	s.logger.Info().Str("component", component).Msg(msg)
}

func (s zerologSink) Warn(component, msg string, err error) {
	ev := s.logger.Warn().Str("component", component)
	if err != nil {
		ev = ev.Err(err)
	}
	ev.Msg(msg)
}

type nopSink struct{}

// NopSink discards everything.
func NopSink() Sink { return nopSink{} }

func (nopSink) Info(string, string)        {}
func (nopSink) Warn(string, string, error) {}
