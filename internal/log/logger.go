// Package log wires zerolog for the resolver, the CLI and the HTTP API.
package log

import (
	"io"
	"os"
	"strings"
	"sync/atomic"

	"github.com/rs/zerolog"
)

const defaultService = "ytstream"

// Config selects the level, destination and service tag of a logger.
// Zero values mean info, stderr and "ytstream".
type Config struct {
	Level   string
	Output  io.Writer
	Service string
}

var process atomic.Pointer[zerolog.Logger]

// New builds a JSON logger for cfg. An unparsable level falls back to info.
func New(cfg Config) zerolog.Logger {
	level, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(cfg.Level)))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}
	service := cfg.Service
	if service == "" {
		service = defaultService
	}
	return zerolog.New(out).Level(level).With().Timestamp().Str("service", service).Logger()
}

// Configure replaces the process-wide logger returned by Base.
func Configure(cfg Config) {
	l := New(cfg)
	process.Store(&l)
}

// Base returns the process-wide logger, or an info-level stderr logger when
// Configure was never called.
func Base() zerolog.Logger {
	if l := process.Load(); l != nil {
		return *l
	}
	return New(Config{})
}

func WithComponent(component string) zerolog.Logger {
	return Base().With().Str("component", component).Logger()
}
