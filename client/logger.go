package client

// Logger receives leveled diagnostics. Implementations must not block.
// Any internal/log.Sink, including the zerolog adapter, satisfies it.
type Logger interface {
	Info(component, msg string)
	Warn(component, msg string, err error)
}
