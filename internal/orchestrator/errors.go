package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrNoFormats means the response parsed but carried no format with a URL.
var ErrNoFormats = errors.New("no usable formats")

// AttemptError captures one client attempt failure.
type AttemptError struct {
	Client string
	Err    error
}

func (e AttemptError) Error() string {
	return e.Client + ": " + e.Err.Error()
}

func (e AttemptError) Unwrap() error { return e.Err }

// AllClientsFailedError is reported when no client attempt succeeded.
type AllClientsFailedError struct {
	VideoID  string
	Attempts []AttemptError
}

func (e *AllClientsFailedError) Error() string {
	if len(e.Attempts) == 0 {
		return "all clients failed"
	}
	parts := make([]string, 0, len(e.Attempts))
	for _, a := range e.Attempts {
		parts = append(parts, a.Client+"="+Outcome(a.Err))
	}
	return fmt.Sprintf("all clients failed: %d attempt(s) [%s]", len(e.Attempts), strings.Join(parts, " "))
}

// Unwrap exposes every attempt error to errors.Is and errors.As.
func (e *AllClientsFailedError) Unwrap() []error {
	out := make([]error, 0, len(e.Attempts))
	for _, a := range e.Attempts {
		out = append(out, a)
	}
	return out
}

// HTTPStatusError indicates a non-2xx Innertube response.
type HTTPStatusError struct {
	Client     string
	StatusCode int
}

func (e *HTTPStatusError) Error() string {
	return fmt.Sprintf("innertube http status=%d client=%s", e.StatusCode, e.Client)
}

// TransportError wraps a network failure or a per-attempt timeout.
type TransportError struct {
	Client string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("innertube transport client=%s: %v", e.Client, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// DecodeError indicates a 2xx response whose body was not a player response.
type DecodeError struct {
	Client string
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("innertube decode client=%s: %v", e.Client, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// PlayabilityError indicates the upstream denied playback to this client
// identity.
type PlayabilityError struct {
	Client string
	Status string
	Reason string
}

func (e *PlayabilityError) Error() string {
	return fmt.Sprintf("unplayable status=%s client=%s reason=%s", e.Status, e.Client, e.Reason)
}

// RequiresLogin reports whether the denial asks for a signed-in session.
func (e *PlayabilityError) RequiresLogin() bool {
	s := strings.ToUpper(e.Status + " " + e.Reason)
	return strings.Contains(s, "LOGIN") || strings.Contains(s, "SIGN IN")
}

// Outcome maps an attempt error to a short label used in metrics and
// attempt events.
func Outcome(err error) string {
	var (
		statusErr    *HTTPStatusError
		transportErr *TransportError
		decodeErr    *DecodeError
		playErr      *PlayabilityError
	)
	switch {
	case err == nil:
		return "ok"
	case errors.As(err, &playErr):
		if playErr.RequiresLogin() {
			return "login_required"
		}
		return "blocked"
	case errors.Is(err, ErrNoFormats):
		return "empty"
	case errors.As(err, &statusErr):
		return "http_status"
	case errors.As(err, &decodeErr):
		return "decode"
	case errors.As(err, &transportErr):
		if errors.Is(err, context.DeadlineExceeded) {
			return "timeout"
		}
		if errors.Is(err, context.Canceled) {
			return "canceled"
		}
		return "transport"
	default:
		return "error"
	}
}
