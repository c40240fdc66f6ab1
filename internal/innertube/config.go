package innertube

import (
	"net/http"
	"time"
)

// DefaultRequestTimeout bounds a single /player attempt.
const DefaultRequestTimeout = 12 * time.Second

// Playability statuses that mean "this client identity is denied, try the
// next one".
const (
	StatusLoginRequired = "LOGIN_REQUIRED"
	StatusUnplayable    = "UNPLAYABLE"
)

// AttemptEvent describes the outcome of one client attempt.
type AttemptEvent struct {
	VideoID string
	Client  string
	Outcome string
	Detail  string
}

// AttemptEventHandler receives one event per client attempt, in order.
type AttemptEventHandler func(AttemptEvent)

// Config holds configuration specific to InnerTube and Orchestrator.
type Config struct {
	HTTPClient      *http.Client
	ClientOverrides []string
	ClientSkip      []string
	RequestTimeout  time.Duration
	OnAttempt       AttemptEventHandler
}
