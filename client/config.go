package client

import (
	"net/http"
	"time"

	"github.com/famomatic/ytstream/internal/innertube"
)

// Config holds configuration for the stream resolver.
type Config struct {
	// HTTPClient is the client used for upstream requests.
	// If nil, http.DefaultClient is used.
	HTTPClient *http.Client

	// ProxyURL is the optional proxy URL to use for requests.
	// If HTTPClient is provided, this field is ignored.
	ProxyURL string

	// RequestTimeout bounds each client attempt. Default is 12s.
	RequestTimeout time.Duration

	// ClientOverrides sets the client trial order (e.g. "ios", "android").
	// If empty, the built-in priority order is used.
	ClientOverrides []string

	// ClientSkip removes clients from the trial order.
	ClientSkip []string

	// PreferenceTables replaces the built-in format tag tables.
	PreferenceTables *PreferenceTables

	// PreferenceTablesFile loads tables from a YAML file. Ignored when
	// PreferenceTables is set.
	PreferenceTablesFile string

	// Logger receives diagnostics. If nil, diagnostics are discarded.
	Logger Logger

	// OnAttempt is called once per client attempt, in trial order.
	OnAttempt func(AttemptEvent)
}

func (c Config) ToInnerTubeConfig() innertube.Config {
	cfg := innertube.Config{
		HTTPClient:      c.HTTPClient,
		ClientOverrides: c.ClientOverrides,
		ClientSkip:      c.ClientSkip,
		RequestTimeout:  c.RequestTimeout,
	}
	if c.OnAttempt != nil {
		cfg.OnAttempt = innertube.AttemptEventHandler(c.OnAttempt)
	}
	return cfg
}
