// Package client resolves a playable stream for a YouTube video.
//
// Extract never returns an error: a nil Result means no playable stream
// could be produced, and the reason is reported through Config.Logger.
package client

import (
	"context"
	"fmt"

	"github.com/famomatic/ytstream/internal/innertube"
	"github.com/famomatic/ytstream/internal/log"
	"github.com/famomatic/ytstream/internal/orchestrator"
	"github.com/famomatic/ytstream/internal/policy"
	"github.com/famomatic/ytstream/internal/selector"
)

const component = "client"

// Client is safe for concurrent use; calls share no mutable state.
type Client struct {
	engine *orchestrator.Engine
}

// New creates a client. It fails only when the preference tables are
// malformed.
func New(config Config) (*Client, error) {
	var logger Logger = log.NopSink()
	if config.Logger != nil {
		logger = config.Logger
	}
	if config.HTTPClient == nil {
		config.HTTPClient = proxyHTTPClient(config.ProxyURL, logger)
	}

	tables, err := resolveTables(config)
	if err != nil {
		return nil, err
	}

	innerCfg := config.ToInnerTubeConfig()
	clients := policy.NewSelector(innertube.NewRegistry(), innerCfg.ClientOverrides, innerCfg.ClientSkip)
	return &Client{
		engine: orchestrator.NewEngine(clients, innerCfg, tables, logger),
	}, nil
}

func resolveTables(config Config) (selector.Tables, error) {
	switch {
	case config.PreferenceTables != nil:
		if err := config.PreferenceTables.Validate(); err != nil {
			return selector.Tables{}, err
		}
		return *config.PreferenceTables, nil
	case config.PreferenceTablesFile != "":
		tables, err := selector.LoadTablesFile(config.PreferenceTablesFile)
		if err != nil {
			return selector.Tables{}, fmt.Errorf("load %s: %w", config.PreferenceTablesFile, err)
		}
		return tables, nil
	default:
		return selector.DefaultTables(), nil
	}
}

// Extract resolves input (a video id or URL) and selects the best stream for
// hint. It returns nil when the id cannot be resolved or every client
// profile fails.
func (c *Client) Extract(ctx context.Context, input string, hint PlatformHint) *Result {
	return c.engine.Extract(ctx, input, hint)
}
