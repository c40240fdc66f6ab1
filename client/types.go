package client

import (
	"github.com/famomatic/ytstream/internal/innertube"
	"github.com/famomatic/ytstream/internal/selector"
	"github.com/famomatic/ytstream/internal/types"
)

type (
	// Stream is one playable stream.
	Stream = types.Stream
	// Result is the outcome of a successful extraction.
	Result = types.Result
	// PlatformHint selects between manifest and muxed output.
	PlatformHint = types.PlatformHint
	// AttemptEvent reports one client attempt.
	AttemptEvent = innertube.AttemptEvent
	// PreferenceTables are the format tag tables used for ranking.
	PreferenceTables = selector.Tables
)

const (
	PlatformUnknown     = types.PlatformUnknown
	PlatformAdaptive    = types.PlatformAdaptive
	PlatformProgressive = types.PlatformProgressive
)

// ParsePlatformHint maps "adaptive" or "progressive" (and aliases) to a hint.
func ParsePlatformHint(s string) PlatformHint {
	return types.ParsePlatformHint(s)
}

// DefaultPreferenceTables returns the built-in tables.
func DefaultPreferenceTables() PreferenceTables {
	return selector.DefaultTables()
}
