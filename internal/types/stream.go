package types

import "strings"

// Stream is the normalized public unit returned to callers. HasAudio or
// HasVideo is always true.
type Stream struct {
	URL      string `json:"url"`
	Quality  string `json:"quality,omitempty"`
	MimeType string `json:"mime_type"`
	Itag     int    `json:"itag,omitempty"`
	HasAudio bool   `json:"has_audio"`
	HasVideo bool   `json:"has_video"`
	Bitrate  int    `json:"bitrate"`
}

// Result is built once per extraction call and never mutated afterwards.
type Result struct {
	VideoID string `json:"video_id"`
	Title   string `json:"title,omitempty"`
	// Duration in seconds; zero when unknown.
	Duration int      `json:"duration,omitempty"`
	Streams  []Stream `json:"streams"`
	// Best is nil when no stream passed selection.
	Best *Stream `json:"best,omitempty"`
	// Client is the profile that produced the response.
	Client string `json:"client,omitempty"`
}

// PlatformHint describes the playback capability of the caller.
type PlatformHint int

const (
	// PlatformUnknown selects the best muxed stream.
	PlatformUnknown PlatformHint = iota
	// PlatformAdaptive can play a multi-track DASH manifest.
	PlatformAdaptive
	// PlatformProgressive can only play single-file muxed streams.
	PlatformProgressive
)

func (h PlatformHint) String() string {
	switch h {
	case PlatformAdaptive:
		return "adaptive"
	case PlatformProgressive:
		return "progressive"
	default:
		return "unknown"
	}
}

// ParsePlatformHint maps a name to a hint. Unrecognized names map to
// PlatformUnknown. "android" and "ios" are accepted as aliases for the two
// capability profiles.
func ParsePlatformHint(s string) PlatformHint {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "adaptive", "dash", "split", "android":
		return PlatformAdaptive
	case "progressive", "muxed", "ios":
		return PlatformProgressive
	default:
		return PlatformUnknown
	}
}
