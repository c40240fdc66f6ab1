// Package selector ranks parsed formats against the preference tables.
package selector

import (
	"slices"
	"strings"

	"github.com/famomatic/ytstream/internal/formats"
)

const (
	tableBonus     = 10000
	heightCeiling  = 1080
	bitrateCeiling = 5_000_000

	primaryContainer = "video/mp4"
)

// MuxedScore ranks a muxed candidate. Table position dominates; height and
// bitrate are capped so an outlier cannot outrank a listed tag.
func MuxedScore(f formats.Format, t Tables) int {
	score := 0
	if idx := slices.Index(t.Muxed, f.Itag); idx >= 0 {
		score += tableBonus * (len(t.Muxed) - idx)
	}
	score += min(f.Height, heightCeiling)
	score += min(f.Bitrate, bitrateCeiling) / 1000
	return score
}

// BestMuxed picks the highest scoring muxed format, restricted to the mp4
// container when any mp4 entry exists. Ties keep the earlier entry.
func BestMuxed(pool []formats.Format, t Tables) (formats.Format, bool) {
	candidates := make([]formats.Format, 0, len(pool))
	for _, f := range pool {
		if f.BaseMimeType == primaryContainer {
			candidates = append(candidates, f)
		}
	}
	if len(candidates) == 0 {
		candidates = pool
	}
	if len(candidates) == 0 {
		return formats.Format{}, false
	}

	best := candidates[0]
	bestScore := MuxedScore(best, t)
	for _, f := range candidates[1:] {
		if s := MuxedScore(f, t); s > bestScore {
			best, bestScore = f, s
		}
	}
	return best, true
}

// BestAdaptiveVideo picks a video-only format: first table hit, else highest
// bitrate.
func BestAdaptiveVideo(pool []formats.Format, t Tables) (formats.Format, bool) {
	return pick(pool, t.AdaptiveVideo, isVideoOnly)
}

// BestAdaptiveAudio picks an audio-only format: first table hit, else highest
// bitrate.
func BestAdaptiveAudio(pool []formats.Format, t Tables) (formats.Format, bool) {
	return pick(pool, t.AdaptiveAudio, isAudioOnly)
}

func isVideoOnly(f formats.Format) bool {
	return f.URL != "" &&
		f.QualityLabel != "" &&
		f.AudioQuality == "" &&
		!f.HasAudio &&
		strings.HasPrefix(f.BaseMimeType, "video/")
}

func isAudioOnly(f formats.Format) bool {
	return f.URL != "" &&
		f.AudioQuality != "" &&
		f.QualityLabel == "" &&
		!f.HasVideo &&
		strings.HasPrefix(f.BaseMimeType, "audio/")
}

func pick(pool []formats.Format, table []int, keep func(formats.Format) bool) (formats.Format, bool) {
	var filtered []formats.Format
	for _, f := range pool {
		if keep(f) {
			filtered = append(filtered, f)
		}
	}
	if len(filtered) == 0 {
		return formats.Format{}, false
	}

	for _, tag := range table {
		if i := slices.IndexFunc(filtered, func(f formats.Format) bool { return f.Itag == tag }); i >= 0 {
			return filtered[i], true
		}
	}

	best := filtered[0]
	for _, f := range filtered[1:] {
		if f.Bitrate > best.Bitrate {
			best = f
		}
	}
	return best, true
}
