package formats

import (
	"mime"
	"strconv"
	"strings"

	"github.com/famomatic/ytstream/internal/innertube"
)

// Format represents a media format with a direct URL.
type Format struct {
	Itag             int
	URL              string
	MimeType         string // full value, including codecs parameter
	BaseMimeType     string // e.g. "video/mp4"
	Codecs           string
	Bitrate          int
	Width            int
	Height           int
	FPS              int
	QualityLabel     string
	AudioQuality     string
	AudioSampleRate  int
	AudioChannels    int
	ApproxDurationMs int64
	ContentLength    int64
	InitRange        *Range
	IndexRange       *Range
	HasAudio         bool
	HasVideo         bool
}

type Range struct {
	Start int64
	End   int64
}

// Pools holds the two candidate pools of a player response.
type Pools struct {
	// Muxed holds entries carrying both video and audio.
	Muxed []Format
	// Adaptive holds every adaptive entry with a URL, including the ones that
	// were also classified as muxed.
	Adaptive []Format
	// Discarded counts descriptors dropped for lacking a URL.
	Discarded int
}

// Empty reports whether neither pool has a usable entry.
func (p Pools) Empty() bool {
	return len(p.Muxed) == 0 && len(p.Adaptive) == 0
}

// Parse extracts the muxed and adaptive pools from a PlayerResponse.
func Parse(resp *innertube.PlayerResponse) Pools {
	var pools Pools
	if resp == nil {
		return pools
	}

	for _, raw := range resp.StreamingData.Formats {
		if strings.TrimSpace(raw.URL) == "" {
			pools.Discarded++
			continue
		}
		f := normalize(raw)
		f.HasAudio = true
		f.HasVideo = strings.HasPrefix(f.BaseMimeType, "video/")
		pools.Muxed = append(pools.Muxed, f)
	}

	for _, raw := range resp.StreamingData.AdaptiveFormats {
		if strings.TrimSpace(raw.URL) == "" {
			pools.Discarded++
			continue
		}
		f := normalize(raw)
		if IsMuxed(raw) {
			muxed := f
			muxed.HasAudio = true
			muxed.HasVideo = true
			pools.Muxed = append(pools.Muxed, muxed)
			f.HasAudio = true
			f.HasVideo = true
		} else {
			f.HasVideo = strings.HasPrefix(f.BaseMimeType, "video/")
			f.HasAudio = strings.HasPrefix(f.BaseMimeType, "audio/")
		}
		pools.Adaptive = append(pools.Adaptive, f)
	}
	return pools
}

// IsMuxed is a best-effort classifier for adaptive entries that carry both
// tracks: a codec list with a comma, or both an audio quality and a video
// quality label.
func IsMuxed(raw innertube.Format) bool {
	_, codecs := splitMimeType(raw.MimeType)
	if strings.Contains(codecs, ",") {
		return true
	}
	return raw.AudioQuality != "" && raw.QualityLabel != ""
}

func normalize(f innertube.Format) Format {
	base, codecs := splitMimeType(f.MimeType)
	parsed := Format{
		Itag:          f.Itag,
		URL:           f.URL,
		MimeType:      f.MimeType,
		BaseMimeType:  base,
		Codecs:        codecs,
		Bitrate:       f.Bitrate,
		Width:         f.Width,
		Height:        f.Height,
		FPS:           f.FPS,
		QualityLabel:  f.QualityLabel,
		AudioQuality:  f.AudioQuality,
		AudioChannels: f.AudioChannels,
	}
	if parsed.Bitrate == 0 {
		parsed.Bitrate = f.AverageBitrate
	}
	parsed.AudioSampleRate, _ = strconv.Atoi(strings.TrimSpace(f.AudioSampleRate))
	parsed.ApproxDurationMs, _ = strconv.ParseInt(strings.TrimSpace(f.ApproxDurationMs), 10, 64)
	parsed.ContentLength, _ = strconv.ParseInt(strings.TrimSpace(f.ContentLength), 10, 64)
	parsed.InitRange = parseRange(f.InitRange)
	parsed.IndexRange = parseRange(f.IndexRange)
	return parsed
}

func parseRange(r *innertube.Range) *Range {
	if r == nil {
		return nil
	}
	s, err1 := strconv.ParseInt(r.Start, 10, 64)
	e, err2 := strconv.ParseInt(r.End, 10, 64)
	if err1 != nil || err2 != nil || e < s {
		return nil
	}
	return &Range{Start: s, End: e}
}

// splitMimeType returns the lowercased base type and the raw codecs parameter.
func splitMimeType(mimeType string) (string, string) {
	mediaType, params, err := mime.ParseMediaType(mimeType)
	if err != nil {
		base, rest, _ := strings.Cut(mimeType, ";")
		codecs := ""
		if _, after, ok := strings.Cut(rest, "codecs="); ok {
			codecs = strings.Trim(strings.TrimSpace(after), `"`)
		}
		return strings.ToLower(strings.TrimSpace(base)), codecs
	}
	return strings.ToLower(mediaType), strings.TrimSpace(params["codecs"])
}
