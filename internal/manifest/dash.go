// Package manifest synthesizes a two-track static DASH manifest from one
// adaptive video and one adaptive audio format.
package manifest

import (
	"encoding/base64"
	"encoding/xml"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/famomatic/ytstream/internal/formats"
)

const (
	// MimeType is the media type of a synthesized manifest.
	MimeType = "application/dash+xml"

	// DefaultDurationSeconds is used when the video length is unknown.
	DefaultDurationSeconds = 300

	dataURIPrefix = "data:" + MimeType + ";base64,"

	onDemandProfile     = "urn:mpeg:dash:profile:isoff-on-demand:2011"
	channelConfigScheme = "urn:mpeg:dash:23003:3:audio_channel_configuration:2011"
)

var (
	ErrMissingURL    = errors.New("manifest: track has no url")
	ErrMissingCodecs = errors.New("manifest: track has no codecs")
	ErrMissingMime   = errors.New("manifest: track has no mime type")
)

type mpd struct {
	XMLName                   xml.Name `xml:"urn:mpeg:dash:schema:mpd:2011 MPD"`
	Type                      string   `xml:"type,attr"`
	Profiles                  string   `xml:"profiles,attr"`
	MinBufferTime             string   `xml:"minBufferTime,attr"`
	MediaPresentationDuration string   `xml:"mediaPresentationDuration,attr"`
	Period                    period   `xml:"Period"`
}

type period struct {
	Duration      string          `xml:"duration,attr"`
	AdaptationSet []adaptationSet `xml:"AdaptationSet"`
}

type adaptationSet struct {
	ID                  int            `xml:"id,attr"`
	ContentType         string         `xml:"contentType,attr"`
	MimeType            string         `xml:"mimeType,attr"`
	SubsegmentAlignment bool           `xml:"subsegmentAlignment,attr"`
	Representation      representation `xml:"Representation"`
}

type representation struct {
	ID                string         `xml:"id,attr"`
	Codecs            string         `xml:"codecs,attr"`
	Bandwidth         int            `xml:"bandwidth,attr"`
	Width             int            `xml:"width,attr,omitempty"`
	Height            int            `xml:"height,attr,omitempty"`
	FrameRate         int            `xml:"frameRate,attr,omitempty"`
	AudioSamplingRate int            `xml:"audioSamplingRate,attr,omitempty"`
	ChannelConfig     *channelConfig `xml:"AudioChannelConfiguration"`
	BaseURL           string         `xml:"BaseURL"`
	SegmentBase       *segmentBase   `xml:"SegmentBase"`
}

type channelConfig struct {
	SchemeIDURI string `xml:"schemeIdUri,attr"`
	Value       string `xml:"value,attr"`
}

type segmentBase struct {
	IndexRange     string          `xml:"indexRange,attr"`
	Initialization *initialization `xml:"Initialization"`
}

type initialization struct {
	Range string `xml:"range,attr"`
}

// Synthesize renders the manifest and returns it as a base64 data URI.
// durationSec <= 0 means unknown. All text and attribute values are
// XML-escaped by the encoder, so URLs with query ampersands are safe.
func Synthesize(video, audio formats.Format, durationSec int) (string, error) {
	if err := checkTrack("video", video); err != nil {
		return "", err
	}
	if err := checkTrack("audio", audio); err != nil {
		return "", err
	}
	if durationSec <= 0 {
		durationSec = DefaultDurationSeconds
	}
	duration := "PT" + strconv.Itoa(durationSec) + "S"

	videoRep := baseRepresentation(video)
	videoRep.Width = video.Width
	videoRep.Height = video.Height
	videoRep.FrameRate = video.FPS

	audioRep := baseRepresentation(audio)
	audioRep.AudioSamplingRate = audio.AudioSampleRate
	if audio.AudioChannels > 0 {
		audioRep.ChannelConfig = &channelConfig{
			SchemeIDURI: channelConfigScheme,
			Value:       strconv.Itoa(audio.AudioChannels),
		}
	}

	doc := mpd{
		Type:                      "static",
		Profiles:                  onDemandProfile,
		MinBufferTime:             "PT1.5S",
		MediaPresentationDuration: duration,
		Period: period{
			Duration: duration,
			AdaptationSet: []adaptationSet{
				{ID: 0, ContentType: "video", MimeType: video.BaseMimeType, SubsegmentAlignment: true, Representation: videoRep},
				{ID: 1, ContentType: "audio", MimeType: audio.BaseMimeType, SubsegmentAlignment: true, Representation: audioRep},
			},
		},
	}

	body, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("manifest: encode: %w", err)
	}
	out := append([]byte(xml.Header), body...)
	return dataURIPrefix + base64.StdEncoding.EncodeToString(out), nil
}

// Decode returns the XML document carried by a data URI produced by
// Synthesize.
func Decode(uri string) ([]byte, error) {
	payload, ok := strings.CutPrefix(uri, dataURIPrefix)
	if !ok {
		return nil, fmt.Errorf("manifest: not a %s data uri", MimeType)
	}
	doc, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("manifest: decode payload: %w", err)
	}
	return doc, nil
}

func checkTrack(kind string, f formats.Format) error {
	switch {
	case strings.TrimSpace(f.URL) == "":
		return fmt.Errorf("%w (%s itag %d)", ErrMissingURL, kind, f.Itag)
	case strings.TrimSpace(f.Codecs) == "":
		return fmt.Errorf("%w (%s itag %d)", ErrMissingCodecs, kind, f.Itag)
	case strings.TrimSpace(f.BaseMimeType) == "":
		return fmt.Errorf("%w (%s itag %d)", ErrMissingMime, kind, f.Itag)
	}
	return nil
}

func baseRepresentation(f formats.Format) representation {
	rep := representation{
		ID:        strconv.Itoa(f.Itag),
		Codecs:    f.Codecs,
		Bandwidth: f.Bitrate,
		BaseURL:   f.URL,
	}
	if f.IndexRange != nil {
		rep.SegmentBase = &segmentBase{IndexRange: formatRange(*f.IndexRange)}
		if f.InitRange != nil {
			rep.SegmentBase.Initialization = &initialization{Range: formatRange(*f.InitRange)}
		}
	}
	return rep
}

func formatRange(r formats.Range) string {
	return strconv.FormatInt(r.Start, 10) + "-" + strconv.FormatInt(r.End, 10)
}
