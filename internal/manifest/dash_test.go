package manifest

import (
	"encoding/xml"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/famomatic/ytstream/internal/formats"
)

const (
	videoURL = "https://rr1.example.com/videoplayback?itag=137&mime=video%2Fmp4&expire=1700000000"
	audioURL = "https://rr1.example.com/videoplayback?itag=140&mime=audio%2Fmp4&expire=1700000000"
)

func testVideo() formats.Format {
	return formats.Format{
		Itag:         137,
		URL:          videoURL,
		BaseMimeType: "video/mp4",
		Codecs:       "avc1.640028",
		Bitrate:      4_000_000,
		Width:        1920,
		Height:       1080,
		FPS:          30,
		QualityLabel: "1080p",
		InitRange:    &formats.Range{Start: 0, End: 739},
		IndexRange:   &formats.Range{Start: 740, End: 1200},
		HasVideo:     true,
	}
}

func testAudio() formats.Format {
	return formats.Format{
		Itag:            140,
		URL:             audioURL,
		BaseMimeType:    "audio/mp4",
		Codecs:          "mp4a.40.2",
		Bitrate:         130_000,
		AudioQuality:    "AUDIO_QUALITY_MEDIUM",
		AudioSampleRate: 44100,
		AudioChannels:   2,
		HasAudio:        true,
	}
}

func decodeMPD(t *testing.T, uri string) (mpd, string) {
	t.Helper()
	raw, err := Decode(uri)
	require.NoError(t, err)
	var doc mpd
	require.NoError(t, xml.Unmarshal(raw, &doc))
	return doc, string(raw)
}

func TestSynthesize_EmbedsTracksAndDuration(t *testing.T) {
	uri, err := Synthesize(testVideo(), testAudio(), 213)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(uri, "data:application/dash+xml;base64,"))

	doc, _ := decodeMPD(t, uri)
	assert.Equal(t, "static", doc.Type)
	assert.Equal(t, "PT213S", doc.MediaPresentationDuration)
	assert.Equal(t, "PT213S", doc.Period.Duration)
	require.Len(t, doc.Period.AdaptationSet, 2)

	video := doc.Period.AdaptationSet[0]
	assert.Equal(t, "video/mp4", video.MimeType)
	assert.Equal(t, "137", video.Representation.ID)
	assert.Equal(t, videoURL, video.Representation.BaseURL)
	assert.Equal(t, "avc1.640028", video.Representation.Codecs)
	assert.Equal(t, 4_000_000, video.Representation.Bandwidth)
	assert.Equal(t, 1920, video.Representation.Width)
	assert.Equal(t, 1080, video.Representation.Height)
	require.NotNil(t, video.Representation.SegmentBase)
	assert.Equal(t, "740-1200", video.Representation.SegmentBase.IndexRange)
	assert.Equal(t, "0-739", video.Representation.SegmentBase.Initialization.Range)

	audio := doc.Period.AdaptationSet[1]
	assert.Equal(t, "audio/mp4", audio.MimeType)
	assert.Equal(t, audioURL, audio.Representation.BaseURL)
	assert.Equal(t, 44100, audio.Representation.AudioSamplingRate)
	assert.Zero(t, audio.Representation.Width)
	require.NotNil(t, audio.Representation.ChannelConfig)
	assert.Equal(t, "2", audio.Representation.ChannelConfig.Value)
	assert.Nil(t, audio.Representation.SegmentBase)
}

func TestSynthesize_DefaultDuration(t *testing.T) {
	for _, d := range []int{0, -5} {
		uri, err := Synthesize(testVideo(), testAudio(), d)
		require.NoError(t, err)
		doc, _ := decodeMPD(t, uri)
		require.Equal(t, "PT300S", doc.MediaPresentationDuration)
	}
}

func TestSynthesize_EscapesAmpersands(t *testing.T) {
	video := testVideo()
	video.URL = `https://example.com/v?a=1&b="2"&c=<3>`

	uri, err := Synthesize(video, testAudio(), 60)
	require.NoError(t, err)

	doc, raw := decodeMPD(t, uri)
	assert.Contains(t, raw, "?a=1&amp;b=")
	assert.Contains(t, raw, "&lt;3&gt;")
	assert.NotContains(t, raw, "a=1&b")
	assert.Equal(t, video.URL, doc.Period.AdaptationSet[0].Representation.BaseURL)
	assert.Equal(t, audioURL, doc.Period.AdaptationSet[1].Representation.BaseURL)
}

func TestSynthesize_RejectsIncompleteTracks(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(v, a *formats.Format)
		want   error
	}{
		{name: "video url", mutate: func(v, _ *formats.Format) { v.URL = "" }, want: ErrMissingURL},
		{name: "audio codecs", mutate: func(_, a *formats.Format) { a.Codecs = " " }, want: ErrMissingCodecs},
		{name: "video mime", mutate: func(v, _ *formats.Format) { v.BaseMimeType = "" }, want: ErrMissingMime},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, a := testVideo(), testAudio()
			tt.mutate(&v, &a)
			uri, err := Synthesize(v, a, 10)
			require.Empty(t, uri)
			require.True(t, errors.Is(err, tt.want), "got %v", err)
		})
	}
}

func TestDecode_RejectsForeignURIs(t *testing.T) {
	_, err := Decode("https://example.com/manifest.mpd")
	require.Error(t, err)

	_, err = Decode("data:application/dash+xml;base64,!!!")
	require.Error(t, err)
}
