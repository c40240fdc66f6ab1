package selector

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/famomatic/ytstream/internal/formats"
)

func muxed(itag, height, bitrate int, mime string) formats.Format {
	return formats.Format{
		Itag:         itag,
		URL:          "https://example.com/" + mime,
		BaseMimeType: mime,
		Height:       height,
		Bitrate:      bitrate,
		QualityLabel: "q",
		AudioQuality: "AUDIO_QUALITY_LOW",
		HasAudio:     true,
		HasVideo:     true,
	}
}

func videoOnly(itag, bitrate int) formats.Format {
	return formats.Format{
		Itag:         itag,
		URL:          "https://example.com/v",
		BaseMimeType: "video/mp4",
		QualityLabel: "720p",
		Bitrate:      bitrate,
		HasVideo:     true,
	}
}

func audioOnly(itag, bitrate int) formats.Format {
	return formats.Format{
		Itag:         itag,
		URL:          "https://example.com/a",
		BaseMimeType: "audio/mp4",
		AudioQuality: "AUDIO_QUALITY_MEDIUM",
		Bitrate:      bitrate,
		HasAudio:     true,
	}
}

func TestDefaultTablesAreValid(t *testing.T) {
	tables := DefaultTables()
	require.NoError(t, tables.Validate())
	assert.Equal(t, 1, tables.Version)
	assert.Equal(t, 137, tables.AdaptiveVideo[0])
	assert.Equal(t, 140, tables.AdaptiveAudio[0])
}

func TestMuxedScore(t *testing.T) {
	tables := Tables{Muxed: []int{22, 18}}

	assert.Equal(t, 2*tableBonus+720+1500, MuxedScore(muxed(22, 720, 1_500_000, "video/mp4"), tables))
	assert.Equal(t, 1*tableBonus+360+500, MuxedScore(muxed(18, 360, 500_000, "video/mp4"), tables))
	// Caps apply to unlisted outliers.
	assert.Equal(t, 1080+5000, MuxedScore(muxed(999, 4320, 90_000_000, "video/mp4"), tables))
}

func TestBestMuxed_TableBonusDominatesBitrate(t *testing.T) {
	tables := DefaultTables()
	pool := []formats.Format{
		muxed(901, 2160, 40_000_000, "video/mp4"),
		muxed(902, 1440, 20_000_000, "video/mp4"),
		muxed(18, 360, 600_000, "video/mp4"),
		muxed(903, 1080, 9_000_000, "video/mp4"),
	}

	best, ok := BestMuxed(pool, tables)
	require.True(t, ok)
	require.Equal(t, 18, best.Itag)
}

func TestBestMuxed_PrefersMP4Container(t *testing.T) {
	tables := DefaultTables()
	pool := []formats.Format{
		muxed(43, 360, 700_000, "video/webm"),
		muxed(904, 240, 200_000, "video/mp4"),
	}

	best, ok := BestMuxed(pool, tables)
	require.True(t, ok)
	require.Equal(t, 904, best.Itag)

	best, ok = BestMuxed(pool[:1], tables)
	require.True(t, ok)
	require.Equal(t, 43, best.Itag)
}

func TestBestMuxed_TiesKeepFirst(t *testing.T) {
	pool := []formats.Format{
		muxed(905, 360, 500_000, "video/mp4"),
		muxed(906, 360, 500_000, "video/mp4"),
	}
	best, ok := BestMuxed(pool, DefaultTables())
	require.True(t, ok)
	require.Equal(t, 905, best.Itag)
}

func TestBestMuxed_EmptyPool(t *testing.T) {
	_, ok := BestMuxed(nil, DefaultTables())
	require.False(t, ok)
}

func TestBestAdaptiveVideo(t *testing.T) {
	tables := DefaultTables()

	t.Run("table order wins over bitrate", func(t *testing.T) {
		pool := []formats.Format{videoOnly(135, 1_000_000), videoOnly(999, 9_000_000), videoOnly(136, 2_000_000)}
		best, ok := BestAdaptiveVideo(pool, tables)
		require.True(t, ok)
		require.Equal(t, 136, best.Itag)
	})

	t.Run("bitrate fallback", func(t *testing.T) {
		pool := []formats.Format{videoOnly(998, 1_000_000), videoOnly(999, 3_000_000)}
		best, ok := BestAdaptiveVideo(pool, tables)
		require.True(t, ok)
		require.Equal(t, 999, best.Itag)
	})

	t.Run("muxed and audio entries are excluded", func(t *testing.T) {
		mixed := muxed(137, 1080, 4_000_000, "video/mp4")
		mixed.AudioQuality = ""
		pool := []formats.Format{mixed, audioOnly(140, 128_000)}
		_, ok := BestAdaptiveVideo(pool, tables)
		require.False(t, ok)
	})

	t.Run("entries without quality label are excluded", func(t *testing.T) {
		f := videoOnly(137, 4_000_000)
		f.QualityLabel = ""
		_, ok := BestAdaptiveVideo([]formats.Format{f}, tables)
		require.False(t, ok)
	})
}

func TestBestAdaptiveAudio(t *testing.T) {
	tables := DefaultTables()

	pool := []formats.Format{audioOnly(251, 160_000), audioOnly(140, 128_000), videoOnly(137, 4_000_000)}
	best, ok := BestAdaptiveAudio(pool, tables)
	require.True(t, ok)
	require.Equal(t, 140, best.Itag)

	pool = []formats.Format{audioOnly(600, 64_000), audioOnly(601, 96_000)}
	best, ok = BestAdaptiveAudio(pool, tables)
	require.True(t, ok)
	require.Equal(t, 601, best.Itag)

	_, ok = BestAdaptiveAudio([]formats.Format{videoOnly(137, 1)}, tables)
	require.False(t, ok)
}

func TestLoadTables_Errors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{name: "empty document", yaml: "", want: "empty document"},
		{name: "missing list", yaml: "muxed: [18]\nadaptive_video: [137]\n", want: "adaptive_audio is empty"},
		{name: "duplicate", yaml: "muxed: [18, 18]\nadaptive_video: [137]\nadaptive_audio: [140]\n", want: "duplicate tag 18"},
		{name: "invalid tag", yaml: "muxed: [0]\nadaptive_video: [137]\nadaptive_audio: [140]\n", want: "invalid tag 0"},
		{name: "unknown key", yaml: "muxed: [18]\nadaptive_video: [137]\nadaptive_audio: [140]\nhls: [96]\n", want: "field hls not found"},
		{name: "unsupported version", yaml: "version: 2\nmuxed: [18]\nadaptive_video: [137]\nadaptive_audio: [140]\n", want: "unsupported version 2"},
		{name: "trailing document", yaml: "muxed: [18]\nadaptive_video: [137]\nadaptive_audio: [140]\n---\nmuxed: [22]\n", want: "multiple documents"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadTables(strings.NewReader(tt.yaml))
			require.Error(t, err)
			require.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoadTablesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tables.yaml")
	require.NoError(t, os.WriteFile(path, []byte("version: 1\nmuxed: [22]\nadaptive_video: [248, 137]\nadaptive_audio: [251]\n"), 0o600))

	tables, err := LoadTablesFile(path)
	require.NoError(t, err)
	require.Equal(t, Tables{Version: TablesVersion, Muxed: []int{22}, AdaptiveVideo: []int{248, 137}, AdaptiveAudio: []int{251}}, tables)

	tables, err = LoadTables(strings.NewReader("muxed: [22]\nadaptive_video: [137]\nadaptive_audio: [140]\n"))
	require.NoError(t, err)
	require.Equal(t, TablesVersion, tables.Version)

	_, err = LoadTablesFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}
