package log

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestSinkWritesComponentAndError(t *testing.T) {
	var buf bytes.Buffer
	sink := NewSink(zerolog.New(&buf))

	sink.Warn("fetcher", "client failed", errors.New("boom"))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	require.Equal(t, "warn", entry["level"])
	require.Equal(t, "fetcher", entry["component"])
	require.Equal(t, "client failed", entry["message"])
	require.Equal(t, "boom", entry["error"])
}

func TestSinkInfoOmitsError(t *testing.T) {
	var buf bytes.Buffer
	sink := NewSink(zerolog.New(&buf))

	sink.Info("engine", "trying client android_vr")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	require.Equal(t, "info", entry["level"])
	require.NotContains(t, entry, "error")
}

func TestNopSinkIsSilent(t *testing.T) {
	sink := NopSink()
	sink.Info("x", "y")
	sink.Warn("x", "y", errors.New("z"))
}

func TestWithRequestIDTagsContextLogger(t *testing.T) {
	var buf bytes.Buffer
	ctx := WithRequestID(context.Background(), zerolog.New(&buf), "req-1")
	require.Equal(t, "req-1", RequestID(ctx))

	logger := Ctx(ctx)
	logger.Info().Msg("hello")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	require.Equal(t, "req-1", entry["request_id"])
}

func TestRequestIDEmpty(t *testing.T) {
	require.Equal(t, "", RequestID(context.Background()))
	require.Equal(t, "", RequestID(context.WithValue(context.Background(), requestIDKey{}, 7)))
}

func TestNewAppliesLevelAndService(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: "WARN", Output: &buf, Service: "resolver"})
	logger.Info().Msg("dropped")
	require.Zero(t, buf.Len())

	logger.Warn().Msg("kept")
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	require.Equal(t, "resolver", entry["service"])
	require.Equal(t, "kept", entry["message"])
}

func TestConfigureReplacesBase(t *testing.T) {
	var buf bytes.Buffer
	Configure(Config{Level: "bogus", Output: &buf})
	t.Cleanup(func() { process.Store(nil) })

	logger := WithComponent("api")
	logger.Info().Msg("up")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	require.Equal(t, "ytstream", entry["service"])
	require.Equal(t, "api", entry["component"])
}

func TestCtxFallsBackToBase(t *testing.T) {
	var buf bytes.Buffer
	Configure(Config{Output: &buf})
	t.Cleanup(func() { process.Store(nil) })

	logger := Ctx(context.Background())
	logger.Info().Msg("fallback")
	require.Contains(t, buf.String(), "fallback")
}
