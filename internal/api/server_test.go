package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/famomatic/ytstream/internal/types"
)

type call struct {
	input string
	hint  types.PlatformHint
}

type stubExtractor struct {
	mu     sync.Mutex
	calls  []call
	result *types.Result
}

func (s *stubExtractor) Extract(_ context.Context, input string, hint types.PlatformHint) *types.Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, call{input: input, hint: hint})
	return s.result
}

func sampleResult() *types.Result {
	best := types.Stream{URL: "https://rr.example.com/22", Quality: "720p", MimeType: "video/mp4", Itag: 22, HasAudio: true, HasVideo: true, Bitrate: 1500000}
	return &types.Result{
		VideoID:  "jNQXAC9IVRw",
		Title:    "Me at the zoo",
		Duration: 19,
		Streams:  []types.Stream{best},
		Best:     &best,
		Client:   "android_vr",
	}
}

func TestStreams_PathParam(t *testing.T) {
	ex := &stubExtractor{result: sampleResult()}
	h := NewRouter(ex, Config{DefaultHint: types.PlatformProgressive})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/streams/jNQXAC9IVRw", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	var got types.Result
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, *sampleResult(), got)
	require.Equal(t, []call{{input: "jNQXAC9IVRw", hint: types.PlatformProgressive}}, ex.calls)
}

func TestStreams_EscapedURLInPath(t *testing.T) {
	ex := &stubExtractor{result: sampleResult()}
	h := NewRouter(ex, Config{DefaultHint: types.PlatformAdaptive})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/streams/"+url.PathEscape("https://youtu.be/jNQXAC9IVRw"), nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, []call{{input: "https://youtu.be/jNQXAC9IVRw", hint: types.PlatformAdaptive}}, ex.calls)
}

func TestStreams_QueryInputAndPlatform(t *testing.T) {
	ex := &stubExtractor{result: sampleResult()}
	h := NewRouter(ex, Config{})

	q := url.Values{"input": {"https://www.youtube.com/watch?v=jNQXAC9IVRw&t=3"}, "platform": {"adaptive"}}
	req := httptest.NewRequest(http.MethodGet, "/v1/streams?"+q.Encode(), nil)
	req.Header.Set("X-Request-ID", "req-42")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "req-42", rec.Header().Get("X-Request-ID"))
	require.Equal(t, []call{{input: "https://www.youtube.com/watch?v=jNQXAC9IVRw&t=3", hint: types.PlatformAdaptive}}, ex.calls)
}

func TestStreams_NoResultIs404(t *testing.T) {
	h := NewRouter(&stubExtractor{}, Config{})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/streams/jNQXAC9IVRw", nil))

	require.Equal(t, http.StatusNotFound, rec.Code)
	require.JSONEq(t, `{"error":"no_result"}`, rec.Body.String())
}

func TestStreams_MissingInputIs400(t *testing.T) {
	ex := &stubExtractor{}
	h := NewRouter(ex, Config{})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/streams", nil))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Empty(t, ex.calls)
}

func TestStreams_RateLimited(t *testing.T) {
	h := NewRouter(&stubExtractor{result: sampleResult()}, Config{RateLimitPerMinute: 2})

	codes := make([]int, 0, 3)
	for n := 0; n < 3; n++ {
		req := httptest.NewRequest(http.MethodGet, "/v1/streams/jNQXAC9IVRw", nil)
		req.RemoteAddr = "203.0.113.7:5555"
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}
	require.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestHealthAndMetrics(t *testing.T) {
	metrics := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("# metrics"))
	})
	h := NewRouter(&stubExtractor{}, Config{MetricsHandler: metrics})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"status":"ok"}`, rec.Body.String())

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "# metrics", rec.Body.String())
}
