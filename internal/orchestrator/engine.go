package orchestrator

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/famomatic/ytstream/internal/formats"
	"github.com/famomatic/ytstream/internal/innertube"
	"github.com/famomatic/ytstream/internal/log"
	"github.com/famomatic/ytstream/internal/manifest"
	"github.com/famomatic/ytstream/internal/metrics"
	"github.com/famomatic/ytstream/internal/policy"
	"github.com/famomatic/ytstream/internal/selector"
	"github.com/famomatic/ytstream/internal/types"
	"github.com/famomatic/ytstream/internal/videoid"
)

const component = "orchestrator"

// Engine drives one extraction per call through a fixed state machine. It
// holds no per-call state, so concurrent calls are independent.
type Engine struct {
	clients policy.Selector
	config  innertube.Config
	tables  selector.Tables
	logger  log.Sink
}

// NewEngine builds an engine. A nil logger discards diagnostics.
func NewEngine(clients policy.Selector, config innertube.Config, tables selector.Tables, logger log.Sink) *Engine {
	if logger == nil {
		logger = log.NopSink()
	}
	return &Engine{
		clients: clients,
		config:  config,
		tables:  tables,
		logger:  logger,
	}
}

type state int

const (
	stateResolvingID state = iota
	stateTryingClient
	stateSelecting
	stateDone
	stateExhausted
	stateNoResult
)

func (s state) String() string {
	switch s {
	case stateResolvingID:
		return "resolving_id"
	case stateTryingClient:
		return "trying_client"
	case stateSelecting:
		return "selecting"
	case stateDone:
		return "done"
	case stateExhausted:
		return "exhausted"
	case stateNoResult:
		return "no_result"
	default:
		return "state(" + strconv.Itoa(int(s)) + ")"
	}
}

// run is the mutable scratch space of a single Extract call.
type run struct {
	input    string
	hint     types.PlatformHint
	videoID  string
	profiles []innertube.ClientProfile
	next     int
	attempts []AttemptError

	client string
	resp   *innertube.PlayerResponse
	pools  formats.Pools
	result *types.Result
}

// Extract resolves input and returns the selected streams, or nil when the
// input cannot be resolved or every client profile fails.
func (e *Engine) Extract(ctx context.Context, input string, hint types.PlatformHint) *types.Result {
	start := time.Now()
	r := &run{input: input, hint: hint}

	st := stateResolvingID
	for {
		switch st {
		case stateResolvingID:
			st = e.resolve(r)
		case stateTryingClient:
			st = e.tryClient(ctx, r)
		case stateSelecting:
			st = e.selectStreams(r)
		case stateExhausted:
			e.logger.Warn(component, "no usable response for "+r.videoID, &AllClientsFailedError{
				VideoID:  r.videoID,
				Attempts: r.attempts,
			})
			st = stateNoResult
		case stateDone:
			metrics.ObserveExtractionDuration(time.Since(start))
			metrics.IncExtraction(resultKind(r.result))
			return r.result
		case stateNoResult:
			metrics.ObserveExtractionDuration(time.Since(start))
			metrics.IncExtraction("no_result")
			return nil
		default:
			panic("orchestrator: unknown state " + st.String())
		}
	}
}

func (e *Engine) resolve(r *run) state {
	id, ok := videoid.Resolve(r.input)
	if !ok {
		e.logger.Warn(component, fmt.Sprintf("cannot resolve video id from %q", r.input), nil)
		return stateNoResult
	}
	r.videoID = id
	r.profiles = e.clients.Select()
	return stateTryingClient
}

func (e *Engine) tryClient(ctx context.Context, r *run) state {
	if r.next >= len(r.profiles) {
		return stateExhausted
	}
	if err := ctx.Err(); err != nil {
		e.logger.Warn(component, "extraction canceled for "+r.videoID, err)
		return stateExhausted
	}

	profile := r.profiles[r.next]
	r.next++
	e.logger.Info(component, fmt.Sprintf("trying client %s for %s", profile.ID, r.videoID))

	resp, err := e.fetch(ctx, profile, r.videoID)
	var pools formats.Pools
	if err == nil {
		pools = formats.Parse(resp)
		if pools.Empty() {
			err = fmt.Errorf("client %s: %w (%d discarded)", profile.ID, ErrNoFormats, pools.Discarded)
		}
	}

	outcome := Outcome(err)
	metrics.IncClientAttempt(profile.ID, outcome)
	e.emit(innertube.AttemptEvent{VideoID: r.videoID, Client: profile.ID, Outcome: outcome, Detail: errDetail(err)})

	if err != nil {
		r.attempts = append(r.attempts, AttemptError{Client: profile.ID, Err: err})
		e.logger.Warn(component, "client "+profile.ID+" failed, trying next", err)
		return stateTryingClient
	}

	r.client = profile.ID
	r.resp = resp
	r.pools = pools
	return stateSelecting
}

func (e *Engine) selectStreams(r *run) state {
	title, duration := metadata(r.resp)
	result := &types.Result{
		VideoID:  r.videoID,
		Title:    title,
		Duration: duration,
		Streams:  make([]types.Stream, 0, len(r.pools.Muxed)),
		Client:   r.client,
	}
	for _, f := range r.pools.Muxed {
		result.Streams = append(result.Streams, toStream(f))
	}

	if r.hint == types.PlatformAdaptive {
		result.Best = e.manifestStream(r, duration)
	}
	if result.Best == nil {
		if best, ok := selector.BestMuxed(r.pools.Muxed, e.tables); ok {
			s := toStream(best)
			result.Best = &s
		}
	}

	r.result = result
	return stateDone
}

// manifestStream returns nil when either adaptive track is missing or the
// manifest cannot be built.
func (e *Engine) manifestStream(r *run, duration int) *types.Stream {
	video, okVideo := selector.BestAdaptiveVideo(r.pools.Adaptive, e.tables)
	audio, okAudio := selector.BestAdaptiveAudio(r.pools.Adaptive, e.tables)
	if !okVideo || !okAudio {
		e.logger.Info(component, "adaptive tracks incomplete for "+r.videoID+", using muxed")
		return nil
	}

	uri, err := manifest.Synthesize(video, audio, duration)
	if err != nil {
		e.logger.Warn(component, "manifest unavailable for "+r.videoID+", using muxed", err)
		return nil
	}
	return &types.Stream{
		URL:      uri,
		Quality:  video.QualityLabel,
		MimeType: manifest.MimeType,
		HasAudio: true,
		HasVideo: true,
		Bitrate:  video.Bitrate + audio.Bitrate,
	}
}

func (e *Engine) emit(ev innertube.AttemptEvent) {
	if e.config.OnAttempt != nil {
		e.config.OnAttempt(ev)
	}
}

func toStream(f formats.Format) types.Stream {
	return types.Stream{
		URL:      f.URL,
		Quality:  f.QualityLabel,
		MimeType: f.BaseMimeType,
		Itag:     f.Itag,
		HasAudio: f.HasAudio,
		HasVideo: f.HasVideo,
		Bitrate:  f.Bitrate,
	}
}

// metadata prefers videoDetails and falls back to the microformat block.
func metadata(resp *innertube.PlayerResponse) (string, int) {
	if resp == nil {
		return "", 0
	}
	title := strings.TrimSpace(resp.VideoDetails.Title)
	if title == "" {
		title = strings.TrimSpace(resp.Microformat.PlayerMicroformatRenderer.Title.SimpleText)
	}
	duration, _ := strconv.Atoi(strings.TrimSpace(resp.VideoDetails.LengthSeconds))
	if duration <= 0 {
		duration, _ = strconv.Atoi(strings.TrimSpace(resp.Microformat.PlayerMicroformatRenderer.LengthSeconds))
	}
	return title, max(duration, 0)
}

func resultKind(res *types.Result) string {
	switch {
	case res == nil:
		return "no_result"
	case res.Best == nil:
		return "none"
	case res.Best.MimeType == manifest.MimeType:
		return "manifest"
	default:
		return "muxed"
	}
}

func errDetail(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
