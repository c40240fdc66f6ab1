// Package api serves extraction results over HTTP.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/famomatic/ytstream/internal/log"
	"github.com/famomatic/ytstream/internal/types"
)

const requestIDHeader = "X-Request-ID"

// Extractor is the extraction entry point served by the API.
type Extractor interface {
	Extract(ctx context.Context, input string, hint types.PlatformHint) *types.Result
}

// Config controls the router.
type Config struct {
	// RateLimitPerMinute caps stream lookups per client IP. Zero disables
	// the limit.
	RateLimitPerMinute int
	// DefaultHint applies when a request has no platform parameter.
	DefaultHint types.PlatformHint
	// MetricsHandler serves /metrics. Defaults to the Prometheus registry.
	MetricsHandler http.Handler
}

type server struct {
	extractor Extractor
	cfg       Config
	logger    zerolog.Logger
}

type errorResponse struct {
	Error  string `json:"error"`
	Detail string `json:"detail,omitempty"`
}

// NewRouter wires the stream, health and metrics routes.
func NewRouter(extractor Extractor, cfg Config) http.Handler {
	if cfg.MetricsHandler == nil {
		cfg.MetricsHandler = promhttp.Handler()
	}
	s := &server{extractor: extractor, cfg: cfg, logger: log.WithComponent("api")}

	r := chi.NewRouter()
	r.Use(s.requestID)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", cfg.MetricsHandler)

	r.Group(func(r chi.Router) {
		if cfg.RateLimitPerMinute > 0 {
			r.Use(rateLimit(cfg.RateLimitPerMinute, time.Minute))
		}
		r.Get("/v1/streams", s.handleStreams)
		r.Get("/v1/streams/{input}", s.handleStreams)
	})
	return r
}

// requestID propagates or assigns a request id and logs one line per request.
func (s *server) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(r.Header.Get(requestIDHeader))
		if id == "" {
			id = uuid.New().String()
		}
		w.Header().Set(requestIDHeader, id)
		ctx := log.WithRequestID(r.Context(), s.logger, id)

		start := time.Now()
		next.ServeHTTP(w, r.WithContext(ctx))
		logger := log.Ctx(ctx)
		logger.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Dur("duration", time.Since(start)).
			Msg("request served")
	})
}

func rateLimit(limit int, window time.Duration) func(http.Handler) http.Handler {
	return httprate.Limit(
		limit,
		window,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Retry-After", fmt.Sprintf("%d", int(window.Seconds())))
			writeJSON(w, http.StatusTooManyRequests, errorResponse{
				Error:  "rate_limit_exceeded",
				Detail: "Too many requests. Please try again later.",
			})
		}),
	)
}

func (s *server) handleStreams(w http.ResponseWriter, r *http.Request) {
	input := chi.URLParam(r, "input")
	// chi matches on RawPath when the path carries escapes, so the param
	// is still encoded in that case.
	if input != "" && r.URL.RawPath != "" {
		unescaped, err := url.PathUnescape(input)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid_input", Detail: err.Error()})
			return
		}
		input = unescaped
	}
	if input == "" {
		input = r.URL.Query().Get("input")
	}
	if strings.TrimSpace(input) == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "missing_input", Detail: "pass a video id or URL"})
		return
	}

	hint := s.cfg.DefaultHint
	if p := r.URL.Query().Get("platform"); p != "" {
		hint = types.ParsePlatformHint(p)
	}

	res := s.extractor.Extract(r.Context(), input, hint)
	if res == nil {
		logger := log.Ctx(r.Context())
		logger.Debug().Str("input", input).Stringer("platform", hint).Msg("no playable stream")
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "no_result"})
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
