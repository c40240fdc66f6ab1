package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/famomatic/ytstream/client"
	"github.com/famomatic/ytstream/internal/api"
	"github.com/famomatic/ytstream/internal/cli"
	"github.com/famomatic/ytstream/internal/config"
	"github.com/famomatic/ytstream/internal/log"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	os.Exit(run(ctx, os.Args[1:], os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	opts, err := cli.ParseFlags(args, stderr)
	if err != nil {
		return 2
	}
	if opts.Help {
		return 0
	}

	fileCfg, err := config.Load(opts.ConfigFile)
	if err != nil {
		fmt.Fprintf(stderr, "config: %v\n", err)
		return 1
	}
	cfg := cli.Merge(opts, *fileCfg)
	if err := config.Validate(&cfg); err != nil {
		fmt.Fprintf(stderr, "config: %v\n", err)
		return 2
	}

	log.Configure(log.Config{Level: cfg.LogLevel, Output: stderr})
	sink := log.NewSink(log.WithComponent("ytstream"))

	clientCfg := cli.ToClientConfig(cfg, sink)
	if opts.PrintEvents {
		clientCfg.OnAttempt = func(ev client.AttemptEvent) {
			fmt.Fprintln(stderr, formatAttemptEvent(ev))
		}
	}
	c, err := client.New(clientCfg)
	if err != nil {
		fmt.Fprintf(stderr, "init: %v\n", err)
		return 1
	}
	hint := client.ParsePlatformHint(cfg.Platform)

	if opts.Listen != "" {
		return serve(ctx, c, cfg, hint, stderr)
	}

	code := 0
	for _, input := range opts.Inputs {
		res := c.Extract(ctx, input, hint)
		if res == nil {
			fmt.Fprintf(stderr, "%s: no playable stream\n", input)
			code = 1
			continue
		}
		if err := printResult(stdout, res, opts.PrintJSON); err != nil {
			fmt.Fprintf(stderr, "write: %v\n", err)
			return 1
		}
	}
	return code
}

func serve(ctx context.Context, c *client.Client, cfg config.Config, hint client.PlatformHint, stderr io.Writer) int {
	srv := &http.Server{
		Addr: cfg.ListenAddr,
		Handler: api.NewRouter(c, api.Config{
			RateLimitPerMinute: cfg.RateLimitPerMinute,
			DefaultHint:        hint,
		}),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()
	logger := log.WithComponent("api")
	logger.Info().Str("addr", cfg.ListenAddr).Msg("api listening")

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			fmt.Fprintf(stderr, "serve: %v\n", err)
			return 1
		}
		return 0
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		fmt.Fprintf(stderr, "shutdown: %v\n", err)
		return 1
	}
	return 0
}

func printResult(w io.Writer, res *client.Result, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}

	fmt.Fprintf(w, "Video: %s\n", res.VideoID)
	if res.Title != "" {
		fmt.Fprintf(w, "Title: %s\n", res.Title)
	}
	if res.Duration > 0 {
		fmt.Fprintf(w, "Duration: %ds\n", res.Duration)
	}
	fmt.Fprintf(w, "Client: %s\n", res.Client)
	fmt.Fprintf(w, "Found %d muxed streams:\n", len(res.Streams))
	for _, s := range res.Streams {
		fmt.Fprintln(w, "  "+formatStream(s))
	}
	if res.Best == nil {
		_, err := fmt.Fprintln(w, "Best: none")
		return err
	}
	_, err := fmt.Fprintf(w, "Best: %s\n%s\n", formatStream(*res.Best), res.Best.URL)
	return err
}

func formatStream(s client.Stream) string {
	tracks := "av"
	switch {
	case !s.HasAudio:
		tracks = "video"
	case !s.HasVideo:
		tracks = "audio"
	}
	return fmt.Sprintf("[%d] %s %s %d kbps (%s)", s.Itag, s.Quality, s.MimeType, s.Bitrate/1000, tracks)
}

func formatAttemptEvent(ev client.AttemptEvent) string {
	out := fmt.Sprintf("[extract] client=%s video_id=%s outcome=%s", ev.Client, ev.VideoID, ev.Outcome)
	if ev.Detail != "" {
		out += " detail=" + ev.Detail
	}
	return out
}
