package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/famomatic/ytstream/client"
	"github.com/famomatic/ytstream/internal/config"
)

// Options holds all command-line options.
type Options struct {
	// Input
	Inputs []string

	// General
	Help       bool
	ConfigFile string // -config

	// Network
	ProxyURL string        // -proxy
	Timeout  time.Duration // -timeout, per client attempt

	// Selection
	Platform    string // -platform
	Clients     string // -clients
	SkipClients string // -skip-clients
	TablesFile  string // -tables

	// Server
	Listen string // -listen

	// Output
	PrintJSON   bool // -json
	PrintEvents bool // -events
	Verbose     bool

	// set records flags given explicitly, so they win over the config file.
	set map[string]bool
}

// ErrNoInput is returned when neither an input nor -listen was given.
var ErrNoInput = errors.New("no video id or URL given")

// ParseFlags parses args (without the program name) into Options.
func ParseFlags(args []string, stderr io.Writer) (Options, error) {
	opts := Options{set: map[string]bool{}}
	fs := flag.NewFlagSet("ytstream", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var videoShort string
	fs.StringVar(&videoShort, "v", "", "YouTube video ID or URL")

	fs.StringVar(&opts.ConfigFile, "config", "", "YAML config file")
	fs.StringVar(&opts.ProxyURL, "proxy", "", "Use the specified HTTP/HTTPS/SOCKS proxy")
	fs.DurationVar(&opts.Timeout, "timeout", 0, "Timeout per client attempt (default 12s)")
	fs.StringVar(&opts.Platform, "platform", "", "Playback platform: adaptive or progressive")
	fs.StringVar(&opts.Clients, "clients", "", "Comma-separated client order override")
	fs.StringVar(&opts.SkipClients, "skip-clients", "", "Comma-separated clients to skip")
	fs.StringVar(&opts.TablesFile, "tables", "", "YAML file with format preference tables")
	fs.StringVar(&opts.Listen, "listen", "", "Serve the HTTP API on this address instead of resolving inputs")
	fs.BoolVar(&opts.PrintJSON, "json", false, "Print the result as JSON")
	fs.BoolVar(&opts.PrintEvents, "events", false, "Print per-client attempt events to stderr")
	fs.BoolVar(&opts.Verbose, "verbose", false, "Print debugging information")

	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: ytstream [OPTIONS] -v <id|url> | <id|url>...\n       ytstream -listen :8080\n\nOptions:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			opts.Help = true
			return opts, nil
		}
		return opts, err
	}
	fs.Visit(func(f *flag.Flag) { opts.set[f.Name] = true })

	if videoShort != "" {
		opts.Inputs = append(opts.Inputs, videoShort)
	}
	opts.Inputs = append(opts.Inputs, fs.Args()...)
	if len(opts.Inputs) == 0 && !opts.set["listen"] {
		fs.Usage()
		return opts, ErrNoInput
	}
	return opts, nil
}

// Merge applies explicitly given flags on top of the loaded configuration.
func Merge(opts Options, cfg config.Config) config.Config {
	if opts.set["proxy"] {
		cfg.ProxyURL = opts.ProxyURL
	}
	if opts.set["timeout"] && opts.Timeout > 0 {
		cfg.RequestTimeout = opts.Timeout
	}
	if opts.set["platform"] {
		cfg.Platform = opts.Platform
	}
	if opts.set["clients"] {
		cfg.ClientOrder = splitList(opts.Clients)
	}
	if opts.set["skip-clients"] {
		cfg.ClientSkip = splitList(opts.SkipClients)
	}
	if opts.set["tables"] {
		cfg.TablesFile = opts.TablesFile
	}
	if opts.set["listen"] {
		cfg.ListenAddr = opts.Listen
	}
	if opts.Verbose {
		cfg.LogLevel = "debug"
	}
	return cfg
}

// ToClientConfig converts the merged configuration to client.Config.
func ToClientConfig(cfg config.Config, logger client.Logger) client.Config {
	return client.Config{
		ProxyURL:             cfg.ProxyURL,
		RequestTimeout:       cfg.RequestTimeout,
		ClientOverrides:      cfg.ClientOrder,
		ClientSkip:           cfg.ClientSkip,
		PreferenceTablesFile: cfg.TablesFile,
		Logger:               logger,
	}
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	seen := make(map[string]struct{}, len(parts))
	for _, part := range parts {
		name := strings.ToLower(strings.TrimSpace(part))
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	return out
}
