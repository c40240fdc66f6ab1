package client

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// proxyHTTPClient returns a client routed through proxyURL. An invalid or
// unsupported proxy is reported to logger and the default client is used.
func proxyHTTPClient(proxyURL string, logger Logger) *http.Client {
	raw := strings.TrimSpace(proxyURL)
	if raw == "" {
		return http.DefaultClient
	}
	parsed, err := parseProxyURL(raw)
	if err != nil {
		logger.Warn(component, "ignoring proxy url", err)
		return http.DefaultClient
	}
	baseTransport, ok := http.DefaultTransport.(*http.Transport)
	if !ok {
		return http.DefaultClient
	}
	transport := baseTransport.Clone()
	transport.Proxy = http.ProxyURL(parsed)
	return &http.Client{Transport: transport}
}

func parseProxyURL(raw string) (*url.URL, error) {
	parsed, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("parse proxy url: %w", err)
	}
	if parsed.Host == "" {
		return nil, errors.New("proxy url has no host")
	}
	switch strings.ToLower(parsed.Scheme) {
	case "http", "https", "socks5", "socks5h":
		return parsed, nil
	default:
		return nil, fmt.Errorf("unsupported proxy scheme %q", parsed.Scheme)
	}
}
