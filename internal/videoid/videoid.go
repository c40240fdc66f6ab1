// Package videoid normalizes user input into a canonical 11-character video ID.
package videoid

import (
	"net/url"
	"regexp"
	"strings"
)

const shortLinkHost = "youtu.be"

var (
	idPattern       = regexp.MustCompile(`^[0-9A-Za-z_-]{11}$`)
	pathIDPattern   = regexp.MustCompile(`/(?:embed|shorts|v|live)/([0-9A-Za-z_-]{11})(?:[/?#]|$)`)
	queryFragmentID = regexp.MustCompile(`(?:^|[?&])v=([0-9A-Za-z_-]{11})`)
)

// Valid reports whether s is a canonical video ID.
func Valid(s string) bool {
	return idPattern.MatchString(s)
}

// Resolve returns the canonical video ID embedded in input.
//
// Accepted shapes: bare ID, youtu.be/<id>, any URL with v=<id>,
// /embed/<id>, /shorts/<id>, /v/<id> and /live/<id>. Inputs without a scheme
// are treated as https URLs.
func Resolve(input string) (string, bool) {
	s := strings.TrimSpace(input)
	if s == "" {
		return "", false
	}
	if Valid(s) {
		return s, true
	}

	u, err := parseLenient(s)
	if err != nil {
		return fromRawQuery(s)
	}

	if normalizeHost(u.Hostname()) == shortLinkHost {
		id := firstPathSegment(u.Path)
		if Valid(id) {
			return id, true
		}
		return "", false
	}

	if v := strings.TrimSpace(u.Query().Get("v")); Valid(v) {
		return v, true
	}

	if m := pathIDPattern.FindStringSubmatch(u.Path); len(m) == 2 {
		return m[1], true
	}
	return "", false
}

func parseLenient(s string) (*url.URL, error) {
	if !strings.Contains(s, "://") {
		s = "https://" + s
	}
	u, err := url.Parse(s)
	if err != nil {
		return nil, err
	}
	return u, nil
}

func fromRawQuery(s string) (string, bool) {
	m := queryFragmentID.FindStringSubmatch(s)
	if len(m) != 2 {
		return "", false
	}
	return m[1], true
}

func normalizeHost(host string) string {
	h := strings.TrimSpace(strings.ToLower(host))
	h = strings.TrimSuffix(h, ".")
	return strings.TrimPrefix(h, "www.")
}

func firstPathSegment(p string) string {
	p = strings.TrimPrefix(strings.TrimSpace(p), "/")
	seg, _, _ := strings.Cut(p, "/")
	return strings.TrimSpace(seg)
}
