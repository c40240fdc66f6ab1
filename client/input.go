package client

import "github.com/famomatic/ytstream/internal/videoid"

// ResolveVideoID accepts either a raw id or a common YouTube URL shape
// (youtu.be short links, watch?v=, /embed/, /shorts/, /v/, /live/) and
// returns the canonical 11-character id.
func ResolveVideoID(input string) (string, bool) {
	return videoid.Resolve(input)
}
