package policy

import (
	"strings"

	"github.com/famomatic/ytstream/internal/innertube"
)

// Selector decides which clients to try, and in which order.
type Selector interface {
	Select() []innertube.ClientProfile
}

type defaultSelector struct {
	registry    innertube.Registry
	clientOrder []string
	clientSkip  map[string]struct{}
}

// NewSelector returns a selector over registry. clientOrder, when non-empty,
// replaces the registry order; clientSkip removes profiles by alias or
// Innertube client name.
func NewSelector(registry innertube.Registry, clientOrder []string, clientSkip []string) Selector {
	skip := make(map[string]struct{}, len(clientSkip))
	for _, name := range clientSkip {
		p, ok := registry.Get(name)
		if !ok {
			continue
		}
		skip[p.ID] = struct{}{}
	}
	return &defaultSelector{
		registry:    registry,
		clientOrder: clientOrder,
		clientSkip:  skip,
	}
}

func (s *defaultSelector) Select() []innertube.ClientProfile {
	var profiles []innertube.ClientProfile
	seen := make(map[string]struct{}, len(s.clientOrder))
	for _, name := range s.clientOrder {
		if strings.TrimSpace(name) == "" {
			continue
		}
		p, ok := s.registry.Get(name)
		if !ok {
			continue
		}
		if _, exists := seen[p.ID]; exists {
			continue
		}
		seen[p.ID] = struct{}{}
		if _, skipped := s.clientSkip[p.ID]; skipped {
			continue
		}
		profiles = append(profiles, p)
	}

	// If overrides were absent or all invalid, fall back to registry order.
	if len(profiles) == 0 {
		for _, p := range s.registry.All() {
			if _, skipped := s.clientSkip[p.ID]; skipped {
				continue
			}
			profiles = append(profiles, p)
		}
	}
	return profiles
}
