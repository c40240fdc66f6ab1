package innertube

import "strings"

type orderedRegistry struct {
	order  []ClientProfile
	byID   map[string]int
	byName map[string]int
}

// NewRegistry creates a registry holding DefaultClients in priority order.
func NewRegistry() Registry {
	return NewRegistryFrom(DefaultClients)
}

// NewRegistryFrom creates a registry preserving the order of profiles.
// Later duplicates of an ID are ignored.
func NewRegistryFrom(profiles []ClientProfile) Registry {
	r := &orderedRegistry{
		byID:   make(map[string]int, len(profiles)),
		byName: make(map[string]int, len(profiles)),
	}
	for _, p := range profiles {
		id := normalizeID(p.ID)
		if id == "" {
			continue
		}
		if _, dup := r.byID[id]; dup {
			continue
		}
		r.byID[id] = len(r.order)
		if name := normalizeID(p.Name); name != "" {
			if _, dup := r.byName[name]; !dup {
				r.byName[name] = len(r.order)
			}
		}
		r.order = append(r.order, p)
	}
	return r
}

// Get looks up a profile by alias, falling back to the Innertube client name
// ("ANDROID_VR" resolves like "android_vr").
func (r *orderedRegistry) Get(id string) (ClientProfile, bool) {
	key := normalizeID(id)
	i, ok := r.byID[key]
	if !ok {
		i, ok = r.byName[key]
	}
	if !ok {
		return ClientProfile{}, false
	}
	return r.order[i], true
}

func (r *orderedRegistry) All() []ClientProfile {
	return append([]ClientProfile(nil), r.order...)
}

func normalizeID(id string) string {
	return strings.ToLower(strings.TrimSpace(id))
}
