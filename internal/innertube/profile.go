package innertube

type ClientProfile struct {
	// ID is the registry/client alias used for policy and diagnostics
	// (e.g. "android_vr"), distinct from Innertube clientName ("ANDROID_VR").
	ID            string
	Name          string
	Version       string
	UserAgent     string
	ContextNameID int
	Host          string
	Screen        string // e.g. "EMBED"

	OSName            string
	OSVersion         string
	DeviceMake        string
	DeviceModel       string
	AndroidSDKVersion int
}

// Registry is an ordered set of client profiles.
type Registry interface {
	Get(id string) (ClientProfile, bool)
	// All returns profiles in priority order.
	All() []ClientProfile
}
