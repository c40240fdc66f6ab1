package innertube

const defaultHost = "www.youtube.com"

var (
	// AndroidVRClient mimics the Quest YouTube VR app. Rarely blocked and
	// returns unciphered URLs, capped at lower adaptive qualities on some videos.
	AndroidVRClient = ClientProfile{
		ID:                "android_vr",
		Name:              "ANDROID_VR",
		Version:           "1.62.27",
		ContextNameID:     28,
		UserAgent:         "com.google.android.apps.youtube.vr.oculus/1.62.27 (Linux; U; Android 12L; eureka-user Build/SQ3A.220605.009.A1) gzip",
		Host:              defaultHost,
		OSName:            "Android",
		OSVersion:         "12L",
		DeviceMake:        "Oculus",
		DeviceModel:       "Quest 3",
		AndroidSDKVersion: 32,
	}

	// IOSClient mimics the official iOS app.
	IOSClient = ClientProfile{
		ID:            "ios",
		Name:          "IOS",
		Version:       "21.02.3",
		ContextNameID: 5,
		UserAgent:     "com.google.ios.youtube/21.02.3 (iPhone16,2; U; CPU iOS 18_3_2 like Mac OS X;)",
		Host:          defaultHost,
		OSName:        "iOS",
		OSVersion:     "18.3.2.22D82",
		DeviceMake:    "Apple",
		DeviceModel:   "iPhone16,2",
	}

	// AndroidClient mimics the official Android app.
	AndroidClient = ClientProfile{
		ID:                "android",
		Name:              "ANDROID",
		Version:           "21.02.35",
		ContextNameID:     3,
		UserAgent:         "com.google.android.youtube/21.02.35 (Linux; U; Android 11) gzip",
		Host:              defaultHost,
		OSName:            "Android",
		OSVersion:         "11",
		DeviceMake:        "Google",
		DeviceModel:       "Pixel 5",
		AndroidSDKVersion: 30,
	}

	// TVEmbeddedClient is the embedded Smart TV player; unlocks some
	// age-gated videos.
	TVEmbeddedClient = ClientProfile{
		ID:            "tv_embedded",
		Name:          "TVHTML5_SIMPLY_EMBEDDED_PLAYER",
		Version:       "2.0",
		ContextNameID: 85,
		UserAgent:     "Mozilla/5.0 (ChromiumStylePlatform) Cobalt/25.lts.30.1034943-gold (unlike Gecko), Unknown_TV_Unknown_0/Unknown (Unknown, Unknown)",
		Host:          defaultHost,
		Screen:        "EMBED",
		OSName:        "Cobalt",
		OSVersion:     "25",
		DeviceMake:    "Unknown",
		DeviceModel:   "TV",
	}

	// WebEmbeddedClient is for embedded players.
	WebEmbeddedClient = ClientProfile{
		ID:            "web_embedded",
		Name:          "WEB_EMBEDDED_PLAYER",
		Version:       "1.20260115.01.00",
		ContextNameID: 56,
		UserAgent:     "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
		Host:          defaultHost,
		Screen:        "EMBED",
		OSName:        "Windows",
		OSVersion:     "10.0",
		DeviceMake:    "Microsoft",
		DeviceModel:   "Desktop",
	}
)

// DefaultClients is the fixed priority order. Earlier entries are less
// likely to be blocked; later entries unlock more videos but tend to carry
// fewer or lower quality unciphered formats.
var DefaultClients = []ClientProfile{
	AndroidVRClient,
	IOSClient,
	AndroidClient,
	TVEmbeddedClient,
	WebEmbeddedClient,
}
