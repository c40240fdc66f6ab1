package innertube

import (
	"encoding/json"
	"net/http"
	"strconv"
)

// PlayerRequest is the /player request body. The client context is attached
// verbatim from the profile; both content-policy flags are always set.
type PlayerRequest struct {
	VideoID        string  `json:"videoId"`
	Context        Context `json:"context"`
	ContentCheckOk bool    `json:"contentCheckOk"`
	RacyCheckOk    bool    `json:"racyCheckOk"`
}

type Context struct {
	Client     ClientInfo  `json:"client"`
	ThirdParty *ThirdParty `json:"thirdParty,omitempty"`
}

type ClientInfo struct {
	ClientName        string `json:"clientName"`
	ClientVersion     string `json:"clientVersion"`
	DeviceMake        string `json:"deviceMake,omitempty"`
	DeviceModel       string `json:"deviceModel,omitempty"`
	UserAgent         string `json:"userAgent,omitempty"`
	OsName            string `json:"osName,omitempty"`
	OsVersion         string `json:"osVersion,omitempty"`
	AcceptLanguage    string `json:"hl"`
	TimeZone          string `json:"timeZone"`
	UtcOffsetMinutes  int    `json:"utcOffsetMinutes"`
	AndroidSdkVersion int    `json:"androidSdkVersion,omitempty"`
}

type ThirdParty struct {
	EmbedUrl string `json:"embedUrl"`
}

// WatchURL is the canonical watch page for videoID.
func WatchURL(videoID string) string {
	return "https://" + defaultHost + "/watch?v=" + videoID
}

func NewPlayerRequest(profile ClientProfile, videoID string) *PlayerRequest {
	req := &PlayerRequest{
		VideoID:        videoID,
		ContentCheckOk: true,
		RacyCheckOk:    true,
		Context: Context{
			Client: ClientInfo{
				ClientName:        profile.Name,
				ClientVersion:     profile.Version,
				UserAgent:         profile.UserAgent,
				DeviceMake:        profile.DeviceMake,
				DeviceModel:       profile.DeviceModel,
				OsName:            profile.OSName,
				OsVersion:         profile.OSVersion,
				AndroidSdkVersion: profile.AndroidSDKVersion,
				AcceptLanguage:    "en",
				TimeZone:          "UTC",
			},
		},
	}
	if profile.Screen == "EMBED" {
		req.Context.ThirdParty = &ThirdParty{EmbedUrl: WatchURL(videoID)}
	}
	return req
}

func MarshalRequest(req *PlayerRequest) ([]byte, error) {
	return json.Marshal(req)
}

// PlayerEndpoint is the /player URL for a profile.
func PlayerEndpoint(profile ClientProfile) string {
	host := profile.Host
	if host == "" {
		host = defaultHost
	}
	return "https://" + host + "/youtubei/v1/player?prettyPrint=false"
}

// PlayerHeaders builds the request headers for one /player attempt. Origin and
// Referer derive from the canonical watch URL so every profile presents the
// same page context.
func PlayerHeaders(profile ClientProfile, videoID string) http.Header {
	h := make(http.Header)
	h.Set("Content-Type", "application/json")
	h.Set("User-Agent", profile.UserAgent)
	// Per-profile context id, not a shared constant; upstream cross-checks it
	// against context.client.
	h.Set("X-YouTube-Client-Name", strconv.Itoa(profile.ContextNameID))
	h.Set("X-YouTube-Client-Version", profile.Version)
	h.Set("Origin", "https://"+defaultHost)
	h.Set("Referer", WatchURL(videoID))
	return h
}
