package orchestrator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/famomatic/ytstream/internal/innertube"
)

// maxDrainBytes bounds how much of a rejected response body is read before
// the connection is released.
const maxDrainBytes = 64 << 10

// fetch issues exactly one /player request for profile, bounded by the
// per-attempt timeout. Block statuses are reported as *PlayabilityError; any
// other status is returned as-is for the parser to judge.
func (e *Engine) fetch(ctx context.Context, profile innertube.ClientProfile, videoID string) (*innertube.PlayerResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, e.requestTimeout())
	defer cancel()

	body, err := innertube.MarshalRequest(innertube.NewPlayerRequest(profile, videoID))
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, innertube.PlayerEndpoint(profile), bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header = innertube.PlayerHeaders(profile, videoID)

	resp, err := e.httpClient().Do(httpReq)
	if err != nil {
		return nil, &TransportError{Client: profile.ID, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxDrainBytes))
		return nil, &HTTPStatusError{Client: profile.ID, StatusCode: resp.StatusCode}
	}

	var playerResp innertube.PlayerResponse
	if err := json.NewDecoder(resp.Body).Decode(&playerResp); err != nil {
		// A deadline that fires mid-body surfaces as a read error.
		if ctx.Err() != nil {
			return nil, &TransportError{Client: profile.ID, Err: ctx.Err()}
		}
		return nil, &DecodeError{Client: profile.ID, Err: err}
	}

	status := playerResp.PlayabilityStatus
	if !status.IsOK() {
		switch status.Status {
		case innertube.StatusLoginRequired, innertube.StatusUnplayable:
			return nil, &PlayabilityError{
				Client: profile.ID,
				Status: status.Status,
				Reason: status.Reason,
			}
		}
		e.logger.Info(component, fmt.Sprintf("client %s: playability %q (%s), parsing formats anyway", profile.ID, status.Status, status.Reason))
	}
	return &playerResp, nil
}

func (e *Engine) requestTimeout() time.Duration {
	if e.config.RequestTimeout > 0 {
		return e.config.RequestTimeout
	}
	return innertube.DefaultRequestTimeout
}

func (e *Engine) httpClient() *http.Client {
	if e.config.HTTPClient != nil {
		return e.config.HTTPClient
	}
	return http.DefaultClient
}
