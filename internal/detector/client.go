// Package detector is the thin control client for the external detection
// service: a separate per-camera process that performs capture and inference
// and reports back over the alert webhook. The only signal we send it is a
// termination request when a camera leaves the active state.
package detector

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Client signals the external detection service's control endpoint.
//
// Terminate is intentionally at-most-once and fire-and-forget: a stop request
// that never reaches the process leaves it running until its own session logic
// winds it down. Callers log the returned error and always proceed.
type Client struct {
	endpoint string
	http     *http.Client
}

func New(endpoint string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 1 * time.Second
	}
	return &Client{
		endpoint: endpoint,
		http:     &http.Client{Timeout: timeout},
	}
}

type terminateRequest struct {
	CameraName string `json:"cameraName"`
}

// Terminate asks the detection service to stop the session for cameraName.
// The camera name is the correlation key: the external process never learns
// our record ids. The call is bounded by the client timeout and never retried.
func (c *Client) Terminate(ctx context.Context, cameraName string) error {
	body, err := json.Marshal(terminateRequest{CameraName: cameraName})
	if err != nil {
		return fmt.Errorf("marshal terminate request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+"/terminate", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build terminate request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("terminate %s: %w", cameraName, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("terminate %s: detection service returned %d", cameraName, resp.StatusCode)
	}
	return nil
}
