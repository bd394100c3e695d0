package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultTimeout bounds a delivery attempt when the destination does not
// configure its own.
const DefaultTimeout = 15 * time.Second

// maxBodyBytes caps how much of the destination's response body gets stored
// with the submission.
const maxBodyBytes = 4 << 10

// Result is the outcome of a single delivery attempt. Success is true only
// for 2xx responses; Message carries the transport error when no response
// was received at all.
type Result struct {
	Success bool   `json:"success"`
	Code    int    `json:"code,omitempty"`
	Body    string `json:"body,omitempty"`
	Message string `json:"message,omitempty"`
}

// Client posts JSON payloads to webhook destinations. One attempt per call,
// no retries; the dispatcher records whatever comes back. The client carries
// no fixed timeout: each form configures its own, applied to the call's
// context by the caller.
type Client struct {
	httpClient *http.Client
}

func NewClient() *Client {
	return &Client{httpClient: &http.Client{}}
}

// Send posts payload as JSON to url and reports the outcome. Errors are
// folded into the Result rather than returned: a failed delivery is a
// recordable outcome, not a reason to abort the caller.
func (c *Client) Send(ctx context.Context, url string, payload map[string]interface{}) Result {
	data, err := json.Marshal(payload)
	if err != nil {
		return Result{Message: fmt.Sprintf("failed to marshal payload: %v", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(data))
	if err != nil {
		return Result{Message: fmt.Sprintf("failed to create request: %v", err)}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Result{Message: fmt.Sprintf("failed to execute request: %v", err)}
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))

	return Result{
		Success: resp.StatusCode >= http.StatusOK && resp.StatusCode < http.StatusMultipleChoices,
		Code:    resp.StatusCode,
		Body:    string(body),
	}
}
