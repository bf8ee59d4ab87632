// Package transport provides the HTTP client used to reach the remote
// library API. The catalog endpoint is read-only and unauthenticated, so
// the client carries no credential handling, only a bounded timeout.
package transport

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/zotools/pubsync/pkg/errors"
)

// DefaultTimeout is the ceiling a single catalog request may wait.
const DefaultTimeout = 30 * time.Second

// Client provides HTTP client functionality for catalog requests.
type Client struct {
	http *http.Client
}

// New creates a new transport client. A non-positive timeout falls back
// to DefaultTimeout.
func New(timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		http: &http.Client{Timeout: timeout},
	}
}

// Get performs a GET request against the given URL.
func (c *Client) Get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &errors.APIError{
			Endpoint: url,
			Message:  "failed to build request",
			Err:      err,
		}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &errors.APIError{
			Endpoint: url,
			Message:  "request failed",
			Err:      err,
		}
	}
	return resp, nil
}

// DecodeResponse decodes a JSON response into the target structure.
// A non-2xx status surfaces the status code and raw body as an APIError;
// an unparseable body surfaces as a ParseError.
func DecodeResponse(resp *http.Response, target any) error {
	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.WrapIO("read", "response body", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		endpoint := ""
		if resp.Request != nil && resp.Request.URL != nil {
			endpoint = resp.Request.URL.String()
		}
		return &errors.APIError{
			Endpoint:   endpoint,
			StatusCode: resp.StatusCode,
			Message:    string(body),
		}
	}

	if err := json.Unmarshal(body, target); err != nil {
		return errors.WrapParse("json", "response", err)
	}

	return nil
}
