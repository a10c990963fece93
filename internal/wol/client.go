// Package wol talks to the remote Wake-on-LAN service that sits next to the
// media server on the home network.
package wol

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultTimeout bounds every call to the remote service.
const DefaultTimeout = 10 * time.Second

var (
	// ErrUnexpectedStatus is returned when the service answers with a status other than 200.
	ErrUnexpectedStatus = errors.New("unexpected status")

	// ErrMalformedBody is returned when the status body is not valid JSON.
	ErrMalformedBody = errors.New("malformed status body")
)

// Result is the outcome of a single call to the remote service.
// Err is set when the service could not be reached or its answer was
// unusable; Reachable is only meaningful when Err is nil.
type Result struct {
	Reachable bool
	Err       error
}

// Unreachable builds a Result for a failed call.
func Unreachable(err error) Result {
	return Result{Err: err}
}

// OK reports whether the call succeeded and the media server is up.
func (r Result) OK() bool {
	return r.Err == nil && r.Reachable
}

// Options configures a Client.
type Options struct {
	WakeURL   string
	StatusURL string
	Username  string
	Password  string
	Timeout   time.Duration

	// HTTPClient overrides the transport. Its Timeout is replaced by Timeout.
	HTTPClient *http.Client
}

// Client calls the wake and status endpoints with HTTP Basic credentials.
type Client struct {
	httpClient *http.Client
	wakeURL    string
	statusURL  string
	username   string
	password   string
}

// statusBody is the JSON document returned by the status endpoint.
type statusBody struct {
	Reachable bool `json:"reachable"`
}

// New creates a new Client.
func New(opts Options) *Client {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	hc := &http.Client{}
	if opts.HTTPClient != nil {
		copied := *opts.HTTPClient
		hc = &copied
	}
	hc.Timeout = timeout

	return &Client{
		httpClient: hc,
		wakeURL:    opts.WakeURL,
		statusURL:  opts.StatusURL,
		username:   opts.Username,
		password:   opts.Password,
	}
}

// Wake asks the service to send the magic packet. A 200 answer is taken as
// the machine being on.
func (c *Client) Wake(ctx context.Context) Result {
	resp, err := c.do(ctx, http.MethodPost, c.wakeURL)
	if err != nil {
		return Unreachable(err)
	}
	defer resp.Body.Close()
	// Drain so the connection can be reused by a warm container.
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return Unreachable(fmt.Errorf("wake: %w: %d", ErrUnexpectedStatus, resp.StatusCode))
	}
	return Result{Reachable: true}
}

// Status asks the service whether the media server answers on the network.
func (c *Client) Status(ctx context.Context) Result {
	resp, err := c.do(ctx, http.MethodGet, c.statusURL)
	if err != nil {
		return Unreachable(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return Unreachable(fmt.Errorf("status: %w: %d", ErrUnexpectedStatus, resp.StatusCode))
	}

	var body statusBody
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return Unreachable(fmt.Errorf("status: %w: %v", ErrMalformedBody, err))
	}
	return Result{Reachable: body.Reachable}
}

func (c *Client) do(ctx context.Context, method, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build %s request: %w", method, err)
	}
	req.SetBasicAuth(c.username, c.password)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s failed: %w", method, url, err)
	}
	return resp, nil
}
