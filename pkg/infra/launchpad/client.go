package launchpad

import (
	"context"
	"net/http"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/warden/pkg/domain/interfaces"
)

type client struct {
	httpClient *http.Client
	timeout    time.Duration
}

// Option is a functional option for client configuration
type Option func(*client)

// WithHTTPClient replaces the underlying HTTP client, mainly for tests
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *client) {
		c.httpClient = httpClient
	}
}

// WithTimeout bounds each existence lookup
func WithTimeout(timeout time.Duration) Option {
	return func(c *client) {
		c.timeout = timeout
	}
}

// New creates a bug tracker client. A lookup is a single GET against the
// bug URL; only a 200 response means the bug exists. No retries.
func New(opts ...Option) interfaces.BugTracker {
	c := &client{
		httpClient: http.DefaultClient,
		timeout:    5 * time.Second,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Exists performs the existence lookup for a bug URL
func (c *client) Exists(ctx context.Context, url string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return false, goerr.Wrap(err, "failed to create bug tracker request", goerr.V("url", url))
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false, goerr.Wrap(err, "bug tracker request failed", goerr.V("url", url))
	}
	defer resp.Body.Close()

	return resp.StatusCode == http.StatusOK, nil
}
