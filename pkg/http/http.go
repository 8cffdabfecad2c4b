package http

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"golang.org/x/exp/rand"
)

const (
	DefaultMaxRetries  = 3
	DefaultBaseBackoff = time.Millisecond * 500
)

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// RateLimitedClient retries requests the server asked to slow down on
type RateLimitedClient struct {
	client      HTTPClient
	baseBackoff time.Duration
	maxRetries  int
}

// ClientOption is a function that can be used to configure a RateLimitedClient
type ClientOption func(*RateLimitedClient)

// NewRateLimitedClient creates a new RateLimitedClient that respects 429 and 503 status codes.
// The client can be used concurrently.
func NewRateLimitedClient(opts ...ClientOption) *RateLimitedClient {
	c := &RateLimitedClient{
		client:      http.DefaultClient,
		maxRetries:  DefaultMaxRetries,
		baseBackoff: DefaultBaseBackoff,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// WithMaxRetries sets the maximum number of attempts for the client
func WithMaxRetries(maxRetries int) ClientOption {
	return func(c *RateLimitedClient) {
		if maxRetries > 0 {
			c.maxRetries = maxRetries
		}
	}
}

// WithBaseBackoff sets the base backoff time for the client
func WithBaseBackoff(baseBackoff time.Duration) ClientOption {
	return func(c *RateLimitedClient) {
		if baseBackoff > 0 {
			c.baseBackoff = baseBackoff
		}
	}
}

// WithHTTPClient sets the http client to use for the client
func WithHTTPClient(client HTTPClient) ClientOption {
	return func(c *RateLimitedClient) {
		c.client = client
	}
}

// Do executes the request, backing off while the server responds with 429 or 503.
// Waiting between attempts stops when the request context is done.
// If the maximum number of attempts is reached, the last response is returned with an error.
func (c *RateLimitedClient) Do(req *http.Request) (*http.Response, error) {
	var resp *http.Response
	var err error

	for attempt := 0; attempt < c.maxRetries; attempt++ {
		if attempt > 0 && req.GetBody != nil {
			req.Body, err = req.GetBody()
			if err != nil {
				return nil, fmt.Errorf("failed to rewind request body: %w", err)
			}
		}

		resp, err = c.client.Do(req)
		if err != nil {
			return nil, err
		}

		if !retryable(resp.StatusCode) {
			return resp, nil
		}

		if attempt == c.maxRetries-1 {
			break
		}

		retryAfter := c.getRetryAfter(resp, attempt)
		resp.Body.Close()

		timer := time.NewTimer(retryAfter)
		select {
		case <-req.Context().Done():
			timer.Stop()
			return nil, req.Context().Err()
		case <-timer.C:
		}
	}

	return resp, fmt.Errorf("rate limit exceeded after %d attempts", c.maxRetries)
}

func retryable(status int) bool {
	return status == http.StatusTooManyRequests || status == http.StatusServiceUnavailable
}

// getRetryAfter calculates the appropriate retry delay
func (c *RateLimitedClient) getRetryAfter(resp *http.Response, attempt int) time.Duration {
	if retryAfterHeader := resp.Header.Get("Retry-After"); retryAfterHeader != "" {
		seconds, err := strconv.Atoi(retryAfterHeader)
		if err == nil {
			return time.Duration(seconds) * time.Second
		}
	}

	// 2^n backoff
	expBackoff := time.Duration(1<<attempt) * c.baseBackoff

	// staggers the backoff to avoid a thundering herd
	jitter := time.Duration(rand.Int63n(int64(c.baseBackoff)))

	return expBackoff + jitter
}
