package http

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/kasuboski/seriez/pkg/http/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestNewRateLimitedClient(t *testing.T) {
	t.Run("default", func(t *testing.T) {
		got := NewRateLimitedClient()
		assert.Equal(t, &RateLimitedClient{
			client:      http.DefaultClient,
			maxRetries:  DefaultMaxRetries,
			baseBackoff: DefaultBaseBackoff,
		}, got)
	})

	t.Run("custom", func(t *testing.T) {
		c := &http.Client{Timeout: time.Second}
		got := NewRateLimitedClient(WithMaxRetries(5), WithBaseBackoff(time.Millisecond*100), WithHTTPClient(c))
		assert.Equal(t, &RateLimitedClient{
			client:      c,
			maxRetries:  5,
			baseBackoff: time.Millisecond * 100,
		}, got)
	})

	t.Run("zero values keep defaults", func(t *testing.T) {
		got := NewRateLimitedClient(WithMaxRetries(0), WithBaseBackoff(0))
		assert.Equal(t, DefaultMaxRetries, got.maxRetries)
		assert.Equal(t, DefaultBaseBackoff, got.baseBackoff)
	})
}

func response(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Header:     http.Header{},
		Body:       io.NopCloser(bytes.NewBufferString(body)),
	}
}

func TestRateLimitedClient_Do(t *testing.T) {
	t.Run("error during request", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mhttp := mocks.NewMockHTTPClient(ctrl)

		req, err := http.NewRequest(http.MethodGet, "https://example.com", nil)
		require.NoError(t, err)

		mhttp.EXPECT().Do(req).Return(nil, errors.New("http error"))
		client := NewRateLimitedClient(WithHTTPClient(mhttp))
		resp, err := client.Do(req)
		assert.Error(t, err)
		assert.Nil(t, resp)
	})

	t.Run("ok response", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mhttp := mocks.NewMockHTTPClient(ctrl)

		req, err := http.NewRequest(http.MethodGet, "https://example.com", nil)
		require.NoError(t, err)

		mhttp.EXPECT().Do(req).Return(response(http.StatusOK, "ok response"), nil)

		client := NewRateLimitedClient(WithHTTPClient(mhttp))
		resp, err := client.Do(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		b, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.Equal(t, "ok response", string(b))
	})

	t.Run("429 response - max retries", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mhttp := mocks.NewMockHTTPClient(ctrl)

		req, err := http.NewRequest(http.MethodGet, "https://example.com", nil)
		require.NoError(t, err)

		mhttp.EXPECT().Do(req).Return(response(http.StatusTooManyRequests, "429 response"), nil)
		client := NewRateLimitedClient(WithHTTPClient(mhttp), WithMaxRetries(1))
		resp, err := client.Do(req)
		assert.ErrorContains(t, err, "rate limit exceeded after 1 attempts")
		require.NotNil(t, resp)
		assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	})

	t.Run("503 then ok resends body", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mhttp := mocks.NewMockHTTPClient(ctrl)

		req, err := http.NewRequest(http.MethodPost, "https://example.com", strings.NewReader("what=friends"))
		require.NoError(t, err)

		var bodies []string
		record := func(r *http.Request) {
			b, _ := io.ReadAll(r.Body)
			bodies = append(bodies, string(b))
		}

		gomock.InOrder(
			mhttp.EXPECT().Do(req).Do(record).Return(response(http.StatusServiceUnavailable, ""), nil),
			mhttp.EXPECT().Do(req).Do(record).Return(response(http.StatusOK, "ok"), nil),
		)

		client := NewRateLimitedClient(WithHTTPClient(mhttp), WithBaseBackoff(time.Millisecond))
		resp, err := client.Do(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, []string{"what=friends", "what=friends"}, bodies)
	})

	t.Run("context done while waiting", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mhttp := mocks.NewMockHTTPClient(ctrl)

		ctx, cancel := context.WithCancel(context.Background())
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, "https://example.com", nil)
		require.NoError(t, err)

		resp := response(http.StatusTooManyRequests, "")
		resp.Header.Set("Retry-After", "60")
		mhttp.EXPECT().Do(req).DoAndReturn(func(*http.Request) (*http.Response, error) {
			cancel()
			return resp, nil
		})

		client := NewRateLimitedClient(WithHTTPClient(mhttp))
		got, err := client.Do(req)
		assert.ErrorIs(t, err, context.Canceled)
		assert.Nil(t, got)
	})
}

func TestRateLimitedClient_getRetryAfter(t *testing.T) {
	tests := []struct {
		name        string
		baseBackoff time.Duration
		resp        *http.Response
		attempt     int
		min         time.Duration
		max         time.Duration
	}{
		{
			name:        "retry after header",
			baseBackoff: time.Second,
			resp: &http.Response{
				Header: http.Header{
					"Retry-After": []string{"1"},
				},
			},
			min: time.Second,
			max: time.Second,
		},
		{
			name:        "exponential backoff with jitter",
			baseBackoff: time.Second,
			resp:        &http.Response{},
			attempt:     3,
			min:         time.Second * 8, // 2^3 * 1 second
			max:         time.Second * 9,
		},
		{
			name:        "unparsable header falls back to backoff",
			baseBackoff: time.Millisecond,
			resp: &http.Response{
				Header: http.Header{
					"Retry-After": []string{"soon"},
				},
			},
			min: time.Millisecond,
			max: time.Millisecond * 2,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &RateLimitedClient{baseBackoff: tt.baseBackoff}
			got := c.getRetryAfter(tt.resp, tt.attempt)
			assert.GreaterOrEqual(t, got, tt.min)
			assert.LessOrEqual(t, got, tt.max)
		})
	}
}
