package moby

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

// Retry policy for rate-limited responses. The MobyGames API allows one
// request per second and answers 429 when pushed harder.
const (
	DefaultMaxAttempts = 5
	DefaultRetryDelay  = 1100 * time.Millisecond
)

// ErrMaxRetries is returned when every attempt of a request was answered
// with HTTP 429.
var ErrMaxRetries = errors.New("max retries reached")

// StatusError is a terminal non-200, non-429 response.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("request failed, status=%d", e.Code)
}

// Client issues GET requests against the metadata API, pacing them with a
// rate limiter and retrying on 429 with a fixed delay. Calls are blocking;
// the caller owns any threading. Fields may be adjusted before first use.
type Client struct {
	HTTPClient  *http.Client
	Limiter     *rate.Limiter // nil disables pacing
	MaxAttempts int
	RetryDelay  time.Duration
}

// NewClient returns a client with the default timeout, pacing, and retry
// policy.
func NewClient() *Client {
	return &Client{
		HTTPClient:  &http.Client{Timeout: 30 * time.Second},
		Limiter:     rate.NewLimiter(rate.Every(time.Second), 1),
		MaxAttempts: DefaultMaxAttempts,
		RetryDelay:  DefaultRetryDelay,
	}
}

// Get fetches url and returns the response body. HTTP 429 is retried up to
// MaxAttempts times with RetryDelay between attempts; any other non-200
// status fails immediately. Cancellation during the retry wait is terminal.
func (c *Client) Get(ctx context.Context, url string) ([]byte, error) {
	for attempt := 1; attempt <= c.MaxAttempts; attempt++ {
		if c.Limiter != nil {
			if err := c.Limiter.Wait(ctx); err != nil {
				return nil, fmt.Errorf("rate limiter: %w", err)
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}

		resp, err := c.HTTPClient.Do(req)
		if err != nil {
			return nil, fmt.Errorf("request: %w", err)
		}

		if resp.StatusCode == http.StatusOK {
			body, err := io.ReadAll(resp.Body)
			resp.Body.Close()
			if err != nil {
				return nil, fmt.Errorf("read body: %w", err)
			}
			return body, nil
		}

		resp.Body.Close()

		if resp.StatusCode != http.StatusTooManyRequests {
			return nil, &StatusError{Code: resp.StatusCode}
		}

		// Rate limited. Wait out the fixed delay before the next attempt,
		// unless this was the last one.
		if attempt < c.MaxAttempts {
			select {
			case <-time.After(c.RetryDelay):
			case <-ctx.Done():
				return nil, fmt.Errorf("interrupted during wait: %w", ctx.Err())
			}
		}
	}
	return nil, fmt.Errorf("%w after %d attempts", ErrMaxRetries, c.MaxAttempts)
}
