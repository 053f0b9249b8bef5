package providers

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/sethvargo/go-retry"
	"golang.org/x/time/rate"
)

const (
	userAgent       = "Lyricsolid/1.0"
	maxResponseSize = 5 << 20 // 5MB
	defaultBackoff  = 500 * time.Millisecond
)

// StatusError is returned when a remote service keeps answering with a retryable status.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	if e.StatusCode == http.StatusTooManyRequests {
		return fmt.Sprintf("rate limited by %s (status %d)", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("request to %s failed with status %d", e.URL, e.StatusCode)
}

type response struct {
	StatusCode int
	Body       []byte
	URL        string // Final URL after redirects
}

// httpClient wraps http.Client with outbound pacing and retries. Timeout and
// retry count are fixed when the client is built.
type httpClient struct {
	client  *http.Client
	limiter *rate.Limiter
	retries int
	backoff time.Duration
}

func newHTTPClient(timeout time.Duration, retries int, requestsPerSecond float64) *httpClient {
	limit := rate.Inf
	if requestsPerSecond > 0 {
		limit = rate.Limit(requestsPerSecond)
	}
	if retries < 0 {
		retries = 0
	}
	return &httpClient{
		client: &http.Client{
			Timeout: timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 10 {
					return fmt.Errorf("too many redirects")
				}
				return nil
			},
		},
		limiter: rate.NewLimiter(limit, 1),
		retries: retries,
		backoff: defaultBackoff,
	}
}

// get performs a GET request. Network errors, 429 and 5xx answers are retried;
// any other status is handed back to the caller.
func (c *httpClient) get(ctx context.Context, rawURL string, header http.Header) (*response, error) {
	var result *response
	backoff := retry.WithMaxRetries(uint64(c.retries), retry.NewConstant(c.backoff))
	attempt := 0

	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		attempt++
		if err := c.limiter.Wait(ctx); err != nil {
			return err
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
		if err != nil {
			return fmt.Errorf("failed to create request: %w", err)
		}
		for key, values := range header {
			for _, v := range values {
				req.Header.Add(key, v)
			}
		}
		req.Header.Set("User-Agent", userAgent)

		resp, err := c.client.Do(req)
		if err != nil {
			slog.Debug("Request failed", "url", rawURL, "attempt", attempt, "error", err)
			return retry.RetryableError(fmt.Errorf("failed to make request: %w", err))
		}
		defer resp.Body.Close()

		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= http.StatusInternalServerError {
			slog.Debug("Retryable status", "url", rawURL, "attempt", attempt, "status", resp.StatusCode)
			return retry.RetryableError(&StatusError{URL: rawURL, StatusCode: resp.StatusCode})
		}

		body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
		if err != nil {
			return retry.RetryableError(fmt.Errorf("failed to read response: %w", err))
		}

		result = &response{
			StatusCode: resp.StatusCode,
			Body:       body,
			URL:        resp.Request.URL.String(),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
