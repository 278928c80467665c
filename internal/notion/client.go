// Package notion implements a thin client for the Notion REST API covering
// the operations notionctl needs: page search, block children retrieval,
// page creation, and block appends.
//
// Requests authenticate with an integration secret as a bearer token and
// pin the API contract with the Notion-Version header. Transient failures
// (429 and 5xx) are retried with exponential backoff, honoring the server's
// Retry-After hint when one is provided.
package notion

import (
	"context"
	"strconv"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

const (
	// DefaultBaseURL is the Notion API root.
	DefaultBaseURL = "https://api.notion.com/v1"

	// DefaultAPIVersion is the pinned Notion-Version header value.
	DefaultAPIVersion = "2022-06-28"

	// UserAgent identifies notionctl in outgoing requests.
	UserAgent = "notionctl REST client"

	defaultTimeout = 30 * time.Second
	maxElapsed     = 2 * time.Minute
)

// Client is a Notion API client. It is safe for concurrent use.
type Client struct {
	rc     *resty.Client
	logger *zap.Logger
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithBaseURL overrides the API root, typically for tests.
func WithBaseURL(u string) ClientOption {
	return func(c *Client) {
		c.rc.SetBaseURL(u)
	}
}

// WithAPIVersion overrides the Notion-Version header.
func WithAPIVersion(v string) ClientOption {
	return func(c *Client) {
		c.rc.SetHeader("Notion-Version", v)
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		c.rc.SetTimeout(d)
	}
}

// WithLogger sets the structured logger used for request debug logging.
func WithLogger(l *zap.Logger) ClientOption {
	return func(c *Client) {
		c.logger = l
	}
}

// NewClient creates a Client authenticated with the given integration secret.
func NewClient(secret string, opts ...ClientOption) *Client {
	rc := resty.New().
		SetBaseURL(DefaultBaseURL).
		SetAuthToken(secret).
		SetTimeout(defaultTimeout).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json").
		SetHeader("User-Agent", UserAgent).
		SetHeader("Notion-Version", DefaultAPIVersion)

	c := &Client{
		rc:     rc,
		logger: zap.NewNop(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// hintedBackOff wraps an exponential policy and stretches the next interval
// to at least the server-provided Retry-After hint.
type hintedBackOff struct {
	backoff.BackOff
	hint time.Duration
}

func (b *hintedBackOff) NextBackOff() time.Duration {
	d := b.BackOff.NextBackOff()
	if d != backoff.Stop && b.hint > d {
		d = b.hint
	}
	b.hint = 0
	return d
}

// do executes a single API request with retries. body may be nil for GET
// requests; out, when non-nil, receives the decoded JSON response.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = 500 * time.Millisecond
	exp.MaxElapsedTime = maxElapsed
	bo := &hintedBackOff{BackOff: exp}

	attempt := 0
	op := func() error {
		attempt++
		req := c.rc.R().SetContext(ctx)
		if body != nil {
			req.SetBody(body)
		}
		if out != nil {
			req.SetResult(out)
		}

		start := time.Now()
		res, err := req.Execute(method, path)
		if err != nil {
			c.logger.Debug("notion request failed",
				zap.String("method", method),
				zap.String("path", path),
				zap.Int("attempt", attempt),
				zap.Error(err))
			return err
		}

		c.logger.Debug("notion request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", res.StatusCode()),
			zap.Int("attempt", attempt),
			zap.Duration("elapsed", time.Since(start)))

		if res.IsError() {
			apiErr := newAPIError(res)
			if !retryable(res.StatusCode()) {
				return backoff.Permanent(apiErr)
			}
			if after := retryAfter(res); after > 0 {
				bo.hint = after
			}
			return apiErr
		}

		return nil
	}

	return backoff.Retry(op, backoff.WithContext(bo, ctx))
}

// retryable reports whether a status code is worth retrying.
func retryable(code int) bool {
	return code == 429 || code >= 500
}

// retryAfter parses the Retry-After header as a number of seconds.
func retryAfter(res *resty.Response) time.Duration {
	v := res.Header().Get("Retry-After")
	if v == "" {
		return 0
	}
	secs, err := strconv.ParseFloat(v, 64)
	if err != nil || secs <= 0 {
		return 0
	}
	return time.Duration(secs * float64(time.Second))
}
