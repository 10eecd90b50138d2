// Package mailchimp provides a resilient Marketing API v3 client for the
// push pipeline. Requests are rate limited client side, retried on 429 and
// transient 5xx responses, and non-2xx replies surface as *APIError
package mailchimp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	perr "leadhopper/internal/platform/errors"
	"leadhopper/internal/platform/logger"
)

const (
	defaultTimeout   = 15 * time.Second
	defaultUA        = "leadhopper"
	defaultMaxRetry  = 4
	defaultRetryBase = 500 * time.Millisecond

	// Mailchimp allows 10 simultaneous connections per key; pacing a
	// little under that keeps concurrent workers out of 429 territory
	defaultRPS = 8.0

	maxBodyBytes = 1 << 20
)

// Options configures the Client
type Options struct {
	// APIKey is the Marketing API key including its datacenter suffix
	APIKey string

	// BaseURL overrides the datacenter-derived endpoint, mainly for tests
	BaseURL string

	UserAgent string
	Timeout   time.Duration

	// Retry config for transient and rate limited responses
	MaxRetries int
	RetryBase  time.Duration

	// RPS caps outgoing request rate across all workers sharing the client
	RPS float64
}

// Client is a minimal Marketing API client safe for concurrent use
type Client struct {
	http    *http.Client
	opts    Options
	baseURL string
	limiter *rate.Limiter
	log     logger.Logger
	now     func() time.Time
	sleep   func(time.Duration)
}

// New creates a Client, deriving the API host from the key's datacenter
func New(o Options) (*Client, error) {
	if o.UserAgent == "" {
		o.UserAgent = defaultUA
	}
	if o.Timeout <= 0 {
		o.Timeout = defaultTimeout
	}
	if o.MaxRetries <= 0 {
		o.MaxRetries = defaultMaxRetry
	}
	if o.RetryBase <= 0 {
		o.RetryBase = defaultRetryBase
	}
	if o.RPS <= 0 {
		o.RPS = defaultRPS
	}

	base := o.BaseURL
	if base == "" {
		dc, err := Datacenter(o.APIKey)
		if err != nil {
			return nil, err
		}
		base = fmt.Sprintf("https://%s.api.mailchimp.com/3.0", dc)
	}

	return &Client{
		http:    &http.Client{Timeout: o.Timeout},
		opts:    o,
		baseURL: base,
		limiter: rate.NewLimiter(rate.Limit(o.RPS), 1),
		log:     *logger.Named("mailchimp"),
		now:     time.Now,
		sleep:   time.Sleep,
	}, nil
}

// BaseURL returns the resolved API endpoint
func (c *Client) BaseURL() string { return c.baseURL }

// Do issues a request with auth, pacing, retries and rate limit handling.
// body is marshaled to JSON when non-nil. The caller owns resp.Body on success
func (c *Client) Do(ctx context.Context, method, path string, body any) (*http.Response, error) {
	url := c.baseURL + path

	var payload []byte
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, perr.Wrapf(err, perr.ErrorCodeUnknown, "mailchimp marshal body failed")
		}
		payload = b
	}

	attempts := 0
	for {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		var rd io.Reader
		if payload != nil {
			rd = bytes.NewReader(payload)
		}
		req, err := http.NewRequestWithContext(ctx, method, url, rd)
		if err != nil {
			return nil, perr.Wrapf(err, perr.ErrorCodeUnknown, "mailchimp new request failed")
		}
		req.Header.Set("User-Agent", c.opts.UserAgent)
		req.Header.Set("Accept", "application/json")
		if payload != nil {
			req.Header.Set("Content-Type", "application/json")
		}
		// Any username works, the key carries the identity
		req.SetBasicAuth("anystring", c.opts.APIKey)

		start := c.now()
		resp, err := c.http.Do(req)
		lat := c.now().Sub(start)

		if err != nil {
			if !c.shouldRetry(attempts) {
				return nil, perr.Wrapf(err, perr.ErrorCodeUnavailable, "mailchimp do failed")
			}
			back := c.backoff(attempts)
			c.log.Warn().Dur("retry_in", back).Int("attempt", attempts).Msg("mailchimp transport error retrying")
			c.sleep(back)
			attempts++
			continue
		}

		c.log.Debug().
			Str("method", method).
			Str("path", path).
			Int("status", resp.StatusCode).
			Int("attempt", attempts).
			Dur("latency", lat).
			Msg("mailchimp http response")

		switch {
		case resp.StatusCode >= 200 && resp.StatusCode < 300:
			return resp, nil

		case resp.StatusCode == http.StatusTooManyRequests:
			wait := retryAfter(resp.Header)
			if wait <= 0 {
				wait = c.backoff(attempts)
			}
			if !c.shouldRetry(attempts) {
				apiErr := parseAPIError(resp)
				return nil, apiErr
			}
			c.log.Warn().Dur("sleep", wait).Str("path", path).Msg("mailchimp rate limited backing off")
			_ = drainAndClose(resp.Body)
			c.sleep(wait)
			attempts++
			continue

		case resp.StatusCode >= 500:
			if !c.shouldRetry(attempts) {
				return nil, parseAPIError(resp)
			}
			back := c.backoff(attempts)
			c.log.Warn().Dur("retry_in", back).Int("attempt", attempts).Int("status", resp.StatusCode).
				Msg("mailchimp transient error retrying")
			_ = drainAndClose(resp.Body)
			c.sleep(back)
			attempts++
			continue

		default:
			return nil, parseAPIError(resp)
		}
	}
}

// parseAPIError consumes and closes the body, returning a typed error.
// Bodies that are not problem+json fall back to the status line
func parseAPIError(resp *http.Response) *APIError {
	defer func() { _ = resp.Body.Close() }()

	apiErr := &APIError{Status: resp.StatusCode, Title: http.StatusText(resp.StatusCode)}
	b, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil || len(b) == 0 {
		return apiErr
	}
	var parsed APIError
	if jerr := json.Unmarshal(b, &parsed); jerr != nil || parsed.Status == 0 {
		apiErr.Detail = truncate(string(b), 512)
		return apiErr
	}
	return &parsed
}

// retryAfter reads the Retry-After header in seconds
func retryAfter(h http.Header) time.Duration {
	s := h.Get("Retry-After")
	if s == "" {
		return 0
	}
	var sec int
	if _, err := fmt.Sscanf(s, "%d", &sec); err != nil || sec <= 0 {
		return 0
	}
	return time.Duration(sec) * time.Second
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}

func (c *Client) backoff(attempt int) time.Duration {
	d := c.opts.RetryBase
	// simple exponential with cap
	ms := int64(d / time.Millisecond)
	ms = ms << uint(attempt)
	max := int64(30 * time.Second / time.Millisecond)
	if ms > max {
		ms = max
	}
	return time.Duration(ms) * time.Millisecond
}

func (c *Client) shouldRetry(attempt int) bool {
	return attempt < c.opts.MaxRetries
}

// decode unmarshals a response body and closes it
func (c *Client) decode(resp *http.Response, out any) error {
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			c.log.Error().Err(cerr).Msg("mailchimp close body failed")
		}
	}()
	b, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return err
	}
	if out == nil || len(b) == 0 {
		return nil
	}
	return json.Unmarshal(b, out)
}
