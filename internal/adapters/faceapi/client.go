// Package faceapi provides a resilient client for the Azure Face liveness session API
package faceapi

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	perr "liveness/internal/platform/errors"
	"liveness/internal/platform/logger"
)

const (
	apiVersionPath   = "/face/v1.2"
	defaultTimeout   = 15 * time.Second
	defaultUA        = "liveness-mcp"
	defaultMaxRetry  = 3
	defaultRetryBase = 250 * time.Millisecond
	maxBackoff       = 10 * time.Second

	headerKey = "Ocp-Apim-Subscription-Key"
)

// Options configures the Client
type Options struct {
	// Endpoint is the resource name (e.g. "my-face") or a full base URL with scheme
	Endpoint string
	Key      string
	// Website is the public liveness web app that mints short links
	Website   string
	UserAgent string
	Timeout   time.Duration

	// Retry config for transient and throttled responses
	MaxRetries int
	RetryBase  time.Duration
}

// Client is a minimal Face API client with retries on transient failures
type Client struct {
	http  *http.Client
	opts  Options
	base  string
	log   logger.Logger
	now   func() time.Time
	sleep func(context.Context, time.Duration) error
}

// NewClient creates a new Client with sane defaults
func NewClient(o Options) *Client {
	if o.UserAgent == "" {
		o.UserAgent = defaultUA
	}
	if o.Timeout <= 0 {
		o.Timeout = defaultTimeout
	}
	if o.MaxRetries < 0 {
		o.MaxRetries = 0
	} else if o.MaxRetries == 0 {
		o.MaxRetries = defaultMaxRetry
	}
	if o.RetryBase <= 0 {
		o.RetryBase = defaultRetryBase
	}
	return &Client{
		http:  &http.Client{Timeout: o.Timeout},
		opts:  o,
		base:  BaseURL(o.Endpoint),
		log:   *logger.Named("faceapi"),
		now:   time.Now,
		sleep: sleepCtx,
	}
}

// BaseURL expands a resource name into the regional Cognitive Services host
// Values that already carry a scheme are used verbatim
func BaseURL(endpoint string) string {
	e := strings.TrimSpace(endpoint)
	if e == "" {
		return ""
	}
	if strings.Contains(e, "://") {
		return strings.TrimRight(e, "/")
	}
	return "https://" + e + ".cognitiveservices.azure.com"
}

// Configured reports whether the endpoint, key and website are all set
func (c *Client) Configured() bool {
	return c.base != "" && c.opts.Key != "" && c.opts.Website != ""
}

// Website returns the configured public website base
func (c *Client) Website() string { return c.opts.Website }

// retryPolicy says which failures a request may replay
type retryPolicy int

const (
	// retryTransient replays transport errors, throttling and transient 5xx
	retryTransient retryPolicy = iota
	// retryThrottled replays only 429 and 503, where the server did no work
	retryThrottled
	// retryNever sends the request once
	retryNever
)

type request struct {
	method      string
	url         string
	contentType string
	body        []byte
	header      http.Header
	retry       retryPolicy
}

// do issues req and replays it as its retry policy allows
// The body is buffered so every attempt replays it
func (c *Client) do(ctx context.Context, r request) (*http.Response, error) {
	attempts := 0
	for {
		if err := ctx.Err(); err != nil {
			return nil, perr.Wrap(err, perr.ErrorCodeCancelled, "faceapi request cancelled")
		}

		var body io.Reader
		if r.body != nil {
			body = bytes.NewReader(r.body)
		}
		req, err := http.NewRequestWithContext(ctx, r.method, r.url, body)
		if err != nil {
			return nil, perr.Wrapf(err, perr.ErrorCodeUnknown, "faceapi new request failed")
		}
		req.Header.Set("User-Agent", c.opts.UserAgent)
		if r.contentType != "" {
			req.Header.Set("Content-Type", r.contentType)
		}
		for k, vs := range r.header {
			for _, v := range vs {
				req.Header.Add(k, v)
			}
		}

		start := c.now()
		resp, err := c.http.Do(req)
		lat := c.now().Sub(start)

		if err != nil {
			if ctx.Err() != nil {
				return nil, perr.Wrap(err, perr.ErrorCodeCancelled, "faceapi request cancelled")
			}
			if !c.shouldRetry(r.retry, attempts, 0) {
				return nil, perr.Wrapf(err, perr.ErrorCodeUnavailable, "faceapi do failed")
			}
			back := c.backoff(attempts)
			c.log.Warn().Err(err).Dur("retry_in", back).Int("attempt", attempts).Msg("faceapi transport error retrying")
			if err := c.sleep(ctx, back); err != nil {
				return nil, perr.Wrap(err, perr.ErrorCodeCancelled, "faceapi request cancelled")
			}
			attempts++
			continue
		}

		c.log.Debug().
			Str("method", r.method).
			Str("path", req.URL.Path).
			Int("status", resp.StatusCode).
			Int("attempt", attempts).
			Dur("latency", lat).
			Msg("faceapi http response")

		switch {
		case resp.StatusCode >= 200 && resp.StatusCode < 300:
			return resp, nil
		case isTransient(resp.StatusCode):
			wait := retryAfter(resp.Header)
			if wait <= 0 {
				wait = c.backoff(attempts)
			}
			if !c.shouldRetry(r.retry, attempts, resp.StatusCode) {
				_ = drainAndClose(resp.Body)
				code := perr.ErrorCodeUnavailable
				if resp.StatusCode == http.StatusTooManyRequests {
					code = perr.ErrorCodeTooManyRequests
				}
				return nil, perr.Wrapf(&StatusError{Status: resp.StatusCode}, code, "faceapi transient status %d", resp.StatusCode)
			}
			c.log.Warn().Int("status", resp.StatusCode).Dur("retry_in", wait).Int("attempt", attempts).Msg("faceapi transient error retrying")
			_ = drainAndClose(resp.Body)
			if err := c.sleep(ctx, wait); err != nil {
				return nil, perr.Wrap(err, perr.ErrorCodeCancelled, "faceapi request cancelled")
			}
			attempts++
			continue
		default:
			// read a small tail for diagnostics then return
			b, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
			_ = resp.Body.Close()
			se := &StatusError{Status: resp.StatusCode, Body: string(b)}
			return nil, perr.Wrapf(se, codeForStatus(resp.StatusCode), "faceapi unexpected status %d", resp.StatusCode)
		}
	}
}

func (c *Client) faceHeader() http.Header {
	h := http.Header{}
	h.Set(headerKey, c.opts.Key)
	return h
}

func (c *Client) backoff(attempt int) time.Duration {
	// exponential with cap
	if attempt > 20 {
		return maxBackoff
	}
	d := c.opts.RetryBase << uint(attempt)
	if d <= 0 || d > maxBackoff {
		return maxBackoff
	}
	return d
}

// shouldRetry decides on a replay; status is zero for transport errors
func (c *Client) shouldRetry(p retryPolicy, attempt, status int) bool {
	if attempt >= c.opts.MaxRetries {
		return false
	}
	switch p {
	case retryNever:
		return false
	case retryThrottled:
		return status == http.StatusTooManyRequests || status == http.StatusServiceUnavailable
	}
	return true
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
