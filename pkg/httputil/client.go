package httputil

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"io"
	"net/http"
	"time"

	"github.com/matzehuels/orgchart/pkg/cache"
	"github.com/matzehuels/orgchart/pkg/errors"
)

// DefaultTimeout bounds a single request.
const DefaultTimeout = 10 * time.Second

// Client performs JSON requests with shared headers, retry and caching.
type Client struct {
	http    *http.Client
	cache   cache.Cache
	headers map[string]string
	backoff Backoff
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithCache enables response caching for [Client.Cached].
func WithCache(cc cache.Cache) Option {
	return func(c *Client) { c.cache = cc }
}

// WithHeader sets a header sent with every request.
func WithHeader(key, value string) Option {
	return func(c *Client) { c.headers[key] = value }
}

// WithBearerToken sends "Authorization: Bearer <token>". An empty token is ignored.
func WithBearerToken(token string) Option {
	return func(c *Client) {
		if token != "" {
			c.headers["Authorization"] = "Bearer " + token
		}
	}
}

// WithRetry sets the attempt count and initial backoff delay.
func WithRetry(attempts int, delay time.Duration) Option {
	return func(c *Client) {
		c.backoff.Attempts = attempts
		c.backoff.Delay = delay
	}
}

// NewClient creates a Client. Without options it uses a 10s timeout, no
// cache and [DefaultBackoff].
func NewClient(opts ...Option) *Client {
	c := &Client{
		http:    &http.Client{Timeout: DefaultTimeout},
		cache:   cache.NewNullCache(),
		headers: map[string]string{"Accept": "application/json"},
		backoff: DefaultBackoff,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Cached loads key from the cache into v, or runs fetch and stores v on
// success. If refresh is true the cache is bypassed.
func (c *Client) Cached(ctx context.Context, key string, ttl time.Duration, refresh bool, v any, fetch func(ctx context.Context) error) error {
	if !refresh {
		if ok, _ := cache.GetJSON(ctx, c.cache, key, v); ok {
			return nil
		}
	}
	if err := fetch(ctx); err != nil {
		return err
	}
	_ = cache.SetJSON(ctx, c.cache, key, v, ttl)
	return nil
}

// GetJSON performs a GET and decodes the JSON response into v, retrying
// transient failures.
func (c *Client) GetJSON(ctx context.Context, url string, v any) error {
	return c.backoff.Do(ctx, func() error {
		body, err := c.do(ctx, url)
		if err != nil {
			return err
		}
		defer body.Close()
		if err := json.NewDecoder(body).Decode(v); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode %s", url)
		}
		return nil
	})
}

func (c *Client) do(ctx context.Context, url string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "build request")
	}
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, errors.Wrap(errors.ErrCodeTimeout, err, "GET %s", url)
		}
		return nil, Transient(errors.Wrap(errors.ErrCodeNetwork, err, "GET %s", url))
	}
	if err := CheckStatus(resp.StatusCode, url); err != nil {
		resp.Body.Close()
		var t *TransientError
		if stderrors.As(err, &t) {
			t.After = retryAfter(resp.Header)
		}
		return nil, err
	}
	return resp.Body, nil
}

// CheckStatus maps an HTTP status code to a coded error. Rate limits and
// server errors come back as [TransientError].
func CheckStatus(code int, url string) error {
	switch {
	case code >= 200 && code < 300:
		return nil
	case code == http.StatusNotFound:
		return errors.New(errors.ErrCodeNotFound, "GET %s: status %d", url, code)
	case code == http.StatusUnauthorized || code == http.StatusForbidden:
		return errors.New(errors.ErrCodeUnauthorized, "GET %s: status %d", url, code)
	case code == http.StatusTooManyRequests:
		return Transient(errors.New(errors.ErrCodeRateLimited, "GET %s: status %d", url, code))
	case code >= 500:
		return Transient(errors.New(errors.ErrCodeNetwork, "GET %s: status %d", url, code))
	default:
		return errors.New(errors.ErrCodeNetwork, "GET %s: status %d", url, code)
	}
}
