package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/resqsync/internal/common"
	"github.com/google/uuid"
)

// Observer receives one call per finished request. status is 0 when the
// request never got a response.
type Observer interface {
	ObserveRequest(endpoint string, status int, elapsed time.Duration)
}

type Option func(*HTTPClient)

// WithTimeout bounds every non-streaming request.
func WithTimeout(d time.Duration) Option {
	return func(c *HTTPClient) { c.timeout = d }
}

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *HTTPClient) { c.hc = hc }
}

// WithObserver installs a request observer (metrics).
func WithObserver(o Observer) Option {
	return func(c *HTTPClient) { c.observer = o }
}

type HTTPClient struct {
	baseURL  *url.URL
	hc       *http.Client
	tokens   TokenSource
	timeout  time.Duration
	observer Observer
}

// NewHTTPClient builds a client for baseURL. tokens may be nil when only
// public endpoints are used.
func NewHTTPClient(baseURL string, tokens TokenSource, opts ...Option) (*HTTPClient, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("base url %q: scheme must be http or https", baseURL)
	}

	c := &HTTPClient{baseURL: u, hc: &http.Client{}, tokens: tokens}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

var _ Client = (*HTTPClient)(nil)

type request struct {
	method string
	path   string
	query  url.Values
	body   any
	authed bool
	accept string
	stream bool
}

func (c *HTTPClient) endpointURL(path string, query url.Values) string {
	u := *c.baseURL
	u.Path = u.Path + path
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}
	return u.String()
}

// do sends r and returns the response with a 2xx status; any other status is
// turned into *Error and the body is closed. cancel must be called once
// the caller is done with the body.
func (c *HTTPClient) do(ctx context.Context, r request) (*http.Response, context.CancelFunc, error) {
	cancel := context.CancelFunc(func() {})
	if c.timeout > 0 && !r.stream {
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
	}

	var body io.Reader
	if r.body != nil {
		b, err := json.Marshal(r.body)
		if err != nil {
			cancel()
			return nil, nil, fmt.Errorf("marshal request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, r.method, c.endpointURL(r.path, r.query), body)
	if err != nil {
		cancel()
		return nil, nil, fmt.Errorf("create request: %w", err)
	}
	if r.body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	accept := r.accept
	if accept == "" {
		accept = "application/json"
	}
	req.Header.Set("Accept", accept)
	req.Header.Set(common.RequestIDHeaderName, uuid.NewString())

	if r.authed {
		if err := c.authorize(ctx, req); err != nil {
			cancel()
			return nil, nil, err
		}
	}

	endpoint := r.method + " " + r.path

	start := time.Now()
	resp, err := c.hc.Do(req)
	if err != nil {
		c.observe(endpoint, 0, start)
		cancel()
		if ctx.Err() != nil && !isDeadline(ctx) {
			return nil, nil, ctx.Err()
		}
		return nil, nil, fmt.Errorf("%s: %w: %v", endpoint, ErrUnavailable, err)
	}
	c.observe(endpoint, resp.StatusCode, start)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		resp.Body.Close()
		cancel()
		return nil, nil, &Error{Status: resp.StatusCode, Message: extractMessage(b)}
	}
	return resp, cancel, nil
}

func isDeadline(ctx context.Context) bool {
	return ctx.Err() == context.DeadlineExceeded
}

func (c *HTTPClient) authorize(ctx context.Context, req *http.Request) error {
	if c.tokens == nil {
		return fmt.Errorf("no token source: %w", ErrUnauthorized)
	}
	tok, err := c.tokens.Token(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnauthorized, err)
	}
	req.Header.Set(common.AuthorizationHeaderName, common.BearerPrefix+tok)
	return nil
}

func (c *HTTPClient) observe(endpoint string, status int, start time.Time) {
	if c.observer != nil {
		c.observer.ObserveRequest(endpoint, status, time.Since(start))
	}
}

// call sends r and decodes a JSON response into out (skipped when out is nil).
func (c *HTTPClient) call(ctx context.Context, r request, out any) error {
	resp, cancel, err := c.do(ctx, r)
	if err != nil {
		return err
	}
	defer cancel()
	defer resp.Body.Close()

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s response: %w", r.method, r.path, err)
	}
	return nil
}
