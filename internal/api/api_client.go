// Package api is the HTTP client for the remote e-leave service:
// authentication, the user profile, and leave CRUD. Every request carries
// the stored bearer credential, attached by a transport interceptor.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"
)

const maxResponseBytes = 1 << 20

// TokenSource yields the current access credential. An error means "not
// logged in" and the request goes out anonymous.
type TokenSource interface {
	Access(ctx context.Context) (string, error)
}

type Client struct {
	baseURL string
	httpc   *http.Client
	limiter *rate.Limiter
	sf      singleflight.Group
	logger  *zap.Logger
}

type Option func(*Client)

// WithHTTPClient swaps the underlying client; the bearer interceptor wraps
// whatever transport it carries.
func WithHTTPClient(httpc *http.Client) Option {
	return func(c *Client) { c.httpc = httpc }
}

func New(baseURL string, tokens TokenSource, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{Timeout: 30 * time.Second},
		// polite ceiling so table refreshes cannot hammer the server
		limiter: rate.NewLimiter(rate.Limit(10), 10),
		logger:  zap.L().Named("api.client"),
	}
	for _, opt := range opts {
		opt(c)
	}
	next := c.httpc.Transport
	if next == nil {
		next = http.DefaultTransport
	}
	wrapped := *c.httpc
	wrapped.Transport = &bearerTransport{next: next, tokens: tokens}
	c.httpc = &wrapped
	return c
}

func (c *Client) url(path string) string {
	return c.baseURL + path
}

// do issues one request and decodes a 2xx JSON body into out (when out is
// non-nil and the body is non-empty). Non-2xx responses and transport
// failures come back classified, see api_errors.go.
func (c *Client) do(ctx context.Context, method, path string, body io.Reader, header http.Header, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, method, c.url(path), body)
	if err != nil {
		return err
	}
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}

	res, err := c.httpc.Do(req)
	if err != nil {
		c.logger.Warn("request failed", zap.String("method", method), zap.String("path", path), zap.Error(err))
		return transportError(err)
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(res.Body, maxResponseBytes))
	if err != nil {
		return transportError(err)
	}

	c.logger.Debug("request done",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", res.StatusCode),
	)

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return serverError(res.StatusCode, raw)
	}
	if out != nil && len(raw) > 0 {
		if err := json.Unmarshal(raw, out); err != nil {
			return err
		}
	}
	return nil
}

func (c *Client) doJSON(ctx context.Context, method, path string, in, out any) error {
	b, err := json.Marshal(in)
	if err != nil {
		return err
	}
	header := http.Header{}
	header.Set("Content-Type", "application/json")
	return c.do(ctx, method, path, bytes.NewReader(b), header, out)
}
