package http

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/fwojciec/pagemd"
)

// MaxBodySize is the default cap on the bytes of a single response.
const MaxBodySize = 32 << 20

// DefaultAcceptLanguage prefers Chinese with English fallback.
const DefaultAcceptLanguage = "zh-CN,zh;q=0.9,en;q=0.8"

// Option configures a Fetcher or ImageFetcher.
type Option func(*client)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to 30s if not specified.
func WithTimeout(d time.Duration) Option {
	return func(c *client) {
		c.timeout = d
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) Option {
	return func(c *client) {
		c.userAgent = ua
	}
}

// WithClient replaces the underlying HTTP client. The client's own
// timeout applies in addition to WithTimeout.
func WithClient(hc *http.Client) Option {
	return func(c *client) {
		c.hc = hc
	}
}

// WithMaxBodySize sets the largest response body accepted. Larger bodies
// fail instead of being truncated.
func WithMaxBodySize(n int64) Option {
	return func(c *client) {
		c.maxBody = n
	}
}

type client struct {
	hc        *http.Client
	timeout   time.Duration
	userAgent string
	maxBody   int64
}

func newClient(opts []Option) *client {
	c := &client{
		timeout:   30 * time.Second,
		userAgent: pagemd.DefaultUserAgent,
		maxBody:   MaxBodySize,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.hc == nil {
		c.hc = &http.Client{}
	}
	return c
}

// get performs a GET with the shared headers and returns the body of a
// 2xx response. Redirects are followed by the client.
func (c *client) get(ctx context.Context, url string, header http.Header) (*http.Response, []byte, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, nil, pagemd.Errorf(pagemd.EINVALID, "invalid URL %q: %v", url, err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	for k, v := range header {
		req.Header[k] = v
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, nil, classify(ctx, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, nil, pagemd.Errorf(pagemd.EHTTP, "HTTP %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBody+1))
	if err != nil {
		return nil, nil, classify(ctx, err)
	}
	if int64(len(body)) > c.maxBody {
		return nil, nil, pagemd.Errorf(pagemd.EHTTP, "response body exceeds %d bytes", c.maxBody)
	}
	return resp, body, nil
}

// classify maps transport errors onto timeout and network codes.
func classify(ctx context.Context, err error) error {
	var ne net.Error
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) ||
		(errors.As(err, &ne) && ne.Timeout()) {
		return pagemd.Errorf(pagemd.ETIMEOUT, "request timed out")
	}
	return &networkError{err: err}
}

// networkError keeps the transport error reachable for errors.Is while
// reporting the ENETWORK code.
type networkError struct {
	err error
}

func (e *networkError) Error() string {
	return fmt.Sprintf("network error: %v", e.err)
}

func (e *networkError) Unwrap() []error {
	return []error{pagemd.Errorf(pagemd.ENETWORK, "%v", e.err), e.err}
}
