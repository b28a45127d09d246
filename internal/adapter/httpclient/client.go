package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"

	"roomscout/internal/pkg/config"
	"roomscout/internal/pkg/errs"
)

// ErrUpstreamRequest is the single terminal error every exhausted or
// non-retryable upstream call collapses into; callers never branch on raw
// transport error kinds.
var ErrUpstreamRequest = errors.New("upstream request failed")

var retryableStatuses = map[int]bool{
	http.StatusTooManyRequests:     true,
	http.StatusInternalServerError: true,
	http.StatusBadGateway:          true,
	http.StatusServiceUnavailable:  true,
	http.StatusGatewayTimeout:      true,
}

// Request describes one logical upstream call. Bodies are declared, not
// streamed, so an attempt can be rebuilt for every retry.
type Request struct {
	Method  string
	URL     string
	Header  map[string]string
	Cookies []*http.Cookie
	Form    url.Values // form-encoded body
	JSON    any        // JSON body; Form takes precedence when both are set
}

// Response is a fully-buffered upstream reply.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

func (r *Response) Cookies() []*http.Cookie {
	dummy := http.Response{Header: r.Header}
	return dummy.Cookies()
}

// Client issues upstream calls with bounded retry: retryable statuses
// (429/5xx subset) and network-level failures are retried under one budget
// with a linearly growing pause, everything else fails immediately. It is
// the only place retry policy lives, shared by every network-bound adapter.
//
// The underlying http.Client and its connection pool are process-lifetime
// and safe for concurrent use across requests and adapters.
type Client struct {
	hc         *http.Client
	maxRetries int
	backoff    time.Duration
}

func New(cfg config.UpstreamConfig) *Client {
	return &Client{
		hc:         &http.Client{Timeout: cfg.Timeout},
		maxRetries: cfg.MaxRetries,
		backoff:    cfg.Backoff,
	}
}

// NewWithHTTPClient keeps the retry policy but swaps the transport; tests use
// it to point at httptest servers with short timeouts.
func NewWithHTTPClient(hc *http.Client, maxRetries int, pause time.Duration) *Client {
	return &Client{hc: hc, maxRetries: maxRetries, backoff: pause}
}

// Send performs the call with the client's retry budget. The returned error,
// when non-nil, always matches ErrUpstreamRequest via errors.Is.
func (c *Client) Send(ctx context.Context, req Request) (*Response, error) {
	operation := func() (*Response, error) {
		return c.attempt(ctx, req)
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(&linearBackOff{interval: c.backoff}, uint64(c.maxRetries)),
		ctx,
	)

	resp, err := backoff.RetryWithData(operation, policy)
	if err != nil {
		return nil, errs.Mark(errs.Wrap(err, "upstream call exhausted"), ErrUpstreamRequest)
	}
	return resp, nil
}

func (c *Client) attempt(ctx context.Context, req Request) (*Response, error) {
	httpReq, err := buildHTTPRequest(ctx, req)
	if err != nil {
		return nil, backoff.Permanent(err)
	}

	resp, err := c.hc.Do(httpReq)
	if err != nil {
		// Network-level failures (connect, timeout, write) are retryable.
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if retryableStatuses[resp.StatusCode] {
		return nil, errs.Newf("retryable upstream status %d", resp.StatusCode)
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return nil, backoff.Permanent(errs.Newf("upstream status %d", resp.StatusCode))
	}

	return &Response{StatusCode: resp.StatusCode, Header: resp.Header, Body: body}, nil
}

func buildHTTPRequest(ctx context.Context, req Request) (*http.Request, error) {
	var (
		body        io.Reader
		contentType string
	)

	switch {
	case req.Form != nil:
		body = strings.NewReader(req.Form.Encode())
		contentType = "application/x-www-form-urlencoded"
	case req.JSON != nil:
		payload, err := json.Marshal(req.JSON)
		if err != nil {
			return nil, err
		}
		body = bytes.NewReader(payload)
		contentType = "application/json"
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, req.URL, body)
	if err != nil {
		return nil, err
	}
	if contentType != "" {
		httpReq.Header.Set("Content-Type", contentType)
	}
	for k, v := range req.Header {
		httpReq.Header.Set(k, v)
	}
	for _, ck := range req.Cookies {
		httpReq.AddCookie(ck)
	}
	return httpReq, nil
}

// linearBackOff sleeps interval * attemptNumber between retries: 200ms after
// the first failure, 400ms after the second, and so on.
type linearBackOff struct {
	interval time.Duration
	attempts int
}

func (b *linearBackOff) NextBackOff() time.Duration {
	b.attempts++
	return b.interval * time.Duration(b.attempts)
}

func (b *linearBackOff) Reset() {
	b.attempts = 0
}
