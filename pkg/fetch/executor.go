package fetch

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Executor issues requests against a single endpoint.
// It holds no mutable state and is safe for concurrent use.
type Executor struct {
	endpoint string
	client   HTTPClient
}

// Option configures optional behavior of an Executor.
type Option func(*Executor)

// WithHTTPClient sets the client used to perform requests.
// If not provided, a *http.Client without a timeout is used.
func WithHTTPClient(client HTTPClient) Option {
	return func(e *Executor) {
		if client != nil {
			e.client = client
		}
	}
}

// New creates an Executor for endpoint. The endpoint is stored verbatim; a
// malformed URL is reported by the first call that uses it.
func New(endpoint string, opts ...Option) *Executor {
	e := &Executor{
		endpoint: endpoint,
		client:   &http.Client{},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Endpoint returns the URL every request is sent to.
func (e *Executor) Endpoint() string {
	return e.endpoint
}

// Do performs one request and reads the whole response body.
// Any returned error is an *Error. A non-2xx status is not an error.
func (e *Executor) Do(ctx context.Context, opts Options) (*Response, error) {
	o, err := opts.normalized()
	if err != nil {
		return nil, err
	}
	if o.Cache == CacheOnlyIfCached {
		return nil, newErrorf(KindPolicy, "no cached response for %s", e.endpoint)
	}

	var body io.Reader
	if len(o.Body) > 0 {
		body = bytes.NewReader(o.Body)
	}

	req, err := http.NewRequestWithContext(ctx, o.Method, e.endpoint, body)
	if err != nil {
		return nil, newError(KindInvalidRequest, err)
	}
	o.applyHeaders(req.Header)

	start := time.Now()
	resp, err := e.client.Do(req)
	if err != nil {
		return nil, wrapTransportError(err)
	}
	if resp == nil {
		return nil, newErrorf(KindTransport, "client returned no response")
	}

	var data []byte
	if resp.Body != nil {
		data, err = io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			return nil, wrapTransportError(err)
		}
	}

	final := req.URL
	if resp.Request != nil && resp.Request.URL != nil {
		final = resp.Request.URL
	}
	if o.Mode == ModeSameOrigin && !sameOrigin(req.URL, final) {
		return nil, newErrorf(KindPolicy, "redirected to %s outside origin of %s", final, e.endpoint)
	}

	return &Response{
		Status:     resp.StatusCode,
		StatusText: http.StatusText(resp.StatusCode),
		Proto:      resp.Proto,
		Header:     resp.Header,
		Body:       data,
		URL:        final.String(),
		Redirected: final.String() != req.URL.String(),
		Duration:   time.Since(start),
	}, nil
}

// Execute performs one request like Do and always settles into a Result.
func (e *Executor) Execute(ctx context.Context, opts Options) Result {
	return newResult(e.Do(ctx, opts))
}

func sameOrigin(a, b *url.URL) bool {
	return strings.EqualFold(a.Scheme, b.Scheme) &&
		strings.EqualFold(a.Hostname(), b.Hostname()) &&
		effectivePort(a) == effectivePort(b)
}

// effectivePort returns the URL's port, or the scheme default when omitted.
func effectivePort(u *url.URL) string {
	if p := u.Port(); p != "" {
		return p
	}
	switch strings.ToLower(u.Scheme) {
	case "http":
		return "80"
	case "https":
		return "443"
	}
	return ""
}
