package fetch

import (
	"net/http"
	"time"
)

// Response is a completed round trip. The body has already been read and the
// underlying connection released.
type Response struct {
	// Status is the HTTP status code.
	Status int

	// StatusText is the reason phrase for Status.
	StatusText string

	// Proto is the protocol version, e.g. "HTTP/1.1".
	Proto string

	Header http.Header
	Body   []byte

	// URL is the final URL after redirects.
	URL string

	// Redirected is true when URL differs from the endpoint.
	Redirected bool

	// Duration covers the request and the body read.
	Duration time.Duration
}

// Text returns the body as a string.
func (r *Response) Text() string {
	return string(r.Body)
}

// Success reports whether Status is in the 2xx range.
func (r *Response) Success() bool {
	return r.Status/100 == 2
}
