package fetch

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"syscall"
)

// Kind classifies why a request failed.
type Kind string

const (
	// KindInvalidRequest means the request could not be built from the
	// endpoint and options (malformed URL, body on GET, unknown mode).
	KindInvalidRequest Kind = "invalid_request"

	// KindPolicy means the request or its response violated the selected
	// mode or cache directive.
	KindPolicy Kind = "policy"

	KindDNS               Kind = "dns"
	KindConnectionRefused Kind = "connection_refused"
	KindTimeout           Kind = "timeout"
	KindCanceled          Kind = "canceled"

	// KindTransport covers every other failure reported by the transport.
	KindTransport Kind = "transport"
)

// Error is a failed request. Err holds the underlying cause, if any.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

func newError(kind Kind, err error) *Error {
	return &Error{Kind: kind, Message: err.Error(), Err: err}
}

func newErrorf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// classify maps a transport error onto a Kind.
func classify(err error) Kind {
	if errors.Is(err, context.Canceled) {
		return KindCanceled
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return KindTimeout
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return KindDNS
	}
	if errors.Is(err, syscall.ECONNREFUSED) {
		return KindConnectionRefused
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return KindTimeout
	}
	return KindTransport
}

// wrapTransportError strips the *url.Error envelope so messages do not repeat
// the method and endpoint, which the caller already knows.
func wrapTransportError(err error) *Error {
	kind := classify(err)
	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Err != nil {
		return &Error{Kind: kind, Message: urlErr.Err.Error(), Err: err}
	}
	return newError(kind, err)
}

// KindOf returns the Kind of err if it is or wraps an *Error, and the empty
// Kind otherwise.
func KindOf(err error) Kind {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return ""
}
