package fetch

import (
	"errors"

	"github.com/google/uuid"
)

// Result is the settled outcome of Execute. Exactly one of Response and Err
// is set.
type Result struct {
	// ID identifies this call in logs.
	ID string

	Response *Response
	Err      *Error
}

// OK reports whether the call produced a response.
func (r Result) OK() bool {
	return r.Err == nil && r.Response != nil
}

func newResult(resp *Response, err error) Result {
	res := Result{ID: uuid.NewString()}
	if err == nil {
		res.Response = resp
		return res
	}

	var fe *Error
	if !errors.As(err, &fe) {
		fe = newError(KindTransport, err)
	}
	res.Err = fe
	return res
}
