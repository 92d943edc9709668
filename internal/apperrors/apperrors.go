package apperrors

import (
	"errors"
	"strings"
)

// Error is the error type used across the service. Errors form chains: a
// package declares a root error and derives more specific values from it,
// so callers can match with errors.Is at any level of the chain. An Error
// may carry an HTTP status code for the API layer.
type Error interface {
	error
	Unwrap() error
	// New derives a child error from this one.
	New(msg string) Error
	// Msg rewords this error; the result still matches it with errors.Is.
	Msg(msg string) Error
	// Err wraps the given errors under this error's message.
	Err(err ...error) Error
	// ErrorAll returns the messages of the whole chain, outermost first.
	ErrorAll() string
	SetStatusCode(code int) Error
	StatusCode() int
	SetExpandError(expand bool) Error
	ExpandError() bool
}

type appError struct {
	msg        string
	err        error
	statusCode int
	expand     bool
}

func (e *appError) Error() string {
	return e.msg
}

func (e *appError) Unwrap() error {
	return e.err
}

func (e *appError) New(msg string) Error {
	return &appError{
		msg:        msg,
		err:        e,
		statusCode: e.statusCode,
		expand:     e.expand,
	}
}

func (e *appError) Msg(msg string) Error {
	return &appError{
		msg:        msg,
		err:        e,
		statusCode: e.statusCode,
		expand:     e.expand,
	}
}

func (e *appError) Err(err ...error) Error {
	return &appError{
		msg:        e.msg,
		err:        errors.Join(append([]error{error(e)}, err...)...),
		statusCode: e.statusCode,
		expand:     e.expand,
	}
}

func (e *appError) ErrorAll() string {
	msgs := []string{e.msg}
	if e.expand {
		err := e.err
		for err != nil {
			if m := err.Error(); m != "" {
				msgs = append(msgs, m)
			}
			err = errors.Unwrap(err)
		}
	}
	return strings.Join(msgs, ": ")
}

func (e *appError) SetStatusCode(code int) Error {
	n := *e
	n.statusCode = code
	return &n
}

func (e *appError) StatusCode() int {
	return e.statusCode
}

func (e *appError) SetExpandError(expand bool) Error {
	n := *e
	n.expand = expand
	return &n
}

func (e *appError) ExpandError() bool {
	return e.expand
}

func New(msg string) Error {
	return &appError{msg: msg}
}
