package errors

import (
	"fmt"
)

type Error interface {
	error

	Code() int
	Message() string
	Cause() error
}

// DefaultCode is the code used when none is given: 500, Internal Server Error.
var DefaultCode = 500

type timetableError struct {
	code  int
	msg   string
	cause *timetableError
}

func (err *timetableError) Error() string {
	if err.cause == nil {
		return err.msg
	}

	return fmt.Sprintf("%s: %v", err.msg, err.cause)
}

func (err *timetableError) Code() int       { return err.code }
func (err *timetableError) Message() string { return err.msg }

func (err *timetableError) Cause() error {
	if err.cause == nil {
		return nil
	}
	return err.cause
}

// Unwrap lets the standard errors.Is and errors.As walk the cause chain.
func (err *timetableError) Unwrap() error {
	return err.Cause()
}

type ErrorEnricher func(error) error

func WithCode(code int) ErrorEnricher {
	return func(err error) error {
		if err == nil {
			return nil
		}

		if e, ok := err.(*timetableError); ok {
			e.code = code
			return e
		}

		return &timetableError{msg: err.Error(), code: code}
	}
}

// WithCause attaches cause to the error. The error inherits the code of the
// cause unless it was given one explicitly.
func WithCause(cause error) ErrorEnricher {
	if cause == nil {
		return func(err error) error { return err }
	}

	var c *timetableError
	switch cause := cause.(type) {
	case *timetableError:
		c = cause
	default:
		c = &timetableError{msg: cause.Error(), code: DefaultCode}
	}

	return func(err error) error {
		if err == nil {
			return nil
		}

		if e, ok := err.(*timetableError); ok {
			e.cause = c
			if e.code == DefaultCode {
				e.code = c.code
			}
			return e
		}

		return &timetableError{msg: err.Error(), code: c.code, cause: c}
	}
}

func New(msg string, fs ...ErrorEnricher) error {
	var err error = &timetableError{msg: msg, code: DefaultCode}
	for _, f := range fs {
		err = f(err)
	}

	return err
}

// Errorf is New with a formatted message.
func Errorf(format string, args ...interface{}) error {
	return New(fmt.Sprintf(format, args...))
}
