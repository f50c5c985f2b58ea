package model

import "errors"

// Sentinel kinds for domain errors. These allow errors.Is from callers.
var (
	ErrInvalidArgument = errors.New("invalid argument")
)

// Error carries a stable, human readable message together with the
// sentinel kinds it belongs to. Error() returns the message verbatim.
type Error struct {
	msg   string
	kinds []error
}

// NewError builds an Error with msg that matches every kind via errors.Is.
func NewError(msg string, kinds ...error) *Error {
	return &Error{msg: msg, kinds: kinds}
}

// InvalidArgument builds an Error of kind ErrInvalidArgument.
func InvalidArgument(msg string) *Error {
	return NewError(msg, ErrInvalidArgument)
}

func (e *Error) Error() string { return e.msg }

// Unwrap exposes the kinds for errors.Is/As.
func (e *Error) Unwrap() []error { return e.kinds }
