// Package exit maps pipeline failure classes to process exit codes so
// scripting callers can distinguish them.
package exit

import "errors"

// Exit codes per failure class. Every other fatal error maps to Failure.
const (
	OK           = 0
	Failure      = 1
	InvalidPort  = 2
	NoDescriptor = 3
	Connectivity = 4
)

// Error attaches an exit code to an underlying error.
type Error struct {
	Code int
	Err  error
}

func (e *Error) Error() string { return e.Err.Error() }

func (e *Error) Unwrap() error { return e.Err }

// WithCode wraps err with an exit code. Returns nil when err is nil.
func WithCode(code int, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Code: code, Err: err}
}

// Code returns the exit code for err: OK for nil, the attached code for a
// coded error anywhere in the chain, Failure otherwise.
func Code(err error) int {
	if err == nil {
		return OK
	}
	var coded *Error
	if errors.As(err, &coded) {
		return coded.Code
	}
	return Failure
}
