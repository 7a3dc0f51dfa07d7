package errwrap

import "fmt"

// customError wraps an error with a custom message
type customError struct {
	msg string
	err error
}

// Error returns only the custom message
func (e *customError) Error() string {
	return e.msg
}

// Unwrap returns the underlying error for errors.Is
func (e *customError) Unwrap() error {
	return e.err
}

// WrapError creates a wrapped error with only the custom message
func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	if message == "" {
		return err
	}
	return &customError{
		msg: message,
		err: err,
	}
}

// Wrapf is WrapError with a formatted message.
func Wrapf(err error, format string, args ...any) error {
	return WrapError(err, fmt.Sprintf(format, args...))
}
