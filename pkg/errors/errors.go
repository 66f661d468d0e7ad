package errors

import (
	"errors"
	"fmt"
)

// Common errors
var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input")
	ErrMalformed    = errors.New("malformed value")
	ErrUnavailable  = errors.New("unavailable")
)

// Codes attached with WrapWithCode.
const (
	CodeStorage  = "storage"
	CodeDecode   = "decode"
	CodeImage    = "image"
	CodeShare    = "share"
	CodeCompose  = "compose"
	CodeInternal = "internal"
)

// Error is an error carrying a machine readable code and a human message.
type Error struct {
	Code    string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func New(message string) error {
	return &Error{
		Message: message,
	}
}

// Wrap wraps an error with additional message. A nil err stays nil.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return &Error{
		Message: message,
		Err:     err,
	}
}

// WrapWithCode wraps an error with a code and message
func WrapWithCode(err error, code, message string) error {
	if err == nil {
		return nil
	}
	return &Error{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

func Is(err, target error) bool {
	return errors.Is(err, target)
}

func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// GetCode returns the outermost code in the chain, or "".
func GetCode(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsInvalidInput(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

func IsMalformed(err error) bool {
	return errors.Is(err, ErrMalformed)
}

func IsUnavailable(err error) bool {
	return errors.Is(err, ErrUnavailable)
}
