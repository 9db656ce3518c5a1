// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"errors"
	"fmt"
)

// ErrorCode classifies a pipeline failure. Codes are strings so they read
// well in logs and JSON.
type ErrorCode string

const (
	// CodeInvalidConfig indicates a missing or invalid configuration value.
	CodeInvalidConfig ErrorCode = "INVALID_CONFIGURATION"

	// CodeNotFound indicates the input root or a listed file could not be read.
	CodeNotFound ErrorCode = "NOT_FOUND"

	// CodeDecodeFailed indicates a file's bytes are not a supported image.
	CodeDecodeFailed ErrorCode = "DECODE_FAILED"

	// CodeEmptyInput indicates there were no images to assemble.
	CodeEmptyInput ErrorCode = "EMPTY_INPUT"

	// CodeWriteFailed indicates the output document could not be written.
	CodeWriteFailed ErrorCode = "WRITE_FAILED"
)

// Sentinels for use with errors.Is. A *Error matches the sentinel of its code.
var (
	ErrConfiguration = errors.New("configuration error")
	ErrNotFound      = errors.New("not found")
	ErrDecode        = errors.New("decode error")
	ErrEmptyInput    = errors.New("empty input")
	ErrWrite         = errors.New("write error")
)

func (c ErrorCode) sentinel() error {
	switch c {
	case CodeInvalidConfig:
		return ErrConfiguration
	case CodeNotFound:
		return ErrNotFound
	case CodeDecodeFailed:
		return ErrDecode
	case CodeEmptyInput:
		return ErrEmptyInput
	case CodeWriteFailed:
		return ErrWrite
	}
	return nil
}

// Error is a classified pipeline error. Subject names the offending path or
// configuration field.
type Error struct {
	Code    ErrorCode
	Subject string
	Err     error
}

func (e *Error) Error() string {
	prefix := string(e.Code)
	if s := e.Code.sentinel(); s != nil {
		prefix = s.Error()
	}
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", prefix, e.Subject)
	}
	return fmt.Sprintf("%s: %s: %v", prefix, e.Subject, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is the sentinel for e's code.
func (e *Error) Is(target error) bool {
	s := e.Code.sentinel()
	return s != nil && target == s
}

// CodeOf returns the code of the first *Error in err's chain, or "" if none.
func CodeOf(err error) ErrorCode {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// ConfigError reports an invalid configuration field.
func ConfigError(field, format string, args ...any) *Error {
	return &Error{Code: CodeInvalidConfig, Subject: field, Err: fmt.Errorf(format, args...)}
}

// NotFoundError reports a path that could not be read.
func NotFoundError(path string, err error) *Error {
	return &Error{Code: CodeNotFound, Subject: path, Err: err}
}

// DecodeError reports a file that could not be decoded as an image.
func DecodeError(path string, err error) *Error {
	return &Error{Code: CodeDecodeFailed, Subject: path, Err: err}
}

// EmptyInputError reports that root produced no pages.
func EmptyInputError(root string) *Error {
	return &Error{Code: CodeEmptyInput, Subject: root, Err: errors.New("no images found")}
}

// WriteError reports a failure writing the output document.
func WriteError(path string, err error) *Error {
	return &Error{Code: CodeWriteFailed, Subject: path, Err: err}
}
