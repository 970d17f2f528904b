// Package errors defines the coded errors shared by the engine, the CLI and
// the HTTP API.
//
// Every failure a caller can act on carries a [Code]. The CLI prints it next
// to the message and the API returns it in the JSON body, with the status
// given by [HTTPStatus]:
//
//	INVALID_*        the request or board is malformed (400)
//	OVERLAP          two widgets claim the same cell (409)
//	NO_SPACE         no free slot for a new widget (409)
//	*_NOT_FOUND      missing board or file (404)
//	NETWORK_ERROR    cache or store backend unreachable (502)
//	INTERNAL_ERROR   anything else (500)
//
// Error types defined elsewhere join in by implementing Code() Code, as
// grid.OverlapError does; [GetCode] and [Is] look for either form.
//
//	if errors.Is(err, errors.ErrCodeOverlap) {
//	    // the board needs fixing before it can be stored
//	}
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Code is a stable, machine-readable error identifier.
type Code string

const (
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidGrid   Code = "INVALID_GRID"
	ErrCodeInvalidLayout Code = "INVALID_LAYOUT"
	ErrCodeInvalidSize   Code = "INVALID_SIZE"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"
	ErrCodeInvalidName   Code = "INVALID_NAME"

	ErrCodeOverlap Code = "OVERLAP"
	ErrCodeNoSpace Code = "NO_SPACE"

	ErrCodeBoardNotFound Code = "BOARD_NOT_FOUND"
	ErrCodeFileNotFound  Code = "FILE_NOT_FOUND"

	ErrCodeNetwork  Code = "NETWORK_ERROR"
	ErrCodeInternal Code = "INTERNAL_ERROR"
)

// Error pairs a Code with a message and an optional cause.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	msg := string(e.Code) + ": " + e.Message
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Cause }

// New returns an Error with a formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap returns an Error with a formatted message around cause.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	e := New(code, format, args...)
	e.Cause = cause
	return e
}

// coder is the interface coded errors from other packages implement.
type coder interface {
	Code() Code
}

// GetCode returns the code of the outermost coded error in err's chain,
// or "" when there is none.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	var c coder
	if errors.As(err, &c) {
		return c.Code()
	}
	return ""
}

// Is reports whether err carries code.
func Is(err error, code Code) bool {
	return err != nil && GetCode(err) == code
}

// UserMessage returns the message of the outermost *Error without its code
// and cause, or err.Error() for other errors.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// HTTPStatus maps a code to an HTTP status.
func HTTPStatus(code Code) int {
	switch code {
	case ErrCodeInvalidInput, ErrCodeInvalidGrid, ErrCodeInvalidLayout,
		ErrCodeInvalidSize, ErrCodeInvalidFormat, ErrCodeInvalidName:
		return http.StatusBadRequest
	case ErrCodeOverlap, ErrCodeNoSpace:
		return http.StatusConflict
	case ErrCodeBoardNotFound, ErrCodeFileNotFound:
		return http.StatusNotFound
	case ErrCodeNetwork:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
