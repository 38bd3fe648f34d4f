// Package apperr carries HTTP-aware errors from handlers to the error
// middleware, which is the only place responses for failures are written.
package apperr

import "net/http"

type Error struct {
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}

	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func New(status int, msg string) *Error {
	return &Error{Status: status, Message: msg}
}

// Wrap keeps err for logging while exposing only msg to the client.
func Wrap(status int, msg string, err error) *Error {
	return &Error{Status: status, Message: msg, Err: err}
}

func Validation(msg string) *Error   { return New(http.StatusBadRequest, msg) }
func Unauthorized(msg string) *Error { return New(http.StatusUnauthorized, msg) }
func Forbidden(msg string) *Error    { return New(http.StatusForbidden, msg) }
func Conflict(msg string) *Error     { return New(http.StatusConflict, msg) }
func Unavailable(msg string) *Error  { return New(http.StatusServiceUnavailable, msg) }

// NotFound is also used for "account not found" on login, the client
// redirects to registration on it.
func NotFound(msg string) *Error { return New(http.StatusNotFound, msg) }

func Internal(err error) *Error {
	return Wrap(http.StatusInternalServerError, "Internal Server Error", err)
}
