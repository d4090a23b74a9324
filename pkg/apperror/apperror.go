// Package apperror carries an HTTP status class alongside a human readable
// message so services can fail with the right status without knowing about gin.
package apperror

import (
	"errors"
	"net/http"
)

type Error struct {
	Status  int
	Message string
	Details any
}

func (e *Error) Error() string { return e.Message }

func New(status int, message string) *Error {
	return &Error{Status: status, Message: message}
}

// WithDetails returns a copy of e carrying extra payload (e.g. field errors).
func (e *Error) WithDetails(details any) *Error {
	cp := *e
	cp.Details = details
	return &cp
}

func NotFound(message string) *Error     { return New(http.StatusNotFound, message) }
func BadRequest(message string) *Error   { return New(http.StatusBadRequest, message) }
func Conflict(message string) *Error     { return New(http.StatusConflict, message) }
func Unauthorized(message string) *Error { return New(http.StatusUnauthorized, message) }
func Forbidden(message string) *Error    { return New(http.StatusForbidden, message) }
func Internal(message string) *Error     { return New(http.StatusInternalServerError, message) }

// As unwraps err into an *Error when possible.
func As(err error) (*Error, bool) {
	var ae *Error
	if errors.As(err, &ae) {
		return ae, true
	}
	return nil, false
}

// StatusOf reports the status carried by err, or 500 for anything else.
func StatusOf(err error) int {
	if ae, ok := As(err); ok {
		return ae.Status
	}
	return http.StatusInternalServerError
}
