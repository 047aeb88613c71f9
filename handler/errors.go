package handler

import "errors"

var (
	// ErrNilResponse is reported when a handler returns a nil Response.
	ErrNilResponse = errors.New("handler returned nil response")
)
