package binder

import "errors"

var (
	ErrUnsupportedMediaType = errors.New("unsupported media type")
	ErrFailedToParseJSON    = errors.New("failed to parse JSON request body")
	ErrMissingContentType   = errors.New("missing content type")
	ErrBinderNotApplicable  = errors.New("binder not applicable to request")
)
