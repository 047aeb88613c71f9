package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/netman-app/authkit/pkg/binder"
	"github.com/netman-app/authkit/pkg/logger"
	"github.com/netman-app/authkit/pkg/requestid"
)

const (
	msgUnexpected  = "Непредвиденная ошибка"
	msgBadEnvelope = "Некорректный формат запроса"
)

// FieldError describes one rejected request field.
type FieldError struct {
	Type     string `json:"type"`
	Value    any    `json:"value"`
	Msg      string `json:"msg"`
	Path     string `json:"path"`
	Location string `json:"location"`
}

// Error is an error with a status code and a user-facing JSON body.
type Error struct {
	Status  int          `json:"-"`
	Message string       `json:"message"`
	Errors  []FieldError `json:"errors"`
	Err     error        `json:"-"`
}

// Error formats the status, message and cause for logs. Clients only ever
// see the rendered envelope.
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%d %s: %v", e.Status, e.Message, e.Err)
	}
	return fmt.Sprintf("%d %s", e.Status, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// Render writes the error envelope. Errors is always encoded as an array.
func (e *Error) Render(w http.ResponseWriter, _ *http.Request) error {
	body := *e
	if body.Errors == nil {
		body.Errors = []FieldError{}
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(e.Status)
	return json.NewEncoder(w).Encode(body)
}

// Classifier maps domain errors to an *Error. It reports false for errors
// it does not recognise.
type Classifier func(err error) (*Error, bool)

// AsError converts err into an *Error. Errors that are neither an *Error,
// a binder error nor recognised by classify become a 500.
func AsError(err error, classify Classifier) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	if isBindError(err) {
		return &Error{Status: http.StatusBadRequest, Message: msgBadEnvelope, Err: err}
	}
	if classify != nil {
		if e, ok := classify(err); ok {
			return e
		}
	}
	return &Error{Status: http.StatusInternalServerError, Message: msgUnexpected, Err: err}
}

func isBindError(err error) bool {
	return errors.Is(err, binder.ErrFailedToParseJSON) ||
		errors.Is(err, binder.ErrUnsupportedMediaType) ||
		errors.Is(err, binder.ErrMissingContentType)
}

// NewErrorHandler returns an ErrorHandler that logs err and renders it as
// the JSON error envelope. Client errors are logged at Warn, the rest at
// Error.
func NewErrorHandler(log *slog.Logger, classify Classifier) ErrorHandler[Context] {
	if log == nil {
		log = logger.Discard()
	}

	return func(ctx Context, err error) {
		e := AsError(err, classify)
		r := ctx.Request()

		level := slog.LevelError
		if e.Status < http.StatusInternalServerError {
			level = slog.LevelWarn
		}
		log.LogAttrs(r.Context(), level, "request failed",
			logger.Component("http"),
			logger.RequestID(requestid.FromContext(r.Context())),
			logger.Error(err),
			slog.Int("status_code", e.Status),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
		)

		if renderErr := e.Render(ctx.ResponseWriter(), r); renderErr != nil {
			log.ErrorContext(r.Context(), "failed to render error response", logger.Error(renderErr))
		}
	}
}
