package logger

import (
	"log/slog"
	"time"
)

// Group creates a slog group attribute from the provided attributes.
func Group(name string, attrs ...slog.Attr) slog.Attr {
	return slog.Attr{Key: name, Value: slog.GroupValue(attrs...)}
}

// Error records err under "error". Nil errors produce an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// UserID records the identity id under "user_id". Nil ids produce an empty Attr.
func UserID(id any) slog.Attr {
	if id == nil {
		return slog.Attr{}
	}
	return slog.Any("user_id", id)
}

// RequestID records the request id under "request_id".
func RequestID(id any) slog.Attr {
	if id == nil {
		return slog.Attr{}
	}
	return slog.Any("request_id", id)
}

// Component names the subsystem that wrote the record.
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// Operation records the use case being executed, e.g. "sign_in".
func Operation(name string) slog.Attr {
	return slog.String("operation", name)
}

// Provider records the authentication provider name.
func Provider(name string) slog.Attr {
	return slog.String("provider", name)
}

// Kind records an error classification such as "bad_request".
func Kind(kind string) slog.Attr {
	return slog.String("kind", kind)
}

// Duration records an elapsed time under "duration".
func Duration(d time.Duration) slog.Attr {
	return slog.Duration("duration", d)
}
