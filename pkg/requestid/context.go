package requestid

import (
	"context"
	"log/slog"

	"github.com/netman-app/authkit/pkg/logger"
)

type contextKey struct{}

// WithContext returns a copy of ctx carrying id.
func WithContext(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, contextKey{}, id)
}

// FromContext returns the request id, or "" when none is set.
func FromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(contextKey{}).(string)
	return id
}

// LogExtractor is a logger.ContextExtractor adding request_id.
func LogExtractor(ctx context.Context) (slog.Attr, bool) {
	if id := FromContext(ctx); id != "" {
		return logger.RequestID(id), true
	}
	return slog.Attr{}, false
}

var _ logger.ContextExtractor = LogExtractor
