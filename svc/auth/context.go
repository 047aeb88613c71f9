package auth

import (
	"context"
	"log/slog"

	"github.com/netman-app/authkit/pkg/logger"
)

type principalKey struct{}

// WithPrincipal returns a copy of ctx carrying p.
func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// PrincipalFromContext returns the principal stored by WithPrincipal.
func PrincipalFromContext(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(Principal)
	return p, ok
}

// LogUserID is a logger.ContextExtractor adding the authenticated user id.
func LogUserID(ctx context.Context) (slog.Attr, bool) {
	p, ok := PrincipalFromContext(ctx)
	if !ok {
		return slog.Attr{}, false
	}
	return logger.UserID(p.UserID), true
}

var _ logger.ContextExtractor = LogUserID
