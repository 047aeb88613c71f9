// Package logger builds *slog.Logger instances for authkit services.
//
// Loggers are configured with functional options or from Config (env), and
// every logger is wrapped in a handler decorator that copies request-scoped
// values (request id, user id) from the context into each record:
//
//	log := logger.New(
//		logger.WithEnvironment("production", "authd"),
//		logger.WithContextExtractors(requestid.LogExtractor),
//	)
//	log.InfoContext(ctx, "signed in", logger.UserID(id), logger.Operation("sign_in"))
//
// The attribute helpers in this package return an empty slog.Attr for nil
// inputs, which slog drops, so call sites never need nil checks.
package logger
