// Package requestid attaches a correlation id to every HTTP request.
//
// Middleware reuses a valid client supplied X-Request-ID header or generates
// a UUID, stores it in the request context and echoes it in the response.
// LogExtractor adds the id to every log record written with the request
// context:
//
//	log := logger.New(logger.WithContextExtractors(requestid.LogExtractor))
//	r.Use(requestid.Middleware)
package requestid
