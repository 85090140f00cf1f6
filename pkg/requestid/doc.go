// Package requestid attaches a correlation ID to each HTTP request.
//
// The middleware reuses a well-formed X-Request-ID header sent by the client,
// otherwise it generates a UUID. The ID is echoed in the response header and
// stored in the request context, where LogExtractor picks it up for slog.
//
//	r := chi.NewRouter()
//	r.Use(requestid.Middleware)
//
//	log := logger.New(logger.WithContextExtractors(requestid.LogExtractor))
package requestid
