// Package logger builds the slog loggers used across promptmix.
//
// New takes functional options for level, format, output and static
// attributes, and wraps the handler so attributes stored in a
// context.Context (the mixer session id, for example) are added to every
// record logged with that context:
//
//	log := logger.New(
//	    logger.WithEnvironment("production", "promptmix"),
//	    logger.WithContextValue("session_id", session.ContextKey),
//	)
//	log.InfoContext(ctx, "generated", logger.Sequence(7))
//
// Attribute helpers in attr.go keep key names consistent. Error returns an
// empty attribute for a nil error, so it can be passed unconditionally.
package logger
