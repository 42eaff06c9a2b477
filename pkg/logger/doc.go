// Package logger builds the application's *slog.Logger.
//
// New applies functional options and wraps the chosen handler with a
// decorator that pulls request-scoped values (request id, user id,
// environment) out of the context on every record:
//
//	log := logger.New(
//	    logger.WithEnvironment(cfg.Env, "recipebox"),
//	    logger.WithContextExtractors(requestid.LoggerExtractor()),
//	)
//	log.InfoContext(ctx, "recipe created", logger.RecipeID(id))
//
// Development output goes through github.com/lmittmann/tint for colored,
// human-readable lines; staging and production emit JSON.
//
// Attribute helpers such as Error and UserID return an empty slog.Attr for
// nil input, so callers never need a nil check before logging.
package logger
