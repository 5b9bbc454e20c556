// Package logging builds the service's slog loggers.
//
// New picks a JSON or text handler from LOG_FORMAT. Loggers derived with
// WithRequestID stamp request_id on every line, and SanitizeError strips the GNews
// token from upstream URLs before an error is logged:
//
//	logger := logging.New(os.Stdout, cfg.Log.Level, cfg.Log.Format)
//	logging.WithRequestID(ctx, logger).Error("gnews request failed",
//		slog.String("error", logging.SanitizeError(err)))
package logging
