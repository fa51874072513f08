// Package middlewares provides the HTTP middleware the intake service runs
// in front of every handler.
//
//	app := internal.New(
//	    internal.WithCustomLogger(log),
//	    internal.WithMiddleware(
//	        middlewares.RequestID(),
//	        middlewares.RequestLogger(),
//	        middlewares.Recover(),
//	        middlewares.CORS(middlewares.WithAllowOrigins(cfg.CORS.AllowOrigins...)),
//	    ),
//	)
//
// RequestID must run first so that every log line, including the access
// log, carries request_id. Pass RequestIDExtractor to logger.New for that.
//
// Recover turns panics into *PanicError, which the app's error handler
// renders as a 500.
package middlewares
