// Package httpserver runs an http.Server until its context is cancelled or
// the process receives SIGINT/SIGTERM, then shuts it down gracefully.
//
//	srv := httpserver.NewFromConfig(cfg.HTTP, httpserver.WithLogger(log))
//	if err := srv.Run(ctx, router); err != nil {
//	    log.Error("server stopped", logger.Error(err))
//	}
//
// Liveness and Readiness build the /health/live and /health/ready probes.
package httpserver
