// Package httpserver runs an http.Handler with configurable timeouts and
// graceful shutdown.
//
// Run binds the listener first, then serves until the context is done, an
// interrupt or TERM signal arrives, or Shutdown is called:
//
//	srv := httpserver.New(cfg.HTTP, httpserver.WithLogger(log))
//	if err := srv.Run(ctx, router); err != nil {
//	    log.Error("server stopped", logger.Error(err))
//	}
//
// Config carries the HTTP_* environment settings; zero fields take defaults.
// Run failures are wrapped with ErrStart (joined with ErrAlreadyRunning on a
// second Run), shutdown failures with ErrShutdown. HealthCheckHandler serves liveness and readiness probes.
package httpserver
