// Package httpserver runs the gateway's http.Server with graceful shutdown
// and provides liveness and readiness handlers.
//
//	srv := httpserver.NewFromConfig(cfg, httpserver.WithLogger(log))
//	if err := srv.Run(ctx, router); err != nil {
//		log.Error("server failed", logger.Error(err))
//	}
//
// Run blocks until ctx is cancelled, then stops accepting connections and
// waits up to the shutdown timeout for in-flight requests.
package httpserver
