// Package httpserver runs an http.Handler until its context is canceled and
// then drains in-flight requests within a bounded shutdown timeout.
//
// # Usage
//
//	srv := httpserver.New(cfg.HTTP, httpserver.WithLogger(log))
//
//	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
//	defer stop()
//
//	if err := srv.Run(ctx, router); err != nil {
//	    log.Error("server stopped", logger.Error(err))
//	}
//
// Run blocks. It returns nil after a clean shutdown, ErrStart when the
// listener cannot be opened and ErrShutdown when draining exceeds
// Config.ShutdownTimeout. A Server runs once; any further Run returns
// ErrAlreadyRunning.
//
// Tests can pass a pre-bound listener with WithListener to avoid port races.
//
// # Health checks
//
// LivenessHandler always answers 200. ReadinessHandler runs every supplied
// check with the request context and answers 503 when any of them fails:
//
//	r.Get("/health/live", httpserver.LivenessHandler())
//	r.Get("/health/ready", httpserver.ReadinessHandler(log,
//	    pg.Healthcheck(pool),
//	    redis.Healthcheck(rdb),
//	))
//
// # Configuration
//
// Config is parsed from HTTP_* environment variables. Every timeout has a
// default, so an empty environment yields a server on :8080.
package httpserver
