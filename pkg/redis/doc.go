// Package redis provides helpers for connecting authkit to a Redis server.
//
// Redis holds the short-lived OAuth state tokens that travel between the
// consent redirect and the code callback. The package wraps the go-redis
// client and adds:
//
//   - Connect, which parses a connection URL and pings the server with a
//     bounded number of retries.
//   - Healthcheck, a readiness probe suitable for the /health/ready route.
//
// Configuration is described by the Config struct whose fields are
// populated from environment variables via github.com/caarlos0/env.
//
// # Usage
//
// Import the package:
//
//	import "github.com/netman-app/authkit/pkg/redis"
//
// Create configuration (most deployments rely on env parsing):
//
//	cfg := redis.Config{
//	    ConnectionURL:  "redis://localhost:6379/0",
//	    RetryAttempts:  3,
//	    RetryInterval:  2 * time.Second,
//	    ConnectTimeout: 30 * time.Second,
//	}
//
// Connect with retries:
//
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
//
// Hand the client to the OAuth state store and register its probe:
//
//	states := auth.NewRedisStateStore(client)
//	ready := httpserver.ReadinessHandler(log, redis.Healthcheck(client))
//
// # Errors
//
// Connect and Healthcheck return sentinel errors (ErrEmptyConnectionURL,
// ErrFailedToParseRedisConnString, ErrRedisNotReady, ErrHealthcheckFailed)
// joined with the underlying go-redis error via errors.Join, so both can be
// matched with errors.Is.
package redis
