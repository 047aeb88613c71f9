// Command authd serves the authentication API.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	authmod "github.com/netman-app/authkit/modules/auth"
	"github.com/netman-app/authkit/pkg/config"
	"github.com/netman-app/authkit/pkg/email"
	"github.com/netman-app/authkit/pkg/httpserver"
	"github.com/netman-app/authkit/pkg/jwt"
	"github.com/netman-app/authkit/pkg/logger"
	"github.com/netman-app/authkit/pkg/pg"
	"github.com/netman-app/authkit/pkg/redis"
	"github.com/netman-app/authkit/pkg/requestid"
	"github.com/netman-app/authkit/svc/auth"
	"github.com/netman-app/authkit/svc/auth/pgstore"
	"github.com/netman-app/authkit/svc/auth/pgstore/migrations"
)

type Config struct {
	Product string `env:"APP_PRODUCT" envDefault:"NetMan"`

	Log    logger.Config
	HTTP   httpserver.Config
	PG     pg.Config
	Redis  redis.Config
	Email  email.Config
	JWT    jwt.Config
	Auth   auth.Config
	Google auth.GoogleConfig
}

func main() {
	cfg := config.MustLoad[Config]()

	log := logger.New(append(logger.FromConfig(cfg.Log),
		logger.WithContextExtractors(requestid.LogExtractor, auth.LogUserID),
	)...)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("authd stopped with error", logger.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg Config, log *slog.Logger) error {
	pool, err := pg.Connect(ctx, cfg.PG)
	if err != nil {
		return err
	}
	defer pool.Close()

	db := pg.OpenDB(pool)
	defer db.Close()

	if err := pg.Migrate(ctx, db, migrations.FS, cfg.PG, log); err != nil {
		return err
	}

	rdb, err := redis.Connect(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	defer rdb.Close()

	sender, err := newSender(cfg.Email, log)
	if err != nil {
		return err
	}

	issuer, err := jwt.NewIssuer(cfg.JWT)
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	opts := []auth.Option{
		auth.WithLogger(log),
		auth.WithConfig(cfg.Auth),
		auth.WithMetrics(auth.NewPrometheusRecorder(reg)),
		auth.WithStateStore(auth.NewRedisStateStore(rdb)),
	}
	if cfg.Google.Enabled() {
		opts = append(opts, auth.WithOAuthProvider(auth.NewGoogleProvider(cfg.Google)))
	} else {
		log.Warn("google oauth is not configured, oauth routes will reject requests")
	}

	svc := auth.New(
		pgstore.New(db),
		issuer,
		auth.NewEmailActivationMailer(sender, cfg.Product),
		opts...,
	)

	r := chi.NewRouter()
	r.Use(requestid.Middleware, middleware.RealIP, middleware.Recoverer)

	r.Get("/health/live", httpserver.LivenessHandler())
	r.Get("/health/ready", httpserver.ReadinessHandler(log, pg.Healthcheck(pool), redis.Healthcheck(rdb)))
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	r.Mount("/auth", authmod.New(svc, authmod.WithLogger(log)).Handle())

	return httpserver.New(cfg.HTTP, httpserver.WithLogger(log)).Run(ctx, r)
}

func newSender(cfg email.Config, log *slog.Logger) (email.EmailSender, error) {
	if cfg.UseDevSender() {
		log.Info("postmark is not configured, writing emails to disk", slog.String("dir", cfg.DevOutputDir))
		return email.NewDevSender(cfg.DevOutputDir), nil
	}
	return email.NewPostmarkClient(cfg)
}
