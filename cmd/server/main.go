// Command server runs the OpenAero marketplace API.
//
//	@title						OpenAero Marketplace API
//	@version					1.0
//	@BasePath					/
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@securityDefinitions.apikey	CronSecret
//	@in							header
//	@name						Authorization
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	_ "github.com/openaero/platform/docs"
	"github.com/openaero/platform/internal/api"
	"github.com/openaero/platform/internal/api/handler"
	"github.com/openaero/platform/internal/auth"
	"github.com/openaero/platform/internal/core/service"
	"github.com/openaero/platform/internal/infrastructure/config"
	mongodb "github.com/openaero/platform/internal/infrastructure/db/mongo"
	redisdb "github.com/openaero/platform/internal/infrastructure/db/redis"
	"github.com/openaero/platform/internal/infrastructure/http/handlers"
	"github.com/openaero/platform/internal/infrastructure/identity/supabase"
	"github.com/openaero/platform/internal/infrastructure/scheduler"
	"github.com/openaero/platform/pkg/logger"
)

const (
	serviceName     = "openaero-api"
	shutdownTimeout = 15 * time.Second
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		boot := logger.Bootstrap(serviceName)
		boot.Fatal().Err(err).Msg("failed to load configuration")
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: serviceName,
		Env:     cfg.Env,
	})

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	// --- Stores ---
	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		return err
	}
	defer func() {
		dctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = mongoClient.Disconnect(dctx)
	}()

	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		return err
	}

	rdb, err := redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
	if err != nil {
		return err
	}
	defer rdb.Close()

	// --- Repositories ---
	users := mongodb.NewUserRepository(db)
	apps := mongodb.NewApplicationRepository(db)
	solutions := mongodb.NewSolutionRepository(db)
	reviews := mongodb.NewReviewRepository(db)
	lock := redisdb.NewRunLock(rdb)

	// --- Identity ---
	provider := supabase.NewClient(supabase.Config{
		URL:     cfg.Auth.SupabaseURL,
		AnonKey: cfg.Auth.SupabaseAnonKey,
		Timeout: cfg.Auth.ProviderTimeout,
	})

	var verifier auth.TokenVerifier
	switch cfg.Auth.VerifierMode() {
	case "hs256":
		verifier = auth.NewJWTVerifier(cfg.Auth.JWTSecret, cfg.Auth.JWTAudience)
	case "jwks":
		verifier = supabase.NewJWKSVerifier(ctx, cfg.Auth.SupabaseURL, cfg.Auth.JWTAudience)
	default:
		verifier = provider
	}
	log.Info().Str("verifier", cfg.Auth.VerifierMode()).Msg("token verification configured")

	resolver := auth.NewResolver(verifier, users, auth.ResolverConfig{
		CookieName: cfg.Auth.CookieName,
		Timeout:    cfg.Auth.ProviderTimeout,
	}, logger.Component("auth"))

	cronAuth := auth.NewCronAuthenticator(cfg.Cron.Secret, cfg.Cron.AllowUnauthenticated)
	switch {
	case cronAuth.Open():
		log.Warn().Msg("CRON_SECRET is not set and CRON_ALLOW_UNAUTHENTICATED=true: cron endpoints are open")
	case !cronAuth.Configured():
		log.Warn().Msg("CRON_SECRET is not set: cron endpoints reject every call")
	}

	// --- Services ---
	syncService := service.NewSyncService(solutions, reviews, lock, cfg.Cron.SyncWorkers, cfg.Cron.LockTTL,
		logger.Component("sync"))

	if cfg.Cron.Schedule != "" {
		sched, err := scheduler.New(cfg.Cron.Schedule, syncService, logger.Component("scheduler"))
		if err != nil {
			return err
		}
		sched.Start(ctx)
		// runs before the store disconnects above
		defer sched.Stop()
	}

	e := api.NewRouter(api.Dependencies{
		Log:           log,
		Gate:          auth.NewGate(resolver),
		Cron:          cronAuth,
		Sessions:      provider,
		AuthRateLimit: cfg.Auth.RateLimit,
		AuthRateBurst: cfg.Auth.RateBurst,
		Cookie: handler.CookieSettings{
			Name:   cfg.Auth.CookieName,
			Secure: cfg.Auth.CookieSecure,
		},
		Profiles:  service.NewProfileService(users),
		Creators:  service.NewCreatorService(apps, users, solutions, logger.Component("creators")),
		Solutions: service.NewSolutionService(solutions),
		Admin:     service.NewAdminService(users, solutions, reviews, apps),
		Sync:      syncService,
		Checks: map[string]handlers.Check{
			"mongodb": mongodb.Ping(db),
			"redis":   redisdb.Ping(rdb),
		},
		MetricsRegisterer: prometheus.DefaultRegisterer,
		MetricsGatherer:   prometheus.DefaultGatherer,
	})

	// --- Serve ---
	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Msg("http server listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(sctx)
}
