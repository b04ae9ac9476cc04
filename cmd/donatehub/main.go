// Command donatehub runs the session-aware companion server in front of the
// DonateHub API.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/donatehub/donatehub-client/internal/api"
	"github.com/donatehub/donatehub-client/internal/api/metrics"
	"github.com/donatehub/donatehub-client/internal/core/ports"
	"github.com/donatehub/donatehub-client/internal/core/service"
	"github.com/donatehub/donatehub-client/internal/infrastructure/client"
	"github.com/donatehub/donatehub-client/internal/infrastructure/config"
	"github.com/donatehub/donatehub-client/internal/infrastructure/db/memory"
	mongostore "github.com/donatehub/donatehub-client/internal/infrastructure/db/mongo"
	redisstore "github.com/donatehub/donatehub-client/internal/infrastructure/db/redis"
	"github.com/donatehub/donatehub-client/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// .env is optional
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		panic(err)
	}
	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: cfg.Pretty(), Service: "donatehub"})
	log.Info().Str("env", cfg.Env).Str("api", cfg.API.BaseURL).Str("token_store", cfg.TokenStore).Msg("starting")
	if cfg.EphemeralTokens() {
		log.Warn().Str("env", cfg.Env).Msg("TOKEN_STORE=memory does not survive restarts; set TOKEN_STORE=redis or mongo")
	}

	store, closeStore, err := openTokenStore(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open token store")
	}
	defer closeStore()

	var limiter *rate.Limiter
	if cfg.API.RateLimit > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.API.RateLimit), cfg.API.RateBurst)
	}
	recorder := metrics.Recorder{}
	auth := client.NewAuthorizer(nil, limiter)
	backend := client.New(cfg.API.BaseURL, auth, cfg.API.Timeout, recorder, logger.Component("client"))

	sessions := service.NewSessionService(backend, store, recorder, logger.Component("session"))
	sessions.Subscribe(auth)
	go sessions.Bootstrap(ctx)

	dashboards := service.NewDashboardService(backend, sessions, recorder, cfg.API.EnrichConcurrency, logger.Component("dashboard"))

	checks := map[string]ports.Pinger{"api": backend}
	if p, ok := store.(ports.Pinger); ok {
		checks["token_store"] = p
	}

	e := api.NewRouter(api.Deps{
		Sessions:   sessions,
		Dashboards: dashboards,
		Checks:     checks,
		Log:        logger.Component("http"),
	})

	go func() {
		log.Info().Str("port", cfg.Port).Msg("companion server listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server failed")
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("failed to shutdown server")
	}
	log.Info().Msg("server stopped")
}

// openTokenStore returns the configured token store and a func releasing its
// connection.
func openTokenStore(ctx context.Context, cfg *config.Config, log zerolog.Logger) (ports.TokenStore, func(), error) {
	switch cfg.TokenStore {
	case config.StoreRedis:
		rdb, err := redisstore.Connect(ctx, redisstore.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return nil, nil, err
		}
		closeFn := func() {
			if err := rdb.Close(); err != nil {
				log.Error().Err(err).Msg("redis close")
			}
		}
		return redisstore.NewTokenStore(rdb, cfg.Redis.TokenTTL), closeFn, nil

	case config.StoreMongo:
		mc, db, err := mongostore.Connect(ctx, mongostore.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			return nil, nil, err
		}
		closeFn := func() {
			if err := mongostore.Disconnect(mc); err != nil {
				log.Error().Err(err).Msg("mongo disconnect")
			}
		}
		return mongostore.NewTokenStore(db), closeFn, nil

	default:
		return memory.NewTokenStore(), func() {}, nil
	}
}
