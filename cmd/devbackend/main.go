// Command devbackend serves an in-memory stand-in for the DonateHub API for
// local development against the companion server.
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

	"github.com/donatehub/donatehub-client/internal/infrastructure/config"
	"github.com/donatehub/donatehub-client/internal/testbackend"
	"github.com/donatehub/donatehub-client/pkg/logger"
)

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		panic(err)
	}
	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: cfg.Pretty(), Service: "devbackend"})

	srv := testbackend.New(cfg.DevBackend.JWTSecret, cfg.DevBackend.TokenTTL, logger.Component("devbackend"))

	go func() {
		if err := srv.Start(":" + cfg.DevBackend.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("dev backend failed")
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("failed to shutdown dev backend")
	}
	log.Info().Msg("dev backend stopped")
}
