package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/ncarvajalc/Proyecto-final-MISO-202520-G2-sub001/internal/config"
	"github.com/ncarvajalc/Proyecto-final-MISO-202520-G2-sub001/internal/db"
	httpapi "github.com/ncarvajalc/Proyecto-final-MISO-202520-G2-sub001/internal/http"
	"github.com/ncarvajalc/Proyecto-final-MISO-202520-G2-sub001/internal/routes"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	zerolog.TimeFieldFormat = time.RFC3339
	level, _ := zerolog.ParseLevel(cfg.LogLevel)
	logger := log.Level(level).With().Str("service", "routegen-backend").Logger()

	ctx := context.Background()

	var runs db.RunRecorder
	if cfg.DatabaseURL == "" {
		runs = &db.MemoryRecorder{}
		logger.Info().Msg("using in-memory run history")
	} else {
		store, err := db.New(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to connect db")
		}
		defer store.Close()
		runs = store
	}

	var gateway routes.Gateway
	if cfg.RoutesAPIURL == "" {
		gateway = routes.MockGateway{}
		logger.Info().Msg("using mock route gateway")
	} else {
		gateway = &routes.HTTPGateway{
			BaseURL: cfg.RoutesAPIURL,
			Client:  &http.Client{Timeout: cfg.RequestTimeout},
		}
	}

	router := httpapi.Router(cfg, gateway, runs, logger)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		logger.Info().Str("port", cfg.Port).Msg("server started")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctxShutdown)
	logger.Info().Msg("server stopped")
}
