package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Sergiotsk/TecFlow/internal/config"
	"github.com/Sergiotsk/TecFlow/internal/infra"
	"github.com/Sergiotsk/TecFlow/internal/repository"
	"github.com/Sergiotsk/TecFlow/internal/router"
)

func main() {
	// Structured logger — dev: pretty, prod: JSON
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	if cfg.Env == "production" {
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
	}

	// Single-file blob store. Falls back to an in-memory store when the
	// file cannot be opened, so the app still runs (without persistence)
	// on a read-only disk.
	var store repository.Store
	bolt, err := repository.OpenBolt(cfg.DataPath)
	if err != nil {
		log.Warn().Err(err).Str("path", cfg.DataPath).Msg("cannot open data file, running with in-memory store")
		store = repository.NewMemoryStore()
	} else {
		defer bolt.Close()
		store = bolt
	}

	aiCB := infra.NewCircuitBreaker(infra.DefaultCBConfig())
	if !cfg.AIEnabled() {
		log.Info().Msg("AI collaborator disabled, no API key configured")
	}

	r := router.New(cfg, store, aiCB)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown on SIGINT / SIGTERM
	go func() {
		log.Info().Msgf("TecFlow backend listening on :%d", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server…")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("forced shutdown")
	}
	log.Info().Msg("server exited")
}
