// Modista - Collaborative Filtering Fashion Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/modista

// Command server runs the Modista recommendation API.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tomtom215/modista/internal/api"
	"github.com/tomtom215/modista/internal/config"
	"github.com/tomtom215/modista/internal/logging"
	"github.com/tomtom215/modista/internal/recommend"
	"github.com/tomtom215/modista/internal/session"
	"github.com/tomtom215/modista/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})
	logger := logging.Logger()

	logger.Info().
		Str("host", cfg.Server.Host).
		Int("port", cfg.Server.Port).
		Msg("starting modista")

	engine, err := recommend.NewEngine(recommend.Config{
		NeighborhoodK:      cfg.Engine.NeighborhoodK,
		MinRatingThreshold: cfg.Engine.MinRatingThreshold,
		DefaultN:           cfg.Engine.DefaultN,
		MaxN:               cfg.Engine.MaxN,
	}, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("invalid engine configuration")
	}

	datasets, err := store.New(&cfg.Database, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to open dataset store")
	}
	defer func() {
		if err := datasets.Close(); err != nil {
			logger.Error().Err(err).Msg("error closing dataset store")
		}
	}()

	sessions := session.NewManager(cfg.Session, engine, logger)
	defer sessions.Close()

	handler := api.NewHandler(cfg, sessions, datasets, logger)
	router := api.NewRouter(handler)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router.Setup(),
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", server.Addr).Msg("HTTP server listening")
		errCh <- server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		logger.Info().Msg("shutdown signal received")
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("HTTP server failed")
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown failed")
	}

	logger.Info().Msg("server stopped")
}
