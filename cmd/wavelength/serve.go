package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/terraincognita07/wavelength/internal/api"
	"github.com/terraincognita07/wavelength/internal/cache"
	"github.com/terraincognita07/wavelength/internal/db"
	"github.com/terraincognita07/wavelength/internal/metrics"
)

func newServeCommand(state *cliState) *cobra.Command {
	var port string
	var seed bool

	command := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Flags().Changed("port") {
				state.cfg.Port = port
			}
			if cmd.Flags().Changed("seed") {
				state.cfg.SeedOnStart = seed
			}
			return runServe(cmd.Context(), state)
		},
	}
	command.Flags().StringVar(&port, "port", "", "listen port, overrides PORT")
	command.Flags().BoolVar(&seed, "seed", true, "seed empty reference tables on start, overrides SEED_ON_START")
	return command
}

func runServe(ctx context.Context, state *cliState) error {
	cfg := state.cfg
	logger := state.logger

	database, closeDatabase, err := state.openDatabase()
	if err != nil {
		return err
	}
	defer closeDatabase()

	if cfg.SeedOnStart {
		if _, err := db.SeedReferenceData(database, logger); err != nil {
			return fmt.Errorf("seed reference data: %w", err)
		}
	}

	analyticsCache, err := cache.New(cache.Options{
		Backend:    cfg.CacheBackend,
		TTL:        cfg.CacheTTL,
		MaxEntries: cfg.CacheMaxEntries,
		RedisURL:   cfg.RedisURL,
		BadgerPath: cfg.BadgerPath,
		Logger:     logger,
	})
	if err != nil {
		return fmt.Errorf("analytics cache init failed: %w", err)
	}
	defer func() {
		if err := analyticsCache.Close(); err != nil {
			logger.WithError(err).Warn("analytics cache close failed")
		}
	}()

	appMetrics := metrics.New()
	if memoryCache, ok := analyticsCache.(*cache.MemoryCache); ok {
		if err := appMetrics.RegisterCacheEntries(memoryCache.Len); err != nil {
			return err
		}
		scheduler, err := cache.StartSweeper(memoryCache, cfg.CacheSweepSchedule, logger)
		if err != nil {
			return err
		}
		defer func() {
			<-scheduler.Stop().Done()
		}()
	}

	handler := api.NewHandler(database, api.HandlerOptions{
		Logger:  logger,
		Metrics: appMetrics,
		Cache:   analyticsCache,
	})
	app := api.NewApp(handler, api.AppConfig{
		CORSAllowOrigins: cfg.CORSAllowOrigins,
		RateLimitRPS:     cfg.RateLimitRPS,
		RateLimitBurst:   cfg.RateLimitBurst,
	})

	if ctx == nil {
		ctx = context.Background()
	}
	sigCtx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	listenErr := make(chan error, 1)
	go func() {
		listenErr <- app.Listen(cfg.ListenAddress())
	}()

	logger.WithFields(logrus.Fields{
		"address": cfg.ListenAddress(),
		"cache":   cfg.CacheBackend,
	}).Info("wavelength listening")

	select {
	case err := <-listenErr:
		return fmt.Errorf("server exited: %w", err)
	case <-sigCtx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	return nil
}
