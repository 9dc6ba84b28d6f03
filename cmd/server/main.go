package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/clawdbotatg/nerve-cord/internal/api"
	"github.com/clawdbotatg/nerve-cord/internal/config"
	"github.com/clawdbotatg/nerve-cord/internal/metrics"
	"github.com/clawdbotatg/nerve-cord/internal/store"
)

// sweepInterval drives both the expiry sweep and the periodic snapshot save,
// deliberately on one clock: persistence freshness tracks expiry freshness.
const sweepInterval = 30 * time.Second

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize logger
	var logger zerolog.Logger
	if cfg.IsDevelopment() {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}).
			With().
			Timestamp().
			Logger()
	} else {
		logger = zerolog.New(os.Stdout).
			With().
			Timestamp().
			Logger()
	}

	// Initialize store and load persisted collections
	persister := store.NewFilePersister(cfg.DataDir, logger)
	ds := store.NewMemoryStore(persister, logger)
	ds.Load()

	alog := store.NewActivityLog(filepath.Join(cfg.DataDir, "log"), logger)

	// Background sweep + save loop
	sweepCtx, stopSweep := context.WithCancel(context.Background())
	go func() {
		ticker := time.NewTicker(sweepInterval)
		defer ticker.Stop()
		for {
			select {
			case <-sweepCtx.Done():
				return
			case <-ticker.C:
				expired, purged := ds.Sweep()
				if expired > 0 {
					metrics.MessagesExpired.Add(float64(expired))
				}
				if expired > 0 || purged > 0 {
					logger.Debug().
						Int("expired_messages", expired).
						Int("purged_larvae", purged).
						Msg("sweep completed")
				}
				ds.Save()
			}
		}
	}()

	// Create router
	router := api.NewRouter(logger, cfg, ds, alog)

	// Create server
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		logger.Info().
			Str("port", cfg.Port).
			Str("env", cfg.Env).
			Str("data_dir", cfg.DataDir).
			Msg("starting nerve-cord broker")

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server failed to start")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down server...")
	stopSweep()

	// Graceful shutdown with 30 second timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Fatal().Err(err).Msg("server forced to shutdown")
	}

	// Final snapshot so a clean shutdown never loses the last 30 seconds.
	ds.Save()

	logger.Info().Msg("server stopped")
}
