package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/guttosm/tpfpulse/config"
	"github.com/guttosm/tpfpulse/internal/app"
	"github.com/guttosm/tpfpulse/internal/logger"
)

// main is the entry point of the tpfpulse job.
//
// The process runs as a single scheduled invocation with no arguments: it
// computes the pending window of business days, downloads the ANBIMA TPF
// marking files for it, upserts the melted rows into Postgres, and reports
// the outcome to the operator channel. Every run ends with exactly one
// notification; a non-zero exit means the run (or the notification channel)
// failed and the scheduler should surface it.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load configuration from environment or .env file
	config.LoadConfig()

	// Initialize JSON logger
	logger.Init()

	runner, cleanup, err := app.InitializeApp()
	if err != nil {
		logger.L().Fatal().Err(err).Msg("app init error")
	}
	defer cleanup()

	if err := runner.Run(ctx); err != nil {
		logger.L().Error().Err(err).Msg("run failed")
		cleanup()
		os.Exit(1)
	}
}
