package app

import (
	"fmt"
	"time"

	"github.com/guttosm/tpfpulse/config"
	"github.com/guttosm/tpfpulse/internal/holidays"
	"github.com/guttosm/tpfpulse/internal/ingestion"
	"github.com/guttosm/tpfpulse/internal/notify"
	"github.com/guttosm/tpfpulse/internal/storage"
)

// InitializeApp sets up all application dependencies and returns a fully
// wired Runner, a cleanup function for shutdown, and any error encountered
// during initialization.
//
// Responsibilities:
//   - Connects to PostgreSQL using InitPostgres().
//   - Initializes the repository layer (MarkingsRepository).
//   - Builds the ANBIMA file fetcher and the extraction pipeline.
//   - Builds the holiday calendar and the Teams notifier.
//   - Provides a cleanup function to close resources (e.g., DB connection).
func InitializeApp() (*Runner, func(), error) {
	// Load global configuration
	cfg := config.AppConfig

	// Connect to PostgreSQL
	// indirection for unit testing
	db, err := postgresOpener(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize postgres: %w", err)
	}

	repo := storage.NewMarkingsRepository(db)

	fetcher := ingestion.NewFileFetcher(
		cfg.Anbima.BaseURL,
		time.Duration(cfg.Anbima.TimeoutSeconds)*time.Second,
	)
	ext := ingestion.NewExtractor(fetcher, repo)

	notifier := notify.NewTeamsWebhook(
		cfg.Notify.WebhookURL,
		time.Duration(cfg.Notify.TimeoutSeconds)*time.Second,
	)

	runner := NewRunner(cfg, repo, holidays.NewCalendar(), ext, notifier, time.Now)

	// Cleanup resources on shutdown
	cleanup := func() {
		_ = db.Close()
	}

	return runner, cleanup, nil
}
