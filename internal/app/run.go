package app

import (
	"context"
	"fmt"
	"runtime/debug"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/guttosm/tpfpulse/config"
	"github.com/guttosm/tpfpulse/internal/holidays"
	"github.com/guttosm/tpfpulse/internal/ingestion"
	"github.com/guttosm/tpfpulse/internal/logger"
	"github.com/guttosm/tpfpulse/internal/notify"
	"github.com/guttosm/tpfpulse/internal/storage"
)

const isoDateLayout = "2006-01-02"

// Notification titles for the three run outcomes.
const (
	titleSuccess  = "✅ ANBIMA TPF markings extracted and stored successfully"
	titleUpToDate = "✋ ANBIMA TPF markings already up to date"
	titleFailure  = "❌ ANBIMA TPF marking extraction failed"
)

// extractor abstracts ingestion.Extractor so tests can fake the pipeline.
type extractor interface {
	Extract(ctx context.Context, initDate, finalDate time.Time, holidays ingestion.HolidaySet) (int, error)
}

// Runner is the top-level run controller. It computes the pending window of
// business days, drives the extractor over it, and is the single boundary
// that converts any error into an operator notification.
type Runner struct {
	cfg       config.Config
	repo      storage.MarkingsRepository
	calendar  holidays.Provider
	extractor extractor
	notifier  notify.Notifier
	now       func() time.Time
}

// NewRunner wires a run controller. now may be nil, in which case time.Now
// is used; tests inject a fixed clock.
func NewRunner(
	cfg config.Config,
	repo storage.MarkingsRepository,
	calendar holidays.Provider,
	ext extractor,
	notifier notify.Notifier,
	now func() time.Time,
) *Runner {
	if now == nil {
		now = time.Now
	}
	return &Runner{
		cfg:       cfg,
		repo:      repo,
		calendar:  calendar,
		extractor: ext,
		notifier:  notifier,
		now:       now,
	}
}

// Run executes one scheduled invocation end to end. Every outcome, including
// a panic anywhere below, produces exactly one notification; only a failure
// of the notification channel itself escapes as a bare error.
func (r *Runner) Run(ctx context.Context) (err error) {
	runID := uuid.NewString()
	log := logger.L().With().Str("run_id", runID).Logger()

	defer func() {
		if rec := recover(); rec != nil {
			log.Error().
				Str("panic", fmt.Sprintf("%v", rec)).
				Bytes("stack", debug.Stack()).
				Msg("panic recovered")
			err = fmt.Errorf("panic: %v", rec)
			if sendErr := r.notifier.Send(ctx, titleFailure, r.failureContent(err, runID)); sendErr != nil {
				log.Error().Err(sendErr).Msg("failure notification could not be delivered")
				err = sendErr
			}
		}
	}()

	log.Info().Msg("run start")
	upserted, upToDate, runErr := r.runWindow(ctx, &log)

	switch {
	case runErr != nil:
		log.Error().Err(runErr).Msg("run failed")
		if sendErr := r.notifier.Send(ctx, titleFailure, r.failureContent(runErr, runID)); sendErr != nil {
			log.Error().Err(sendErr).Msg("failure notification could not be delivered")
			return sendErr
		}
		return runErr

	case upToDate:
		log.Info().Msg("already up to date")
		if sendErr := r.notifier.Send(ctx, titleUpToDate, r.runContext(runID)); sendErr != nil {
			log.Error().Err(sendErr).Msg("notification could not be delivered")
			return sendErr
		}
		return nil

	default:
		log.Info().Int("markings", upserted).Msg("run finished")
		content := fmt.Sprintf("Markings upserted: %d\n\n%s", upserted, r.runContext(runID))
		if sendErr := r.notifier.Send(ctx, titleSuccess, content); sendErr != nil {
			log.Error().Err(sendErr).Msg("notification could not be delivered")
			return sendErr
		}
		return nil
	}
}

// runWindow computes [init_date, final_date] and invokes the extractor.
// The boolean result is true when storage already holds final_date.
func (r *Runner) runWindow(ctx context.Context, log *zerolog.Logger) (int, bool, error) {
	now := r.now()
	today := truncateToDate(now)

	backfill, err := time.ParseInLocation(isoDateLayout, r.cfg.Anbima.BackfillStart, now.Location())
	if err != nil {
		return 0, false, fmt.Errorf("invalid BACKFILL_START_DATE: %w", err)
	}

	// A week of slack on both ends covers the business-day walks around the
	// window boundaries.
	holidaySet, err := r.calendar.Holidays(backfill.AddDate(0, 0, -7), today.AddDate(0, 0, 7))
	if err != nil {
		return 0, false, fmt.Errorf("load holidays: %w", err)
	}

	// ANBIMA publishes same-day data only after the cutoff hour.
	finalDate := today
	if now.Hour() < r.cfg.Anbima.CutoffHour {
		finalDate = ingestion.PreviousBusinessDay(today, holidaySet)
	}

	last, hasData, err := r.repo.LastReferenceDate(ctx)
	if err != nil {
		return 0, false, fmt.Errorf("read last reference date: %w", err)
	}

	initDate := backfill
	if hasData {
		if finalDate.Format(isoDateLayout) <= last.Format(isoDateLayout) {
			return 0, true, nil
		}
		initDate = ingestion.NextBusinessDay(last, holidaySet)
	}

	log.Info().
		Str("init_date", initDate.Format(isoDateLayout)).
		Str("final_date", finalDate.Format(isoDateLayout)).
		Bool("backfill", !hasData).
		Msg("run window computed")

	upserted, err := r.extractor.Extract(ctx, initDate, finalDate, holidaySet)
	return upserted, false, err
}

func (r *Runner) runContext(runID string) string {
	now := r.now()
	return fmt.Sprintf("Date: %s\n\nTime: %s\n\nRun: %s",
		now.Format("02/01/2006"), now.Format("15:04:05"), runID)
}

func (r *Runner) failureContent(err error, runID string) string {
	return fmt.Sprintf("Error: %v\n\n%s", err, r.runContext(runID))
}

func truncateToDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
