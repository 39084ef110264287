package ingestion

import (
	"context"
	"fmt"
	"time"

	"github.com/guttosm/tpfpulse/internal/domain/models"
	"github.com/guttosm/tpfpulse/internal/logger"
	"github.com/guttosm/tpfpulse/internal/storage"
)

// Extractor drives the per-day fetch/parse loop over a window of business
// days and hands the melted result to storage in a single upsert.
type Extractor struct {
	fetcher Fetcher
	repo    storage.MarkingsRepository
}

func NewExtractor(fetcher Fetcher, repo storage.MarkingsRepository) *Extractor {
	return &Extractor{fetcher: fetcher, repo: repo}
}

// Extract processes every business day in [initDate, finalDate] in order,
// strictly sequentially, and returns the number of long-form rows upserted.
//
// Per-day policy:
//   - file found: parse and accumulate.
//   - 404 on a non-final day: skip it (ANBIMA sometimes lags during
//     historical catch-up; the day is never backfilled).
//   - 404 on the final day: *NotYetPublishedError. The caller schedules a
//     later run; nothing retries here.
//   - transport fault: *FetchError, remaining days abandoned.
//
// Storage is written exactly once, after the whole window succeeds, so a
// mid-run failure leaves it untouched. An empty window is a no-op success.
func (e *Extractor) Extract(ctx context.Context, initDate, finalDate time.Time, holidays HolidaySet) (int, error) {
	dates := BusinessDayRange(initDate, finalDate, holidays)
	if len(dates) == 0 {
		logger.L().Info().
			Str("init_date", initDate.Format(isoDateLayout)).
			Str("final_date", finalDate.Format(isoDateLayout)).
			Msg("no business days in window, nothing to do")
		return 0, nil
	}

	logger.L().Info().
		Str("init_date", dates[0].Format(isoDateLayout)).
		Str("final_date", dates[len(dates)-1].Format(isoDateLayout)).
		Int("days", len(dates)).
		Msg("extraction start")

	var rows []models.MarkingRow
	for i, date := range dates {
		report, err := e.fetcher.Fetch(ctx, date)
		if err != nil {
			return 0, err
		}

		if report.Status == models.StatusNotFound {
			if i == len(dates)-1 {
				return 0, &NotYetPublishedError{Date: date}
			}
			logger.L().Warn().
				Str("date", date.Format(isoDateLayout)).
				Msg("file not published, skipping day")
			continue
		}

		dayRows, err := ParseDailyReport(report.Body)
		if err != nil {
			return 0, fmt.Errorf("report for %s: %w", date.Format(isoDateLayout), err)
		}
		rows = append(rows, dayRows...)
		logger.L().Info().
			Str("date", date.Format(isoDateLayout)).
			Int("rows", len(dayRows)).
			Msg("file parsed")
	}

	if len(rows) == 0 {
		logger.L().Info().Msg("no rows accumulated, skipping persistence")
		return 0, nil
	}

	markings := Melt(rows)
	if err := e.repo.UpsertMarkings(ctx, markings); err != nil {
		return 0, fmt.Errorf("upsert markings: %w", err)
	}

	logger.L().Info().Int("markings", len(markings)).Msg("extraction persisted")
	return len(markings), nil
}
