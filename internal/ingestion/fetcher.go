package ingestion

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/guttosm/tpfpulse/internal/domain/models"
)

// Fetcher retrieves one day's raw marking file.
type Fetcher interface {
	Fetch(ctx context.Context, date time.Time) (models.DailyReport, error)
}

// FileFetcher downloads daily "ms{YYMMDD}.txt" files from the ANBIMA
// secondary-market endpoint.
type FileFetcher struct {
	baseURL string
	client  *http.Client
}

// NewFileFetcher builds a fetcher for the given base URL with a per-request
// timeout.
//
// Known relaxed-trust decision: certificate verification is skipped because
// the legacy ANBIMA endpoint fails standard chain validation. Do not reuse
// this transport for new endpoints without review.
func NewFileFetcher(baseURL string, timeout time.Duration) *FileFetcher {
	transport := &http.Transport{
		TLSClientConfig: &tls.Config{InsecureSkipVerify: true}, // #nosec G402 -- legacy endpoint, see above
	}
	return &FileFetcher{
		baseURL: strings.TrimRight(baseURL, "/"),
		client: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
	}
}

// URL returns the per-day resource address: {base}/ms{YYMMDD}.txt.
func (f *FileFetcher) URL(date time.Time) string {
	return fmt.Sprintf("%s/ms%s.txt", f.baseURL, date.Format("060102"))
}

// Fetch retrieves the file for date and classifies the outcome:
// 2xx carries the body (StatusFound), 404 means not yet published
// (StatusNotFound, not an error), and anything else is a *FetchError.
func (f *FileFetcher) Fetch(ctx context.Context, date time.Time) (models.DailyReport, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.URL(date), nil)
	if err != nil {
		return models.DailyReport{}, &FetchError{Date: date, Err: err}
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return models.DailyReport{}, &FetchError{Date: date, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return models.DailyReport{Date: date, Status: models.StatusNotFound}, nil
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return models.DailyReport{}, &FetchError{Date: date, Err: fmt.Errorf("read body: %w", err)}
		}
		return models.DailyReport{Date: date, Status: models.StatusFound, Body: string(body)}, nil
	default:
		return models.DailyReport{}, &FetchError{Date: date, Err: fmt.Errorf("unexpected status %d", resp.StatusCode)}
	}
}
