package ingestion

import (
	"fmt"
	"time"
)

// ParseError reports a token that is not a valid Portuguese-formatted number.
type ParseError struct {
	Token string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid number token %q", e.Token)
}

// MalformedLineError reports a report line that does not match the expected
// record shape (field count or date format).
type MalformedLineError struct {
	Line   int
	Reason string
}

func (e *MalformedLineError) Error() string {
	return fmt.Sprintf("malformed line %d: %s", e.Line, e.Reason)
}

// FetchError reports a network fault or an unexpected HTTP status while
// retrieving one day's file. It is fatal to the whole run.
type FetchError struct {
	Date time.Time
	Err  error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch markings for %s: %v", e.Date.Format(isoDateLayout), e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// NotYetPublishedError means the final day of the requested window returned
// 404: ANBIMA has not released the file yet. The caller should schedule a
// later run; nothing retries internally.
type NotYetPublishedError struct {
	Date time.Time
}

func (e *NotYetPublishedError) Error() string {
	return fmt.Sprintf("markings for %s not yet published, run again later", e.Date.Format(isoDateLayout))
}
