package ingestion

import "time"

const isoDateLayout = "2006-01-02"

// HolidaySet is a set of non-business dates keyed by "YYYY-MM-DD".
type HolidaySet map[string]struct{}

// BusinessDayRange returns the ascending sequence of business days between
// start and end inclusive, restricted to Monday-Friday and excluding every
// date present in holidays. The result is empty when start is after end.
func BusinessDayRange(start, end time.Time, holidays HolidaySet) []time.Time {
	var out []time.Time
	for d := truncateToDate(start); !d.After(truncateToDate(end)); d = d.AddDate(0, 0, 1) {
		if isBusinessDay(d, holidays) {
			out = append(out, d)
		}
	}
	return out
}

// NextBusinessDay returns the first business day strictly after d.
func NextBusinessDay(d time.Time, holidays HolidaySet) time.Time {
	n := truncateToDate(d).AddDate(0, 0, 1)
	for !isBusinessDay(n, holidays) {
		n = n.AddDate(0, 0, 1)
	}
	return n
}

// PreviousBusinessDay returns the last business day strictly before d.
func PreviousBusinessDay(d time.Time, holidays HolidaySet) time.Time {
	p := truncateToDate(d).AddDate(0, 0, -1)
	for !isBusinessDay(p, holidays) {
		p = p.AddDate(0, 0, -1)
	}
	return p
}

func isBusinessDay(d time.Time, holidays HolidaySet) bool {
	if wd := d.Weekday(); wd == time.Saturday || wd == time.Sunday {
		return false
	}
	_, holiday := holidays[d.Format(isoDateLayout)]
	return !holiday
}

func truncateToDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
