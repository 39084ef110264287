package holidays

import (
	"time"

	"github.com/guttosm/tpfpulse/internal/ingestion"
)

// Provider supplies the set of non-business dates used by the business-day
// arithmetic. Implementations may compute locally or fetch from a calendar
// service.
type Provider interface {
	Holidays(from, to time.Time) (ingestion.HolidaySet, error)
}

// Calendar is a local Provider for Brazilian national holidays, which is the
// calendar ANBIMA observes for TPF publication.
type Calendar struct{}

func NewCalendar() *Calendar { return &Calendar{} }

// Holidays returns every Brazilian national holiday between from and to
// inclusive, keyed by "YYYY-MM-DD".
func (c *Calendar) Holidays(from, to time.Time) (ingestion.HolidaySet, error) {
	set := ingestion.HolidaySet{}
	for year := from.Year(); year <= to.Year(); year++ {
		for _, d := range yearHolidays(year) {
			if d.Before(truncateToDate(from)) || d.After(truncateToDate(to)) {
				continue
			}
			set[d.Format("2006-01-02")] = struct{}{}
		}
	}
	return set, nil
}

// yearHolidays lists the national fixed holidays plus the movable ones
// derived from Easter for a given year.
func yearHolidays(year int) []time.Time {
	fixed := []struct {
		month time.Month
		day   int
	}{
		{time.January, 1},   // New Year
		{time.April, 21},    // Tiradentes
		{time.May, 1},       // Labor Day
		{time.September, 7}, // Independence Day
		{time.October, 12},  // Our Lady Aparecida
		{time.November, 2},  // All Souls' Day
		{time.November, 15}, // Republic Proclamation
		{time.December, 25}, // Christmas
	}

	out := make([]time.Time, 0, len(fixed)+4)
	for _, f := range fixed {
		out = append(out, time.Date(year, f.month, f.day, 0, 0, 0, 0, time.Local))
	}

	easter := easterSunday(year)
	out = append(out,
		easter.AddDate(0, 0, -48), // Carnival Monday
		easter.AddDate(0, 0, -47), // Carnival Tuesday
		easter.AddDate(0, 0, -2),  // Good Friday
		easter.AddDate(0, 0, 60),  // Corpus Christi
	)
	return out
}

// easterSunday returns the date of Easter Sunday for a given year
// (Meeus/Jones/Butcher algorithm).
func easterSunday(year int) time.Time {
	a := year % 19
	b := year / 100
	c := year % 100
	d := b / 4
	e := b % 4
	f := (b + 8) / 25
	g := (b - f + 1) / 3
	h := (19*a + b - d - g + 15) % 30
	i := c / 4
	k := c % 4
	l := (32 + 2*e + 2*i - h - k) % 7
	m := (a + 11*h + 22*l) / 451
	month := (h + l - 7*m + 114) / 31
	day := ((h + l - 7*m + 114) % 31) + 1

	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.Local)
}

func truncateToDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
