package ingestion

import (
	"testing"
	"time"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

func TestBusinessDayRange_WeekdaysOnly(t *testing.T) {
	// Mon 2023-01-02 .. Sun 2023-01-08
	got := BusinessDayRange(day(2023, time.January, 2), day(2023, time.January, 8), nil)
	if len(got) != 5 {
		t.Fatalf("want 5 business days, got %d", len(got))
	}
	for i, d := range got {
		if wd := d.Weekday(); wd == time.Saturday || wd == time.Sunday {
			t.Fatalf("weekend day returned: %v", d)
		}
		if i > 0 && !got[i-1].Before(d) {
			t.Fatal("dates should be strictly increasing")
		}
	}
}

func TestBusinessDayRange_ExcludesHolidays(t *testing.T) {
	holidays := HolidaySet{"2023-01-04": {}}
	got := BusinessDayRange(day(2023, time.January, 2), day(2023, time.January, 6), holidays)
	if len(got) != 4 {
		t.Fatalf("want 4 days, got %d", len(got))
	}
	for _, d := range got {
		if d.Format(isoDateLayout) == "2023-01-04" {
			t.Fatal("holiday must be excluded")
		}
	}
}

func TestBusinessDayRange_InclusiveEndpoints(t *testing.T) {
	got := BusinessDayRange(day(2023, time.January, 3), day(2023, time.January, 5), nil)
	if len(got) != 3 {
		t.Fatalf("want 3 days, got %d", len(got))
	}
	if got[0].Day() != 3 || got[2].Day() != 5 {
		t.Fatalf("endpoints must be included: %v", got)
	}
}

func TestBusinessDayRange_EmptyWhenStartAfterEnd(t *testing.T) {
	got := BusinessDayRange(day(2023, time.January, 10), day(2023, time.January, 5), nil)
	if len(got) != 0 {
		t.Fatalf("want empty range, got %d days", len(got))
	}
}

func TestNextBusinessDay_SkipsWeekendAndHoliday(t *testing.T) {
	// Fri 2023-01-06 → Mon 2023-01-09
	if got := NextBusinessDay(day(2023, time.January, 6), nil); got.Day() != 9 {
		t.Fatalf("want Jan 9, got %v", got)
	}
	// Monday is a holiday → Tuesday
	holidays := HolidaySet{"2023-01-09": {}}
	if got := NextBusinessDay(day(2023, time.January, 6), holidays); got.Day() != 10 {
		t.Fatalf("want Jan 10, got %v", got)
	}
}

func TestPreviousBusinessDay_SkipsWeekend(t *testing.T) {
	// Mon 2023-01-09 → Fri 2023-01-06
	if got := PreviousBusinessDay(day(2023, time.January, 9), nil); got.Day() != 6 {
		t.Fatalf("want Jan 6, got %v", got)
	}
}
