package holidays

import (
	"testing"
	"time"
)

func TestCalendar_FixedHolidays(t *testing.T) {
	cal := NewCalendar()
	set, err := cal.Holidays(time.Date(2023, 1, 1, 0, 0, 0, 0, time.Local), time.Date(2023, 12, 31, 0, 0, 0, 0, time.Local))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, want := range []string{
		"2023-01-01", // New Year
		"2023-04-21", // Tiradentes
		"2023-09-07", // Independence Day
		"2023-12-25", // Christmas
	} {
		if _, ok := set[want]; !ok {
			t.Fatalf("missing fixed holiday %s", want)
		}
	}
}

func TestCalendar_MovableHolidays2023(t *testing.T) {
	cal := NewCalendar()
	set, err := cal.Holidays(time.Date(2023, 1, 1, 0, 0, 0, 0, time.Local), time.Date(2023, 12, 31, 0, 0, 0, 0, time.Local))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Easter Sunday 2023 was April 9.
	for _, want := range []string{
		"2023-02-20", // Carnival Monday
		"2023-02-21", // Carnival Tuesday
		"2023-04-07", // Good Friday
		"2023-06-08", // Corpus Christi
	} {
		if _, ok := set[want]; !ok {
			t.Fatalf("missing movable holiday %s", want)
		}
	}
}

func TestCalendar_RangeBounds(t *testing.T) {
	cal := NewCalendar()
	// Window that excludes New Year but includes Tiradentes.
	set, err := cal.Holidays(time.Date(2023, 3, 1, 0, 0, 0, 0, time.Local), time.Date(2023, 5, 31, 0, 0, 0, 0, time.Local))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := set["2023-01-01"]; ok {
		t.Fatal("holiday outside range should be excluded")
	}
	if _, ok := set["2023-04-21"]; !ok {
		t.Fatal("holiday inside range should be included")
	}
}

func TestEasterSunday(t *testing.T) {
	cases := []struct {
		year  int
		month time.Month
		day   int
	}{
		{2023, time.April, 9},
		{2024, time.March, 31},
		{2025, time.April, 20},
	}
	for _, tc := range cases {
		got := easterSunday(tc.year)
		if got.Month() != tc.month || got.Day() != tc.day {
			t.Fatalf("easterSunday(%d) = %v, want %v %d", tc.year, got, tc.month, tc.day)
		}
	}
}
