package ingestion

import (
	"strconv"
	"strings"
)

// ParsePtNumber converts a Portuguese-formatted decimal string into a float64.
// Periods are thousands separators and the comma is the decimal separator,
// so "1.234,56" parses to 1234.56. It is a pure function with no state.
func ParsePtNumber(token string) (float64, error) {
	s := strings.TrimSpace(token)
	if s == "" {
		return 0, &ParseError{Token: token}
	}
	s = strings.ReplaceAll(s, ".", "")
	s = strings.ReplaceAll(s, ",", ".")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, &ParseError{Token: token}
	}
	return v, nil
}
