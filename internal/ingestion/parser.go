package ingestion

import (
	"fmt"
	"math"
	"strings"

	"github.com/guttosm/tpfpulse/internal/domain/models"
)

const (
	// The file opens with a three-line header/footer preamble.
	reportPreambleLines = 3
	reportFieldCount    = 10
	// ANBIMA prints "--" where a rate was not computed for the day.
	missingToken = "--"
)

// ParseDailyReport turns one day's raw text into typed wide rows.
//
// The file is "\r\n"-terminated and "@"-delimited; after the preamble each
// non-blank line must split into exactly 10 fields:
//
//	0 instrument type   5 max rate
//	1 reference date    6 min rate
//	2 SELIC code        7 indicative rate
//	3 issue date        8 unit price
//	4 maturity date     9 standard deviation
//
// Dates arrive as 8-digit YYYYMMDD. A line with the wrong field count or a
// non-8-digit date fails with *MalformedLineError; a bad numeric token fails
// with *ParseError.
func ParseDailyReport(text string) ([]models.MarkingRow, error) {
	lines := strings.Split(text, "\r\n")
	if len(lines) <= reportPreambleLines {
		return nil, nil
	}
	lines = lines[reportPreambleLines:]

	var rows []models.MarkingRow
	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		lineNo := reportPreambleLines + i + 1

		fields := strings.Split(line, "@")
		if len(fields) != reportFieldCount {
			return nil, &MalformedLineError{
				Line:   lineNo,
				Reason: fmt.Sprintf("expected %d fields, got %d", reportFieldCount, len(fields)),
			}
		}

		row, err := fieldsToRow(fields, lineNo)
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// fieldsToRow converts one already-split record (length == 10) into a
// models.MarkingRow.
func fieldsToRow(fields []string, lineNo int) (models.MarkingRow, error) {
	var row models.MarkingRow

	refDate, err := isoDate(fields[1])
	if err != nil {
		return row, &MalformedLineError{Line: lineNo, Reason: fmt.Sprintf("reference date: %v", err)}
	}
	emissao, err := isoDate(fields[3])
	if err != nil {
		return row, &MalformedLineError{Line: lineNo, Reason: fmt.Sprintf("issue date: %v", err)}
	}
	venc, err := isoDate(fields[4])
	if err != nil {
		return row, &MalformedLineError{Line: lineNo, Reason: fmt.Sprintf("maturity date: %v", err)}
	}
	digits, err := maturityDigits(fields[4])
	if err != nil {
		return row, &MalformedLineError{Line: lineNo, Reason: fmt.Sprintf("maturity date: %v", err)}
	}

	row.Tipo = fields[0]
	row.ID = fields[0] + digits
	row.RefDate = refDate
	row.CodSelic = fields[2]
	row.DataEmissao = emissao
	row.DataVenc = venc

	numeric := []struct {
		field string
		dst   *float64
	}{
		{fields[5], &row.TxMax},
		{fields[6], &row.TxMin},
		{fields[7], &row.TxInd},
		{fields[8], &row.PU},
		{fields[9], &row.DesvPad},
	}
	for _, n := range numeric {
		v, err := parseObservation(n.field)
		if err != nil {
			return row, err
		}
		*n.dst = v
	}
	return row, nil
}

// parseObservation parses one numeric column, carrying the "--" placeholder
// through as NaN. The zero substitution belongs to the melt stage.
func parseObservation(token string) (float64, error) {
	if strings.TrimSpace(token) == missingToken {
		return math.NaN(), nil
	}
	return ParsePtNumber(token)
}

// isoDate reformats an 8-digit YYYYMMDD string into YYYY-MM-DD.
func isoDate(s string) (string, error) {
	if err := checkDigits(s); err != nil {
		return "", err
	}
	return s[:4] + "-" + s[4:6] + "-" + s[6:], nil
}

// maturityDigits reorders a YYYYMMDD maturity date into the DDMMYYYY digit
// string used as the identifier suffix.
func maturityDigits(s string) (string, error) {
	if err := checkDigits(s); err != nil {
		return "", err
	}
	return s[6:] + s[4:6] + s[:4], nil
}

func checkDigits(s string) error {
	if len(s) != 8 {
		return fmt.Errorf("expected 8 digits, got %q", s)
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return fmt.Errorf("expected 8 digits, got %q", s)
		}
	}
	return nil
}
