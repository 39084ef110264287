package models

import "time"

// ReportStatus classifies the outcome of fetching one day's marking file.
type ReportStatus int

const (
	// StatusFound means the file exists and Body carries its raw text.
	StatusFound ReportStatus = iota
	// StatusNotFound means ANBIMA has not published the file for that date.
	StatusNotFound
)

// DailyReport is the raw text payload of one calendar date's marking file.
// It is created by the fetcher, consumed by the parser, then discarded.
type DailyReport struct {
	Date   time.Time
	Status ReportStatus
	Body   string
}

// MarkingRow is one parsed line of the ANBIMA TPF file in wide form.
// Column names follow the storage schema (inherited from the source file):
//
//	TIPO          instrument type code (e.g., "LTN", "NTN-B")
//	ID            TIPO + maturity date digits reordered as DDMMYYYY
//	REF_DATE      reference date, "YYYY-MM-DD"
//	COD_SELIC     SELIC settlement code, passed through unchanged
//	DATA_EMISSAO  issue date, "YYYY-MM-DD"
//	DATA_VENC     maturity date, "YYYY-MM-DD"
//	TX_MAX/TX_MIN/TX_IND/PU/DESV_PAD  the five numeric observations
//
// A numeric field holds NaN when the source shows the "--" placeholder;
// the substitution by zero happens at melt time, not here.
type MarkingRow struct {
	Tipo        string
	ID          string
	RefDate     string
	CodSelic    string
	DataEmissao string
	DataVenc    string
	TxMax       float64
	TxMin       float64
	TxInd       float64
	PU          float64
	DesvPad     float64
}

// Marking is one melted (long-form) observation: the unit persisted to the
// anbima_tpf table, keyed by (ID, REF_DATE, VAR_TYPE).
type Marking struct {
	RefDate     string
	ID          string
	Tipo        string
	CodSelic    string
	DataEmissao string
	DataVenc    string
	VarType     string
	Value       float64
}
