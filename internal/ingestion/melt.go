package ingestion

import (
	"math"

	"github.com/guttosm/tpfpulse/internal/domain/models"
)

// varTypes lists the melted variable names in output order: the long table
// carries all TX_MAX rows first, then TX_MIN, and so on.
var varTypes = []string{"TX_MAX", "TX_MIN", "TX_IND", "PU", "DESV_PAD"}

// Melt reshapes wide marking rows into long (variable, value) observations
// keyed by (REF_DATE, ID, TIPO, COD_SELIC, DATA_EMISSAO, DATA_VENC).
// The NaN placeholder carried from parsing becomes 0 here.
func Melt(rows []models.MarkingRow) []models.Marking {
	out := make([]models.Marking, 0, len(rows)*len(varTypes))
	for _, vt := range varTypes {
		for _, r := range rows {
			out = append(out, models.Marking{
				RefDate:     r.RefDate,
				ID:          r.ID,
				Tipo:        r.Tipo,
				CodSelic:    r.CodSelic,
				DataEmissao: r.DataEmissao,
				DataVenc:    r.DataVenc,
				VarType:     vt,
				Value:       meltValue(observation(r, vt)),
			})
		}
	}
	return out
}

func observation(r models.MarkingRow, varType string) float64 {
	switch varType {
	case "TX_MAX":
		return r.TxMax
	case "TX_MIN":
		return r.TxMin
	case "TX_IND":
		return r.TxInd
	case "PU":
		return r.PU
	default:
		return r.DesvPad
	}
}

func meltValue(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return v
}
