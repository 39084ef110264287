package ingestion

import (
	"math"
	"testing"

	"github.com/guttosm/tpfpulse/internal/domain/models"
)

func TestMelt_ShapeAndOrder(t *testing.T) {
	rows := []models.MarkingRow{
		{
			Tipo: "LTN", ID: "LTN01012024", RefDate: "2023-01-05",
			CodSelic: "100000", DataEmissao: "2021-07-08", DataVenc: "2024-01-01",
			TxMax: 13.2105, TxMin: 13.1875, TxInd: 13.2002, PU: 8857.44709, DesvPad: 0.0214,
		},
		{
			Tipo: "LFT", ID: "LFT01092028", RefDate: "2023-01-05",
			CodSelic: "210100", DataEmissao: "2020-09-01", DataVenc: "2028-09-01",
			TxMax: 0.0555, TxMin: math.NaN(), TxInd: 0.0432, PU: 13017.085399, DesvPad: math.NaN(),
		},
	}

	out := Melt(rows)
	if len(out) != 10 {
		t.Fatalf("want 2 rows x 5 variables = 10, got %d", len(out))
	}

	// Column-major: all TX_MAX observations first.
	if out[0].VarType != "TX_MAX" || out[1].VarType != "TX_MAX" {
		t.Fatalf("first block should be TX_MAX, got %q %q", out[0].VarType, out[1].VarType)
	}
	if out[0].Value != 13.2105 || out[1].Value != 0.0555 {
		t.Fatalf("TX_MAX values: %v %v", out[0].Value, out[1].Value)
	}

	// Key columns carried through unchanged.
	if out[1].ID != "LFT01092028" || out[1].RefDate != "2023-01-05" || out[1].CodSelic != "210100" {
		t.Fatalf("key columns lost: %+v", out[1])
	}
	if out[1].DataEmissao != "2020-09-01" || out[1].DataVenc != "2028-09-01" {
		t.Fatalf("date keys lost: %+v", out[1])
	}
}

// The "--" placeholder must become 0 here, not in the parser.
func TestMelt_PlaceholderBecomesZero(t *testing.T) {
	rows := []models.MarkingRow{
		{ID: "LFT01092028", TxMax: 1, TxMin: math.NaN(), TxInd: 2, PU: 3, DesvPad: math.NaN()},
	}
	out := Melt(rows)
	for _, m := range out {
		if math.IsNaN(m.Value) {
			t.Fatalf("NaN leaked into melted output for %s", m.VarType)
		}
		if m.VarType == "TX_MIN" && m.Value != 0 {
			t.Fatalf("TX_MIN: want 0, got %v", m.Value)
		}
		if m.VarType == "DESV_PAD" && m.Value != 0 {
			t.Fatalf("DESV_PAD: want 0, got %v", m.Value)
		}
	}
}

func TestMelt_Empty(t *testing.T) {
	if out := Melt(nil); len(out) != 0 {
		t.Fatalf("want empty output, got %d", len(out))
	}
}
