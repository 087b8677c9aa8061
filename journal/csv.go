package journal

import (
	"encoding/csv"
	"io"
	"strconv"
	"time"
)

var exportHeader = []string{
	"id", "pair", "exchange", "status", "position_type",
	"trade_date", "close_date",
	"planned_entry", "planned_stop", "leverage",
	"one_r", "margin", "position_size", "quantity",
	"planned_weighted_rr", "total_pnl", "pnl_in_r",
	"import_source", "notes",
}

// ExportCSV writes the records as a spreadsheet-friendly CSV. Nullable
// metrics export as empty cells, not zeros, so imported trades don't look
// like break-even plans.
func ExportCSV(w io.Writer, trades []TradeRecord) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(exportHeader); err != nil {
		return err
	}
	for _, t := range trades {
		closeDate := ""
		if !t.CloseDate.IsZero() {
			closeDate = t.CloseDate.UTC().Format(time.RFC3339)
		}
		row := []string{
			t.ID,
			string(t.Pair),
			t.Exchange,
			string(t.Status),
			string(t.PositionType),
			t.TradeDate.UTC().Format(time.RFC3339),
			closeDate,
			f(t.PlannedEntry),
			f(t.PlannedStop),
			strconv.Itoa(t.Leverage),
			f(t.OneR),
			f(t.Margin),
			f(t.PositionSize),
			f(t.Quantity),
			fp(t.PlannedWeightedRR),
			fp(t.TotalPnl),
			fp(t.PnlInR),
			t.ImportSource,
			t.Notes,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func f(x float64) string {
	return strconv.FormatFloat(x, 'f', -1, 64)
}

func fp(x *float64) string {
	if x == nil {
		return ""
	}
	return f(*x)
}
