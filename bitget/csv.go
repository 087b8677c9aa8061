// Package bitget normalizes BitGet futures order-history CSV exports into
// journal trade records.
//
// The export is semantically lossy: one averaged entry and exit price per
// trade, no stop loss, no leverage. The normalizer reconstructs an
// approximate plan from it and flags everything it had to estimate.
package bitget

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/ehjvfzekdalq/trading-journal-macos-sub000/market"
)

var (
	ErrMalformedRow             = errors.New("malformed csv row")
	ErrUnrecognizedFuturesField = errors.New("unrecognized futures field")
)

// expectedColumns is the BitGet futures order-history export layout:
// futures, open time, entry price, exit price, quantity, margin mode,
// margin, realized pnl, funding, opening fee, closing fee, close time.
const expectedColumns = 12

var (
	futuresRe = regexp.MustCompile(`^([A-Z0-9]+USDT)\s+(Long|Short)`)
	numericRe = regexp.MustCompile(`^-?\d+\.?\d*`)
)

// Row is one normalized trade from a BitGet export.
type Row struct {
	Pair        market.Pair
	Type        market.PositionType
	EntryPrice  float64
	ExitPrice   float64
	Quantity    float64
	RealizedPnl float64
	TotalFees   float64

	// Opening/ClosingTime keep the export's literal timestamp text; the
	// fingerprint is built over it verbatim so re-imports stay stable
	// regardless of how the dates parse.
	OpeningTime string
	ClosingTime string

	// CoercedFields lists numeric columns that had no parsable numeric
	// prefix and defaulted to zero. Brokers leave zero-fee cells blank,
	// so the default is expected, but it stays observable rather than
	// silent.
	CoercedFields []string
}

// ParseRow parses one data line of a BitGet CSV export.
func ParseRow(line string) (Row, error) {
	line = strings.TrimPrefix(line, "\ufeff")
	fields := strings.Split(line, ",")
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}
	if len(fields) < expectedColumns {
		return Row{}, fmt.Errorf("%w: expected %d columns, got %d", ErrMalformedRow, expectedColumns, len(fields))
	}

	m := futuresRe.FindStringSubmatch(fields[0])
	if m == nil {
		return Row{}, fmt.Errorf("%w: %q", ErrUnrecognizedFuturesField, fields[0])
	}

	r := Row{
		Pair:        market.PairFromSymbol(m[1]),
		OpeningTime: fields[1],
		ClosingTime: fields[11],
	}
	if m[2] == "Long" {
		r.Type = market.Long
	} else {
		r.Type = market.Short
	}

	// Numeric cells carry asset suffixes ("1645.2INJ", "-90.35USDT");
	// only the leading signed-decimal prefix counts.
	r.EntryPrice = r.numeric(fields[2], "entry_price")
	r.ExitPrice = r.numeric(fields[3], "exit_price")
	r.Quantity = r.numeric(fields[4], "quantity")
	r.RealizedPnl = r.numeric(fields[7], "realized_pnl")

	openingFee := r.numeric(fields[9], "opening_fee")
	closingFee := r.numeric(fields[10], "closing_fee")
	r.TotalFees = abs(openingFee) + abs(closingFee)

	return r, nil
}

func (r *Row) numeric(s, name string) float64 {
	if m := numericRe.FindString(s); m != "" {
		if v, err := strconv.ParseFloat(m, 64); err == nil {
			return v
		}
	}
	r.CoercedFields = append(r.CoercedFields, name)
	return 0
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
