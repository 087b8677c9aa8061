package bitget

import (
	"fmt"
	"time"

	"github.com/ehjvfzekdalq/trading-journal-macos-sub000/config"
	"github.com/ehjvfzekdalq/trading-journal-macos-sub000/journal"
	"github.com/ehjvfzekdalq/trading-journal-macos-sub000/market"
	"github.com/ehjvfzekdalq/trading-journal-macos-sub000/pkg/id"
	"github.com/ehjvfzekdalq/trading-journal-macos-sub000/risk"
)

// exportTimeLayout is how BitGet prints timestamps in its exports.
const exportTimeLayout = "2006-01-02 15:04:05"

// leverageBrackets maps position notional ceilings to the leverage tier
// assumed for an imported trade. The export doesn't say what leverage was
// used, so this is an estimate from typical exchange tiers, not a measured
// fact.
var leverageBrackets = []struct {
	notional float64
	leverage int
}{
	{5_000, 20},
	{25_000, 15},
	{100_000, 10},
	{500_000, 5},
}

func estimateLeverage(notional float64) int {
	for _, b := range leverageBrackets {
		if notional <= b.notional {
			return b.leverage
		}
	}
	return 3
}

// ToRecord converts a parsed row into a partial journal record.
//
// The export never includes the original stop loss, so one is estimated by
// solving for the stop distance that makes a 1R plan consistent with the
// trader's current risk settings. Current settings may not be the settings
// in force when the trade happened; the record carries StopEstimated so
// displays can say so, and the approximation is kept for compatibility
// with existing journals. Planned and effective RR stay nil: they cannot
// be derived from broker data and must not be fabricated.
func ToRecord(r Row, s config.Settings, now time.Time) journal.TradeRecord {
	oneR := s.InitialCapital * s.RiskPercent
	positionSize := r.Quantity * r.EntryPrice

	estimatedStop := r.EntryPrice
	if r.Quantity > 0 {
		dist := oneR / r.Quantity
		if r.Type == market.Long {
			estimatedStop = r.EntryPrice - dist
		} else {
			estimatedStop = r.EntryPrice + dist
		}
	}

	leverage := estimateLeverage(positionSize)
	margin := positionSize / float64(leverage)

	open := parseExportTime(r.OpeningTime, now)
	closed := parseExportTime(r.ClosingTime, now)

	entry := r.EntryPrice
	pnl := r.RealizedPnl

	return journal.TradeRecord{
		ID:       id.NewTrade(),
		Pair:     r.Pair,
		Exchange: "BitGet",

		AnalysisDate: open,
		TradeDate:    open,
		CloseDate:    closed,
		Status:       market.Classify(1, r.RealizedPnl),

		PortfolioValue: s.InitialCapital,
		RiskFraction:   risk.Fraction01(s.RiskPercent),

		PlannedEntry:   r.EntryPrice,
		PlannedStop:    estimatedStop,
		StopEstimated:  true,
		Leverage:       leverage,
		PlannedEntries: []risk.Allocation{{Price: r.EntryPrice, Percent: 100}},
		PlannedTPs:     []risk.TakeProfit{{Price: r.ExitPrice, Percent: 100}},
		PositionType:   r.Type,

		OneR:         oneR,
		Margin:       margin,
		PositionSize: positionSize,
		Quantity:     r.Quantity,

		EffectiveEntry:   &entry,
		EffectiveEntries: []risk.Allocation{{Price: r.EntryPrice, Percent: 100}},
		Exits:            []risk.ExitLeg{{Price: r.ExitPrice, Percent: 1}},
		TotalPnl:         &pnl,

		Notes: fmt.Sprintf("Imported from BitGet | Fees: $%.2f | RR metrics unavailable (no stop loss in export)",
			r.TotalFees),
		ImportFingerprint: Fingerprint(r),
		ImportSource:      "CSV_IMPORT",

		CreatedAt: now,
		UpdatedAt: now,
	}
}

func parseExportTime(s string, fallback time.Time) time.Time {
	t, err := time.ParseInLocation(exportTimeLayout, s, time.UTC)
	if err != nil {
		return fallback
	}
	return t
}
