// journal/journal.go
package journal

import (
	"time"

	"github.com/ehjvfzekdalq/trading-journal-macos-sub000/market"
	"github.com/ehjvfzekdalq/trading-journal-macos-sub000/risk"
)

// TradeRecord is the normalized journal row for one trade, planned or
// executed. Derived display numbers (live R-multiples, effective RR,
// realized P&L) are recomputed on read from the stored price/percent legs
// by the risk package; only the planning-time sizing is authoritative
// here.
//
// Nil pointer fields mean "cannot be derived for this record": broker
// imports have no stop loss, so their RR metrics stay nil rather than
// being fabricated.
type TradeRecord struct {
	ID       string
	Pair     market.Pair
	Exchange string

	AnalysisDate time.Time
	TradeDate    time.Time
	CloseDate    time.Time // zero while the trade is open
	Status       market.Status

	PortfolioValue float64
	RiskFraction   risk.Fraction01
	MinRR          float64

	PlannedEntry   float64
	PlannedStop    float64
	StopEstimated  bool // stop inferred during import, not planned
	Leverage       int
	PlannedEntries []risk.Allocation
	PlannedTPs     []risk.TakeProfit
	PositionType   market.PositionType

	OneR         float64
	Margin       float64
	PositionSize float64
	Quantity     float64

	PlannedWeightedRR *float64

	EffectiveEntry      *float64
	EffectiveEntries    []risk.Allocation
	Exits               []risk.ExitLeg
	EffectiveWeightedRR *float64
	TotalPnl            *float64
	PnlInR              *float64

	Notes             string
	ImportFingerprint string
	ImportSource      string // USER_CREATED | CSV_IMPORT | API_IMPORT

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Outcome recomputes the execution metrics for the record from its stored
// legs, so edits to entries or exits never leave stale cached numbers
// behind.
func (t TradeRecord) Outcome() (risk.ExecutionMetrics, error) {
	return risk.ExecutionOutcome(risk.ExecutionInput{
		Entries:      t.EffectiveEntries,
		EntryPrice:   t.effectiveEntryPrice(),
		StopLoss:     t.PlannedStop,
		Exits:        t.Exits,
		OneR:         t.OneR,
		PositionSize: t.PositionSize,
		Type:         t.PositionType,
	})
}

func (t TradeRecord) effectiveEntryPrice() float64 {
	if t.EffectiveEntry != nil {
		return *t.EffectiveEntry
	}
	return t.PlannedEntry
}

// Journal is the persistence boundary for trade records.
type Journal interface {
	RecordTrade(TradeRecord) error
	UpdateTrade(TradeRecord) error
	GetTrade(id string) (TradeRecord, error)
	ListTrades(Filters) ([]TradeRecord, error)
	FingerprintExists(fingerprint string) (bool, error)
	DeleteTrade(id string) error
	Close() error
}

// Filters narrows a trade listing. Zero values mean "no constraint".
type Filters struct {
	Status market.Status
	Pair   market.Pair
	Source string
	Start  time.Time
	End    time.Time
	Limit  int
	Offset int
}
