package risk

import (
	"github.com/ehjvfzekdalq/trading-journal-macos-sub000/market"
)

// ExitLeg is one realized exit. Percent is the fraction of the *original*
// position closed by this exit, not a share of the exited subset; that
// keeps partial exits additive and comparable as more are recorded over
// time.
type ExitLeg struct {
	Price   float64
	Percent Fraction01
}

// ExitMetrics is a realized exit with its R-multiple and dollar P&L.
type ExitMetrics struct {
	ExitLeg
	RMultiple float64
	Pnl       float64
}

// ExecutionInput measures actual fills and exits against the planned risk
// unit. OneR and PositionSize come from the plan and are deliberately not
// recomputed here: execution metrics grade performance against the risk
// that was planned, not the risk implied by the fills.
type ExecutionInput struct {
	Entries    []Allocation
	EntryPrice float64
	StopLoss   float64
	Exits      []ExitLeg

	OneR         float64
	PositionSize float64
	Type         market.PositionType
}

// ExecutionMetrics is the realized and hypothetical outcome of a trade.
//
// RealizedPnl sums only the exits that have occurred and can legitimately
// cover less than the whole position. TotalPnl answers "what if the rest
// closed at the blended exit price right now" and equals the final P&L
// once exits reach 100%. The two are different numbers and both matter.
type ExecutionMetrics struct {
	WeightedEntry   float64
	StopDistanceUSD float64

	Exits          []ExitMetrics
	ExitedFraction Fraction01
	RealizedPnl    float64
	EffectiveRR    float64

	WeightedExit   float64
	TotalRMultiple float64
	TotalPnl       float64
}

// ExecutionOutcome derives realized P&L, R-multiples and effective RR from
// actual entries and exits. Pure: identical inputs give identical output.
func ExecutionOutcome(in ExecutionInput) (ExecutionMetrics, error) {
	pe, err := resolveEntry(in.Entries, in.EntryPrice)
	if err != nil {
		return ExecutionMetrics{}, err
	}
	if pe == 0 {
		return ExecutionMetrics{}, ErrZeroEntryPrice
	}

	m := ExecutionMetrics{WeightedEntry: pe}
	m.StopDistanceUSD = StopDistanceUSD(in.Type, pe, in.StopLoss)

	var exitWeighted, exitTotal float64
	for _, ex := range in.Exits {
		leg := ExitMetrics{ExitLeg: ex}
		if m.StopDistanceUSD != 0 {
			leg.RMultiple = TargetDistanceUSD(in.Type, pe, ex.Price) / m.StopDistanceUSD
		}
		leg.Pnl = in.OneR * leg.RMultiple * float64(ex.Percent)

		m.RealizedPnl += leg.Pnl
		m.EffectiveRR += leg.RMultiple * float64(ex.Percent)
		m.ExitedFraction += ex.Percent

		if ex.Price > 0 && ex.Percent > 0 {
			exitWeighted += ex.Price * float64(ex.Percent)
			exitTotal += float64(ex.Percent)
		}
		m.Exits = append(m.Exits, leg)
	}

	if exitTotal > 0 {
		m.WeightedExit = exitWeighted / exitTotal
		if m.StopDistanceUSD != 0 {
			m.TotalRMultiple = TargetDistanceUSD(in.Type, pe, m.WeightedExit) / m.StopDistanceUSD
		}
		m.TotalPnl = in.OneR * m.TotalRMultiple
	}

	return m, nil
}
