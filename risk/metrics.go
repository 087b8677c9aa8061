package risk

import (
	"errors"
	"fmt"

	"github.com/ehjvfzekdalq/trading-journal-macos-sub000/market"
)

var (
	// ErrZeroEntryPrice reports an entry that resolves to zero. Every
	// ratio downstream divides by the entry, so this is a hard
	// precondition rather than a soft undefined.
	ErrZeroEntryPrice = errors.New("entry price resolves to zero")

	// ErrInvalidEntries reports an entry allocation list that cannot be
	// averaged.
	ErrInvalidEntries = errors.New("invalid entry configuration")

	// ErrInvalidPositionSizing reports a setup whose loss percent at the
	// stop is zero, leaving margin and position size undefined.
	ErrInvalidPositionSizing = errors.New("loss at stop is zero, sizing undefined")
)

// TakeProfit is one planned take-profit leg.
type TakeProfit struct {
	Price   float64
	Percent Percent100
}

// TakeProfitMetrics is a planned leg with its computed ratio and the
// profit its slice of the position would realize.
type TakeProfitMetrics struct {
	TakeProfit
	RR              float64
	PotentialProfit float64
}

// PlanInput describes a proposed trade setup.
type PlanInput struct {
	Portfolio    float64
	RiskFraction Fraction01

	// Entries lists weighted partial fills. When empty, EntryPrice is
	// used as a single full-size entry (the legacy single-price form).
	Entries    []Allocation
	EntryPrice float64

	StopLoss    float64
	TakeProfits []TakeProfit
	Leverage    float64
}

// PlanMetrics is the full sizing and ratio picture for a planned setup.
type PlanMetrics struct {
	Type          market.PositionType
	OneR          float64
	WeightedEntry float64

	StopDistanceUSD float64
	StopDistancePct float64

	// MaxLeverage is the advisory ceiling at which a stop hit wipes the
	// margin; undefined (ok=false) when the stop distance is zero.
	MaxLeverage   int
	MaxLeverageOK bool

	Margin       float64
	PositionSize float64
	Quantity     float64

	TakeProfits     []TakeProfitMetrics
	WeightedRR      float64
	PotentialProfit float64

	// DirectionWarnings flags take-profit legs whose implied direction
	// disagrees with the direction chosen from the first leg, and legs
	// sitting exactly at the entry price. They are warnings, not
	// rejections, so the caller decides what to block.
	DirectionWarnings []string
}

// PlanTrade computes position sizing and reward ratios for a proposed
// setup.
//
// Direction comes from the first take-profit leg by list order. Later
// legs on the other side of the entry produce negative RR and a warning;
// the computation still completes.
func PlanTrade(in PlanInput) (PlanMetrics, error) {
	pe, err := resolveEntry(in.Entries, in.EntryPrice)
	if err != nil {
		return PlanMetrics{}, err
	}
	if pe == 0 {
		return PlanMetrics{}, ErrZeroEntryPrice
	}

	m := PlanMetrics{
		Type:          market.Undefined,
		WeightedEntry: pe,
		OneR:          in.Portfolio * float64(in.RiskFraction),
	}
	if len(in.TakeProfits) > 0 {
		m.Type = market.DeriveType(pe, in.TakeProfits[0].Price)
	}

	m.StopDistanceUSD = StopDistanceUSD(m.Type, pe, in.StopLoss)
	m.StopDistancePct = StopDistancePct(pe, m.StopDistanceUSD)
	m.MaxLeverage, m.MaxLeverageOK = MaxLeverage(m.StopDistancePct)

	lossAtStop := m.StopDistancePct * in.Leverage
	if lossAtStop == 0 {
		return PlanMetrics{}, ErrInvalidPositionSizing
	}
	m.Margin = m.OneR / lossAtStop
	m.PositionSize = m.Margin * in.Leverage
	m.Quantity = m.PositionSize / pe

	var tpTotal float64
	for _, tp := range in.TakeProfits {
		if tp.Percent > 0 {
			tpTotal += float64(tp.Percent)
		}
	}

	var rrWeighted float64
	for i, tp := range in.TakeProfits {
		leg := TakeProfitMetrics{TakeProfit: tp}
		leg.RR = LegRR(m.Type, pe, in.StopLoss, tp.Price)

		// Each leg's profit uses its normalized share of the set, so
		// profits stay additive across disjoint slices of the position.
		if tpTotal > 0 && tp.Percent > 0 {
			share := float64(tp.Percent) / tpTotal
			leg.PotentialProfit = m.PositionSize * (TargetDistanceUSD(m.Type, pe, tp.Price) / pe) * share
		}

		switch d := market.DeriveType(pe, tp.Price); {
		case d == market.Undefined:
			m.DirectionWarnings = append(m.DirectionWarnings,
				fmt.Sprintf("take-profit %d at %g equals the entry price", i+1, tp.Price))
		case d != m.Type:
			m.DirectionWarnings = append(m.DirectionWarnings,
				fmt.Sprintf("take-profit %d at %g implies %s against %s trade", i+1, tp.Price, d, m.Type))
		}

		rrWeighted += float64(tp.Percent) * leg.RR
		m.PotentialProfit += leg.PotentialProfit
		m.TakeProfits = append(m.TakeProfits, leg)
	}
	if tpTotal > 0 {
		m.WeightedRR = rrWeighted / tpTotal
	}

	return m, nil
}

// resolveEntry returns the weighted average of the entry legs, or the
// legacy single price when no legs are given.
func resolveEntry(entries []Allocation, single float64) (float64, error) {
	if len(entries) == 0 {
		return single, nil
	}
	pe, err := WeightedAverage(entries)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrInvalidEntries, err)
	}
	return pe, nil
}
