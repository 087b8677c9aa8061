package risk

import (
	"errors"
	"fmt"

	"github.com/ehjvfzekdalq/trading-journal-macos-sub000/market"
)

// Policy is the trader's standing risk settings, applied to every plan.
type Policy struct {
	Portfolio    float64
	RiskFraction Fraction01
	MinRR        float64
}

// Violation is one reason a plan failed or deserves attention.
type Violation struct {
	Code string
	Msg  string
}

// Decision is the submission verdict for a planned setup. Violations block
// submission; Warnings are advisory (the max-leverage ceiling, take-profit
// legs straddling the entry) and the caller chooses how to surface them.
type Decision struct {
	Allowed    bool
	Violations []Violation
	Warnings   []Violation

	Metrics PlanMetrics
}

func (d *Decision) add(code, msg string) {
	d.Violations = append(d.Violations, Violation{Code: code, Msg: msg})
	d.Allowed = false
}

func (d *Decision) warn(code, msg string) {
	d.Warnings = append(d.Warnings, Violation{Code: code, Msg: msg})
}

// Evaluate runs PlanTrade under the policy's portfolio and risk fraction
// and applies the submission checks a form would enforce.
func Evaluate(p Policy, in PlanInput) Decision {
	d := Decision{Allowed: true}

	in.Portfolio = p.Portfolio
	in.RiskFraction = p.RiskFraction

	m, err := PlanTrade(in)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidEntries):
			d.add("INVALID_ENTRIES", err.Error())
		case errors.Is(err, ErrZeroEntryPrice):
			d.add("ZERO_ENTRY", "entry price must be set")
		case errors.Is(err, ErrInvalidPositionSizing):
			d.add("INVALID_SIZING", "stop distance and leverage give zero loss at stop")
		default:
			d.add("INVALID_SETUP", err.Error())
		}
		return d
	}
	d.Metrics = m

	if m.Type == market.Undefined {
		d.add("UNDEFINED_DIRECTION", "first take-profit equals entry, direction undefined")
	}
	if m.StopDistanceUSD <= 0 {
		d.add("STOP_WRONG_SIDE",
			fmt.Sprintf("stop %.8g is not on the loss side of entry %.8g for a %s", in.StopLoss, m.WeightedEntry, m.Type))
	}

	if len(in.Entries) > 0 {
		if check := ValidateAllocations(in.Entries); !check.Valid {
			d.add("ENTRY_ALLOCATION", fmt.Sprintf("entries: %s", check.Errors[0]))
		}
	}
	if check := ValidateAllocations(tpAllocations(in.TakeProfits)); !check.Valid {
		d.add("TP_ALLOCATION", fmt.Sprintf("take-profits: %s", check.Errors[0]))
	}

	if m.WeightedRR < p.MinRR {
		d.add("RR_TOO_LOW",
			fmt.Sprintf("weighted RR %.2f below minimum %.2f", m.WeightedRR, p.MinRR))
	}
	if m.MaxLeverageOK && in.Leverage > float64(m.MaxLeverage) {
		d.warn("LEVERAGE_OVER_CEILING",
			fmt.Sprintf("leverage %gx exceeds %dx, a stop hit costs more than 100%% of margin", in.Leverage, m.MaxLeverage))
	}
	for _, w := range m.DirectionWarnings {
		d.warn("TP_DIRECTION", w)
	}

	return d
}

func tpAllocations(tps []TakeProfit) []Allocation {
	allocs := make([]Allocation, len(tps))
	for i, tp := range tps {
		allocs[i] = Allocation{Price: tp.Price, Percent: tp.Percent}
	}
	return allocs
}
