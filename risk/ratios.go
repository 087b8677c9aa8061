package risk

import (
	"math"

	"github.com/ehjvfzekdalq/trading-journal-macos-sub000/market"
)

// StopDistanceUSD returns the loss-direction price distance between entry
// and stop. A stop on the wrong side of entry for the given direction
// comes out negative; the sign propagates so callers can flag the setup
// instead of it being clamped away here.
func StopDistanceUSD(t market.PositionType, entry, stop float64) float64 {
	if t == market.Long {
		return entry - stop
	}
	return stop - entry
}

// StopDistancePct returns the stop distance as a fraction of entry price.
func StopDistancePct(entry, distanceUSD float64) float64 {
	return math.Abs(distanceUSD) / entry
}

// TargetDistanceUSD returns the profit-direction distance from entry to a
// target price. Targets behind the entry come out negative.
func TargetDistanceUSD(t market.PositionType, entry, target float64) float64 {
	if t == market.Long {
		return target - entry
	}
	return entry - target
}

// RewardRisk returns the reward:risk ratio for the given distances.
//
// RR is a display value, so an undefined ratio reports ok=false rather
// than failing: a zero stop distance or a non-finite quotient must not
// abort the computation pipeline it sits in.
func RewardRisk(tpDistanceUSD, slDistanceUSD float64) (float64, bool) {
	if slDistanceUSD == 0 {
		return 0, false
	}
	rr := math.Abs(tpDistanceUSD) / math.Abs(slDistanceUSD)
	if math.IsInf(rr, 0) || math.IsNaN(rr) {
		return 0, false
	}
	return rr, true
}

// MaxLeverage returns the leverage at which a stop-loss hit consumes
// exactly 100% of margin, floor(1/slDistancePct). It is an advisory
// ceiling, not an enforced cap; undefined (ok=false) when the stop
// distance is zero.
func MaxLeverage(slDistancePct float64) (int, bool) {
	if slDistancePct == 0 {
		return 0, false
	}
	return int(math.Floor(1 / slDistancePct)), true
}

// LegRR returns the signed reward:risk of a single take-profit leg. A leg
// behind the entry yields a negative RR. The degenerate entry==stop case
// yields 0 instead of dividing by zero; zero-risk setups are rejected as a
// submission error elsewhere.
func LegRR(t market.PositionType, entry, stop, tp float64) float64 {
	if entry == stop {
		return 0
	}
	if t == market.Long {
		return (tp - entry) / (entry - stop)
	}
	return (entry - tp) / (stop - entry)
}
