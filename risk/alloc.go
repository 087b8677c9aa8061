package risk

import (
	"errors"
	"fmt"
	"math"
)

// Allocation is one leg of a position: a price and the share of the
// position filled (entries) or targeted (take-profits) at that price.
type Allocation struct {
	Price   float64
	Percent Percent100
}

// ErrInvalidAllocation reports an allocation set with no usable legs.
var ErrInvalidAllocation = errors.New("invalid allocation set")

// allocTolerance is how far a leg set's total percent may drift from 100
// before ValidateAllocations rejects it. UI rounding needs the slack.
const allocTolerance = 0.1

// WeightedAverage returns the percent-weighted average price across the
// legs with positive price and percent.
//
// The divisor is the observed percent sum, not 100, so an un-normalized
// set (entries totalling 97% after rounding) still averages correctly.
// Whether the set *should* sum to 100 is a separate question answered by
// ValidateAllocations; this function never corrects it silently.
func WeightedAverage(allocs []Allocation) (float64, error) {
	var sum, weighted float64
	for _, a := range allocs {
		if a.Price <= 0 || a.Percent <= 0 {
			continue
		}
		weighted += a.Price * float64(a.Percent)
		sum += float64(a.Percent)
	}
	if sum == 0 {
		return 0, fmt.Errorf("%w: no legs with positive price and percent", ErrInvalidAllocation)
	}
	return weighted / sum, nil
}

// AllocationCheck is the result of validating a leg set's percent total.
type AllocationCheck struct {
	Valid  bool
	Total  Percent100
	Errors []string
}

// ValidateAllocations checks that a leg set's percents sum to 100 within
// tolerance. Entry, take-profit and exit sets are all validated the same
// way.
func ValidateAllocations(allocs []Allocation) AllocationCheck {
	var check AllocationCheck
	if len(allocs) == 0 {
		check.Errors = append(check.Errors, "no allocations")
		return check
	}
	for _, a := range allocs {
		check.Total += a.Percent
	}
	if math.Abs(float64(check.Total)-100) > allocTolerance {
		check.Errors = append(check.Errors,
			fmt.Sprintf("allocations total %.2f%%, want 100%%", float64(check.Total)))
		return check
	}
	check.Valid = true
	return check
}
