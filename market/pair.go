package market

import "strings"

// Pair is a trading pair in journal display form, e.g. "INJ/USDT".
type Pair string

// PairFromSymbol converts a concatenated futures symbol such as "INJUSDT"
// into its display form "INJ/USDT". Symbols without a recognized quote
// asset pass through unchanged.
func PairFromSymbol(symbol string) Pair {
	if base, ok := strings.CutSuffix(symbol, "USDT"); ok && base != "" {
		return Pair(base + "/USDT")
	}
	return Pair(symbol)
}

func (p Pair) String() string { return string(p) }
