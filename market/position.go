package market

// PositionType is the direction of a futures position.
//
// Direction is always derived from a price pair, never stored on its own:
// a target above the entry implies LONG, below implies SHORT. Equal prices
// give Undefined, which is invalid for submission.
type PositionType string

const (
	Long      PositionType = "LONG"
	Short     PositionType = "SHORT"
	Undefined PositionType = "UNDEFINED"
)

// DeriveType infers the position direction from an entry price and a
// target (take-profit or exit) price.
func DeriveType(entry, target float64) PositionType {
	switch {
	case target > entry:
		return Long
	case target < entry:
		return Short
	default:
		return Undefined
	}
}
