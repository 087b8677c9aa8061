package market

// Status is the lifecycle state of a journaled trade.
type Status string

const (
	StatusOpen Status = "OPEN"
	StatusWin  Status = "WIN"
	StatusLoss Status = "LOSS"
	StatusBE   Status = "BE"
)

// breakEvenBand is the absolute dollar band around zero P&L classified as
// break-even once a position is fully closed.
const breakEvenBand = 1.0

// Classify returns the trade status given the fraction of the original
// position exited so far (0-1) and the full-close P&L. A position stays
// OPEN until its exits account for the whole position; the small band
// around zero absorbs fee noise on scratched trades.
func Classify(exitedFraction, totalPnl float64) Status {
	if exitedFraction < 0.999 {
		return StatusOpen
	}
	switch {
	case totalPnl > breakEvenBand:
		return StatusWin
	case totalPnl < -breakEvenBand:
		return StatusLoss
	default:
		return StatusBE
	}
}
