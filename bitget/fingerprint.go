package bitget

import (
	"fmt"
	"strings"
)

// Fingerprint returns the deduplication key for a row: a pure function of
// the fields that identify a trade in the export, so re-importing the same
// CSV produces the same key for the same row every time.
//
// The journal checks this key before inserting; the second occurrence of a
// fingerprint is a duplicate and gets dropped there, not here.
func Fingerprint(r Row) string {
	return fmt.Sprintf("csv|bitget|%s|%s|%s|%s|%.8f|%.8f",
		strings.ToLower(string(r.Pair)),
		strings.ToLower(string(r.Type)),
		r.OpeningTime,
		r.ClosingTime,
		r.Quantity,
		r.RealizedPnl,
	)
}
