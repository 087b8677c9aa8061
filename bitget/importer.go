package bitget

import (
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/ehjvfzekdalq/trading-journal-macos-sub000/config"
	"github.com/ehjvfzekdalq/trading-journal-macos-sub000/journal"
)

// RowError records a single failed CSV line. Line numbers are 1-based and
// count the header, matching what the trader sees in a spreadsheet.
type RowError struct {
	Line int
	Err  error
}

func (e RowError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

// Trade pairs a parsed row with the record built from it, so callers can
// reach the row-level parse detail (coerced fields) after conversion.
type Trade struct {
	Row    Row
	Record journal.TradeRecord
}

// Batch is the outcome of normalizing a whole export without touching
// storage.
type Batch struct {
	Trades []Trade
	Errors []RowError
}

// ParseCSV normalizes every data row of a BitGet export. The first line is
// the header and is skipped; blank lines are ignored. One bad row never
// aborts the batch: it is recorded with its line number and processing
// continues, so line numbers in the error list stay stable and ordered.
func ParseCSV(content string, s config.Settings, now time.Time) Batch {
	var b Batch
	for i, line := range strings.Split(content, "\n") {
		if i == 0 || strings.TrimSpace(line) == "" {
			continue
		}
		row, err := ParseRow(line)
		if err != nil {
			b.Errors = append(b.Errors, RowError{Line: i + 1, Err: err})
			continue
		}
		b.Trades = append(b.Trades, Trade{Row: row, Record: ToRecord(row, s, now)})
	}
	return b
}

// Importer writes normalized exports into the journal, skipping trades
// whose fingerprint is already there.
type Importer struct {
	Journal  journal.Journal
	Settings config.Settings
	Log      zerolog.Logger
}

// Result summarizes an import run.
type Result struct {
	Imported   int
	Duplicates int
	Errors     []RowError
}

// Import parses the CSV content and journals every new trade. Row-level
// parse failures end up in the result, not in the returned error; the
// error is reserved for storage failures, which do abort the run.
func (imp *Importer) Import(content string) (Result, error) {
	log := imp.Log.With().Str("component", "bitget-import").Logger()

	batch := ParseCSV(content, imp.Settings, time.Now().UTC())
	res := Result{Errors: batch.Errors}

	for _, e := range batch.Errors {
		log.Warn().Int("line", e.Line).Err(e.Err).Msg("skipping row")
	}

	for _, t := range batch.Trades {
		if len(t.Row.CoercedFields) > 0 {
			log.Warn().
				Str("pair", t.Row.Pair.String()).
				Str("close_time", t.Row.ClosingTime).
				Strs("fields", t.Row.CoercedFields).
				Msg("blank numeric fields coerced to zero")
		}

		exists, err := imp.Journal.FingerprintExists(t.Record.ImportFingerprint)
		if err != nil {
			return res, fmt.Errorf("check fingerprint: %w", err)
		}
		if exists {
			res.Duplicates++
			continue
		}

		if err := imp.Journal.RecordTrade(t.Record); err != nil {
			return res, fmt.Errorf("record trade %s: %w", t.Record.Pair, err)
		}
		res.Imported++
	}

	log.Info().
		Int("imported", res.Imported).
		Int("duplicates", res.Duplicates).
		Int("errors", len(res.Errors)).
		Msg("import finished")

	return res, nil
}
