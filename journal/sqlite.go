package journal

import (
	"database/sql"
	"encoding/json"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// SQLite is the file-backed Journal used by the CLI and the importer.
type SQLite struct {
	db *sql.DB
}

func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(Schema); err != nil {
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	return &SQLite{db: db}, nil
}

const tradeColumns = `id, pair, exchange, analysis_date, trade_date, close_date, status,
	portfolio_value, risk_fraction, min_rr,
	planned_entry, planned_stop, stop_estimated, leverage, planned_entries, planned_tps, position_type,
	one_r, margin, position_size, quantity, planned_weighted_rr,
	effective_entry, effective_entries, exits, effective_weighted_rr, total_pnl, pnl_in_r,
	notes, import_fingerprint, import_source, created_at, updated_at`

func (j *SQLite) RecordTrade(t TradeRecord) error {
	args, err := tradeArgs(t)
	if err != nil {
		return err
	}
	_, err = j.db.Exec(`
		INSERT INTO trades (`+tradeColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		args...)
	return err
}

func (j *SQLite) UpdateTrade(t TradeRecord) error {
	args, err := tradeArgs(t)
	if err != nil {
		return err
	}
	// Shift the ID to the WHERE clause.
	args = append(args[1:], args[0])
	res, err := j.db.Exec(`
		UPDATE trades SET
			pair = ?, exchange = ?, analysis_date = ?, trade_date = ?, close_date = ?, status = ?,
			portfolio_value = ?, risk_fraction = ?, min_rr = ?,
			planned_entry = ?, planned_stop = ?, stop_estimated = ?, leverage = ?,
			planned_entries = ?, planned_tps = ?, position_type = ?,
			one_r = ?, margin = ?, position_size = ?, quantity = ?, planned_weighted_rr = ?,
			effective_entry = ?, effective_entries = ?, exits = ?, effective_weighted_rr = ?,
			total_pnl = ?, pnl_in_r = ?,
			notes = ?, import_fingerprint = ?, import_source = ?, created_at = ?, updated_at = ?
		WHERE id = ? AND deleted_at IS NULL`,
		args...)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("trade %q not found", t.ID)
	}
	return nil
}

// FingerprintExists reports whether an imported trade with this
// fingerprint is already journaled. The importer checks it before every
// insert so re-importing the same export is a no-op.
func (j *SQLite) FingerprintExists(fingerprint string) (bool, error) {
	if fingerprint == "" {
		return false, nil
	}
	var exists bool
	err := j.db.QueryRow(`
		SELECT EXISTS(SELECT 1 FROM trades WHERE import_fingerprint = ? AND deleted_at IS NULL)`,
		fingerprint).Scan(&exists)
	return exists, err
}

// DeleteTrade soft-deletes a record; it disappears from listings and
// stats but stays in the file.
func (j *SQLite) DeleteTrade(id string) error {
	res, err := j.db.Exec(`
		UPDATE trades SET deleted_at = CURRENT_TIMESTAMP
		WHERE id = ? AND deleted_at IS NULL`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("trade %q not found", id)
	}
	return nil
}

func (j *SQLite) Close() error {
	return j.db.Close()
}

func tradeArgs(t TradeRecord) ([]any, error) {
	plannedEntries, err := marshalLegs(t.PlannedEntries)
	if err != nil {
		return nil, fmt.Errorf("planned entries: %w", err)
	}
	plannedTPs, err := marshalLegs(t.PlannedTPs)
	if err != nil {
		return nil, fmt.Errorf("planned tps: %w", err)
	}
	effectiveEntries, err := marshalLegs(t.EffectiveEntries)
	if err != nil {
		return nil, fmt.Errorf("effective entries: %w", err)
	}
	exits, err := marshalLegs(t.Exits)
	if err != nil {
		return nil, fmt.Errorf("exits: %w", err)
	}

	var closeDate any
	if !t.CloseDate.IsZero() {
		closeDate = t.CloseDate
	}

	return []any{
		t.ID, string(t.Pair), t.Exchange, t.AnalysisDate, t.TradeDate, closeDate, string(t.Status),
		t.PortfolioValue, float64(t.RiskFraction), t.MinRR,
		t.PlannedEntry, t.PlannedStop, t.StopEstimated, t.Leverage,
		plannedEntries, plannedTPs, string(t.PositionType),
		t.OneR, t.Margin, t.PositionSize, t.Quantity, ptrArg(t.PlannedWeightedRR),
		ptrArg(t.EffectiveEntry), effectiveEntries, exits, ptrArg(t.EffectiveWeightedRR),
		ptrArg(t.TotalPnl), ptrArg(t.PnlInR),
		t.Notes, t.ImportFingerprint, t.ImportSource, t.CreatedAt, t.UpdatedAt,
	}, nil
}

func ptrArg(v *float64) any {
	if v == nil {
		return nil
	}
	return *v
}

// Leg lists are stored as JSON text, same shape the original journal kept
// them in. Empty lists round-trip as the empty string.
func marshalLegs(v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	if string(data) == "null" {
		return "", nil
	}
	return string(data), nil
}

func unmarshalLegs(s sql.NullString, v any) error {
	if !s.Valid || s.String == "" {
		return nil
	}
	return json.Unmarshal([]byte(s.String), v)
}
