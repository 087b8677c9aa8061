package journal

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/ehjvfzekdalq/trading-journal-macos-sub000/market"
	"github.com/ehjvfzekdalq/trading-journal-macos-sub000/risk"
)

// GetTrade returns a single trade record by ID.
func (j *SQLite) GetTrade(id string) (TradeRecord, error) {
	row := j.db.QueryRow(`
		SELECT `+tradeColumns+`
		FROM trades
		WHERE id = ? AND deleted_at IS NULL`, id)

	rec, err := scanTrade(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return TradeRecord{}, fmt.Errorf("trade %q not found", id)
		}
		return TradeRecord{}, err
	}
	return rec, nil
}

// ListTrades returns records matching the filters, newest trade date
// first.
func (j *SQLite) ListTrades(f Filters) ([]TradeRecord, error) {
	query := `SELECT ` + tradeColumns + ` FROM trades WHERE deleted_at IS NULL`
	var args []any

	if f.Status != "" {
		query += " AND status = ?"
		args = append(args, string(f.Status))
	}
	if f.Pair != "" {
		query += " AND pair = ?"
		args = append(args, string(f.Pair))
	}
	if f.Source != "" {
		query += " AND import_source = ?"
		args = append(args, f.Source)
	}
	if !f.Start.IsZero() {
		query += " AND trade_date >= ?"
		args = append(args, f.Start)
	}
	if !f.End.IsZero() {
		query += " AND trade_date < ?"
		args = append(args, f.End)
	}
	query += " ORDER BY trade_date DESC"
	if f.Limit > 0 {
		query += " LIMIT ? OFFSET ?"
		args = append(args, f.Limit, f.Offset)
	}

	rows, err := j.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []TradeRecord
	for rows.Next() {
		rec, err := scanTrade(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTrade(s scanner) (TradeRecord, error) {
	var (
		rec              TradeRecord
		pair             string
		status           string
		positionType     string
		closeDate        sql.NullTime
		riskFraction     float64
		stopEstimated    bool
		plannedEntries   sql.NullString
		plannedTPs       sql.NullString
		effectiveEntries sql.NullString
		exits            sql.NullString
		plannedRR        sql.NullFloat64
		effectiveEntry   sql.NullFloat64
		effectiveRR      sql.NullFloat64
		totalPnl         sql.NullFloat64
		pnlInR           sql.NullFloat64
	)

	err := s.Scan(
		&rec.ID, &pair, &rec.Exchange, &rec.AnalysisDate, &rec.TradeDate, &closeDate, &status,
		&rec.PortfolioValue, &riskFraction, &rec.MinRR,
		&rec.PlannedEntry, &rec.PlannedStop, &stopEstimated, &rec.Leverage,
		&plannedEntries, &plannedTPs, &positionType,
		&rec.OneR, &rec.Margin, &rec.PositionSize, &rec.Quantity, &plannedRR,
		&effectiveEntry, &effectiveEntries, &exits, &effectiveRR,
		&totalPnl, &pnlInR,
		&rec.Notes, &rec.ImportFingerprint, &rec.ImportSource, &rec.CreatedAt, &rec.UpdatedAt,
	)
	if err != nil {
		return TradeRecord{}, err
	}

	rec.Pair = market.Pair(pair)
	rec.Status = market.Status(status)
	rec.PositionType = market.PositionType(positionType)
	rec.RiskFraction = risk.Fraction01(riskFraction)
	rec.StopEstimated = stopEstimated
	if closeDate.Valid {
		rec.CloseDate = closeDate.Time
	}
	rec.PlannedWeightedRR = nullPtr(plannedRR)
	rec.EffectiveEntry = nullPtr(effectiveEntry)
	rec.EffectiveWeightedRR = nullPtr(effectiveRR)
	rec.TotalPnl = nullPtr(totalPnl)
	rec.PnlInR = nullPtr(pnlInR)

	if err := unmarshalLegs(plannedEntries, &rec.PlannedEntries); err != nil {
		return TradeRecord{}, fmt.Errorf("planned entries: %w", err)
	}
	if err := unmarshalLegs(plannedTPs, &rec.PlannedTPs); err != nil {
		return TradeRecord{}, fmt.Errorf("planned tps: %w", err)
	}
	if err := unmarshalLegs(effectiveEntries, &rec.EffectiveEntries); err != nil {
		return TradeRecord{}, fmt.Errorf("effective entries: %w", err)
	}
	if err := unmarshalLegs(exits, &rec.Exits); err != nil {
		return TradeRecord{}, fmt.Errorf("exits: %w", err)
	}

	return rec, nil
}

func nullPtr(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}

// sinceFilter maps a named dashboard range to a close-date threshold.
// Unknown or empty names mean "all time".
func sinceFilter(name string, now time.Time) time.Time {
	switch name {
	case "today":
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	case "week":
		return now.AddDate(0, 0, -7)
	case "month":
		return now.AddDate(0, 0, -30)
	case "3months":
		return now.AddDate(0, 0, -90)
	case "6months":
		return now.AddDate(0, 0, -180)
	case "year":
		return now.AddDate(0, 0, -365)
	default:
		return time.Time{}
	}
}

// SinceFilter is sinceFilter for callers outside the package (the CLI's
// --range flag).
func SinceFilter(name string, now time.Time) time.Time {
	return sinceFilter(name, now)
}
