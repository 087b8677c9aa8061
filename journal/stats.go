package journal

import (
	"math"
	"sort"
	"time"
)

// DashboardStats is the aggregate picture over closed trades in a window.
type DashboardStats struct {
	TotalTrades int
	Wins        int
	Losses      int
	Breakevens  int
	OpenTrades  int

	WinRate      float64 // percent of closed (WIN+LOSS) trades won
	TotalPnl     float64
	GrossProfit  float64
	GrossLoss    float64
	ProfitFactor float64
	AvgRR        float64 // average effective weighted RR
	BestTrade    float64
	WorstTrade   float64
}

// EquityPoint is one day on the cumulative P&L curve.
type EquityPoint struct {
	Date          string // YYYY-MM-DD
	CumulativePnl float64
	DailyPnl      float64
	TradeCount    int
}

// Stats aggregates dashboard numbers over trades whose close date is at or
// after since. A zero since means all time. Open-trade count always spans
// all time, matching the original dashboard.
func (j *SQLite) Stats(since time.Time) (DashboardStats, error) {
	var s DashboardStats

	filter := ""
	var args []any
	if !since.IsZero() {
		filter = " AND close_date >= ?"
		args = append(args, since)
	}

	row := j.db.QueryRow(`
		SELECT COUNT(*),
			COALESCE(SUM(status = 'WIN'), 0),
			COALESCE(SUM(status = 'LOSS'), 0),
			COALESCE(SUM(status = 'BE'), 0),
			COALESCE(SUM(total_pnl), 0),
			COALESCE(SUM(CASE WHEN total_pnl > 0 THEN total_pnl ELSE 0 END), 0),
			COALESCE(ABS(SUM(CASE WHEN total_pnl < 0 THEN total_pnl ELSE 0 END)), 0),
			COALESCE(AVG(effective_weighted_rr), 0),
			COALESCE(MAX(total_pnl), 0),
			COALESCE(MIN(total_pnl), 0)
		FROM trades WHERE deleted_at IS NULL`+filter, args...)

	err := row.Scan(&s.TotalTrades, &s.Wins, &s.Losses, &s.Breakevens,
		&s.TotalPnl, &s.GrossProfit, &s.GrossLoss, &s.AvgRR, &s.BestTrade, &s.WorstTrade)
	if err != nil {
		return DashboardStats{}, err
	}

	err = j.db.QueryRow(`
		SELECT COUNT(*) FROM trades
		WHERE deleted_at IS NULL AND status = 'OPEN'`).Scan(&s.OpenTrades)
	if err != nil {
		return DashboardStats{}, err
	}

	if closed := s.Wins + s.Losses; closed > 0 {
		s.WinRate = float64(s.Wins) / float64(closed) * 100
	}
	switch {
	case s.GrossLoss > 0:
		s.ProfitFactor = s.GrossProfit / s.GrossLoss
	case s.GrossProfit > 0:
		s.ProfitFactor = math.Inf(1)
	}

	return s, nil
}

// EquityCurve buckets closed-trade P&L by close day and accumulates it,
// oldest day first.
func (j *SQLite) EquityCurve(since time.Time) ([]EquityPoint, error) {
	query := `
		SELECT close_date, total_pnl FROM trades
		WHERE deleted_at IS NULL
		AND close_date IS NOT NULL
		AND total_pnl IS NOT NULL
		AND status IN ('WIN', 'LOSS', 'BE')`
	var args []any
	if !since.IsZero() {
		query += " AND close_date >= ?"
		args = append(args, since)
	}
	query += " ORDER BY close_date ASC"

	rows, err := j.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	type daily struct {
		pnl   float64
		count int
	}
	days := map[string]*daily{}
	for rows.Next() {
		var closed time.Time
		var pnl float64
		if err := rows.Scan(&closed, &pnl); err != nil {
			return nil, err
		}
		day := closed.UTC().Format("2006-01-02")
		d, ok := days[day]
		if !ok {
			d = &daily{}
			days[day] = d
		}
		d.pnl += pnl
		d.count++
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	dates := make([]string, 0, len(days))
	for day := range days {
		dates = append(dates, day)
	}
	sort.Strings(dates)

	var curve []EquityPoint
	var cumulative float64
	for _, day := range dates {
		d := days[day]
		cumulative += d.pnl
		curve = append(curve, EquityPoint{
			Date:          day,
			CumulativePnl: cumulative,
			DailyPnl:      d.pnl,
			TradeCount:    d.count,
		})
	}
	return curve, nil
}
