package journal

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ehjvfzekdalq/trading-journal-macos-sub000/market"
)

func closedTrade(id string, status market.Status, pnl float64, closed time.Time) TradeRecord {
	rec := sampleRecord(id)
	rec.Status = status
	rec.CloseDate = closed
	if status == market.StatusOpen {
		rec.CloseDate = time.Time{}
		rec.TotalPnl = nil
	} else {
		rec.TotalPnl = ptr(pnl)
	}
	return rec
}

func TestStats(t *testing.T) {
	t.Parallel()

	j := testJournal(t)
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

	seed := []TradeRecord{
		closedTrade("T-1", market.StatusWin, 400, now.AddDate(0, 0, -1)),
		closedTrade("T-2", market.StatusWin, 200, now.AddDate(0, 0, -2)),
		closedTrade("T-3", market.StatusLoss, -150, now.AddDate(0, 0, -3)),
		closedTrade("T-4", market.StatusBE, 0.5, now.AddDate(0, 0, -4)),
		closedTrade("T-5", market.StatusOpen, 0, time.Time{}),
	}
	for _, rec := range seed {
		require.NoError(t, j.RecordTrade(rec))
	}

	s, err := j.Stats(time.Time{})
	require.NoError(t, err)

	assert.Equal(t, 5, s.TotalTrades)
	assert.Equal(t, 2, s.Wins)
	assert.Equal(t, 1, s.Losses)
	assert.Equal(t, 1, s.Breakevens)
	assert.Equal(t, 1, s.OpenTrades)

	// Breakevens don't dilute the win rate.
	assert.InDelta(t, 2.0/3.0*100, s.WinRate, 1e-9)
	assert.InDelta(t, 450.5, s.TotalPnl, 1e-9)
	assert.InDelta(t, 600.5, s.GrossProfit, 1e-9)
	assert.InDelta(t, 150, s.GrossLoss, 1e-9)
	assert.InDelta(t, 600.5/150, s.ProfitFactor, 1e-9)
	assert.InDelta(t, 400, s.BestTrade, 1e-9)
	assert.InDelta(t, -150, s.WorstTrade, 1e-9)
}

func TestStatsWindow(t *testing.T) {
	t.Parallel()

	j := testJournal(t)
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

	require.NoError(t, j.RecordTrade(closedTrade("T-NEW", market.StatusWin, 300, now.AddDate(0, 0, -2))))
	require.NoError(t, j.RecordTrade(closedTrade("T-OLD", market.StatusLoss, -100, now.AddDate(0, 0, -60))))
	require.NoError(t, j.RecordTrade(closedTrade("T-OPEN", market.StatusOpen, 0, time.Time{})))

	s, err := j.Stats(now.AddDate(0, 0, -30))
	require.NoError(t, err)

	assert.Equal(t, 1, s.TotalTrades)
	assert.Equal(t, 1, s.Wins)
	assert.Equal(t, 0, s.Losses)
	assert.InDelta(t, 300, s.TotalPnl, 1e-9)
	// Open count spans all time regardless of the window.
	assert.Equal(t, 1, s.OpenTrades)
	// No losses in the window: profit factor degenerates to +Inf.
	assert.True(t, math.IsInf(s.ProfitFactor, 1))
}

func TestStatsEmptyJournal(t *testing.T) {
	t.Parallel()

	j := testJournal(t)
	s, err := j.Stats(time.Time{})
	require.NoError(t, err)

	assert.Equal(t, DashboardStats{}, s)
}

func TestEquityCurve(t *testing.T) {
	t.Parallel()

	j := testJournal(t)

	day1 := time.Date(2024, 4, 1, 10, 0, 0, 0, time.UTC)
	day2 := time.Date(2024, 4, 3, 16, 0, 0, 0, time.UTC)

	require.NoError(t, j.RecordTrade(closedTrade("E-1", market.StatusWin, 300, day1)))
	require.NoError(t, j.RecordTrade(closedTrade("E-2", market.StatusLoss, -100, day1.Add(4*time.Hour))))
	require.NoError(t, j.RecordTrade(closedTrade("E-3", market.StatusWin, 250, day2)))
	require.NoError(t, j.RecordTrade(closedTrade("E-4", market.StatusOpen, 0, time.Time{})))

	curve, err := j.EquityCurve(time.Time{})
	require.NoError(t, err)
	require.Len(t, curve, 2)

	assert.Equal(t, "2024-04-01", curve[0].Date)
	assert.InDelta(t, 200, curve[0].DailyPnl, 1e-9)
	assert.InDelta(t, 200, curve[0].CumulativePnl, 1e-9)
	assert.Equal(t, 2, curve[0].TradeCount)

	assert.Equal(t, "2024-04-03", curve[1].Date)
	assert.InDelta(t, 250, curve[1].DailyPnl, 1e-9)
	assert.InDelta(t, 450, curve[1].CumulativePnl, 1e-9)
	assert.Equal(t, 1, curve[1].TradeCount)
}

func TestSinceFilterRanges(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC), SinceFilter("today", now))
	assert.Equal(t, now.AddDate(0, 0, -7), SinceFilter("week", now))
	assert.Equal(t, now.AddDate(0, 0, -90), SinceFilter("3months", now))
	assert.True(t, SinceFilter("all", now).IsZero())
	assert.True(t, SinceFilter("", now).IsZero())
}
