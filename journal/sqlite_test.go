package journal

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ehjvfzekdalq/trading-journal-macos-sub000/market"
	"github.com/ehjvfzekdalq/trading-journal-macos-sub000/risk"
)

func testJournal(t *testing.T) *SQLite {
	t.Helper()

	j, err := NewSQLite(filepath.Join(t.TempDir(), "journal.sqlite"))
	require.NoError(t, err)
	t.Cleanup(func() { j.Close() })
	return j
}

func ptr(v float64) *float64 { return &v }

func sampleRecord(id string) TradeRecord {
	opened := time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)
	return TradeRecord{
		ID:       id,
		Pair:     "INJ/USDT",
		Exchange: "bitget",

		AnalysisDate: opened.Add(-24 * time.Hour),
		TradeDate:    opened,
		CloseDate:    opened.Add(48 * time.Hour),
		Status:       market.StatusWin,

		PortfolioValue: 10_000,
		RiskFraction:   0.02,
		MinRR:          1.5,

		PlannedEntry: 100,
		PlannedStop:  90,
		Leverage:     10,
		PlannedEntries: []risk.Allocation{
			{Price: 100, Percent: 60},
			{Price: 110, Percent: 40},
		},
		PlannedTPs:   []risk.TakeProfit{{Price: 120, Percent: 100}},
		PositionType: market.Long,

		OneR:         200,
		Margin:       200,
		PositionSize: 2_000,
		Quantity:     20,

		PlannedWeightedRR: ptr(2.0),
		EffectiveEntry:    ptr(100),
		Exits:             []risk.ExitLeg{{Price: 120, Percent: 1}},
		TotalPnl:          ptr(400),
		PnlInR:            ptr(2.0),

		Notes:        "planned at the weekly level",
		ImportSource: "USER_CREATED",
		CreatedAt:    opened,
		UpdatedAt:    opened,
	}
}

func TestRecordAndGetTrade(t *testing.T) {
	t.Parallel()

	j := testJournal(t)
	want := sampleRecord("TRADE-01")
	require.NoError(t, j.RecordTrade(want))

	got, err := j.GetTrade("TRADE-01")
	require.NoError(t, err)

	assert.Equal(t, want.Pair, got.Pair)
	assert.Equal(t, want.Status, got.Status)
	assert.Equal(t, want.PositionType, got.PositionType)
	assert.Equal(t, want.PlannedEntries, got.PlannedEntries)
	assert.Equal(t, want.PlannedTPs, got.PlannedTPs)
	assert.Equal(t, want.Exits, got.Exits)
	assert.InDelta(t, 0.02, float64(got.RiskFraction), 1e-9)
	assert.Equal(t, want.Leverage, got.Leverage)
	assert.True(t, got.TradeDate.Equal(want.TradeDate))
	assert.True(t, got.CloseDate.Equal(want.CloseDate))

	require.NotNil(t, got.PlannedWeightedRR)
	assert.InDelta(t, 2.0, *got.PlannedWeightedRR, 1e-9)
	require.NotNil(t, got.TotalPnl)
	assert.InDelta(t, 400, *got.TotalPnl, 1e-9)
}

func TestGetTradeNullables(t *testing.T) {
	t.Parallel()

	j := testJournal(t)
	rec := sampleRecord("TRADE-02")
	rec.Status = market.StatusOpen
	rec.CloseDate = time.Time{}
	rec.PlannedWeightedRR = nil
	rec.EffectiveEntry = nil
	rec.Exits = nil
	rec.TotalPnl = nil
	rec.PnlInR = nil
	require.NoError(t, j.RecordTrade(rec))

	got, err := j.GetTrade("TRADE-02")
	require.NoError(t, err)

	// Absent values come back absent, not as zeros.
	assert.True(t, got.CloseDate.IsZero())
	assert.Nil(t, got.PlannedWeightedRR)
	assert.Nil(t, got.TotalPnl)
	assert.Nil(t, got.PnlInR)
	assert.Empty(t, got.Exits)
}

func TestGetTradeNotFound(t *testing.T) {
	t.Parallel()

	j := testJournal(t)
	_, err := j.GetTrade("TRADE-MISSING")
	assert.ErrorContains(t, err, "not found")
}

func TestUpdateTrade(t *testing.T) {
	t.Parallel()

	j := testJournal(t)
	rec := sampleRecord("TRADE-03")
	rec.Status = market.StatusOpen
	rec.TotalPnl = nil
	require.NoError(t, j.RecordTrade(rec))

	rec.Status = market.StatusWin
	rec.TotalPnl = ptr(400)
	rec.Exits = []risk.ExitLeg{{Price: 120, Percent: 1}}
	require.NoError(t, j.UpdateTrade(rec))

	got, err := j.GetTrade("TRADE-03")
	require.NoError(t, err)
	assert.Equal(t, market.StatusWin, got.Status)
	require.NotNil(t, got.TotalPnl)
	assert.InDelta(t, 400, *got.TotalPnl, 1e-9)

	rec.ID = "TRADE-NOPE"
	assert.ErrorContains(t, j.UpdateTrade(rec), "not found")
}

func TestFingerprintExists(t *testing.T) {
	t.Parallel()

	j := testJournal(t)
	rec := sampleRecord("TRADE-04")
	rec.ImportFingerprint = "csv|bitget|inj/usdt|long|a|b|1.00000000|2.00000000"
	rec.ImportSource = "CSV_IMPORT"
	require.NoError(t, j.RecordTrade(rec))

	exists, err := j.FingerprintExists(rec.ImportFingerprint)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = j.FingerprintExists("csv|bitget|other")
	require.NoError(t, err)
	assert.False(t, exists)

	// Manually created trades have no fingerprint; the empty string never
	// matches anything.
	exists, err = j.FingerprintExists("")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestDeleteTradeIsSoft(t *testing.T) {
	t.Parallel()

	j := testJournal(t)
	require.NoError(t, j.RecordTrade(sampleRecord("TRADE-05")))

	require.NoError(t, j.DeleteTrade("TRADE-05"))

	_, err := j.GetTrade("TRADE-05")
	assert.ErrorContains(t, err, "not found")

	trades, err := j.ListTrades(Filters{})
	require.NoError(t, err)
	assert.Empty(t, trades)

	// Second delete finds nothing.
	assert.ErrorContains(t, j.DeleteTrade("TRADE-05"), "not found")
}

func TestListTradesFilters(t *testing.T) {
	t.Parallel()

	j := testJournal(t)

	a := sampleRecord("TRADE-A")
	a.TradeDate = time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)

	b := sampleRecord("TRADE-B")
	b.Pair = "BTC/USDT"
	b.Status = market.StatusLoss
	b.TradeDate = time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC)

	c := sampleRecord("TRADE-C")
	c.ImportSource = "CSV_IMPORT"
	c.TradeDate = time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)

	for _, rec := range []TradeRecord{a, b, c} {
		require.NoError(t, j.RecordTrade(rec))
	}

	all, err := j.ListTrades(Filters{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	// Newest trade date first.
	assert.Equal(t, "TRADE-C", all[0].ID)
	assert.Equal(t, "TRADE-A", all[2].ID)

	wins, err := j.ListTrades(Filters{Status: market.StatusWin})
	require.NoError(t, err)
	assert.Len(t, wins, 2)

	btc, err := j.ListTrades(Filters{Pair: "BTC/USDT"})
	require.NoError(t, err)
	require.Len(t, btc, 1)
	assert.Equal(t, "TRADE-B", btc[0].ID)

	imported, err := j.ListTrades(Filters{Source: "CSV_IMPORT"})
	require.NoError(t, err)
	require.Len(t, imported, 1)
	assert.Equal(t, "TRADE-C", imported[0].ID)

	feb, err := j.ListTrades(Filters{
		Start: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	require.Len(t, feb, 1)
	assert.Equal(t, "TRADE-B", feb[0].ID)

	paged, err := j.ListTrades(Filters{Limit: 1, Offset: 1})
	require.NoError(t, err)
	require.Len(t, paged, 1)
	assert.Equal(t, "TRADE-B", paged[0].ID)
}

func TestDuplicateFingerprintRejected(t *testing.T) {
	t.Parallel()

	j := testJournal(t)
	a := sampleRecord("TRADE-DUP-1")
	a.ImportFingerprint = "csv|bitget|dup"
	require.NoError(t, j.RecordTrade(a))

	b := sampleRecord("TRADE-DUP-2")
	b.ImportFingerprint = "csv|bitget|dup"
	assert.Error(t, j.RecordTrade(b))
}

func TestOutcomeRecomputesFromLegs(t *testing.T) {
	t.Parallel()

	rec := sampleRecord("TRADE-06")
	out, err := rec.Outcome()
	require.NoError(t, err)

	// Fill at 100, stop 90, full exit at 120: 2R on a 200 risk unit.
	assert.InDelta(t, 100, out.WeightedEntry, 1e-9)
	assert.InDelta(t, 1.0, float64(out.ExitedFraction), 1e-9)
	assert.InDelta(t, 400, out.TotalPnl, 1e-9)

	// Recording actual fills shifts the weighted entry and every derived
	// number with it.
	rec.EffectiveEntries = []risk.Allocation{
		{Price: 100, Percent: 60},
		{Price: 110, Percent: 40},
	}
	out, err = rec.Outcome()
	require.NoError(t, err)
	assert.InDelta(t, 104, out.WeightedEntry, 1e-9)
	assert.InDelta(t, (120.0-104.0)/14.0, out.TotalRMultiple, 1e-9)
}
