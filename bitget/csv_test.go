package bitget

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ehjvfzekdalq/trading-journal-macos-sub000/config"
	"github.com/ehjvfzekdalq/trading-journal-macos-sub000/market"
)

const sampleLine = "INJUSDT Long·Isolated,2024-01-02 03:04:05,30.5,35.5,100INJ,Isolated,500USDT,500USDT,0.1USDT,-1.5USDT,-1.5USDT,2024-01-03 06:07:08"

func testSettings() config.Settings {
	s := config.Default()
	s.InitialCapital = 10_000
	s.RiskPercent = 0.02
	return *s
}

func TestParseRow(t *testing.T) {
	t.Parallel()

	r, err := ParseRow(sampleLine)
	require.NoError(t, err)

	assert.Equal(t, market.Pair("INJ/USDT"), r.Pair)
	assert.Equal(t, market.Long, r.Type)
	assert.InDelta(t, 30.5, r.EntryPrice, 1e-9)
	assert.InDelta(t, 35.5, r.ExitPrice, 1e-9)
	assert.InDelta(t, 100, r.Quantity, 1e-9)
	assert.InDelta(t, 500, r.RealizedPnl, 1e-9)
	assert.InDelta(t, 3.0, r.TotalFees, 1e-9)
	assert.Equal(t, "2024-01-02 03:04:05", r.OpeningTime)
	assert.Equal(t, "2024-01-03 06:07:08", r.ClosingTime)
	assert.Empty(t, r.CoercedFields)
}

func TestParseRowShort(t *testing.T) {
	t.Parallel()

	line := "BTCUSDT Short,2024-02-01 10:00:00,65000,64000,0.5BTC,Cross,1000USDT,480.5USDT,0USDT,-2USDT,-2USDT,2024-02-01 18:30:00"
	r, err := ParseRow(line)
	require.NoError(t, err)

	assert.Equal(t, market.Pair("BTC/USDT"), r.Pair)
	assert.Equal(t, market.Short, r.Type)
	assert.InDelta(t, 480.5, r.RealizedPnl, 1e-9)
}

func TestParseRowStripsBOM(t *testing.T) {
	t.Parallel()

	r, err := ParseRow("\ufeff" + sampleLine)
	require.NoError(t, err)
	assert.Equal(t, market.Pair("INJ/USDT"), r.Pair)
}

func TestParseRowMalformed(t *testing.T) {
	t.Parallel()

	_, err := ParseRow("INJUSDT Long,2024-01-02,30.5,35.5,100,Isolated,500,500,0.1")
	assert.ErrorIs(t, err, ErrMalformedRow)
}

func TestParseRowBadFuturesField(t *testing.T) {
	t.Parallel()

	line := "not a symbol,2024-01-02 03:04:05,30.5,35.5,100,Isolated,500,500,0.1,-1.5,-1.5,2024-01-03 06:07:08"
	_, err := ParseRow(line)
	assert.ErrorIs(t, err, ErrUnrecognizedFuturesField)
}

func TestParseRowCoercesBlankNumerics(t *testing.T) {
	t.Parallel()

	// Blank fee cells coerce to zero but the coercion stays visible.
	line := "INJUSDT Long,2024-01-02 03:04:05,30.5,35.5,100INJ,Isolated,500USDT,500USDT,0.1USDT,,-1.5USDT,2024-01-03 06:07:08"
	r, err := ParseRow(line)
	require.NoError(t, err)

	assert.InDelta(t, 1.5, r.TotalFees, 1e-9)
	assert.Equal(t, []string{"opening_fee"}, r.CoercedFields)
}

func TestFingerprintDeterministic(t *testing.T) {
	t.Parallel()

	a, err := ParseRow(sampleLine)
	require.NoError(t, err)
	b, err := ParseRow(sampleLine)
	require.NoError(t, err)

	assert.Equal(t, Fingerprint(a), Fingerprint(b))
	assert.Equal(t,
		"csv|bitget|inj/usdt|long|2024-01-02 03:04:05|2024-01-03 06:07:08|100.00000000|500.00000000",
		Fingerprint(a))
}

func TestFingerprintSensitivity(t *testing.T) {
	t.Parallel()

	base, err := ParseRow(sampleLine)
	require.NoError(t, err)

	mutations := []func(r *Row){
		func(r *Row) { r.Pair = "BTC/USDT" },
		func(r *Row) { r.Type = market.Short },
		func(r *Row) { r.OpeningTime = "2024-01-02 03:04:06" },
		func(r *Row) { r.ClosingTime = "2024-01-03 06:07:09" },
		func(r *Row) { r.Quantity = 101 },
		func(r *Row) { r.RealizedPnl = 500.00000001 },
	}
	for _, mutate := range mutations {
		r := base
		mutate(&r)
		assert.NotEqual(t, Fingerprint(base), Fingerprint(r))
	}
}

func TestParseCSVBatch(t *testing.T) {
	t.Parallel()

	// Header, one good row, one malformed row: the bad row is collected
	// with its 1-based line number and never aborts the batch.
	content := "Futures,Opened,Entry,Exit,Qty,Mode,Margin,PnL,Funding,OpenFee,CloseFee,Closed\n" +
		sampleLine + "\n" +
		"INJUSDT Long,2024-01-02,30.5,35.5,100,Isolated,500,500,0.1"

	b := ParseCSV(content, testSettings(), time.Now().UTC())

	require.Len(t, b.Trades, 1)
	require.Len(t, b.Errors, 1)
	assert.Equal(t, 3, b.Errors[0].Line)
	assert.ErrorIs(t, b.Errors[0].Err, ErrMalformedRow)
}

func TestParseCSVSkipsBlankLines(t *testing.T) {
	t.Parallel()

	content := "header\n\n" + sampleLine + "\n\n"
	b := ParseCSV(content, testSettings(), time.Now().UTC())

	assert.Len(t, b.Trades, 1)
	assert.Empty(t, b.Errors)
}
