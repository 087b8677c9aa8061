// journal/schema.go
package journal

const Schema = `
CREATE TABLE IF NOT EXISTS trades (
	id TEXT PRIMARY KEY,
	pair TEXT NOT NULL,
	exchange TEXT NOT NULL,
	analysis_date DATETIME NOT NULL,
	trade_date DATETIME NOT NULL,
	close_date DATETIME,
	status TEXT NOT NULL,

	portfolio_value REAL NOT NULL,
	risk_fraction REAL NOT NULL,
	min_rr REAL NOT NULL,

	planned_entry REAL NOT NULL,
	planned_stop REAL NOT NULL,
	stop_estimated INTEGER NOT NULL DEFAULT 0,
	leverage INTEGER NOT NULL,
	planned_entries TEXT,
	planned_tps TEXT NOT NULL,
	position_type TEXT NOT NULL,

	one_r REAL NOT NULL,
	margin REAL NOT NULL,
	position_size REAL NOT NULL,
	quantity REAL NOT NULL,
	planned_weighted_rr REAL,

	effective_entry REAL,
	effective_entries TEXT,
	exits TEXT,
	effective_weighted_rr REAL,
	total_pnl REAL,
	pnl_in_r REAL,

	notes TEXT NOT NULL DEFAULT '',
	import_fingerprint TEXT,
	import_source TEXT NOT NULL DEFAULT 'USER_CREATED',

	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL,
	deleted_at DATETIME
);

CREATE UNIQUE INDEX IF NOT EXISTS idx_trades_fingerprint
	ON trades(import_fingerprint) WHERE import_fingerprint != '';
CREATE INDEX IF NOT EXISTS idx_trades_close_date ON trades(close_date);
CREATE INDEX IF NOT EXISTS idx_trades_status ON trades(status);
`
