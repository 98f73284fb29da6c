package postgres

const ddlBase = `
CREATE TABLE IF NOT EXISTS meta (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS trades (
	id         TEXT PRIMARY KEY,
	symbol     TEXT NOT NULL,
	side       TEXT NOT NULL,
	opened_at  BIGINT NOT NULL,
	closed_at  BIGINT NOT NULL DEFAULT 0,
	entry      TEXT NOT NULL DEFAULT '0',
	exit       TEXT NOT NULL DEFAULT '0',
	size       TEXT NOT NULL DEFAULT '0',
	pnl        TEXT NOT NULL DEFAULT '0',
	notes      TEXT NOT NULL DEFAULT '',
	created_at BIGINT NOT NULL,
	updated_at BIGINT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_trades_opened_at ON trades(opened_at);

CREATE TABLE IF NOT EXISTS trade_tags (
	trade_id TEXT NOT NULL REFERENCES trades(id) ON DELETE CASCADE,
	tag      TEXT NOT NULL,
	PRIMARY KEY (trade_id, tag)
);

CREATE INDEX IF NOT EXISTS idx_trade_tags_tag ON trade_tags(tag);
`
