package sqlite

import "github.com/tradebook/tradebook/tradebook/storage"

var SQLTemplates = storage.SQL{
	GetMeta: `SELECT value FROM meta WHERE key = ?`,
	SetMeta: `INSERT INTO meta(key, value) VALUES(?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`,

	UpsertTrade: `INSERT INTO trades
		(id, symbol, side, opened_at, closed_at, entry, exit, size, pnl, notes, created_at, updated_at)
		VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			symbol = excluded.symbol,
			side = excluded.side,
			opened_at = excluded.opened_at,
			closed_at = excluded.closed_at,
			entry = excluded.entry,
			exit = excluded.exit,
			size = excluded.size,
			pnl = excluded.pnl,
			notes = excluded.notes,
			updated_at = excluded.updated_at`,

	GetTradeByID: `SELECT id, symbol, side, opened_at, closed_at, entry, exit, size, pnl, notes, created_at, updated_at
		FROM trades WHERE id = ?`,

	DeleteTradeByID: `DELETE FROM trades WHERE id = ?`,

	ListTrades: `SELECT id, symbol, side, opened_at, closed_at, entry, exit, size, pnl, notes, created_at, updated_at
		FROM trades ORDER BY opened_at DESC, id DESC`,

	CountTrades: `SELECT COUNT(*) FROM trades`,

	DeleteTagsByTrade: `DELETE FROM trade_tags WHERE trade_id = ?`,

	InsertTradeTag: `INSERT OR IGNORE INTO trade_tags(trade_id, tag) VALUES(?, ?)`,

	ListAllTradeTags: `SELECT trade_id, tag FROM trade_tags`,

	TagFrequency: `SELECT tt.tag, COUNT(*),
			MAX(CASE WHEN t.closed_at > 0 THEN t.closed_at ELSE t.opened_at END)
		FROM trade_tags tt
		JOIN trades t ON t.id = tt.trade_id
		GROUP BY tt.tag`,
}
