package postgres

import "github.com/tradebook/tradebook/tradebook/storage"

var SQLTemplates = storage.SQL{
	GetMeta: `SELECT value FROM meta WHERE key = $1`,
	SetMeta: `INSERT INTO meta(key, value) VALUES($1, $2)
		ON CONFLICT(key) DO UPDATE SET value = EXCLUDED.value`,

	UpsertTrade: `INSERT INTO trades
		(id, symbol, side, opened_at, closed_at, entry, exit, size, pnl, notes, created_at, updated_at)
		VALUES($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT(id) DO UPDATE SET
			symbol = EXCLUDED.symbol,
			side = EXCLUDED.side,
			opened_at = EXCLUDED.opened_at,
			closed_at = EXCLUDED.closed_at,
			entry = EXCLUDED.entry,
			exit = EXCLUDED.exit,
			size = EXCLUDED.size,
			pnl = EXCLUDED.pnl,
			notes = EXCLUDED.notes,
			updated_at = EXCLUDED.updated_at`,

	GetTradeByID: `SELECT id, symbol, side, opened_at, closed_at, entry, exit, size, pnl, notes, created_at, updated_at
		FROM trades WHERE id = $1`,

	DeleteTradeByID: `DELETE FROM trades WHERE id = $1`,

	ListTrades: `SELECT id, symbol, side, opened_at, closed_at, entry, exit, size, pnl, notes, created_at, updated_at
		FROM trades ORDER BY opened_at DESC, id DESC`,

	CountTrades: `SELECT COUNT(*) FROM trades`,

	DeleteTagsByTrade: `DELETE FROM trade_tags WHERE trade_id = $1`,

	InsertTradeTag: `INSERT INTO trade_tags(trade_id, tag) VALUES($1, $2)
		ON CONFLICT DO NOTHING`,

	ListAllTradeTags: `SELECT trade_id, tag FROM trade_tags`,

	TagFrequency: `SELECT tt.tag, COUNT(*),
			MAX(CASE WHEN t.closed_at > 0 THEN t.closed_at ELSE t.opened_at END)
		FROM trade_tags tt
		JOIN trades t ON t.id = tt.trade_id
		GROUP BY tt.tag`,
}
