package tradebook

import (
	"context"
	"database/sql"
	"sync/atomic"
	"time"

	"github.com/segmentio/ksuid"
	"go.uber.org/zap"

	"github.com/tradebook/tradebook/tradebook/storage"
	"github.com/tradebook/tradebook/tradebook/tagquery"
)

// Journal is an open trading journal. The tag search cache is keyed on the
// collection version, which every mutation bumps, so cached results can
// never go stale across a write.
type Journal struct {
	adapter storage.Adapter
	db      *sql.DB
	opts    Options
	log     *zap.Logger
	cache   *tagquery.Cache
	version atomic.Uint64
}

// Create initializes the database schema and opens the journal.
func Create(ctx context.Context, adapter storage.Adapter, opts Options) (*Journal, error) {
	db, err := adapter.Connect(ctx)
	if err != nil {
		return nil, Wrap(ErrIO, "connect to database", err)
	}
	if err := adapter.Init(ctx, db); err != nil {
		_ = db.Close()
		return nil, Wrap(ErrSQL, "initialize journal", err)
	}
	return newJournal(adapter, db, opts), nil
}

// Open opens an existing journal.
func Open(ctx context.Context, adapter storage.Adapter, opts Options) (*Journal, error) {
	db, err := adapter.Connect(ctx)
	if err != nil {
		return nil, Wrap(ErrIO, "connect to database", err)
	}
	if err := adapter.Check(ctx, db); err != nil {
		_ = db.Close()
		return nil, Wrap(ErrSQL, "open journal", err)
	}
	return newJournal(adapter, db, opts), nil
}

func newJournal(adapter storage.Adapter, db *sql.DB, opts Options) *Journal {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	var cache *tagquery.Cache
	if opts.CacheSize >= 0 {
		cache, _ = tagquery.NewCache(opts.CacheSize)
	}
	return &Journal{
		adapter: adapter,
		db:      db,
		opts:    opts,
		log:     opts.Logger.With(zap.String("journal", adapter.Ref())),
		cache:   cache,
	}
}

// Close closes the journal.
func (j *Journal) Close() error {
	if j.db != nil {
		if err := j.db.Close(); err != nil {
			return Wrap(ErrIO, "close database", err)
		}
	}
	return j.adapter.Close()
}

// Adapter returns the underlying storage adapter.
func (j *Journal) Adapter() storage.Adapter { return j.adapter }

// DB returns the underlying database connection (for advanced use).
func (j *Journal) DB() *sql.DB { return j.db }

// Put inserts or updates a trade. An empty ID gets a fresh ksuid; tags are
// canonicalized, dropping any that normalize to nothing.
func (j *Journal) Put(ctx context.Context, t *Trade) error {
	if err := prepareTrade(t, j.nowMS()); err != nil {
		return err
	}

	tx, err := j.db.BeginTx(ctx, nil)
	if err != nil {
		return Wrap(ErrSQL, "begin transaction", err)
	}
	defer tx.Rollback()

	if err := j.putInTx(ctx, tx, t); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return Wrap(ErrSQL, "commit", err)
	}

	j.bumpVersion()
	j.log.Debug("trade stored", zap.String("id", t.ID), zap.Strings("tags", t.Tags))
	return nil
}

// Batch executes a set of puts and deletes in one transaction and returns
// the number of operations applied.
func (j *Journal) Batch(ctx context.Context, b Batch) (int, error) {
	if b.Empty() {
		return 0, nil
	}

	nowMS := j.nowMS()
	tx, err := j.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, Wrap(ErrSQL, "begin transaction", err)
	}
	defer tx.Rollback()

	sqlt := j.adapter.SQL()
	count := 0
	for _, op := range b.ops {
		switch op.Kind {
		case batchPut:
			if err := prepareTrade(op.Trade, nowMS); err != nil {
				return count, err
			}
			if err := j.putInTx(ctx, tx, op.Trade); err != nil {
				return count, err
			}
		case batchDelete:
			if _, err := tx.ExecContext(ctx, sqlt.DeleteTagsByTrade, op.ID); err != nil {
				return count, Wrap(ErrSQL, "delete trade tags", err)
			}
			if _, err := tx.ExecContext(ctx, sqlt.DeleteTradeByID, op.ID); err != nil {
				return count, Wrap(ErrSQL, "delete trade", err)
			}
		}
		count++
	}

	if err := tx.Commit(); err != nil {
		return count, Wrap(ErrSQL, "commit transaction", err)
	}

	j.bumpVersion()
	j.log.Debug("batch applied", zap.Int("ops", count))
	return count, nil
}

func (j *Journal) putInTx(ctx context.Context, tx *sql.Tx, t *Trade) error {
	sqlt := j.adapter.SQL()

	// Preserve created_at when overwriting an existing trade.
	existing, err := scanTrade(tx.QueryRowContext(ctx, sqlt.GetTradeByID, t.ID))
	switch {
	case err == sql.ErrNoRows:
	case err != nil:
		return Wrap(ErrSQL, "lookup trade", err)
	default:
		t.CreatedAtMS = existing.CreatedAtMS
	}

	_, err = tx.ExecContext(ctx, sqlt.UpsertTrade,
		t.ID, t.Symbol, string(t.Side), t.OpenedAt, t.ClosedAt,
		t.Entry.String(), t.Exit.String(), t.Size.String(), t.PnL.String(),
		t.Notes, t.CreatedAtMS, t.UpdatedAtMS)
	if err != nil {
		return Wrap(ErrSQL, "upsert trade", err)
	}

	if _, err := tx.ExecContext(ctx, sqlt.DeleteTagsByTrade, t.ID); err != nil {
		return Wrap(ErrSQL, "delete trade tags", err)
	}
	for _, tag := range t.Tags {
		if _, err := tx.ExecContext(ctx, sqlt.InsertTradeTag, t.ID, tag); err != nil {
			return Wrap(ErrSQL, "insert trade tag", err)
		}
	}
	return nil
}

// Get retrieves a trade by ID, tags included.
func (j *Journal) Get(ctx context.Context, id string) (*Trade, error) {
	sqlt := j.adapter.SQL()

	t, err := scanTrade(j.db.QueryRowContext(ctx, sqlt.GetTradeByID, id))
	if err == sql.ErrNoRows {
		return nil, NotFoundError(id)
	}
	if err != nil {
		return nil, Wrap(ErrSQL, "get trade", err)
	}

	tagsByTrade, err := j.loadTags(ctx)
	if err != nil {
		return nil, err
	}
	t.Tags = tagsByTrade[t.ID]
	return t, nil
}

// Delete removes a trade by ID. It reports whether a trade was deleted.
func (j *Journal) Delete(ctx context.Context, id string) (bool, error) {
	sqlt := j.adapter.SQL()

	if _, err := j.db.ExecContext(ctx, sqlt.DeleteTagsByTrade, id); err != nil {
		return false, Wrap(ErrSQL, "delete trade tags", err)
	}
	res, err := j.db.ExecContext(ctx, sqlt.DeleteTradeByID, id)
	if err != nil {
		return false, Wrap(ErrSQL, "delete trade", err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return false, nil
	}

	j.bumpVersion()
	j.log.Debug("trade deleted", zap.String("id", id))
	return true, nil
}

// List returns every trade, most recently opened first, with tags attached
// and tag sets precomputed.
func (j *Journal) List(ctx context.Context) ([]*Trade, error) {
	sqlt := j.adapter.SQL()

	rows, err := j.db.QueryContext(ctx, sqlt.ListTrades)
	if err != nil {
		return nil, Wrap(ErrSQL, "list trades", err)
	}
	defer rows.Close()

	var trades []*Trade
	for rows.Next() {
		t, err := scanTrade(rows)
		if err != nil {
			return nil, Wrap(ErrSQL, "scan trade", err)
		}
		trades = append(trades, t)
	}
	if err := rows.Err(); err != nil {
		return nil, Wrap(ErrSQL, "list trades", err)
	}

	tagsByTrade, err := j.loadTags(ctx)
	if err != nil {
		return nil, err
	}
	for _, t := range trades {
		t.Tags = tagsByTrade[t.ID]
		t.TagSet() // precompute once per snapshot
	}
	return trades, nil
}

// Search runs a tag query over the whole journal. Structural query errors
// come back as data on the result, never as an error value.
func (j *Journal) Search(ctx context.Context, query string) (SearchResult, error) {
	version := j.version.Load()
	if res, ok := j.cache.Get(query, version); ok {
		return toSearchResult(res), nil
	}

	trades, err := j.List(ctx)
	if err != nil {
		return SearchResult{}, err
	}

	records := make([]tagquery.Record, len(trades))
	for i, t := range trades {
		records[i] = t
	}

	res := tagquery.Execute(records, query)
	j.cache.Put(query, version, res)
	return toSearchResult(res), nil
}

// Find routes free-form search-box input: tag-query-looking input goes
// through the search engine, anything else becomes a case-insensitive
// substring match over symbol and notes.
func (j *Journal) Find(ctx context.Context, input string) (SearchResult, error) {
	if tagquery.IsTagSearch(input) {
		return j.Search(ctx, input)
	}

	trades, err := j.List(ctx)
	if err != nil {
		return SearchResult{}, err
	}
	return SearchResult{Valid: true, Trades: substringFilter(trades, input)}, nil
}

// Suggest ranks tag completions for a partial query using the journal's
// tag frequency index.
func (j *Journal) Suggest(ctx context.Context, partial string, limit int) ([]string, error) {
	ix, err := j.FrequencyIndex(ctx)
	if err != nil {
		return nil, err
	}
	return tagquery.Suggest(partial, ix, limit), nil
}

// FrequencyIndex builds the tag frequency index from storage. It is a full
// recompute per call; rebuilding is the caller's concern after mutations.
func (j *Journal) FrequencyIndex(ctx context.Context) (tagquery.FrequencyIndex, error) {
	sqlt := j.adapter.SQL()

	rows, err := j.db.QueryContext(ctx, sqlt.TagFrequency)
	if err != nil {
		return nil, Wrap(ErrSQL, "tag frequency", err)
	}
	defer rows.Close()

	ix := make(tagquery.FrequencyIndex)
	for rows.Next() {
		var tag string
		var count int
		var lastUsedMS int64
		if err := rows.Scan(&tag, &count, &lastUsedMS); err != nil {
			return nil, Wrap(ErrSQL, "scan tag frequency", err)
		}
		ix[tag] = tagquery.TagStat{Count: count, LastUsed: time.UnixMilli(lastUsedMS).UTC()}
	}
	if err := rows.Err(); err != nil {
		return nil, Wrap(ErrSQL, "tag frequency", err)
	}
	return ix, nil
}

// Tags returns the journal's tag overview, most used first.
func (j *Journal) Tags(ctx context.Context) ([]TagCount, error) {
	ix, err := j.FrequencyIndex(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]TagCount, 0, len(ix))
	for tag, st := range ix {
		out = append(out, TagCount{Tag: tag, Count: st.Count, LastUsed: st.LastUsed})
	}
	sortTagCounts(out)
	return out, nil
}

// Stats computes performance statistics over the trades matching the query
// ("" means the whole journal). An invalid query yields zero stats plus the
// validation errors on the returned result.
func (j *Journal) Stats(ctx context.Context, query string) (TradeStats, SearchResult, error) {
	res, err := j.Search(ctx, query)
	if err != nil || !res.Valid {
		return TradeStats{}, res, err
	}
	return ComputeStats(res.Trades), res, nil
}

// ClearCache drops all memoized search results.
func (j *Journal) ClearCache() { j.cache.Purge() }

// Version returns the current record-collection version.
func (j *Journal) Version() uint64 { return j.version.Load() }

func (j *Journal) bumpVersion() { j.version.Add(1) }

func (j *Journal) nowMS() int64 { return j.opts.Now().UnixMilli() }

// loadTags fetches all trade tags in one pass.
func (j *Journal) loadTags(ctx context.Context) (map[string][]string, error) {
	rows, err := j.db.QueryContext(ctx, j.adapter.SQL().ListAllTradeTags)
	if err != nil {
		return nil, Wrap(ErrSQL, "list trade tags", err)
	}
	defer rows.Close()

	out := make(map[string][]string)
	for rows.Next() {
		var tradeID, tag string
		if err := rows.Scan(&tradeID, &tag); err != nil {
			return nil, Wrap(ErrSQL, "scan trade tag", err)
		}
		out[tradeID] = append(out[tradeID], tag)
	}
	if err := rows.Err(); err != nil {
		return nil, Wrap(ErrSQL, "list trade tags", err)
	}
	return out, nil
}

// prepareTrade validates and canonicalizes a trade before storage.
func prepareTrade(t *Trade, nowMS int64) error {
	if t == nil {
		return New(ErrInvalid, "trade is nil")
	}
	if t.Symbol == "" {
		return InvalidError("symbol", "symbol is required")
	}
	switch t.Side {
	case SideLong, SideShort:
	case "":
		return InvalidError("side", "side is required")
	default:
		return InvalidError("side", "side must be long or short")
	}
	if t.ID == "" {
		t.ID = ksuid.New().String()
	}
	if t.OpenedAt == 0 {
		t.OpenedAt = nowMS
	}
	if t.CreatedAtMS == 0 {
		t.CreatedAtMS = nowMS
	}
	t.UpdatedAtMS = nowMS

	// Canonical tags, invalid ones dropped, duplicates removed.
	seen := make(map[string]struct{}, len(t.Tags))
	canonical := t.Tags[:0]
	for _, raw := range t.Tags {
		tag := tagquery.Normalize(raw)
		if tag == "" {
			continue
		}
		if _, dup := seen[tag]; dup {
			continue
		}
		seen[tag] = struct{}{}
		canonical = append(canonical, tag)
	}
	t.Tags = canonical
	t.invalidateTagSet()
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTrade(row rowScanner) (*Trade, error) {
	var t Trade
	var side, entry, exit, size, pnl string
	err := row.Scan(&t.ID, &t.Symbol, &side, &t.OpenedAt, &t.ClosedAt,
		&entry, &exit, &size, &pnl, &t.Notes, &t.CreatedAtMS, &t.UpdatedAtMS)
	if err != nil {
		return nil, err
	}
	t.Side = Side(side)
	if t.Entry, err = parseDecimal(entry); err != nil {
		return nil, err
	}
	if t.Exit, err = parseDecimal(exit); err != nil {
		return nil, err
	}
	if t.Size, err = parseDecimal(size); err != nil {
		return nil, err
	}
	if t.PnL, err = parseDecimal(pnl); err != nil {
		return nil, err
	}
	return &t, nil
}

func toSearchResult(res tagquery.SearchResult) SearchResult {
	out := SearchResult{
		Valid:        res.Valid,
		MatchingTags: res.MatchingTags,
		Errors:       res.Errors,
	}
	for _, r := range res.Records {
		out.Trades = append(out.Trades, r.(*Trade))
	}
	return out
}
