package tradebook_test

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite"

	"github.com/tradebook/tradebook/tradebook"
	"github.com/tradebook/tradebook/tradebook/storage/sqlite"
)

func monotonicNow(start time.Time) func() time.Time {
	var mu sync.Mutex
	t := start
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		t = t.Add(time.Millisecond)
		return t
	}
}

func newJournal(t *testing.T) *tradebook.Journal {
	t.Helper()

	dir := t.TempDir()
	dbPath := filepath.Join(dir, "test.db")

	opts := tradebook.DefaultOptions()
	opts.Now = monotonicNow(time.Unix(1700000000, 0)) // deterministic ordering

	j, err := tradebook.Create(context.Background(), sqlite.New(dbPath), opts)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	t.Cleanup(func() { _ = j.Close() })
	return j
}

func putTrade(t *testing.T, j *tradebook.Journal, symbol, pnl string, tags ...string) *tradebook.Trade {
	t.Helper()
	tr := &tradebook.Trade{
		Symbol: symbol,
		Side:   tradebook.SideLong,
		PnL:    decimal.RequireFromString(pnl),
		Tags:   tags,
	}
	if pnl != "0" {
		tr.ClosedAt = 1
	}
	if err := j.Put(context.Background(), tr); err != nil {
		t.Fatalf("Put: %v", err)
	}
	return tr
}

func symbolsOf(trades []*tradebook.Trade) []string {
	var out []string
	for _, t := range trades {
		out = append(out, t.Symbol)
	}
	return out
}

func TestPutGetDelete_SQLite(t *testing.T) {
	j := newJournal(t)
	ctx := context.Background()

	tr := putTrade(t, j, "EURUSD", "120", "#Scalping", "scalping", "Morning!", "###")

	got, err := j.Get(ctx, tr.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Symbol != "EURUSD" || got.Side != tradebook.SideLong {
		t.Errorf("unexpected trade: %+v", got)
	}
	if !got.PnL.Equal(decimal.RequireFromString("120")) {
		t.Errorf("pnl: got %s", got.PnL)
	}
	// Tags are stored canonical and deduplicated; invalid ones are dropped.
	if len(got.Tags) != 2 {
		t.Fatalf("expected 2 canonical tags, got %v", got.Tags)
	}
	if !got.TagSet().Has("#scalping") || !got.TagSet().Has("#morning") {
		t.Errorf("missing canonical tags: %v", got.Tags)
	}

	ok, err := j.Delete(ctx, tr.ID)
	if err != nil || !ok {
		t.Fatalf("Delete: ok=%v err=%v", ok, err)
	}
	if _, err := j.Get(ctx, tr.ID); !tradebook.IsKind(err, tradebook.ErrNotFound) {
		t.Errorf("expected not_found, got %v", err)
	}
	if ok, _ := j.Delete(ctx, tr.ID); ok {
		t.Error("second delete must report false")
	}
}

func TestPutValidation(t *testing.T) {
	j := newJournal(t)
	ctx := context.Background()

	err := j.Put(ctx, &tradebook.Trade{Side: tradebook.SideLong})
	if !tradebook.IsKind(err, tradebook.ErrInvalid) {
		t.Errorf("missing symbol: expected invalid, got %v", err)
	}
	err = j.Put(ctx, &tradebook.Trade{Symbol: "EURUSD", Side: "sideways"})
	if !tradebook.IsKind(err, tradebook.ErrInvalid) {
		t.Errorf("bad side: expected invalid, got %v", err)
	}
}

func TestSearch_SQLite(t *testing.T) {
	j := newJournal(t)
	ctx := context.Background()

	putTrade(t, j, "T1", "10", "#scalping", "#morning", "#trend")
	putTrade(t, j, "T2", "20", "#scalping", "#afternoon", "#reversal")
	putTrade(t, j, "T3", "30", "#swing", "#morning", "#trend")
	putTrade(t, j, "T4", "-5", "#swing", "#afternoon")
	putTrade(t, j, "T5", "15", "#breakout", "#evening")

	cases := []struct {
		query string
		want  int
	}{
		{"#scalping", 2},
		{"#scalping AND #morning", 1},
		{"#scalping OR #swing", 4},
		{"NOT #scalping", 3},
		{"#morning AND (#scalping OR #swing)", 2},
	}
	for _, c := range cases {
		res, err := j.Search(ctx, c.query)
		if err != nil {
			t.Fatalf("Search(%q): %v", c.query, err)
		}
		if !res.Valid {
			t.Fatalf("Search(%q): invalid: %v", c.query, res.Errors)
		}
		if len(res.Trades) != c.want {
			t.Errorf("Search(%q): expected %d trades, got %v", c.query, c.want, symbolsOf(res.Trades))
		}
	}

	res, err := j.Search(ctx, "(#scalping AND #morning")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if res.Valid || len(res.Trades) != 0 {
		t.Errorf("invalid query must return no trades: %+v", res)
	}
}

func TestSearchCacheInvalidation(t *testing.T) {
	j := newJournal(t)
	ctx := context.Background()

	putTrade(t, j, "T1", "10", "#scalping")
	res, err := j.Search(ctx, "#scalping")
	if err != nil || len(res.Trades) != 1 {
		t.Fatalf("first search: %v %v", err, symbolsOf(res.Trades))
	}

	// The same query again must see the new trade, not a cached result.
	putTrade(t, j, "T2", "20", "#scalping")
	res, err = j.Search(ctx, "#scalping")
	if err != nil || len(res.Trades) != 2 {
		t.Fatalf("post-mutation search: %v %v", err, symbolsOf(res.Trades))
	}

	j.ClearCache()
	res, err = j.Search(ctx, "#scalping")
	if err != nil || len(res.Trades) != 2 {
		t.Fatalf("post-clear search: %v %v", err, symbolsOf(res.Trades))
	}
}

func TestFindRoutesPlainText(t *testing.T) {
	j := newJournal(t)
	ctx := context.Background()

	putTrade(t, j, "EURUSD", "10", "#scalping")
	putTrade(t, j, "GBPJPY", "20", "#swing")

	res, err := j.Find(ctx, "eurusd")
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if len(res.Trades) != 1 || res.Trades[0].Symbol != "EURUSD" {
		t.Errorf("substring search failed: %v", symbolsOf(res.Trades))
	}

	res, err = j.Find(ctx, "#scalping")
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if len(res.Trades) != 1 || res.Trades[0].Symbol != "EURUSD" {
		t.Errorf("tag routing failed: %v", symbolsOf(res.Trades))
	}
}

func TestSuggestAndTags_SQLite(t *testing.T) {
	j := newJournal(t)
	ctx := context.Background()

	putTrade(t, j, "T1", "10", "#scalping", "#morning")
	putTrade(t, j, "T2", "20", "#scalping")
	putTrade(t, j, "T3", "30", "#swing")

	got, err := j.Suggest(ctx, "", 10)
	if err != nil {
		t.Fatalf("Suggest: %v", err)
	}
	if len(got) != 3 || got[0] != "#scalping" {
		t.Errorf("expected #scalping first, got %v", got)
	}

	got, err = j.Suggest(ctx, "#scalping AND", 1)
	if err != nil {
		t.Fatalf("Suggest: %v", err)
	}
	if len(got) != 1 || got[0] != "#scalping AND #swing" && got[0] != "#scalping AND #morning" {
		t.Errorf("expected continuation, got %v", got)
	}

	tags, err := j.Tags(ctx)
	if err != nil {
		t.Fatalf("Tags: %v", err)
	}
	if len(tags) != 3 || tags[0].Tag != "#scalping" || tags[0].Count != 2 {
		t.Errorf("unexpected tag overview: %+v", tags)
	}
}

func TestBatch_SQLite(t *testing.T) {
	j := newJournal(t)
	ctx := context.Background()

	b := tradebook.NewBatch()
	for _, sym := range []string{"A", "B", "C"} {
		if err := b.Put(&tradebook.Trade{Symbol: sym, Side: tradebook.SideShort, Tags: []string{"#bulk"}}); err != nil {
			t.Fatalf("batch put: %v", err)
		}
	}
	n, err := b.Execute(ctx, j)
	if err != nil || n != 3 {
		t.Fatalf("batch execute: n=%d err=%v", n, err)
	}

	res, err := j.Search(ctx, "#bulk")
	if err != nil || len(res.Trades) != 3 {
		t.Fatalf("expected 3 bulk trades, got %v (err %v)", symbolsOf(res.Trades), err)
	}

	b = tradebook.NewBatch()
	if err := b.Delete(res.Trades[0].ID); err != nil {
		t.Fatalf("batch delete: %v", err)
	}
	if n, err := b.Execute(ctx, j); err != nil || n != 1 {
		t.Fatalf("batch execute: n=%d err=%v", n, err)
	}
	if res, _ := j.Search(ctx, "#bulk"); len(res.Trades) != 2 {
		t.Errorf("expected 2 trades after delete, got %v", symbolsOf(res.Trades))
	}
}

func TestStats_SQLite(t *testing.T) {
	j := newJournal(t)
	ctx := context.Background()

	putTrade(t, j, "T1", "100", "#scalping")
	putTrade(t, j, "T2", "-40", "#scalping")
	putTrade(t, j, "T3", "10", "#swing")

	st, res, err := j.Stats(ctx, "#scalping")
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if !res.Valid || len(res.Trades) != 2 {
		t.Fatalf("unexpected result: %+v", res)
	}
	if st.Wins != 1 || st.Losses != 1 {
		t.Errorf("unexpected stats: %+v", st)
	}
	if !st.NetPnL.Equal(decimal.RequireFromString("60")) {
		t.Errorf("net pnl: got %s", st.NetPnL)
	}

	if _, res, err := j.Stats(ctx, "#scalping AND"); err != nil || res.Valid {
		t.Errorf("invalid query: expected invalid result, err=%v res=%+v", err, res)
	}
}

func TestOpenExisting_SQLite(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "test.db")
	ctx := context.Background()

	j, err := tradebook.Create(ctx, sqlite.New(dbPath), tradebook.DefaultOptions())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	tr := &tradebook.Trade{Symbol: "EURUSD", Side: tradebook.SideLong, Tags: []string{"#t"}}
	if err := j.Put(ctx, tr); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := j.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	j2, err := tradebook.Open(ctx, sqlite.New(dbPath), tradebook.DefaultOptions())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer j2.Close()
	if _, err := j2.Get(ctx, tr.ID); err != nil {
		t.Errorf("Get after reopen: %v", err)
	}

	if _, err := tradebook.Open(ctx, sqlite.New(filepath.Join(dir, "missing.db")), tradebook.DefaultOptions()); err == nil {
		t.Error("opening an uninitialized db must fail")
	}
}
