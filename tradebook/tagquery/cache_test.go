package tagquery

import "testing"

func TestCachePutGet(t *testing.T) {
	c, err := NewCache(8)
	if err != nil {
		t.Fatalf("NewCache: %v", err)
	}

	res := Execute(fixtureRecords(), "#scalping")
	c.Put("#scalping", 1, res)

	got, ok := c.Get("#scalping", 1)
	if !ok {
		t.Fatal("expected cache hit")
	}
	if len(got.Records) != len(res.Records) {
		t.Errorf("cached result differs: %d vs %d records", len(got.Records), len(res.Records))
	}
}

func TestCacheVersionMiss(t *testing.T) {
	c, _ := NewCache(8)
	c.Put("#scalping", 1, SearchResult{Valid: true})

	// A collection mutation bumps the version; the old entry must not serve.
	if _, ok := c.Get("#scalping", 2); ok {
		t.Error("stale version must miss")
	}
	if _, ok := c.Get("#swing", 1); ok {
		t.Error("unknown query must miss")
	}
}

func TestCachePurge(t *testing.T) {
	c, _ := NewCache(8)
	c.Put("#a", 1, SearchResult{Valid: true})
	c.Put("#b", 1, SearchResult{Valid: true})
	if c.Len() != 2 {
		t.Fatalf("expected 2 entries, got %d", c.Len())
	}
	c.Purge()
	if c.Len() != 0 {
		t.Errorf("expected empty cache after purge, got %d", c.Len())
	}
}

func TestCacheNilSafe(t *testing.T) {
	var c *Cache
	c.Put("#a", 1, SearchResult{})
	if _, ok := c.Get("#a", 1); ok {
		t.Error("nil cache must never hit")
	}
	c.Purge()
	if c.Len() != 0 {
		t.Error("nil cache has no entries")
	}
}
