package tradebook

import (
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/tradebook/tradebook/tradebook/tagquery"
)

// Side is the direction of a trade.
type Side string

const (
	SideLong  Side = "long"
	SideShort Side = "short"
)

// Trade is one journal entry. Money fields use decimal arithmetic; Tags
// holds the canonical form after Put.
type Trade struct {
	ID       string          `json:"id"`
	Symbol   string          `json:"symbol"`
	Side     Side            `json:"side"`
	OpenedAt int64           `json:"openedAt"`           // epoch ms
	ClosedAt int64           `json:"closedAt,omitempty"` // epoch ms, 0 while open
	Entry    decimal.Decimal `json:"entry"`
	Exit     decimal.Decimal `json:"exit"`
	Size     decimal.Decimal `json:"size"`
	PnL      decimal.Decimal `json:"pnl"`
	Notes    string          `json:"notes,omitempty"`
	Tags     []string        `json:"tags,omitempty"`

	CreatedAtMS int64 `json:"createdAt,omitempty"`
	UpdatedAtMS int64 `json:"updatedAt,omitempty"`

	tagSet tagquery.TagSet
}

// TagSet returns the trade's canonical tag set, computed once and reused
// across queries.
func (t *Trade) TagSet() tagquery.TagSet {
	if t.tagSet == nil {
		t.tagSet = tagquery.NewTagSet(t.Tags)
	}
	return t.tagSet
}

// Closed reports whether the trade has been closed out.
func (t *Trade) Closed() bool { return t.ClosedAt != 0 }

// invalidateTagSet drops the memoized set after Tags change.
func (t *Trade) invalidateTagSet() { t.tagSet = nil }

// SearchResult is a journal search outcome: the engine's verdict plus the
// matched trades.
type SearchResult struct {
	Valid        bool     `json:"valid"`
	Trades       []*Trade `json:"trades"`
	MatchingTags []string `json:"matchingTags"`
	Errors       []string `json:"errors,omitempty"`
}

// TagCount is one row of the journal's tag overview.
type TagCount struct {
	Tag      string    `json:"tag"`
	Count    int       `json:"count"`
	LastUsed time.Time `json:"lastUsed"`
}

// Options configures a journal.
type Options struct {
	// CacheSize bounds the search memoization cache; 0 uses the default,
	// a negative value disables caching.
	CacheSize int
	Now       func() time.Time
	Logger    *zap.Logger
}

// DefaultOptions returns sensible defaults.
func DefaultOptions() Options {
	return Options{
		CacheSize: tagquery.DefaultCacheSize,
		Now:       time.Now,
		Logger:    zap.NewNop(),
	}
}
