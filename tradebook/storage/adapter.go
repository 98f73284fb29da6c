package storage

import (
	"context"
	"database/sql"
)

type Backend string

const (
	BackendSQLite   Backend = "sqlite"
	BackendPostgres Backend = "postgres"
)

// Adapter abstracts database-specific operations for a journal store.
type Adapter interface {
	Backend() Backend

	// Ref identifies the underlying database for logs and errors.
	Ref() string

	Connect(ctx context.Context) (*sql.DB, error)
	Close() error

	// Init creates the schema and stamps the meta table. Idempotent.
	Init(ctx context.Context, db *sql.DB) error

	// Check verifies the database was initialized by Init.
	Check(ctx context.Context, db *sql.DB) error

	SQL() SQL
}

// SQL holds backend-specific statement templates for journal operations.
type SQL struct {
	GetMeta string
	SetMeta string

	UpsertTrade     string
	GetTradeByID    string
	DeleteTradeByID string
	ListTrades      string
	CountTrades     string

	DeleteTagsByTrade string
	InsertTradeTag    string
	ListAllTradeTags  string

	// TagFrequency yields (tag, count, last_used_ms) per distinct tag,
	// where last_used_ms is the trade's close time, falling back to its
	// open time while the trade is still open.
	TagFrequency string
}

// Meta keys stamped by Init.
const (
	MetaMagicKey   = "tradebook_magic"
	MetaMagicValue = "tradebook"
	MetaVersionKey = "tradebook_version"
	MetaVersion    = "1"
)
