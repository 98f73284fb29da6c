package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/tradebook/tradebook/tradebook/storage"
)

// Adapter stores the journal in a SQLite file. The default driver is the
// pure-Go modernc.org/sqlite ("sqlite"); NewWithDriver("...", "sqlite3")
// selects the cgo mattn driver when it is linked in.
type Adapter struct {
	Path       string
	DriverName string
}

func New(path string) *Adapter {
	return &Adapter{Path: path, DriverName: "sqlite"}
}

func NewWithDriver(path, driver string) *Adapter {
	return &Adapter{Path: path, DriverName: driver}
}

func (a *Adapter) Backend() storage.Backend { return storage.BackendSQLite }

func (a *Adapter) Ref() string { return a.Path }

func (a *Adapter) Close() error { return nil }

func (a *Adapter) SQL() storage.SQL { return SQLTemplates }

func (a *Adapter) Connect(ctx context.Context) (*sql.DB, error) {
	dsn := a.Path
	if !strings.Contains(dsn, "?") {
		dsn = dsn + "?_busy_timeout=5000&_foreign_keys=on"
	} else {
		dsn = dsn + "&_busy_timeout=5000&_foreign_keys=on"
	}
	db, err := sql.Open(a.DriverName, dsn)
	if err != nil {
		return nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func (a *Adapter) Init(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, ddlBase); err != nil {
		return err
	}
	_, _ = db.ExecContext(ctx, "PRAGMA journal_mode=WAL;")
	_, _ = db.ExecContext(ctx, "PRAGMA synchronous=NORMAL;")
	_, _ = db.ExecContext(ctx, "PRAGMA foreign_keys=ON;")

	sqlt := a.SQL()
	if _, err := db.ExecContext(ctx, sqlt.SetMeta, storage.MetaMagicKey, storage.MetaMagicValue); err != nil {
		return err
	}
	if _, err := db.ExecContext(ctx, sqlt.SetMeta, storage.MetaVersionKey, storage.MetaVersion); err != nil {
		return err
	}
	return nil
}

func (a *Adapter) Check(ctx context.Context, db *sql.DB) error {
	var magic string
	if err := db.QueryRowContext(ctx, a.SQL().GetMeta, storage.MetaMagicKey).Scan(&magic); err != nil {
		return fmt.Errorf("read meta: %w", err)
	}
	if magic != storage.MetaMagicValue {
		return fmt.Errorf("not a tradebook db: %s", a.Path)
	}
	return nil
}
