package commands

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/tradebook/tradebook/internal/cliopt"
	"github.com/tradebook/tradebook/internal/cliutil"
	"github.com/tradebook/tradebook/tradebook"
	"github.com/tradebook/tradebook/tradebook/storage"
	"github.com/tradebook/tradebook/tradebook/storage/postgres"
	"github.com/tradebook/tradebook/tradebook/storage/sqlite"
)

func newAdapter(g cliopt.GlobalOptions, journal string) (storage.Adapter, error) {
	switch strings.ToLower(g.Backend) {
	case "", "sqlite":
		return sqlite.NewWithDriver(cliutil.ResolveJournalRef(g, journal), g.SQLiteDriver), nil
	case "postgres":
		if g.PostgresDSN == "" {
			return nil, fmt.Errorf("postgres backend requires --pg-dsn")
		}
		return postgres.New(g.PostgresDSN, g.PostgresSchema), nil
	default:
		return nil, fmt.Errorf("unknown backend: %s", g.Backend)
	}
}

func journalOptions(g cliopt.GlobalOptions) tradebook.Options {
	opts := tradebook.DefaultOptions()
	if g.Verbose {
		if log, err := zap.NewDevelopment(); err == nil {
			opts.Logger = log
		}
	}
	return opts
}

func openJournal(ctx context.Context, g cliopt.GlobalOptions, journal string) (*tradebook.Journal, error) {
	adapter, err := newAdapter(g, journal)
	if err != nil {
		return nil, err
	}
	return tradebook.Open(ctx, adapter, journalOptions(g))
}

// ---- helpers (local to commands package) ----

type multiString []string

func (m *multiString) String() string { return "" }
func (m *multiString) Set(v string) error {
	*m = append(*m, v)
	return nil
}
