package cliopt

import "flag"

// GlobalOptions are parsed once at the CLI root and passed to subcommands.
//
// NOTE: This is a separate package to avoid import cycles between the root
// command router and per-command code.
type GlobalOptions struct {
	Backend string

	SQLitePath   string
	SQLiteDriver string

	PostgresDSN    string
	PostgresSchema string

	Format  string
	Verbose bool
}

func DefaultGlobalOptions() GlobalOptions {
	return GlobalOptions{
		Backend:        "sqlite",
		SQLitePath:     ".",
		SQLiteDriver:   "sqlite",
		PostgresSchema: "tradebook",
	}
}

func BindGlobalFlags(fs *flag.FlagSet, g *GlobalOptions) {
	fs.StringVar(&g.Backend, "backend", g.Backend, "backend: sqlite|postgres")

	fs.StringVar(&g.SQLitePath, "sqlite-path", g.SQLitePath, "sqlite directory or explicit .db file path")
	fs.StringVar(&g.SQLiteDriver, "sqlite-driver", g.SQLiteDriver, "sqlite driver: sqlite|sqlite3")

	fs.StringVar(&g.PostgresDSN, "pg-dsn", g.PostgresDSN, "postgres DSN")
	fs.StringVar(&g.PostgresSchema, "pg-schema", g.PostgresSchema, "postgres schema")

	fs.StringVar(&g.Format, "format", g.Format, "output format: pretty|ids|json")
	fs.BoolVar(&g.Verbose, "verbose", g.Verbose, "debug logging")
}
