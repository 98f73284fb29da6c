package cli

import (
	"fmt"
	"io"
)

func PrintRootHelp(w io.Writer) {
	fmt.Fprintln(w, `tradebook — personal trading journal with boolean tag search

USAGE
  tradebook [global flags] <command> [args]

GLOBAL FLAGS
  --backend sqlite|postgres
  --sqlite-path <dir|file.db>
  --sqlite-driver sqlite|sqlite3
  --pg-dsn <dsn>
  --pg-schema <name>
  --format pretty|ids|json
  --verbose

COMMANDS
  init      create a journal
  add       record a trade
  import    bulk-load trades from JSON lines
  get       print one trade
  delete    remove a trade
  list      print all trades
  search    tag query (#a AND NOT #b) or free text
  suggest   rank tag completions for a partial query
  tags      tag overview with usage counts
  stats     performance statistics, optionally per tag query
  serve     HTTP API for the search box UI

Run "tradebook <command> --help" for flags.

QUERY SYNTAX
  #tag            trades carrying the tag
  a AND b         both (binds tighter than OR)
  a OR b          either
  NOT #tag        trades without the tag
  ( ... )         grouping

  e.g.  tradebook search -j journal -q "#scalping AND (#morning OR #afternoon)"`)
}
