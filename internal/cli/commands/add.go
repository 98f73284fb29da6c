package commands

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tradebook/tradebook/internal/cliopt"
	"github.com/tradebook/tradebook/tradebook"
)

func RunAdd(g cliopt.GlobalOptions, argv []string) int {
	fs := flag.NewFlagSet("add", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	var journal, id, symbol, side, opened, closed, entry, exit, size, pnl, notes string
	var tags multiString
	fs.StringVar(&journal, "journal", "", "journal")
	fs.StringVar(&journal, "j", "", "journal")
	fs.StringVar(&id, "id", "", "trade id (assigned when empty)")
	fs.StringVar(&symbol, "symbol", "", "instrument symbol")
	fs.StringVar(&side, "side", "long", "long|short")
	fs.StringVar(&opened, "opened", "", "open time (RFC3339 or epoch ms, default now)")
	fs.StringVar(&closed, "closed", "", "close time (RFC3339 or epoch ms)")
	fs.StringVar(&entry, "entry", "", "entry price")
	fs.StringVar(&exit, "exit", "", "exit price")
	fs.StringVar(&size, "size", "", "position size")
	fs.StringVar(&pnl, "pnl", "", "realized pnl")
	fs.StringVar(&notes, "notes", "", "free-form notes")
	fs.Var(&tags, "tag", "tag (repeatable)")
	if err := fs.Parse(argv); err != nil {
		return 2
	}
	if journal == "" || symbol == "" {
		fmt.Fprintln(os.Stderr, "missing --journal or --symbol")
		return 2
	}

	t := &tradebook.Trade{
		ID:     id,
		Symbol: symbol,
		Side:   tradebook.Side(side),
		Notes:  notes,
		Tags:   tags,
	}
	var err error
	if t.OpenedAt, err = parseTimeMS(opened); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}
	if t.ClosedAt, err = parseTimeMS(closed); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}
	if t.OpenedAt == 0 {
		t.OpenedAt = time.Now().UnixMilli()
	}
	for _, f := range []struct {
		raw string
		dst *decimal.Decimal
	}{{entry, &t.Entry}, {exit, &t.Exit}, {size, &t.Size}, {pnl, &t.PnL}} {
		if f.raw == "" {
			continue
		}
		if *f.dst, err = decimal.NewFromString(f.raw); err != nil {
			fmt.Fprintf(os.Stderr, "bad decimal %q: %v\n", f.raw, err)
			return 2
		}
	}

	ctx := context.Background()
	j, err := openJournal(ctx, g, journal)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer j.Close()

	if err := j.Put(ctx, t); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	fmt.Fprintln(os.Stdout, t.ID)
	return 0
}

// parseTimeMS accepts RFC3339 or epoch milliseconds; "" means zero.
func parseTimeMS(s string) (int64, error) {
	if s == "" {
		return 0, nil
	}
	if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
		return ms, nil
	}
	ts, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return 0, fmt.Errorf("bad time %q: want RFC3339 or epoch ms", s)
	}
	return ts.UnixMilli(), nil
}
