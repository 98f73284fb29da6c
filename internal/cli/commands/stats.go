package commands

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/tradebook/tradebook/internal/cliopt"
	"github.com/tradebook/tradebook/internal/cliutil"
)

func RunStats(g cliopt.GlobalOptions, argv []string) int {
	fs := flag.NewFlagSet("stats", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	var journal, query string
	fs.StringVar(&journal, "journal", "", "journal")
	fs.StringVar(&journal, "j", "", "journal")
	fs.StringVar(&query, "query", "", "restrict to trades matching a tag query")
	fs.StringVar(&query, "q", "", "restrict to trades matching a tag query")
	if err := fs.Parse(argv); err != nil {
		return 2
	}
	if journal == "" {
		fmt.Fprintln(os.Stderr, "missing --journal")
		return 2
	}

	ctx := context.Background()
	j, err := openJournal(ctx, g, journal)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer j.Close()

	stats, res, err := j.Stats(ctx, query)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if !res.Valid {
		for _, e := range res.Errors {
			fmt.Fprintln(os.Stderr, e)
		}
		return 1
	}

	if cliutil.ParseOutputFormat(g.Format) == cliutil.FormatJSON {
		cliutil.PrintJSON(os.Stdout, stats)
		return 0
	}
	fmt.Fprintf(os.Stdout, "trades   %d (%d open, %d closed)\n", stats.Total, stats.Open, stats.Closed)
	fmt.Fprintf(os.Stdout, "outcome  %dW / %dL / %dS\n", stats.Wins, stats.Losses, stats.Scratches)
	fmt.Fprintf(os.Stdout, "net pnl  %s\n", stats.NetPnL)
	fmt.Fprintf(os.Stdout, "win rate %s%%\n", stats.WinRate.StringFixed(1))
	fmt.Fprintf(os.Stdout, "pf       %s\n", stats.ProfitFactor.StringFixed(2))
	fmt.Fprintf(os.Stdout, "expect   %s\n", stats.Expectancy.StringFixed(2))
	return 0
}
