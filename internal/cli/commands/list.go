package commands

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/tradebook/tradebook/internal/cliopt"
	"github.com/tradebook/tradebook/internal/cliutil"
)

func RunList(g cliopt.GlobalOptions, argv []string) int {
	fs := flag.NewFlagSet("list", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	var journal string
	fs.StringVar(&journal, "journal", "", "journal")
	fs.StringVar(&journal, "j", "", "journal")
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

	trades, err := j.List(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	printTrades(cliutil.ParseOutputFormat(g.Format), trades)
	return 0
}
