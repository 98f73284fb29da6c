package commands

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/tradebook/tradebook/internal/cliopt"
)

func RunSuggest(g cliopt.GlobalOptions, argv []string) int {
	fs := flag.NewFlagSet("suggest", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	var journal, partial string
	var limit int
	fs.StringVar(&journal, "journal", "", "journal")
	fs.StringVar(&journal, "j", "", "journal")
	fs.StringVar(&partial, "partial", "", "partial query text")
	fs.StringVar(&partial, "p", "", "partial query text")
	fs.IntVar(&limit, "limit", 10, "max suggestions")
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

	out, err := j.Suggest(ctx, partial, limit)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	for _, s := range out {
		fmt.Fprintln(os.Stdout, s)
	}
	return 0
}
