package commands

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/tradebook/tradebook/internal/cliopt"
	"github.com/tradebook/tradebook/internal/cliutil"
)

func RunSearch(g cliopt.GlobalOptions, argv []string) int {
	fs := flag.NewFlagSet("search", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	var journal, query string
	fs.StringVar(&journal, "journal", "", "journal")
	fs.StringVar(&journal, "j", "", "journal")
	fs.StringVar(&query, "query", "", "tag query or free text")
	fs.StringVar(&query, "q", "", "tag query or free text")
	if err := fs.Parse(argv); err != nil {
		return 2
	}
	if journal == "" || query == "" {
		fmt.Fprintln(os.Stderr, "missing --journal or --query")
		return 2
	}

	ctx := context.Background()
	j, err := openJournal(ctx, g, journal)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer j.Close()

	start := time.Now()
	res, err := j.Find(ctx, query)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	elapsed := time.Since(start)

	format := cliutil.ParseOutputFormat(g.Format)
	if format == cliutil.FormatJSON {
		cliutil.PrintJSON(os.Stdout, res)
		if !res.Valid {
			return 1
		}
		return 0
	}
	if !res.Valid {
		for _, e := range res.Errors {
			fmt.Fprintln(os.Stderr, e)
		}
		return 1
	}
	if format == cliutil.FormatIDs {
		for _, t := range res.Trades {
			fmt.Fprintln(os.Stdout, t.ID)
		}
		return 0
	}

	fmt.Fprintf(os.Stdout, "Found %d trades in %dms\n", len(res.Trades), elapsed.Milliseconds())
	if len(res.MatchingTags) > 0 {
		fmt.Fprintf(os.Stdout, "tags: %s\n", strings.Join(res.MatchingTags, " "))
	}
	for _, t := range res.Trades {
		fmt.Fprintln(os.Stdout, formatTrade(t))
	}
	return 0
}
