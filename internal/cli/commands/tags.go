package commands

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/tradebook/tradebook/internal/cliopt"
	"github.com/tradebook/tradebook/internal/cliutil"
)

func RunTags(g cliopt.GlobalOptions, argv []string) int {
	fs := flag.NewFlagSet("tags", flag.ContinueOnError)
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

	tags, err := j.Tags(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	if cliutil.ParseOutputFormat(g.Format) == cliutil.FormatJSON {
		cliutil.PrintJSON(os.Stdout, tags)
		return 0
	}
	for _, tc := range tags {
		fmt.Fprintf(os.Stdout, "%-24s %4d  last %s\n",
			tc.Tag, tc.Count, tc.LastUsed.UTC().Format(time.DateOnly))
	}
	return 0
}
