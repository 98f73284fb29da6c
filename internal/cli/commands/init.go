package commands

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/tradebook/tradebook/internal/cliopt"
	"github.com/tradebook/tradebook/tradebook"
)

func RunInit(g cliopt.GlobalOptions, argv []string) int {
	fs := flag.NewFlagSet("init", flag.ContinueOnError)
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
	adapter, err := newAdapter(g, journal)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}
	j, err := tradebook.Create(ctx, adapter, journalOptions(g))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer j.Close()
	fmt.Fprintf(os.Stdout, "initialized %s\n", adapter.Ref())
	return 0
}
