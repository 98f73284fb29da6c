package commands

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/tradebook/tradebook/internal/cliopt"
	"github.com/tradebook/tradebook/internal/cliutil"
)

func RunGet(g cliopt.GlobalOptions, argv []string) int {
	fs := flag.NewFlagSet("get", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	var journal, id string
	fs.StringVar(&journal, "journal", "", "journal")
	fs.StringVar(&journal, "j", "", "journal")
	fs.StringVar(&id, "id", "", "trade id")
	if err := fs.Parse(argv); err != nil {
		return 2
	}
	if journal == "" || id == "" {
		fmt.Fprintln(os.Stderr, "missing --journal or --id")
		return 2
	}

	ctx := context.Background()
	j, err := openJournal(ctx, g, journal)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer j.Close()

	t, err := j.Get(ctx, id)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	cliutil.PrintJSON(os.Stdout, t)
	return 0
}
