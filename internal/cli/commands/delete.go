package commands

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/tradebook/tradebook/internal/cliopt"
)

func RunDelete(g cliopt.GlobalOptions, argv []string) int {
	fs := flag.NewFlagSet("delete", flag.ContinueOnError)
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

	ok, err := j.Delete(ctx, id)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if !ok {
		fmt.Fprintln(os.Stderr, "not found")
		return 1
	}
	fmt.Fprintln(os.Stdout, "deleted")
	return 0
}
