package commands

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/tradebook/tradebook/internal/cliopt"
	"github.com/tradebook/tradebook/tradebook"
)

// RunImport reads JSON-lines trades from a file or stdin and applies them in
// one transaction.
func RunImport(g cliopt.GlobalOptions, argv []string) int {
	fs := flag.NewFlagSet("import", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	var journal, file string
	var jsonStdin bool
	fs.StringVar(&journal, "journal", "", "journal")
	fs.StringVar(&journal, "j", "", "journal")
	fs.StringVar(&file, "file", "", "import JSONL file")
	fs.BoolVar(&jsonStdin, "json", false, "read JSON lines from stdin")
	if err := fs.Parse(argv); err != nil {
		return 2
	}
	if journal == "" {
		fmt.Fprintln(os.Stderr, "missing --journal")
		return 2
	}

	var r *os.File
	if file != "" {
		f, err := os.Open(file)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		r = f
		defer f.Close()
	} else if jsonStdin {
		r = os.Stdin
	} else {
		fmt.Fprintln(os.Stderr, "provide --file or --json")
		return 2
	}

	batch := tradebook.NewBatch()
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		var t tradebook.Trade
		if err := json.Unmarshal(line, &t); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		if err := batch.Put(&t); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
	}
	if err := scanner.Err(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	ctx := context.Background()
	j, err := openJournal(ctx, g, journal)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer j.Close()

	count, err := j.Batch(ctx, batch)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	fmt.Fprintf(os.Stdout, "imported %d\n", count)
	return 0
}
