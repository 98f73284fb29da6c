package cli

import (
	"flag"
	"fmt"
	"os"

	"github.com/tradebook/tradebook/internal/cli/commands"
	"github.com/tradebook/tradebook/internal/cliopt"
)

// Execute runs the CLI and returns an exit code.
func Execute(argv []string) int {
	globalFS := flag.NewFlagSet("tradebook", flag.ContinueOnError)
	globalFS.SetOutput(os.Stderr)
	g := cliopt.DefaultGlobalOptions()
	cliopt.BindGlobalFlags(globalFS, &g)

	if err := globalFS.Parse(argv); err != nil {
		// flag package already printed the error
		return 2
	}

	args := globalFS.Args()
	if len(args) == 0 {
		PrintRootHelp(os.Stdout)
		return 0
	}

	verb := args[0]
	rest := args[1:]

	switch verb {
	case "--help", "-h", "help":
		PrintRootHelp(os.Stdout)
		return 0
	case "init":
		return commands.RunInit(g, rest)
	case "add":
		return commands.RunAdd(g, rest)
	case "import":
		return commands.RunImport(g, rest)
	case "get":
		return commands.RunGet(g, rest)
	case "delete":
		return commands.RunDelete(g, rest)
	case "list":
		return commands.RunList(g, rest)
	case "search":
		return commands.RunSearch(g, rest)
	case "suggest":
		return commands.RunSuggest(g, rest)
	case "tags":
		return commands.RunTags(g, rest)
	case "stats":
		return commands.RunStats(g, rest)
	case "serve":
		return commands.RunServe(g, rest)
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n\n", verb)
		PrintRootHelp(os.Stderr)
		return 2
	}
}
