package cliutil

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/tradebook/tradebook/internal/cliopt"
)

type OutputFormat string

const (
	FormatPretty OutputFormat = "pretty"
	FormatIDs    OutputFormat = "ids"
	FormatJSON   OutputFormat = "json"
)

func ParseOutputFormat(s string) OutputFormat {
	switch OutputFormat(s) {
	case FormatPretty, FormatIDs, FormatJSON:
		return OutputFormat(s)
	default:
		return FormatPretty
	}
}

func PrintJSON(w io.Writer, v any) {
	b, _ := json.MarshalIndent(v, "", "  ")
	fmt.Fprintln(w, string(b))
}

// ResolveJournalRef transforms the user-provided -j/--journal value into a
// backend-specific reference.
//
//   - sqlite: if the name contains a path separator or ends with .db, treat
//     as an explicit path. else: <SQLitePath>/<name>.db
//   - postgres: return the name as-is (the DSN carries the connection).
func ResolveJournalRef(g cliopt.GlobalOptions, journal string) string {
	switch strings.ToLower(g.Backend) {
	case "sqlite":
		if strings.Contains(journal, string(filepath.Separator)) || strings.HasSuffix(journal, ".db") {
			return journal
		}
		return filepath.Join(g.SQLitePath, journal+".db")
	default:
		return journal
	}
}
