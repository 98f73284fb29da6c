package commands

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/tradebook/tradebook/internal/cliutil"
	"github.com/tradebook/tradebook/tradebook"
)

func printTrades(format cliutil.OutputFormat, trades []*tradebook.Trade) {
	switch format {
	case cliutil.FormatJSON:
		cliutil.PrintJSON(os.Stdout, trades)
	case cliutil.FormatIDs:
		for _, t := range trades {
			fmt.Fprintln(os.Stdout, t.ID)
		}
	default:
		for _, t := range trades {
			fmt.Fprintln(os.Stdout, formatTrade(t))
		}
	}
}

func formatTrade(t *tradebook.Trade) string {
	opened := time.UnixMilli(t.OpenedAt).UTC().Format("2006-01-02 15:04")
	state := "open"
	if t.Closed() {
		state = "pnl=" + t.PnL.String()
	}
	line := fmt.Sprintf("%s  %s  %-5s %-6s %s", t.ID, opened, t.Side, t.Symbol, state)
	if len(t.Tags) > 0 {
		line += "  " + strings.Join(t.Tags, " ")
	}
	return line
}
