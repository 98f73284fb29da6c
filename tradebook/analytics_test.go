package tradebook

import (
	"testing"

	"github.com/shopspring/decimal"
)

func closedTrade(pnl string, tags ...string) *Trade {
	return &Trade{
		Symbol:   "EURUSD",
		Side:     SideLong,
		OpenedAt: 1,
		ClosedAt: 2,
		PnL:      decimal.RequireFromString(pnl),
		Tags:     tags,
	}
}

func TestComputeStats(t *testing.T) {
	trades := []*Trade{
		closedTrade("100"),
		closedTrade("50"),
		closedTrade("-75"),
		closedTrade("0"),
		{Symbol: "EURUSD", Side: SideShort, OpenedAt: 3}, // still open
	}

	st := ComputeStats(trades)
	if st.Total != 5 || st.Open != 1 || st.Closed != 4 {
		t.Fatalf("counts wrong: %+v", st)
	}
	if st.Wins != 2 || st.Losses != 1 || st.Scratches != 1 {
		t.Fatalf("outcome counts wrong: %+v", st)
	}
	if !st.NetPnL.Equal(decimal.RequireFromString("75")) {
		t.Errorf("net pnl: got %s", st.NetPnL)
	}
	if !st.GrossProfit.Equal(decimal.RequireFromString("150")) {
		t.Errorf("gross profit: got %s", st.GrossProfit)
	}
	if !st.GrossLoss.Equal(decimal.RequireFromString("75")) {
		t.Errorf("gross loss must be a positive magnitude: got %s", st.GrossLoss)
	}
	if !st.WinRate.Equal(decimal.RequireFromString("50")) {
		t.Errorf("win rate: got %s", st.WinRate)
	}
	if !st.ProfitFactor.Equal(decimal.RequireFromString("2")) {
		t.Errorf("profit factor: got %s", st.ProfitFactor)
	}
	if !st.AvgWin.Equal(decimal.RequireFromString("75")) {
		t.Errorf("avg win: got %s", st.AvgWin)
	}
	if !st.AvgLoss.Equal(decimal.RequireFromString("75")) {
		t.Errorf("avg loss: got %s", st.AvgLoss)
	}
	if !st.Expectancy.Equal(decimal.RequireFromString("18.75")) {
		t.Errorf("expectancy: got %s", st.Expectancy)
	}
}

func TestComputeStatsEmpty(t *testing.T) {
	st := ComputeStats(nil)
	if st.Total != 0 || !st.WinRate.IsZero() || !st.ProfitFactor.IsZero() {
		t.Errorf("expected zero stats, got %+v", st)
	}
}

func TestComputeStatsNoLosses(t *testing.T) {
	st := ComputeStats([]*Trade{closedTrade("10"), closedTrade("20")})
	// Profit factor is undefined without losses; it stays zero rather than
	// dividing by zero.
	if !st.ProfitFactor.IsZero() {
		t.Errorf("expected zero profit factor, got %s", st.ProfitFactor)
	}
	if !st.WinRate.Equal(decimal.RequireFromString("100")) {
		t.Errorf("win rate: got %s", st.WinRate)
	}
}

func TestComputeStatsByTag(t *testing.T) {
	trades := []*Trade{
		closedTrade("100", "#scalping", "#morning"),
		closedTrade("-50", "#scalping"),
		closedTrade("25", "#swing"),
	}
	out := ComputeStatsByTag(trades)
	if len(out) != 3 {
		t.Fatalf("expected 3 tags, got %d", len(out))
	}
	if out[0].Tag != "#scalping" || out[0].Stats.Total != 2 {
		t.Errorf("expected #scalping first with 2 trades, got %+v", out[0])
	}
	if !out[0].Stats.NetPnL.Equal(decimal.RequireFromString("50")) {
		t.Errorf("#scalping net pnl: got %s", out[0].Stats.NetPnL)
	}
	// Remaining tags tie on one trade each; alphabetical order.
	if out[1].Tag != "#morning" || out[2].Tag != "#swing" {
		t.Errorf("unexpected order: %+v", out)
	}
}
