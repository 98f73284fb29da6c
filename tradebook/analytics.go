package tradebook

import (
	"sort"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// TradeStats summarizes performance over a set of trades. Win/loss figures
// count closed trades only; open trades contribute to Total and Open.
// GrossLoss and AvgLoss are positive magnitudes.
type TradeStats struct {
	Total     int `json:"total"`
	Open      int `json:"open"`
	Closed    int `json:"closed"`
	Wins      int `json:"wins"`
	Losses    int `json:"losses"`
	Scratches int `json:"scratches"`

	NetPnL       decimal.Decimal `json:"netPnl"`
	GrossProfit  decimal.Decimal `json:"grossProfit"`
	GrossLoss    decimal.Decimal `json:"grossLoss"`
	WinRate      decimal.Decimal `json:"winRate"` // percent of closed trades
	ProfitFactor decimal.Decimal `json:"profitFactor"`
	AvgWin       decimal.Decimal `json:"avgWin"`
	AvgLoss      decimal.Decimal `json:"avgLoss"`
	Expectancy   decimal.Decimal `json:"expectancy"` // expected PnL per closed trade
}

// ComputeStats aggregates performance statistics over the trades.
func ComputeStats(trades []*Trade) TradeStats {
	var st TradeStats
	st.Total = len(trades)

	for _, t := range trades {
		if !t.Closed() {
			st.Open++
			continue
		}
		st.Closed++
		st.NetPnL = st.NetPnL.Add(t.PnL)
		switch t.PnL.Sign() {
		case 1:
			st.Wins++
			st.GrossProfit = st.GrossProfit.Add(t.PnL)
		case -1:
			st.Losses++
			st.GrossLoss = st.GrossLoss.Add(t.PnL.Neg())
		default:
			st.Scratches++
		}
	}

	if st.Closed > 0 {
		closed := decimal.NewFromInt(int64(st.Closed))
		st.WinRate = decimal.NewFromInt(int64(st.Wins)).Mul(hundred).Div(closed)
		// Expectancy is simply mean PnL over closed trades.
		st.Expectancy = st.NetPnL.Div(closed)
	}
	if st.Wins > 0 {
		st.AvgWin = st.GrossProfit.Div(decimal.NewFromInt(int64(st.Wins)))
	}
	if st.Losses > 0 {
		st.AvgLoss = st.GrossLoss.Div(decimal.NewFromInt(int64(st.Losses)))
	}
	if st.GrossLoss.IsPositive() {
		st.ProfitFactor = st.GrossProfit.Div(st.GrossLoss)
	}
	return st
}

// TagBreakdown pairs one tag with the statistics of its trades.
type TagBreakdown struct {
	Tag   string     `json:"tag"`
	Stats TradeStats `json:"stats"`
}

// ComputeStatsByTag groups trades by canonical tag and aggregates each
// group, most traded tags first.
func ComputeStatsByTag(trades []*Trade) []TagBreakdown {
	byTag := make(map[string][]*Trade)
	for _, t := range trades {
		for tag := range t.TagSet() {
			byTag[tag] = append(byTag[tag], t)
		}
	}

	out := make([]TagBreakdown, 0, len(byTag))
	for tag, group := range byTag {
		out = append(out, TagBreakdown{Tag: tag, Stats: ComputeStats(group)})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Stats.Total != out[j].Stats.Total {
			return out[i].Stats.Total > out[j].Stats.Total
		}
		return out[i].Tag < out[j].Tag
	})
	return out
}
