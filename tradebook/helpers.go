package tradebook

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

func parseDecimal(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(s)
}

// substringFilter is the plain-search fallback for input that does not
// look like a tag query.
func substringFilter(trades []*Trade, input string) []*Trade {
	needle := strings.ToLower(strings.TrimSpace(input))
	if needle == "" {
		return trades
	}
	var out []*Trade
	for _, t := range trades {
		if strings.Contains(strings.ToLower(t.Symbol), needle) ||
			strings.Contains(strings.ToLower(t.Notes), needle) {
			out = append(out, t)
		}
	}
	return out
}

// sortTagCounts orders by count desc, recency desc, then tag.
func sortTagCounts(counts []TagCount) {
	sort.Slice(counts, func(i, j int) bool {
		if counts[i].Count != counts[j].Count {
			return counts[i].Count > counts[j].Count
		}
		if !counts[i].LastUsed.Equal(counts[j].LastUsed) {
			return counts[i].LastUsed.After(counts[j].LastUsed)
		}
		return counts[i].Tag < counts[j].Tag
	})
}
