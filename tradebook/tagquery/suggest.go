package tagquery

import (
	"sort"
	"strings"
	"time"
)

// TagStat is one tag's usage entry in a FrequencyIndex.
type TagStat struct {
	Count    int
	LastUsed time.Time
}

// FrequencyIndex maps canonical tags to usage statistics. It is built once
// per record-collection snapshot; the caller rebuilds it on mutation.
type FrequencyIndex map[string]TagStat

// Observe folds one record's tag set into the index. A zero `at` leaves
// recency untouched.
func (ix FrequencyIndex) Observe(tags TagSet, at time.Time) {
	for tag := range tags {
		st := ix[tag]
		st.Count++
		if at.After(st.LastUsed) {
			st.LastUsed = at
		}
		ix[tag] = st
	}
}

// GetSuggestions builds a frequency index from the record collection and
// ranks completions for the partial input. Recency is unknown at this
// level, so ties fall through to alphabetical order; callers holding real
// usage timestamps should build their own index and call Suggest.
func GetSuggestions(records []Record, partial string, limit int) []string {
	ix := make(FrequencyIndex)
	for _, r := range records {
		ix.Observe(r.TagSet(), time.Time{})
	}
	return Suggest(partial, ix, limit)
}

// Suggest returns up to limit ranked completion candidates for a partial
// query. Empty input yields the highest-frequency tags; input ending in an
// operator keyword re-emits the whole input with each remaining candidate
// appended; otherwise the last whitespace-delimited token is treated as a
// prefix, with prefix matches ranked above substring matches. It never
// panics on an empty index or junk input.
func Suggest(partial string, ix FrequencyIndex, limit int) []string {
	if limit <= 0 || len(ix) == 0 {
		return nil
	}

	trimmed := strings.TrimSpace(partial)
	if trimmed == "" {
		return rankAll(ix, limit, nil)
	}

	fields := strings.Fields(trimmed)
	last := fields[len(fields)-1]

	switch strings.ToUpper(last) {
	case "AND", "OR", "NOT":
		// Continue the expression: suggest a tag after the operator,
		// skipping tags the query already references.
		used := make(map[string]struct{})
		for _, tok := range Tokenize(partial) {
			if tok.Kind == TokTag && tok.Value != "" {
				used[tok.Value] = struct{}{}
			}
		}
		base := strings.TrimRight(partial, " \t")
		tags := rankAll(ix, limit, used)
		out := make([]string, len(tags))
		for i, tag := range tags {
			out[i] = base + " " + tag
		}
		return out
	}

	prefix := Normalize(last)
	if prefix == "" {
		// Input of punctuation only; fall back to the top tags.
		return rankAll(ix, limit, nil)
	}
	body := prefix[1:]

	var prefixed, contained []string
	for tag := range ix {
		switch {
		case strings.HasPrefix(tag, prefix):
			prefixed = append(prefixed, tag)
		case strings.Contains(tag[1:], body):
			contained = append(contained, tag)
		}
	}
	rankTags(prefixed, ix)
	rankTags(contained, ix)

	out := append(prefixed, contained...)
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

// rankAll returns up to limit tags not in exclude, best-ranked first.
func rankAll(ix FrequencyIndex, limit int, exclude map[string]struct{}) []string {
	tags := make([]string, 0, len(ix))
	for tag := range ix {
		if _, skip := exclude[tag]; skip {
			continue
		}
		tags = append(tags, tag)
	}
	rankTags(tags, ix)
	if len(tags) > limit {
		tags = tags[:limit]
	}
	return tags
}

// rankTags sorts by descending frequency, then most recent use, then
// canonical alphabetical order for full determinism.
func rankTags(tags []string, ix FrequencyIndex) {
	sort.Slice(tags, func(i, j int) bool {
		a, b := ix[tags[i]], ix[tags[j]]
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		if !a.LastUsed.Equal(b.LastUsed) {
			return a.LastUsed.After(b.LastUsed)
		}
		return tags[i] < tags[j]
	})
}
