package tagquery

import "strings"

// Record is the engine's view of a searchable record: an opaque value
// exposing a precomputed canonical tag set. Tag sets should be built once
// per record, not re-derived per query.
type Record interface {
	TagSet() TagSet
}

// SearchResult is the outcome of executing a query over a record
// collection. A structurally invalid query yields Valid=false, an empty
// record list and display-ready Errors, never a partial match.
type SearchResult struct {
	Valid        bool     `json:"valid"`
	Records      []Record `json:"records"`
	MatchingTags []string `json:"matchingTags"`
	Errors       []string `json:"errors,omitempty"`
}

// Execute runs tokenize, validate, parse and per-record evaluation over the
// collection. MatchingTags lists every tag literal the query referenced, in
// first-occurrence order.
func Execute(records []Record, query string) SearchResult {
	tokens := Tokenize(query)

	vr := Validate(tokens)
	if !vr.Valid {
		return SearchResult{Errors: vr.Errors}
	}

	node, err := parseTokens(tokens)
	if err != nil {
		// Validate should have caught this; surface it as data regardless.
		return SearchResult{Errors: []string{err.Error()}}
	}

	var matched []Record
	for _, r := range records {
		if Evaluate(node, r.TagSet()) {
			matched = append(matched, r)
		}
	}

	return SearchResult{
		Valid:        true,
		Records:      matched,
		MatchingTags: CollectTags(node),
	}
}

// IsTagSearch reports whether free-form search-box input looks like a tag
// query: it contains the marker character or a standalone AND/OR/NOT word.
// Callers use it to route input through this engine versus a plain
// substring search.
func IsTagSearch(input string) bool {
	if strings.ContainsRune(input, Marker) {
		return true
	}
	for _, field := range strings.Fields(input) {
		switch strings.ToUpper(field) {
		case "AND", "OR", "NOT":
			return true
		}
	}
	return false
}
