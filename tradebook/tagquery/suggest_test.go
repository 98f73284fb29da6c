package tagquery

import (
	"testing"
	"time"
)

func day(n int) time.Time {
	return time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, n)
}

func testIndex() FrequencyIndex {
	return FrequencyIndex{
		"#scalping": {Count: 9, LastUsed: day(1)},
		"#swing":    {Count: 5, LastUsed: day(4)},
		"#morning":  {Count: 5, LastUsed: day(2)},
		"#trend":    {Count: 3, LastUsed: day(3)},
		"#uptrend":  {Count: 3, LastUsed: day(3)},
		"#breakout": {Count: 1, LastUsed: day(0)},
	}
}

func assertSuggest(t *testing.T, partial string, limit int, want []string) {
	t.Helper()
	got := Suggest(partial, testIndex(), limit)
	if len(got) != len(want) {
		t.Fatalf("Suggest(%q): expected %v, got %v", partial, want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Suggest(%q): expected %v, got %v", partial, want, got)
		}
	}
}

func TestSuggestEmptyInput(t *testing.T) {
	// Frequency first, then recency, then alphabetical.
	assertSuggest(t, "", 4, []string{"#scalping", "#swing", "#morning", "#trend"})
}

func TestSuggestTieBreaks(t *testing.T) {
	// #swing and #morning tie on count; more recent #swing wins. #trend and
	// #uptrend tie on both; alphabetical order decides.
	assertSuggest(t, "", 6, []string{"#scalping", "#swing", "#morning", "#trend", "#uptrend", "#breakout"})
}

func TestSuggestOperatorContinuation(t *testing.T) {
	got := Suggest("#scalping AND", testIndex(), 3)
	want := []string{"#scalping AND #swing", "#scalping AND #morning", "#scalping AND #trend"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}

func TestSuggestOperatorTrailingWhitespace(t *testing.T) {
	got := Suggest("#scalping AND  ", testIndex(), 1)
	if len(got) != 1 || got[0] != "#scalping AND #swing" {
		t.Errorf("expected continuation after trailing whitespace, got %v", got)
	}
}

func TestSuggestNotContinuation(t *testing.T) {
	got := Suggest("NOT", testIndex(), 1)
	if len(got) != 1 || got[0] != "NOT #scalping" {
		t.Errorf("expected NOT continuation, got %v", got)
	}
}

func TestSuggestPrefixBeatsSubstring(t *testing.T) {
	// "#trend" is a prefix match for "tr"; "#uptrend" only contains it.
	assertSuggest(t, "tr", 5, []string{"#trend", "#uptrend"})
	assertSuggest(t, "#tr", 5, []string{"#trend", "#uptrend"})
	assertSuggest(t, "TR", 5, []string{"#trend", "#uptrend"})
}

func TestSuggestLastTokenIsPrefix(t *testing.T) {
	assertSuggest(t, "#morning AND sw", 5, []string{"#swing"})
}

func TestSuggestLimit(t *testing.T) {
	if got := Suggest("", testIndex(), 2); len(got) != 2 {
		t.Errorf("expected 2 suggestions, got %v", got)
	}
	if got := Suggest("", testIndex(), 0); got != nil {
		t.Errorf("expected nil for zero limit, got %v", got)
	}
}

func TestSuggestEmptyIndex(t *testing.T) {
	if got := Suggest("#sc", FrequencyIndex{}, 5); len(got) != 0 {
		t.Errorf("expected no suggestions, got %v", got)
	}
	if got := Suggest("", nil, 5); len(got) != 0 {
		t.Errorf("expected no suggestions, got %v", got)
	}
}

func TestSuggestJunkInput(t *testing.T) {
	// Punctuation-only input falls back to the top tags instead of failing.
	got := Suggest("$$$", testIndex(), 2)
	if len(got) != 2 || got[0] != "#scalping" {
		t.Errorf("expected best-effort fallback, got %v", got)
	}
}

func TestGetSuggestionsFromRecords(t *testing.T) {
	got := GetSuggestions(fixtureRecords(), "", 2)
	// #scalping, #swing, #morning, #trend, #afternoon each appear twice;
	// alphabetical order breaks the tie with no recency available.
	want := []string{"#afternoon", "#morning"}
	if len(got) != 2 || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestObserve(t *testing.T) {
	ix := make(FrequencyIndex)
	ix.Observe(NewTagSet([]string{"#a", "#b"}), day(1))
	ix.Observe(NewTagSet([]string{"#a"}), day(3))
	ix.Observe(NewTagSet([]string{"#a"}), day(2))
	st := ix["#a"]
	if st.Count != 3 {
		t.Errorf("expected count 3, got %d", st.Count)
	}
	if !st.LastUsed.Equal(day(3)) {
		t.Errorf("expected last use %v, got %v", day(3), st.LastUsed)
	}
	if ix["#b"].Count != 1 {
		t.Errorf("expected count 1 for #b, got %d", ix["#b"].Count)
	}
}
