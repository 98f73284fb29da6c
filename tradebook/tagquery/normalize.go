package tagquery

import "strings"

// Marker is the leading character of every canonical tag.
const Marker = '#'

// Normalize canonicalizes raw tag text: trimmed, lowercased, exactly one
// leading marker, body restricted to [a-z0-9_]. It returns "" when no body
// characters survive; callers must treat "" as an invalid tag and drop it.
func Normalize(raw string) string {
	s := strings.ToLower(strings.TrimSpace(raw))
	s = strings.TrimLeft(s, string(Marker))

	var b strings.Builder
	b.Grow(len(s) + 1)
	b.WriteByte(Marker)
	for _, r := range s {
		if r == '_' || (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	if b.Len() == 1 {
		return ""
	}
	return b.String()
}

// TagSet is a record's set of canonical tags.
type TagSet map[string]struct{}

// NewTagSet normalizes raw tag strings into a TagSet, dropping any that
// normalize to the empty string. Records with no tags get an empty set.
func NewTagSet(raw []string) TagSet {
	set := make(TagSet, len(raw))
	for _, r := range raw {
		if tag := Normalize(r); tag != "" {
			set[tag] = struct{}{}
		}
	}
	return set
}

// Has reports whether the canonical tag is in the set.
func (s TagSet) Has(tag string) bool {
	_, ok := s[tag]
	return ok
}
