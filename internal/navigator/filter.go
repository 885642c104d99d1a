package navigator

import (
	"unicode"
	"unicode/utf8"
)

// Filter returns the catalog entries containing query, ignoring case, in
// catalog order. An empty query returns the whole catalog.
func Filter(catalog []string, query string) []string {
	if query == "" {
		out := make([]string, len(catalog))
		copy(out, catalog)
		return out
	}

	out := make([]string, 0, len(catalog))
	for _, name := range catalog {
		if start, _ := indexFold(name, query); start >= 0 {
			out = append(out, name)
		}
	}
	return out
}

// Span is a byte range [Start, End) within an exercise name
type Span struct {
	Start int
	End   int
}

// Empty reports whether the span covers no bytes
func (s Span) Empty() bool {
	return s.End <= s.Start
}

// FindMatch locates the first case-insensitive occurrence of query in name
func FindMatch(name, query string) (Span, bool) {
	if query == "" {
		return Span{}, false
	}
	start, end := indexFold(name, query)
	if start < 0 {
		return Span{}, false
	}
	return Span{Start: start, End: end}, true
}

// SplitMatch splits name around the first case-insensitive occurrence of
// query. When there is no match, before holds the whole name.
func SplitMatch(name, query string) (before, match, after string) {
	span, ok := FindMatch(name, query)
	if !ok {
		return name, "", ""
	}
	return name[:span.Start], name[span.Start:span.End], name[span.End:]
}

// indexFold returns the byte range of the first occurrence of sub in s under
// Unicode simple case folding, or (-1, -1). Matching is rune by rune so the
// returned range always falls on rune boundaries of s.
func indexFold(s, sub string) (int, int) {
	if sub == "" {
		return 0, 0
	}
	for i := range s {
		j := i
		matched := true
		for _, want := range sub {
			if j >= len(s) {
				matched = false
				break
			}
			got, size := utf8.DecodeRuneInString(s[j:])
			if !equalFoldRune(got, want) {
				matched = false
				break
			}
			j += size
		}
		if matched {
			return i, j
		}
	}
	return -1, -1
}

func equalFoldRune(a, b rune) bool {
	if a == b {
		return true
	}
	for f := unicode.SimpleFold(a); f != a; f = unicode.SimpleFold(f) {
		if f == b {
			return true
		}
	}
	return false
}
