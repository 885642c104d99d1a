package navigator

import (
	"reflect"
	"strings"
	"testing"
)

func TestFilter(t *testing.T) {
	catalog := []string{"Bench Press", "Deadlift", "Incline Press", "Squat"}

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"empty query", "", catalog},
		{"single letter", "e", []string{"Bench Press", "Deadlift", "Incline Press"}},
		{"case insensitive", "PRESS", []string{"Bench Press", "Incline Press"}},
		{"mid word", "qua", []string{"Squat"}},
		{"with space", "h p", []string{"Bench Press"}},
		{"no match", "curl", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Filter(catalog, tt.query)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Filter(%q) = %v; want %v", tt.query, got, tt.want)
			}
		})
	}
}

func TestFilter_SubsetInOrder(t *testing.T) {
	catalog := []string{"Arnold Press", "Bench Press", "Cable Row", "Deadlift", "Overhead Press", "Pull Up", "Squat"}

	for _, q := range []string{"", "p", "r", "ss", "a", "ll", "x"} {
		got := Filter(catalog, q)
		pos := -1
		for _, name := range got {
			idx := indexOf(catalog, name)
			if idx <= pos {
				t.Errorf("Filter(%q) out of catalog order: %v", q, got)
				break
			}
			pos = idx
			if !strings.Contains(strings.ToLower(name), strings.ToLower(q)) {
				t.Errorf("Filter(%q) kept %q", q, name)
			}
		}
		for _, name := range catalog {
			if strings.Contains(strings.ToLower(name), strings.ToLower(q)) && indexOf(got, name) < 0 {
				t.Errorf("Filter(%q) dropped %q", q, name)
			}
		}
	}
}

func TestFilter_EmptyQueryCopies(t *testing.T) {
	catalog := []string{"Squat"}
	got := Filter(catalog, "")
	got[0] = "changed"
	if catalog[0] != "Squat" {
		t.Error("Filter returned the caller's slice")
	}
}

func TestFindMatch(t *testing.T) {
	tests := []struct {
		name   string
		query  string
		want   Span
		wantOK bool
	}{
		{"Bench Press", "e", Span{1, 2}, true},
		{"Bench Press", "PRESS", Span{6, 11}, true},
		{"Bench Press", "", Span{}, false},
		{"Bench Press", "row", Span{}, false},
		{"Ärmelzug", "ä", Span{0, 2}, true},
		{"Übung Kniebeuge", "BEUGE", Span{11, 16}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name+"/"+tt.query, func(t *testing.T) {
			got, ok := FindMatch(tt.name, tt.query)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("FindMatch(%q, %q) = %v, %v; want %v, %v", tt.name, tt.query, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestSplitMatch(t *testing.T) {
	tests := []struct {
		name, query          string
		before, match, after string
	}{
		{"Deadlift", "LIFT", "Dead", "lift", ""},
		{"Deadlift", "dead", "", "Dead", "lift"},
		{"Deadlift", "", "Deadlift", "", ""},
		{"Deadlift", "squat", "Deadlift", "", ""},
	}

	for _, tt := range tests {
		before, match, after := SplitMatch(tt.name, tt.query)
		if before != tt.before || match != tt.match || after != tt.after {
			t.Errorf("SplitMatch(%q, %q) = %q %q %q; want %q %q %q",
				tt.name, tt.query, before, match, after, tt.before, tt.match, tt.after)
		}
		if before+match+after != tt.name {
			t.Errorf("SplitMatch(%q, %q) parts do not rebuild the name", tt.name, tt.query)
		}
	}
}

func indexOf(list []string, s string) int {
	for i, v := range list {
		if v == s {
			return i
		}
	}
	return -1
}
