package search

import (
	"reflect"
	"testing"

	"github.com/jefefefef/Paperplay/internal/domain/models/library"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{
			name:     "splits on spaces and lowercases",
			input:    "Tax Return 2025",
			expected: []string{"tax", "return", "2025"},
		},
		{
			name:     "splits on punctuation",
			input:    "widget-report_v2.final",
			expected: []string{"widget", "report", "v2", "final"},
		},
		{
			name:     "keeps short tokens",
			input:    "CV",
			expected: []string{"cv"},
		},
		{
			name:     "empty string yields no tokens",
			input:    "",
			expected: []string{},
		},
		{
			name:     "separators only yield no tokens",
			input:    "--- ___",
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Tokenize(tt.input)
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("Tokenize(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func buildIndex(docs ...library.Document) *Index {
	idx := NewIndex()
	idx.Rebuild(docs)
	return idx
}

func TestIndex_Search(t *testing.T) {
	idx := buildIndex(
		library.Document{ID: "doc-1", Name: "widget-report"},
		library.Document{ID: "doc-2", Name: "other"},
		library.Document{ID: "doc-3", Name: "Tax Return 2025"},
	)

	tests := []struct {
		name     string
		query    string
		expected []string
	}{
		{
			name:     "exact token match",
			query:    "widget",
			expected: []string{"doc-1"},
		},
		{
			name:     "case insensitive",
			query:    "TAX",
			expected: []string{"doc-3"},
		},
		{
			name:     "prefix match",
			query:    "wid",
			expected: []string{"doc-1"},
		},
		{
			name:     "substring across token boundary",
			query:    "return 20",
			expected: []string{"doc-3"},
		},
		{
			name:     "no match",
			query:    "missing",
			expected: []string{},
		},
		{
			name:     "empty query returns nothing",
			query:    "",
			expected: []string{},
		},
		{
			name:     "whitespace query returns nothing",
			query:    "   ",
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := idx.Search(tt.query)
			if len(got) != len(tt.expected) {
				t.Fatalf("Search(%q) = %v, want %v", tt.query, got, tt.expected)
			}
			for i := range got {
				if got[i] != tt.expected[i] {
					t.Errorf("Search(%q)[%d] = %s, want %s", tt.query, i, got[i], tt.expected[i])
				}
			}
		})
	}
}

func TestIndex_SearchRanksExactAboveDerivedMatches(t *testing.T) {
	idx := buildIndex(
		library.Document{ID: "doc-prefix", Name: "taxonomy notes"},
		library.Document{ID: "doc-exact", Name: "tax receipts"},
	)

	got := idx.Search("tax")
	if len(got) != 2 {
		t.Fatalf("Search(tax) returned %d results, want 2", len(got))
	}
	if got[0] != "doc-exact" {
		t.Errorf("first result = %s, want doc-exact (exact token match ranks first)", got[0])
	}
	if got[1] != "doc-prefix" {
		t.Errorf("second result = %s, want doc-prefix", got[1])
	}
}

func TestIndex_RebuildDiscardsPriorState(t *testing.T) {
	idx := buildIndex(library.Document{ID: "doc-old", Name: "obsolete"})

	idx.Rebuild([]library.Document{{ID: "doc-new", Name: "fresh"}})

	if got := idx.Search("obsolete"); len(got) != 0 {
		t.Errorf("Search(obsolete) after rebuild = %v, want empty", got)
	}
	if got := idx.Search("fresh"); len(got) != 1 || got[0] != "doc-new" {
		t.Errorf("Search(fresh) after rebuild = %v, want [doc-new]", got)
	}
	if idx.Len() != 1 {
		t.Errorf("Len() = %d, want 1", idx.Len())
	}
}

func TestIndex_AddExtendsWithoutTouchingExisting(t *testing.T) {
	idx := buildIndex(library.Document{ID: "doc-1", Name: "first"})

	idx.Add(library.Document{ID: "doc-2", Name: "second"})

	if got := idx.Search("first"); len(got) != 1 || got[0] != "doc-1" {
		t.Errorf("Search(first) = %v, want [doc-1]", got)
	}
	if got := idx.Search("second"); len(got) != 1 || got[0] != "doc-2" {
		t.Errorf("Search(second) = %v, want [doc-2]", got)
	}
	if idx.Len() != 2 {
		t.Errorf("Len() = %d, want 2", idx.Len())
	}
}

func TestIndex_AddSameIDTwiceIsNoOp(t *testing.T) {
	idx := NewIndex()
	doc := library.Document{ID: "doc-1", Name: "report report"}

	idx.Add(doc)
	idx.Add(doc)

	got := idx.Search("report")
	if len(got) != 1 || got[0] != "doc-1" {
		t.Errorf("Search(report) = %v, want exactly one doc-1", got)
	}
	if idx.Len() != 1 {
		t.Errorf("Len() = %d, want 1", idx.Len())
	}
}
