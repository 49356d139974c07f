package scraper

import (
	"reflect"
	"testing"
)

func TestNormalizeQueryText(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"iPhone 15", "iphone 15"},
		{"Apple iPhone-15, 128GB", "apple iphone 15 128gb"},
		{"  lots   of---spaces  ", "lots of spaces"},
		{"₹1,999 (Special!)", "1 999 special"},
		{"", ""},
		{"!!!", ""},
	}

	for _, tt := range tests {
		if got := NormalizeQueryText(tt.input); got != tt.expected {
			t.Errorf("NormalizeQueryText(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestTokenize(t *testing.T) {
	got := Tokenize("Apple iPhone-15, 128GB")
	want := []string{"apple", "iphone", "15", "128gb"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Tokenize = %v, want %v", got, want)
	}

	if got := Tokenize("   "); len(got) != 0 {
		t.Errorf("Tokenize of blank input = %v, want empty", got)
	}
}

func TestTitleMatchesQuery(t *testing.T) {
	tests := []struct {
		name    string
		title   string
		query   string
		matches bool
	}{
		{"exact", "iPhone 15", "iPhone 15", true},
		{"case and punctuation ignored", "Apple iPhone-15, 128GB", "Iphone 15", true},
		{"order independent", "15 iphone", "iphone 15", true},
		{"duplicates in query", "iphone 15", "iphone iphone 15", true},
		{"missing token", "Apple iPhone 14", "iphone 15", false},
		{"partial token no credit", "iphone 158", "iphone 15", false},
		{"asymmetric: title subset of query", "iphone", "iphone 15", false},
		{"empty query", "iphone 15", "", false},
		{"empty title", "", "iphone 15", false},
		{"both empty", "", "", false},
		{"punctuation-only query", "iphone 15", "!!!", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TitleMatchesQuery(tt.title, tt.query); got != tt.matches {
				t.Errorf("TitleMatchesQuery(%q, %q) = %v, want %v", tt.title, tt.query, got, tt.matches)
			}
		})
	}
}
