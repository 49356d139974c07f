package scraper

import "testing"

func TestParsePriceValue(t *testing.T) {
	tests := []struct {
		input string
		value float64
		ok    bool
	}{
		{"₹1,23,456.50", 123456.50, true},
		{"₹999", 999, true},
		{"$49.99", 49.99, true},
		{"1999", 1999, true},
		{"1,999.00", 1999, true},
		{"", 0, false},
		{"Not available", 0, false},
		{"₹", 0, false},
		{"..", 0, false},
		{"price on request", 0, false},
	}

	for _, tt := range tests {
		value, ok := ParsePriceValue(tt.input)
		if ok != tt.ok {
			t.Errorf("ParsePriceValue(%q) ok = %v, want %v", tt.input, ok, tt.ok)
			continue
		}
		if ok && value != tt.value {
			t.Errorf("ParsePriceValue(%q) = %v, want %v", tt.input, value, tt.value)
		}
	}
}

func TestParsePriceValueIdempotent(t *testing.T) {
	// Feeding a parsed value's text form back in must yield the same number.
	first, ok := ParsePriceValue("₹1,23,456.50")
	if !ok {
		t.Fatal("first parse failed")
	}
	second, ok := ParsePriceValue("123456.50")
	if !ok {
		t.Fatal("second parse failed")
	}
	if first != second {
		t.Errorf("parse not stable: %v != %v", first, second)
	}
}
