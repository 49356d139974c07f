package scraper

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

var priceNoise = regexp.MustCompile(`[^0-9.,]`)

// ParsePriceValue converts heterogeneous price text into a numeric value.
// Currency symbols and any other noise are stripped, commas are treated as
// thousands separators and removed. Returns false on empty input or when the
// remainder does not parse to a finite number.
func ParsePriceValue(text string) (float64, bool) {
	sanitized := strings.TrimSpace(strings.ReplaceAll(priceNoise.ReplaceAllString(text, ""), ",", ""))
	if sanitized == "" {
		return 0, false
	}

	value, err := strconv.ParseFloat(sanitized, 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, false
	}
	return value, true
}
