package services

import (
	"regexp"
	"strconv"
	"strings"
)

// priceRegexp captures the first number, allowing a single decimal point.
// A lone "." never matches.
var priceRegexp = regexp.MustCompile(`\d*\.?\d+`)

var priceReplacer = strings.NewReplacer(",", "", "$", "")

// ParsePrice extracts the first numeric value from a price-bearing string.
// Examples:
//
//	"$1,234.50" → 1234.5
//	" 45.0 "    → 45
//	"N/A"       → no value
func ParsePrice(raw string) (float64, bool) {
	cleaned := strings.TrimSpace(priceReplacer.Replace(raw))
	if cleaned == "" {
		return 0, false
	}

	match := priceRegexp.FindString(cleaned)
	if match == "" {
		return 0, false
	}

	val, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return 0, false
	}
	return val, true
}
