package services

import (
	"regexp"
	"strings"
	"unicode"
)

var usStateCodes = []string{
	"AL", "AK", "AZ", "AR", "CA", "CO", "CT", "DE", "FL", "GA",
	"HI", "ID", "IL", "IN", "IA", "KS", "KY", "LA", "ME", "MD",
	"MA", "MI", "MN", "MS", "MO", "MT", "NE", "NV", "NH", "NJ",
	"NM", "NY", "NC", "ND", "OH", "OK", "OR", "PA", "RI", "SC",
	"SD", "TN", "TX", "UT", "VT", "VA", "WA", "WV", "WI", "WY",
	"DC",
}

var (
	// stateSuffixRegexp matches ", XX" where XX is a US state code.
	stateSuffixRegexp = regexp.MustCompile(`(?i),\s*(?:` + strings.Join(usStateCodes, "|") + `)\b`)
	whitespaceRegexp  = regexp.MustCompile(`\s+`)
	slugUnsafeRegexp  = regexp.MustCompile(`[^A-Za-z0-9-]`)
)

// CitySlug turns free-form input such as "Los Angeles, CA" into the
// hyphenated identifier used in scrape URLs ("Los-Angeles"). It returns an
// empty string when nothing usable is left.
func CitySlug(city string) string {
	s := stateSuffixRegexp.ReplaceAllString(city, "")
	if i := strings.Index(s, ","); i >= 0 {
		s = s[:i]
	}
	s = strings.TrimSpace(s)
	s = whitespaceRegexp.ReplaceAllString(s, "-")
	return slugUnsafeRegexp.ReplaceAllString(s, "")
}

// FallbackKey flattens input into the fallback-table key: lowercase, with
// whitespace and commas removed. The state suffix is kept, so
// "Los Angeles, CA" and "Los Angeles" are distinct keys.
func FallbackKey(city string) string {
	return strings.Map(func(r rune) rune {
		if r == ',' || unicode.IsSpace(r) {
			return -1
		}
		return r
	}, strings.ToLower(city))
}
