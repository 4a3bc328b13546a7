package report

import "strings"

// countryFlags maps upper-cased country names onto their display
// symbol. Countries outside the support footprint render without one.
var countryFlags = map[string]string{
	"AZERBAIJAN":  "🇦🇿",
	"ARMENIA":     "🇦🇲",
	"IVORY COAST": "🇨🇮",
	"ZAMBIA":      "🇿🇲",
	"UAE":         "🇦🇪",
	"UZBEKISTAN":  "🇺🇿",
	"PERU":        "🇵🇪",
}

// CountryName reduces a composite country value like "EU|AZERBAIJAN"
// to its final segment, trimmed.
func CountryName(raw string) string {
	parts := strings.Split(raw, "|")
	return strings.TrimSpace(parts[len(parts)-1])
}

// Flag returns the symbol for a country, matching case-insensitively.
func Flag(country string) string {
	return countryFlags[strings.ToUpper(country)]
}
