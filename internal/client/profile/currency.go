package profile

import "strings"

// CurrencySymbol infers the symbol used for amounts shown to a user living in
// country. Unknown countries fall back to "$".
func CurrencySymbol(country string) string {
	switch strings.ToLower(strings.TrimSpace(country)) {
	case "india":
		return "₹"
	case "usa", "united states", "us":
		return "$"
	case "uk", "united kingdom", "britain":
		return "£"
	case "europe", "germany", "france", "italy", "spain":
		return "€"
	default:
		return "$"
	}
}
