package calc

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	// "euros" must precede "EUR": alternation is leftmost-first, and the
	// shorter token would otherwise match inside the word and leave "os".
	currencySymbols = regexp.MustCompile(`(?i)[€$]|euros|EUR`)
	numericPrefix   = regexp.MustCompile(`^[+-]?\d+(?:\.\d+)?(?:[eE][+-]?\d+)?`)
	dotDecimal      = regexp.MustCompile(`^[+-]?\d+\.\d{1,2}$`)
)

// ParseCurrencyString parses a Spanish-formatted money amount as found in
// tender documents: "1.234.567,89 €", "2.500.000 euros", "1500000". It
// strips currency markers, drops thousands separators and converts the
// decimal comma. Returns ok=false when no number remains.
func ParseCurrencyString(s string) (float64, bool) {
	cleaned := strings.TrimSpace(currencySymbols.ReplaceAllString(s, ""))
	if cleaned == "" {
		return 0, false
	}
	// A single dot followed by one or two digits is a decimal point, not a
	// thousands separator: "125000.50" means 125000.50, "12.000" means 12000.
	if dotDecimal.MatchString(cleaned) {
		if v, err := strconv.ParseFloat(cleaned, 64); err == nil {
			return v, true
		}
	}
	cleaned = strings.ReplaceAll(cleaned, ".", "")
	cleaned = strings.ReplaceAll(cleaned, ",", ".")
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// ParseNumber coerces a free-text numeric field to a float. A leading
// numeric prefix is enough ("1500 €/mes" reads as 1500); empty or
// unparsable input counts as zero. Used for every editable cost and
// percentage field, so aggregations never fail on user input.
func ParseNumber(s string) float64 {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return 0
	}
	if v, err := strconv.ParseFloat(trimmed, 64); err == nil {
		return v
	}
	prefix := numericPrefix.FindString(trimmed)
	if prefix == "" {
		return 0
	}
	v, err := strconv.ParseFloat(prefix, 64)
	if err != nil {
		return 0
	}
	return v
}
