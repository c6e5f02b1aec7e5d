package validation

import (
	"strconv"
	"strings"
	"unicode"
)

// Digits keeps only ASCII digits. Length is left to the validators.
func Digits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Amount keeps digits, dots and commas.
func Amount(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) || r == '.' || r == ',' {
			return r
		}
		return -1
	}, strings.TrimSpace(s))
}

// Decimal turns a comma decimal separator into a dot and keeps a single dot.
func Decimal(s string) string {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	var b strings.Builder
	seenDot := false
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.' && !seenDot:
			seenDot = true
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ParseNumber reads "1.234,5", "1234.5" or "50.000" style numbers.
// Thousands groups are recognised only when every group after the first has 3 digits.
func ParseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	if IsAmount(s) {
		s = strings.ReplaceAll(s, ".", "")
	} else if strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// ParseDecimal reads a meter reading where "," or "." is the decimal separator.
func ParseDecimal(s string) (float64, bool) {
	s = Decimal(s)
	if s == "" || s == "." {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}
