package checkout

import (
	"strings"
	"unicode"
)

// FormatCardNumber keeps the digits of value and, once there are at least
// four, groups the first sixteen in blocks of four: "4242424242424242" becomes
// "4242 4242 4242 4242". Shorter input is returned as bare digits.
func FormatCardNumber(value string) string {
	digits := digitsOnly(value)
	if len(digits) < 4 {
		return digits
	}
	if len(digits) > 16 {
		digits = digits[:16]
	}

	var b strings.Builder
	for i := 0; i < len(digits); i += 4 {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(digits[i:min(i+4, len(digits))])
	}
	return b.String()
}

// FormatExpiryDate renders typed digits as MM/YY once two are present.
func FormatExpiryDate(value string) string {
	digits := digitsOnly(value)
	if len(digits) < 2 {
		return digits
	}
	return digits[:2] + "/" + digits[2:min(4, len(digits))]
}

func digitsOnly(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, s)
}

func stripWhitespace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}
