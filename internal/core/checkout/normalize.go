package checkout

import "strings"

// DigitsOnly strips every non-digit character. Applied to zipCode and cvv
// input before validation.
func DigitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// FormatCardNumber strips non-digits and re-inserts a space after every
// fourth digit, producing the display form "1234 5678 9012 3456".
func FormatCardNumber(s string) string {
	digits := DigitsOnly(s)

	var b strings.Builder
	for i, r := range digits {
		if i > 0 && i%4 == 0 {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// FormatExpiry applies the MM/YY input mask: non-digits are dropped, at most
// four digits are kept, and a slash separates the two-digit groups.
func FormatExpiry(s string) string {
	digits := DigitsOnly(s)
	if len(digits) > 4 {
		digits = digits[:4]
	}
	if len(digits) <= 2 {
		return digits
	}
	return digits[:2] + "/" + digits[2:]
}
