package fieldcrypt

import "strings"

// Masking irreversibly obscures all but a fixed suffix of a sensitive value
// for display. Views built for any caller, including the record's owner, only
// ever carry masked values.

const maskedSuffixLen = 4

// Mask replaces all but the last visible characters of value with the
// placeholder rune. Values shorter than the visible suffix are fully masked.
func Mask(value string, visible int, placeholder rune) string {
	runes := []rune(value)
	if visible < 0 {
		visible = 0
	}
	if len(runes) <= visible {
		return strings.Repeat(string(placeholder), len(runes))
	}
	hidden := len(runes) - visible
	return strings.Repeat(string(placeholder), hidden) + string(runes[hidden:])
}

// MaskSSN renders an SSN as XXX-XX-#### keeping exactly the last four digits.
// Inputs that do not look like an SSN still get generic suffix masking so an
// unexpected shape never leaks.
func MaskSSN(ssn string) string {
	if ssn == "" {
		return ""
	}
	digits := strings.Map(keepDigit, ssn)
	if len(digits) >= maskedSuffixLen {
		return "XXX-XX-" + digits[len(digits)-maskedSuffixLen:]
	}
	return Mask(ssn, 0, 'X')
}

// MaskAccountNumber renders a bank account number as ****#### keeping exactly
// the last four characters.
func MaskAccountNumber(account string) string {
	if account == "" {
		return ""
	}
	if len(account) <= maskedSuffixLen {
		return strings.Repeat("*", len(account))
	}
	return "****" + account[len(account)-maskedSuffixLen:]
}

func keepDigit(r rune) rune {
	if r >= '0' && r <= '9' {
		return r
	}
	return -1
}
