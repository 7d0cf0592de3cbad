package bot

import (
	"regexp"
	"strings"
)

var (
	emailRegex      = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	postalCodeRegex = regexp.MustCompile(`^[A-Za-z]\d[A-Za-z][ -]?\d[A-Za-z]\d$|^\d{5}(-\d{4})?$`)
	digitsRegex     = regexp.MustCompile(`\D`)
)

// NormalizePhoneNumber strips formatting and returns a +1XXXXXXXXXX
// number. The empty string means the input was not a usable NA number.
func NormalizePhoneNumber(phone string) string {
	digits := digitsRegex.ReplaceAllString(phone, "")
	switch {
	case len(digits) == 10:
		return "+1" + digits
	case len(digits) == 11 && strings.HasPrefix(digits, "1"):
		return "+" + digits
	default:
		return ""
	}
}

func IsValidPhoneNumber(phone string) bool {
	return NormalizePhoneNumber(phone) != ""
}

// FormatPhoneNumber renders a normalized number as (XXX) XXX-XXXX for
// summaries. Anything unexpected passes through untouched.
func FormatPhoneNumber(phone string) string {
	digits := digitsRegex.ReplaceAllString(phone, "")
	if len(digits) == 11 && strings.HasPrefix(digits, "1") {
		digits = digits[1:]
	}
	if len(digits) != 10 {
		return phone
	}
	return "(" + digits[:3] + ") " + digits[3:6] + "-" + digits[6:]
}

func IsValidEmail(email string) bool {
	return emailRegex.MatchString(strings.TrimSpace(email))
}

// IsValidPostalCode accepts Canadian postal codes and US ZIP codes.
func IsValidPostalCode(code string) bool {
	return postalCodeRegex.MatchString(strings.TrimSpace(code))
}
