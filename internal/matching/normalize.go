// Package matching implements duplicate-contact detection: identifier
// normalization, name similarity and the ranked duplicate matcher.
//
// Everything in this package is a pure function over in-memory values. Callers
// load contacts from storage, call into the matcher and decide what to do with
// the results.
package matching

import (
	"regexp"
	"strings"
)

// phoneTailLength is the number of trailing digits compared between phone numbers.
// Country codes and trunk prefixes live in front of it.
const phoneTailLength = 10

var nonDigitRegex = regexp.MustCompile(`\D`)

// NormalizeEmail normalizes an email address by lowercasing and trimming whitespace.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// NormalizePhone strips every non-digit character and keeps the last ten digits.
// Numbers with fewer than ten digits are returned whole.
func NormalizePhone(phone string) string {
	digits := nonDigitRegex.ReplaceAllString(phone, "")
	if len(digits) > phoneTailLength {
		return digits[len(digits)-phoneTailLength:]
	}
	return digits
}

// NormalizePhoneLoose strips formatting but preserves a leading + when present.
// Used to clean phone numbers before they are stored.
func NormalizePhoneLoose(phone string) string {
	if phone == "" {
		return ""
	}

	var normalized strings.Builder
	phone = strings.TrimSpace(phone)
	for i, r := range phone {
		if r == '+' && i == 0 {
			normalized.WriteRune(r)
		} else if r >= '0' && r <= '9' {
			normalized.WriteRune(r)
		}
	}

	return normalized.String()
}

// EmailDomain returns the domain part of an already normalized email address:
// the text after the first @, up to any further @. ok is false when the address
// has no @ or the domain is empty.
func EmailDomain(email string) (domain string, ok bool) {
	_, rest, found := strings.Cut(email, "@")
	if !found {
		return "", false
	}
	domain, _, _ = strings.Cut(rest, "@")
	return domain, domain != ""
}
