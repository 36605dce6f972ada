// Package phone provides phone number utilities.
// This is part of the platform layer and contains no business logic.
package phone

import (
	"regexp"
	"strings"

	"github.com/nyaruka/phonenumbers"
)

const (
	defaultRegion = "IN"
	indiaCode     = 91
)

var indianMobile = regexp.MustCompile(`^[6-9]\d{9}$`)

// Normalize returns the canonical storage form of a phone number.
// Indian numbers (with or without +91, spaces or a trunk 0) collapse to their
// 10-digit national number, foreign numbers are formatted as E.164, and
// anything unparsable is returned trimmed.
func Normalize(input string) string {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return trimmed
	}

	number, err := phonenumbers.Parse(trimmed, defaultRegion)
	if err != nil {
		return trimmed
	}

	if int(number.GetCountryCode()) == indiaCode {
		return phonenumbers.GetNationalSignificantNumber(number)
	}

	if !phonenumbers.IsValidNumber(number) {
		return trimmed
	}

	return phonenumbers.Format(number, phonenumbers.E164)
}

// IsIndianMobile reports whether input normalizes to a 10-digit Indian
// mobile number starting with 6, 7, 8 or 9.
func IsIndianMobile(input string) bool {
	return indianMobile.MatchString(Normalize(input))
}
