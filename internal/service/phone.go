package service

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/nyaruka/phonenumbers"
)

const phoneRegion = "NG"

var mobilePattern = regexp.MustCompile(`^(\+234|234|0)[789]\d{9}$`)

func stripSpaces(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

// ValidPhone accepts Nigerian mobile numbers in local (0...) or country-code
// (+234 / 234) form. Whitespace is ignored.
func ValidPhone(phone string) bool {
	return mobilePattern.MatchString(stripSpaces(phone))
}

// NormalizePhone formats to E.164, falling back to the input without spaces.
func NormalizePhone(phone string) string {
	stripped := stripSpaces(phone)
	if stripped == "" {
		return stripped
	}
	// A bare 234... number parses as a national number without the plus.
	candidate := stripped
	if strings.HasPrefix(candidate, "234") {
		candidate = "+" + candidate
	}
	num, err := phonenumbers.Parse(candidate, phoneRegion)
	if err != nil {
		return stripped
	}
	if !phonenumbers.IsValidNumber(num) {
		return stripped
	}
	return phonenumbers.Format(num, phonenumbers.E164)
}
