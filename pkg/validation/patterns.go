package validation

import (
	"regexp"
	"unicode/utf8"
)

// Registered pattern names usable from definitions.
const (
	PatternEmail    = "email"
	PatternPassword = "password"
)

// EmailPattern accepts a local part of allowed characters, an @ and one or
// more dot-separated labels of letters, digits and hyphens.
var EmailPattern = regexp.MustCompile("^[a-zA-Z0-9.!#$%&'*+/=?^_`{|}~-]+@[a-zA-Z0-9-]+(?:\\.[a-zA-Z0-9-]+)*$")

// PasswordSpecials lists the symbols a password must draw at least one from.
const PasswordSpecials = "!@#$%^&*()"

const (
	passwordMinLength = 8
	passwordMaxLength = 20
)

// Matcher reports whether a value satisfies a named pattern.
type Matcher func(value string) bool

// MatchEmail reports whether value is email shaped.
func MatchEmail(value string) bool {
	return EmailPattern.MatchString(value)
}

// MatchPassword enforces the password policy: 8 to 20 characters drawn only
// from letters, digits and PasswordSpecials, with at least one of each class.
func MatchPassword(value string) bool {
	length := utf8.RuneCountInString(value)
	if length < passwordMinLength || length > passwordMaxLength {
		return false
	}

	var digit, upper, lower, special bool
	for _, r := range value {
		switch {
		case r >= '0' && r <= '9':
			digit = true
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= 'a' && r <= 'z':
			lower = true
		case isPasswordSpecial(r):
			special = true
		default:
			return false
		}
	}
	return digit && upper && lower && special
}

func isPasswordSpecial(r rune) bool {
	for _, s := range PasswordSpecials {
		if r == s {
			return true
		}
	}
	return false
}
