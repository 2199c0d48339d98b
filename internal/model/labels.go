package model

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// DefaultLabeler turns a field name into a display label. Underscore, dash
// and space separated parts each start with a capital; camelCase and digit
// boundaries inside a part become spaces, e.g. "zipCode5" -> "Zip code 5".
func DefaultLabeler(name string) string {
	parts := strings.FieldsFunc(name, func(r rune) bool {
		return r == '_' || r == '-' || unicode.IsSpace(r)
	})
	labels := make([]string, 0, len(parts))
	for _, part := range parts {
		labels = append(labels, capitalize(strings.ToLower(spaceBoundaries(part))))
	}
	return strings.Join(labels, " ")
}

func spaceBoundaries(part string) string {
	var b strings.Builder
	b.Grow(len(part) + 4)
	var prev rune
	for i, r := range part {
		if i > 0 && wordBoundary(prev, r) {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
		prev = r
	}
	return b.String()
}

func wordBoundary(prev, cur rune) bool {
	switch {
	case unicode.IsLower(prev) && unicode.IsUpper(cur):
		return true
	case unicode.IsLetter(prev) && unicode.IsDigit(cur):
		return true
	case unicode.IsDigit(prev) && unicode.IsLetter(cur):
		return true
	}
	return false
}

func capitalize(word string) string {
	r, size := utf8.DecodeRuneInString(word)
	if r == utf8.RuneError {
		return word
	}
	return string(unicode.ToUpper(r)) + word[size:]
}
