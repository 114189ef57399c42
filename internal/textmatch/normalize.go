// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package textmatch canonicalizes free text and computes bounded fuzzy
// similarity scores between titles and author names.
package textmatch

import (
	"errors"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ErrEmptyName is returned by LastName when the name normalizes to nothing.
var ErrEmptyName = errors.New("name is empty after normalization")

// Normalize lower-cases text, replaces every run of characters that are not
// letters, digits, or whitespace with a single space, collapses whitespace,
// and trims. Normalize is idempotent.
func Normalize(text string) string {
	if text == "" {
		return ""
	}
	// A Caser carries state and must not be shared across goroutines.
	lowered := cases.Lower(language.Und).String(text)

	var b strings.Builder
	b.Grow(len(lowered))
	for _, r := range lowered {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			b.WriteRune(r)
		} else {
			b.WriteByte(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// LastName returns the final token of the normalized full name.
func LastName(fullName string) (string, error) {
	tokens := strings.Fields(Normalize(fullName))
	if len(tokens) == 0 {
		return "", ErrEmptyName
	}
	return tokens[len(tokens)-1], nil
}
