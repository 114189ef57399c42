// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package ident recognizes and canonicalizes the researcher and work
// identifiers exchanged with bibliographic sources: ORCID iDs, OpenAlex
// author IDs, and DOIs.
package ident

import (
	"regexp"
	"strings"
)

// Kind classifies an input identifier.
type Kind int

const (
	KindUnknown Kind = iota
	KindORCID
	KindOpenAlexAuthor
	KindDOI
)

func (k Kind) String() string {
	switch k {
	case KindORCID:
		return "orcid"
	case KindOpenAlexAuthor:
		return "openalex"
	case KindDOI:
		return "doi"
	default:
		return "unknown"
	}
}

// orcidPattern matches a bare ORCID iD: four groups of four characters, the
// last of which may be the check character X.
var orcidPattern = regexp.MustCompile(`^\d{4}-\d{4}-\d{4}-\d{3}[\dX]$`)

// openAlexAuthorPattern matches "A5023888391" and its openalex.org URL form.
var openAlexAuthorPattern = regexp.MustCompile(`(?i)^(?:https?://(?:api\.)?openalex\.org/(?:authors/)?)?(a\d+)$`)

// doiPattern matches DOIs: "10.1145/1234567.1234568".
var doiPattern = regexp.MustCompile(`^10\.\d{4,9}/\S+$`)

var orcidPrefixes = []string{
	"https://orcid.org/",
	"http://orcid.org/",
	"orcid.org/",
	"orcid:",
}

var doiPrefixes = []string{
	"https://doi.org/",
	"http://doi.org/",
	"https://dx.doi.org/",
	"http://dx.doi.org/",
	"doi:",
}

// Classify determines the identifier kind and returns its canonical form.
// ORCID iDs and DOIs lose any resolver URL prefix; OpenAlex author IDs are
// upper-cased to the "A…" form.
func Classify(identifier string) (Kind, string) {
	identifier = strings.TrimSpace(identifier)

	if orcid := BareORCID(identifier); orcid != "" {
		return KindORCID, orcid
	}
	if m := openAlexAuthorPattern.FindStringSubmatch(identifier); m != nil {
		return KindOpenAlexAuthor, strings.ToUpper(m[1])
	}
	if doi := BareDOI(identifier); doi != "" {
		return KindDOI, doi
	}
	return KindUnknown, identifier
}

// BareORCID returns s as a bare ORCID iD ("0000-0002-1825-0097"), stripping
// an orcid.org URL or "orcid:" prefix. It returns "" when s is not shaped
// like an ORCID iD. The check character is not validated; see ValidORCID.
func BareORCID(s string) string {
	s = strings.ToUpper(trimPrefixFold(strings.TrimSpace(s), orcidPrefixes))
	if !orcidPattern.MatchString(s) {
		return ""
	}
	return s
}

// ValidORCID reports whether s is an ORCID iD whose final character matches
// the ISO 7064 MOD 11-2 checksum of the preceding fifteen digits.
func ValidORCID(s string) bool {
	bare := BareORCID(s)
	if bare == "" {
		return false
	}
	digits := strings.ReplaceAll(bare, "-", "")
	total := 0
	for _, r := range digits[:15] {
		total = (total + int(r-'0')) * 2
	}
	check := (12 - total%11) % 11
	want := byte('0' + check)
	if check == 10 {
		want = 'X'
	}
	return digits[15] == want
}

// BareDOI returns s without a doi.org resolver or "doi:" prefix. It returns
// "" when the remainder is not shaped like a DOI.
func BareDOI(s string) string {
	s = trimPrefixFold(strings.TrimSpace(s), doiPrefixes)
	if !doiPattern.MatchString(s) {
		return ""
	}
	return s
}

func trimPrefixFold(s string, prefixes []string) string {
	for _, p := range prefixes {
		if len(s) >= len(p) && strings.EqualFold(s[:len(p)], p) {
			return s[len(p):]
		}
	}
	return s
}
