// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package verify

import (
	"github.com/pdiddy/scholar-verify/internal/ident"
	"github.com/pdiddy/scholar-verify/pkg/types"
)

const (
	orcidMatchBonus   = 15.0
	scopusBonus       = 5.0
	researcherIDBonus = 5.0
	maxIDBonus        = 25.0
)

// IDBonus returns the identity credit for a candidate, in [0, 25].
//
// A claimed ORCID iD earns 15 only when the candidate lists it among its
// authors' iDs. Scopus and Researcher IDs cannot be checked against any
// source, so each earns 5 for being supplied at all.
func IDBonus(ids types.Identifiers, candidate types.CandidateRecord) float64 {
	bonus := 0.0
	if ids.ORCID != "" && hasORCID(candidate.ORCIDs, ids.ORCID) {
		bonus += orcidMatchBonus
	}
	if ids.ScopusID != "" {
		bonus += scopusBonus
	}
	if ids.ResearcherID != "" {
		bonus += researcherIDBonus
	}
	return min(bonus, maxIDBonus)
}

// hasORCID reports whether orcid appears in list. Entries are compared in
// bare form so that "https://orcid.org/…" URLs match a bare iD; entries
// that are not shaped like an iD are compared verbatim.
func hasORCID(list []string, orcid string) bool {
	want := canonicalORCID(orcid)
	for _, o := range list {
		if canonicalORCID(o) == want {
			return true
		}
	}
	return false
}

func canonicalORCID(s string) string {
	if bare := ident.BareORCID(s); bare != "" {
		return bare
	}
	return s
}
