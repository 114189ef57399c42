// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// ClaimedPublication is a publication listed on an author's profile that has
// not yet been corroborated by an independent source.
type ClaimedPublication struct {
	// Title is the publication title as listed on the profile.
	Title string `json:"title" yaml:"title"`
}

// CandidateRecord is a bibliographic entry returned by a source adapter as a
// possible match for a claimed publication. Records are scored and discarded;
// they are never persisted.
type CandidateRecord struct {
	// Title is the work title as returned by the source.
	Title string `json:"title" yaml:"title"`

	// Authors lists author display names in source order.
	Authors []string `json:"authors" yaml:"authors"`

	// DOI is the bare DOI (e.g. "10.1145/1234567"). Empty when the source has none.
	DOI string `json:"doi,omitempty" yaml:"doi,omitempty"`

	// ORCIDs lists the ORCID iDs attached to the work's authors, as the source
	// reports them (bare or URL form).
	ORCIDs []string `json:"orcids,omitempty" yaml:"orcids,omitempty"`

	// Source names the adapter that produced the record (e.g. "Crossref").
	Source string `json:"source" yaml:"source"`
}

// HasDOI reports whether the record carries a DOI.
func (c CandidateRecord) HasDOI() bool { return c.DOI != "" }

// Identifiers are the optional researcher identifiers supplied for a
// verification run. An empty field means the identifier was not supplied.
type Identifiers struct {
	ORCID        string `json:"orcid,omitempty" yaml:"orcid,omitempty"`
	ScopusID     string `json:"scopus_id,omitempty" yaml:"scopus_id,omitempty"`
	ResearcherID string `json:"researcher_id,omitempty" yaml:"researcher_id,omitempty"`
}

// Classification is the authenticity label assigned to a claimed publication.
type Classification string

const (
	Authentic           Classification = "AUTHENTIC"
	LikelyAuthentic     Classification = "LIKELY AUTHENTIC"
	ScholarClaimed      Classification = "SCHOLAR-CLAIMED OUTPUT"
	LikelyMisattributed Classification = "LIKELY MISATTRIBUTED"
)

// Strength is a qualitative corroboration tier based only on ORCID and DOI
// presence. It does not feed back into the confidence score.
type Strength string

const (
	StrengthStrong   Strength = "Strong (ORCID + DOI)"
	StrengthModerate Strength = "Moderate (Name + DOI)"
	StrengthBasic    Strength = "Basic (Scholar-only)"
)

// VerificationResult is the outcome of verifying one claimed publication.
type VerificationResult struct {
	ClaimedTitle  string `json:"claimed_title" yaml:"claimed_title"`
	MatchedTitle  string `json:"matched_title" yaml:"matched_title"`
	MatchedSource string `json:"matched_source" yaml:"matched_source"`
	DOI           string `json:"doi" yaml:"doi"`

	// ConfidenceScore is in [0, 100], rounded to two decimal places.
	ConfidenceScore float64 `json:"confidence_score" yaml:"confidence_score"`

	Classification       Classification `json:"classification" yaml:"classification"`
	VerificationStrength Strength       `json:"verification_strength" yaml:"verification_strength"`
	Reason               string         `json:"reason" yaml:"reason"`
}
