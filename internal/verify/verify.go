// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package verify estimates whether a claimed publication is authentically
// attributable to an author by scoring it against candidate records from
// independent bibliographic sources.
//
// The composite score of a candidate is
//
//	0.65*title + 0.25*author + 5 (if the candidate has a DOI) + identity bonus
//
// and the best candidate is classified by two different quantities: a strong
// author match alone is AUTHENTIC, while the lower tiers are thresholds on
// the composite score.
package verify

import (
	"context"
	"log/slog"
	"math"

	"github.com/pdiddy/scholar-verify/internal/sources"
	"github.com/pdiddy/scholar-verify/internal/textmatch"
	"github.com/pdiddy/scholar-verify/pkg/types"
)

const (
	titleWeight  = 0.65
	authorWeight = 0.25
	doiBonus     = 5.0

	authenticAuthorScore  = 85.0
	likelyAuthenticScore  = 75.0
	scholarClaimedScore   = 60.0
	noCandidateScore      = 85.0
	maxConfidenceScore    = 100.0
	defaultProfileSource  = "Google Scholar"
	unmatchedSourceSuffix = " only"
)

// Reasons recorded on results.
const (
	ReasonNoRecord  = "No external bibliographic record found"
	ReasonAutomated = "Automated bibliographic verification"
)

// Verifier classifies claimed publications for one author. Its fields are
// read-only during a run and may be shared by sequential Verify calls.
type Verifier struct {
	// Sources are queried in order for every publication.
	Sources []sources.Source

	// AuthorName is the profile owner's full name. It must not be empty.
	AuthorName string

	// Identifiers are the optional researcher identifiers for the run.
	Identifiers types.Identifiers

	// ProfileSource names where the claims came from; unmatched results
	// report "<ProfileSource> only". Defaults to "Google Scholar".
	ProfileSource string

	// Logger receives per-source failures and scoring detail. Defaults to
	// slog.Default().
	Logger *slog.Logger
}

// Verify retrieves candidates for pub from every source and classifies it.
// It always returns a result: source failures only shrink the candidate pool.
func (v *Verifier) Verify(ctx context.Context, pub types.ClaimedPublication) types.VerificationResult {
	pool := sources.Lookup(ctx, v.Sources, pub.Title, v.logger())
	return v.Evaluate(pub, pool)
}

// Evaluate classifies pub against an already retrieved candidate pool.
func (v *Verifier) Evaluate(pub types.ClaimedPublication, pool []types.CandidateRecord) types.VerificationResult {
	if len(pool) == 0 {
		return types.VerificationResult{
			ClaimedTitle:         pub.Title,
			MatchedSource:        v.profileSource() + unmatchedSourceSuffix,
			ConfidenceScore:      noCandidateScore,
			Classification:       types.ScholarClaimed,
			VerificationStrength: Strength(v.Identifiers.ORCID, false),
			Reason:               ReasonNoRecord,
		}
	}

	scored := make([]Scored, len(pool))
	for i, c := range pool {
		scored[i] = Score(pub, v.AuthorName, v.Identifiers, c)
	}
	best := selectBest(scored)

	v.logger().Debug("best candidate",
		"claimed", pub.Title,
		"matched", best.Candidate.Title,
		"source", best.Candidate.Source,
		"title_score", best.TitleScore,
		"author_score", best.AuthorScore,
		"id_bonus", best.IDBonus,
		"composite", best.Composite,
	)

	return types.VerificationResult{
		ClaimedTitle:         pub.Title,
		MatchedTitle:         best.Candidate.Title,
		MatchedSource:        best.Candidate.Source,
		DOI:                  best.Candidate.DOI,
		ConfidenceScore:      CapScore(best.Composite),
		Classification:       Classify(best.AuthorScore, best.Composite),
		VerificationStrength: Strength(v.Identifiers.ORCID, best.Candidate.HasDOI()),
		Reason:               ReasonAutomated,
	}
}

func (v *Verifier) logger() *slog.Logger {
	if v.Logger != nil {
		return v.Logger
	}
	return slog.Default()
}

func (v *Verifier) profileSource() string {
	if v.ProfileSource != "" {
		return v.ProfileSource
	}
	return defaultProfileSource
}

// Scored is a candidate with the components of its composite score.
type Scored struct {
	Candidate   types.CandidateRecord
	TitleScore  float64
	AuthorScore float64
	IDBonus     float64
	Composite   float64
}

// Score computes the composite score of one candidate for pub.
func Score(pub types.ClaimedPublication, authorName string, ids types.Identifiers, c types.CandidateRecord) Scored {
	s := Scored{
		Candidate:   c,
		TitleScore:  textmatch.TitleScore(pub.Title, c.Title),
		AuthorScore: textmatch.AuthorNameScore(authorName, c.Authors),
		IDBonus:     IDBonus(ids, c),
	}
	s.Composite = titleWeight*s.TitleScore + authorWeight*s.AuthorScore + s.IDBonus
	if c.HasDOI() {
		s.Composite += doiBonus
	}
	return s
}

// selectBest returns the candidate with the greatest composite score.
// Ties go to the earliest candidate: pool order is the fixed adapter order
// followed by each source's relevance ranking, so results are reproducible.
// scored must not be empty.
func selectBest(scored []Scored) Scored {
	best := scored[0]
	for _, s := range scored[1:] {
		if s.Composite > best.Composite {
			best = s
		}
	}
	return best
}

// Classify assigns the authenticity label. Rules apply in order and the
// first match wins; only the first looks at the author score.
func Classify(authorScore, composite float64) types.Classification {
	switch {
	case authorScore >= authenticAuthorScore:
		return types.Authentic
	case composite >= likelyAuthenticScore:
		return types.LikelyAuthentic
	case composite >= scholarClaimedScore:
		return types.ScholarClaimed
	default:
		return types.LikelyMisattributed
	}
}

// Strength grades corroboration by ORCID and DOI presence alone.
func Strength(orcid string, doiPresent bool) types.Strength {
	switch {
	case orcid != "" && doiPresent:
		return types.StrengthStrong
	case doiPresent:
		return types.StrengthModerate
	default:
		return types.StrengthBasic
	}
}

// CapScore rounds score to two decimal places and caps it at 100. The
// composite has headroom above 100 (title, author, DOI and identity bonus
// together reach 120), so the cap is always applied.
func CapScore(score float64) float64 {
	return min(math.Round(score*100)/100, maxConfidenceScore)
}
