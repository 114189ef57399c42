// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package sources

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/pdiddy/scholar-verify/pkg/types"
)

// semanticAPIBase is the Semantic Scholar paper search endpoint. Declared
// as a var so tests can substitute an httptest server.
var semanticAPIBase = "https://api.semanticscholar.org/graph/v1/paper/search"

const semanticFields = "title,authors,externalIds"

// SemanticScholar queries the Semantic Scholar Graph API by title.
type SemanticScholar struct {
	Client *http.Client
	Cfg    types.LookupConfig
}

// Name returns the source label written to reports.
func (s *SemanticScholar) Name() string { return "SemanticScholar" }

// Lookup searches Semantic Scholar for papers matching title. Semantic
// Scholar does not expose author ORCID iDs in search results.
func (s *SemanticScholar) Lookup(ctx context.Context, title string) ([]types.CandidateRecord, error) {
	params := url.Values{
		"query":  {title},
		"limit":  {strconv.Itoa(limit(s.Cfg))},
		"fields": {semanticFields},
	}

	var header http.Header
	if s.Cfg.SemanticScholarAPIKey != "" {
		header = http.Header{"x-api-key": {s.Cfg.SemanticScholarAPIKey}}
	}

	var sr semanticResponse
	if err := getJSON(ctx, s.Client, s.Cfg, semanticAPIBase+"?"+params.Encode(), header, &sr); err != nil {
		return nil, fmt.Errorf("Semantic Scholar API: %w", err)
	}

	papers := sr.Data
	if len(papers) > limit(s.Cfg) {
		papers = papers[:limit(s.Cfg)]
	}

	records := make([]types.CandidateRecord, 0, len(papers))
	for _, paper := range papers {
		r := types.CandidateRecord{
			Title:  paper.Title,
			DOI:    paper.ExternalIDs.DOI,
			Source: s.Name(),
		}
		for _, a := range paper.Authors {
			r.Authors = append(r.Authors, a.Name)
		}
		records = append(records, r)
	}
	return records, nil
}

// Semantic Scholar API JSON structures.
type semanticResponse struct {
	Total  int             `json:"total"`
	Offset int             `json:"offset"`
	Data   []semanticPaper `json:"data"`
}

type semanticPaper struct {
	PaperID     string              `json:"paperId"`
	Title       string              `json:"title"`
	Authors     []semanticAuthor    `json:"authors"`
	ExternalIDs semanticExternalIDs `json:"externalIds"`
}

type semanticAuthor struct {
	AuthorID string `json:"authorId"`
	Name     string `json:"name"`
}

type semanticExternalIDs struct {
	DOI      string `json:"DOI"`
	ArXiv    string `json:"ArXiv"`
	CorpusID int    `json:"CorpusId"`
}
