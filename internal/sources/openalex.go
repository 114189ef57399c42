// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package sources

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/pdiddy/scholar-verify/internal/ident"
	"github.com/pdiddy/scholar-verify/pkg/types"
)

// openAlexSearchBase is the OpenAlex works search endpoint. Declared as a
// var so tests can substitute an httptest server.
var openAlexSearchBase = "https://api.openalex.org/works"

const openAlexSelect = "id,title,doi,authorships"

// OpenAlex queries the OpenAlex works API by title. Like Crossref it
// reports author ORCID iDs.
type OpenAlex struct {
	Client *http.Client
	Cfg    types.LookupConfig
}

// Name returns the source label written to reports.
func (o *OpenAlex) Name() string { return "OpenAlex" }

// Lookup searches OpenAlex for works whose title matches title.
func (o *OpenAlex) Lookup(ctx context.Context, title string) ([]types.CandidateRecord, error) {
	params := url.Values{
		"search":   {title},
		"per_page": {strconv.Itoa(limit(o.Cfg))},
		"select":   {openAlexSelect},
	}
	if o.Cfg.OpenAlexEmail != "" {
		params.Set("mailto", o.Cfg.OpenAlexEmail)
	}

	var oar openAlexResponse
	if err := getJSON(ctx, o.Client, o.Cfg, openAlexSearchBase+"?"+params.Encode(), nil, &oar); err != nil {
		return nil, fmt.Errorf("OpenAlex API: %w", err)
	}

	works := oar.Results
	if len(works) > limit(o.Cfg) {
		works = works[:limit(o.Cfg)]
	}

	records := make([]types.CandidateRecord, 0, len(works))
	for _, work := range works {
		records = append(records, work.candidate(o.Name()))
	}
	return records, nil
}

func (w openAlexWork) candidate(source string) types.CandidateRecord {
	r := types.CandidateRecord{
		Title:  w.Title,
		DOI:    ident.BareDOI(w.DOI),
		Source: source,
	}
	for _, a := range w.Authorships {
		if a.Author.DisplayName != "" {
			r.Authors = append(r.Authors, a.Author.DisplayName)
		}
		if a.Author.ORCID != "" {
			r.ORCIDs = append(r.ORCIDs, a.Author.ORCID)
		}
	}
	return r
}

// OpenAlex API JSON structures.
type openAlexResponse struct {
	Meta    openAlexMeta   `json:"meta"`
	Results []openAlexWork `json:"results"`
}

type openAlexMeta struct {
	Count      int    `json:"count"`
	PerPage    int    `json:"per_page"`
	NextCursor string `json:"next_cursor"`
}

type openAlexWork struct {
	ID          string               `json:"id"`
	Title       string               `json:"title"`
	DOI         string               `json:"doi"`
	Authorships []openAlexAuthorship `json:"authorships"`
}

type openAlexAuthorship struct {
	Author openAlexAuthor `json:"author"`
}

type openAlexAuthor struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	ORCID       string `json:"orcid"`
}
