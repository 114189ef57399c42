// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package sources

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/pdiddy/scholar-verify/pkg/types"
)

// crossrefAPIBase is the Crossref works endpoint. Declared as a var so
// tests can substitute an httptest server.
var crossrefAPIBase = "https://api.crossref.org/works"

// Crossref queries the Crossref works API by title. It is the only default
// source that reports author ORCID iDs.
type Crossref struct {
	Client *http.Client
	Cfg    types.LookupConfig
}

// Name returns the source label written to reports.
func (c *Crossref) Name() string { return "Crossref" }

// Lookup searches Crossref for works whose title matches title.
func (c *Crossref) Lookup(ctx context.Context, title string) ([]types.CandidateRecord, error) {
	params := url.Values{
		"query.title": {title},
		"rows":        {strconv.Itoa(limit(c.Cfg))},
	}
	if c.Cfg.CrossrefMailto != "" {
		params.Set("mailto", c.Cfg.CrossrefMailto)
	}

	var cr crossrefResponse
	if err := getJSON(ctx, c.Client, c.Cfg, crossrefAPIBase+"?"+params.Encode(), nil, &cr); err != nil {
		return nil, fmt.Errorf("Crossref API: %w", err)
	}

	items := cr.Message.Items
	if len(items) > limit(c.Cfg) {
		items = items[:limit(c.Cfg)]
	}

	records := make([]types.CandidateRecord, 0, len(items))
	for _, item := range items {
		r := types.CandidateRecord{
			DOI:    item.DOI,
			Source: c.Name(),
		}
		if len(item.Title) > 0 {
			r.Title = item.Title[0]
		}
		for _, a := range item.Author {
			if name := strings.TrimSpace(a.Given + " " + a.Family); name != "" {
				r.Authors = append(r.Authors, name)
			}
			if a.ORCID != "" {
				r.ORCIDs = append(r.ORCIDs, a.ORCID)
			}
		}
		records = append(records, r)
	}
	return records, nil
}

// Crossref API JSON structures.
type crossrefResponse struct {
	Status  string          `json:"status"`
	Message crossrefMessage `json:"message"`
}

type crossrefMessage struct {
	TotalResults int            `json:"total-results"`
	Items        []crossrefItem `json:"items"`
}

type crossrefItem struct {
	DOI    string           `json:"DOI"`
	Title  []string         `json:"title"`
	Author []crossrefAuthor `json:"author"`
}

type crossrefAuthor struct {
	Given  string `json:"given"`
	Family string `json:"family"`
	ORCID  string `json:"ORCID"`
}
