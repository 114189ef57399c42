// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package profile

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/pdiddy/scholar-verify/internal/httputil"
	"github.com/pdiddy/scholar-verify/pkg/types"
)

// openAlexWorksBase is the OpenAlex works endpoint. Declared as a var so
// tests can substitute an httptest server.
var openAlexWorksBase = "https://api.openalex.org/works"

const (
	openAlexPageSize = 200
	openAlexMaxPages = 50
)

// OpenAlexAuthor lists the works OpenAlex attributes to an author, selected
// by OpenAlex author ID or by ORCID iD. Set exactly one of the two.
type OpenAlexAuthor struct {
	Client   *http.Client
	Cfg      types.LookupConfig
	AuthorID string
	ORCID    string
}

// Label names the profile service.
func (o *OpenAlexAuthor) Label() string { return "OpenAlex" }

// Publications pages through the author's works with OpenAlex cursor
// paging.
func (o *OpenAlexAuthor) Publications(ctx context.Context) ([]types.ClaimedPublication, error) {
	filter, err := o.filter()
	if err != nil {
		return nil, err
	}

	var pubs []types.ClaimedPublication
	cursor := "*"
	for page := 0; cursor != "" && page < openAlexMaxPages; page++ {
		params := url.Values{
			"filter":   {filter},
			"per_page": {fmt.Sprintf("%d", openAlexPageSize)},
			"cursor":   {cursor},
			"select":   {"id,title"},
		}
		if o.Cfg.OpenAlexEmail != "" {
			params.Set("mailto", o.Cfg.OpenAlexEmail)
		}

		works, next, err := o.fetchPage(ctx, openAlexWorksBase+"?"+params.Encode())
		if err != nil {
			return nil, err
		}
		for _, w := range works {
			pubs = append(pubs, types.ClaimedPublication{Title: w.Title})
		}
		if len(works) == 0 {
			break
		}
		cursor = next
	}
	return keepTitled(pubs), nil
}

func (o *OpenAlexAuthor) filter() (string, error) {
	switch {
	case o.AuthorID != "":
		return "author.id:" + o.AuthorID, nil
	case o.ORCID != "":
		return "author.orcid:https://orcid.org/" + o.ORCID, nil
	default:
		return "", fmt.Errorf("OpenAlex profile needs an author ID or ORCID iD")
	}
}

func (o *OpenAlexAuthor) fetchPage(ctx context.Context, reqURL string) ([]openAlexWork, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, "", fmt.Errorf("creating request: %w", err)
	}
	if o.Cfg.UserAgent != "" {
		req.Header.Set("User-Agent", o.Cfg.UserAgent)
	}

	resp, err := httputil.DoWithRetry(ctx, o.Client, req, o.Cfg.RateLimitRetries)
	if err != nil {
		return nil, "", fmt.Errorf("OpenAlex API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("OpenAlex API returned HTTP %d", resp.StatusCode)
	}

	var oar openAlexResponse
	if err := json.NewDecoder(resp.Body).Decode(&oar); err != nil {
		return nil, "", fmt.Errorf("parsing OpenAlex response: %w", err)
	}
	return oar.Results, oar.Meta.NextCursor, nil
}

// OpenAlex API JSON structures.
type openAlexResponse struct {
	Meta    openAlexMeta   `json:"meta"`
	Results []openAlexWork `json:"results"`
}

type openAlexMeta struct {
	Count      int    `json:"count"`
	NextCursor string `json:"next_cursor"`
}

type openAlexWork struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}
