// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package profile

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"golang.org/x/net/html"

	"github.com/pdiddy/scholar-verify/internal/httputil"
	"github.com/pdiddy/scholar-verify/pkg/types"
)

// scholarCitationsBase is the Google Scholar profile page. Declared as a
// var so tests can substitute an httptest server.
var scholarCitationsBase = "https://scholar.google.com/citations"

const (
	scholarPageSize = 100
	scholarMaxPages = 20
)

// Scholar scrapes the publication list of a public Google Scholar profile.
type Scholar struct {
	Client *http.Client
	Cfg    types.LookupConfig
	UserID string
}

// Label names the profile service.
func (s *Scholar) Label() string { return "Google Scholar" }

// Publications pages through the profile's article table until a page
// comes back short.
func (s *Scholar) Publications(ctx context.Context) ([]types.ClaimedPublication, error) {
	var pubs []types.ClaimedPublication
	for page := 0; page < scholarMaxPages; page++ {
		params := url.Values{
			"user":     {s.UserID},
			"hl":       {"en"},
			"cstart":   {fmt.Sprintf("%d", page*scholarPageSize)},
			"pagesize": {fmt.Sprintf("%d", scholarPageSize)},
		}
		titles, err := s.fetchPage(ctx, scholarCitationsBase+"?"+params.Encode())
		if err != nil {
			return nil, err
		}
		for _, t := range titles {
			pubs = append(pubs, types.ClaimedPublication{Title: t})
		}
		if len(titles) < scholarPageSize {
			break
		}
	}
	return keepTitled(pubs), nil
}

func (s *Scholar) fetchPage(ctx context.Context, reqURL string) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	if s.Cfg.UserAgent != "" {
		req.Header.Set("User-Agent", s.Cfg.UserAgent)
	}

	resp, err := httputil.DoWithRetry(ctx, s.Client, req, s.Cfg.RateLimitRetries)
	if err != nil {
		return nil, fmt.Errorf("Google Scholar request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("Google Scholar returned HTTP %d for user %s", resp.StatusCode, s.UserID)
	}
	return parseScholarTitles(resp.Body)
}

// parseScholarTitles extracts the text of every article title link
// (<a class="gsc_a_at">) in a profile page.
func parseScholarTitles(r io.Reader) ([]string, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing Google Scholar page: %w", err)
	}

	var titles []string
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "a" && hasClass(n, "gsc_a_at") {
			if t := strings.TrimSpace(nodeText(n)); t != "" {
				titles = append(titles, t)
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return titles, nil
}

func hasClass(n *html.Node, class string) bool {
	for _, a := range n.Attr {
		if a.Key != "class" {
			continue
		}
		for _, c := range strings.Fields(a.Val) {
			if c == class {
				return true
			}
		}
	}
	return false
}

func nodeText(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.Join(strings.Fields(b.String()), " ")
}

// scholarUserID extracts a Google Scholar user ID from a bare ID or a
// profile URL ("https://scholar.google.com/citations?user=qc6CJjYAAAAJ&hl=en").
// It returns "" when ref is neither.
func scholarUserID(ref string) string {
	if scholarIDPattern.MatchString(ref) {
		return ref
	}
	u, err := url.Parse(ref)
	if err != nil || !strings.Contains(u.Host, "scholar.google.") {
		return ""
	}
	if id := u.Query().Get("user"); scholarIDPattern.MatchString(id) {
		return id
	}
	return ""
}
