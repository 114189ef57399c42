// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package sources

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const semanticSample = `{
  "total": 2,
  "offset": 0,
  "data": [
    {
      "paperId": "649def34f8be52c8b66281af98ae884c09aef38b",
      "title": "Attention Is All You Need",
      "authors": [{"authorId": "40348417", "name": "Ashish Vaswani"}, {"authorId": "1846258", "name": "Noam M. Shazeer"}],
      "externalIds": {"DOI": "10.48550/arXiv.1706.03762", "ArXiv": "1706.03762", "CorpusId": 13756489}
    },
    {
      "paperId": "abc",
      "title": "Attention Is Not All You Need",
      "authors": [],
      "externalIds": null
    }
  ]
}`

func TestSemanticLookupMapsRecords(t *testing.T) {
	withServer(t, &semanticAPIBase, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, semanticSample)
	})

	s := &SemanticScholar{Client: http.DefaultClient, Cfg: testCfg()}
	records, err := s.Lookup(context.Background(), "attention is all you need")
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "Attention Is All You Need", records[0].Title)
	assert.Equal(t, []string{"Ashish Vaswani", "Noam M. Shazeer"}, records[0].Authors)
	assert.Equal(t, "10.48550/arXiv.1706.03762", records[0].DOI)
	assert.Empty(t, records[0].ORCIDs)
	assert.Equal(t, "SemanticScholar", records[0].Source)

	assert.False(t, records[1].HasDOI())
}

func TestSemanticRequestParams(t *testing.T) {
	var captured *http.Request
	withServer(t, &semanticAPIBase, func(w http.ResponseWriter, r *http.Request) {
		captured = r
		fmt.Fprint(w, `{"total":0,"offset":0,"data":[]}`)
	})

	cfg := testCfg()
	cfg.MaxCandidates = 2
	s := &SemanticScholar{Client: http.DefaultClient, Cfg: cfg}
	_, err := s.Lookup(context.Background(), "graph neural networks")
	require.NoError(t, err)

	q := captured.URL.Query()
	assert.Equal(t, "graph neural networks", q.Get("query"))
	assert.Equal(t, "2", q.Get("limit"))
	for _, f := range []string{"title", "authors", "externalIds"} {
		assert.True(t, strings.Contains(q.Get("fields"), f), "fields %q missing %q", q.Get("fields"), f)
	}
}

func TestSemanticAPIKeyHeader(t *testing.T) {
	tests := []struct {
		name   string
		apiKey string
	}{
		{"with API key", "test-key-123"},
		{"without API key", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got string
			withServer(t, &semanticAPIBase, func(w http.ResponseWriter, r *http.Request) {
				got = r.Header.Get("x-api-key")
				fmt.Fprint(w, `{"data":[]}`)
			})

			cfg := testCfg()
			cfg.SemanticScholarAPIKey = tt.apiKey
			s := &SemanticScholar{Client: http.DefaultClient, Cfg: cfg}
			_, err := s.Lookup(context.Background(), "x")
			require.NoError(t, err)
			assert.Equal(t, tt.apiKey, got)
		})
	}
}

func TestSemanticFailures(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"rate limited without retries", http.StatusTooManyRequests, ""},
		{"forbidden", http.StatusForbidden, `{"message":"Forbidden"}`},
		{"truncated body", http.StatusOK, `{"data":[{"title":`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			withServer(t, &semanticAPIBase, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				fmt.Fprint(w, tt.body)
			})
			s := &SemanticScholar{Client: http.DefaultClient, Cfg: testCfg()}
			records, err := s.Lookup(context.Background(), "x")
			assert.Error(t, err)
			assert.Empty(t, records)
		})
	}
}

func TestSemanticUnreachable(t *testing.T) {
	ts := withServer(t, &semanticAPIBase, func(w http.ResponseWriter, r *http.Request) {})
	ts.Close()

	s := &SemanticScholar{Client: http.DefaultClient, Cfg: testCfg()}
	records, err := s.Lookup(context.Background(), "x")
	assert.Error(t, err)
	assert.Empty(t, records)
}
