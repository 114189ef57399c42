// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package sources queries independent bibliographic databases for records
// that may match a claimed publication title.
//
// Each adapter reports failures as errors so they stay visible to logging,
// but Lookup collapses every failure to an empty result: verification
// degrades to "no corroboration found" instead of aborting a batch.
package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/pdiddy/scholar-verify/internal/httputil"
	"github.com/pdiddy/scholar-verify/pkg/types"
)

// MaxCandidates is the most records any adapter returns for one title.
const MaxCandidates = 3

// Source looks up candidate records for a title in one bibliographic
// database. Records come back in the database's relevance order.
type Source interface {
	Name() string
	Lookup(ctx context.Context, title string) ([]types.CandidateRecord, error)
}

// New returns the enabled adapters in their fixed order: Crossref, Semantic
// Scholar, then OpenAlex.
func New(client *http.Client, cfg types.LookupConfig) []Source {
	var srcs []Source
	if cfg.EnableCrossref {
		srcs = append(srcs, &Crossref{Client: client, Cfg: cfg})
	}
	if cfg.EnableSemanticScholar {
		srcs = append(srcs, &SemanticScholar{Client: client, Cfg: cfg})
	}
	if cfg.EnableOpenAlex {
		srcs = append(srcs, &OpenAlex{Client: client, Cfg: cfg})
	}
	return srcs
}

// Lookup queries every source in order and concatenates their records.
// A failing source is logged and contributes nothing.
func Lookup(ctx context.Context, srcs []Source, title string, logger *slog.Logger) []types.CandidateRecord {
	var pool []types.CandidateRecord
	for _, src := range srcs {
		records, err := src.Lookup(ctx, title)
		if err != nil {
			logger.WarnContext(ctx, "lookup failed, treating as no results",
				"source", src.Name(), "title", title, "error", err)
			continue
		}
		logger.DebugContext(ctx, "lookup complete", "source", src.Name(), "candidates", len(records))
		pool = append(pool, records...)
	}
	return pool
}

// limit returns the per-source record bound: cfg.MaxCandidates clamped to
// [1, MaxCandidates], with MaxCandidates as the default.
func limit(cfg types.LookupConfig) int {
	if cfg.MaxCandidates <= 0 || cfg.MaxCandidates > MaxCandidates {
		return MaxCandidates
	}
	return cfg.MaxCandidates
}

// getJSON issues a GET request and decodes a 200 response into out. Any
// other status is an error.
func getJSON(ctx context.Context, client *http.Client, cfg types.LookupConfig, reqURL string, header http.Header, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	if cfg.UserAgent != "" {
		req.Header.Set("User-Agent", cfg.UserAgent)
	}
	req.Header.Set("Accept", "application/json")
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}

	resp, err := httputil.DoWithRetry(ctx, client, req, cfg.RateLimitRetries)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("HTTP %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("parsing response: %w", err)
	}
	return nil
}
