// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package profile fetches the publications claimed on an author's profile.
// A profile reference is a local file of titles, an ORCID iD or OpenAlex
// author ID (resolved through OpenAlex), or a Google Scholar user ID.
package profile

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"regexp"
	"strings"

	"github.com/pdiddy/scholar-verify/internal/ident"
	"github.com/pdiddy/scholar-verify/pkg/types"
)

// ErrUnknownProfile is returned by Open for references it cannot resolve.
var ErrUnknownProfile = errors.New("unrecognized profile reference")

// Source lists the publications claimed on one profile.
type Source interface {
	// Label names the profile service for reports (e.g. "Google Scholar").
	Label() string

	// Publications returns the claimed publications in profile order.
	Publications(ctx context.Context) ([]types.ClaimedPublication, error)
}

// scholarIDPattern matches Google Scholar user IDs ("qc6CJjYAAAAJ").
var scholarIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{12}$`)

// Open resolves ref to a profile source. An existing file wins over every
// identifier interpretation.
func Open(ref string, client *http.Client, cfg types.LookupConfig) (Source, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, fmt.Errorf("%w: empty reference", ErrUnknownProfile)
	}

	if info, err := os.Stat(ref); err == nil && !info.IsDir() {
		return &File{Path: ref}, nil
	}

	switch kind, id := ident.Classify(ref); kind {
	case ident.KindORCID:
		return &OpenAlexAuthor{Client: client, Cfg: cfg, ORCID: id}, nil
	case ident.KindOpenAlexAuthor:
		return &OpenAlexAuthor{Client: client, Cfg: cfg, AuthorID: id}, nil
	}

	if id := scholarUserID(ref); id != "" {
		return &Scholar{Client: client, Cfg: cfg, UserID: id}, nil
	}
	return nil, fmt.Errorf("%w: %q (expected a file, ORCID iD, OpenAlex author ID, or Google Scholar ID)", ErrUnknownProfile, ref)
}

// keepTitled drops publications without a title.
func keepTitled(pubs []types.ClaimedPublication) []types.ClaimedPublication {
	out := pubs[:0]
	for _, p := range pubs {
		p.Title = strings.TrimSpace(p.Title)
		if p.Title != "" {
			out = append(out, p)
		}
	}
	return out
}
