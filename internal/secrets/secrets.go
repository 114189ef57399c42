// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets loads lookup credentials from a directory of plain-text
// files. The filename is the key and the trimmed contents are the value.
//
// Recognized keys: semantic-scholar-api-key, crossref-mailto, openalex-email.
package secrets

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/scholar-verify/pkg/types"
)

// Key names understood by Apply.
const (
	SemanticScholarAPIKey = "semantic-scholar-api-key"
	CrossrefMailto        = "crossref-mailto"
	OpenAlexEmail         = "openalex-email"
)

// Set is a loaded secrets directory.
type Set map[string]string

// Load reads every regular, non-hidden file in dir. A missing directory
// yields an empty Set. Files that cannot be read are logged and skipped.
func Load(dir string, logger *slog.Logger) (Set, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return Set{}, nil
		}
		return nil, fmt.Errorf("reading secrets directory %s: %w", dir, err)
	}

	set := make(Set)
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, ".") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			if logger != nil {
				logger.Warn("skipping unreadable secret", "name", name, "error", err)
			}
			continue
		}
		if value := strings.TrimSpace(string(data)); value != "" {
			set[name] = value
		}
	}
	return set, nil
}

// Apply copies recognized secrets into cfg. Values already set in cfg (from
// flags, environment, or the config file) take precedence.
func (s Set) Apply(cfg *types.LookupConfig) {
	fill := func(dst *string, key string) {
		if *dst == "" {
			*dst = s[key]
		}
	}
	fill(&cfg.SemanticScholarAPIKey, SemanticScholarAPIKey)
	fill(&cfg.CrossrefMailto, CrossrefMailto)
	fill(&cfg.OpenAlexEmail, OpenAlexEmail)
}
