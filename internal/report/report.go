// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package report writes verification results: the CSV report file, an
// optional YAML export, and terminal tables.
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/scholar-verify/internal/textmatch"
	"github.com/pdiddy/scholar-verify/pkg/types"
)

// Columns is the fixed CSV header.
var Columns = []string{
	"claimed_title",
	"matched_title",
	"matched_source",
	"doi",
	"confidence_score",
	"classification",
	"verification_strength",
	"reason",
}

// BaseName returns the report file stem for an author:
// "verification_report_" followed by the normalized name with spaces
// replaced by underscores.
func BaseName(authorName string) string {
	return "verification_report_" + strings.ReplaceAll(textmatch.Normalize(authorName), " ", "_")
}

// WriteCSV writes the header and one row per result.
func WriteCSV(w io.Writer, results []types.VerificationResult) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Columns); err != nil {
		return fmt.Errorf("writing CSV header: %w", err)
	}
	for _, r := range results {
		row := []string{
			r.ClaimedTitle,
			r.MatchedTitle,
			r.MatchedSource,
			r.DOI,
			FormatScore(r.ConfidenceScore),
			string(r.Classification),
			string(r.VerificationStrength),
			r.Reason,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing CSV row for %q: %w", r.ClaimedTitle, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// FormatScore renders a confidence score with the fewest digits that
// round-trip (95.1, 85, 66.67).
func FormatScore(score float64) string {
	return strconv.FormatFloat(score, 'f', -1, 64)
}

// Document is the YAML export of a run.
type Document struct {
	Author      string                     `yaml:"author"`
	Profile     string                     `yaml:"profile"`
	Source      string                     `yaml:"source"`
	SelfCheck   bool                       `yaml:"self_check"`
	RunID       string                     `yaml:"run_id,omitempty"`
	GeneratedAt time.Time                  `yaml:"generated_at"`
	Summary     DocumentSummary            `yaml:"summary"`
	Results     []types.VerificationResult `yaml:"results"`
}

// DocumentSummary carries the headline counts.
type DocumentSummary struct {
	Total            int     `yaml:"total"`
	Authentic        int     `yaml:"authentic"`
	AuthenticPercent float64 `yaml:"authentic_percent"`
}

// WriteYAML encodes doc.
func WriteYAML(w io.Writer, doc Document) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(&doc); err != nil {
		return fmt.Errorf("encoding YAML report: %w", err)
	}
	return enc.Close()
}

// Save writes the CSV report, and the YAML export when withYAML is set,
// into dir. It returns the paths written, CSV first.
func Save(dir string, doc Document, withYAML bool) ([]string, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	base := filepath.Join(dir, BaseName(doc.Author))
	csvPath := base + ".csv"
	if err := writeFile(csvPath, func(w io.Writer) error { return WriteCSV(w, doc.Results) }); err != nil {
		return nil, err
	}
	paths := []string{csvPath}

	if withYAML {
		yamlPath := base + ".yaml"
		if err := writeFile(yamlPath, func(w io.Writer) error { return WriteYAML(w, doc) }); err != nil {
			return paths, err
		}
		paths = append(paths, yamlPath)
	}
	return paths, nil
}

// writeFile writes through a temporary file renamed into place on success.
func writeFile(path string, write func(io.Writer) error) error {
	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("closing %s: %w", path, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("renaming %s: %w", path, err)
	}
	return nil
}
