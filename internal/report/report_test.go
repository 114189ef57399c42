// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/scholar-verify/internal/store"
	"github.com/pdiddy/scholar-verify/pkg/types"
)

func sampleResults() []types.VerificationResult {
	return []types.VerificationResult{
		{
			ClaimedTitle:         "Deep Learning, for X",
			MatchedTitle:         "Deep learning for X",
			MatchedSource:        "Crossref",
			DOI:                  "10.1/abc",
			ConfidenceScore:      95.1,
			Classification:       types.Authentic,
			VerificationStrength: types.StrengthStrong,
			Reason:               "Automated bibliographic verification",
		},
		{
			ClaimedTitle:         "Unpublished Notes",
			MatchedSource:        "Google Scholar only",
			ConfidenceScore:      85,
			Classification:       types.ScholarClaimed,
			VerificationStrength: types.StrengthBasic,
			Reason:               "No external bibliographic record found",
		},
	}
}

func TestBaseName(t *testing.T) {
	tests := []struct{ name, want string }{
		{"Jane Smith", "verification_report_jane_smith"},
		{"  José  O'Neil-Díaz ", "verification_report_josé_o_neil_díaz"},
		{"A.B.", "verification_report_a_b"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, BaseName(tt.name), tt.name)
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, sampleResults()))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, Columns, records[0])
	assert.Equal(t, []string{
		"Deep Learning, for X", "Deep learning for X", "Crossref", "10.1/abc",
		"95.1", "AUTHENTIC", "Strong (ORCID + DOI)", "Automated bibliographic verification",
	}, records[1])
	assert.Equal(t, "85", records[2][4])
	assert.Equal(t, "", records[2][1])
}

func TestWriteCSV_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, nil))
	assert.Equal(t, strings.Join(Columns, ",")+"\n", buf.String())
}

func TestFormatScore(t *testing.T) {
	assert.Equal(t, "66.67", FormatScore(66.67))
	assert.Equal(t, "100", FormatScore(100))
	assert.Equal(t, "0", FormatScore(0))
}

func TestSave(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	doc := Document{
		Author:      "Jane Smith",
		Profile:     "qc6CJjYAAAAJ",
		Source:      "Google Scholar",
		SelfCheck:   true,
		GeneratedAt: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		Summary:     DocumentSummary{Total: 2, Authentic: 1, AuthenticPercent: 50},
		Results:     sampleResults(),
	}

	paths, err := Save(dir, doc, true)
	require.NoError(t, err)
	require.Equal(t, []string{
		filepath.Join(dir, "verification_report_jane_smith.csv"),
		filepath.Join(dir, "verification_report_jane_smith.yaml"),
	}, paths)

	data, err := os.ReadFile(paths[1])
	require.NoError(t, err)
	var got Document
	require.NoError(t, yaml.Unmarshal(data, &got))
	assert.Equal(t, doc.Author, got.Author)
	assert.True(t, got.SelfCheck)
	assert.Equal(t, 50.0, got.Summary.AuthenticPercent)
	require.Len(t, got.Results, 2)
	assert.Equal(t, types.ScholarClaimed, got.Results[1].Classification)
	assert.Contains(t, string(data), "claimed_title: Deep Learning, for X")

	_, err = os.Stat(paths[0] + ".tmp")
	assert.True(t, os.IsNotExist(err))
}

func TestSave_CSVOnly(t *testing.T) {
	dir := t.TempDir()
	paths, err := Save(dir, Document{Author: "Jane Smith", Results: sampleResults()}, false)
	require.NoError(t, err)
	assert.Len(t, paths, 1)
}

func TestSummaryTable(t *testing.T) {
	out := SummaryTable(sampleResults())
	assert.Contains(t, out, "AUTHENTIC")
	assert.Contains(t, out, "LIKELY MISATTRIBUTED")
	assert.Contains(t, out, "50.0%")

	assert.Contains(t, SummaryTable(nil), "0%")
}

func TestCandidatesTable(t *testing.T) {
	out := CandidatesTable([]types.CandidateRecord{
		{Title: strings.Repeat("x", 80), Authors: []string{"A One", "B Two"}, DOI: "10.1/z", Source: "Crossref"},
	})
	assert.Contains(t, out, "Crossref")
	assert.Contains(t, out, "A One; B Two")
	assert.Contains(t, out, strings.Repeat("x", 59)+"…")
}

func TestRunsTable(t *testing.T) {
	out := RunsTable([]store.Run{{
		ID: "run-1", Profile: "p", Author: "Jane", SelfCheck: true,
		StartedAt: time.Now(), Results: 4, Authentic: 1,
	}})
	assert.Contains(t, out, "run-1")
	assert.Contains(t, out, "1 (25.0%)")
	assert.Contains(t, out, "yes")
}
