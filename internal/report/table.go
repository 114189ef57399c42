// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/pdiddy/scholar-verify/internal/store"
	"github.com/pdiddy/scholar-verify/pkg/types"
)

// classOrder lists classifications strongest first.
var classOrder = []types.Classification{
	types.Authentic,
	types.LikelyAuthentic,
	types.ScholarClaimed,
	types.LikelyMisattributed,
}

func newTable() table.Writer {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	return tw
}

func rightAligned(cols ...int) []table.ColumnConfig {
	cfgs := make([]table.ColumnConfig, 0, len(cols))
	for _, c := range cols {
		cfgs = append(cfgs, table.ColumnConfig{Number: c, Align: text.AlignRight, AlignHeader: text.AlignLeft})
	}
	return cfgs
}

// SummaryTable counts results per classification.
func SummaryTable(results []types.VerificationResult) string {
	counts := make(map[types.Classification]int)
	for _, r := range results {
		counts[r.Classification]++
	}

	tw := newTable()
	tw.AppendHeader(table.Row{"Classification", "Count", "Share"})
	for _, c := range classOrder {
		tw.AppendRow(table.Row{string(c), counts[c], share(counts[c], len(results))})
	}
	tw.AppendFooter(table.Row{"Total", len(results), ""})
	tw.SetColumnConfigs(rightAligned(2, 3))
	return tw.Render()
}

func share(n, total int) string {
	if total == 0 {
		return "0%"
	}
	return strconv.FormatFloat(float64(n)/float64(total)*100, 'f', 1, 64) + "%"
}

// CandidatesTable lists candidate records returned by the sources.
func CandidatesTable(cands []types.CandidateRecord) string {
	tw := newTable()
	tw.AppendHeader(table.Row{"#", "Source", "Title", "Authors", "DOI"})
	for i, c := range cands {
		tw.AppendRow(table.Row{i + 1, c.Source, clip(c.Title, 60), clip(strings.Join(c.Authors, "; "), 40), c.DOI})
	}
	tw.SetColumnConfigs(rightAligned(1))
	return tw.Render()
}

// RunsTable lists stored runs for the history command.
func RunsTable(runs []store.Run) string {
	tw := newTable()
	tw.AppendHeader(table.Row{"Started", "Author", "Profile", "Self-check", "Results", "Authentic", "Run ID"})
	for _, r := range runs {
		self := ""
		if r.SelfCheck {
			self = "yes"
		}
		tw.AppendRow(table.Row{
			r.StartedAt.Local().Format("2006-01-02 15:04"),
			r.Author,
			r.Profile,
			self,
			r.Results,
			fmt.Sprintf("%d (%s)", r.Authentic, share(r.Authentic, r.Results)),
			r.ID,
		})
	}
	tw.SetColumnConfigs(rightAligned(5, 6))
	return tw.Render()
}

func clip(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
