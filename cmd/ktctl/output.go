package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/okian/ktready/internal/domain/readiness"
	"github.com/okian/ktready/internal/domain/types"
)

// Output formats.
const (
	outputTable = "table"
	outputJSON  = "json"
)

// table writes tab-aligned rows.
type table struct {
	w *tabwriter.Writer
}

func (t *table) row(cells ...interface{}) {
	parts := make([]string, len(cells))
	for i, c := range cells {
		parts[i] = fmt.Sprint(c)
	}
	fmt.Fprintln(t.w, strings.Join(parts, "\t"))
}

func (t *table) blank() { fmt.Fprintln(t.w) }

// render prints v as indented JSON, or as a table built by fill.
func render(out io.Writer, format string, v interface{}, fill func(*table)) error {
	if format == outputJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	t := &table{w: tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)}
	fill(t)
	return t.w.Flush()
}

func writeRecords(t *table, records []readiness.Record) {
	t.row("TEAM", "COUNTRY", "PROGRESS", "PENDING")
	for _, r := range records {
		pending := strings.Join(r.Pending, ", ")
		if pending == "" {
			pending = "-"
		}
		t.row(r.Team, r.Country, fmt.Sprintf("%d%%", r.Progress), pending)
	}
}

func writeReport(t *table, r types.Report) {
	scope := readiness.Region.String()
	if !r.Focus.IsRegion() {
		scope = r.Focus.Country
	}
	s := r.Summary
	t.row("SCOPE", "RECORDS", "MEAN", "MOST COMMON GAP", "REGIONS")
	gap := s.MostCommonGap
	if gap == "" {
		gap = "-"
	}
	t.row(scope, s.Records, fmt.Sprintf("%.1f%%", s.MeanProgress), gap, s.ActiveRegions)
	if len(s.Gaps) > 0 {
		t.blank()
		t.row("TASK", "PENDING", "SHARE")
		for _, g := range s.Gaps {
			t.row(g.Task, g.Count, fmt.Sprintf("%.0f%%", g.Share*100))
		}
	}
	writeAverages(t, "TEAM", r.TeamAverages)
	writeAverages(t, "COUNTRY", r.CountryAverages)
}

func writeAverages(t *table, label string, groups []readiness.GroupAverage) {
	if len(groups) == 0 {
		return
	}
	t.blank()
	t.row(label, "RECORDS", "MEAN")
	for _, g := range groups {
		t.row(g.Name, g.Records, fmt.Sprintf("%.1f%%", g.MeanProgress))
	}
}

func writeTeams(t *table, v types.TeamsView) {
	t.row("TEAM", "STATUS")
	for _, n := range v.Transferred {
		t.row(n, "transferred")
	}
	for _, n := range v.Pending {
		t.row(n, "pending")
	}
}
