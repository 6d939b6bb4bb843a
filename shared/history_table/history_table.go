// Package historytable renders stored analysis history as terminal tables.
package historytable

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/thirukguru/sg-audit/service/storage"
)

const (
	timeLayout = "2006-01-02 15:04:05"
	hashWidth  = 12
)

func newTable(w io.Writer, header table.Row) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(header)
	t.SetStyle(table.StyleRounded)
	return t
}

// RenderAnalysesTable prints one row per stored analysis.
func RenderAnalysesTable(w io.Writer, analyses []storage.AnalysisSummary) {
	if len(analyses) == 0 {
		fmt.Fprintln(w, "No analyses stored")
		return
	}
	t := newTable(w, table.Row{"ID", "Analyzed At", "Account", "Region", "Flagged", "Unused", "Warnings", "Alerts", "Failed Sources"})
	for _, a := range analyses {
		t.AppendRow(table.Row{
			a.AnalysisID, a.AnalyzedAt.Local().Format(timeLayout), a.AccountID, a.Region,
			a.FlaggedGroups, a.UnusedCount, a.WarningCount, a.AlertCount, a.FailedSources,
		})
	}
	t.Render()
}

// RenderFindingsTable prints the findings recorded by one analysis.
func RenderFindingsTable(w io.Writer, findings []storage.FindingSnapshot) {
	if len(findings) == 0 {
		fmt.Fprintln(w, "No findings recorded")
		return
	}
	t := newTable(w, table.Row{"Hash", "Severity", "Kind", "Group ID", "CIDR", "Ports", "Status"})
	for _, f := range findings {
		t.AppendRow(table.Row{ShortHash(f.FindingHash), f.Severity, f.Kind, f.GroupID, f.Cidr, f.Ports, f.Status})
	}
	t.Render()
}

// RenderLifecycleTable prints the status of one finding across analyses.
func RenderLifecycleTable(w io.Writer, events []storage.FindingLifecycleEvent) {
	if len(events) == 0 {
		fmt.Fprintln(w, "Finding not found")
		return
	}
	t := newTable(w, table.Row{"Analysis", "Analyzed At", "Status", "Severity", "Kind", "Group ID"})
	for _, e := range events {
		t.AppendRow(table.Row{e.AnalysisID, e.AnalyzedAt.Local().Format(timeLayout), e.Status, e.Severity, e.Kind, e.GroupID})
	}
	t.Render()
}

// RenderTrendTable prints daily finding counts.
func RenderTrendTable(w io.Writer, points []storage.TrendPoint) {
	t := newTable(w, table.Row{"Account", "Region", "Date", "Unused", "Warnings", "Alerts"})
	for _, p := range points {
		t.AppendRow(table.Row{p.AccountID, p.Region, p.Date, p.Unused, p.Warnings, p.Alerts})
	}
	t.Render()
}

// RenderComparisonTable prints the finding delta between two analyses.
func RenderComparisonTable(w io.Writer, cmp *storage.AnalysisComparison) {
	if cmp == nil {
		fmt.Fprintln(w, "No comparison data available")
		return
	}
	fmt.Fprintf(w, "\nAnalysis Comparison (%d -> %d)\n", cmp.AnalysisID1, cmp.AnalysisID2)
	t := newTable(w, table.Row{"New", "Resolved", "Persistent"})
	t.AppendRow(table.Row{cmp.NewFindings, cmp.Resolved, cmp.Persistent})
	t.Render()

	for _, h := range cmp.NewHashes {
		fmt.Fprintf(w, "  + %s\n", ShortHash(h))
	}
	for _, h := range cmp.ResolvedHashes {
		fmt.Fprintf(w, "  - %s\n", ShortHash(h))
	}
}

// ShortHash abbreviates a finding hash for display. history finding accepts
// the abbreviated form.
func ShortHash(h string) string {
	if len(h) <= hashWidth {
		return h
	}
	return h[:hashWidth]
}
