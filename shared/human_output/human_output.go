// Package humanoutput renders an analysis report for a terminal.
package humanoutput

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/thirukguru/sg-audit/model"
)

const (
	headerTitle = "SG-AUDIT Analysis"
	headerWidth = 61

	sectionUnused = "01. UNUSED SECURITY GROUPS"
	sectionUnsafe = "02. SECURITY GROUPS WITH UNSAFE INGRESS RULES"

	humanTime = "Mon, 02 Jan 2006 15:04:05 MST"
)

// Draw writes the full human report to w.
func Draw(w io.Writer, report model.AnalysisReport) {
	drawHeader(w)
	drawMetadata(w, report.Metadata)

	fmt.Fprintln(w)
	fmt.Fprintln(w, section(sectionUnused))
	drawUnused(w, report.SecurityGroups.UnusedGroups)

	fmt.Fprintln(w)
	fmt.Fprintln(w, section(sectionUnsafe))
	drawUnsafe(w, report.SecurityGroups)
}

func drawHeader(w io.Writer) {
	rule := strings.Repeat("=", headerWidth)
	pad := strings.Repeat(" ", (headerWidth-len(headerTitle))/2)

	style := text.Colors{text.Bold, text.FgHiGreen}
	fmt.Fprintln(w, style.Sprint(rule))
	fmt.Fprintln(w, style.Sprint(pad+headerTitle+pad))
	fmt.Fprintln(w, style.Sprint(rule))
	fmt.Fprintln(w)
}

func drawMetadata(w io.Writer, meta model.Metadata) {
	line := func(label, value string) {
		fmt.Fprintf(w, "%-16s->  %s\n", label, value)
	}

	line("Cloud provider", strings.ToUpper(meta.CloudProvider.Name))
	line("Authentication", meta.CloudProvider.Auth)
	if meta.AccountID != "" {
		line("Account", meta.AccountID)
	}
	if meta.Region != "" {
		line("Region", meta.Region)
	}
	line("Started at", HumanTime(meta.StartedAt))
	line("Finished at", HumanTime(meta.FinishedAt))
	if len(meta.FailedSources) > 0 {
		line("Failed sources", text.FgYellow.Sprint(strings.Join(meta.FailedSources, ", ")))
	}
}

func drawUnused(w io.Writer, unused []model.UnusedGroup) {
	if len(unused) == 0 {
		fmt.Fprintln(w, info("All security groups are attached and being used"))
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"Group ID", "Name", "VPC ID", "Description"})
	for _, g := range unused {
		t.AppendRow(table.Row{
			text.FgMagenta.Sprint(g.GroupID),
			g.GroupName,
			g.VpcID,
			truncate(g.Description, 40),
		})
	}
	t.SetStyle(table.StyleRounded)
	t.Render()

	fmt.Fprintln(w, warning(fmt.Sprintf("%d security groups found not being used", len(unused))))
}

func drawUnsafe(w io.Writer, analysis model.SecurityGroupsAnalysis) {
	if len(analysis.UnsafeGroups) == 0 {
		fmt.Fprintln(w, info("All security groups have safe rules"))
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"Group ID", "Name", "Protocol", "Ports", "Source", "Severity"})
	for _, g := range analysis.UnsafeGroups {
		for _, p := range g.UnsafePorts {
			color := severityColor(p.Severity)
			t.AppendRow(table.Row{
				text.FgMagenta.Sprint(g.GroupID),
				g.GroupName,
				color.Sprint(p.ProtocolLabel()),
				color.Sprint(p.PortRange()),
				color.Sprint(p.CidrIP),
				color.Sprint(strings.ToUpper(string(p.Severity))),
			})
		}
		t.AppendSeparator()
	}
	t.SetStyle(table.StyleRounded)
	t.Render()

	warnings, alerts := analysis.CountBySeverity()
	if warnings > 0 {
		fmt.Fprintln(w, warning(fmt.Sprintf("%d rules found with unknown IPs", warnings)))
	}
	if alerts > 0 {
		fmt.Fprintln(w, alert(fmt.Sprintf("%d rules found with public IPs or all traffic enabled", alerts)))
	}
}

// HumanTime reformats an RFC 3339 timestamp in local time. Unparseable input
// is returned unchanged.
func HumanTime(ts string) string {
	t, err := time.Parse(time.RFC3339, ts)
	if err != nil {
		return ts
	}
	return t.Local().Format(humanTime)
}

func severityColor(s model.Severity) text.Colors {
	if s == model.SeverityAlert {
		return text.Colors{text.Bold, text.FgHiRed}
	}
	return text.Colors{text.Bold, text.FgHiYellow}
}

func section(s string) string {
	return text.Colors{text.Bold, text.FgHiGreen}.Sprint(s)
}

func info(msg string) string {
	return text.FgHiCyan.Sprint("INFO: " + msg)
}

func warning(msg string) string {
	return text.FgYellow.Sprint("WARNING: " + msg)
}

func alert(msg string) string {
	return text.FgHiRed.Sprint("ALERT: " + msg)
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
