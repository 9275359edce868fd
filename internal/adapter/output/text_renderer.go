// SPDX-FileCopyrightText: 2024-2025 Rafael V. Volkmer <rafael.v.volkmer@gmail.com>
// SPDX-License-Identifier: MIT

package output

import (
	"bytes"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/olekukonko/tablewriter"

	"github.com/rafaelvolkmer/codemetrics/internal/domain/model"
	"github.com/rafaelvolkmer/codemetrics/internal/domain/ports"
)

var (
	styleMain   = lipgloss.NewStyle().Foreground(lipgloss.Color("223"))
	styleMuted  = lipgloss.NewStyle().Foreground(lipgloss.Color("246"))
	styleTitle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("142"))
	styleAccent = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("208"))

	styleGood   = lipgloss.NewStyle().Foreground(lipgloss.Color("108"))
	styleWarn   = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	styleDanger = lipgloss.NewStyle().Foreground(lipgloss.Color("167"))

	styleFile = lipgloss.NewStyle().Foreground(lipgloss.Color("67"))
	styleFunc = lipgloss.NewStyle().Foreground(lipgloss.Color("150"))
)

const maxClassRows = 10

type TextRenderer struct{}

func NewTextRenderer() *TextRenderer {
	return &TextRenderer{}
}

var _ ports.OutputRenderer = (*TextRenderer)(nil)

func (r *TextRenderer) Format() string {
	return "text"
}

func (r *TextRenderer) Render(report *model.ProjectReport) (string, error) {
	var b strings.Builder

	fmt.Fprintf(&b, "%s\n", accent("codemetrics report"))
	fmt.Fprintf(&b, "%s %s\n", label("Root:"), value(report.RootPath))
	fmt.Fprintf(&b, "%s %s\n", label("Generated at:"), value(report.GeneratedAt.Format(time.RFC3339)))
	fmt.Fprintf(&b, "%s %s\n", label("Run:"), value(report.RunID))
	fmt.Fprintf(&b, "%s %s\n", label("Engine:"), value(report.Engine))

	s := report.Summary
	fmt.Fprintf(&b, "\n%s\n", title("== Summary =="))
	fmt.Fprintf(&b, "%s %s\n", label("Files:"), value(fmt.Sprintf("%d", s.TotalFiles)))
	fmt.Fprintf(&b, "%s %s\n", label("Packages:"), value(fmt.Sprintf("%d", s.TotalPackages)))
	fmt.Fprintf(&b, "%s %s\n", label("Classes:"), value(fmt.Sprintf("%d", s.TotalClasses)))
	fmt.Fprintf(&b, "%s %s\n", label("Lines of code:"), value(fmt.Sprintf("%d", s.TotalLOC)))
	fmt.Fprintf(&b, "%s %s\n", label("Methods analyzed:"), value(fmt.Sprintf("%d", s.MethodsAnalyzed)))
	if s.SkippedMethods > 0 {
		fmt.Fprintf(&b, "%s %s\n", label("Methods skipped:"), styleWarn.Render(fmt.Sprintf("%d", s.SkippedMethods)))
	}
	fmt.Fprintf(&b, "%s %s\n", label("Max complexity:"), colorComplexity(s.MaxComplexity))
	fmt.Fprintf(&b, "%s %s\n", label("Classes with threads:"), value(fmt.Sprintf("%d", s.ClassesWithThreads)))
	fmt.Fprintf(&b, "%s %s\n", label("External libraries:"), value(fmt.Sprintf("%d", s.ExternalLibraries)))
	fmt.Fprintf(&b, "%s %s\n", label("SpotBugs:"), value(bugLine(report.SpotBugs)))

	if len(report.TopComplexity) > 0 {
		fmt.Fprintf(&b, "\n%s\n", title(fmt.Sprintf("== Top %d methods by complexity ==", len(report.TopComplexity))))
		rows := make([][]string, 0, len(report.TopComplexity))
		for i, m := range report.TopComplexity {
			rows = append(rows, []string{
				fmt.Sprintf("%d", i+1),
				styleFunc.Render(truncate(m.Name, 48)),
				styleFile.Render(trimPath(fmt.Sprintf("%s:%d", m.FilePath, m.Line), 48)),
				colorComplexity(m.Complexity),
				fmt.Sprintf("%d", m.Lines),
				decisionSummary(m),
			})
		}
		writeTable(&b, []string{"#", "Method", "Location", "CCN", "Lines", "Decisions"}, rows)
	}

	if len(report.Hotspots) > 0 {
		fmt.Fprintf(&b, "\n%s\n", title("== Hotspots (complexity x churn) =="))
		rows := make([][]string, 0, len(report.Hotspots))
		for i, h := range report.Hotspots {
			rows = append(rows, []string{
				fmt.Sprintf("%d", i+1),
				styleFunc.Render(truncate(h.Name, 48)),
				colorComplexity(h.Complexity),
				colorHotspot(h.HotspotScore),
			})
		}
		writeTable(&b, []string{"#", "Method", "CCN", "Score"}, rows)
	}

	if len(report.LOCPerPackage) > 0 {
		fmt.Fprintf(&b, "\n%s\n", title("== Lines of code per package =="))
		var rows [][]string
		for _, pkg := range sortedKeys(report.LOCPerPackage) {
			rows = append(rows, []string{pkg, fmt.Sprintf("%d", report.LOCPerPackage[pkg])})
		}
		writeTable(&b, []string{"Package", "LOC"}, rows)
	}

	if len(report.ThreadsPerClass) > 0 {
		fmt.Fprintf(&b, "\n%s\n", title("== Threads started per class =="))
		var rows [][]string
		for _, class := range sortedKeys(report.ThreadsPerClass) {
			rows = append(rows, []string{class, fmt.Sprintf("%d", report.ThreadsPerClass[class])})
		}
		writeTable(&b, []string{"Class", "Starts"}, rows)
	}

	if len(report.ClassSummaries) > 0 {
		limit := len(report.ClassSummaries)
		if limit > maxClassRows {
			limit = maxClassRows
		}
		fmt.Fprintf(&b, "\n%s\n", title(fmt.Sprintf("== Refactoring candidates (top %d) ==", limit)))
		rows := make([][]string, 0, limit)
		for _, c := range report.ClassSummaries[:limit] {
			rows = append(rows, []string{
				styleFile.Render(truncate(c.Class, 48)),
				colorScore(c.Score),
				fmt.Sprintf("%d", c.Methods),
				fmt.Sprintf("%d", len(c.LongMethods)),
				strings.Join(c.Indicators, ", "),
			})
		}
		writeTable(&b, []string{"Class", "Score", "Methods", "Long", "Indicators"}, rows)
	}

	if len(report.ExternalLibraries) > 0 {
		fmt.Fprintf(&b, "\n%s\n", title("== External libraries =="))
		rows := make([][]string, 0, len(report.ExternalLibraries))
		for _, lib := range report.ExternalLibraries {
			rows = append(rows, []string{lib.Group + ":" + lib.Artifact, lib.Version, lib.Scope})
		}
		writeTable(&b, []string{"Library", "Version", "Scope"}, rows)
	}

	if len(report.Warnings) > 0 {
		fmt.Fprintf(&b, "\n%s\n", title("== Warnings =="))
		for _, w := range report.Warnings {
			fmt.Fprintf(&b, "%s %s\n", styleWarn.Render("-"), styleWarn.Render(w))
		}
	}

	return b.String(), nil
}

func writeTable(b *strings.Builder, header []string, rows [][]string) {
	var buf bytes.Buffer

	table := tablewriter.NewWriter(&buf)
	table.SetHeader(header)
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetAutoWrapText(false)
	table.AppendBulk(rows)
	table.Render()

	b.WriteString(buf.String())
}

func decisionSummary(m model.MethodRecord) string {
	d := m.Decisions
	parts := []struct {
		name  string
		count int
	}{
		{"if", d.If}, {"for", d.For}, {"while", d.While}, {"case", d.Case},
		{"catch", d.Catch}, {"?", d.Ternary}, {"&&", d.And}, {"||", d.Or},
	}

	var out []string
	for _, p := range parts {
		if p.count > 0 {
			out = append(out, fmt.Sprintf("%s=%d", p.name, p.count))
		}
	}
	if len(out) == 0 {
		return styleMuted.Render("-")
	}
	return strings.Join(out, " ")
}

func bugLine(s model.BugSummary) string {
	if s.Status != model.BugStatusCompleted {
		if s.Note != "" {
			return fmt.Sprintf("%s (%s)", s.Status, s.Note)
		}
		return string(s.Status)
	}
	return fmt.Sprintf("%d bugs, by priority %s", s.TotalBugs, formatCounts(s.ByPriority))
}

func formatCounts(m map[string]int) string {
	keys := sortedKeys(m)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%d", k, m[k]))
	}
	return strings.Join(parts, " ")
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func title(s string) string {
	return styleTitle.Render(s)
}

func accent(s string) string {
	return styleAccent.Render(s)
}

func label(s string) string {
	return styleMuted.Render(s)
}

func value(s string) string {
	return styleMain.Render(s)
}

func colorComplexity(ccn int) string {
	raw := fmt.Sprintf("%d", ccn)
	switch {
	case ccn <= 10:
		return styleGood.Render(raw)
	case ccn <= 20:
		return styleWarn.Render(raw)
	default:
		return styleDanger.Render(raw)
	}
}

func colorScore(score int) string {
	raw := fmt.Sprintf("%d", score)
	switch {
	case score <= model.HighScoreThreshold:
		return styleGood.Render(raw)
	case score <= 2*model.HighScoreThreshold:
		return styleWarn.Render(raw)
	default:
		return styleDanger.Render(raw)
	}
}

func colorHotspot(score float64) string {
	raw := fmt.Sprintf("%.1f", score)
	switch {
	case score < 20:
		return styleGood.Render(raw)
	case score < 50:
		return styleWarn.Render(raw)
	default:
		return styleDanger.Render(raw)
	}
}

func trimPath(path string, max int) string {
	if len(path) <= max {
		return path
	}
	if max <= 1 {
		return path[len(path)-max:]
	}
	return "…" + path[len(path)-max+1:]
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	if max <= 1 {
		return s[:max]
	}
	return s[:max-1] + "…"
}
