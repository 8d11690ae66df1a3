package tui

import (
	"fmt"
	"strings"

	"github.com/nox-hq/codeguard/internal/violations"
)

// renderList renders the violation list view.
func renderList(m *Model) string {
	var b strings.Builder

	title := titleStyle.Render(fmt.Sprintf(" codeguard — %d violations", len(m.filtered)))
	if len(m.all) != len(m.filtered) {
		title += subtleStyle.Render(fmt.Sprintf(" (of %d total)", len(m.all)))
	}
	b.WriteString(title)
	b.WriteString("\n")
	b.WriteString(headerStyle.Render(strings.Repeat("─", m.width)))
	b.WriteString("\n")

	filterLine := subtleStyle.Render(" Filter: ") + "[" + m.filter.activeSeverity() + "]"
	if m.filter.search != "" {
		filterLine += subtleStyle.Render("  Search: ") + "[" + m.filter.search + "]"
	}
	b.WriteString(filterLine)
	b.WriteString("\n\n")

	if len(m.filtered) == 0 {
		b.WriteString(subtleStyle.Render("  No violations match the current filters.\n"))
	} else {
		visibleLines := m.height - 8
		if visibleLines < 1 {
			visibleLines = 1
		}
		start := m.cursor - visibleLines/2
		if start < 0 {
			start = 0
		}
		end := start + visibleLines
		if end > len(m.filtered) {
			end = len(m.filtered)
			start = end - visibleLines
			if start < 0 {
				start = 0
			}
		}

		for i := start; i < end; i++ {
			b.WriteString(renderViolationLine(m.filtered[i], i == m.cursor))
			b.WriteString("\n")
		}
	}

	if m.filter.searching {
		b.WriteString("\n")
		b.WriteString(" Search: " + m.filter.search + "█")
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render(" ↑↓ navigate  enter detail  / search  s severity  q quit"))
	b.WriteString("\n")

	return b.String()
}

func renderViolationLine(v violations.Violation, selected bool) string {
	badge := severityBadge(v.Severity)
	ruleID := ruleIDStyle.Render(fmt.Sprintf("%-8s", v.RuleID))

	fileLoc := v.Location.FilePath
	if v.Location.LineNumber > 0 {
		fileLoc = fmt.Sprintf("%s:%d", v.Location.FilePath, v.Location.LineNumber)
	}
	file := fileStyle.Render(fmt.Sprintf("%-30s", fileLoc))

	line := fmt.Sprintf(" %s  %s  %s  %s", badge, ruleID, file, v.Message)
	if v.IsCopilotGenerated {
		line += subtleStyle.Render(" [copilot]")
	}

	if selected {
		return selectedStyle.Render("▸") + line
	}
	return " " + line
}
