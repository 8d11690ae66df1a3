package tui

import (
	"fmt"
	"strings"
)

// contextLines is the number of source lines shown above and below the
// violation's line in the detail view.
const contextLines = 5

// renderDetail renders the detail view for a single violation.
func renderDetail(m *Model) string {
	if m.cursor < 0 || m.cursor >= len(m.filtered) {
		return "No violation selected."
	}

	v := m.filtered[m.cursor]
	meta, hasMeta := m.catalog[v.RuleID]

	var b strings.Builder

	sevBadge := severityStyle(v.Severity).Render(strings.ToUpper(string(v.Severity)))
	b.WriteString(fmt.Sprintf(" %s · %s · %s\n",
		ruleIDStyle.Render(v.RuleID),
		v.Message,
		sevBadge))
	b.WriteString(headerStyle.Render(strings.Repeat("─", m.width)))
	b.WriteString("\n")

	fileLoc := v.Location.FilePath
	if v.Location.LineNumber > 0 {
		fileLoc = fmt.Sprintf("%s:%d", v.Location.FilePath, v.Location.LineNumber)
	}
	b.WriteString(" " + fileStyle.Render(fileLoc))
	if v.IsCopilotGenerated {
		b.WriteString(subtleStyle.Render("  [copilot-generated]"))
	}
	b.WriteString("\n\n")

	if lines := sourceLines(m.contents[v.Location.FilePath], v.Location.LineNumber); len(lines) > 0 {
		for _, line := range lines {
			prefix := "  "
			text := line.text
			if line.isMatch {
				prefix = matchLineStyle.Render("→ ")
				text = matchLineStyle.Render(text)
			}
			lineNum := subtleStyle.Render(fmt.Sprintf("%4d │ ", line.number))
			b.WriteString(prefix + lineNum + text + "\n")
		}
		b.WriteString("\n")
	} else if v.CodeSnippet != "" {
		b.WriteString("   " + v.CodeSnippet + "\n\n")
	}

	if v.Explanation != "" {
		b.WriteString(" " + remediationHeaderStyle.Render("Why this matters") + "\n")
		b.WriteString(wrapText(v.Explanation, m.width-4, "   "))
		b.WriteString("\n")
	}

	if v.FixSuggestion != "" {
		b.WriteString(" " + remediationHeaderStyle.Render("Suggested fix") + "\n")
		b.WriteString(wrapText(v.FixSuggestion, m.width-4, "   "))
		b.WriteString("\n")
	}

	if hasMeta && len(meta.StandardMappings) > 0 {
		b.WriteString(" " + remediationHeaderStyle.Render("Standards") + "\n   ")
		for _, mapping := range meta.StandardMappings {
			b.WriteString(mappingStyle.Render(mapping) + "  ")
		}
		b.WriteString("\n\n")
	} else if len(v.StandardMappings) > 0 {
		b.WriteString(" " + remediationHeaderStyle.Render("Standards") + "\n   ")
		for _, mapping := range v.StandardMappings {
			b.WriteString(mappingStyle.Render(mapping) + "  ")
		}
		b.WriteString("\n\n")
	}

	if v.AIConfidence != nil {
		b.WriteString(" " + subtleStyle.Render(fmt.Sprintf("AI confidence: %.0f%%", *v.AIConfidence*100)) + "\n\n")
	}

	b.WriteString(helpStyle.Render(" esc back  n/p next/prev  q quit"))
	b.WriteString("\n")

	return b.String()
}

type sourceLine struct {
	number  int
	text    string
	isMatch bool
}

// sourceLines returns the window of lines around lineNumber from content,
// padded by contextLines above and below.
func sourceLines(content string, lineNumber int) []sourceLine {
	if content == "" || lineNumber <= 0 {
		return nil
	}
	all := strings.Split(content, "\n")

	start := lineNumber - 1 - contextLines
	if start < 0 {
		start = 0
	}
	end := lineNumber + contextLines
	if end > len(all) {
		end = len(all)
	}

	lines := make([]sourceLine, 0, end-start)
	for i := start; i < end; i++ {
		lineNo := i + 1
		lines = append(lines, sourceLine{number: lineNo, text: all[i], isMatch: lineNo == lineNumber})
	}
	return lines
}

// wrapText wraps text at the given width with the given indent prefix.
func wrapText(text string, width int, indent string) string {
	if width <= 0 {
		width = 78
	}
	words := strings.Fields(text)
	if len(words) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString(indent)
	lineLen := len(indent)

	for i, word := range words {
		if i > 0 && lineLen+1+len(word) > width {
			b.WriteString("\n" + indent)
			lineLen = len(indent)
		} else if i > 0 {
			b.WriteString(" ")
			lineLen++
		}
		b.WriteString(word)
		lineLen += len(word)
	}
	b.WriteString("\n")
	return b.String()
}
