package cli

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	primary = lipgloss.Color("#4F46E5") // Indigo, matches the quote sheet
	success = lipgloss.Color("#10B981") // Green
	warning = lipgloss.Color("#F59E0B") // Amber
	danger  = lipgloss.Color("#EF4444") // Red
	muted   = lipgloss.Color("#6B7280") // Gray

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primary)

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			MarginTop(1)

	labelStyle = lipgloss.NewStyle().
			Foreground(muted).
			Width(18)

	headerCellStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primary)

	selectedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(success)

	statusOK = lipgloss.NewStyle().
			Foreground(success).
			Bold(true)

	statusWarning = lipgloss.NewStyle().
			Foreground(warning).
			Bold(true)

	statusCritical = lipgloss.NewStyle().
			Foreground(danger).
			Bold(true)

	hintStyle = lipgloss.NewStyle().
			Foreground(muted)
)

// keyValue renders one aligned "label  value" line.
func keyValue(label, value string) string {
	return "  " + labelStyle.Render(label) + value + "\n"
}

// renderTable lays out rows in columns sized to their widest cell. A
// highlight callback may restyle whole rows.
func renderTable(headers []string, rows [][]string, highlight func(row int) bool) string {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, r := range rows {
		for i, cell := range r {
			if i < len(widths) && lipgloss.Width(cell) > widths[i] {
				widths[i] = lipgloss.Width(cell)
			}
		}
	}

	var sb strings.Builder
	writeLine := func(cells []string, style lipgloss.Style) {
		sb.WriteString("  ")
		for i, cell := range cells {
			if i >= len(widths) {
				break
			}
			sb.WriteString(style.Width(widths[i] + 2).Render(cell))
		}
		sb.WriteString("\n")
	}

	writeLine(headers, headerCellStyle)
	for i, r := range rows {
		style := lipgloss.NewStyle()
		if highlight != nil && highlight(i) {
			style = selectedStyle
		}
		writeLine(r, style)
	}
	return sb.String()
}
