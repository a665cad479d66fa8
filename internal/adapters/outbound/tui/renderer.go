package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/abdidvp/integrity/internal/domain"
)

// ── palette ──
var (
	accent  = lipgloss.Color("#D97706") // amber
	fg      = lipgloss.Color("#E8E6E3") // warm light gray
	dim     = lipgloss.Color("#6B7280") // muted gray
	faint   = lipgloss.Color("#3F3F46") // very dim
	success = lipgloss.Color("#22C55E") // green
	danger  = lipgloss.Color("#EF4444") // red
	warning = lipgloss.Color("#F59E0B") // amber-yellow
	unknown = lipgloss.Color("#8B949E") // soft blue-gray
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accent).
			Align(lipgloss.Center)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(1, 4).
			Align(lipgloss.Center).
			Width(68)

	statusColors = map[domain.Status]lipgloss.Color{
		domain.StatusTrue:    success,
		domain.StatusFalse:   danger,
		domain.StatusWarning: warning,
		domain.StatusError:   lipgloss.Color("#FB923C"), // orange
		domain.StatusUnknown: unknown,
	}

	severityColors = map[domain.Severity]lipgloss.Color{
		domain.SeveritySuccess: success,
		domain.SeverityWarning: warning,
		domain.SeverityAlert:   danger,
	}

	dimStyle       = lipgloss.NewStyle().Foreground(dim)
	faintStyle     = lipgloss.NewStyle().Foreground(faint)
	titleStyle     = lipgloss.NewStyle().Bold(true).Foreground(fg)
	errorTextStyle = lipgloss.NewStyle().Foreground(danger)
	headerCell     = lipgloss.NewStyle().Bold(true).Foreground(fg).Padding(0, 1)
	bodyCell       = lipgloss.NewStyle().Foreground(fg).Padding(0, 1)
	separatorLine  = faintStyle.Render(strings.Repeat("─", 64))
)

// maxPreviewRows caps the rows printed per multi-row check.
const maxPreviewRows = 20

// RenderDocument formats a compiled report for the terminal.
func RenderDocument(doc *domain.Document) string {
	var b strings.Builder

	// ── Header ──
	title := headerStyle.Render(doc.Title)
	sev := lipgloss.NewStyle().Bold(true).Foreground(severityColor(doc.Severity)).Render(doc.Banner)
	header := title + "\n"
	if doc.Subtitle != "" {
		header += dimStyle.Render(doc.Subtitle) + "\n"
	}
	header += "\n" + sev
	b.WriteString(boxStyle.Render(header))
	b.WriteString("\n\n")

	if doc.Fatal != "" {
		b.WriteString("  " + errorTextStyle.Render("Error: "+doc.Fatal) + "\n\n")
		return b.String()
	}

	// ── Summary ──
	b.WriteString("  " + titleStyle.Render("Checks") + "  " + dimStyle.Render(doc.Summary.Text) + "\n")
	b.WriteString("  " + separatorLine + "\n\n")

	for i, e := range doc.Entries {
		renderEntry(&b, e)
		if i < len(doc.Entries)-1 {
			b.WriteString("\n")
		}
	}

	if doc.Revision != "" {
		b.WriteString("\n  " + faintStyle.Render("revision "+shortHash(doc.Revision)) + "\n")
	}
	b.WriteString("\n")
	return b.String()
}

func renderEntry(b *strings.Builder, e domain.ReportEntry) {
	fmt.Fprintf(b, "  %s %s  %s\n", statusIcon(e.Status), titleStyle.Render(e.Name), StatusTag(e.Status))
	if e.Description != "" {
		fmt.Fprintf(b, "    %s\n", dimStyle.Render(e.Description))
	}
	if len(e.Rows) == 0 {
		return
	}

	rows := e.Rows
	truncated := 0
	if e.Kind == domain.KindTable && len(rows) > maxPreviewRows {
		truncated = len(rows) - maxPreviewRows
		rows = rows[:maxPreviewRows]
	}

	b.WriteString(indent(detailsTable(e, rows), "    "))
	b.WriteString("\n")
	if truncated > 0 {
		fmt.Fprintf(b, "    %s\n", faintStyle.Render(fmt.Sprintf("… %d more rows", truncated)))
	}
}

func detailsTable(e domain.ReportEntry, rows [][]domain.Cell) string {
	headers := make([]string, len(e.Columns))
	for i, c := range e.Columns {
		headers[i] = c.Label
	}

	data := make([][]string, len(rows))
	for i, row := range rows {
		data[i] = make([]string, len(row))
		for j, cell := range row {
			data[i][j] = cell.Text
		}
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(faintStyle).
		Headers(headers...).
		Rows(data...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerCell
			}
			if row >= 0 && row < len(rows) && col < len(rows[row]) {
				if hl := rows[row][col].Highlight; hl != "" {
					return bodyCell.Foreground(statusColor(hl)).Bold(!hl.IsPass())
				}
			}
			return bodyCell
		})
	return t.String()
}

// StatusTag renders a status as a coloured label.
func StatusTag(s domain.Status) string {
	return lipgloss.NewStyle().Bold(true).Foreground(statusColor(s)).Render(string(s))
}

func statusIcon(s domain.Status) string {
	icon := "●"
	if s == domain.StatusUnknown {
		icon = "○"
	}
	return lipgloss.NewStyle().Foreground(statusColor(s)).Render(icon)
}

func statusColor(s domain.Status) lipgloss.Color {
	if c, ok := statusColors[s]; ok {
		return c
	}
	return fg
}

func severityColor(s domain.Severity) lipgloss.Color {
	if c, ok := severityColors[s]; ok {
		return c
	}
	return fg
}

func shortHash(hash string) string {
	if len(hash) > 7 {
		return hash[:7]
	}
	return hash
}

func indent(s, prefix string) string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = prefix + l
	}
	return strings.Join(lines, "\n")
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}
