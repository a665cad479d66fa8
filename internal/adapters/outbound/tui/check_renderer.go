package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/abdidvp/integrity/internal/domain"
)

var (
	sectionHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(accent)
	hintStyle          = lipgloss.NewStyle().Foreground(dim).Italic(true)
	modeStyle          = lipgloss.NewStyle().Foreground(unknown)
)

// RenderChecks lists the registry in execution order.
func RenderChecks(checks domain.Registry) string {
	var b strings.Builder

	b.WriteString("\n")
	fmt.Fprintf(&b, "  %s %s\n",
		sectionHeaderStyle.Render("Checks"),
		dimStyle.Render(fmt.Sprintf("(%d)", len(checks))),
	)
	b.WriteString("  " + separatorLine + "\n")

	if len(checks) == 0 {
		b.WriteString("  " + dimStyle.Render("No checks configured.") + "\n")
		return b.String()
	}

	width := 0
	for _, c := range checks {
		width = max(width, len(c.Name))
	}

	for i, c := range checks {
		mode := "single"
		if c.MultiRow {
			mode = "multi"
		}
		fmt.Fprintf(&b, "  %s %s  %s  %s\n",
			faintStyle.Render(fmt.Sprintf("%2d.", i+1)),
			titleStyle.Render(padRight(c.Name, width)),
			modeStyle.Render(padRight(mode, 6)),
			dimStyle.Render("status: "+c.StatusColumn),
		)
		if c.Description != "" {
			fmt.Fprintf(&b, "      %s\n", faintStyle.Render(c.Description))
		}
	}

	b.WriteString("\n")
	b.WriteString("  " + hintStyle.Render("Run `integrity run --dry-run` to preview the report without mailing it."))
	b.WriteString("\n")
	return b.String()
}
