package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// helpContent is the quick-reference overlay. It should fit on one screen
// (~20 lines) without scrolling.
const helpContent = `**Discover**
  /         Search by description
  b         Browse categories (1-5 pick)
  x         Toggle movie+series mixing
  r         Refetch current category
  f         Cycle search filter: all/movie/series

**Graph**
  j/k       Select title
  enter     Drill into selected title
  o         Title details
  O         Open on dashboard
  y         Copy dashboard link

**Trail**
  0         Start over
  1-9       Jump to trail position
  u         Back one step

**Panels & Export**
  i         Toggle insights panel
  E         Save graph snapshot (SVG)
  T         Save trail report (Markdown)

**General**
  ?         This help · esc close · q quit`

// RenderHelp renders the quick-reference modal, compact (~60 chars wide).
func RenderHelp(theme Theme, width, height int) string {
	r := theme.Renderer

	modalWidth := 60
	if modalWidth > width-4 {
		modalWidth = width - 4
	}

	titleStyle := r.NewStyle().
		Bold(true).
		Foreground(theme.Primary)

	contentStyle := r.NewStyle().
		Foreground(theme.Subtext)

	footerStyle := r.NewStyle().
		Foreground(theme.Muted).
		Italic(true)

	var b strings.Builder
	b.WriteString(titleStyle.Render("Quick Reference"))
	b.WriteString("\n")
	b.WriteString(r.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", modalWidth-4)))
	b.WriteString("\n\n")
	b.WriteString(contentStyle.Render(helpContent))
	b.WriteString("\n\n")
	b.WriteString(footerStyle.Render("Esc or ? to close"))

	modalStyle := r.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Secondary).
		Padding(1, 2).
		Width(modalWidth)

	modal := modalStyle.Render(b.String())
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, modal)
}
