package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vanderheijden86/reelgraph/pkg/model"
)

// TrailModel renders the rabbit-hole breadcrumb: the start-over affordance,
// the former traversal centers oldest first, then the current center. Crumbs
// are numbered with the index GoToHistory expects, so the hint "press 2" and
// the jump target always agree.
type TrailModel struct {
	theme Theme
}

func NewTrailModel(theme Theme) TrailModel {
	return TrailModel{theme: theme}
}

const crumbTitleWidth = 18

// View renders the trail bar. current may be empty while the focused fetch
// is still loading.
func (m TrailModel) View(width int, entries []model.NavigationEntry, current string) string {
	t := m.theme
	sep := t.MutedText.Render(" ❯ ")

	root := t.SecondaryText.Render("0 Explore")
	var cur string
	if current != "" {
		cur = t.PrimaryBold.Render("◉ " + truncate(current, crumbTitleWidth))
	}

	// The oldest entry carries no number: jump index 0 belongs to the
	// start-over crumb, never to the first stack entry.
	labels := make([]string, len(entries))
	for i, e := range entries {
		label := truncate(e.Title, crumbTitleWidth)
		if i > 0 {
			label = fmt.Sprintf("%d %s", i, label)
		}
		labels[i] = t.SecondaryText.Render(label)
	}

	// Oldest crumbs collapse behind an ellipsis when the trail outgrows the
	// bar; the numbers on the surviving crumbs stay valid jump targets.
	assemble := func(skip int) string {
		parts := []string{root}
		if skip > 0 {
			parts = append(parts, t.MutedText.Render("…"))
		}
		parts = append(parts, labels[skip:]...)
		if cur != "" {
			parts = append(parts, cur)
		}
		return strings.Join(parts, sep)
	}

	row := assemble(0)
	for skip := 1; skip <= len(labels) && lipgloss.Width(row) > width; skip++ {
		row = assemble(skip)
	}

	return t.Renderer.NewStyle().
		Width(width).
		MaxWidth(width).
		Render(row)
}
