package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vanderheijden86/reelgraph/pkg/model"
)

// CategorySelectedMsg is sent when the user picks a browse category.
type CategorySelectedMsg struct {
	Category model.BrowseCategory
}

// CategoriesModel is the one-line browse category picker. It stays visible
// in browse mode showing the active chip; pressing b opens it for keyboard
// selection.
type CategoriesModel struct {
	categories  []model.BrowseCategory
	highlighted int
	open        bool
	theme       Theme
}

// NewCategoriesModel creates the picker over the fixed category menu.
func NewCategoriesModel(theme Theme) CategoriesModel {
	return CategoriesModel{
		categories: model.Categories(),
		theme:      theme,
	}
}

// Open starts keyboard selection, highlighting the active category.
func (m *CategoriesModel) Open(active model.BrowseCategory) {
	m.open = true
	m.highlighted = 0
	for i, c := range m.categories {
		if c == active {
			m.highlighted = i
			break
		}
	}
}

// Close leaves keyboard selection.
func (m *CategoriesModel) Close() { m.open = false }

func (m CategoriesModel) IsOpen() bool { return m.open }

// Update handles keys while the picker is open.
func (m CategoriesModel) Update(msg tea.Msg) (CategoriesModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || !m.open {
		return m, nil
	}

	switch key := keyMsg.String(); key {
	case "esc", "b":
		m.open = false
		return m, nil
	case "left", "h", "up", "k":
		if m.highlighted > 0 {
			m.highlighted--
		}
		return m, nil
	case "right", "l", "down", "j":
		if m.highlighted < len(m.categories)-1 {
			m.highlighted++
		}
		return m, nil
	case "enter":
		cat := m.categories[m.highlighted]
		m.open = false
		return m, func() tea.Msg {
			return CategorySelectedMsg{Category: cat}
		}
	case "1", "2", "3", "4", "5":
		idx := int(key[0] - '1')
		if idx < len(m.categories) {
			cat := m.categories[idx]
			m.open = false
			return m, func() tea.Msg {
				return CategorySelectedMsg{Category: cat}
			}
		}
		return m, nil
	}
	return m, nil
}

// View renders the chip row. active marks the chip for the mode's current
// category; crossMedia adds the mixing indicator.
func (m CategoriesModel) View(width int, active model.BrowseCategory, isBrowsing, crossMedia bool) string {
	t := m.theme

	var chips []string
	for i, c := range m.categories {
		label := fmt.Sprintf("%d %s", i+1, c.Label())

		style := t.Renderer.NewStyle().Padding(0, 1).Foreground(t.Secondary)
		switch {
		case m.open && i == m.highlighted:
			style = t.Renderer.NewStyle().Padding(0, 1).
				Bold(true).
				Foreground(t.Primary).
				Background(t.Highlight)
		case isBrowsing && c == active:
			style = t.Renderer.NewStyle().Padding(0, 1).
				Bold(true).
				Foreground(t.Primary)
		}
		chips = append(chips, style.Render(label))
	}

	cross := "x mix: off"
	crossStyle := t.MutedText
	if crossMedia {
		cross = "x mix: on"
		crossStyle = t.Renderer.NewStyle().Foreground(ColorSuccess).Bold(true)
	}
	chips = append(chips, crossStyle.Render(cross))

	row := strings.Join(chips, " ")
	return t.Renderer.NewStyle().
		Width(width).
		MaxWidth(width).
		Render(row)
}
