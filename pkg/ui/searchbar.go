package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vanderheijden86/reelgraph/pkg/model"
)

// SearchSubmitMsg is sent when the user submits a semantic query.
type SearchSubmitMsg struct {
	Query string
}

// maxRecentShown caps the recent-search suggestions under the input.
const maxRecentShown = 5

// SearchModel is the free-text semantic search bar with recent-query
// suggestions. While focused it owns the keyboard except for the keys the
// root model reserves (esc to leave, enter to submit).
type SearchModel struct {
	input   textinput.Model
	recent  []string
	cursor  int // index into visible recent list, -1 = typing
	focused bool
	width   int
	theme   Theme
}

// NewSearchModel creates the search bar.
func NewSearchModel(theme Theme) SearchModel {
	ti := textinput.New()
	ti.Placeholder = "describe what you feel like watching..."
	ti.CharLimit = 200
	ti.Width = 40
	ti.Prompt = "🔎 "

	return SearchModel{
		input:  ti,
		cursor: -1,
		theme:  theme,
	}
}

// SetWidth updates the bar width.
func (m *SearchModel) SetWidth(w int) {
	m.width = w
	inner := w - 8
	if inner < 20 {
		inner = 20
	}
	m.input.Width = inner
}

// SetRecent replaces the suggestion list, most recent first.
func (m *SearchModel) SetRecent(recent []string) {
	m.recent = recent
	if m.cursor >= len(m.visibleRecent()) {
		m.cursor = -1
	}
}

// Focus puts the cursor in the input.
func (m *SearchModel) Focus() tea.Cmd {
	m.focused = true
	m.cursor = -1
	return m.input.Focus()
}

// Blur leaves the input, keeping its text.
func (m *SearchModel) Blur() {
	m.focused = false
	m.cursor = -1
	m.input.Blur()
}

func (m SearchModel) Focused() bool { return m.focused }

// Value returns the current input text.
func (m SearchModel) Value() string { return m.input.Value() }

// SetValue replaces the input text.
func (m *SearchModel) SetValue(s string) { m.input.SetValue(s) }

// visibleRecent returns the suggestions shown under an empty input.
func (m SearchModel) visibleRecent() []string {
	if strings.TrimSpace(m.input.Value()) != "" {
		return nil
	}
	if len(m.recent) > maxRecentShown {
		return m.recent[:maxRecentShown]
	}
	return m.recent
}

// Update handles input while the bar is focused. Non-key messages flow to
// the textinput so its cursor keeps blinking.
func (m SearchModel) Update(msg tea.Msg) (SearchModel, tea.Cmd) {
	if !m.focused {
		return m, nil
	}
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	switch keyMsg.String() {
	case "esc":
		m.Blur()
		return m, nil
	case "enter":
		query := m.input.Value()
		if vis := m.visibleRecent(); m.cursor >= 0 && m.cursor < len(vis) {
			query = vis[m.cursor]
			m.input.SetValue(query)
		}
		if strings.TrimSpace(query) == "" {
			return m, nil
		}
		m.Blur()
		return m, func() tea.Msg {
			return SearchSubmitMsg{Query: query}
		}
	case "up":
		if vis := m.visibleRecent(); len(vis) > 0 {
			if m.cursor <= 0 {
				m.cursor = len(vis) - 1
			} else {
				m.cursor--
			}
			return m, nil
		}
	case "down":
		if vis := m.visibleRecent(); len(vis) > 0 {
			m.cursor = (m.cursor + 1) % len(vis)
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	// Typing invalidates any highlighted suggestion.
	if m.input.Value() != "" {
		m.cursor = -1
	}
	return m, cmd
}

// View renders the bar, plus recent suggestions while focused and empty.
func (m SearchModel) View(width int, filter model.MediaType) string {
	t := m.theme

	badge := t.SecondaryText.Render(fmt.Sprintf("[%s]", filter.Label()))

	var barStyle lipgloss.Style
	if m.focused {
		barStyle = FocusedPanelStyle
	} else {
		barStyle = PanelStyle
	}

	inputView := m.input.View()
	gap := width - lipgloss.Width(inputView) - lipgloss.Width(badge) - 4
	if gap < 1 {
		gap = 1
	}
	bar := barStyle.Width(width - 2).Render(inputView + strings.Repeat(" ", gap) + badge)

	vis := m.visibleRecent()
	if !m.focused || len(vis) == 0 {
		return bar
	}

	lines := []string{bar}
	lines = append(lines, t.MutedText.Render("  recent searches (↑/↓ then enter):"))
	for i, q := range vis {
		line := "  " + truncateRunesHelper(q, width-6, "…")
		if i == m.cursor {
			line = t.Renderer.NewStyle().
				Bold(true).
				Foreground(t.Primary).
				Background(t.Highlight).
				Render(line)
		} else {
			line = t.SecondaryText.Render(line)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}
