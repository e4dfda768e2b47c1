package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/vanderheijden86/reelgraph/internal/api"
)

// DetailModel is the modal overlay for one title's full record, rendered
// from the service's Markdown synopsis.
type DetailModel struct {
	vp         viewport.Model
	mdRenderer *glamour.TermRenderer
	theme      Theme

	visible bool
	loading bool
	nodeID  string
	title   string
	detail  *api.MediaDetail
	err     error
}

// NewDetailModel creates the detail overlay.
func NewDetailModel(theme Theme) DetailModel {
	var mdRenderer *glamour.TermRenderer
	mdRenderer, _ = glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(60),
	)

	return DetailModel{
		vp:         viewport.New(40, 20),
		mdRenderer: mdRenderer,
		theme:      theme,
	}
}

// OpenLoading shows the overlay in its loading state while the record is
// fetched. The id lets a late response for a different title be ignored.
func (m *DetailModel) OpenLoading(id, title string) {
	m.visible = true
	m.loading = true
	m.nodeID = id
	m.title = title
	m.detail = nil
	m.err = nil
}

// Apply folds in the fetch outcome. A response for a title other than the
// one on screen is dropped.
func (m *DetailModel) Apply(msg DetailMsg) {
	if !m.visible || msg.ID != m.nodeID {
		return
	}
	m.loading = false
	m.detail = msg.Detail
	m.err = msg.Err
	if m.detail != nil {
		m.setContent(m.renderMarkdown(m.detail))
	}
}

// Close hides the overlay.
func (m *DetailModel) Close() {
	m.visible = false
	m.loading = false
	m.detail = nil
	m.err = nil
	m.nodeID = ""
}

func (m DetailModel) Visible() bool { return m.visible }

// ScrollDown moves the synopsis viewport down.
func (m *DetailModel) ScrollDown() { m.vp.LineDown(1) }

// ScrollUp moves the synopsis viewport up.
func (m *DetailModel) ScrollUp() { m.vp.LineUp(1) }

// SetSize resizes the viewport for the overlay box.
func (m *DetailModel) SetSize(width, height int) {
	vpWidth := width - 6
	if vpWidth < 20 {
		vpWidth = 20
	}
	vpHeight := height - 8
	if vpHeight < 5 {
		vpHeight = 5
	}
	m.vp.Width = vpWidth
	m.vp.Height = vpHeight
}

func (m *DetailModel) setContent(md string) {
	rendered := md
	if m.mdRenderer != nil {
		if out, err := m.mdRenderer.Render(md); err == nil {
			rendered = out
		}
	}
	m.vp.SetContent(rendered)
	m.vp.GotoTop()
}

// renderMarkdown builds the Markdown document for one record.
func (m DetailModel) renderMarkdown(d *api.MediaDetail) string {
	var sb strings.Builder

	title := d.Title
	if d.Year > 0 {
		title = fmt.Sprintf("%s (%d)", d.Title, d.Year)
	}
	sb.WriteString("# " + title + "\n\n")

	var facts []string
	facts = append(facts, "**"+d.MediaType.Label()+"**")
	if d.Rating > 0 {
		facts = append(facts, fmt.Sprintf("★ %.1f", d.Rating))
	}
	if len(d.Genres) > 0 {
		facts = append(facts, strings.Join(d.Genres, ", "))
	}
	sb.WriteString(strings.Join(facts, " · ") + "\n\n")

	if len(d.Cast) > 0 {
		sb.WriteString("**Cast:** " + strings.Join(d.Cast, ", ") + "\n\n")
	}

	if d.Synopsis != "" {
		sb.WriteString(d.Synopsis + "\n")
	}

	return sb.String()
}

// View renders the overlay box.
func (m DetailModel) View(width, height int) string {
	t := m.theme

	boxWidth := width - 8
	if boxWidth > 72 {
		boxWidth = 72
	}
	if boxWidth < 30 {
		boxWidth = 30
	}

	header := t.PrimaryBold.Render(truncateRunesHelper(m.title, boxWidth-4, "…"))

	var body string
	switch {
	case m.loading:
		body = t.MutedText.Render("loading details…")
	case m.err != nil:
		if api.IsNotFound(m.err) {
			body = t.MutedText.Render("no details available for this title")
		} else {
			body = t.DangerText.Render("could not load details") + "\n" +
				t.MutedText.Render(truncateRunesHelper(m.err.Error(), boxWidth-4, "…"))
		}
	case m.detail != nil:
		body = m.vp.View()
		if m.vp.ScrollPercent() < 1.0 || m.vp.YOffset > 0 {
			body += "\n" + t.MutedText.Render(fmt.Sprintf("── %d%% ──", int(m.vp.ScrollPercent()*100)))
		}
	default:
		body = t.MutedText.Render("nothing to show")
	}

	footer := t.MutedText.Render("j/k: scroll • o/esc: close")

	content := header + "\n" + RenderDivider(boxWidth-4) + "\n" + body + "\n" + footer

	box := t.Renderer.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Primary).
		Padding(1, 2).
		Width(boxWidth).
		Render(content)

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}
