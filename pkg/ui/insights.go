package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vanderheijden86/reelgraph/pkg/analysis"
	"github.com/vanderheijden86/reelgraph/pkg/model"
)

// InsightsModel is the toggleable structure panel: hubs, connectivity, and
// relationship mix for the graph on screen. Results are computed off the
// update loop and tagged with a generation; a result for a superseded graph
// is dropped rather than rendered.
type InsightsModel struct {
	insights analysis.Insights
	hasData  bool
	pending  bool
	gen      uint64
	theme    Theme
}

func NewInsightsModel(theme Theme) InsightsModel {
	return InsightsModel{theme: theme}
}

// Request marks a computation in flight and returns the generation the
// result must echo.
func (m *InsightsModel) Request() uint64 {
	m.gen++
	m.pending = true
	return m.gen
}

// Apply folds in a finished computation. Stale generations are ignored.
func (m *InsightsModel) Apply(gen uint64, in analysis.Insights) bool {
	if gen != m.gen {
		return false
	}
	m.insights = in
	m.hasData = true
	m.pending = false
	return true
}

// Clear drops the current insights, for when the graph goes away.
func (m *InsightsModel) Clear() {
	m.hasData = false
	m.pending = false
}

func (m InsightsModel) Pending() bool { return m.pending }

// View renders the panel at the given inner width.
func (m InsightsModel) View(width, height int) string {
	t := m.theme

	header := t.Renderer.NewStyle().
		Bold(true).
		Foreground(t.Primary).
		Width(width).
		Render("📈 Insights")

	if m.pending && !m.hasData {
		return header + "\n" + t.MutedText.Render("analyzing…")
	}
	if !m.hasData {
		return header + "\n" + t.MutedText.Render("no graph on screen")
	}

	in := m.insights
	var lines []string
	lines = append(lines, header)
	lines = append(lines, RenderDivider(width))
	lines = append(lines, t.SecondaryText.Render(truncateRunesHelper(in.Summary(), width, "…")))

	barWidth := width - 12
	if barWidth > 16 {
		barWidth = 16
	}
	if barWidth >= 4 {
		lines = append(lines, fmt.Sprintf("%s %s %.2f",
			t.MutedText.Render("density"),
			RenderMiniBar(in.Density, barWidth, t),
			in.Density))
		if in.AvgWeight > 0 {
			lines = append(lines, fmt.Sprintf("%s  %s %.2f",
				t.MutedText.Render("weight"),
				RenderMiniBar(in.AvgWeight, barWidth, t),
				in.AvgWeight))
		}
	}

	if len(in.Hubs) > 0 {
		lines = append(lines, "")
		lines = append(lines, t.PrimaryBold.Render("Hubs"))
		lines = append(lines, m.renderRanked(in.Hubs, width)...)
	}

	if len(in.MostConnected) > 0 {
		lines = append(lines, "")
		lines = append(lines, t.PrimaryBold.Render("Most connected"))
		lines = append(lines, m.renderRanked(in.MostConnected, width)...)
	}

	if mix := m.renderKindMix(in.KindMix); mix != "" {
		lines = append(lines, "", t.PrimaryBold.Render("Connection mix"), mix)
	}
	if mix := m.renderMediaMix(in.MediaMix); mix != "" {
		lines = append(lines, "", t.PrimaryBold.Render("Title mix"), mix)
	}

	out := strings.Join(lines, "\n")
	if height > 0 && lipgloss.Height(out) > height {
		trimmed := strings.Split(out, "\n")[:height]
		out = strings.Join(trimmed, "\n")
	}
	return out
}

// renderRanked renders a scored node list with rank numbers and score bars.
func (m InsightsModel) renderRanked(nodes []analysis.RankedNode, width int) []string {
	t := m.theme

	maxScore := 0.0
	for _, n := range nodes {
		if n.Score > maxScore {
			maxScore = n.Score
		}
	}

	var lines []string
	for i, n := range nodes {
		if i >= 5 {
			break
		}
		rel := 0.0
		if maxScore > 0 {
			rel = n.Score / maxScore
		}
		title := truncateRunesHelper(n.Title, width-14, "…")
		lines = append(lines, fmt.Sprintf("%s %s %s",
			t.SecondaryText.Render(fmt.Sprintf("#%d", i+1)),
			RenderMiniBar(rel, 6, t),
			t.Renderer.NewStyle().Foreground(t.MediaColor(n.MediaType)).Render(title)))
	}
	return lines
}

func (m InsightsModel) renderKindMix(mix map[model.EdgeKind]int) string {
	if len(mix) == 0 {
		return ""
	}
	var parts []string
	for _, k := range []model.EdgeKind{model.EdgeSharedGenre, model.EdgeCastOverlap, model.EdgeThematic} {
		if c := mix[k]; c > 0 {
			parts = append(parts, fmt.Sprintf("%s %s %d", KindDot(k), k.Label(), c))
		}
	}
	return strings.Join(parts, "  ")
}

func (m InsightsModel) renderMediaMix(mix map[model.MediaType]int) string {
	if len(mix) == 0 {
		return ""
	}
	var parts []string
	for _, mt := range []model.MediaType{model.MediaMovie, model.MediaSeries} {
		if c := mix[mt]; c > 0 {
			parts = append(parts, fmt.Sprintf("%s %d", RenderMediaBadge(mt), c))
		}
	}
	return strings.Join(parts, "  ")
}
