package ui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vanderheijden86/reelgraph/pkg/model"
)

// GraphModel renders one fetched media graph as an ego view: the selected
// title in a prominent box with its connections fanned out underneath, plus
// a scrollable node list on wide terminals.
type GraphModel struct {
	graph        *model.GraphData
	nodeMap      map[string]*model.GraphNode
	degrees      map[string]int
	selectedIdx  int
	scrollOffset int
	width        int
	height       int
	theme        Theme
	hideLegend   bool

	// Navigation order: the traversal center first, then the service's
	// ranking order.
	sortedIDs []string
}

// neighbor pairs a connected node with the edge that links it to the
// selected title.
type neighbor struct {
	node *model.GraphNode
	edge model.GraphEdge
}

// NewGraphModel creates a graph view for one fetched graph.
func NewGraphModel(g *model.GraphData, theme Theme) GraphModel {
	gm := GraphModel{theme: theme}
	gm.graph = g
	gm.rebuild()
	return gm
}

// SetGraph swaps in a new fetched graph, preserving the selected title when
// it survives the refetch.
func (g *GraphModel) SetGraph(data *model.GraphData) {
	var selectedID string
	if len(g.sortedIDs) > 0 && g.selectedIdx >= 0 && g.selectedIdx < len(g.sortedIDs) {
		selectedID = g.sortedIDs[g.selectedIdx]
	}

	g.graph = data
	g.rebuild()

	if selectedID != "" {
		found := false
		for i, id := range g.sortedIDs {
			if id == selectedID {
				g.selectedIdx = i
				found = true
				break
			}
		}
		if !found && g.selectedIdx >= len(g.sortedIDs) {
			g.selectedIdx = 0
		}
	}
}

// SetHideLegend drops the edge-kind legend from the panel.
func (g *GraphModel) SetHideLegend(hide bool) {
	g.hideLegend = hide
}

func (g *GraphModel) rebuild() {
	size := g.graph.Len()
	g.nodeMap = make(map[string]*model.GraphNode, size)
	g.degrees = make(map[string]int, size)
	g.sortedIDs = make([]string, 0, size)

	if g.graph != nil {
		for i := range g.graph.Nodes {
			n := &g.graph.Nodes[i]
			if _, dup := g.nodeMap[n.ID]; dup {
				continue
			}
			g.nodeMap[n.ID] = n
			g.sortedIDs = append(g.sortedIDs, n.ID)
		}
		for _, e := range g.graph.Edges {
			if _, ok := g.nodeMap[e.Source]; !ok {
				continue
			}
			if _, ok := g.nodeMap[e.Target]; !ok {
				continue
			}
			g.degrees[e.Source]++
			g.degrees[e.Target]++
		}
	}

	// Center first; the rest keeps the service's ranking order.
	sort.SliceStable(g.sortedIDs, func(i, j int) bool {
		return g.nodeMap[g.sortedIDs[i]].IsCenter && !g.nodeMap[g.sortedIDs[j]].IsCenter
	})

	if g.selectedIdx >= len(g.sortedIDs) {
		g.selectedIdx = 0
	}
}

// Navigation
func (g *GraphModel) MoveUp() {
	if g.selectedIdx > 0 {
		g.selectedIdx--
	}
}

func (g *GraphModel) MoveDown() {
	if g.selectedIdx < len(g.sortedIDs)-1 {
		g.selectedIdx++
	}
}

func (g *GraphModel) PageUp() {
	g.selectedIdx -= 10
	if g.selectedIdx < 0 {
		g.selectedIdx = 0
	}
}

func (g *GraphModel) PageDown() {
	if len(g.sortedIDs) == 0 {
		return
	}
	g.selectedIdx += 10
	if g.selectedIdx >= len(g.sortedIDs) {
		g.selectedIdx = len(g.sortedIDs) - 1
	}
}

// SelectedNode returns the title the cursor is on, or nil for an empty graph.
func (g *GraphModel) SelectedNode() *model.GraphNode {
	if len(g.sortedIDs) == 0 {
		return nil
	}
	return g.nodeMap[g.sortedIDs[g.selectedIdx]]
}

// SelectByID moves the cursor to the given title.
func (g *GraphModel) SelectByID(id string) bool {
	for i, sortedID := range g.sortedIDs {
		if sortedID == id {
			g.selectedIdx = i
			return true
		}
	}
	return false
}

func (g *GraphModel) TotalCount() int {
	return len(g.sortedIDs)
}

// neighbors returns the titles connected to id, strongest edge first.
func (g *GraphModel) neighbors(id string) []neighbor {
	if g.graph == nil {
		return nil
	}
	var out []neighbor
	for _, e := range g.graph.Connections(id) {
		n := g.nodeMap[e.Other(id)]
		if n == nil {
			continue
		}
		out = append(out, neighbor{node: n, edge: e})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].edge.Weight != out[j].edge.Weight {
			return out[i].edge.Weight > out[j].edge.Weight
		}
		return out[i].node.Title < out[j].node.Title
	})
	return out
}

// View renders the graph panel.
func (g *GraphModel) View(width, height int) string {
	g.width = width
	g.height = height
	t := g.theme

	if len(g.sortedIDs) == 0 {
		return t.Renderer.NewStyle().
			Width(width).
			Height(height).
			Align(lipgloss.Center, lipgloss.Center).
			Foreground(t.Secondary).
			Render("No titles to display")
	}

	selectedID := g.sortedIDs[g.selectedIdx]
	selected := g.nodeMap[selectedID]
	if selected == nil {
		return "Error: selected title not found"
	}

	// Layout: Left panel (node list) | Right panel (ego view)
	listWidth := 28
	if width < 120 {
		listWidth = 24
	}
	if width < 80 {
		// Narrow: just show the ego view
		return g.renderEgoView(selected, width, height, t)
	}

	detailWidth := width - listWidth - 3

	listView := g.renderNodeList(listWidth, height-2, t)
	graphView := g.renderEgoView(selected, detailWidth, height-2, t)

	sepHeight := height - 2
	if sepHeight < 1 {
		sepHeight = 1
	}
	separator := t.Renderer.NewStyle().
		Foreground(t.Secondary).
		Render(strings.Repeat("│\n", sepHeight))

	return lipgloss.JoinHorizontal(lipgloss.Top, listView, separator, graphView)
}

// renderNodeList renders the left panel with all titles
func (g *GraphModel) renderNodeList(width, height int, t Theme) string {
	var lines []string

	headerStyle := t.Renderer.NewStyle().
		Bold(true).
		Foreground(t.Primary).
		Width(width)
	lines = append(lines, headerStyle.Render(fmt.Sprintf("🎬 Titles (%d)", len(g.sortedIDs))))
	lines = append(lines, strings.Repeat("─", width))

	visibleItems := height - 4
	if visibleItems < 1 {
		visibleItems = 1
	}

	startIdx := g.scrollOffset
	if g.selectedIdx < startIdx {
		startIdx = g.selectedIdx
	} else if g.selectedIdx >= startIdx+visibleItems {
		startIdx = g.selectedIdx - visibleItems + 1
	}
	g.scrollOffset = startIdx

	endIdx := startIdx + visibleItems
	if endIdx > len(g.sortedIDs) {
		endIdx = len(g.sortedIDs)
	}

	for i := startIdx; i < endIdx; i++ {
		node := g.nodeMap[g.sortedIDs[i]]
		if node == nil {
			continue
		}

		isSelected := i == g.selectedIdx
		mark := " "
		if node.IsCenter {
			mark = "◉"
		}
		title := truncateRunesHelper(node.Title, width-5, "…")
		line := fmt.Sprintf("%s %s %s", MediaGlyph(node.MediaType), mark, title)

		var style lipgloss.Style
		if isSelected {
			style = t.Renderer.NewStyle().
				Bold(true).
				Foreground(t.Primary).
				Background(t.Highlight).
				Width(width)
		} else if node.IsCenter {
			style = t.Renderer.NewStyle().
				Foreground(t.Center).
				Width(width)
		} else {
			style = t.Renderer.NewStyle().
				Foreground(t.MediaColor(node.MediaType)).
				Width(width)
		}
		lines = append(lines, style.Render(line))
	}

	if len(g.sortedIDs) > visibleItems {
		scrollInfo := fmt.Sprintf("(%d-%d of %d)", startIdx+1, endIdx, len(g.sortedIDs))
		scrollStyle := t.Renderer.NewStyle().
			Foreground(t.Secondary).
			Italic(true).
			Width(width).
			Align(lipgloss.Center)
		lines = append(lines, scrollStyle.Render(scrollInfo))
	}

	return strings.Join(lines, "\n")
}

// renderEgoView renders the selected title with its connections fanned out
func (g *GraphModel) renderEgoView(node *model.GraphNode, width, height int, t Theme) string {
	var sections []string

	conns := g.neighbors(node.ID)

	sections = append(sections, g.renderEgoNode(node, width, t))

	if len(conns) > 0 {
		sections = append(sections, g.renderConnectorDown(len(conns), width, t))
		sections = append(sections, g.renderConnectionsVisual(conns, width, t))
	}

	sections = append(sections, "")
	sections = append(sections, g.renderGraphMetrics(width, t))

	if !g.hideLegend {
		sections = append(sections, g.renderLegend(width, t))
	}

	navStyle := t.Renderer.NewStyle().
		Foreground(t.Secondary).
		Italic(true)
	sections = append(sections, "")
	sections = append(sections, navStyle.Render("j/k: select • enter: drill in • o: details"))

	return strings.Join(sections, "\n")
}

// renderEgoNode renders the selected title prominently
func (g *GraphModel) renderEgoNode(node *model.GraphNode, width int, t Theme) string {
	egoWidth := width / 2
	if egoWidth > 50 {
		egoWidth = 50
	}
	if egoWidth < 30 {
		egoWidth = 30
	}
	// Don't exceed available width
	if egoWidth > width-4 {
		egoWidth = width - 4
	}
	if egoWidth < 10 {
		egoWidth = 10
	}

	line1 := fmt.Sprintf("%s %s", MediaGlyph(node.MediaType), truncateRunesHelper(node.Title, egoWidth-6, "…"))
	line2 := node.MediaType.Label()
	if node.IsCenter {
		line2 += " ◉ center"
	}

	content := line1 + "\n" + line2
	content += fmt.Sprintf("\n⇄ %d connections", g.degrees[node.ID])

	borderColor := t.Primary
	if node.IsCenter {
		borderColor = t.Center
	}

	egoStyle := t.Renderer.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(borderColor).
		Foreground(borderColor).
		Bold(true).
		Width(egoWidth).
		Align(lipgloss.Center).
		Padding(0, 1)

	box := egoStyle.Render(content)

	return t.Renderer.NewStyle().Width(width).Align(lipgloss.Center).Render(box)
}

// renderConnectionsVisual renders connected titles as boxes
func (g *GraphModel) renderConnectionsVisual(conns []neighbor, width int, t Theme) string {
	maxBoxes := 5
	if len(conns) < maxBoxes {
		maxBoxes = len(conns)
	}
	if maxBoxes < 1 {
		maxBoxes = 1
	}
	boxWidth := (width - 4) / maxBoxes
	if boxWidth > 20 {
		boxWidth = 20
	}
	if boxWidth < 12 {
		boxWidth = 12
	}
	// Ensure boxWidth doesn't exceed available space (narrow terminals)
	if boxWidth > width-2 {
		boxWidth = width - 2
	}
	if boxWidth < 8 {
		boxWidth = 8
	}

	var boxes []string
	for i, c := range conns {
		if i >= 5 {
			remaining := len(conns) - 5
			boxes = append(boxes, t.Renderer.NewStyle().
				Foreground(t.Secondary).
				Italic(true).
				Render(fmt.Sprintf("+%d more", remaining)))
			break
		}
		boxes = append(boxes, g.renderNodeBox(c, boxWidth, t))
	}

	boxRow := lipgloss.JoinHorizontal(lipgloss.Center, boxes...)
	centered := t.Renderer.NewStyle().Width(width).Align(lipgloss.Center).Render(boxRow)

	headerStyle := t.Renderer.NewStyle().
		Bold(true).
		Foreground(t.Secondary).
		Width(width).
		Align(lipgloss.Center)

	header := headerStyle.Render(fmt.Sprintf("▼ CONNECTED TITLES (%d) ▼", len(conns)))

	return centered + "\n" + header
}

// renderNodeBox renders one connected title as a box, border-colored by the
// relationship kind so the fan doubles as a legend.
func (g *GraphModel) renderNodeBox(c neighbor, boxWidth int, t Theme) string {
	kindColor := t.KindColor(c.edge.Kind)

	line1 := fmt.Sprintf("%s %s", MediaGlyph(c.node.MediaType), truncateRunesHelper(c.node.Title, boxWidth-4, "…"))

	boxStyle := t.Renderer.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(kindColor).
		Foreground(t.MediaColor(c.node.MediaType)).
		Width(boxWidth).
		Align(lipgloss.Center).
		Padding(0, 0)

	content := line1
	if boxWidth > 14 {
		line2 := c.edge.Kind.Label()
		if w := formatWeight(c.edge.Weight); w != "" {
			line2 += " " + w
		}
		content = line1 + "\n" + truncateRunesHelper(line2, boxWidth-2, "…")
	}

	return boxStyle.Render(content)
}

// renderConnectorDown renders connector lines between sections
func (g *GraphModel) renderConnectorDown(count int, width int, t Theme) string {
	if count == 0 {
		return ""
	}

	connStyle := t.Renderer.NewStyle().
		Foreground(t.Secondary).
		Width(width).
		Align(lipgloss.Center)

	if count == 1 {
		return connStyle.Render("│\n│\n▼")
	}

	// Multiple connections - fan pattern
	lines := []string{"│"}

	var pattern strings.Builder
	pattern.WriteRune('├')
	for i := 0; i < count && i < 4; i++ {
		if i > 0 {
			pattern.WriteRune('┼')
		}
		pattern.WriteRune('─')
	}
	pattern.WriteRune('┤')
	lines = append(lines, pattern.String())
	lines = append(lines, "▼")

	return connStyle.Render(strings.Join(lines, "\n"))
}

// renderGraphMetrics renders a one-line summary of the whole graph
func (g *GraphModel) renderGraphMetrics(width int, t Theme) string {
	nodes := g.graph.Len()
	edges := 0
	if g.graph != nil {
		edges = len(g.graph.Edges)
	}

	parts := []string{fmt.Sprintf("%d titles", nodes), fmt.Sprintf("%d connections", edges)}
	counts := g.graph.KindCounts()
	for _, k := range []model.EdgeKind{model.EdgeSharedGenre, model.EdgeCastOverlap, model.EdgeThematic} {
		if c := counts[k]; c > 0 {
			parts = append(parts, fmt.Sprintf("%s %d", k.Label(), c))
		}
	}

	return t.Renderer.NewStyle().
		Foreground(t.Subtext).
		Width(width).
		Align(lipgloss.Center).
		Render(truncateRunesHelper(strings.Join(parts, " • "), width, "…"))
}

// renderLegend renders the edge-kind color key for kinds present in the graph
func (g *GraphModel) renderLegend(width int, t Theme) string {
	counts := g.graph.KindCounts()
	var parts []string
	for _, k := range []model.EdgeKind{model.EdgeSharedGenre, model.EdgeCastOverlap, model.EdgeThematic} {
		if counts[k] > 0 {
			parts = append(parts, KindDot(k)+" "+k.Label())
		}
	}
	if len(parts) == 0 {
		return ""
	}
	return t.Renderer.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Render(strings.Join(parts, "  "))
}
