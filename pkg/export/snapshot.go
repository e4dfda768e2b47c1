// Package export renders exploration state to files: static graph
// snapshots (SVG or PNG) and markdown trail reports. Snapshots are the
// shareable artifact behind the E key and the --snapshot flag.
package export

import (
	"fmt"
	"image/color"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"git.sr.ht/~sbinet/gg"
	"github.com/ajstarks/svgo"
	"golang.org/x/image/font/basicfont"

	"github.com/vanderheijden86/reelgraph/pkg/analysis"
	"github.com/vanderheijden86/reelgraph/pkg/metrics"
	"github.com/vanderheijden86/reelgraph/pkg/model"
)

// SnapshotOptions controls graph snapshot export behaviour.
type SnapshotOptions struct {
	Path     string             // Output path; format inferred from extension when Format empty
	Format   string             // "svg" or "png" (case-insensitive). If empty, inferred from Path.
	Title    string             // Optional title rendered in the header
	Source   string             // Optional provenance line, e.g. `search "heist thrillers"`
	Graph    *model.GraphData   // Graph to render
	Insights *analysis.Insights // Precomputed analysis; computed here when nil
}

// SaveSnapshot renders a static snapshot of the exploration graph.
// The visual language stays deliberately small: one ring of titles
// around the focused node, connection lines colored by kind, and a
// summary block a reader can scan without the app open.
func SaveSnapshot(opts SnapshotOptions) error {
	defer metrics.Timer(metrics.SnapshotRender)()

	if opts.Graph == nil || opts.Graph.IsEmpty() {
		return fmt.Errorf("no graph to export")
	}

	format := strings.ToLower(strings.TrimPrefix(opts.Format, "."))
	if format == "" {
		switch strings.ToLower(filepath.Ext(opts.Path)) {
		case ".svg":
			format = "svg"
		case ".png":
			format = "png"
		default:
			format = "svg" // safe default
			if opts.Path != "" && filepath.Ext(opts.Path) == "" {
				opts.Path = opts.Path + ".svg"
			}
		}
	}
	if format != "svg" && format != "png" {
		return fmt.Errorf("unsupported format %q (want svg or png)", format)
	}
	if opts.Path == "" {
		return fmt.Errorf("output path is required")
	}

	if opts.Insights == nil {
		ins := analysis.Compute(opts.Graph)
		opts.Insights = &ins
	}

	if dir := filepath.Dir(opts.Path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}

	layout := buildLayout(opts)

	switch format {
	case "svg":
		return renderSVG(opts.Path, layout)
	case "png":
		return renderPNG(opts.Path, layout)
	}
	return nil
}

type layoutNode struct {
	X, Y     float64 // top-left corner
	W, H     float64
	Fill     color.RGBA
	Stroke   color.RGBA
	StrokeW  float64
	Line1    string
	Line2    string
	IsCenter bool
}

type layoutEdge struct {
	X1, Y1 float64
	X2, Y2 float64
	Color  color.RGBA
	Width  float64
}

type legendRow struct {
	Swatch color.RGBA
	IsLine bool
	Label  string
}

type layoutResult struct {
	Width, Height float64
	HeaderHeight  float64
	Title         string
	Source        string
	Generated     string
	Summary       []string
	Legend        []legendRow
	Nodes         []layoutNode
	Edges         []layoutEdge
}

var (
	colorMovie    = color.RGBA{R: 0xdb, G: 0xe4, B: 0xff, A: 0xff}
	colorSeries   = color.RGBA{R: 0xd3, G: 0xf9, B: 0xd8, A: 0xff}
	colorMixed    = color.RGBA{R: 0xf1, G: 0xf3, B: 0xf5, A: 0xff}
	colorStroke   = color.RGBA{R: 0x34, G: 0x3a, B: 0x40, A: 0xff}
	colorCenter   = color.RGBA{R: 0xf0, G: 0x8c, B: 0x00, A: 0xff}
	colorGenre    = color.RGBA{R: 0x74, G: 0xc0, B: 0xfc, A: 0xff}
	colorCast     = color.RGBA{R: 0xf7, G: 0x83, B: 0xac, A: 0xff}
	colorThematic = color.RGBA{R: 0xb1, G: 0x97, B: 0xfc, A: 0xff}
	colorText     = color.RGBA{R: 0x21, G: 0x25, B: 0x29, A: 0xff}
	colorSubtle   = color.RGBA{R: 0x66, G: 0x66, B: 0x66, A: 0xff}
	colorBackdrop = color.RGBA{R: 0xf9, G: 0xfa, B: 0xfb, A: 0xff}
	colorHeaderBG = color.RGBA{R: 0xf3, G: 0xf4, B: 0xf6, A: 0xff}
	colorLegendBG = color.RGBA{R: 0xee, G: 0xee, B: 0xee, A: 0xff}
)

func nodeFill(t model.MediaType) color.RGBA {
	switch t {
	case model.MediaMovie:
		return colorMovie
	case model.MediaSeries:
		return colorSeries
	default:
		return colorMixed
	}
}

func edgeColor(k model.EdgeKind) color.RGBA {
	switch k {
	case model.EdgeSharedGenre:
		return colorGenre
	case model.EdgeCastOverlap:
		return colorCast
	case model.EdgeThematic:
		return colorThematic
	default:
		return colorSubtle
	}
}

func edgeWidth(weight float64) float64 {
	if weight <= 0 {
		return 1.5
	}
	w := 1.0 + 2.0*weight
	if w > 3.0 {
		w = 3.0
	}
	return w
}

// buildLayout places the focused node at the ring center and spreads
// the rest evenly around it. Centerless graphs (browse results) use
// the full ring. Node order on the ring follows input order so two
// snapshots of the same graph come out identical.
func buildLayout(opts SnapshotOptions) layoutResult {
	const (
		nodeW        = 150.0
		nodeH        = 46.0
		headerHeight = 96.0
		padding      = 36.0
		minWidth     = 640.0
		minHeight    = 480.0
	)

	g := opts.Graph
	center := g.CenterNode()

	ring := make([]model.GraphNode, 0, len(g.Nodes))
	for _, n := range g.Nodes {
		if center != nil && n.ID == center.ID {
			continue
		}
		ring = append(ring, n)
	}

	radius := 170.0
	if r := float64(len(ring)) * 26.0; r > radius {
		radius = r
	}
	if len(ring) == 0 {
		radius = 0
	}

	span := 2 * (radius + nodeW/2 + padding)
	width := span
	if width < minWidth {
		width = minWidth
	}
	height := headerHeight + span
	if height < minHeight {
		height = minHeight
	}
	cx := width / 2
	cy := headerHeight + (height-headerHeight)/2

	title := opts.Title
	if title == "" {
		title = "Exploration snapshot"
	}

	result := layoutResult{
		Width:        width,
		Height:       height,
		HeaderHeight: headerHeight,
		Title:        title,
		Source:       opts.Source,
		Generated:    time.Now().Format("2006-01-02 15:04"),
		Summary:      summaryLines(opts.Insights),
		Legend:       legendRows(g),
	}

	positions := make(map[string][2]float64, len(g.Nodes))
	place := func(n model.GraphNode, x, y float64) {
		positions[n.ID] = [2]float64{x, y}
		ln := layoutNode{
			X:        x - nodeW/2,
			Y:        y - nodeH/2,
			W:        nodeW,
			H:        nodeH,
			Fill:     nodeFill(n.MediaType),
			Stroke:   colorStroke,
			StrokeW:  1,
			Line1:    truncate(n.Title, 20),
			Line2:    n.MediaType.Label(),
			IsCenter: n.IsCenter,
		}
		if n.IsCenter {
			ln.Stroke = colorCenter
			ln.StrokeW = 3
		}
		result.Nodes = append(result.Nodes, ln)
	}

	if center != nil {
		place(*center, cx, cy)
	}
	for i, n := range ring {
		angle := -math.Pi/2 + 2*math.Pi*float64(i)/float64(len(ring))
		place(n, cx+radius*math.Cos(angle), cy+radius*math.Sin(angle))
	}

	for _, e := range g.Edges {
		from, okFrom := positions[e.Source]
		to, okTo := positions[e.Target]
		if !okFrom || !okTo {
			continue
		}
		result.Edges = append(result.Edges, layoutEdge{
			X1: from[0], Y1: from[1],
			X2: to[0], Y2: to[1],
			Color: edgeColor(e.Kind),
			Width: edgeWidth(e.Weight),
		})
	}

	return result
}

func summaryLines(ins *analysis.Insights) []string {
	if ins == nil {
		return nil
	}
	lines := []string{
		fmt.Sprintf("%d titles, %d connections", ins.NodeCount, ins.EdgeCount),
	}
	if ins.NodeCount > 1 {
		lines = append(lines, fmt.Sprintf("density %.2f, %d cluster(s)", ins.Density, ins.Components))
	}
	if len(ins.Hubs) > 0 {
		lines = append(lines, fmt.Sprintf("top hub: %s", truncate(ins.Hubs[0].Title, 28)))
	}
	return lines
}

// legendRows lists only what the graph actually contains, so a
// movies-only snapshot does not advertise a series swatch.
func legendRows(g *model.GraphData) []legendRow {
	var rows []legendRow

	types := make(map[model.MediaType]bool, 2)
	hasCenter := false
	for _, n := range g.Nodes {
		types[n.MediaType] = true
		if n.IsCenter {
			hasCenter = true
		}
	}
	if types[model.MediaMovie] {
		rows = append(rows, legendRow{Swatch: colorMovie, Label: model.MediaMovie.Label()})
	}
	if types[model.MediaSeries] {
		rows = append(rows, legendRow{Swatch: colorSeries, Label: model.MediaSeries.Label()})
	}
	if hasCenter {
		rows = append(rows, legendRow{Swatch: colorCenter, Label: "Focused"})
	}

	for _, k := range []model.EdgeKind{model.EdgeSharedGenre, model.EdgeCastOverlap, model.EdgeThematic} {
		if g.KindCounts()[k] > 0 {
			rows = append(rows, legendRow{Swatch: edgeColor(k), IsLine: true, Label: k.Label()})
		}
	}
	return rows
}

func renderSVG(path string, layout layoutResult) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create svg: %w", err)
	}
	defer file.Close()
	return renderSVGToWriter(file, layout)
}

func renderSVGToWriter(w io.Writer, layout layoutResult) error {
	canvas := svg.New(w)
	canvas.Start(int(layout.Width), int(layout.Height))

	canvas.Rect(0, 0, int(layout.Width), int(layout.Height), "fill:"+css(colorBackdrop))
	canvas.Rect(0, 0, int(layout.Width), int(layout.HeaderHeight), "fill:"+css(colorHeaderBG))

	canvas.Text(24, 34, layout.Title,
		fmt.Sprintf("fill:%s;font-size:18px;font-weight:bold;font-family:monospace", css(colorText)))
	headerY := 54
	if layout.Source != "" {
		canvas.Text(24, headerY, layout.Source,
			fmt.Sprintf("fill:%s;font-size:12px;font-family:monospace", css(colorSubtle)))
		headerY += 16
	}
	canvas.Text(24, headerY, "generated "+layout.Generated,
		fmt.Sprintf("fill:%s;font-size:12px;font-family:monospace", css(colorSubtle)))

	drawSummarySVG(canvas, layout)

	for _, e := range layout.Edges {
		canvas.Line(int(e.X1), int(e.Y1), int(e.X2), int(e.Y2),
			fmt.Sprintf("stroke:%s;stroke-width:%.1f", css(e.Color), e.Width))
	}

	for _, n := range layout.Nodes {
		canvas.Roundrect(int(n.X), int(n.Y), int(n.W), int(n.H), 8, 8,
			fmt.Sprintf("fill:%s;stroke:%s;stroke-width:%.0f", css(n.Fill), css(n.Stroke), n.StrokeW))
		canvas.Text(int(n.X+n.W/2), int(n.Y+19), n.Line1,
			fmt.Sprintf("fill:%s;font-size:13px;font-family:monospace;text-anchor:middle", css(colorText)))
		canvas.Text(int(n.X+n.W/2), int(n.Y+36), n.Line2,
			fmt.Sprintf("fill:%s;font-size:11px;font-family:monospace;text-anchor:middle", css(colorSubtle)))
	}

	drawLegendSVG(canvas, layout)

	canvas.End()
	return nil
}

func drawSummarySVG(canvas *svg.SVG, layout layoutResult) {
	if len(layout.Summary) == 0 {
		return
	}
	x := int(layout.Width) - 280
	y := 24
	for _, line := range layout.Summary {
		canvas.Text(x, y, line,
			fmt.Sprintf("fill:%s;font-size:12px;font-family:monospace", css(colorText)))
		y += 16
	}
}

func drawLegendSVG(canvas *svg.SVG, layout layoutResult) {
	if len(layout.Legend) == 0 {
		return
	}
	const rowH = 20
	boxW := 170
	boxH := len(layout.Legend)*rowH + 16
	x := 16
	y := int(layout.Height) - boxH - 16

	canvas.Rect(x, y, boxW, boxH, fmt.Sprintf("fill:%s;stroke:%s", css(colorLegendBG), css(colorSubtle)))
	for i, row := range layout.Legend {
		ry := y + 12 + i*rowH
		if row.IsLine {
			canvas.Line(x+10, ry+4, x+30, ry+4,
				fmt.Sprintf("stroke:%s;stroke-width:3", css(row.Swatch)))
		} else {
			canvas.Rect(x+10, ry-4, 20, 12,
				fmt.Sprintf("fill:%s;stroke:%s", css(row.Swatch), css(colorStroke)))
		}
		canvas.Text(x+38, ry+8, row.Label,
			fmt.Sprintf("fill:%s;font-size:11px;font-family:monospace", css(colorText)))
	}
}

func renderPNG(path string, layout layoutResult) error {
	dc := gg.NewContext(int(layout.Width), int(layout.Height))

	dc.SetColor(colorBackdrop)
	dc.Clear()
	dc.SetColor(colorHeaderBG)
	dc.DrawRectangle(0, 0, layout.Width, layout.HeaderHeight)
	dc.Fill()

	dc.SetFontFace(basicfont.Face7x13)

	dc.SetColor(colorText)
	dc.DrawString(layout.Title, 24, 34)
	headerY := 54.0
	dc.SetColor(colorSubtle)
	if layout.Source != "" {
		dc.DrawString(layout.Source, 24, headerY)
		headerY += 16
	}
	dc.DrawString("generated "+layout.Generated, 24, headerY)

	if len(layout.Summary) > 0 {
		x := layout.Width - 280
		y := 24.0
		dc.SetColor(colorText)
		for _, line := range layout.Summary {
			dc.DrawString(line, x, y)
			y += 16
		}
	}

	for _, e := range layout.Edges {
		dc.SetColor(e.Color)
		dc.SetLineWidth(e.Width)
		dc.DrawLine(e.X1, e.Y1, e.X2, e.Y2)
		dc.Stroke()
	}

	for _, n := range layout.Nodes {
		dc.SetColor(n.Fill)
		dc.DrawRoundedRectangle(n.X, n.Y, n.W, n.H, 8)
		dc.Fill()
		dc.SetColor(n.Stroke)
		dc.SetLineWidth(n.StrokeW)
		dc.DrawRoundedRectangle(n.X, n.Y, n.W, n.H, 8)
		dc.Stroke()

		dc.SetColor(colorText)
		dc.DrawStringAnchored(n.Line1, n.X+n.W/2, n.Y+16, 0.5, 0.5)
		dc.SetColor(colorSubtle)
		dc.DrawStringAnchored(n.Line2, n.X+n.W/2, n.Y+32, 0.5, 0.5)
	}

	drawLegendPNG(dc, layout)

	if err := dc.SavePNG(path); err != nil {
		return fmt.Errorf("write png: %w", err)
	}
	return nil
}

func drawLegendPNG(dc *gg.Context, layout layoutResult) {
	if len(layout.Legend) == 0 {
		return
	}
	const rowH = 20.0
	boxW := 170.0
	boxH := float64(len(layout.Legend))*rowH + 16
	x := 16.0
	y := layout.Height - boxH - 16

	dc.SetColor(colorLegendBG)
	dc.DrawRectangle(x, y, boxW, boxH)
	dc.Fill()
	dc.SetColor(colorSubtle)
	dc.SetLineWidth(1)
	dc.DrawRectangle(x, y, boxW, boxH)
	dc.Stroke()

	for i, row := range layout.Legend {
		ry := y + 12 + float64(i)*rowH
		if row.IsLine {
			dc.SetColor(row.Swatch)
			dc.SetLineWidth(3)
			dc.DrawLine(x+10, ry+4, x+30, ry+4)
			dc.Stroke()
		} else {
			dc.SetColor(row.Swatch)
			dc.DrawRectangle(x+10, ry-4, 20, 12)
			dc.Fill()
			dc.SetColor(colorStroke)
			dc.SetLineWidth(1)
			dc.DrawRectangle(x+10, ry-4, 20, 12)
			dc.Stroke()
		}
		dc.SetColor(colorText)
		dc.DrawStringAnchored(row.Label, x+38, ry+4, 0, 0.5)
	}
}

// truncate shortens s to max runes, appending "..." when cut.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max <= 0 {
		return ""
	}
	if max <= 3 {
		return string(runes[:max])
	}
	return string(runes[:max-3]) + "..."
}

func css(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
