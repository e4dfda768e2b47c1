package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	json "github.com/goccy/go-json"

	"github.com/vanderheijden86/reelgraph/pkg/analysis"
	"github.com/vanderheijden86/reelgraph/pkg/config"
	"github.com/vanderheijden86/reelgraph/pkg/explore"
	"github.com/vanderheijden86/reelgraph/pkg/export"
	"github.com/vanderheijden86/reelgraph/pkg/model"
)

// Robot modes print one machine-readable JSON envelope to stdout and exit,
// for agents and scripts that want the graph without the TUI.
const (
	robotModeSearch   = "search"
	robotModeBrowse   = "browse"
	robotModeSimilar  = "similar"
	robotModeInsights = "insights"
)

// graphService is the slice of api.Client the robot modes fetch through.
type graphService interface {
	SearchGraph(ctx context.Context, p explore.SearchParams) (*model.GraphData, error)
	BrowseGraph(ctx context.Context, p explore.BrowseParams) (*model.GraphData, error)
	SimilarGraph(ctx context.Context, p explore.FocusParams) (*model.GraphData, error)
}

type robotArgs struct {
	query    string
	category string
	nodeID   string
	filter   model.MediaType
	snapshot string
}

type robotNode struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	MediaType string `json:"media_type"`
	IsCenter  bool   `json:"is_center,omitempty"`
	Route     string `json:"route,omitempty"`
}

type robotEdge struct {
	Source string  `json:"source"`
	Target string  `json:"target"`
	Kind   string  `json:"kind"`
	Weight float64 `json:"weight,omitempty"`
}

type robotGraphOutput struct {
	GeneratedAt string             `json:"generated_at"`
	Service     string             `json:"service"`
	Mode        string             `json:"mode"`
	Query       string             `json:"query,omitempty"`
	Category    string             `json:"category,omitempty"`
	NodeID      string             `json:"node_id,omitempty"`
	MediaType   string             `json:"media_type,omitempty"`
	Filter      string             `json:"filter,omitempty"`
	Limit       int                `json:"limit"`
	Depth       int                `json:"depth,omitempty"`
	CrossMedia  bool               `json:"cross_media,omitempty"`
	NodeCount   int                `json:"node_count"`
	EdgeCount   int                `json:"edge_count"`
	Nodes       []robotNode        `json:"nodes"`
	Edges       []robotEdge        `json:"edges"`
	Insights    *analysis.Insights `json:"insights,omitempty"`
	Snapshot    string             `json:"snapshot,omitempty"`
	UsageHints  []string           `json:"usage_hints,omitempty"`
}

type robotInsightsOutput struct {
	GeneratedAt string            `json:"generated_at"`
	Service     string            `json:"service"`
	Category    string            `json:"category"`
	Limit       int               `json:"limit"`
	CrossMedia  bool              `json:"cross_media,omitempty"`
	Summary     string            `json:"summary"`
	Insights    analysis.Insights `json:"insights"`
	UsageHints  []string          `json:"usage_hints,omitempty"`
}

func runRobot(w io.Writer, svc graphService, cfg config.Config, mode string, args robotArgs) error {
	d := cfg.Service.Timeout()
	if d <= 0 {
		d = 10 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), d)
	defer cancel()

	switch mode {
	case robotModeSearch:
		return runRobotSearch(ctx, w, svc, cfg, args)
	case robotModeBrowse:
		return runRobotBrowse(ctx, w, svc, cfg, args)
	case robotModeSimilar:
		return runRobotSimilar(ctx, w, svc, cfg, args)
	case robotModeInsights:
		return runRobotInsights(ctx, w, svc, cfg, args)
	}
	return fmt.Errorf("unknown robot mode %q", mode)
}

func runRobotSearch(ctx context.Context, w io.Writer, svc graphService, cfg config.Config, args robotArgs) error {
	query := strings.TrimSpace(args.query)
	if query == "" {
		return errors.New("--robot-search needs a query")
	}

	g, err := svc.SearchGraph(ctx, explore.SearchParams{
		Query:  query,
		Filter: args.filter,
		Limit:  cfg.Explore.Limit,
	})
	if err != nil {
		return fmt.Errorf("search %q: %w", query, err)
	}

	out := newRobotGraphOutput(cfg, robotModeSearch, g)
	out.Query = query
	out.Filter = string(args.filter)
	out.UsageHints = []string{
		"reel --robot-similar <id> --type <movie|series> expands one result into its neighborhood",
		"add --snapshot graph.svg to render this graph to a file",
		"run reel and press / to refine the search interactively",
	}

	if args.snapshot != "" {
		if err := saveRobotSnapshot(args.snapshot, query, fmt.Sprintf("search %q", query), g, out.Insights); err != nil {
			return err
		}
		out.Snapshot = args.snapshot
	}

	return writeRobotOutput(w, out)
}

func runRobotBrowse(ctx context.Context, w io.Writer, svc graphService, cfg config.Config, args robotArgs) error {
	cat, err := resolveCategory(args.category, cfg)
	if err != nil {
		return err
	}

	g, err := svc.BrowseGraph(ctx, explore.BrowseParams{
		Category:   cat,
		Limit:      cfg.Explore.Limit,
		CrossMedia: cfg.Explore.CrossMedia,
	})
	if err != nil {
		return fmt.Errorf("browse %s: %w", cat.Slug(), err)
	}

	out := newRobotGraphOutput(cfg, robotModeBrowse, g)
	out.Category = cat.Slug()
	out.CrossMedia = cfg.Explore.CrossMedia
	out.UsageHints = []string{
		"reel --robot-similar <id> --type <movie|series> drills into one title",
		"pass --cross-media to mix movies and series in this category",
		"reel --robot-insights summarizes the structure without the node list",
	}

	if args.snapshot != "" {
		if err := saveRobotSnapshot(args.snapshot, cat.Label(), "browse "+cat.Slug(), g, out.Insights); err != nil {
			return err
		}
		out.Snapshot = args.snapshot
	}

	return writeRobotOutput(w, out)
}

func runRobotSimilar(ctx context.Context, w io.Writer, svc graphService, cfg config.Config, args robotArgs) error {
	id := strings.TrimSpace(args.nodeID)
	if id == "" {
		return errors.New("--robot-similar needs a node ID")
	}
	if !args.filter.Valid() {
		return errors.New("--robot-similar needs --type movie or --type series")
	}

	g, err := svc.SimilarGraph(ctx, explore.FocusParams{
		NodeID:    id,
		MediaType: args.filter,
		Limit:     cfg.Explore.Limit,
		Depth:     cfg.Explore.Depth,
	})
	if err != nil {
		return fmt.Errorf("similar %s: %w", id, err)
	}

	out := newRobotGraphOutput(cfg, robotModeSimilar, g)
	out.NodeID = id
	out.MediaType = string(args.filter)
	out.Depth = cfg.Explore.Depth
	out.UsageHints = []string{
		"chain --robot-similar calls to walk the graph hop by hop",
		"raise --depth to pull a wider neighborhood in one call",
		"add --snapshot graph.svg to render this graph to a file",
	}

	if args.snapshot != "" {
		title := id
		if center := g.CenterNode(); center != nil {
			title = center.Title
		}
		if err := saveRobotSnapshot(args.snapshot, title, "similar "+id, g, out.Insights); err != nil {
			return err
		}
		out.Snapshot = args.snapshot
	}

	return writeRobotOutput(w, out)
}

func runRobotInsights(ctx context.Context, w io.Writer, svc graphService, cfg config.Config, args robotArgs) error {
	cat, err := resolveCategory("", cfg)
	if err != nil {
		return err
	}

	g, err := svc.BrowseGraph(ctx, explore.BrowseParams{
		Category:   cat,
		Limit:      cfg.Explore.Limit,
		CrossMedia: cfg.Explore.CrossMedia,
	})
	if err != nil {
		return fmt.Errorf("browse %s: %w", cat.Slug(), err)
	}

	ins := analysis.Compute(g)
	out := robotInsightsOutput{
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		Service:     cfg.Service.BaseURL,
		Category:    cat.Slug(),
		Limit:       cfg.Explore.Limit,
		CrossMedia:  cfg.Explore.CrossMedia,
		Summary:     ins.Summary(),
		Insights:    ins,
		UsageHints: []string{
			"reel --robot-browse " + cat.Slug() + " prints the full node list for this graph",
			"hubs are ranked by PageRank, mostConnected by degree",
		},
	}

	if args.snapshot != "" {
		if err := saveRobotSnapshot(args.snapshot, cat.Label(), "browse "+cat.Slug(), g, &ins); err != nil {
			return err
		}
	}

	return writeRobotOutput(w, out)
}

// resolveCategory parses the slug, falling back to the configured default
// when the flag carried no value.
func resolveCategory(slug string, cfg config.Config) (model.BrowseCategory, error) {
	s := strings.TrimSpace(slug)
	if s == "" {
		s = cfg.Explore.DefaultCategory
	}
	if s == "" {
		return model.CategoryMyMoviePicks, nil
	}
	return model.ParseCategory(s)
}

func newRobotGraphOutput(cfg config.Config, mode string, g *model.GraphData) robotGraphOutput {
	if g == nil {
		g = &model.GraphData{}
	}
	ins := analysis.Compute(g)
	return robotGraphOutput{
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		Service:     cfg.Service.BaseURL,
		Mode:        mode,
		Limit:       cfg.Explore.Limit,
		NodeCount:   g.Len(),
		EdgeCount:   len(g.Edges),
		Nodes:       robotNodes(g),
		Edges:       robotEdges(g),
		Insights:    &ins,
	}
}

func robotNodes(g *model.GraphData) []robotNode {
	nodes := make([]robotNode, 0, len(g.Nodes))
	for _, n := range g.Nodes {
		nodes = append(nodes, robotNode{
			ID:        n.ID,
			Title:     n.Title,
			MediaType: string(n.MediaType),
			IsCenter:  n.IsCenter,
			Route:     n.Route(),
		})
	}
	return nodes
}

func robotEdges(g *model.GraphData) []robotEdge {
	edges := make([]robotEdge, 0, len(g.Edges))
	for _, e := range g.Edges {
		edges = append(edges, robotEdge{
			Source: e.Source,
			Target: e.Target,
			Kind:   string(e.Kind),
			Weight: e.Weight,
		})
	}
	return edges
}

func saveRobotSnapshot(path, title, source string, g *model.GraphData, ins *analysis.Insights) error {
	err := export.SaveSnapshot(export.SnapshotOptions{
		Path:     path,
		Title:    title,
		Source:   source,
		Graph:    g,
		Insights: ins,
	})
	if err != nil {
		return fmt.Errorf("snapshot: %w", err)
	}
	return nil
}

func writeRobotOutput(w io.Writer, out any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
