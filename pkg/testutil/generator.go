// Package testutil provides deterministic media-graph fixtures for testing
// the exploration packages. All generators produce stable output for a given
// seed.
package testutil

import (
	"fmt"
	"math/rand"
	"time"

	json "github.com/goccy/go-json"

	"github.com/vanderheijden86/reelgraph/pkg/model"
)

// GeneratorConfig controls graph generation.
type GeneratorConfig struct {
	Seed     int64             // Random seed for determinism (0 = use current time)
	IDPrefix string            // Prefix for node IDs (default: "t")
	TypeMix  []model.MediaType // Media type distribution (nil = movies only)
	Weighted bool              // Attach similarity weights to edges
}

// DefaultConfig returns a config suitable for most tests.
func DefaultConfig() GeneratorConfig {
	return GeneratorConfig{
		Seed:     42, // Deterministic
		IDPrefix: "t",
		TypeMix:  []model.MediaType{model.MediaMovie},
	}
}

// Generator creates graph fixtures with various topologies.
type Generator struct {
	cfg GeneratorConfig
	rng *rand.Rand
}

// New creates a Generator with the given config.
func New(cfg GeneratorConfig) *Generator {
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	if cfg.IDPrefix == "" {
		cfg.IDPrefix = "t"
	}
	if len(cfg.TypeMix) == 0 {
		cfg.TypeMix = []model.MediaType{model.MediaMovie}
	}
	return &Generator{
		cfg: cfg,
		rng: rand.New(rand.NewSource(seed)),
	}
}

// NewDefault creates a Generator with default config.
func NewDefault() *Generator {
	return New(DefaultConfig())
}

var sampleTitles = []string{
	"Midnight Run", "Static Harbor", "The Long Reel", "Glass Orchard",
	"Northern Signal", "Paper Comet", "Echo District", "Silver Thread",
	"The Last Matinee", "Low Tide", "Borrowed Light", "Cold Open",
}

func (g *Generator) node(i int) model.GraphNode {
	mt := g.cfg.TypeMix[g.rng.Intn(len(g.cfg.TypeMix))]
	title := sampleTitles[g.rng.Intn(len(sampleTitles))]
	return model.GraphNode{
		ID:        fmt.Sprintf("%s-%d", g.cfg.IDPrefix, i),
		MediaType: mt,
		Title:     fmt.Sprintf("%s %d", title, i),
	}
}

var edgeKinds = []model.EdgeKind{model.EdgeSharedGenre, model.EdgeCastOverlap, model.EdgeThematic}

func (g *Generator) edge(from, to string) model.GraphEdge {
	e := model.GraphEdge{
		Source: from,
		Target: to,
		Kind:   edgeKinds[g.rng.Intn(len(edgeKinds))],
	}
	if g.cfg.Weighted {
		// Weights in [0.30, 0.95), rounded to two decimals
		e.Weight = float64(30+g.rng.Intn(65)) / 100
	}
	return e
}

// Neighborhood builds a focused graph: one center connected to n neighbors.
// This is the shape a similarity fetch returns.
func (g *Generator) Neighborhood(n int) *model.GraphData {
	nodes := make([]model.GraphNode, 0, n+1)
	edges := make([]model.GraphEdge, 0, n)

	center := g.node(0)
	center.IsCenter = true
	nodes = append(nodes, center)

	for i := 1; i <= n; i++ {
		nb := g.node(i)
		nodes = append(nodes, nb)
		edges = append(edges, g.edge(center.ID, nb.ID))
	}

	return &model.GraphData{Nodes: nodes, Edges: edges}
}

// Cluster builds a centerless result set with loose pairwise edges,
// the shape a search or browse fetch returns. Roughly every third pair
// of adjacent nodes is connected.
func (g *Generator) Cluster(n int) *model.GraphData {
	nodes := make([]model.GraphNode, 0, n)
	var edges []model.GraphEdge

	for i := 0; i < n; i++ {
		nodes = append(nodes, g.node(i))
	}
	for i := 1; i < n; i++ {
		if g.rng.Intn(3) != 0 {
			edges = append(edges, g.edge(nodes[i-1].ID, nodes[i].ID))
		}
	}

	return &model.GraphData{Nodes: nodes, Edges: edges}
}

// Chain builds a path graph: n0 - n1 - ... - n{size-1}.
func (g *Generator) Chain(size int) *model.GraphData {
	nodes := make([]model.GraphNode, 0, size)
	edges := make([]model.GraphEdge, 0, size-1)

	for i := 0; i < size; i++ {
		nodes = append(nodes, g.node(i))
		if i > 0 {
			edges = append(edges, g.edge(nodes[i-1].ID, nodes[i].ID))
		}
	}

	return &model.GraphData{Nodes: nodes, Edges: edges}
}

// Dense builds a complete graph over n nodes, every pair connected.
func (g *Generator) Dense(n int) *model.GraphData {
	nodes := make([]model.GraphNode, 0, n)
	edges := make([]model.GraphEdge, 0, n*(n-1)/2)

	for i := 0; i < n; i++ {
		nodes = append(nodes, g.node(i))
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			edges = append(edges, g.edge(nodes[i].ID, nodes[j].ID))
		}
	}

	return &model.GraphData{Nodes: nodes, Edges: edges}
}

// Constellation builds several disjoint neighborhoods in one graph, useful
// for exercising connected-component analysis. Each group is a hub with
// groupSize-1 neighbors; node IDs are prefixed per group.
func (g *Generator) Constellation(groups, groupSize int) *model.GraphData {
	var nodes []model.GraphNode
	var edges []model.GraphEdge

	id := 0
	for c := 0; c < groups; c++ {
		hub := g.node(id)
		hub.ID = fmt.Sprintf("%s-c%d-%d", g.cfg.IDPrefix, c, id)
		nodes = append(nodes, hub)
		id++

		for i := 1; i < groupSize; i++ {
			nb := g.node(id)
			nb.ID = fmt.Sprintf("%s-c%d-%d", g.cfg.IDPrefix, c, id)
			nodes = append(nodes, nb)
			edges = append(edges, g.edge(hub.ID, nb.ID))
			id++
		}
	}

	return &model.GraphData{Nodes: nodes, Edges: edges}
}

// CrossMedia builds a bipartite graph of movies and series where every movie
// connects to every series, the shape a cross-media browse can return.
func (g *Generator) CrossMedia(movies, series int) *model.GraphData {
	nodes := make([]model.GraphNode, 0, movies+series)
	var edges []model.GraphEdge

	for i := 0; i < movies; i++ {
		n := g.node(i)
		n.ID = fmt.Sprintf("m-%d", i)
		n.MediaType = model.MediaMovie
		nodes = append(nodes, n)
	}
	for i := 0; i < series; i++ {
		n := g.node(movies + i)
		n.ID = fmt.Sprintf("s-%d", i)
		n.MediaType = model.MediaSeries
		nodes = append(nodes, n)
	}
	for i := 0; i < movies; i++ {
		for j := 0; j < series; j++ {
			edges = append(edges, g.edge(nodes[i].ID, nodes[movies+j].ID))
		}
	}

	return &model.GraphData{Nodes: nodes, Edges: edges}
}

// Empty returns a graph with no nodes, as an empty-but-successful fetch
// produces.
func Empty() *model.GraphData {
	return &model.GraphData{}
}

// QuickNeighborhood creates a focused graph with default settings.
func QuickNeighborhood(n int) *model.GraphData {
	return NewDefault().Neighborhood(n)
}

// QuickCluster creates a centerless result graph with default settings.
func QuickCluster(n int) *model.GraphData {
	return NewDefault().Cluster(n)
}

// ToEnvelope renders a graph as the JSON envelope the recommendation service
// returns, for use as an httptest response body.
func ToEnvelope(g *model.GraphData) string {
	data, err := json.Marshal(struct {
		Graph *model.GraphData `json:"graph"`
	}{Graph: g})
	if err != nil {
		return "{}"
	}
	return string(data)
}
