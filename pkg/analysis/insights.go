// Package analysis computes structural insights about a fetched exploration
// graph: how dense the neighborhood is, which titles act as hubs, and how the
// relationship kinds break down. Results feed the insights panel and the
// --robot-insights output.
package analysis

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/graph/network"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"

	"github.com/vanderheijden86/reelgraph/pkg/metrics"
	"github.com/vanderheijden86/reelgraph/pkg/model"
)

// TopK caps the ranked lists so the panel stays readable.
const TopK = 5

// RankedNode is a title with an importance score.
type RankedNode struct {
	ID        string          `json:"id"`
	Title     string          `json:"title"`
	MediaType model.MediaType `json:"mediaType"`
	Score     float64         `json:"score"`
}

// Insights holds the computed structure of one graph.
type Insights struct {
	NodeCount        int                      `json:"nodeCount"`
	EdgeCount        int                      `json:"edgeCount"`
	Density          float64                  `json:"density"`
	Components       int                      `json:"components"`
	LargestComponent int                      `json:"largestComponent"`
	Hubs             []RankedNode             `json:"hubs,omitempty"`          // by PageRank
	MostConnected    []RankedNode             `json:"mostConnected,omitempty"` // by degree
	KindMix          map[model.EdgeKind]int   `json:"kindMix,omitempty"`
	MediaMix         map[model.MediaType]int  `json:"mediaMix,omitempty"`
	AvgWeight        float64                  `json:"avgWeight,omitempty"`
}

// Summary returns a one-line description for the panel header.
func (in Insights) Summary() string {
	if in.NodeCount == 0 {
		return "Nothing to analyze yet"
	}
	clusters := "clusters"
	if in.Components == 1 {
		clusters = "cluster"
	}
	return fmt.Sprintf("%d titles, %d connections, %d %s", in.NodeCount, in.EdgeCount, in.Components, clusters)
}

// Analyzer builds the gonum representation of a media graph once and answers
// structural queries about it.
type Analyzer struct {
	und      *simple.UndirectedGraph
	dir      *simple.DirectedGraph
	idToNode map[string]int64
	nodeToID map[int64]string
	nodes    map[string]model.GraphNode
	edges    []model.GraphEdge
}

// NewAnalyzer indexes the graph. Edges whose endpoints are missing from the
// node set are dropped, as are self-loops, which the service should never
// send but simple graphs reject outright.
func NewAnalyzer(g *model.GraphData) *Analyzer {
	a := &Analyzer{
		und:      simple.NewUndirectedGraph(),
		dir:      simple.NewDirectedGraph(),
		idToNode: make(map[string]int64, g.Len()),
		nodeToID: make(map[int64]string, g.Len()),
		nodes:    make(map[string]model.GraphNode, g.Len()),
	}
	if g == nil {
		return a
	}

	for _, n := range g.Nodes {
		if _, dup := a.idToNode[n.ID]; dup {
			continue
		}
		un := a.und.NewNode()
		a.und.AddNode(un)
		a.dir.AddNode(simple.Node(un.ID()))
		a.idToNode[n.ID] = un.ID()
		a.nodeToID[un.ID()] = n.ID
		a.nodes[n.ID] = n
	}

	for _, e := range g.Edges {
		u, okU := a.idToNode[e.Source]
		v, okV := a.idToNode[e.Target]
		if !okU || !okV || u == v {
			continue
		}
		if a.und.HasEdgeBetween(u, v) {
			continue
		}
		a.und.SetEdge(a.und.NewEdge(a.und.Node(u), a.und.Node(v)))
		// Similarity is symmetric; PageRank wants a directed graph, so mirror
		// each edge.
		a.dir.SetEdge(a.dir.NewEdge(a.dir.Node(u), a.dir.Node(v)))
		a.dir.SetEdge(a.dir.NewEdge(a.dir.Node(v), a.dir.Node(u)))
		a.edges = append(a.edges, e)
	}

	return a
}

// Compute runs the full analysis. Graphs here are small (a couple dozen
// nodes) so everything is synchronous; callers that need it off the UI
// thread wrap it in a worker.
func Compute(g *model.GraphData) Insights {
	defer metrics.Timer(metrics.InsightsCompute)()
	return NewAnalyzer(g).Insights()
}

// Insights computes all metrics over the indexed graph.
func (a *Analyzer) Insights() Insights {
	n := len(a.idToNode)
	in := Insights{
		NodeCount: n,
		EdgeCount: len(a.edges),
	}
	if n == 0 {
		return in
	}

	if n > 1 {
		in.Density = 2 * float64(len(a.edges)) / (float64(n) * float64(n-1))
	}

	comps := topo.ConnectedComponents(a.und)
	in.Components = len(comps)
	for _, c := range comps {
		if len(c) > in.LargestComponent {
			in.LargestComponent = len(c)
		}
	}

	in.Hubs = a.rankByPageRank()
	in.MostConnected = a.rankByDegree()
	in.KindMix = a.kindMix()
	in.MediaMix = a.mediaMix()
	in.AvgWeight = a.avgWeight()

	return in
}

func (a *Analyzer) rankByPageRank() []RankedNode {
	if len(a.edges) == 0 {
		return nil
	}
	scores := network.PageRank(a.dir, 0.85, 1e-6)

	ranked := make([]RankedNode, 0, len(scores))
	for gid, score := range scores {
		id := a.nodeToID[gid]
		node := a.nodes[id]
		ranked = append(ranked, RankedNode{
			ID:        id,
			Title:     node.Title,
			MediaType: node.MediaType,
			Score:     score,
		})
	}
	sortRanked(ranked)
	return capRanked(ranked)
}

func (a *Analyzer) rankByDegree() []RankedNode {
	if len(a.edges) == 0 {
		return nil
	}
	ranked := make([]RankedNode, 0, len(a.idToNode))
	for id, gid := range a.idToNode {
		deg := a.und.From(gid).Len()
		if deg == 0 {
			continue
		}
		node := a.nodes[id]
		ranked = append(ranked, RankedNode{
			ID:        id,
			Title:     node.Title,
			MediaType: node.MediaType,
			Score:     float64(deg),
		})
	}
	sortRanked(ranked)
	return capRanked(ranked)
}

// sortRanked orders by score descending, then ID ascending so output is
// stable across runs.
func sortRanked(ranked []RankedNode) {
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		return ranked[i].ID < ranked[j].ID
	})
}

func capRanked(ranked []RankedNode) []RankedNode {
	if len(ranked) > TopK {
		ranked = ranked[:TopK]
	}
	return ranked
}

func (a *Analyzer) kindMix() map[model.EdgeKind]int {
	if len(a.edges) == 0 {
		return nil
	}
	mix := make(map[model.EdgeKind]int)
	for _, e := range a.edges {
		mix[e.Kind]++
	}
	return mix
}

func (a *Analyzer) mediaMix() map[model.MediaType]int {
	if len(a.nodes) == 0 {
		return nil
	}
	mix := make(map[model.MediaType]int)
	for _, n := range a.nodes {
		mix[n.MediaType]++
	}
	return mix
}

// avgWeight averages the similarity weights over edges that carry one.
func (a *Analyzer) avgWeight() float64 {
	var sum float64
	var count int
	for _, e := range a.edges {
		if e.Weight > 0 {
			sum += e.Weight
			count++
		}
	}
	if count == 0 {
		return 0
	}
	return sum / float64(count)
}
