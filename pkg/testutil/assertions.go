package testutil

import (
	"testing"

	"github.com/vanderheijden86/reelgraph/pkg/model"
)

// AssertNodeCount verifies the expected number of nodes.
func AssertNodeCount(t *testing.T, g *model.GraphData, expected int) {
	t.Helper()
	if g.Len() != expected {
		t.Errorf("expected %d nodes, got %d", expected, g.Len())
	}
}

// AssertNoDuplicateIDs verifies all node IDs are unique.
func AssertNoDuplicateIDs(t *testing.T, g *model.GraphData) {
	t.Helper()
	seen := make(map[string]bool)
	for _, n := range g.Nodes {
		if seen[n.ID] {
			t.Errorf("duplicate node ID: %s", n.ID)
		}
		seen[n.ID] = true
	}
}

// AssertSingleCenter verifies the graph has exactly one center node.
func AssertSingleCenter(t *testing.T, g *model.GraphData) {
	t.Helper()
	count := 0
	for _, n := range g.Nodes {
		if n.IsCenter {
			count++
		}
	}
	if count != 1 {
		t.Errorf("expected exactly 1 center node, got %d", count)
	}
}

// AssertCenterless verifies the graph has no center node, as search and
// browse results should.
func AssertCenterless(t *testing.T, g *model.GraphData) {
	t.Helper()
	for _, n := range g.Nodes {
		if n.IsCenter {
			t.Errorf("expected no center node, found %s", n.ID)
		}
	}
}

// AssertEdgesResolve verifies every edge endpoint names a node in the graph.
func AssertEdgesResolve(t *testing.T, g *model.GraphData) {
	t.Helper()
	ids := make(map[string]bool, len(g.Nodes))
	for _, n := range g.Nodes {
		ids[n.ID] = true
	}
	for i, e := range g.Edges {
		if !ids[e.Source] {
			t.Errorf("edge %d source %q not in node set", i, e.Source)
		}
		if !ids[e.Target] {
			t.Errorf("edge %d target %q not in node set", i, e.Target)
		}
	}
}

// AssertEdgeBetween verifies an edge exists between two nodes, either
// direction.
func AssertEdgeBetween(t *testing.T, g *model.GraphData, a, b string) {
	t.Helper()
	for _, e := range g.Edges {
		if (e.Source == a && e.Target == b) || (e.Source == b && e.Target == a) {
			return
		}
	}
	t.Errorf("expected edge between %s and %s, found none", a, b)
}

// AssertConnected verifies every node is reachable from the first node,
// treating edges as undirected.
func AssertConnected(t *testing.T, g *model.GraphData) {
	t.Helper()
	if got := ComponentCount(g); got > 1 {
		t.Errorf("expected connected graph, got %d components", got)
	}
}

// ComponentCount returns the number of connected components, treating edges
// as undirected. Useful as an independent cross-check for graph analysis.
func ComponentCount(g *model.GraphData) int {
	if g.IsEmpty() {
		return 0
	}

	adj := make(map[string][]string)
	for _, e := range g.Edges {
		adj[e.Source] = append(adj[e.Source], e.Target)
		adj[e.Target] = append(adj[e.Target], e.Source)
	}

	visited := make(map[string]bool, len(g.Nodes))
	components := 0

	for _, n := range g.Nodes {
		if visited[n.ID] {
			continue
		}
		components++
		queue := []string{n.ID}
		visited[n.ID] = true
		for len(queue) > 0 {
			id := queue[0]
			queue = queue[1:]
			for _, next := range adj[id] {
				if !visited[next] {
					visited[next] = true
					queue = append(queue, next)
				}
			}
		}
	}

	return components
}

// NodeIDs returns all node IDs in input order.
func NodeIDs(g *model.GraphData) []string {
	ids := make([]string, len(g.Nodes))
	for i, n := range g.Nodes {
		ids[i] = n.ID
	}
	return ids
}
