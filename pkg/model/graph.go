// Package model defines the core data types for the exploration graph:
// nodes, typed edges, and the envelopes the recommendation service returns.
// Types here are plain values. Every other package depends on model, so it
// carries no dependencies of its own.
package model

import (
	"fmt"
	"strings"
)

// MediaType identifies the kind of content a graph node represents.
// The empty value acts as "any" where a media-type filter is optional.
type MediaType string

const (
	MediaAny    MediaType = ""
	MediaMovie  MediaType = "movie"
	MediaSeries MediaType = "series"
)

// Valid reports whether m names a concrete media type.
func (m MediaType) Valid() bool {
	return m == MediaMovie || m == MediaSeries
}

// Label returns a human-readable name for display.
func (m MediaType) Label() string {
	switch m {
	case MediaMovie:
		return "Movie"
	case MediaSeries:
		return "Series"
	case MediaAny:
		return "All"
	default:
		return string(m)
	}
}

// Route returns the dashboard detail path for a node of this type,
// e.g. "/movies/tt0113277". Unknown types yield an empty path.
func (m MediaType) Route(id string) string {
	switch m {
	case MediaMovie:
		return "/movies/" + id
	case MediaSeries:
		return "/series/" + id
	default:
		return ""
	}
}

// ParseMediaType parses a wire or flag value into a MediaType.
// An empty string parses to MediaAny.
func ParseMediaType(s string) (MediaType, error) {
	switch MediaType(strings.ToLower(strings.TrimSpace(s))) {
	case MediaAny:
		return MediaAny, nil
	case MediaMovie:
		return MediaMovie, nil
	case MediaSeries:
		return MediaSeries, nil
	default:
		return MediaAny, fmt.Errorf("unknown media type %q (want movie or series)", s)
	}
}

// EdgeKind classifies why two nodes are connected.
type EdgeKind string

const (
	EdgeSharedGenre EdgeKind = "sharedGenre"
	EdgeCastOverlap EdgeKind = "castOverlap"
	EdgeThematic    EdgeKind = "thematicCluster"
)

// Valid reports whether k is one of the known relationship kinds.
// Unknown kinds still render (the service may grow new ones); they just
// fall back to a generic label.
func (k EdgeKind) Valid() bool {
	switch k {
	case EdgeSharedGenre, EdgeCastOverlap, EdgeThematic:
		return true
	}
	return false
}

// Label returns a human-readable name for the relationship.
func (k EdgeKind) Label() string {
	switch k {
	case EdgeSharedGenre:
		return "shared genre"
	case EdgeCastOverlap:
		return "cast overlap"
	case EdgeThematic:
		return "thematic cluster"
	default:
		return "related"
	}
}

// GraphNode is a single title in the exploration graph. Nodes are immutable
// per fetch; a new fetch replaces the whole GraphData rather than patching
// nodes in place.
type GraphNode struct {
	ID        string    `json:"id"`
	MediaType MediaType `json:"mediaType"`
	Title     string    `json:"title"`
	// IsCenter marks the traversal center. Focused-node graphs carry exactly
	// one center; search and browse graphs carry none.
	IsCenter bool `json:"isCenter,omitempty"`
}

// Route returns the dashboard detail path for this node.
func (n GraphNode) Route() string {
	return n.MediaType.Route(n.ID)
}

// GraphEdge connects two nodes with a typed relationship. Weight is the
// similarity strength in [0,1] when the service provides one.
type GraphEdge struct {
	Source string   `json:"source"`
	Target string   `json:"target"`
	Kind   EdgeKind `json:"kind"`
	Weight float64  `json:"weight,omitempty"`
}

// Touches reports whether the edge has id as either endpoint.
func (e GraphEdge) Touches(id string) bool {
	return e.Source == id || e.Target == id
}

// Other returns the endpoint opposite to id, or "" when id is not an
// endpoint of the edge.
func (e GraphEdge) Other(id string) string {
	switch id {
	case e.Source:
		return e.Target
	case e.Target:
		return e.Source
	}
	return ""
}

// GraphData is one fetched graph: a node set plus typed edges. Exactly one
// GraphData is "current" at a time, owned by whichever fetcher produced it
// last until the display resolver supersedes it.
type GraphData struct {
	Nodes []GraphNode `json:"nodes"`
	Edges []GraphEdge `json:"edges"`
}

// Len returns the node count.
func (g *GraphData) Len() int {
	if g == nil {
		return 0
	}
	return len(g.Nodes)
}

// IsEmpty reports whether the graph has no nodes.
func (g *GraphData) IsEmpty() bool {
	return g.Len() == 0
}

// CenterNode returns the traversal center, or nil when the graph has none
// (search and browse results are centerless).
func (g *GraphData) CenterNode() *GraphNode {
	if g == nil {
		return nil
	}
	for i := range g.Nodes {
		if g.Nodes[i].IsCenter {
			return &g.Nodes[i]
		}
	}
	return nil
}

// NodeByID returns the node with the given id, or nil.
func (g *GraphData) NodeByID(id string) *GraphNode {
	if g == nil {
		return nil
	}
	for i := range g.Nodes {
		if g.Nodes[i].ID == id {
			return &g.Nodes[i]
		}
	}
	return nil
}

// Connections returns the edges touching id, in input order.
func (g *GraphData) Connections(id string) []GraphEdge {
	if g == nil {
		return nil
	}
	var out []GraphEdge
	for _, e := range g.Edges {
		if e.Touches(id) {
			out = append(out, e)
		}
	}
	return out
}

// KindCounts tallies edges by relationship kind.
func (g *GraphData) KindCounts() map[EdgeKind]int {
	if g == nil || len(g.Edges) == 0 {
		return nil
	}
	out := make(map[EdgeKind]int, 3)
	for _, e := range g.Edges {
		out[e.Kind]++
	}
	return out
}
