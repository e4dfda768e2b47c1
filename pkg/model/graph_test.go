package model

import "testing"

func TestParseMediaType(t *testing.T) {
	cases := []struct {
		in      string
		want    MediaType
		wantErr bool
	}{
		{"movie", MediaMovie, false},
		{"Series", MediaSeries, false},
		{"  MOVIE ", MediaMovie, false},
		{"", MediaAny, false},
		{"album", MediaAny, true},
	}
	for _, tc := range cases {
		got, err := ParseMediaType(tc.in)
		if (err != nil) != tc.wantErr {
			t.Errorf("ParseMediaType(%q) err = %v, wantErr %v", tc.in, err, tc.wantErr)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseMediaType(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestMediaTypeRoute(t *testing.T) {
	if got := MediaMovie.Route("m-42"); got != "/movies/m-42" {
		t.Errorf("movie route = %q, want /movies/m-42", got)
	}
	if got := MediaSeries.Route("s-7"); got != "/series/s-7" {
		t.Errorf("series route = %q, want /series/s-7", got)
	}
	if got := MediaAny.Route("x"); got != "" {
		t.Errorf("any route = %q, want empty", got)
	}
}

func TestEdgeKindLabel(t *testing.T) {
	if got := EdgeCastOverlap.Label(); got != "cast overlap" {
		t.Errorf("label = %q, want %q", got, "cast overlap")
	}
	if got := EdgeKind("futureKind").Label(); got != "related" {
		t.Errorf("unknown kind label = %q, want %q", got, "related")
	}
	if EdgeKind("futureKind").Valid() {
		t.Error("unknown kind reported valid")
	}
}

func testGraph() *GraphData {
	return &GraphData{
		Nodes: []GraphNode{
			{ID: "m-1", MediaType: MediaMovie, Title: "Heat", IsCenter: true},
			{ID: "m-2", MediaType: MediaMovie, Title: "Collateral"},
			{ID: "s-1", MediaType: MediaSeries, Title: "Luther"},
		},
		Edges: []GraphEdge{
			{Source: "m-1", Target: "m-2", Kind: EdgeCastOverlap, Weight: 0.91},
			{Source: "m-1", Target: "s-1", Kind: EdgeThematic, Weight: 0.66},
			{Source: "m-2", Target: "s-1", Kind: EdgeSharedGenre},
		},
	}
}

func TestGraphDataCenterNode(t *testing.T) {
	g := testGraph()
	center := g.CenterNode()
	if center == nil || center.ID != "m-1" {
		t.Fatalf("CenterNode = %+v, want m-1", center)
	}

	centerless := &GraphData{Nodes: []GraphNode{{ID: "a"}, {ID: "b"}}}
	if got := centerless.CenterNode(); got != nil {
		t.Errorf("centerless graph CenterNode = %+v, want nil", got)
	}

	var nilGraph *GraphData
	if got := nilGraph.CenterNode(); got != nil {
		t.Errorf("nil graph CenterNode = %+v, want nil", got)
	}
	if !nilGraph.IsEmpty() {
		t.Error("nil graph should be empty")
	}
}

func TestGraphDataConnections(t *testing.T) {
	g := testGraph()
	conns := g.Connections("s-1")
	if len(conns) != 2 {
		t.Fatalf("Connections(s-1) = %d edges, want 2", len(conns))
	}
	if got := conns[0].Other("s-1"); got != "m-1" {
		t.Errorf("first connection other end = %q, want m-1", got)
	}
	if got := conns[0].Other("nope"); got != "" {
		t.Errorf("Other for non-endpoint = %q, want empty", got)
	}
}

func TestGraphDataKindCounts(t *testing.T) {
	g := testGraph()
	counts := g.KindCounts()
	if counts[EdgeCastOverlap] != 1 || counts[EdgeThematic] != 1 || counts[EdgeSharedGenre] != 1 {
		t.Errorf("KindCounts = %v, want one of each", counts)
	}
	empty := &GraphData{}
	if got := empty.KindCounts(); got != nil {
		t.Errorf("empty KindCounts = %v, want nil", got)
	}
}

func TestParseCategoryRoundTrip(t *testing.T) {
	for _, c := range Categories() {
		got, err := ParseCategory(c.Slug())
		if err != nil {
			t.Errorf("ParseCategory(%q) error: %v", c.Slug(), err)
			continue
		}
		if got != c {
			t.Errorf("ParseCategory(%q) = %v, want %v", c.Slug(), got, c)
		}
	}
	if _, err := ParseCategory("director-cuts"); err == nil {
		t.Error("ParseCategory accepted unknown slug")
	}
}

func TestEntryFor(t *testing.T) {
	n := GraphNode{ID: "s-9", MediaType: MediaSeries, Title: "Dark", IsCenter: true}
	e := EntryFor(n)
	if e.NodeID != "s-9" || e.MediaType != MediaSeries || e.Title != "Dark" {
		t.Errorf("EntryFor = %+v", e)
	}
}
