//go:build ignore

// mock_service.go runs a throwaway recommendation service for local reel
// development, so the TUI and robot modes can be exercised without the real
// dashboard backend.
//
// Usage: go run scripts/mock_service.go [-addr :3000] [-seed 42] [-latency 400ms]
//
// Endpoints served:
//
//	/api/health
//	/api/similarity/search?q=...&type=...&limit=...
//	/api/recommendations/<category>/graph?crossMedia=...&limit=...
//	/api/similarity/nodes/<id>/graph?type=...&limit=...
//	/api/media/<type>/<id>
//
// Graphs are deterministic per seed and query, so repeated fetches return the
// same shape. The latency flag delays every response, which makes the
// multi-phase loading readout visible in the TUI.
package main

import (
	"flag"
	"fmt"
	"hash/fnv"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	json "github.com/goccy/go-json"

	"github.com/vanderheijden86/reelgraph/pkg/model"
	"github.com/vanderheijden86/reelgraph/pkg/testutil"
)

var (
	baseSeed int64
	latency  time.Duration
)

func main() {
	addr := flag.String("addr", ":3000", "Listen address")
	seed := flag.Int64("seed", 42, "Generator seed; same seed, same graphs")
	delay := flag.Duration("latency", 400*time.Millisecond, "Simulated response delay")
	flag.Parse()

	baseSeed = *seed
	latency = *delay

	mux := http.NewServeMux()
	mux.HandleFunc("/api/health", handleHealth)
	mux.HandleFunc("/api/similarity/search", handleSearch)
	mux.HandleFunc("/api/similarity/nodes/", handleSimilar)
	mux.HandleFunc("/api/recommendations/", handleBrowse)
	mux.HandleFunc("/api/media/", handleDetail)

	log.Printf("mock recommendation service listening on %s (seed %d, latency %s)", *addr, baseSeed, latency)
	log.Printf("point reel at it: REEL_SERVICE_URL=http://localhost%s reel", *addr)
	if err := http.ListenAndServe(*addr, logRequests(mux)); err != nil {
		log.Fatal(err)
	}
}

func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.Printf("%s %s", r.Method, r.URL.String())
		time.Sleep(latency)
		next.ServeHTTP(w, r)
	})
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = io.WriteString(w, `{"status":"ok"}`)
}

func handleSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	gen := generatorFor("search:"+q, typeMix(r), "sr")
	g := gen.Cluster(limitParam(r, 12))
	writeGraph(w, g)
}

func handleBrowse(w http.ResponseWriter, r *http.Request) {
	// /api/recommendations/<category>/graph
	rest := strings.TrimPrefix(r.URL.Path, "/api/recommendations/")
	slug := strings.TrimSuffix(rest, "/graph")
	if slug == rest || slug == "" {
		http.NotFound(w, r)
		return
	}
	if _, err := model.ParseCategory(slug); err != nil {
		http.NotFound(w, r)
		return
	}

	n := limitParam(r, 12)
	gen := generatorFor("browse:"+slug, browseMix(slug), "b")
	var g *model.GraphData
	if r.URL.Query().Get("crossMedia") == "true" {
		g = gen.CrossMedia(n/2, n-n/2)
	} else {
		g = gen.Cluster(n)
	}
	writeGraph(w, g)
}

func handleSimilar(w http.ResponseWriter, r *http.Request) {
	// /api/similarity/nodes/<id>/graph
	rest := strings.TrimPrefix(r.URL.Path, "/api/similarity/nodes/")
	id := strings.TrimSuffix(rest, "/graph")
	if id == rest || id == "" {
		http.NotFound(w, r)
		return
	}

	gen := generatorFor("similar:"+id, typeMix(r), "nb")
	g := gen.Neighborhood(limitParam(r, 12) - 1)
	recenter(g, id)
	writeGraph(w, g)
}

func handleDetail(w http.ResponseWriter, r *http.Request) {
	// /api/media/<type>/<id>
	parts := strings.SplitN(strings.TrimPrefix(r.URL.Path, "/api/media/"), "/", 2)
	if len(parts) != 2 || parts[1] == "" {
		http.NotFound(w, r)
		return
	}
	mt, err := model.ParseMediaType(parts[0])
	if err != nil || !mt.Valid() {
		http.NotFound(w, r)
		return
	}
	id := parts[1]

	detail := map[string]any{
		"id":        id,
		"mediaType": mt,
		"title":     "Title " + id,
		"year":      1990 + int(hashString(id)%35),
		"genres":    []string{"Drama", "Mystery"},
		"rating":    5.0 + float64(hashString(id)%40)/10,
		"cast":      []string{"Sam Archer", "Vera Lindqvist", "Theo Okafor"},
		"synopsis": fmt.Sprintf("A synthetic synopsis for **%s**, served by the mock service. "+
			"Everything here is generated; only the wire format matters.", id),
	}
	writeJSON(w, detail)
}

// recenter renames the generated center node to the requested ID so the
// neighborhood looks like it belongs to the clicked title.
func recenter(g *model.GraphData, id string) {
	if len(g.Nodes) == 0 {
		return
	}
	old := g.Nodes[0].ID
	g.Nodes[0].ID = id
	g.Nodes[0].Title = "Title " + id
	for i := range g.Edges {
		if g.Edges[i].Source == old {
			g.Edges[i].Source = id
		}
		if g.Edges[i].Target == old {
			g.Edges[i].Target = id
		}
	}
}

func generatorFor(key string, mix []model.MediaType, prefix string) *testutil.Generator {
	return testutil.New(testutil.GeneratorConfig{
		Seed:     baseSeed + int64(hashString(key)),
		IDPrefix: prefix,
		TypeMix:  mix,
		Weighted: true,
	})
}

func typeMix(r *http.Request) []model.MediaType {
	switch r.URL.Query().Get("type") {
	case "movie":
		return []model.MediaType{model.MediaMovie}
	case "series":
		return []model.MediaType{model.MediaSeries}
	}
	return []model.MediaType{model.MediaMovie, model.MediaSeries}
}

func browseMix(slug string) []model.MediaType {
	switch {
	case strings.Contains(slug, "series"):
		return []model.MediaType{model.MediaSeries}
	case strings.Contains(slug, "movie"):
		return []model.MediaType{model.MediaMovie}
	}
	return []model.MediaType{model.MediaMovie, model.MediaSeries}
}

func limitParam(r *http.Request, fallback int) int {
	if v, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && v > 0 {
		return v
	}
	return fallback
}

func hashString(s string) uint32 {
	h := fnv.New32a()
	_, _ = h.Write([]byte(s))
	return h.Sum32()
}

func writeGraph(w http.ResponseWriter, g *model.GraphData) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = io.WriteString(w, testutil.ToEnvelope(g))
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	data, err := json.Marshal(v)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	_, _ = w.Write(data)
}
