package explore

import (
	"context"
	"errors"

	"github.com/vanderheijden86/reelgraph/pkg/model"
)

// FetchKind identifies which of the three fetchers a request or completion
// belongs to.
type FetchKind int

const (
	FetchBrowse FetchKind = iota
	FetchFocus
	FetchSearch
)

func (k FetchKind) String() string {
	switch k {
	case FetchBrowse:
		return "browse"
	case FetchFocus:
		return "focus"
	case FetchSearch:
		return "search"
	default:
		return "unknown"
	}
}

// FetchPhase is the lifecycle of a single fetcher.
type FetchPhase int

const (
	FetchIdle FetchPhase = iota
	FetchLoading
	FetchSuccess
	FetchError
)

func (p FetchPhase) String() string {
	switch p {
	case FetchIdle:
		return "idle"
	case FetchLoading:
		return "loading"
	case FetchSuccess:
		return "success"
	case FetchError:
		return "error"
	default:
		return "unknown"
	}
}

// FetchState is the latest observable state of one fetcher. Err is retained
// internally even though failures render the same as an empty result, so a
// later refinement can tell a network blip from a genuine no-match.
type FetchState struct {
	Phase FetchPhase
	Graph *model.GraphData
	Err   error

	// gen guards against out-of-order completion: a result is applied only
	// if it carries the generation the fetcher currently holds.
	gen uint64
}

// SearchParams parameterizes a semantic search fetch.
type SearchParams struct {
	Query  string
	Filter model.MediaType
	Limit  int
}

// BrowseParams parameterizes a browse-category fetch.
type BrowseParams struct {
	Category   model.BrowseCategory
	Limit      int
	CrossMedia bool
}

// FocusParams parameterizes a focused-node similarity fetch.
type FocusParams struct {
	NodeID    string
	MediaType model.MediaType
	Limit     int
	Depth     int
}

// Request describes one fetch the caller should start. The Navigator never
// performs I/O itself; it returns a Request and the caller runs it against a
// provider, handing the outcome back via Complete. Gen must be echoed
// unchanged. Run is the progress-simulator token, set on search requests
// only, and tags the tick loop that should accompany the fetch.
type Request struct {
	Kind FetchKind
	Gen  uint64
	Run  uint64

	Search SearchParams
	Browse BrowseParams
	Focus  FocusParams
}

// Result is a fetch completion handed back to the Navigator. Exactly one of
// Graph or Err should be set; a nil Graph with a nil Err is treated as an
// empty result.
type Result struct {
	Kind  FetchKind
	Gen   uint64
	Graph *model.GraphData
	Err   error
}

// SearchProvider runs semantic search queries against the similarity API.
type SearchProvider interface {
	SearchGraph(ctx context.Context, p SearchParams) (*model.GraphData, error)
}

// BrowseProvider fetches the preset recommendation graphs.
type BrowseProvider interface {
	BrowseGraph(ctx context.Context, p BrowseParams) (*model.GraphData, error)
}

// SimilarProvider fetches a similarity graph centered on one node.
type SimilarProvider interface {
	SimilarGraph(ctx context.Context, p FocusParams) (*model.GraphData, error)
}

// Providers bundles the three data sources the render layer dispatches
// requests against. A single API client usually implements all three.
type Providers struct {
	Search  SearchProvider
	Browse  BrowseProvider
	Similar SimilarProvider
}

// Run executes a Request against the matching provider and wraps the outcome
// as a Result carrying the request's generation. A missing provider surfaces
// as a fetch error, which renders the same as an empty result.
func (pr Providers) Run(ctx context.Context, req Request) Result {
	res := Result{Kind: req.Kind, Gen: req.Gen}
	switch req.Kind {
	case FetchSearch:
		if pr.Search == nil {
			res.Err = errors.New("explore: no search provider configured")
			return res
		}
		res.Graph, res.Err = pr.Search.SearchGraph(ctx, req.Search)
	case FetchBrowse:
		if pr.Browse == nil {
			res.Err = errors.New("explore: no browse provider configured")
			return res
		}
		res.Graph, res.Err = pr.Browse.BrowseGraph(ctx, req.Browse)
	case FetchFocus:
		if pr.Similar == nil {
			res.Err = errors.New("explore: no similarity provider configured")
			return res
		}
		res.Graph, res.Err = pr.Similar.SimilarGraph(ctx, req.Focus)
	}
	return res
}
