package explore

import (
	"errors"
	"testing"

	"github.com/vanderheijden86/reelgraph/pkg/model"
)

func TestResolvePrecedence(t *testing.T) {
	graph := &model.GraphData{Nodes: []model.GraphNode{{ID: "m-1", MediaType: model.MediaMovie, Title: "Heat"}}}
	fetchErr := errors.New("boom")
	status := &model.LoadingStatus{Phase: model.PhaseSearching, Progress: 12}

	tests := []struct {
		name        string
		mode        Mode
		search      FetchState
		focus       FetchState
		browse      FetchState
		wantSource  DisplaySource
		wantLoading bool
		wantGraph   bool
		wantErr     bool
	}{
		{
			name:       "no mode means empty",
			wantSource: DisplayEmpty,
		},
		{
			name:        "search loading wins",
			mode:        Searching{Query: "noir thrillers"},
			search:      FetchState{Phase: FetchLoading},
			wantSource:  DisplaySearch,
			wantLoading: true,
		},
		{
			name:       "search results shown",
			mode:       Searching{Query: "noir thrillers"},
			search:     FetchState{Phase: FetchSuccess, Graph: graph},
			wantSource: DisplaySearch,
			wantGraph:  true,
		},
		{
			name:       "failed search falls to empty with error retained",
			mode:       Searching{Query: "noir thrillers"},
			search:     FetchState{Phase: FetchError, Err: fetchErr},
			wantSource: DisplayEmpty,
			wantErr:    true,
		},
		{
			name:        "focus loading",
			mode:        Focused{NodeID: "m-1"},
			focus:       FetchState{Phase: FetchLoading},
			wantSource:  DisplayFocus,
			wantLoading: true,
		},
		{
			name:       "focus results",
			mode:       Focused{NodeID: "m-1"},
			focus:      FetchState{Phase: FetchSuccess, Graph: graph},
			wantSource: DisplayFocus,
			wantGraph:  true,
		},
		{
			name:       "focus error stays on focus",
			mode:       Focused{NodeID: "m-1"},
			focus:      FetchState{Phase: FetchError, Err: fetchErr},
			wantSource: DisplayFocus,
			wantErr:    true,
		},
		{
			name:        "browse loading",
			mode:        Browsing{Category: model.CategoryTopMovies},
			browse:      FetchState{Phase: FetchLoading},
			wantSource:  DisplayBrowse,
			wantLoading: true,
		},
		{
			name:       "browse results",
			mode:       Browsing{Category: model.CategoryTopMovies},
			browse:     FetchState{Phase: FetchSuccess, Graph: graph},
			wantSource: DisplayBrowse,
			wantGraph:  true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Resolve(tt.mode, tt.search, tt.focus, tt.browse, status)
			if got.Source != tt.wantSource {
				t.Errorf("source = %v, want %v", got.Source, tt.wantSource)
			}
			if got.Loading != tt.wantLoading {
				t.Errorf("loading = %v, want %v", got.Loading, tt.wantLoading)
			}
			if (got.Graph != nil) != tt.wantGraph {
				t.Errorf("graph present = %v, want %v", got.Graph != nil, tt.wantGraph)
			}
			if (got.Err != nil) != tt.wantErr {
				t.Errorf("err present = %v, want %v", got.Err != nil, tt.wantErr)
			}
		})
	}
}

func TestResolveCarriesStatusWhileSearchLoads(t *testing.T) {
	status := &model.LoadingStatus{Phase: model.PhaseClustering, Message: "Grouping similar titles", Progress: 44}
	got := Resolve(Searching{Query: "q"}, FetchState{Phase: FetchLoading}, FetchState{}, FetchState{}, status)
	if got.Status == nil {
		t.Fatal("status dropped while search loading")
	}
	if got.Status.Progress != 44 {
		t.Errorf("status progress = %d, want 44", got.Status.Progress)
	}

	// Once results land the transient status is no longer part of the view.
	got = Resolve(Searching{Query: "q"}, FetchState{Phase: FetchSuccess, Graph: &model.GraphData{}}, FetchState{}, FetchState{}, nil)
	if got.Status != nil {
		t.Error("status still present after results arrived")
	}
}
