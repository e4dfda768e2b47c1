// Package explore implements the state machine behind the Explore view:
// three mutually exclusive discovery modes (category browsing, focused-node
// traversal, semantic search), a navigation history trail, simulated search
// progress, and the precedence pass that decides what the render layer
// shows. The Navigator performs no I/O; operations return a *Request for
// the caller to run against a provider, and completions come back through
// Complete where a generation guard discards anything a newer operation
// superseded.
package explore

import (
	"strings"
	"time"

	"github.com/vanderheijden86/reelgraph/pkg/model"
)

// Mode is the active top-level discovery mode. Exactly one variant (or nil
// for the empty state) is held at a time, which makes the old
// two-modes-at-once class of bugs unrepresentable.
type Mode interface {
	isMode()
}

// Browsing shows one of the preset recommendation categories.
type Browsing struct {
	Category   model.BrowseCategory
	CrossMedia bool
}

// Focused centers the graph on one node during rabbit-hole traversal.
type Focused struct {
	NodeID    string
	MediaType model.MediaType
	Title     string
}

// Searching shows the results of a free-text semantic query.
type Searching struct {
	Query  string
	Filter model.MediaType
}

func (Browsing) isMode()  {}
func (Focused) isMode()   {}
func (Searching) isMode() {}

// Defaults applied by Settings.withDefaults.
const (
	DefaultLimit = 12
	DefaultDepth = 1
)

// Settings carries the fetch parameters the Navigator stamps onto requests.
type Settings struct {
	// Limit is the maximum node count requested per graph fetch.
	Limit int
	// Depth is the traversal depth for focused-node fetches.
	Depth int
	// CrossMedia seeds the browse-mode toggle that mixes movies and
	// series into one graph.
	CrossMedia bool
}

func (s Settings) withDefaults() Settings {
	if s.Limit <= 0 {
		s.Limit = DefaultLimit
	}
	if s.Depth <= 0 {
		s.Depth = DefaultDepth
	}
	return s
}

// Navigator owns all Explore state. It is single-goroutine by contract: the
// render layer's event loop calls every method, including Complete for
// results that arrived on other goroutines.
type Navigator struct {
	mode     Mode
	history  HistoryStack
	search   FetchState
	focus    FetchState
	browse   FetchState
	filter   model.MediaType
	recent   []string
	store    RecentStore
	settings Settings

	// gen is bumped on every fetch start and every invalidation, so a
	// completion from a superseded fetch can never match.
	gen uint64

	// simRun tokens tie progress ticks to one search run.
	simRun uint64
	sim    *progressSim
	status *model.LoadingStatus

	logf func(format string, args ...any)
}

// New builds a Navigator. store may be nil, in which case recent queries
// live only for the session.
func New(store RecentStore, settings Settings) *Navigator {
	n := &Navigator{
		store:    store,
		settings: settings.withDefaults(),
		logf:     func(string, ...any) {},
	}
	if store != nil {
		list, err := store.Get()
		if err == nil {
			if len(list) > MaxRecentSearches {
				list = list[:MaxRecentSearches]
			}
			n.recent = list
		}
	}
	return n
}

// SetLogf installs a diagnostics sink. Fetch errors and discarded stale
// completions are logged, never surfaced.
func (n *Navigator) SetLogf(logf func(format string, args ...any)) {
	if logf != nil {
		n.logf = logf
	}
}

// UpdateSettings replaces the fetch defaults. Takes effect on the next
// request; in-flight fetches are untouched.
func (n *Navigator) UpdateSettings(s Settings) {
	n.settings = s.withDefaults()
}

func (n *Navigator) Settings() Settings { return n.settings }

// Mode returns the active mode variant, nil for the empty state.
func (n *Navigator) Mode() Mode { return n.mode }

// MediaFilter returns the filter applied to the next search.
func (n *Navigator) MediaFilter() model.MediaType { return n.filter }

// SetMediaFilter narrows future searches to one media type; MediaAny clears
// the filter. It does not re-run an active search; the filter is captured
// when a query runs.
func (n *Navigator) SetMediaFilter(mt model.MediaType) {
	if mt == model.MediaAny || mt.Valid() {
		n.filter = mt
	}
}

// History returns the trail of former centers, oldest first.
func (n *Navigator) History() []model.NavigationEntry { return n.history.Entries() }

// Recent returns the recent queries, most recent first.
func (n *Navigator) Recent() []string {
	if len(n.recent) == 0 {
		return nil
	}
	return append([]string(nil), n.recent...)
}

func (n *Navigator) SearchState() FetchState { return n.search }
func (n *Navigator) FocusState() FetchState  { return n.focus }
func (n *Navigator) BrowseState() FetchState { return n.browse }

// Status returns the simulated progress readout for the in-flight search.
func (n *Navigator) Status() (model.LoadingStatus, bool) {
	if n.status == nil {
		return model.LoadingStatus{}, false
	}
	return *n.status, true
}

// Display runs the precedence pass over the current state.
func (n *Navigator) Display() Display {
	return Resolve(n.mode, n.search, n.focus, n.browse, n.status)
}

func (n *Navigator) nextGen() uint64 {
	n.gen++
	return n.gen
}

// clearSearch drops the search fetcher back to idle, invalidates any
// in-flight search and stops the progress simulator.
func (n *Navigator) clearSearch() {
	n.search = FetchState{gen: n.nextGen()}
	n.stopProgress()
}

func (n *Navigator) clearBrowse() {
	n.browse = FetchState{gen: n.nextGen()}
}

func (n *Navigator) clearFocus(resetHistory bool) {
	n.focus = FetchState{gen: n.nextGen()}
	if resetHistory {
		n.history.Reset()
	}
}

// SelectBrowseCategory switches to browse mode on the given category,
// clearing search and focus state, and starts a browse fetch. Selecting the
// already-active category refetches it.
func (n *Navigator) SelectBrowseCategory(cat model.BrowseCategory) *Request {
	if !cat.Valid() {
		n.logf("explore: ignoring invalid browse category %d", int(cat))
		return nil
	}
	cross := n.settings.CrossMedia
	if b, ok := n.mode.(Browsing); ok {
		cross = b.CrossMedia
	}
	n.clearSearch()
	n.clearFocus(true)
	n.mode = Browsing{Category: cat, CrossMedia: cross}
	return n.startBrowse()
}

// ToggleCrossMedia flips the movies+series mixing toggle and refetches.
// Only meaningful in browse mode.
func (n *Navigator) ToggleCrossMedia() *Request {
	b, ok := n.mode.(Browsing)
	if !ok {
		return nil
	}
	b.CrossMedia = !b.CrossMedia
	n.mode = b
	return n.startBrowse()
}

// RefetchBrowse re-issues the current browse fetch, superseding any in
// flight. No-op outside browse mode.
func (n *Navigator) RefetchBrowse() *Request {
	if _, ok := n.mode.(Browsing); !ok {
		return nil
	}
	return n.startBrowse()
}

func (n *Navigator) startBrowse() *Request {
	b, ok := n.mode.(Browsing)
	if !ok {
		return nil
	}
	n.browse = FetchState{Phase: FetchLoading, gen: n.nextGen()}
	return &Request{
		Kind: FetchBrowse,
		Gen:  n.browse.gen,
		Browse: BrowseParams{
			Category:   b.Category,
			Limit:      n.settings.Limit,
			CrossMedia: b.CrossMedia,
		},
	}
}

// ClickNode drills into a node: the departing center (when there is one) is
// pushed onto the history trail and the clicked node becomes the new
// traversal center. Clicking the current center is a no-op.
func (n *Navigator) ClickNode(node model.GraphNode) *Request {
	if node.ID == "" || node.IsCenter {
		return nil
	}
	if f, ok := n.mode.(Focused); ok {
		if node.ID == f.NodeID {
			return nil
		}
		n.history.Push(model.NavigationEntry{
			NodeID:    f.NodeID,
			MediaType: f.MediaType,
			Title:     f.Title,
		})
	}
	n.clearSearch()
	n.clearBrowse()
	n.mode = Focused{NodeID: node.ID, MediaType: node.MediaType, Title: node.Title}
	return n.startFocus()
}

// OpenNode resolves the external detail route for a node, the double-click
// action. The render layer performs the actual navigation; an empty string
// means the node has no route.
func (n *Navigator) OpenNode(node model.GraphNode) string {
	return node.Route()
}

func (n *Navigator) startFocus() *Request {
	f, ok := n.mode.(Focused)
	if !ok {
		return nil
	}
	n.focus = FetchState{Phase: FetchLoading, gen: n.nextGen()}
	return &Request{
		Kind: FetchFocus,
		Gen:  n.focus.gen,
		Focus: FocusParams{
			NodeID:    f.NodeID,
			MediaType: f.MediaType,
			Limit:     n.settings.Limit,
			Depth:     n.settings.Depth,
		},
	}
}

// RunSearch validates and runs a free-text semantic query: records it in the
// recent list, clears browse and focus state, and starts the progress
// simulator alongside the fetch. Blank queries are rejected.
func (n *Navigator) RunSearch(query string) *Request {
	q := strings.TrimSpace(query)
	if q == "" {
		return nil
	}
	return n.runSearchWith(q, n.filter)
}

func (n *Navigator) runSearchWith(query string, filter model.MediaType) *Request {
	n.recordRecent(query)
	n.clearFocus(true)
	n.clearBrowse()
	n.mode = Searching{Query: query, Filter: filter}
	n.search = FetchState{Phase: FetchLoading, gen: n.nextGen()}
	n.startProgress(time.Now())
	return &Request{
		Kind: FetchSearch,
		Gen:  n.search.gen,
		Run:  n.simRun,
		Search: SearchParams{
			Query:  query,
			Filter: filter,
			Limit:  n.settings.Limit,
		},
	}
}

func (n *Navigator) recordRecent(query string) {
	n.recent = pushRecent(n.recent, query, MaxRecentSearches)
	if n.store == nil {
		return
	}
	if err := n.store.Put(append([]string(nil), n.recent...)); err != nil {
		n.logf("explore: persisting recent searches: %v", err)
	}
}

// GoToHistory jumps back to a prior traversal center. index counts from the
// oldest entry; the trail keeps entries 0..index-1 and the entry at index
// becomes the new center. Index 0 is the start-over affordance, not
// history[0]. Index len(history) is the current center, a no-op.
func (n *Navigator) GoToHistory(index int) *Request {
	if index == 0 {
		return n.StartOver()
	}
	if index == n.history.Len() {
		return nil
	}
	target, ok := n.history.GoTo(index)
	if !ok {
		n.logf("explore: ignoring history jump to %d of %d", index, n.history.Len())
		return nil
	}
	n.clearSearch()
	n.clearBrowse()
	n.mode = Focused{NodeID: target.NodeID, MediaType: target.MediaType, Title: target.Title}
	return n.startFocus()
}

// StartOver resets the trail. With an active search query it re-runs that
// exact query, so the user never has to retype it; in focus mode it clears
// the focus and history back to the empty state; in browse mode the
// category selection stays put.
func (n *Navigator) StartOver() *Request {
	switch m := n.mode.(type) {
	case Searching:
		return n.runSearchWith(m.Query, m.Filter)
	case Focused:
		n.clearFocus(true)
		n.mode = nil
		return nil
	default:
		n.history.Reset()
		return nil
	}
}

// Complete applies a fetch outcome. The result is discarded, and false
// returned, when the mode no longer owns that fetcher, the generation is
// stale, or the fetcher already settled.
func (n *Navigator) Complete(res Result) bool {
	switch res.Kind {
	case FetchBrowse:
		if _, ok := n.mode.(Browsing); !ok || res.Gen != n.browse.gen || n.browse.Phase != FetchLoading {
			n.logf("explore: discarding stale %s completion (gen %d)", res.Kind, res.Gen)
			return false
		}
		n.browse = settle(n.browse, res)
	case FetchFocus:
		if _, ok := n.mode.(Focused); !ok || res.Gen != n.focus.gen || n.focus.Phase != FetchLoading {
			n.logf("explore: discarding stale %s completion (gen %d)", res.Kind, res.Gen)
			return false
		}
		n.focus = settle(n.focus, res)
	case FetchSearch:
		if _, ok := n.mode.(Searching); !ok || res.Gen != n.search.gen || n.search.Phase != FetchLoading {
			n.logf("explore: discarding stale %s completion (gen %d)", res.Kind, res.Gen)
			return false
		}
		n.search = settle(n.search, res)
		n.stopProgress()
	default:
		return false
	}
	if res.Err != nil {
		n.logf("explore: %s fetch failed: %v", res.Kind, res.Err)
	}
	return true
}

// settle folds a completion into a fetcher state. Failures keep their error
// for diagnostics; a successful fetch always carries a non-nil graph so the
// precedence pass can tell "empty result" from "failed".
func settle(st FetchState, res Result) FetchState {
	if res.Err != nil {
		st.Phase = FetchError
		st.Graph = nil
		st.Err = res.Err
		return st
	}
	g := res.Graph
	if g == nil {
		g = &model.GraphData{}
	}
	st.Phase = FetchSuccess
	st.Graph = g
	st.Err = nil
	return st
}

func (n *Navigator) startProgress(now time.Time) {
	n.simRun++
	n.sim = newProgressSim(now, now.UnixNano())
	st := n.sim.StatusAt(now)
	n.status = &st
}

// stopProgress bumps the run token and nulls the status, so a tick already
// scheduled for the old run finds nothing to mutate.
func (n *Navigator) stopProgress() {
	n.simRun++
	n.sim = nil
	n.status = nil
}

// ProgressRun returns the current simulator run token.
func (n *Navigator) ProgressRun() uint64 { return n.simRun }

// ProgressTick advances the simulated readout. run must be the token the
// search Request carried; a stale tick returns false, mutates nothing, and
// must not be rescheduled.
func (n *Navigator) ProgressTick(run uint64, now time.Time) (model.LoadingStatus, bool) {
	if run != n.simRun || n.sim == nil {
		return model.LoadingStatus{}, false
	}
	st := n.sim.StatusAt(now)
	n.status = &st
	return st, true
}

// Close invalidates in-flight fetches and stops the progress simulator. The
// Navigator remains readable afterwards.
func (n *Navigator) Close() {
	n.clearSearch()
	n.clearBrowse()
	n.clearFocus(false)
}
