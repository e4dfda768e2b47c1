package ui

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vanderheijden86/reelgraph/pkg/config"
	"github.com/vanderheijden86/reelgraph/pkg/explore"
	"github.com/vanderheijden86/reelgraph/pkg/model"
)

func newTestModel() Model {
	return NewModel(config.DefaultConfig(), "", nil, nil)
}

// searchResultGraph is the centerless shape a search or browse fetch returns.
func searchResultGraph() *model.GraphData {
	return &model.GraphData{
		Nodes: []model.GraphNode{
			{ID: "sr1", Title: "Static Harbor", MediaType: model.MediaMovie},
			{ID: "sr2", Title: "Paper Comet", MediaType: model.MediaMovie},
			{ID: "sr3", Title: "Echo District", MediaType: model.MediaSeries},
		},
		Edges: []model.GraphEdge{
			{Source: "sr1", Target: "sr2", Kind: model.EdgeSharedGenre, Weight: 0.6},
			{Source: "sr2", Target: "sr3", Kind: model.EdgeThematic, Weight: 0.5},
		},
	}
}

// focusResultGraph is the shape a similarity fetch returns: the clicked
// title as center plus its neighbors.
func focusResultGraph(center model.GraphNode, neighbors ...model.GraphNode) *model.GraphData {
	center.IsCenter = true
	g := &model.GraphData{Nodes: []model.GraphNode{center}}
	for _, n := range neighbors {
		g.Nodes = append(g.Nodes, n)
		g.Edges = append(g.Edges, model.GraphEdge{
			Source: center.ID,
			Target: n.ID,
			Kind:   model.EdgeSharedGenre,
			Weight: 0.5,
		})
	}
	return g
}

// applyResult feeds a fetch completion for req through the update loop.
func applyResult(t *testing.T, m Model, req *explore.Request, g *model.GraphData, err error) Model {
	t.Helper()
	if req == nil {
		t.Fatal("expected a fetch request")
	}
	updated, _ := m.Update(FetchResultMsg{Result: explore.Result{
		Kind:  req.Kind,
		Gen:   req.Gen,
		Graph: g,
		Err:   err,
	}})
	return updated.(Model)
}

func TestNewModelStartsEmpty(t *testing.T) {
	m := newTestModel()

	if !m.ready {
		t.Error("model should be ready without waiting for a WindowSizeMsg")
	}
	if m.width != 120 || m.height != 40 {
		t.Errorf("default size = %dx%d", m.width, m.height)
	}
	if d := m.nav.Display(); d.Source != explore.DisplayEmpty {
		t.Errorf("fresh model display = %v", d.Source)
	}

	view := m.View()
	for _, want := range []string{"reel", "explore", "Nothing on screen yet", "/:search", "q:quit"} {
		if !strings.Contains(view, want) {
			t.Errorf("empty view missing %q", want)
		}
	}
}

func TestWindowSizeUpdatesLayout(t *testing.T) {
	m := newTestModel()
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	m = updated.(Model)

	if m.width != 80 || m.height != 24 {
		t.Errorf("size after resize = %dx%d", m.width, m.height)
	}
}

func TestSearchSubmitStartsFetch(t *testing.T) {
	m := newTestModel()

	updated, cmd := m.Update(SearchSubmitMsg{Query: "cozy space westerns"})
	m = updated.(Model)

	if cmd == nil {
		t.Fatal("expected fetch and tick commands")
	}
	if _, ok := m.nav.Mode().(explore.Searching); !ok {
		t.Fatalf("expected searching mode, got %T", m.nav.Mode())
	}
	d := m.nav.Display()
	if d.Source != explore.DisplaySearch || !d.Loading {
		t.Errorf("display = %+v, want loading search", d)
	}
	if recent := m.nav.Recent(); len(recent) == 0 || recent[0] != "cozy space westerns" {
		t.Errorf("query not recorded in recent searches: %v", recent)
	}

	view := m.View()
	if !strings.Contains(view, "Searching") {
		t.Errorf("loading view missing the phase readout")
	}
	if !strings.Contains(view, "%") {
		t.Error("loading view missing the progress percentage")
	}
}

func TestBlankSearchSubmitIgnored(t *testing.T) {
	m := newTestModel()
	updated, cmd := m.Update(SearchSubmitMsg{Query: "   "})
	m = updated.(Model)

	if cmd != nil {
		t.Error("blank query should start nothing")
	}
	if m.nav.Mode() != nil {
		t.Errorf("blank query should not change mode, got %T", m.nav.Mode())
	}
}

func TestSearchResultRendersGraph(t *testing.T) {
	m := newTestModel()
	req := m.nav.RunSearch("neon noir")
	m = applyResult(t, m, req, searchResultGraph(), nil)

	d := m.nav.Display()
	if d.Loading || d.Graph == nil {
		t.Fatalf("display after completion = %+v", d)
	}
	if m.graph.TotalCount() != 3 {
		t.Errorf("graph panel holds %d titles, want 3", m.graph.TotalCount())
	}

	view := m.View()
	if !strings.Contains(view, `search "neon noir"`) {
		t.Error("header missing the active query")
	}
	if !strings.Contains(view, "Static Harbor") {
		t.Error("view missing a result title")
	}
	if !strings.Contains(view, "M 2") || !strings.Contains(view, "S 1") {
		t.Error("header missing the media counts")
	}
}

// A completion for a superseded search must not repaint the panel.
func TestStaleSearchResultDropped(t *testing.T) {
	m := newTestModel()
	stale := m.nav.RunSearch("first query")
	fresh := m.nav.RunSearch("second query")

	m = applyResult(t, m, stale, searchResultGraph(), nil)

	d := m.nav.Display()
	if !d.Loading {
		t.Error("stale result should leave the fresh search loading")
	}
	if m.graph.TotalCount() != 0 {
		t.Error("stale result should not reach the graph panel")
	}

	m = applyResult(t, m, fresh, searchResultGraph(), nil)
	if m.graph.TotalCount() != 3 {
		t.Error("fresh result should land")
	}
}

func TestFetchErrorSetsStatus(t *testing.T) {
	m := newTestModel()
	req := m.nav.RunSearch("neon noir")
	m = applyResult(t, m, req, nil, errors.New("service unavailable"))

	if !m.statusIsError || !strings.Contains(m.statusMsg, "Fetch failed") {
		t.Errorf("status = %q isError=%v", m.statusMsg, m.statusIsError)
	}

	view := m.View()
	if !strings.Contains(view, "✗") {
		t.Error("footer missing the error marker")
	}
	if !strings.Contains(view, "service unavailable") {
		t.Error("error pane missing the cause")
	}
	if !strings.Contains(view, "0: start over") {
		t.Error("error pane missing the recovery hint")
	}
}

func TestEnterDrillsIntoSelection(t *testing.T) {
	m := newTestModel()
	req := m.nav.RunSearch("neon noir")
	m = applyResult(t, m, req, searchResultGraph(), nil)

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(Model)

	if cmd == nil {
		t.Fatal("expected a similarity fetch command")
	}
	f, ok := m.nav.Mode().(explore.Focused)
	if !ok {
		t.Fatalf("expected focused mode, got %T", m.nav.Mode())
	}
	if f.NodeID != "sr1" {
		t.Errorf("focused on %s, want the selected title sr1", f.NodeID)
	}

	view := m.View()
	if !strings.Contains(view, "0 Explore") {
		t.Error("trail bar missing while focused")
	}
	if !strings.Contains(view, "pulling similar titles") {
		t.Error("quiet loading pane missing")
	}
	if !strings.Contains(view, "rabbit hole") {
		t.Error("header missing the mode summary")
	}
}

func TestDigitJumpRefocusesHistory(t *testing.T) {
	m := newTestModel()

	a := model.GraphNode{ID: "a", Title: "Alpha", MediaType: model.MediaMovie}
	b := model.GraphNode{ID: "b", Title: "Bravo", MediaType: model.MediaMovie}
	c := model.GraphNode{ID: "c", Title: "Charlie", MediaType: model.MediaSeries}

	m = applyResult(t, m, m.nav.ClickNode(a), focusResultGraph(a, b), nil)
	m = applyResult(t, m, m.nav.ClickNode(b), focusResultGraph(b, c), nil)
	m = applyResult(t, m, m.nav.ClickNode(c), focusResultGraph(c, a), nil)

	if got := len(m.nav.History()); got != 2 {
		t.Fatalf("history length = %d, want 2", got)
	}

	// Digit 1 jumps to the second stack entry, which keeps one entry behind.
	updated, cmd := m.Update(keyRunes("1"))
	m = updated.(Model)
	if cmd == nil {
		t.Fatal("expected a refocus fetch")
	}
	f, ok := m.nav.Mode().(explore.Focused)
	if !ok || f.NodeID != "b" {
		t.Fatalf("expected refocus on b, got %+v", m.nav.Mode())
	}
	if got := len(m.nav.History()); got != 1 {
		t.Errorf("history length after jump = %d, want 1", got)
	}

	// Digit 0 is start over, not history[0].
	updated, _ = m.Update(keyRunes("0"))
	m = updated.(Model)
	if m.nav.Mode() != nil {
		t.Errorf("expected empty mode after start over, got %T", m.nav.Mode())
	}
	if len(m.nav.History()) != 0 {
		t.Error("start over should clear the trail")
	}
	if d := m.nav.Display(); d.Source != explore.DisplayEmpty {
		t.Errorf("display after start over = %v", d.Source)
	}
}

func TestBackKeyStepsBackOneEntry(t *testing.T) {
	m := newTestModel()

	a := model.GraphNode{ID: "a", Title: "Alpha", MediaType: model.MediaMovie}
	b := model.GraphNode{ID: "b", Title: "Bravo", MediaType: model.MediaMovie}
	c := model.GraphNode{ID: "c", Title: "Charlie", MediaType: model.MediaSeries}

	m = applyResult(t, m, m.nav.ClickNode(a), focusResultGraph(a, b), nil)
	m = applyResult(t, m, m.nav.ClickNode(b), focusResultGraph(b, c), nil)
	m = applyResult(t, m, m.nav.ClickNode(c), focusResultGraph(c, a), nil)

	updated, _ := m.Update(keyRunes("u"))
	m = updated.(Model)
	f, ok := m.nav.Mode().(explore.Focused)
	if !ok || f.NodeID != "b" {
		t.Fatalf("expected back to b, got %+v", m.nav.Mode())
	}

	// With a single entry left, back means start over.
	updated, _ = m.Update(keyRunes("u"))
	m = updated.(Model)
	if m.nav.Mode() != nil {
		t.Errorf("expected start over from depth one, got %T", m.nav.Mode())
	}
}

func TestFilterCycleKey(t *testing.T) {
	m := newTestModel()

	steps := []struct {
		want  model.MediaType
		label string
	}{
		{model.MediaMovie, "Movie"},
		{model.MediaSeries, "Series"},
		{model.MediaAny, "All"},
	}
	for _, step := range steps {
		updated, _ := m.Update(keyRunes("f"))
		m = updated.(Model)
		if got := m.nav.MediaFilter(); got != step.want {
			t.Errorf("filter = %q, want %q", got, step.want)
		}
		if !strings.Contains(m.statusMsg, step.label) {
			t.Errorf("status = %q, want %q named", m.statusMsg, step.label)
		}
	}
}

func TestHelpOverlay(t *testing.T) {
	m := newTestModel()

	updated, _ := m.Update(keyRunes("?"))
	m = updated.(Model)
	if !m.showHelp {
		t.Fatal("expected help overlay")
	}

	view := m.View()
	if !strings.Contains(view, "Quick Reference") {
		t.Error("help overlay missing its title")
	}
	if !strings.Contains(view, "esc:close") {
		t.Error("footer should show the close hint")
	}

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = updated.(Model)
	if m.showHelp {
		t.Error("esc should close help")
	}
}

// While the search bar is focused it owns the keyboard, so q types a letter
// instead of quitting.
func TestFocusedSearchEatsGlobalKeys(t *testing.T) {
	m := newTestModel()

	updated, _ := m.Update(keyRunes("/"))
	m = updated.(Model)
	if !m.search.Focused() {
		t.Fatal("expected search focused")
	}

	updated, cmd := m.Update(keyRunes("q"))
	m = updated.(Model)
	if cmd != nil {
		t.Error("q while typing must not quit")
	}
	if m.search.Value() != "q" {
		t.Errorf("typed value = %q", m.search.Value())
	}

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = updated.(Model)
	if m.search.Focused() {
		t.Error("esc should blur the search bar")
	}
}

func TestCategoryPickFlow(t *testing.T) {
	m := newTestModel()

	updated, _ := m.Update(keyRunes("b"))
	m = updated.(Model)
	if !m.categories.IsOpen() {
		t.Fatal("expected category picker open")
	}
	if !strings.Contains(m.View(), "1-5:pick") {
		t.Error("footer missing picker hints")
	}

	updated, cmd := m.Update(keyRunes("2"))
	m = updated.(Model)
	if cmd == nil {
		t.Fatal("expected a selection command")
	}

	updated, cmd = m.Update(cmd())
	m = updated.(Model)
	if cmd == nil {
		t.Fatal("expected a browse fetch")
	}
	br, ok := m.nav.Mode().(explore.Browsing)
	if !ok || br.Category != model.CategoryMySeriesPicks {
		t.Fatalf("expected browsing my series picks, got %+v", m.nav.Mode())
	}

	view := m.View()
	if !strings.Contains(view, "loading the category graph") {
		t.Error("quiet loading pane missing for browse")
	}
	if !strings.Contains(view, "My series picks") {
		t.Error("chip row missing while browsing")
	}
}

func TestQuitKey(t *testing.T) {
	m := newTestModel()
	_, cmd := m.Update(keyRunes("q"))
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Errorf("expected tea.QuitMsg, got %T", cmd())
	}
}

func TestProgressTickLifecycle(t *testing.T) {
	m := newTestModel()
	req := m.nav.RunSearch("slow burn thrillers")

	updated, cmd := m.Update(ProgressTickMsg{Run: req.Run, At: time.Now().Add(400 * time.Millisecond)})
	m = updated.(Model)
	if cmd == nil {
		t.Fatal("live run should reschedule its tick")
	}
	if st, ok := m.nav.Status(); !ok || st.Progress <= 0 {
		t.Errorf("expected progress to advance, got %+v ok=%v", st, ok)
	}

	// A tick from a superseded run is dropped and not rescheduled.
	if _, cmd = m.Update(ProgressTickMsg{Run: req.Run + 99, At: time.Now()}); cmd != nil {
		t.Error("stale run must not reschedule")
	}

	m = applyResult(t, m, req, searchResultGraph(), nil)
	if _, cmd = m.Update(ProgressTickMsg{Run: req.Run, At: time.Now()}); cmd != nil {
		t.Error("tick after completion must not reschedule")
	}
}

func TestSpinnerStopsWhenSettled(t *testing.T) {
	m := newTestModel()
	req := m.nav.SelectBrowseCategory(model.CategoryTopMovies)

	updated, cmd := m.Update(SpinnerTickMsg{})
	m = updated.(Model)
	if cmd == nil {
		t.Fatal("spinner should keep ticking while the browse fetch runs")
	}

	m = applyResult(t, m, req, searchResultGraph(), nil)
	updated, cmd = m.Update(SpinnerTickMsg{})
	m = updated.(Model)
	if cmd != nil {
		t.Error("spinner should stop once the fetch settles")
	}
	if m.spinning {
		t.Error("spinning flag should clear")
	}
}

func TestInsightsRequiresWidth(t *testing.T) {
	m := newTestModel()
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 90, Height: 30})
	m = updated.(Model)

	updated, _ = m.Update(keyRunes("i"))
	m = updated.(Model)
	if m.showInsights {
		t.Error("insights should refuse to open on a narrow terminal")
	}
	if !m.statusIsError || !strings.Contains(m.statusMsg, "too narrow") {
		t.Errorf("status = %q", m.statusMsg)
	}
}

func TestInsightsToggleComputesAndRenders(t *testing.T) {
	m := newTestModel()
	req := m.nav.RunSearch("neon noir")
	m = applyResult(t, m, req, searchResultGraph(), nil)

	updated, cmd := m.Update(keyRunes("i"))
	m = updated.(Model)
	if !m.showInsights {
		t.Fatal("expected insights panel open")
	}
	if cmd == nil {
		t.Fatal("expected an insights computation")
	}

	updated, _ = m.Update(cmd())
	m = updated.(Model)

	view := m.View()
	if !strings.Contains(view, "📈 Insights") {
		t.Error("view missing the insights panel")
	}
	if !strings.Contains(view, "3 titles") {
		t.Error("insights missing the graph summary")
	}

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = updated.(Model)
	if m.showInsights {
		t.Error("esc should close the insights panel")
	}
}

func TestConfigReloadAppliesSettings(t *testing.T) {
	m := newTestModel()

	cfg := config.DefaultConfig()
	cfg.Explore.Limit = 30
	updated, _ := m.Update(ConfigReloadedMsg{Cfg: cfg})
	m = updated.(Model)

	if got := m.nav.Settings().Limit; got != 30 {
		t.Errorf("navigator limit = %d, want 30", got)
	}
	if m.statusMsg != "Config reloaded" || m.statusIsError {
		t.Errorf("status = %q isError=%v", m.statusMsg, m.statusIsError)
	}

	updated, _ = m.Update(ConfigReloadedMsg{Err: errors.New("yaml: bad indent")})
	m = updated.(Model)
	if !m.statusIsError || !strings.Contains(m.statusMsg, "Config reload failed") {
		t.Errorf("status = %q", m.statusMsg)
	}
}

func TestDetailOverlayFlow(t *testing.T) {
	m := newTestModel()
	req := m.nav.RunSearch("neon noir")
	m = applyResult(t, m, req, searchResultGraph(), nil)

	updated, _ := m.Update(keyRunes("o"))
	m = updated.(Model)
	if !m.detail.Visible() {
		t.Fatal("expected detail overlay")
	}
	if m.detailRoute != "/movies/sr1" {
		t.Errorf("detail route = %q", m.detailRoute)
	}

	updated, _ = m.Update(DetailMsg{ID: "sr1", Detail: sampleDetail()})
	m = updated.(Model)

	view := m.View()
	if !strings.Contains(view, "j/k: scroll") {
		t.Error("overlay missing its key hints")
	}

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = updated.(Model)
	if m.detail.Visible() {
		t.Error("esc should close the overlay")
	}
}

func TestOpenDashboardKey(t *testing.T) {
	m := newTestModel()
	var opened string
	m.openFn = func(url string) error {
		opened = url
		return nil
	}
	req := m.nav.RunSearch("neon noir")
	m = applyResult(t, m, req, searchResultGraph(), nil)

	updated, cmd := m.Update(keyRunes("O"))
	m = updated.(Model)
	if cmd == nil {
		t.Fatal("expected an open command")
	}
	msg := cmd()
	if _, ok := msg.(OpenedMsg); !ok {
		t.Fatalf("expected OpenedMsg, got %T", msg)
	}
	if opened != "http://localhost:5173/movies/sr1" {
		t.Errorf("opened %q", opened)
	}

	updated, _ = m.Update(msg)
	m = updated.(Model)
	if !strings.Contains(m.statusMsg, "Opened") {
		t.Errorf("status = %q", m.statusMsg)
	}
}

func TestOpenDashboardWithoutURL(t *testing.T) {
	m := newTestModel()
	m.cfg.Service.DashboardURL = ""
	req := m.nav.RunSearch("neon noir")
	m = applyResult(t, m, req, searchResultGraph(), nil)

	updated, cmd := m.Update(keyRunes("O"))
	m = updated.(Model)
	if cmd != nil {
		t.Error("no dashboard URL should open nothing")
	}
	if !m.statusIsError || !strings.Contains(m.statusMsg, "No dashboard URL") {
		t.Errorf("status = %q", m.statusMsg)
	}
}

func TestYankKey(t *testing.T) {
	m := newTestModel()
	var copied string
	m.copyFn = func(s string) error {
		copied = s
		return nil
	}
	req := m.nav.RunSearch("neon noir")
	m = applyResult(t, m, req, searchResultGraph(), nil)

	updated, cmd := m.Update(keyRunes("y"))
	m = updated.(Model)
	if cmd == nil {
		t.Fatal("expected a copy command")
	}
	msg := cmd()
	if copied != "http://localhost:5173/movies/sr1" {
		t.Errorf("copied %q", copied)
	}

	updated, _ = m.Update(msg)
	m = updated.(Model)
	if !strings.Contains(m.statusMsg, "Copied") || m.statusIsError {
		t.Errorf("status = %q isError=%v", m.statusMsg, m.statusIsError)
	}
}

func TestSnapshotExportWithoutGraph(t *testing.T) {
	m := newTestModel()

	updated, cmd := m.Update(keyRunes("E"))
	m = updated.(Model)
	if cmd == nil {
		t.Fatal("expected an immediate failure message")
	}
	updated, _ = m.Update(cmd())
	m = updated.(Model)
	if !m.statusIsError || !strings.Contains(m.statusMsg, "no graph on screen") {
		t.Errorf("status = %q", m.statusMsg)
	}
}

func TestTrailExportWithoutAnything(t *testing.T) {
	m := newTestModel()

	updated, cmd := m.Update(keyRunes("T"))
	m = updated.(Model)
	if cmd == nil {
		t.Fatal("expected an immediate failure message")
	}
	updated, _ = m.Update(cmd())
	m = updated.(Model)
	if !m.statusIsError || !strings.Contains(m.statusMsg, "nothing to report yet") {
		t.Errorf("status = %q", m.statusMsg)
	}
}

func TestHealthIndicator(t *testing.T) {
	m := newTestModel()

	updated, _ := m.Update(HealthMsg{OK: false})
	m = updated.(Model)
	if !m.serviceDown {
		t.Fatal("failed ping should mark the service down")
	}
	if !strings.Contains(m.View(), "offline") {
		t.Error("header missing the offline badge")
	}

	// Any applied fetch success proves the service reachable again.
	req := m.nav.RunSearch("neon noir")
	m = applyResult(t, m, req, searchResultGraph(), nil)
	if m.serviceDown {
		t.Error("successful fetch should clear the offline flag")
	}
	if strings.Contains(m.View(), "offline") {
		t.Error("offline badge should disappear after a good fetch")
	}
}

func TestStatusClearsOnKeypress(t *testing.T) {
	m := newTestModel()
	m.statusMsg = "Copied something"

	updated, _ := m.Update(keyRunes("j"))
	m = updated.(Model)
	if m.statusMsg != "" {
		t.Errorf("status should clear on keypress, got %q", m.statusMsg)
	}
}

func TestStatusFooterStyles(t *testing.T) {
	m := newTestModel()

	m.statusMsg = "Snapshot saved to /tmp/explore.svg"
	m.statusIsError = false
	if out := m.renderFooter(); !strings.Contains(out, "✓ Snapshot saved") {
		t.Errorf("success footer = %q", out)
	}

	m.statusIsError = true
	if out := m.renderFooter(); !strings.Contains(out, "✗ Snapshot saved") {
		t.Errorf("error footer = %q", out)
	}
}

func TestAutoCloseQuits(t *testing.T) {
	m := newTestModel()
	_, cmd := m.Update(AutoCloseMsg{})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Errorf("expected tea.QuitMsg, got %T", cmd())
	}
}
