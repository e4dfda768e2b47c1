package ui

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strconv"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vanderheijden86/reelgraph/internal/api"
	"github.com/vanderheijden86/reelgraph/pkg/config"
	"github.com/vanderheijden86/reelgraph/pkg/debug"
	"github.com/vanderheijden86/reelgraph/pkg/explore"
	"github.com/vanderheijden86/reelgraph/pkg/export"
	"github.com/vanderheijden86/reelgraph/pkg/metrics"
	"github.com/vanderheijden86/reelgraph/pkg/model"
	"github.com/vanderheijden86/reelgraph/pkg/watcher"
)

const (
	// insightsPanelWidth is the fixed width of the side panel.
	insightsPanelWidth = 34
	// insightsMinWidth is the narrowest terminal that still fits the graph
	// next to the insights panel.
	insightsMinWidth = 100
)

// Model is the root Bubble Tea model: it owns the Navigator, dispatches its
// requests as commands, and wires every sub-view. All Navigator calls happen
// here, on the update loop, which is what keeps the Navigator's
// single-goroutine contract honest.
type Model struct {
	nav       *explore.Navigator
	providers explore.Providers
	client    *api.Client

	cfg     config.Config
	cfgPath string
	watcher *watcher.Watcher

	theme Theme

	search     SearchModel
	categories CategoriesModel
	graph      GraphModel
	trail      TrailModel
	insights   InsightsModel
	detail     DetailModel

	showHelp     bool
	showInsights bool

	// detailRoute is the dashboard route of the node the detail overlay was
	// opened for, kept so O and y inside the overlay act on the right title
	// even if the list selection moves underneath.
	detailRoute string

	statusMsg     string
	statusIsError bool

	// serviceDown flips after a failed health ping and back after any
	// successful ping or fetch.
	serviceDown bool

	spinnerIdx int
	spinning   bool

	ready  bool
	width  int
	height int

	copyFn    func(string) error
	openFn    func(string) error
	autoClose time.Duration
}

// NewModel builds the root model. client may be nil in tests; store may be
// nil to keep recent searches session-only.
func NewModel(cfg config.Config, cfgPath string, client *api.Client, store explore.RecentStore) Model {
	nav := explore.New(store, explore.Settings{
		Limit:      cfg.Explore.Limit,
		Depth:      cfg.Explore.Depth,
		CrossMedia: cfg.Explore.CrossMedia,
	})
	nav.SetLogf(debug.Log)

	var providers explore.Providers
	if client != nil {
		providers = client.Providers()
	}

	theme := DefaultTheme(lipgloss.NewRenderer(os.Stdout))

	// Default dimensions for immediate ready state (updated when
	// WindowSizeMsg arrives). This eliminates the "Initializing..." phase
	// in tmux, SSH, and slow terminal emulators.
	const defaultWidth = 120
	const defaultHeight = 40

	search := NewSearchModel(theme)
	search.SetWidth(defaultWidth)
	search.SetRecent(nav.Recent())

	graph := NewGraphModel(nil, theme)
	graph.SetHideLegend(cfg.UI.HideLegend)

	// Config file watcher for live reload
	var cfgWatcher *watcher.Watcher
	var watcherErr error
	if cfgPath != "" {
		w, err := watcher.NewWatcher(cfgPath,
			watcher.WithDebounceDuration(200*time.Millisecond),
		)
		if err != nil {
			watcherErr = err
		} else if err := w.Start(); err != nil {
			watcherErr = err
		} else {
			cfgWatcher = w
		}
	}

	var initialStatus string
	var initialStatusErr bool
	if watcherErr != nil {
		initialStatus = fmt.Sprintf("Config reload unavailable: %v", watcherErr)
		initialStatusErr = true
	}

	return Model{
		nav:           nav,
		providers:     providers,
		client:        client,
		cfg:           cfg,
		cfgPath:       cfgPath,
		watcher:       cfgWatcher,
		theme:         theme,
		search:        search,
		categories:    NewCategoriesModel(theme),
		graph:         graph,
		trail:         NewTrailModel(theme),
		insights:      NewInsightsModel(theme),
		detail:        NewDetailModel(theme),
		statusMsg:     initialStatus,
		statusIsError: initialStatusErr,
		ready:         true,
		width:         defaultWidth,
		height:        defaultHeight,
		copyFn:        clipboard.WriteAll,
		openFn:        openBrowser,
		autoClose:     autoCloseFromEnv(),
	}
}

func (m Model) Init() tea.Cmd {
	var cmds []tea.Cmd
	if m.client != nil {
		cmds = append(cmds, PingHealthCmd(m.client, m.cfg.Service.Timeout()))
	}
	if m.watcher != nil {
		cmds = append(cmds, WatchConfigCmd(m.watcher))
	}
	if m.autoClose > 0 {
		cmds = append(cmds, AutoCloseCmd(m.autoClose))
	}
	return tea.Batch(cmds...)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.search.SetWidth(m.width)
		m.detail.SetSize(m.width, m.height-1)
		return m, nil

	case ReadyTimeoutMsg:
		m.ready = true
		return m, nil

	case tea.KeyMsg:
		// Clear status message on any keypress
		m.statusMsg = ""
		m.statusIsError = false

		if m.showHelp {
			switch msg.String() {
			case "?", "esc", "q":
				m.showHelp = false
			}
			return m, nil
		}

		if m.detail.Visible() {
			switch msg.String() {
			case "j", "down":
				m.detail.ScrollDown()
			case "k", "up":
				m.detail.ScrollUp()
			case "O":
				url := m.cfg.Service.DashboardHref(m.detailRoute)
				if url == "" {
					m.statusMsg = "No dashboard URL configured"
					m.statusIsError = true
					return m, nil
				}
				return m, OpenURLCmd(m.openFn, url)
			case "y":
				text := m.cfg.Service.DashboardHref(m.detailRoute)
				if text == "" {
					text = m.detailRoute
				}
				return m, YankCmd(m.copyFn, text)
			case "o", "esc", "q":
				m.detail.Close()
			}
			return m, nil
		}

		if m.search.Focused() {
			m.search, cmd = m.search.Update(msg)
			return m, cmd
		}

		if m.categories.IsOpen() {
			m.categories, cmd = m.categories.Update(msg)
			return m, cmd
		}

		return m.handleGlobalKey(msg)

	case SearchSubmitMsg:
		req := m.nav.RunSearch(msg.Query)
		if req == nil {
			return m, nil
		}
		m.search.SetRecent(m.nav.Recent())
		cmds = append(cmds, m.startFetch(req)...)
		cmds = append(cmds, m.syncDisplay()...)
		return m, tea.Batch(cmds...)

	case CategorySelectedMsg:
		m.categories.Close()
		req := m.nav.SelectBrowseCategory(msg.Category)
		cmds = append(cmds, m.startFetch(req)...)
		cmds = append(cmds, m.syncDisplay()...)
		return m, tea.Batch(cmds...)

	case FetchResultMsg:
		if !m.nav.Complete(msg.Result) {
			return m, nil
		}
		if msg.Result.Err != nil {
			m.statusMsg = fmt.Sprintf("Fetch failed: %v", msg.Result.Err)
			m.statusIsError = true
			cmds = append(cmds, m.syncDisplay()...)
			cmds = append(cmds, PingHealthCmd(m.client, m.cfg.Service.Timeout()))
			return m, tea.Batch(cmds...)
		}
		m.serviceDown = false
		return m, tea.Batch(m.syncDisplay()...)

	case HealthMsg:
		m.serviceDown = !msg.OK
		return m, nil

	case ProgressTickMsg:
		if _, ok := m.nav.ProgressTick(msg.Run, msg.At); !ok {
			return m, nil
		}
		m.spinnerIdx++
		return m, ProgressTickCmd(msg.Run, m.progressInterval())

	case SpinnerTickMsg:
		m.spinnerIdx++
		d := m.nav.Display()
		if d.Loading && d.Source != explore.DisplaySearch {
			return m, spinnerTickCmd()
		}
		m.spinning = false
		return m, nil

	case InsightsMsg:
		if !m.insights.Apply(msg.Gen, msg.Insights) {
			debug.Log("dropping stale insights (gen %d)", msg.Gen)
		}
		return m, nil

	case DetailMsg:
		m.detail.Apply(msg)
		return m, nil

	case FileChangedMsg:
		debug.Log("config file changed, reloading")
		return m, tea.Batch(ReloadConfigCmd(m.cfgPath), WatchConfigCmd(m.watcher))

	case ConfigReloadedMsg:
		if msg.Err != nil {
			m.statusMsg = fmt.Sprintf("Config reload failed: %v", msg.Err)
			m.statusIsError = true
			return m, nil
		}
		m.cfg = msg.Cfg
		m.nav.UpdateSettings(explore.Settings{
			Limit:      msg.Cfg.Explore.Limit,
			Depth:      msg.Cfg.Explore.Depth,
			CrossMedia: msg.Cfg.Explore.CrossMedia,
		})
		m.graph.SetHideLegend(msg.Cfg.UI.HideLegend)
		m.statusMsg = "Config reloaded"
		return m, nil

	case SnapshotSavedMsg:
		if msg.Err != nil {
			m.statusMsg = fmt.Sprintf("Snapshot failed: %v", msg.Err)
			m.statusIsError = true
		} else {
			m.statusMsg = fmt.Sprintf("Snapshot saved to %s", msg.Path)
		}
		return m, nil

	case TrailSavedMsg:
		if msg.Err != nil {
			m.statusMsg = fmt.Sprintf("Trail report failed: %v", msg.Err)
			m.statusIsError = true
		} else {
			m.statusMsg = fmt.Sprintf("Trail report saved to %s", msg.Path)
		}
		return m, nil

	case YankedMsg:
		if msg.Err != nil {
			m.statusMsg = fmt.Sprintf("Copy failed: %v", msg.Err)
			m.statusIsError = true
		} else {
			m.statusMsg = fmt.Sprintf("Copied %s", msg.Text)
		}
		return m, nil

	case OpenedMsg:
		if msg.Err != nil {
			m.statusMsg = fmt.Sprintf("Open failed: %v", msg.Err)
			m.statusIsError = true
		} else {
			m.statusMsg = fmt.Sprintf("Opened %s", msg.URL)
		}
		return m, nil

	case AutoCloseMsg:
		return m, tea.Quit
	}

	// Component messages (cursor blink and friends) flow to the focused
	// input.
	if m.search.Focused() {
		m.search, cmd = m.search.Update(msg)
		return m, cmd
	}

	return m, nil
}

// handleGlobalKey handles keys when no overlay or focused input is eating
// them.
func (m Model) handleGlobalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg.String() {
	case "ctrl+c", "q":
		m.nav.Close()
		if m.watcher != nil {
			m.watcher.Stop()
		}
		return m, tea.Quit

	case "/":
		m.search.SetRecent(m.nav.Recent())
		return m, m.search.Focus()

	case "b":
		m.categories.Open(m.activeCategory())
		return m, nil

	case "x":
		req := m.nav.ToggleCrossMedia()
		cmds = append(cmds, m.startFetch(req)...)
		cmds = append(cmds, m.syncDisplay()...)
		return m, tea.Batch(cmds...)

	case "r":
		req := m.nav.RefetchBrowse()
		cmds = append(cmds, m.startFetch(req)...)
		cmds = append(cmds, m.syncDisplay()...)
		return m, tea.Batch(cmds...)

	case "f":
		m.nav.SetMediaFilter(nextFilter(m.nav.MediaFilter()))
		m.statusMsg = fmt.Sprintf("Search filter: %s", m.nav.MediaFilter().Label())
		return m, nil

	case "j", "down":
		m.graph.MoveDown()
		return m, nil

	case "k", "up":
		m.graph.MoveUp()
		return m, nil

	case "ctrl+d", "pgdown":
		m.graph.PageDown()
		return m, nil

	case "ctrl+u", "pgup":
		m.graph.PageUp()
		return m, nil

	case "enter":
		node := m.graph.SelectedNode()
		if node == nil {
			return m, nil
		}
		req := m.nav.ClickNode(*node)
		cmds = append(cmds, m.startFetch(req)...)
		cmds = append(cmds, m.syncDisplay()...)
		return m, tea.Batch(cmds...)

	case "o":
		node := m.graph.SelectedNode()
		if node == nil {
			return m, nil
		}
		m.detailRoute = node.Route()
		m.detail.SetSize(m.width, m.height-1)
		m.detail.OpenLoading(node.ID, node.Title)
		return m, FetchDetailCmd(m.client, node.MediaType, node.ID, m.cfg.Service.Timeout())

	case "O":
		node := m.graph.SelectedNode()
		if node == nil {
			return m, nil
		}
		url := m.cfg.Service.DashboardHref(m.nav.OpenNode(*node))
		if url == "" {
			m.statusMsg = "No dashboard URL configured"
			m.statusIsError = true
			return m, nil
		}
		return m, OpenURLCmd(m.openFn, url)

	case "y":
		node := m.graph.SelectedNode()
		if node == nil {
			return m, nil
		}
		text := m.cfg.Service.DashboardHref(node.Route())
		if text == "" {
			text = node.Route()
		}
		return m, YankCmd(m.copyFn, text)

	case "u":
		l := len(m.nav.History())
		if l == 0 {
			return m, nil
		}
		req := m.nav.GoToHistory(l - 1)
		cmds = append(cmds, m.startFetch(req)...)
		cmds = append(cmds, m.syncDisplay()...)
		return m, tea.Batch(cmds...)

	case "0", "1", "2", "3", "4", "5", "6", "7", "8", "9":
		idx, _ := strconv.Atoi(msg.String())
		req := m.nav.GoToHistory(idx)
		cmds = append(cmds, m.startFetch(req)...)
		cmds = append(cmds, m.syncDisplay()...)
		return m, tea.Batch(cmds...)

	case "i":
		if m.width < insightsMinWidth {
			m.statusMsg = "Terminal too narrow for the insights panel"
			m.statusIsError = true
			return m, nil
		}
		m.showInsights = !m.showInsights
		if !m.showInsights {
			return m, nil
		}
		d := m.nav.Display()
		if d.Graph == nil || d.Graph.IsEmpty() {
			return m, nil
		}
		gen := m.insights.Request()
		return m, ComputeInsightsCmd(gen, d.Graph)

	case "E":
		return m, m.exportSnapshot()

	case "T":
		return m, m.exportTrail()

	case "?":
		m.showHelp = true
		return m, nil

	case "esc":
		if m.showInsights {
			m.showInsights = false
		}
		return m, nil
	}

	return m, nil
}

// startFetch turns a navigator request into the command that runs it, plus
// whichever tick loop should accompany it: the simulated progress readout
// for searches, the plain spinner for everything else.
func (m *Model) startFetch(req *explore.Request) []tea.Cmd {
	if req == nil {
		return nil
	}
	cmds := []tea.Cmd{RunRequestCmd(m.providers, req, m.cfg.Service.Timeout())}
	if req.Kind == explore.FetchSearch {
		cmds = append(cmds, ProgressTickCmd(req.Run, m.progressInterval()))
		return cmds
	}
	if !m.spinning {
		m.spinning = true
		cmds = append(cmds, spinnerTickCmd())
	}
	return cmds
}

// syncDisplay pushes the navigator's resolved display into the graph panel
// and keeps the insights panel tied to the graph on screen.
func (m *Model) syncDisplay() []tea.Cmd {
	d := m.nav.Display()
	m.graph.SetGraph(d.Graph)
	if d.Graph == nil || d.Graph.IsEmpty() {
		m.insights.Clear()
		return nil
	}
	if !m.showInsights {
		return nil
	}
	gen := m.insights.Request()
	return []tea.Cmd{ComputeInsightsCmd(gen, d.Graph)}
}

func (m Model) progressInterval() time.Duration {
	if m.cfg.UI.ReducedMotion {
		return 2 * explore.ProgressTickInterval
	}
	return explore.ProgressTickInterval
}

// activeCategory returns the category the picker should highlight: the one
// on screen in browse mode, the configured default otherwise.
func (m Model) activeCategory() model.BrowseCategory {
	if b, ok := m.nav.Mode().(explore.Browsing); ok {
		return b.Category
	}
	if cat, err := model.ParseCategory(m.cfg.Explore.DefaultCategory); err == nil {
		return cat
	}
	return model.CategoryMyMoviePicks
}

func (m Model) exportSnapshot() tea.Cmd {
	d := m.nav.Display()
	if d.Graph == nil || d.Graph.IsEmpty() {
		return func() tea.Msg {
			return SnapshotSavedMsg{Err: fmt.Errorf("no graph on screen")}
		}
	}
	path := filepath.Join(config.DataDir(),
		fmt.Sprintf("explore-%s.svg", time.Now().Format("20060102-150405")))
	return SaveSnapshotCmd(export.SnapshotOptions{
		Path:   path,
		Title:  "Exploration graph",
		Source: m.modeSummary(),
		Graph:  d.Graph,
	})
}

func (m Model) exportTrail() tea.Cmd {
	d := m.nav.Display()
	opts := export.TrailOptions{
		Entries:      m.nav.History(),
		Graph:        d.Graph,
		Searches:     m.nav.Recent(),
		DashboardURL: m.cfg.Service.DashboardURL,
	}
	if d.Graph != nil {
		opts.Current = d.Graph.CenterNode()
	}
	if len(opts.Entries) == 0 && opts.Current == nil && len(opts.Searches) == 0 {
		return func() tea.Msg {
			return TrailSavedMsg{Err: fmt.Errorf("nothing to report yet")}
		}
	}
	path := filepath.Join(config.DataDir(),
		fmt.Sprintf("trail-%s.md", time.Now().Format("20060102-150405")))
	return SaveTrailCmd(path, opts)
}

func (m Model) View() string {
	defer metrics.Timer(metrics.UIRender)()

	if !m.ready {
		return "Initializing..."
	}

	footer := m.renderFooter()

	finalStyle := lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		MaxHeight(m.height)

	// Overlays replace the whole body but keep the footer.
	if m.showHelp {
		body := RenderHelp(m.theme, m.width, m.height-1)
		return finalStyle.Render(lipgloss.JoinVertical(lipgloss.Left, body, footer))
	}
	if m.detail.Visible() {
		body := m.detail.View(m.width, m.height-1)
		return finalStyle.Render(lipgloss.JoinVertical(lipgloss.Left, body, footer))
	}

	d := m.nav.Display()

	sections := []string{
		m.renderGlobalHeader(d),
		m.search.View(m.width, m.nav.MediaFilter()),
	}

	if m.categories.IsOpen() || d.Source == explore.DisplayBrowse {
		crossMedia := m.cfg.Explore.CrossMedia
		isBrowsing := false
		if b, ok := m.nav.Mode().(explore.Browsing); ok {
			crossMedia = b.CrossMedia
			isBrowsing = true
		}
		sections = append(sections, m.categories.View(m.width, m.activeCategory(), isBrowsing, crossMedia))
	}

	if f, ok := m.nav.Mode().(explore.Focused); ok {
		sections = append(sections, m.trail.View(m.width, m.nav.History(), f.Title))
	}

	used := 1 // footer
	for _, s := range sections {
		used += lipgloss.Height(s)
	}
	bodyHeight := m.height - used
	if bodyHeight < 3 {
		bodyHeight = 3
	}

	paneWidth := m.width
	if m.showInsights && m.width >= insightsMinWidth {
		paneWidth = m.width - insightsPanelWidth - 1
	}

	var pane string
	switch {
	case d.Loading && d.Source == explore.DisplaySearch:
		pane = renderLoadingReadout(m.theme, paneWidth, bodyHeight, d.Status, m.spinnerIdx)
	case d.Loading:
		pane = renderQuietLoading(m.theme, paneWidth, bodyHeight, m.spinnerIdx, loadingText(d.Source))
	case d.Err != nil:
		hint := "0: start over"
		if d.Source == explore.DisplayBrowse {
			hint = "r: refetch"
		}
		pane = renderErrorPane(m.theme, paneWidth, bodyHeight, d.Err, hint)
	case d.Graph != nil:
		pane = m.graph.View(paneWidth, bodyHeight)
	default:
		pane = renderEmptyPane(m.theme, paneWidth, bodyHeight)
	}

	body := pane
	if m.showInsights && m.width >= insightsMinWidth {
		side := m.insights.View(insightsPanelWidth, bodyHeight)
		body = lipgloss.JoinHorizontal(lipgloss.Top, pane, " ", side)
	}

	sections = append(sections, body, footer)
	return finalStyle.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func (m Model) renderGlobalHeader(d explore.Display) string {
	appName := lipgloss.NewStyle().Bold(true).Foreground(ColorText).Render("reel")
	sep := lipgloss.NewStyle().Foreground(ColorMuted).Render(" | ")

	modeSection := lipgloss.NewStyle().Foreground(ColorSubtext).Render(m.modeSummary())
	leftParts := appName + sep + modeSection

	filterLabel := lipgloss.NewStyle().Foreground(ColorSubtext).
		Render(m.nav.MediaFilter().Label())

	movieStyle := lipgloss.NewStyle().Foreground(ColorMovie)
	seriesStyle := lipgloss.NewStyle().Foreground(ColorSeries)
	mutedStyle := lipgloss.NewStyle().Foreground(ColorMuted)

	movies, series := mediaCounts(d.Graph)
	statsContent := fmt.Sprintf("%s%d %s%d %s%d",
		movieStyle.Render("M "), movies,
		seriesStyle.Render("S "), series,
		mutedStyle.Render("⇄ "), edgeCount(d.Graph))

	rightParts := filterLabel + sep + statsContent
	if m.serviceDown {
		offline := lipgloss.NewStyle().Foreground(ColorDanger).Bold(true).Render("● offline")
		rightParts = offline + sep + rightParts
	}

	leftWidth := lipgloss.Width(leftParts)
	rightWidth := lipgloss.Width(rightParts)
	fillerWidth := m.width - leftWidth - rightWidth
	if fillerWidth < 1 {
		fillerWidth = 1
	}
	filler := lipgloss.NewStyle().Width(fillerWidth).Render("")

	headerBg := lipgloss.NewStyle().
		Width(m.width).
		Background(ColorBgHighlight)

	return headerBg.Render(leftParts + filler + rightParts)
}

// modeSummary is the one-line description of where the user is, for the
// header and export provenance.
func (m Model) modeSummary() string {
	switch mode := m.nav.Mode().(type) {
	case explore.Searching:
		s := fmt.Sprintf("search %q", mode.Query)
		if mode.Filter.Valid() {
			s += " · " + mode.Filter.Label()
		}
		return s
	case explore.Focused:
		return "rabbit hole · " + mode.Title
	case explore.Browsing:
		s := mode.Category.Label()
		if mode.CrossMedia {
			s += " · mixed"
		}
		return s
	default:
		return "explore"
	}
}

func (m Model) renderFooter() string {
	if m.statusMsg != "" {
		var msgStyle lipgloss.Style
		if m.statusIsError {
			msgStyle = lipgloss.NewStyle().
				Background(ColorDangerBg).
				Foreground(ColorDanger).
				Bold(true).
				Padding(0, 2)
		} else {
			msgStyle = lipgloss.NewStyle().
				Background(ColorSuccessBg).
				Foreground(ColorSuccess).
				Bold(true).
				Padding(0, 2)
		}
		prefix := "✓ "
		if m.statusIsError {
			prefix = "✗ "
		}
		msgSection := msgStyle.Render(prefix + m.statusMsg)
		remaining := m.width - lipgloss.Width(msgSection)
		if remaining < 0 {
			remaining = 0
		}
		filler := lipgloss.NewStyle().Width(remaining).Render("")
		return lipgloss.JoinHorizontal(lipgloss.Bottom, msgSection, filler)
	}

	keyStyle := lipgloss.NewStyle().Foreground(ColorMuted)
	labelStyle := lipgloss.NewStyle().Foreground(ColorText)

	type hint struct {
		key   string
		label string
	}
	var hints []hint

	switch {
	case m.showHelp:
		hints = []hint{{"esc", "close"}}
	case m.detail.Visible():
		hints = []hint{
			{"j/k", "scroll"},
			{"O", "dashboard"},
			{"y", "copy link"},
			{"esc", "close"},
		}
	case m.search.Focused():
		hints = []hint{
			{"enter", "search"},
			{"↑/↓", "recent"},
			{"esc", "cancel"},
		}
	case m.categories.IsOpen():
		hints = []hint{
			{"1-5", "pick"},
			{"h/l", "move"},
			{"enter", "select"},
			{"esc", "close"},
		}
	default:
		switch m.nav.Mode().(type) {
		case explore.Focused:
			hints = []hint{
				{"j/k", "select"},
				{"enter", "drill in"},
				{"o", "details"},
				{"1-9", "jump"},
				{"0", "start over"},
				{"u", "back"},
				{"i", "insights"},
				{"?", "help"},
			}
		case explore.Browsing:
			hints = []hint{
				{"j/k", "select"},
				{"enter", "drill in"},
				{"x", "mix"},
				{"r", "refetch"},
				{"f", "filter"},
				{"i", "insights"},
				{"?", "help"},
				{"q", "quit"},
			}
		case explore.Searching:
			hints = []hint{
				{"j/k", "select"},
				{"enter", "drill in"},
				{"f", "filter"},
				{"0", "rerun"},
				{"i", "insights"},
				{"?", "help"},
				{"q", "quit"},
			}
		default:
			hints = []hint{
				{"/", "search"},
				{"b", "browse"},
				{"f", "filter"},
				{"?", "help"},
				{"q", "quit"},
			}
		}
	}

	var hintParts []string
	for _, h := range hints {
		hintParts = append(hintParts, keyStyle.Render(h.key)+":"+labelStyle.Render(h.label))
	}
	shortcutBar := " "
	for i, p := range hintParts {
		if i > 0 {
			shortcutBar += "  "
		}
		shortcutBar += p
	}

	barWidth := lipgloss.Width(shortcutBar)
	remaining := m.width - barWidth
	if remaining < 0 {
		remaining = 0
	}
	filler := lipgloss.NewStyle().Width(remaining).Render("")

	return lipgloss.JoinHorizontal(lipgloss.Bottom, shortcutBar, filler)
}

// nextFilter cycles All -> Movie -> Series -> All.
func nextFilter(mt model.MediaType) model.MediaType {
	switch mt {
	case model.MediaAny:
		return model.MediaMovie
	case model.MediaMovie:
		return model.MediaSeries
	default:
		return model.MediaAny
	}
}

func mediaCounts(g *model.GraphData) (movies, series int) {
	if g == nil {
		return 0, 0
	}
	for _, n := range g.Nodes {
		switch n.MediaType {
		case model.MediaMovie:
			movies++
		case model.MediaSeries:
			series++
		}
	}
	return movies, series
}

func edgeCount(g *model.GraphData) int {
	if g == nil {
		return 0
	}
	return len(g.Edges)
}

// autoCloseFromEnv reads REEL_TUI_AUTOCLOSE_MS, used by smoke tests to exit
// the TUI without a keypress.
func autoCloseFromEnv() time.Duration {
	v := os.Getenv("REEL_TUI_AUTOCLOSE_MS")
	if v == "" {
		return 0
	}
	ms, err := strconv.Atoi(v)
	if err != nil || ms <= 0 {
		return 0
	}
	return time.Duration(ms) * time.Millisecond
}

// openBrowser opens a URL in the default browser. REEL_NO_BROWSER suppresses
// the launch for tests and headless environments.
func openBrowser(url string) error {
	if os.Getenv("REEL_NO_BROWSER") != "" {
		debug.Log("browser launch suppressed for %s", url)
		return nil
	}
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	return cmd.Start()
}
