package ui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vanderheijden86/reelgraph/internal/api"
	"github.com/vanderheijden86/reelgraph/pkg/analysis"
	"github.com/vanderheijden86/reelgraph/pkg/config"
	"github.com/vanderheijden86/reelgraph/pkg/explore"
	"github.com/vanderheijden86/reelgraph/pkg/export"
	"github.com/vanderheijden86/reelgraph/pkg/model"
	"github.com/vanderheijden86/reelgraph/pkg/watcher"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

const spinnerInterval = 120 * time.Millisecond

// RunRequestCmd executes a navigator request against the providers and hands
// the outcome back as a FetchResultMsg. A nil request (rejected input,
// no-op transitions) yields no command.
func RunRequestCmd(pr explore.Providers, req *explore.Request, timeout time.Duration) tea.Cmd {
	if req == nil {
		return nil
	}
	r := *req
	if timeout <= 0 {
		timeout = api.DefaultTimeout
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return FetchResultMsg{Result: pr.Run(ctx, r)}
	}
}

// ProgressTickCmd schedules the next simulated-progress refresh for the
// given run token.
func ProgressTickCmd(run uint64, interval time.Duration) tea.Cmd {
	if interval <= 0 {
		interval = explore.ProgressTickInterval
	}
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return ProgressTickMsg{Run: run, At: t}
	})
}

func spinnerTickCmd() tea.Cmd {
	return tea.Tick(spinnerInterval, func(time.Time) tea.Msg {
		return SpinnerTickMsg{}
	})
}

// ComputeInsightsCmd runs the graph analysis off the update loop. The
// generation ties the result to the graph snapshot it was requested for.
func ComputeInsightsCmd(gen uint64, g *model.GraphData) tea.Cmd {
	return func() tea.Msg {
		return InsightsMsg{Gen: gen, Insights: analysis.Compute(g)}
	}
}

// FetchDetailCmd loads the full record for one title.
func FetchDetailCmd(c *api.Client, mt model.MediaType, id string, timeout time.Duration) tea.Cmd {
	if c == nil || id == "" {
		return nil
	}
	if timeout <= 0 {
		timeout = api.DefaultTimeout
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		d, err := c.Detail(ctx, mt, id)
		return DetailMsg{ID: id, Detail: d, Err: err}
	}
}

// PingHealthCmd checks service reachability for the header indicator. It
// runs on startup and again after a failed fetch.
func PingHealthCmd(c *api.Client, timeout time.Duration) tea.Cmd {
	if c == nil {
		return nil
	}
	if timeout <= 0 {
		timeout = api.DefaultTimeout
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return HealthMsg{OK: c.Health(ctx) == nil}
	}
}

// WatchConfigCmd returns a command that waits for config file changes and
// sends FileChangedMsg. Re-arm it after every FileChangedMsg.
func WatchConfigCmd(w *watcher.Watcher) tea.Cmd {
	if w == nil {
		return nil
	}
	return func() tea.Msg {
		<-w.Changed()
		return FileChangedMsg{}
	}
}

// ReloadConfigCmd re-reads the config file after a change notification.
func ReloadConfigCmd(path string) tea.Cmd {
	return func() tea.Msg {
		cfg, err := config.LoadFrom(path)
		return ConfigReloadedMsg{Cfg: cfg, Err: err}
	}
}

// SaveSnapshotCmd renders the current graph to an SVG or PNG file.
func SaveSnapshotCmd(opts export.SnapshotOptions) tea.Cmd {
	return func() tea.Msg {
		err := export.SaveSnapshot(opts)
		return SnapshotSavedMsg{Path: opts.Path, Err: err}
	}
}

// SaveTrailCmd writes the Markdown trail report.
func SaveTrailCmd(path string, opts export.TrailOptions) tea.Cmd {
	return func() tea.Msg {
		err := export.SaveTrail(path, opts)
		return TrailSavedMsg{Path: path, Err: err}
	}
}

// YankCmd copies text to the clipboard via the injected copy function.
func YankCmd(copyFn func(string) error, text string) tea.Cmd {
	if copyFn == nil || text == "" {
		return nil
	}
	return func() tea.Msg {
		return YankedMsg{Text: text, Err: copyFn(text)}
	}
}

// OpenURLCmd opens a dashboard link via the injected opener.
func OpenURLCmd(openFn func(string) error, url string) tea.Cmd {
	if openFn == nil || url == "" {
		return nil
	}
	return func() tea.Msg {
		return OpenedMsg{URL: url, Err: openFn(url)}
	}
}

// ReadyTimeoutCmd returns a command that sends ReadyTimeoutMsg after 100ms,
// so the TUI doesn't hang on "Initializing..." if the terminal is slow to
// report its size.
func ReadyTimeoutCmd() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(time.Time) tea.Msg {
		return ReadyTimeoutMsg{}
	})
}

// AutoCloseCmd quits the program after d, used by smoke tests.
func AutoCloseCmd(d time.Duration) tea.Cmd {
	if d <= 0 {
		return nil
	}
	return tea.Tick(d, func(time.Time) tea.Msg {
		return AutoCloseMsg{}
	})
}
