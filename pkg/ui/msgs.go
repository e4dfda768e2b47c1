package ui

import (
	"time"

	"github.com/vanderheijden86/reelgraph/internal/api"
	"github.com/vanderheijden86/reelgraph/pkg/analysis"
	"github.com/vanderheijden86/reelgraph/pkg/config"
	"github.com/vanderheijden86/reelgraph/pkg/explore"
)

// FetchResultMsg carries a completed graph fetch back to the navigator. The
// embedded generation lets stale completions be discarded.
type FetchResultMsg struct {
	Result explore.Result
}

// ProgressTickMsg advances the simulated search readout. Run is the
// simulator token the originating search carried; a tick from a superseded
// run is dropped and not rescheduled.
type ProgressTickMsg struct {
	Run uint64
	At  time.Time
}

// SpinnerTickMsg drives the spinner shown for browse and focus fetches,
// which have no simulated progress curve.
type SpinnerTickMsg struct{}

// InsightsMsg carries a finished insights computation. Gen ties the result
// to the graph it was computed from; a stale generation is dropped.
type InsightsMsg struct {
	Gen      uint64
	Insights analysis.Insights
}

// DetailMsg carries a fetched media detail record, or the error fetching it.
type DetailMsg struct {
	ID     string
	Detail *api.MediaDetail
	Err    error
}

// HealthMsg carries the outcome of a service health ping.
type HealthMsg struct {
	OK bool
}

// FileChangedMsg is sent when the config file changes on disk.
type FileChangedMsg struct{}

// ConfigReloadedMsg carries a freshly parsed config after a file change.
type ConfigReloadedMsg struct {
	Cfg config.Config
	Err error
}

// SnapshotSavedMsg reports the outcome of a graph snapshot export.
type SnapshotSavedMsg struct {
	Path string
	Err  error
}

// TrailSavedMsg reports the outcome of a trail report export.
type TrailSavedMsg struct {
	Path string
	Err  error
}

// YankedMsg reports the outcome of a clipboard copy.
type YankedMsg struct {
	Text string
	Err  error
}

// OpenedMsg reports the outcome of opening a dashboard link in the browser.
type OpenedMsg struct {
	URL string
	Err error
}

// ReadyTimeoutMsg is sent after a short delay to ensure the UI becomes ready
// even if the terminal doesn't send WindowSizeMsg promptly (common in tmux,
// SSH, some terminal emulators).
type ReadyTimeoutMsg struct{}

// AutoCloseMsg quits the program after the interval set by
// REEL_TUI_AUTOCLOSE_MS, for smoke tests that need the TUI to exit on its
// own.
type AutoCloseMsg struct{}
