package ui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/vanderheijden86/reelgraph/pkg/explore"
	"github.com/vanderheijden86/reelgraph/pkg/model"
)

// phaseTitle maps a simulated search phase to its readout heading.
func phaseTitle(p model.SearchPhase) string {
	switch p {
	case model.PhaseSearching:
		return "Searching"
	case model.PhaseClustering:
		return "Clustering"
	case model.PhaseBuilding:
		return "Building graph"
	default:
		return string(p)
	}
}

const progressBarWidth = 24

// renderLoadingReadout fills the graph pane with the simulated search
// progress: phase heading, message, bar and detail line. status may be nil
// for the first frame before the progress simulator has ticked.
func renderLoadingReadout(t Theme, width, height int, status *model.LoadingStatus, spinnerIdx int) string {
	spinner := t.PrimaryBold.Render(spinnerFrames[spinnerIdx%len(spinnerFrames)])

	st := model.LoadingStatus{Phase: model.PhaseSearching, Message: "warming up the search index"}
	if status != nil {
		st = *status
	}

	barWidth := clamp(width-10, 4, progressBarWidth)
	bar := RenderMiniBar(float64(st.Progress)/100, barWidth, t)

	lines := []string{
		spinner + " " + t.PrimaryBold.Render(phaseTitle(st.Phase)),
		t.InfoText.Render(st.Message),
		fmt.Sprintf("%s %s", bar, t.SecondaryText.Render(fmt.Sprintf("%d%%", st.Progress))),
	}
	if st.Detail != "" {
		lines = append(lines, t.MutedText.Render(st.Detail))
	}

	block := lipgloss.JoinVertical(lipgloss.Center, lines...)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, block)
}

// renderQuietLoading is the low-key spinner pane for browse and focus
// fetches, which finish too fast to deserve a phase readout.
func renderQuietLoading(t Theme, width, height int, spinnerIdx int, text string) string {
	spinner := t.PrimaryBold.Render(spinnerFrames[spinnerIdx%len(spinnerFrames)])
	line := spinner + " " + t.SecondaryText.Render(text)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, line)
}

// renderErrorPane shows a failed fetch in place of the graph.
func renderErrorPane(t Theme, width, height int, err error, hint string) string {
	msg := "something went wrong"
	if err != nil {
		msg = err.Error()
	}
	maxMsg := width - 8
	if maxMsg < 16 {
		maxMsg = 16
	}
	lines := []string{
		t.DangerText.Render("✗ " + truncateRunesHelper(msg, maxMsg, "…")),
	}
	if hint != "" {
		lines = append(lines, "", t.MutedText.Render(hint))
	}
	block := lipgloss.JoinVertical(lipgloss.Center, lines...)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, block)
}

// renderEmptyPane is the nothing-selected state: no search, no focus, no
// browse category.
func renderEmptyPane(t Theme, width, height int) string {
	lines := []string{
		t.PrimaryBold.Render("🧭 Nothing on screen yet"),
		"",
		t.SecondaryText.Render(padRight("/", 3)) + t.MutedText.Render("search by describing what you feel like"),
		t.SecondaryText.Render(padRight("b", 3)) + t.MutedText.Render("browse your picks and top titles"),
	}
	block := lipgloss.JoinVertical(lipgloss.Left, lines...)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, block)
}

// loadingText names what a quiet fetch is doing, for the spinner pane.
func loadingText(source explore.DisplaySource) string {
	switch source {
	case explore.DisplayFocus:
		return "pulling similar titles"
	case explore.DisplayBrowse:
		return "loading the category graph"
	default:
		return "loading"
	}
}
