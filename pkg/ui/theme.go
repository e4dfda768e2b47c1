package ui

import (
	"os"

	"github.com/charmbracelet/colorprofile"
	"github.com/charmbracelet/lipgloss"

	"github.com/vanderheijden86/reelgraph/pkg/model"
)

// TermProfile holds the detected terminal color profile. Computed once at
// package init so every style helper can branch without re-detecting.
var TermProfile colorprofile.Profile

func init() {
	TermProfile = colorprofile.Detect(os.Stdout, os.Environ())
}

// ThemeBg returns the given hex color for TrueColor terminals and
// lipgloss.NoColor{} otherwise, so 16/256-color terminals use the
// terminal's own background instead of a down-converted approximation
// that may clash with palettes like Solarized.
func ThemeBg(hex string) lipgloss.TerminalColor {
	if TermProfile < colorprofile.TrueColor {
		return lipgloss.NoColor{}
	}
	return lipgloss.Color(hex)
}

// ThemeFg returns the given hex color for ANSI256+ terminals and a safe
// ANSI white (color 7) for 16-color or lower terminals.
func ThemeFg(hex string) lipgloss.TerminalColor {
	if TermProfile < colorprofile.ANSI256 {
		return lipgloss.ANSIColor(7)
	}
	return lipgloss.Color(hex)
}

type Theme struct {
	Renderer *lipgloss.Renderer

	// Colors
	Primary   lipgloss.AdaptiveColor
	Secondary lipgloss.AdaptiveColor
	Subtext   lipgloss.AdaptiveColor

	// Media types
	Movie  lipgloss.AdaptiveColor
	Series lipgloss.AdaptiveColor
	Center lipgloss.AdaptiveColor

	// Relationship kinds
	SharedGenre lipgloss.AdaptiveColor
	CastOverlap lipgloss.AdaptiveColor
	Thematic    lipgloss.AdaptiveColor
	Related     lipgloss.AdaptiveColor

	// UI Elements
	Border    lipgloss.AdaptiveColor
	Highlight lipgloss.AdaptiveColor
	Muted     lipgloss.AdaptiveColor

	// Styles
	Base     lipgloss.Style
	Selected lipgloss.Style
	Header   lipgloss.Style

	// Pre-computed styles, created once at startup instead of per-frame.
	MutedText     lipgloss.Style // hints, weights, ages
	InfoText      lipgloss.Style // phase messages
	InfoBold      lipgloss.Style // progress percentages
	SecondaryText lipgloss.Style // ids, counts
	PrimaryBold   lipgloss.Style // selection indicator, active crumbs
	SuccessText   lipgloss.Style // saved-file confirmations
	DangerText    lipgloss.Style // fetch failures
	CenterMark    lipgloss.Style // traversal-center marker
}

// DefaultTheme returns the standard Dracula-inspired theme (adaptive).
// Light mode colors are tuned for WCAG AA contrast on white backgrounds.
func DefaultTheme(r *lipgloss.Renderer) Theme {
	t := Theme{
		Renderer: r,

		Primary:   lipgloss.AdaptiveColor{Light: "#6B47D9", Dark: "#BD93F9"}, // Purple
		Secondary: lipgloss.AdaptiveColor{Light: "#555555", Dark: "#6272A4"}, // Gray
		Subtext:   lipgloss.AdaptiveColor{Light: "#666666", Dark: "#BFBFBF"}, // Dim

		Movie:  lipgloss.AdaptiveColor{Light: "#0066CC", Dark: "#6699FF"}, // Blue
		Series: lipgloss.AdaptiveColor{Light: "#007700", Dark: "#50FA7B"}, // Green
		Center: lipgloss.AdaptiveColor{Light: "#B06800", Dark: "#FFB86C"}, // Orange

		SharedGenre: lipgloss.AdaptiveColor{Light: "#006080", Dark: "#8BE9FD"}, // Cyan
		CastOverlap: lipgloss.AdaptiveColor{Light: "#C2185B", Dark: "#FF79C6"}, // Pink
		Thematic:    lipgloss.AdaptiveColor{Light: "#6B47D9", Dark: "#BD93F9"}, // Purple
		Related:     lipgloss.AdaptiveColor{Light: "#555555", Dark: "#6272A4"}, // Gray

		Border:    lipgloss.AdaptiveColor{Light: "#AAAAAA", Dark: "#44475A"},
		Highlight: lipgloss.AdaptiveColor{Light: "#E0E0E0", Dark: "#44475A"},
		Muted:     lipgloss.AdaptiveColor{Light: "#555555", Dark: "#6272A4"},
	}

	t.Base = r.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#000000", Dark: "#F8F8F2"})

	t.Selected = r.NewStyle().
		Background(t.Highlight).
		Border(lipgloss.ThickBorder(), false, false, false, true).
		BorderForeground(t.Primary).
		PaddingLeft(1).
		Bold(true)

	t.Header = r.NewStyle().
		Background(t.Primary).
		Foreground(lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#282A36"}).
		Bold(true).
		Padding(0, 1)

	t.MutedText = r.NewStyle().Foreground(ColorMuted)
	t.InfoText = r.NewStyle().Foreground(ColorInfo)
	t.InfoBold = r.NewStyle().Foreground(ColorInfo).Bold(true)
	t.SecondaryText = r.NewStyle().Foreground(t.Secondary)
	t.PrimaryBold = r.NewStyle().Foreground(t.Primary).Bold(true)
	t.SuccessText = r.NewStyle().Foreground(ColorSuccess)
	t.DangerText = r.NewStyle().Foreground(ColorDanger)
	t.CenterMark = r.NewStyle().Foreground(t.Center).Bold(true)

	return t
}

// MediaColor returns the accent color for a media type.
func (t Theme) MediaColor(mt model.MediaType) lipgloss.AdaptiveColor {
	switch mt {
	case model.MediaMovie:
		return t.Movie
	case model.MediaSeries:
		return t.Series
	default:
		return t.Subtext
	}
}

// KindColor returns the accent color for a relationship kind. Unknown kinds
// get the generic related color so new service-side kinds still render.
func (t Theme) KindColor(k model.EdgeKind) lipgloss.AdaptiveColor {
	switch k {
	case model.EdgeSharedGenre:
		return t.SharedGenre
	case model.EdgeCastOverlap:
		return t.CastOverlap
	case model.EdgeThematic:
		return t.Thematic
	default:
		return t.Related
	}
}

// MediaGlyph returns the single-letter marker for a media type.
func MediaGlyph(mt model.MediaType) string {
	switch mt {
	case model.MediaMovie:
		return "M"
	case model.MediaSeries:
		return "S"
	default:
		return "·"
	}
}

// TestTheme returns a theme suitable for use in tests.
func TestTheme() Theme {
	return DefaultTheme(lipgloss.NewRenderer(os.Stdout))
}
