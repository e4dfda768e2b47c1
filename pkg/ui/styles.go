package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vanderheijden86/reelgraph/pkg/model"
)

// ══════════════════════════════════════════════════════════════════════════════
// DESIGN TOKENS - Consistent spacing, colors, and visual language
// ══════════════════════════════════════════════════════════════════════════════

// Spacing constants for consistent layout (in characters)
const (
	SpaceXS = 1
	SpaceSM = 2
	SpaceMD = 3
	SpaceLG = 4
	SpaceXL = 6
)

// ══════════════════════════════════════════════════════════════════════════════
// COLOR PALETTE - Adaptive colors for light and dark terminals
// Light mode colors tuned for WCAG AA compliance (contrast ratio >= 4.5:1)
// ══════════════════════════════════════════════════════════════════════════════

var (
	// Base colors - Light mode uses darker colors for contrast on white backgrounds
	ColorBg          = lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#282A36"}
	ColorBgDark      = lipgloss.AdaptiveColor{Light: "#F5F5F5", Dark: "#1E1F29"}
	ColorBgSubtle    = lipgloss.AdaptiveColor{Light: "#E8E8E8", Dark: "#363949"}
	ColorBgHighlight = lipgloss.AdaptiveColor{Light: "#D0D0D0", Dark: "#44475A"}
	ColorText        = lipgloss.AdaptiveColor{Light: "#1A1A1A", Dark: "#F8F8F2"}
	ColorSubtext     = lipgloss.AdaptiveColor{Light: "#555555", Dark: "#BFBFBF"}
	ColorMuted       = lipgloss.AdaptiveColor{Light: "#666666", Dark: "#6272A4"}

	// Primary accent colors
	ColorPrimary   = lipgloss.AdaptiveColor{Light: "#6B47D9", Dark: "#BD93F9"}
	ColorSecondary = lipgloss.AdaptiveColor{Light: "#555555", Dark: "#6272A4"}
	ColorInfo      = lipgloss.AdaptiveColor{Light: "#006080", Dark: "#8BE9FD"}
	ColorSuccess   = lipgloss.AdaptiveColor{Light: "#007700", Dark: "#50FA7B"}
	ColorWarning   = lipgloss.AdaptiveColor{Light: "#B06800", Dark: "#FFB86C"}
	ColorDanger    = lipgloss.AdaptiveColor{Light: "#CC0000", Dark: "#FF5555"}

	// Media type colors
	ColorMovie  = lipgloss.AdaptiveColor{Light: "#0066CC", Dark: "#6699FF"}
	ColorSeries = lipgloss.AdaptiveColor{Light: "#007700", Dark: "#50FA7B"}
	ColorCenter = lipgloss.AdaptiveColor{Light: "#B06800", Dark: "#FFB86C"}

	// Media badge backgrounds (saturated, white text)
	ColorMovieBg  = lipgloss.AdaptiveColor{Light: "#2684FF", Dark: "#4C9AFF"}
	ColorSeriesBg = lipgloss.AdaptiveColor{Light: "#36B37E", Dark: "#36B37E"}

	// Relationship kind colors
	ColorKindGenre    = lipgloss.AdaptiveColor{Light: "#006080", Dark: "#8BE9FD"}
	ColorKindCast     = lipgloss.AdaptiveColor{Light: "#C2185B", Dark: "#FF79C6"}
	ColorKindThematic = lipgloss.AdaptiveColor{Light: "#6B47D9", Dark: "#BD93F9"}
	ColorKindRelated  = lipgloss.AdaptiveColor{Light: "#555555", Dark: "#6272A4"}

	// Status message backgrounds for the footer bar
	ColorSuccessBg = lipgloss.AdaptiveColor{Light: "#D4EDDA", Dark: "#1A3D2A"}
	ColorDangerBg  = lipgloss.AdaptiveColor{Light: "#F8D7DA", Dark: "#3D1A1A"}

	// Badge text color (white on colored background)
	ColorBadgeText = lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#FFFFFF"}
)

// ══════════════════════════════════════════════════════════════════════════════
// PANEL STYLES - For split view layouts
// ══════════════════════════════════════════════════════════════════════════════

var (
	// PanelStyle is the default style for unfocused panels
	PanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBgHighlight)

	// FocusedPanelStyle is the style for focused panels
	FocusedPanelStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(ColorPrimary)
)

// ══════════════════════════════════════════════════════════════════════════════
// BADGE RENDERING
// ══════════════════════════════════════════════════════════════════════════════

// RenderMediaBadge returns a colored square badge with a single letter.
// All badges are exactly 1 cell wide for consistent alignment.
func RenderMediaBadge(mt model.MediaType) string {
	var bg lipgloss.AdaptiveColor
	var label string

	switch mt {
	case model.MediaMovie:
		bg, label = ColorMovieBg, "M"
	case model.MediaSeries:
		bg, label = ColorSeriesBg, "S"
	default:
		bg, label = ColorBgSubtle, "·"
	}

	return lipgloss.NewStyle().
		Foreground(ColorBadgeText).
		Background(bg).
		Bold(true).
		Render(label)
}

// KindDot returns a colored "●" for a relationship kind, for legends and
// edge listings.
func KindDot(k model.EdgeKind) string {
	var c lipgloss.AdaptiveColor
	switch k {
	case model.EdgeSharedGenre:
		c = ColorKindGenre
	case model.EdgeCastOverlap:
		c = ColorKindCast
	case model.EdgeThematic:
		c = ColorKindThematic
	default:
		c = ColorKindRelated
	}
	return lipgloss.NewStyle().Foreground(c).Render("●")
}

// ══════════════════════════════════════════════════════════════════════════════
// METRIC VISUALIZATION
// ══════════════════════════════════════════════════════════════════════════════

// RenderMiniBar renders a mini horizontal bar for a value between 0 and 1
func RenderMiniBar(value float64, width int, t Theme) string {
	if width <= 0 {
		return ""
	}
	if value < 0 {
		value = 0
	}
	if value > 1 {
		value = 1
	}

	filled := int(value * float64(width))
	if filled > width {
		filled = width
	}

	// Choose color based on value
	var barColor lipgloss.AdaptiveColor
	if value >= 0.75 {
		barColor = ColorSuccess
	} else if value >= 0.5 {
		barColor = ColorInfo
	} else if value >= 0.25 {
		barColor = ColorWarning
	} else {
		barColor = t.Secondary
	}

	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	return t.Renderer.NewStyle().Foreground(barColor).Render(bar)
}

// ══════════════════════════════════════════════════════════════════════════════
// DIVIDERS AND SEPARATORS
// ══════════════════════════════════════════════════════════════════════════════

// RenderDivider renders a horizontal divider line
func RenderDivider(width int) string {
	if width <= 0 {
		return ""
	}
	return lipgloss.NewStyle().
		Foreground(ColorBgHighlight).
		Render(strings.Repeat("─", width))
}

// RenderSubtleDivider renders a more subtle divider using dots
func RenderSubtleDivider(width int) string {
	if width <= 0 {
		return ""
	}
	return lipgloss.NewStyle().
		Foreground(ColorMuted).
		Render(strings.Repeat("·", width))
}
