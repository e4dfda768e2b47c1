package model

import (
	"fmt"
	"strings"
)

// NavigationEntry records a node that used to be the traversal center before
// the user drilled further. The history stack is ordered oldest first and
// never contains the current center.
type NavigationEntry struct {
	NodeID    string    `json:"nodeId"`
	MediaType MediaType `json:"mediaType"`
	Title     string    `json:"title"`
}

// EntryFor builds a history entry from a node.
func EntryFor(n GraphNode) NavigationEntry {
	return NavigationEntry{NodeID: n.ID, MediaType: n.MediaType, Title: n.Title}
}

// SearchPhase names one stage of the simulated search progress readout.
type SearchPhase string

const (
	PhaseSearching  SearchPhase = "searching"
	PhaseClustering SearchPhase = "clustering"
	PhaseBuilding   SearchPhase = "building"
)

// LoadingStatus is the transient, simulated progress view for an in-flight
// semantic search. It is recreated on every tick and discarded as soon as a
// real result or error arrives; nothing persists it.
type LoadingStatus struct {
	Phase    SearchPhase `json:"phase"`
	Message  string      `json:"message"`
	Detail   string      `json:"detail,omitempty"`
	Progress int         `json:"progress"` // 0..100, never reaches 100
}

// BrowseCategory is one of the fixed preset graph sources for browse mode.
type BrowseCategory int

const (
	CategoryMyMoviePicks BrowseCategory = iota
	CategoryMySeriesPicks
	CategoryCurrentlyWatching
	CategoryTopMovies
	CategoryTopSeries
)

// Categories returns all browse categories in menu order.
func Categories() []BrowseCategory {
	return []BrowseCategory{
		CategoryMyMoviePicks,
		CategoryMySeriesPicks,
		CategoryCurrentlyWatching,
		CategoryTopMovies,
		CategoryTopSeries,
	}
}

// Valid reports whether c is one of the declared browse categories.
func (c BrowseCategory) Valid() bool {
	switch c {
	case CategoryMyMoviePicks, CategoryMySeriesPicks, CategoryCurrentlyWatching,
		CategoryTopMovies, CategoryTopSeries:
		return true
	}
	return false
}

// Slug returns the stable identifier used in API paths, flags, and config.
func (c BrowseCategory) Slug() string {
	switch c {
	case CategoryMyMoviePicks:
		return "my-movie-picks"
	case CategoryMySeriesPicks:
		return "my-series-picks"
	case CategoryCurrentlyWatching:
		return "currently-watching"
	case CategoryTopMovies:
		return "top-movies"
	case CategoryTopSeries:
		return "top-series"
	default:
		return "unknown"
	}
}

// String returns the slug.
func (c BrowseCategory) String() string { return c.Slug() }

// Label returns the menu title for the category.
func (c BrowseCategory) Label() string {
	switch c {
	case CategoryMyMoviePicks:
		return "My movie picks"
	case CategoryMySeriesPicks:
		return "My series picks"
	case CategoryCurrentlyWatching:
		return "Currently watching"
	case CategoryTopMovies:
		return "Top picks: movies"
	case CategoryTopSeries:
		return "Top picks: series"
	default:
		return "Unknown"
	}
}

// ParseCategory parses a slug (as used in flags and config) into a category.
func ParseCategory(s string) (BrowseCategory, error) {
	slug := strings.ToLower(strings.TrimSpace(s))
	for _, c := range Categories() {
		if c.Slug() == slug {
			return c, nil
		}
	}
	return 0, fmt.Errorf("unknown browse category %q", s)
}
