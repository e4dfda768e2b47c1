package explore

import "github.com/vanderheijden86/reelgraph/pkg/model"

// DisplaySource names which fetcher won the precedence pass.
type DisplaySource int

const (
	DisplayEmpty DisplaySource = iota
	DisplaySearch
	DisplayFocus
	DisplayBrowse
)

func (s DisplaySource) String() string {
	switch s {
	case DisplaySearch:
		return "search"
	case DisplayFocus:
		return "focus"
	case DisplayBrowse:
		return "browse"
	default:
		return "empty"
	}
}

// Display is the single coherent tuple the render layer consumes. Err rides
// along for diagnostics; the render layer shows a failed fetch exactly like
// an empty one.
type Display struct {
	Source  DisplaySource
	Graph   *model.GraphData
	Loading bool
	Status  *model.LoadingStatus
	Err     error
}

// Resolve arbitrates what to render. Precedence: a search that is loading or
// holds results, then the focused node, then the browse selection, then the
// empty state. The mode union already guarantees at most one owner, so the
// ordering mostly matters for the in-between states a single mode can be in,
// like a search that failed. Pure function, no side effects.
func Resolve(mode Mode, search, focus, browse FetchState, status *model.LoadingStatus) Display {
	switch mode.(type) {
	case Searching:
		switch search.Phase {
		case FetchLoading:
			return Display{Source: DisplaySearch, Loading: true, Status: status}
		case FetchSuccess:
			if search.Graph != nil {
				return Display{Source: DisplaySearch, Graph: search.Graph}
			}
		case FetchError:
			// A failed search renders as the empty state, error retained.
			return Display{Source: DisplayEmpty, Err: search.Err}
		}
		return Display{Source: DisplayEmpty}
	case Focused:
		switch focus.Phase {
		case FetchLoading:
			return Display{Source: DisplayFocus, Loading: true}
		case FetchSuccess:
			return Display{Source: DisplayFocus, Graph: focus.Graph}
		case FetchError:
			return Display{Source: DisplayFocus, Err: focus.Err}
		}
		return Display{Source: DisplayFocus}
	case Browsing:
		switch browse.Phase {
		case FetchLoading:
			return Display{Source: DisplayBrowse, Loading: true}
		case FetchSuccess:
			return Display{Source: DisplayBrowse, Graph: browse.Graph}
		case FetchError:
			return Display{Source: DisplayBrowse, Err: browse.Err}
		}
		return Display{Source: DisplayBrowse}
	default:
		return Display{Source: DisplayEmpty}
	}
}
