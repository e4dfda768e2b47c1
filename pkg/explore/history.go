package explore

import "github.com/vanderheijden86/reelgraph/pkg/model"

// HistoryStack records the trail of former traversal centers, oldest first.
// It never contains the node currently in focus: the controller pushes the
// departing center immediately before refocusing, and jumping backward
// removes the target from the stack as it becomes the new center.
type HistoryStack struct {
	entries []model.NavigationEntry
}

// Push appends a departing center to the trail.
func (h *HistoryStack) Push(e model.NavigationEntry) {
	h.entries = append(h.entries, e)
}

// GoTo truncates the trail to the first index entries and returns the entry
// that held position index as the node to refocus. Position len(entries)
// belongs to the current center and position 0 is the controller's
// start-over special case; both are rejected here.
func (h *HistoryStack) GoTo(index int) (model.NavigationEntry, bool) {
	if index < 1 || index >= len(h.entries) {
		return model.NavigationEntry{}, false
	}
	target := h.entries[index]
	h.entries = h.entries[:index]
	return target, true
}

// Reset empties the trail.
func (h *HistoryStack) Reset() {
	h.entries = nil
}

// Len returns the number of recorded former centers.
func (h *HistoryStack) Len() int {
	return len(h.entries)
}

// Entries returns a copy of the trail, oldest first.
func (h *HistoryStack) Entries() []model.NavigationEntry {
	if len(h.entries) == 0 {
		return nil
	}
	out := make([]model.NavigationEntry, len(h.entries))
	copy(out, h.entries)
	return out
}

// Contains reports whether a node id is somewhere on the trail.
func (h *HistoryStack) Contains(nodeID string) bool {
	for _, e := range h.entries {
		if e.NodeID == nodeID {
			return true
		}
	}
	return false
}
