package explore

import (
	"testing"

	"github.com/vanderheijden86/reelgraph/pkg/model"
)

func trailOf(ids ...string) HistoryStack {
	var h HistoryStack
	for _, id := range ids {
		h.Push(model.NavigationEntry{NodeID: id, MediaType: model.MediaMovie, Title: "Title " + id})
	}
	return h
}

func TestHistoryGoToTruncates(t *testing.T) {
	tests := []struct {
		name      string
		ids       []string
		index     int
		wantOK    bool
		wantFocus string
		wantLen   int
	}{
		{"middle of trail", []string{"a", "b", "c", "d"}, 2, true, "c", 2},
		{"first real entry", []string{"a", "b", "c"}, 1, true, "b", 1},
		{"last entry", []string{"a", "b", "c"}, 2, true, "c", 2},
		{"index zero rejected", []string{"a", "b"}, 0, false, "", 2},
		{"index past end rejected", []string{"a", "b"}, 2, false, "", 2},
		{"negative rejected", []string{"a"}, -1, false, "", 1},
		{"empty stack", nil, 1, false, "", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := trailOf(tt.ids...)
			got, ok := h.GoTo(tt.index)
			if ok != tt.wantOK {
				t.Fatalf("GoTo(%d) ok = %v, want %v", tt.index, ok, tt.wantOK)
			}
			if ok && got.NodeID != tt.wantFocus {
				t.Errorf("GoTo(%d) focus = %q, want %q", tt.index, got.NodeID, tt.wantFocus)
			}
			if h.Len() != tt.wantLen {
				t.Errorf("after GoTo(%d) len = %d, want %d", tt.index, h.Len(), tt.wantLen)
			}
		})
	}
}

func TestHistoryReset(t *testing.T) {
	h := trailOf("a", "b", "c")
	h.Reset()
	if h.Len() != 0 {
		t.Errorf("len after reset = %d, want 0", h.Len())
	}
	if got := h.Entries(); got != nil {
		t.Errorf("entries after reset = %v, want nil", got)
	}
}

func TestHistoryEntriesIsACopy(t *testing.T) {
	h := trailOf("a", "b")
	got := h.Entries()
	got[0].NodeID = "mutated"
	if h.Entries()[0].NodeID != "a" {
		t.Error("mutating the returned slice changed the stack")
	}
}

func TestHistoryContains(t *testing.T) {
	h := trailOf("a", "b")
	if !h.Contains("a") {
		t.Error("Contains(a) = false, want true")
	}
	if h.Contains("z") {
		t.Error("Contains(z) = true, want false")
	}
}
