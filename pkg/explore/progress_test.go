package explore

import (
	"testing"
	"time"

	"pgregory.net/rapid"

	"github.com/vanderheijden86/reelgraph/pkg/model"
)

func TestProgressValueCurve(t *testing.T) {
	tests := []struct {
		elapsed time.Duration
		want    int
	}{
		{0, 5},
		{500 * time.Millisecond, 11},
		{1 * time.Second, 17},
		{1999 * time.Millisecond, 29},
		{2 * time.Second, 30},
		{4 * time.Second, 55},
		{5999 * time.Millisecond, 79},
		{6 * time.Second, 80},
		{14 * time.Second, 89},
		{30 * time.Second, 94},
	}
	for _, tt := range tests {
		if got := progressValue(tt.elapsed); got != tt.want {
			t.Errorf("progressValue(%v) = %d, want %d", tt.elapsed, got, tt.want)
		}
	}
}

func TestPhaseBoundaries(t *testing.T) {
	tests := []struct {
		elapsed time.Duration
		want    model.SearchPhase
	}{
		{0, model.PhaseSearching},
		{1999 * time.Millisecond, model.PhaseSearching},
		{2 * time.Second, model.PhaseClustering},
		{5999 * time.Millisecond, model.PhaseClustering},
		{6 * time.Second, model.PhaseBuilding},
		{time.Hour, model.PhaseBuilding},
	}
	for _, tt := range tests {
		if got := phaseFor(tt.elapsed); got != tt.want {
			t.Errorf("phaseFor(%v) = %q, want %q", tt.elapsed, got, tt.want)
		}
	}
}

func TestStatusMonotoneWithinRun(t *testing.T) {
	start := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	sim := newProgressSim(start, 1)

	// Wall clock jitters backward between two ticks; progress must not.
	offsets := []time.Duration{
		0,
		400 * time.Millisecond,
		1200 * time.Millisecond,
		900 * time.Millisecond,
		3 * time.Second,
		7 * time.Second,
		6500 * time.Millisecond,
		20 * time.Second,
	}
	last := -1
	for _, off := range offsets {
		st := sim.StatusAt(start.Add(off))
		if st.Progress < last {
			t.Fatalf("progress went backward at +%v: %d after %d", off, st.Progress, last)
		}
		if st.Progress >= 100 {
			t.Fatalf("progress reached %d at +%v, must stay below 100", st.Progress, off)
		}
		last = st.Progress
	}
}

func TestStatusNeverCompletes(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		start := time.Unix(0, 0)
		sim := newProgressSim(start, rapid.Int64().Draw(t, "seed"))
		elapsed := time.Duration(rapid.Int64Range(0, int64(2*time.Hour)).Draw(t, "elapsed"))
		st := sim.StatusAt(start.Add(elapsed))
		if st.Progress < 5 || st.Progress >= 100 {
			t.Fatalf("progress = %d at %v, want within [5,100)", st.Progress, elapsed)
		}
	})
}

func TestStatusFlavorMatchesPhase(t *testing.T) {
	start := time.Unix(0, 0)
	sim := newProgressSim(start, 42)

	tests := []struct {
		elapsed time.Duration
		msgs    []string
		details []string
	}{
		{time.Second, searchingMessages, searchingDetails},
		{3 * time.Second, clusteringMessages, clusteringDetails},
		{10 * time.Second, buildingMessages, buildingDetails},
	}
	for _, tt := range tests {
		st := sim.StatusAt(start.Add(tt.elapsed))
		if !containsString(tt.msgs, st.Message) {
			t.Errorf("message %q at %v not drawn from the %s pool", st.Message, tt.elapsed, st.Phase)
		}
		if !containsString(tt.details, st.Detail) {
			t.Errorf("detail %q at %v not drawn from the %s pool", st.Detail, tt.elapsed, st.Phase)
		}
	}
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
