package explore

import (
	"math"
	"math/rand"
	"time"

	"github.com/vanderheijden86/reelgraph/pkg/model"
)

// ProgressTickInterval is how often the simulated search readout refreshes.
const ProgressTickInterval = 300 * time.Millisecond

// Phase boundaries for the simulated curve. The backend reports nothing
// while a semantic search runs, so the readout is a fixed function of
// elapsed time: a linear ramp while "searching", a steeper ramp while
// "clustering", then an asymptotic crawl toward 95 that only the real
// completion ends.
const (
	searchPhaseEnd  = 2 * time.Second
	clusterPhaseEnd = 6 * time.Second

	searchFloor = 5
	searchCeil  = 30
	clusterCeil = 80
	buildCeil   = 95

	// buildTau controls how quickly phase three approaches its ceiling.
	buildTau = 8 * time.Second
)

var searchingMessages = []string{
	"Scanning the catalog",
	"Matching tone and mood",
	"Reading plot signatures",
}

var searchingDetails = []string{
	"comparing story embeddings",
	"weighing genre signals",
	"ranking candidate titles",
}

var clusteringMessages = []string{
	"Grouping similar titles",
	"Finding common threads",
	"Linking cast and crew",
}

var clusteringDetails = []string{
	"merging overlapping clusters",
	"scoring edge strength",
	"pruning weak connections",
}

var buildingMessages = []string{
	"Laying out the graph",
	"Drawing connections",
	"Polishing the picture",
}

var buildingDetails = []string{
	"placing nodes",
	"bundling edges",
	"almost there",
}

// progressSim produces the synthetic LoadingStatus for one search run. The
// Navigator owns it and mints a run token per search so that a late tick
// from a stopped run touches nothing.
type progressSim struct {
	start time.Time
	last  int
	rng   *rand.Rand
}

func newProgressSim(start time.Time, seed int64) *progressSim {
	return &progressSim{start: start, rng: rand.New(rand.NewSource(seed))}
}

// StatusAt returns the readout for the given instant. Progress is clamped so
// it never moves backward within a run and never reports 100; completion is
// the fetch resolving, not the simulator.
func (p *progressSim) StatusAt(now time.Time) model.LoadingStatus {
	elapsed := now.Sub(p.start)
	if elapsed < 0 {
		elapsed = 0
	}
	prog := progressValue(elapsed)
	if prog < p.last {
		prog = p.last
	}
	p.last = prog

	phase := phaseFor(elapsed)
	msg, detail := p.flavor(phase)
	return model.LoadingStatus{
		Phase:    phase,
		Message:  msg,
		Detail:   detail,
		Progress: prog,
	}
}

// flavor picks a message and detail line for the phase. Picks are
// pseudo-random per tick and deliberately unstable between ticks.
func (p *progressSim) flavor(phase model.SearchPhase) (string, string) {
	var msgs, details []string
	switch phase {
	case model.PhaseSearching:
		msgs, details = searchingMessages, searchingDetails
	case model.PhaseClustering:
		msgs, details = clusteringMessages, clusteringDetails
	default:
		msgs, details = buildingMessages, buildingDetails
	}
	return msgs[p.rng.Intn(len(msgs))], details[p.rng.Intn(len(details))]
}

func phaseFor(elapsed time.Duration) model.SearchPhase {
	switch {
	case elapsed < searchPhaseEnd:
		return model.PhaseSearching
	case elapsed < clusterPhaseEnd:
		return model.PhaseClustering
	default:
		return model.PhaseBuilding
	}
}

// progressValue maps elapsed time onto the 5..95 curve.
func progressValue(elapsed time.Duration) int {
	switch {
	case elapsed <= 0:
		return searchFloor
	case elapsed < searchPhaseEnd:
		frac := float64(elapsed) / float64(searchPhaseEnd)
		return searchFloor + int(frac*float64(searchCeil-searchFloor))
	case elapsed < clusterPhaseEnd:
		frac := float64(elapsed-searchPhaseEnd) / float64(clusterPhaseEnd-searchPhaseEnd)
		return searchCeil + int(frac*float64(clusterCeil-searchCeil))
	default:
		decay := math.Exp(-float64(elapsed-clusterPhaseEnd) / float64(buildTau))
		return int(float64(buildCeil) - float64(buildCeil-clusterCeil)*decay)
	}
}
