package launcher

import (
	"sync"

	"github.com/jsee/linelauncher/internal/beat"
	"github.com/jsee/linelauncher/internal/clock"
)

// Snapshot is a point-in-time, read-only view of the dispatcher's playback
// state, safe to copy and hand to other goroutines (the status API, the
// monitor TUI).
type Snapshot struct {
	NextMeasureBeat    beat.MeasureBeat
	CurrentChord       string
	ChordIndex         int
	DurationRatio      float64
	AheadOrBehindRatio float64
	RandomizeRatio     float64
	IntervalState      clock.IntervalState
	PlannedCount       int
}

// PlayingState holds the dispatcher's most recently published Snapshot
// behind a RWMutex. The dispatcher is the sole writer; any number of
// readers (HTTP handlers, the TUI's poll loop) may call Get concurrently.
// Unlike a shared-mutex state blob the dispatcher itself would mutate
// in place, this is purely an outward-facing read model, never consulted
// by dispatch logic.
type PlayingState struct {
	mu   sync.RWMutex
	snap Snapshot
}

// NewPlayingState returns an empty PlayingState.
func NewPlayingState() *PlayingState {
	return &PlayingState{}
}

// Get returns the most recent snapshot.
func (p *PlayingState) Get() Snapshot {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.snap
}

// set replaces the snapshot. Called only by the dispatcher.
func (p *PlayingState) set(s Snapshot) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.snap = s
}

// PublishForTest replaces the snapshot from outside the dispatcher. It
// exists so other packages (the status API, the TUI) can exercise their
// read paths against a fixed Snapshot without running a live dispatcher.
func (p *PlayingState) PublishForTest(s Snapshot) {
	p.set(s)
}
