package line

// progressionChordIndexState names whether the progression cursor has
// started advancing yet.
type progressionChordIndexState int

const (
	notStarted progressionChordIndexState = iota
	atChordIndex
)

// ProgressionState advances a chord-index cursor across measure
// boundaries. It is owned exclusively by the dispatcher; TickMeasure must
// be called exactly once per measure boundary.
type ProgressionState struct {
	progression *Progression
	state       progressionChordIndexState
	chordIndex  int
}

// NewProgressionState returns a cursor over progression, starting in the
// NotStarted state.
func NewProgressionState(progression *Progression) *ProgressionState {
	return &ProgressionState{progression: progression, state: notStarted}
}

// ChordIndex returns the current chord index; 0 while NotStarted.
func (p *ProgressionState) ChordIndex() int {
	if p.state == notStarted {
		return 0
	}
	return p.chordIndex
}

// CurrentChord returns the chord at the current index.
func (p *ProgressionState) CurrentChord() Chord {
	return p.progression.Chords[p.ChordIndex()]
}

// HasStarted reports whether TickMeasure has ever been called.
func (p *ProgressionState) HasStarted() bool {
	return p.state == atChordIndex
}

// TickMeasure advances the cursor: NotStarted -> index 0, or
// index i -> (i+1) mod len(chords).
func (p *ProgressionState) TickMeasure() {
	switch p.state {
	case notStarted:
		p.state = atChordIndex
		p.chordIndex = 0
	case atChordIndex:
		p.chordIndex = (p.chordIndex + 1) % len(p.progression.Chords)
	}
}
