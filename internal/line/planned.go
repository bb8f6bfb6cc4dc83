package line

import "github.com/jsee/linelauncher/internal/beat"

// Endpoint is a pitch fixed at an absolute measure-beat coordinate — the
// NoteOn or NoteOff half of a PlannedNote.
type Endpoint struct {
	Pitch uint8
	At    beat.MeasureBeat
}

// PlannedNote is one scheduled note: an on-endpoint strictly preceding its
// off-endpoint, plus fire flags the dispatcher flips exactly once each as
// the corresponding MIDI event is emitted.
type PlannedNote struct {
	On          Endpoint
	Off         Endpoint
	HasOnFired  bool
	HasOffFired bool
}

// PlannedNotes is the ordered, FIFO-built sequence of PlannedNote entries
// the dispatcher exclusively owns. It is append-only in steady state; the
// only shrinking operation is TruncateLastTwo, used immediately before an
// overlapping re-plan.
type PlannedNotes struct {
	entries []PlannedNote
}

// Len returns the number of planned entries.
func (p *PlannedNotes) Len() int {
	return len(p.entries)
}

// At returns the entry at index i by value; callers that need to mutate
// flags use SetOnFired/SetOffFired.
func (p *PlannedNotes) At(i int) PlannedNote {
	return p.entries[i]
}

// SetOnFired marks entry i's NoteOn as fired.
func (p *PlannedNotes) SetOnFired(i int) {
	p.entries[i].HasOnFired = true
}

// SetOffFired marks entry i's NoteOff as fired.
func (p *PlannedNotes) SetOffFired(i int) {
	p.entries[i].HasOffFired = true
}

// Append adds entries to the end of the sequence, preserving FIFO order.
func (p *PlannedNotes) Append(entries ...PlannedNote) {
	p.entries = append(p.entries, entries...)
}

// TruncateLastTwo removes the final two entries, used right before an
// overlapping re-plan rewrites them. If fewer than two entries exist, it
// empties the sequence.
func (p *PlannedNotes) TruncateLastTwo() {
	n := len(p.entries)
	if n < 2 {
		p.entries = p.entries[:0]
		return
	}
	p.entries = p.entries[:n-2]
}

// IndexOfOnBeat returns the index of the first entry whose on-beat equals
// mb, scanning from the end (the entries of interest are always recent).
func (p *PlannedNotes) IndexOfOnBeat(mb beat.MeasureBeat) (int, bool) {
	for i := len(p.entries) - 1; i >= 0; i-- {
		if p.entries[i].On.At.Equal(mb) {
			return i, true
		}
	}
	return 0, false
}

// SecondToLastOnBeat returns the on-beat of the second-to-last entry, used
// to detect when an overlapping re-plan must fire.
func (p *PlannedNotes) SecondToLastOnBeat() (beat.MeasureBeat, bool) {
	if len(p.entries) < 2 {
		return beat.MeasureBeat{}, false
	}
	return p.entries[len(p.entries)-2].On.At, true
}
