// Package clock infers musical time from a raw MIDI clock tick stream and
// tracks the rolling wall-clock duration of a sixteenth note.
package clock

import (
	"go.uber.org/zap"

	"github.com/jsee/linelauncher/internal/beat"
)

// TicksPerQuarterNote is the standard MIDI clock resolution (24 PPQ).
const TicksPerQuarterNote = 24

// ticksPerSixteenth is the tick count between successive sixteenth-note
// beat emissions.
const ticksPerSixteenth = TicksPerQuarterNote / 4

// ticksPerMeasure is the tick count spanning one 4/4 measure.
const ticksPerMeasure = TicksPerQuarterNote * 4

// Tracker consumes raw 24-PPQ clock ticks and emits a beat.Number every
// six ticks (sixteenth-note resolution). It never back-pressures: if the
// output channel isn't ready, the beat is dropped.
type Tracker struct {
	ticksReceived uint64
	out           chan beat.Number
	log           *zap.Logger
}

// NewTracker creates a Tracker whose beat stream is delivered on the
// returned channel. capacity bounds how many beats may queue before new
// ones are dropped.
func NewTracker(capacity int, log *zap.Logger) (*Tracker, <-chan beat.Number) {
	if log == nil {
		log = zap.NewNop()
	}
	out := make(chan beat.Number, capacity)
	return &Tracker{out: out, log: log}, out
}

// Tick consumes one raw MIDI clock pulse. Emission order equals tick
// order; ticksReceived is 1-indexed internally so the first tick received
// emits sixteenth 0.
func (t *Tracker) Tick() {
	t.ticksReceived++
	useTicks := t.ticksReceived - 1

	if useTicks%ticksPerSixteenth != 0 {
		return
	}

	sixteenth := int((useTicks % ticksPerMeasure) / ticksPerSixteenth)
	b := beat.New(sixteenth)

	select {
	case t.out <- b:
	default:
		t.log.Warn("dropped beat emission, consumer not ready", zap.Int("sixteenth", sixteenth))
	}
}
