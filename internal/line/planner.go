package line

import (
	"math/rand"

	"go.uber.org/zap"

	"github.com/jsee/linelauncher/internal/beat"
)

// MaxHarmonicContinuityAttempts bounds the random search an overlapping
// re-plan performs while looking for a harmonically-continuous successor
// line. Exceeding it falls back to an unconstrained random pick.
const MaxHarmonicContinuityAttempts = 64

// Planner turns Line templates into absolute PlannedNote sequences. It
// holds no playback state of its own; the dispatcher owns PlannedNotes and
// calls back into Planner whenever a (re)plan is needed.
type Planner struct {
	lines []*Line
	log   *zap.Logger
}

// NewPlanner constructs a Planner over a non-empty, ordered list of lines.
func NewPlanner(lines []*Line, log *zap.Logger) *Planner {
	if log == nil {
		log = zap.NewNop()
	}
	return &Planner{lines: lines, log: log}
}

// LineCount returns the number of lines available to plan from.
func (pl *Planner) LineCount() int {
	return len(pl.lines)
}

// PlanInitial lays out every note of ln, transposed by keyOffset semitones,
// as absolute PlannedNote entries starting at or after firstEligible. Notes
// whose transposed pitch falls outside [0, 127] are dropped with a debug
// log rather than aborting the whole plan.
func (pl *Planner) PlanInitial(ln *Line, keyOffset int, firstEligible beat.MeasureBeat) []PlannedNote {
	out := make([]PlannedNote, 0, len(ln.Notes))

	measure := firstEligible.Measure
	if ln.Notes[0].Start.Sixteenth() < firstEligible.Beat.Sixteenth() {
		measure++
	}

	prevSixteenth := -1
	for _, note := range ln.Notes {
		if prevSixteenth >= 0 && note.Start.Sixteenth() < prevSixteenth {
			measure++
		}
		prevSixteenth = note.Start.Sixteenth()

		pitch := int(note.Pitch) + keyOffset
		if pitch < 0 || pitch > 127 {
			pl.log.Debug("dropping out-of-range planned pitch",
				zap.Int("pitch", pitch), zap.Int("key_offset", keyOffset))
			continue
		}

		on := beat.MeasureBeat{Measure: measure, Beat: note.Start}
		off := on.IncrementBy(note.Duration)
		out = append(out, PlannedNote{
			On:  Endpoint{Pitch: uint8(pitch), At: on},
			Off: Endpoint{Pitch: uint8(pitch), At: off},
		})
	}
	return out
}

// harmonicPitches returns the transposed pitch of a line's first two
// notes, for continuity comparison against the tail of a prior plan.
func harmonicPitches(ln *Line, keyOffset int) (int, int, bool) {
	if len(ln.Notes) < 2 {
		return 0, 0, false
	}
	return int(ln.Notes[0].Pitch) + keyOffset, int(ln.Notes[1].Pitch) + keyOffset, true
}

// isHarmonicContinuity reports whether candidate (first two transposed
// pitches newA, newB) continues smoothly from the outgoing pair
// (oldA, oldB): the new first note must land within a half step of the old
// last note (both mod 12), and the semitone interval between the new pair
// must match the interval between the old pair, mod 12, so the line
// continues as if transposed by a matching octave adjustment.
func isHarmonicContinuity(oldA, oldB, newA, newB int) bool {
	diff := mod12(newA-oldB)
	if diff > 6 {
		diff = 12 - diff
	}
	if diff > 1 {
		return false
	}
	return mod12(newB-newA) == mod12(oldB-oldA)
}

func mod12(v int) int {
	v %= 12
	if v < 0 {
		v += 12
	}
	return v
}

// candidate is one (line, key offset) choice considered during a harmonic
// continuity search.
type candidate struct {
	lineIndex int
	keyOffset int
}

// ReplanHarmonicContinuity picks a new (line, key offset) whose opening
// pair of transposed pitches continues smoothly from the outgoing pair
// (oldPenultimate, oldLast — the last two pitches of the plan being
// replaced), retrying random candidates up to MaxHarmonicContinuityAttempts
// times before falling back to an unconstrained random pick.
func (pl *Planner) ReplanHarmonicContinuity(rng *rand.Rand, oldPenultimate, oldLast int, firstEligible beat.MeasureBeat) []PlannedNote {
	for attempt := 0; attempt < MaxHarmonicContinuityAttempts; attempt++ {
		c := pl.randomCandidate(rng)
		ln := pl.lines[c.lineIndex]
		newA, newB, ok := harmonicPitches(ln, c.keyOffset)
		if !ok {
			continue
		}
		if isHarmonicContinuity(oldPenultimate, oldLast, newA, newB) {
			return pl.PlanInitial(ln, c.keyOffset, firstEligible)
		}
	}

	pl.log.Debug("harmonic continuity search exhausted attempts, falling back to random pick",
		zap.Int("attempts", MaxHarmonicContinuityAttempts))
	c := pl.randomCandidate(rng)
	return pl.PlanInitial(pl.lines[c.lineIndex], c.keyOffset, firstEligible)
}

func (pl *Planner) randomCandidate(rng *rand.Rand) candidate {
	return candidate{
		lineIndex: rng.Intn(len(pl.lines)),
		keyOffset: rng.Intn(PitchClassesPerOctave),
	}
}

// RandomInitialPlan picks an unconstrained random (line, key offset) and
// plans it at firstEligible — used for the dispatcher's eager startup plan.
func (pl *Planner) RandomInitialPlan(rng *rand.Rand, firstEligible beat.MeasureBeat) []PlannedNote {
	c := pl.randomCandidate(rng)
	return pl.PlanInitial(pl.lines[c.lineIndex], c.keyOffset, firstEligible)
}
