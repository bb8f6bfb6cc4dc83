// Package launcher implements the dispatcher: the single-threaded owner of
// all playback state, and the sole submitter of scheduler items.
package launcher

import (
	"context"
	"math/rand"
	"time"

	"go.uber.org/zap"

	"github.com/jsee/linelauncher/internal/beat"
	"github.com/jsee/linelauncher/internal/clock"
	"github.com/jsee/linelauncher/internal/line"
	"github.com/jsee/linelauncher/internal/scheduler"
)

// Default slider values, used whenever no binding is configured.
const (
	DefaultDurationRatio      = 1.0
	DefaultAheadOrBehindRatio = 0.5
	DefaultRandomizeRatio     = 0.0
)

// Inputs bundles the dispatcher's merged event queue: one channel per
// asynchronous source. The dispatcher is the only goroutine that reads
// from these.
type Inputs struct {
	Beats            <-chan beat.Number
	DurationUpdates  <-chan float64
	AheadOrBehind    <-chan float64
	RandomizeUpdates <-chan float64
	NoteOnFires      <-chan scheduler.FireEvent
	NoteOffFires     <-chan scheduler.FireEvent
}

// Dispatcher is the core line launcher: single owner of PlannedNotes and
// ProgressionState, sole submitter of scheduler items. It is not safe for
// concurrent use beyond the read-only Snapshot it publishes via State.
type Dispatcher struct {
	planner     *line.Planner
	progression *line.ProgressionState
	planned     line.PlannedNotes
	interval    *clock.SixteenthInterval

	nextMeasureBeat  beat.MeasureBeat
	lastTickedForTgt int

	sender       *MidiMessageSender
	noteOnSched  *scheduler.Scheduler
	noteOffSched *scheduler.Scheduler

	durationRatio      float64
	aheadOrBehindRatio float64
	randomizeRatio     float64

	rng   *rand.Rand
	state *PlayingState
	log   *zap.Logger
}

// New constructs a Dispatcher and performs its eager startup plan: one
// initial line, randomly chosen, at the measure-beat immediately following
// (measure 0, beat 0).
func New(
	planner *line.Planner,
	progression *line.Progression,
	sender *MidiMessageSender,
	noteOnSched, noteOffSched *scheduler.Scheduler,
	rng *rand.Rand,
	log *zap.Logger,
) *Dispatcher {
	if log == nil {
		log = zap.NewNop()
	}
	d := &Dispatcher{
		planner:            planner,
		progression:        line.NewProgressionState(progression),
		interval:           clock.NewSixteenthInterval(),
		nextMeasureBeat:    beat.NewMeasureBeat(0, 0),
		lastTickedForTgt:   -1,
		sender:             sender,
		noteOnSched:        noteOnSched,
		noteOffSched:       noteOffSched,
		durationRatio:      DefaultDurationRatio,
		aheadOrBehindRatio: DefaultAheadOrBehindRatio,
		randomizeRatio:     DefaultRandomizeRatio,
		rng:                rng,
		state:              NewPlayingState(),
		log:                log,
	}
	initial := planner.RandomInitialPlan(rng, d.nextMeasureBeat.Increment())
	d.planned.Append(initial...)
	d.publishSnapshot()
	return d
}

// State returns the dispatcher's read-only state view.
func (d *Dispatcher) State() *PlayingState {
	return d.state
}

// Run processes in.* until ctx is cancelled. It is the only goroutine that
// may call the Dispatcher's handle* methods.
func (d *Dispatcher) Run(ctx context.Context, in Inputs) {
	for {
		select {
		case <-ctx.Done():
			return
		case b, ok := <-in.Beats:
			if !ok {
				return
			}
			d.handleBeat(b, time.Now())
		case r, ok := <-in.DurationUpdates:
			if !ok {
				return
			}
			d.durationRatio = clampRatio(r)
		case r, ok := <-in.AheadOrBehind:
			if !ok {
				return
			}
			d.aheadOrBehindRatio = clampRatio(r)
		case r, ok := <-in.RandomizeUpdates:
			if !ok {
				return
			}
			d.randomizeRatio = clampRatio(r)
		case ev, ok := <-in.NoteOnFires:
			if !ok {
				return
			}
			d.handleNoteOnFire(ev.PlannedIndex, time.Now())
		case ev, ok := <-in.NoteOffFires:
			if !ok {
				return
			}
			d.handleNoteOffFire(ev.PlannedIndex)
		}
		d.publishSnapshot()
	}
}

func clampRatio(r float64) float64 {
	switch {
	case r < 0:
		return 0
	case r > 1:
		return 1
	default:
		return r
	}
}

// handleBeat is the dispatcher's per-beat state machine.
func (d *Dispatcher) handleBeat(b beat.Number, now time.Time) {
	d.interval.Observe(now)

	// Advance ProgressionState exactly once per measure boundary. The
	// target identifies which upcoming downbeat's chord this tick
	// prepares, so a beat that satisfies both branches in the same
	// measure (possible only in the very first measure) cannot double
	// tick: the gate gets armed the first time, not the first branch.
	if !d.progression.HasStarted() && b.IsBeginningOfMeasure() {
		d.tick(d.nextMeasureBeat.Measure)
	}
	if b.IsNextBeginningOfMeasure() {
		d.tick(d.nextMeasureBeat.Measure + 1)
	}

	d.possiblyScheduleNoteOn(now)

	if secondToLast, ok := d.planned.SecondToLastOnBeat(); ok && secondToLast.Equal(d.nextMeasureBeat.Increment()) {
		d.replan()
	}

	d.nextMeasureBeat = d.nextMeasureBeat.Increment()
}

func (d *Dispatcher) tick(target int) {
	if d.lastTickedForTgt == target {
		return
	}
	d.progression.TickMeasure()
	d.lastTickedForTgt = target
}

// possiblyScheduleNoteOn submits a ScheduledItem for the planned note whose
// on-beat equals the next beat boundary, if one exists.
func (d *Dispatcher) possiblyScheduleNoteOn(now time.Time) {
	target := d.nextMeasureBeat.Increment()
	idx, ok := d.planned.IndexOfOnBeat(target)
	if !ok {
		return
	}

	T, full := d.interval.Duration()
	if !full {
		panic("launcher: note-on scheduling requires a Full sixteenth interval")
	}

	randomJitter := 0.0
	if d.randomizeRatio > 0 {
		randomJitter = (d.rng.Float64() - 0.5) * d.randomizeRatio
	}
	offsetSixteenths := (0.5-d.aheadOrBehindRatio)*2 + randomJitter
	multiplier := 1 + offsetSixteenths
	if multiplier < 0 {
		multiplier = 0
	}
	deadline := now.Add(time.Duration(float64(T) * multiplier))

	d.noteOnSched.Submit(scheduler.ScheduledItem{Deadline: deadline, PlannedIndex: idx})
}

// replan performs the overlapping re-plan: the last two planned entries
// are dropped and replaced by a harmonic-continuity search starting at the
// same measure-beat the removed second-to-last entry occupied.
func (d *Dispatcher) replan() {
	n := d.planned.Len()
	if n < 2 {
		return
	}
	penultimate := d.planned.At(n - 2)
	last := d.planned.At(n - 1)
	firstEligible := penultimate.On.At

	d.planned.TruncateLastTwo()

	fresh := d.planner.ReplanHarmonicContinuity(d.rng, int(penultimate.On.Pitch), int(last.On.Pitch), firstEligible)
	d.planned.Append(fresh...)
	d.log.Debug("overlapping re-plan", zap.Int("appended", len(fresh)), zap.Int("total_planned", d.planned.Len()))
}

// handleNoteOnFire is invoked for a fire-note-on event at planned index i.
func (d *Dispatcher) handleNoteOnFire(i int, now time.Time) {
	if i >= 1 {
		prev := d.planned.At(i - 1)
		if !prev.HasOffFired {
			d.sender.FireNoteOff(prev.Off.Pitch)
			d.planned.SetOffFired(i - 1)
		}
	}

	cur := d.planned.At(i)
	d.sender.FireNoteOn(cur.On.Pitch)
	d.planned.SetOnFired(i)

	if T, full := d.interval.Duration(); full {
		deadline := now.Add(time.Duration(float64(T) * d.durationRatio))
		d.noteOffSched.Submit(scheduler.ScheduledItem{Deadline: deadline, PlannedIndex: i})
	}
}

// handleNoteOffFire is invoked for a fire-note-off event at planned index i.
func (d *Dispatcher) handleNoteOffFire(i int) {
	if d.planned.At(i).HasOffFired {
		return
	}
	d.sender.FireNoteOff(d.planned.At(i).Off.Pitch)
	d.planned.SetOffFired(i)
}

func (d *Dispatcher) publishSnapshot() {
	d.state.set(Snapshot{
		NextMeasureBeat:    d.nextMeasureBeat,
		CurrentChord:       d.progression.CurrentChord().String(),
		ChordIndex:         d.progression.ChordIndex(),
		DurationRatio:      d.durationRatio,
		AheadOrBehindRatio: d.aheadOrBehindRatio,
		RandomizeRatio:     d.randomizeRatio,
		IntervalState:      d.interval.State(),
		PlannedCount:       d.planned.Len(),
	})
}
