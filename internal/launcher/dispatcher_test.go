package launcher

import (
	"context"
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/jsee/linelauncher/internal/beat"
	"github.com/jsee/linelauncher/internal/line"
	"github.com/jsee/linelauncher/internal/scheduler"
)

type fakeSink struct {
	mu    sync.Mutex
	onLog []uint8
	offLog []uint8
}

func (f *fakeSink) NoteOn(_, pitch, _ uint8) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.onLog = append(f.onLog, pitch)
	return nil
}

func (f *fakeSink) NoteOff(_, pitch, _ uint8) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.offLog = append(f.offLog, pitch)
	return nil
}

func (f *fakeSink) snapshot() ([]uint8, []uint8) {
	f.mu.Lock()
	defer f.mu.Unlock()
	on := append([]uint8(nil), f.onLog...)
	off := append([]uint8(nil), f.offLog...)
	return on, off
}

func oneNoteLine(t *testing.T) *line.Line {
	t.Helper()
	n, err := line.NewLineNote(beat.New(0), 1, 60)
	if err != nil {
		t.Fatalf("NewLineNote: %v", err)
	}
	ln, err := line.NewLine([]line.LineNote{n})
	if err != nil {
		t.Fatalf("NewLine: %v", err)
	}
	return ln
}

func newTestDispatcher(t *testing.T) (*Dispatcher, *fakeSink) {
	t.Helper()
	ln := oneNoteLine(t)
	planner := line.NewPlanner([]*line.Line{ln}, nil)
	progression := line.DefaultProgression()
	sink := &fakeSink{}
	sender := NewMidiMessageSender(sink, nil)
	noteOnSched := scheduler.New(8, nil)
	noteOffSched := scheduler.New(8, nil)
	rng := rand.New(rand.NewSource(1))

	d := New(planner, progression, sender, noteOnSched, noteOffSched, rng, nil)
	return d, sink
}

func TestDispatcherEagerInitialPlan(t *testing.T) {
	d, _ := newTestDispatcher(t)
	if d.planned.Len() != 1 {
		t.Fatalf("planned.Len() = %d, want 1 after eager startup plan", d.planned.Len())
	}
}

func TestDispatcherFullRunFiresNoteOnThenOff(t *testing.T) {
	d, sink := newTestDispatcher(t)
	// The eager plan transposes the line's pitch 60 by a random key offset.
	wantPitch := d.planned.At(0).On.Pitch

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	beats := make(chan beat.Number, 8)
	in := Inputs{
		Beats:            beats,
		DurationUpdates:  make(chan float64),
		AheadOrBehind:    make(chan float64),
		RandomizeUpdates: make(chan float64),
		NoteOnFires:      d.noteOnSched.Fire(),
		NoteOffFires:     d.noteOffSched.Fire(),
	}
	go d.noteOnSched.Run(ctx)
	go d.noteOffSched.Run(ctx)
	go d.Run(ctx, in)

	// Prime the interval estimator with two beats, then walk through one
	// measure so the planned note's on-beat (measure 1, beat 0) arrives.
	base := time.Now()
	beats <- beat.New(0)
	time.Sleep(5 * time.Millisecond)
	beats <- beat.New(1)
	time.Sleep(5 * time.Millisecond)
	// Beat 15 (the pickup) schedules the note-on one sixteenth ahead.
	for s := 2; s < 16; s++ {
		beats <- beat.New(s)
		time.Sleep(2 * time.Millisecond)
	}
	beats <- beat.New(0) // downbeat of measure 1

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		on, off := sink.snapshot()
		if len(on) >= 1 && len(off) >= 1 {
			if on[0] != wantPitch || off[0] != wantPitch {
				t.Fatalf("fired pitches = on:%v off:%v, want pitch %d both", on, off, wantPitch)
			}
			_ = base
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	on, off := sink.snapshot()
	t.Fatalf("timed out waiting for note-on/off; got on:%v off:%v", on, off)
}

func TestClampRatio(t *testing.T) {
	cases := []struct {
		in, want float64
	}{
		{-1, 0}, {0, 0}, {0.5, 0.5}, {1, 1}, {2, 1},
	}
	for _, c := range cases {
		if got := clampRatio(c.in); got != c.want {
			t.Fatalf("clampRatio(%v) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestFirstDownbeatStartsProgression(t *testing.T) {
	d, _ := newTestDispatcher(t)
	d.handleBeat(beat.New(0), time.Now())
	if d.progression.ChordIndex() != 0 {
		t.Fatalf("ChordIndex = %d, want 0 after first downbeat", d.progression.ChordIndex())
	}
	if !d.progression.HasStarted() {
		t.Fatal("progression should have started after the first downbeat")
	}
}
