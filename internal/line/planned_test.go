package line

import (
	"testing"

	"github.com/jsee/linelauncher/internal/beat"
)

func mb(measure, sixteenth int) beat.MeasureBeat {
	return beat.NewMeasureBeat(measure, sixteenth)
}

func TestPlannedNotesAppendAndLen(t *testing.T) {
	var p PlannedNotes
	if p.Len() != 0 {
		t.Fatalf("new PlannedNotes should be empty")
	}
	p.Append(PlannedNote{On: Endpoint{Pitch: 60, At: mb(0, 0)}})
	p.Append(PlannedNote{On: Endpoint{Pitch: 62, At: mb(0, 4)}})
	if p.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", p.Len())
	}
}

func TestPlannedNotesFireFlags(t *testing.T) {
	var p PlannedNotes
	p.Append(PlannedNote{On: Endpoint{Pitch: 60, At: mb(0, 0)}})
	p.SetOnFired(0)
	if !p.At(0).HasOnFired {
		t.Fatal("HasOnFired should be true after SetOnFired")
	}
	if p.At(0).HasOffFired {
		t.Fatal("HasOffFired should still be false")
	}
	p.SetOffFired(0)
	if !p.At(0).HasOffFired {
		t.Fatal("HasOffFired should be true after SetOffFired")
	}
}

func TestPlannedNotesTruncateLastTwo(t *testing.T) {
	var p PlannedNotes
	for i := 0; i < 5; i++ {
		p.Append(PlannedNote{On: Endpoint{At: mb(0, i)}})
	}
	p.TruncateLastTwo()
	if p.Len() != 3 {
		t.Fatalf("Len() after truncate = %d, want 3", p.Len())
	}
	if p.At(2).On.At.Beat.Sixteenth() != 2 {
		t.Fatalf("remaining tail wrong: %v", p.At(2).On.At)
	}
}

func TestPlannedNotesTruncateLastTwoFewerThanTwo(t *testing.T) {
	var p PlannedNotes
	p.Append(PlannedNote{On: Endpoint{At: mb(0, 0)}})
	p.TruncateLastTwo()
	if p.Len() != 0 {
		t.Fatalf("Len() = %d, want 0", p.Len())
	}
}

func TestPlannedNotesIndexOfOnBeat(t *testing.T) {
	var p PlannedNotes
	p.Append(PlannedNote{On: Endpoint{At: mb(0, 0)}})
	p.Append(PlannedNote{On: Endpoint{At: mb(0, 8)}})
	p.Append(PlannedNote{On: Endpoint{At: mb(1, 0)}})

	idx, ok := p.IndexOfOnBeat(mb(0, 8))
	if !ok || idx != 1 {
		t.Fatalf("IndexOfOnBeat = %d, %v, want 1, true", idx, ok)
	}
	if _, ok := p.IndexOfOnBeat(mb(2, 0)); ok {
		t.Fatal("IndexOfOnBeat should report false for an absent beat")
	}
}

func TestPlannedNotesSecondToLastOnBeat(t *testing.T) {
	var p PlannedNotes
	if _, ok := p.SecondToLastOnBeat(); ok {
		t.Fatal("SecondToLastOnBeat should be false with < 2 entries")
	}
	p.Append(PlannedNote{On: Endpoint{At: mb(0, 0)}})
	p.Append(PlannedNote{On: Endpoint{At: mb(0, 8)}})
	p.Append(PlannedNote{On: Endpoint{At: mb(1, 0)}})

	got, ok := p.SecondToLastOnBeat()
	if !ok || !got.Equal(mb(0, 8)) {
		t.Fatalf("SecondToLastOnBeat = %v, %v, want m0.8, true", got, ok)
	}
}
