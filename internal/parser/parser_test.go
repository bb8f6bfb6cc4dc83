package parser

import (
	"testing"

	"github.com/jsee/linelauncher/internal/line"
)

func TestParsePitchClass(t *testing.T) {
	cases := map[string]int{
		"C": 0, "D": 2, "E": 4, "F": 5, "G": 7, "A": 9, "B": 11,
		"Db": 1, "Eb": 3, "Gb": 6, "Ab": 8, "Bb": 10, "Cb": 11,
	}
	for s, want := range cases {
		got, err := ParsePitchClass(s)
		if err != nil {
			t.Fatalf("ParsePitchClass(%q): %v", s, err)
		}
		if got != want {
			t.Fatalf("ParsePitchClass(%q) = %d, want %d", s, got, want)
		}
	}
}

func TestParsePitchClassInvalid(t *testing.T) {
	for _, s := range []string{"", "H", "C#", "Cbb"} {
		if _, err := ParsePitchClass(s); err == nil {
			t.Fatalf("ParsePitchClass(%q) expected error", s)
		}
	}
}

func TestParseQualityRoundTrip(t *testing.T) {
	for _, q := range []line.Quality{line.Major, line.Minor, line.MajorSeventh, line.Seventh, line.MinorSeventh} {
		got, err := ParseQuality(q.String())
		if err != nil {
			t.Fatalf("ParseQuality(%q): %v", q.String(), err)
		}
		if got != q {
			t.Fatalf("ParseQuality(%q) = %v, want %v", q.String(), got, q)
		}
	}
}

func TestParseChord(t *testing.T) {
	c, err := ParseChord("Bbm7")
	if err != nil {
		t.Fatalf("ParseChord: %v", err)
	}
	if c.Root != 10 || c.Quality != line.MinorSeventh {
		t.Fatalf("ParseChord(Bbm7) = %+v, want root 10, MinorSeventh", c)
	}
}

func TestParseProgressionRoundTrip(t *testing.T) {
	want := "A Bm CM7 D7 Em7"
	p, err := ParseProgression(want)
	if err != nil {
		t.Fatalf("ParseProgression: %v", err)
	}
	if got := p.String(); got != want {
		t.Fatalf("ParseProgression round trip = %q, want %q", got, want)
	}
}

func TestParseLineDownbeatStart(t *testing.T) {
	ln, err := ParseLine("C4 F-1 G3 Bb3")
	if err != nil {
		t.Fatalf("ParseLine: %v", err)
	}
	if len(ln.Notes) != 4 {
		t.Fatalf("len(Notes) = %d, want 4", len(ln.Notes))
	}
	wantStarts := []int{0, 1, 2, 3}
	for i, n := range ln.Notes {
		if n.Start.Sixteenth() != wantStarts[i] {
			t.Fatalf("note %d start = %d, want %d", i, n.Start.Sixteenth(), wantStarts[i])
		}
		if n.Duration != 1 {
			t.Fatalf("note %d duration = %d, want 1", i, n.Duration)
		}
	}
	if ln.Notes[0].Pitch != 60 { // C4 = (4+1)*12+0 = 60
		t.Fatalf("note 0 pitch = %d, want 60", ln.Notes[0].Pitch)
	}
}

func TestParseLineSustainDots(t *testing.T) {
	ln, err := ParseLine("C4 F3 . . .")
	if err != nil {
		t.Fatalf("ParseLine: %v", err)
	}
	if len(ln.Notes) != 2 {
		t.Fatalf("len(Notes) = %d, want 2", len(ln.Notes))
	}
	if ln.Notes[1].Duration != 4 {
		t.Fatalf("sustained note duration = %d, want 4", ln.Notes[1].Duration)
	}
}

func TestParseLineLeadingRest(t *testing.T) {
	ln, err := ParseLine("- Db4 Bb3")
	if err != nil {
		t.Fatalf("ParseLine: %v", err)
	}
	if ln.Notes[0].Start.Sixteenth() != 1 {
		t.Fatalf("first note start = %d, want 1 (after leading rest)", ln.Notes[0].Start.Sixteenth())
	}
	if ln.Notes[1].Start.Sixteenth() != 2 {
		t.Fatalf("second note start = %d, want 2", ln.Notes[1].Start.Sixteenth())
	}
}

func TestParseLineDotWithoutPrecedingNoteErrors(t *testing.T) {
	if _, err := ParseLine(". C4"); err == nil {
		t.Fatal("expected error for a leading '.' with no preceding note")
	}
}
