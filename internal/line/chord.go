package line

import "fmt"

// Quality names a chord's harmonic quality.
type Quality int

const (
	Major Quality = iota
	Minor
	MajorSeventh
	Seventh
	MinorSeventh
)

func (q Quality) String() string {
	switch q {
	case Major:
		return ""
	case Minor:
		return "m"
	case MajorSeventh:
		return "M7"
	case Seventh:
		return "7"
	case MinorSeventh:
		return "m7"
	default:
		return "?"
	}
}

// PitchClassesPerOctave is the number of distinct pitch classes (semitone
// steps within an octave).
const PitchClassesPerOctave = 12

// Chord is a root pitch class in [0, 12) plus a quality. Planned lines are
// transposed by a randomly chosen key offset; the chord root is not added
// to their pitches.
type Chord struct {
	Root    int
	Quality Quality
}

// NewChord constructs a Chord, wrapping root into [0, 12).
func NewChord(root int, quality Quality) Chord {
	root %= PitchClassesPerOctave
	if root < 0 {
		root += PitchClassesPerOctave
	}
	return Chord{Root: root, Quality: quality}
}

var noteNames = [PitchClassesPerOctave]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

func (c Chord) String() string {
	return fmt.Sprintf("%s%s", noteNames[c.Root], c.Quality)
}

// Progression is a non-empty, cyclic, ordered sequence of chords, one per
// measure.
type Progression struct {
	Chords []Chord
}

// NewProgression builds a Progression, rejecting an empty chord list.
func NewProgression(chords []Chord) (*Progression, error) {
	if len(chords) == 0 {
		return nil, fmt.Errorf("line: progression must have at least one chord")
	}
	cp := make([]Chord, len(chords))
	copy(cp, chords)
	return &Progression{Chords: cp}, nil
}

// DefaultProgression returns the single-chord "C major" progression used
// when no progression is configured.
func DefaultProgression() *Progression {
	p, err := NewProgression([]Chord{NewChord(0, Major)})
	if err != nil {
		panic(err) // unreachable: the literal above is never empty
	}
	return p
}

func (p *Progression) String() string {
	s := ""
	for i, c := range p.Chords {
		if i > 0 {
			s += " "
		}
		s += c.String()
	}
	return s
}
