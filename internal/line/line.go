package line

import (
	"fmt"

	"github.com/jsee/linelauncher/internal/beat"
)

// LineNote is one immutable note within a Line template: a start beat
// (mod 16), a duration in sixteenths, and a MIDI pitch before any key
// offset is applied.
type LineNote struct {
	Start    beat.Number
	Duration int
	Pitch    uint8
}

// NewLineNote constructs a LineNote, rejecting a non-positive duration.
func NewLineNote(start beat.Number, duration int, pitch uint8) (LineNote, error) {
	if duration < 1 {
		return LineNote{}, fmt.Errorf("line: note duration must be >= 1 sixteenth, got %d", duration)
	}
	return LineNote{Start: start, Duration: duration, Pitch: pitch}, nil
}

// Line is an immutable, non-empty, ordered melodic fragment.
type Line struct {
	Notes []LineNote
}

// NewLine builds a Line, rejecting an empty note list.
func NewLine(notes []LineNote) (*Line, error) {
	if len(notes) == 0 {
		return nil, fmt.Errorf("line: a line must have at least one note")
	}
	cp := make([]LineNote, len(notes))
	copy(cp, notes)
	return &Line{Notes: cp}, nil
}
