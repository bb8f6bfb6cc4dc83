package parser

import (
	"fmt"

	"github.com/jsee/linelauncher/internal/beat"
	"github.com/jsee/linelauncher/internal/line"
)

// ParseLine parses a whitespace-separated sequence of tokens into a Line.
// Each token is either "-" (a rest: advances the running start beat by one
// sixteenth without emitting a note) or a pitch+octave token such as "C4",
// "Bb3", or "F-1", optionally followed by one or more "." tokens that each
// extend the immediately preceding note's duration by one sixteenth.
// Starts accumulate in line order, wrapping mod 16 exactly as
// beat.Number.Add does.
func ParseLine(s string) (*line.Line, error) {
	tokens := splitFields(s)
	if len(tokens) == 0 {
		return nil, fmt.Errorf("parser: empty line")
	}

	var notes []line.LineNote
	var pendingIdx = -1
	start := beat.New(0)

	for _, tok := range tokens {
		switch {
		case tok == ".":
			if pendingIdx < 0 {
				return nil, fmt.Errorf("parser: %q must follow a note", tok)
			}
			notes[pendingIdx].Duration++
			start = start.Add(1)
		case tok == "-":
			pendingIdx = -1
			start = start.Add(1)
		default:
			pitchClass, octave, err := parseNoteToken(tok)
			if err != nil {
				return nil, err
			}
			absolute := (octave+1)*12 + pitchClass
			if absolute < 0 || absolute > 127 {
				return nil, fmt.Errorf("parser: note %q is out of MIDI range", tok)
			}
			note, err := line.NewLineNote(start, 1, uint8(absolute))
			if err != nil {
				return nil, err
			}
			notes = append(notes, note)
			pendingIdx = len(notes) - 1
			start = start.Add(1)
		}
	}

	return line.NewLine(notes)
}

// parseNoteToken splits a note token into its pitch class and signed
// single-digit octave, e.g. "Bb3" -> (10, 3), "F-1" -> (5, -1).
func parseNoteToken(tok string) (int, int, error) {
	n := pitchLetterLen(tok)
	if n == 0 {
		return 0, 0, fmt.Errorf("parser: invalid note token %q", tok)
	}
	pitchClass, err := ParsePitchClass(tok[:n])
	if err != nil {
		return 0, 0, fmt.Errorf("parser: invalid note token %q: %w", tok, err)
	}

	rest := tok[n:]
	negative := false
	if len(rest) > 0 && rest[0] == '-' {
		negative = true
		rest = rest[1:]
	}
	if len(rest) != 1 || rest[0] < '0' || rest[0] > '9' {
		return 0, 0, fmt.Errorf("parser: invalid octave in note token %q", tok)
	}
	octave := int(rest[0] - '0')
	if negative {
		octave = -octave
	}
	return pitchClass, octave, nil
}
