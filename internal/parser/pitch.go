// Package parser provides recursive-descent parsers for the launcher's
// small text grammars: pitch classes, chord qualities, chords,
// progressions, and line templates.
package parser

import "fmt"

// letterSemitones maps a natural-letter pitch to its semitone offset from C.
var letterSemitones = map[byte]int{
	'C': 0, 'D': 2, 'E': 4, 'F': 5, 'G': 7, 'A': 9, 'B': 11,
}

// ParsePitchClass parses a letter (A-G) optionally followed by a flat
// modifier ('b'), returning a semitone pitch class in [0, 12). The
// original grammar has no sharp modifier: "C#" is spelled "Db".
func ParsePitchClass(s string) (int, error) {
	if len(s) == 0 {
		return 0, fmt.Errorf("parser: empty pitch")
	}
	semitone, ok := letterSemitones[s[0]]
	if !ok {
		return 0, fmt.Errorf("parser: invalid pitch letter %q", s[0])
	}
	rest := s[1:]
	if rest == "b" {
		semitone--
	} else if rest != "" {
		return 0, fmt.Errorf("parser: invalid pitch modifier %q in %q", rest, s)
	}
	return mod12(semitone), nil
}

// pitchLetterLen returns the length of the leading pitch-class token
// (letter plus optional flat) within s, or 0 if s does not start with a
// valid pitch letter.
func pitchLetterLen(s string) int {
	if len(s) == 0 {
		return 0
	}
	if _, ok := letterSemitones[s[0]]; !ok {
		return 0
	}
	if len(s) > 1 && s[1] == 'b' {
		return 2
	}
	return 1
}

func mod12(v int) int {
	v %= 12
	if v < 0 {
		v += 12
	}
	return v
}
