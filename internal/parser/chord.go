package parser

import (
	"fmt"

	"github.com/jsee/linelauncher/internal/line"
)

// ParseQuality parses one of the five chord quality suffixes: "", "m",
// "M7", "7", "m7".
func ParseQuality(s string) (line.Quality, error) {
	switch s {
	case "":
		return line.Major, nil
	case "m":
		return line.Minor, nil
	case "M7":
		return line.MajorSeventh, nil
	case "7":
		return line.Seventh, nil
	case "m7":
		return line.MinorSeventh, nil
	default:
		return 0, fmt.Errorf("parser: invalid chord quality %q", s)
	}
}

// ParseChord parses a pitch class followed immediately by a quality
// suffix, e.g. "C", "Bbm7", "D7".
func ParseChord(s string) (line.Chord, error) {
	n := pitchLetterLen(s)
	if n == 0 {
		return line.Chord{}, fmt.Errorf("parser: invalid chord %q: no pitch letter", s)
	}
	root, err := ParsePitchClass(s[:n])
	if err != nil {
		return line.Chord{}, fmt.Errorf("parser: invalid chord %q: %w", s, err)
	}
	quality, err := ParseQuality(s[n:])
	if err != nil {
		return line.Chord{}, fmt.Errorf("parser: invalid chord %q: %w", s, err)
	}
	return line.NewChord(root, quality), nil
}

// ParseProgression parses a whitespace-separated sequence of chords.
func ParseProgression(s string) (*line.Progression, error) {
	fields := splitFields(s)
	if len(fields) == 0 {
		return nil, fmt.Errorf("parser: empty progression")
	}
	chords := make([]line.Chord, 0, len(fields))
	for _, f := range fields {
		c, err := ParseChord(f)
		if err != nil {
			return nil, err
		}
		chords = append(chords, c)
	}
	return line.NewProgression(chords)
}

func splitFields(s string) []string {
	var fields []string
	start := -1
	for i := 0; i < len(s); i++ {
		if s[i] == ' ' || s[i] == '\t' {
			if start >= 0 {
				fields = append(fields, s[start:i])
				start = -1
			}
			continue
		}
		if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		fields = append(fields, s[start:])
	}
	return fields
}
