package line

// builtinLineText and builtinOutsideOfKeyLineText are the two built-in
// corpora of line templates, carried over verbatim from the reference
// implementation's Line::all and Line::outside_of_the_key_lines. The
// "outside of the key" corpus is prefixed with twelve beats of rest so
// each line enters mid-progression rather than on the downbeat.
var builtinLineText = []string{
	"C4 F3 G3 Bb3 C4 Db4 Eb4 F4 E4 . . .",
	"- Db4 Bb3 Db4 C4 . Bb3 G3 F3 Bb3 F3 Gb3 G3 Gb3 F3 G3 E3 . . .",
	"C4 F3 G3 Bb3 C4 Db4 Bb3 Db4 C4 . .",
	"G4 Gb4 G4 A4 Bb4 C5 A4 Ab4 G4 C4 C5 .",
	"G4 Gb4 G4 A4 Bb4 C5 A4 Ab4 G4",
	"G4 Gb4 Ab4 Gb4 G4 Gb4 F4 E4 Eb4 .",
	"F4 . E4 . Eb4 E4 F4 Eb4 E4 C4 Bb3 G3 Bb3 C4 E4 F4 G4 .",
	"F4 . E4 . Eb4 E4 F4 Eb4 E4 Eb4 C4 .",
	"E4 Eb4 F4 Eb4 E4 Eb4 D4 Db4 C4 .",
	"E4 Eb4 F4 Eb4 E4 Eb4 D4 Db4 C4 C5 .",
	"C4 C5 Bb4 Db5 C5 Bb4 G4 F4 G4 .",
	"C4 C5 Bb4 Db5 C5 Bb4 G4 Gb4 Ab4 Gb4 G4 Gb4 F4 G4 E4 C4",
	"E4 C4 E4 F4 Gb4 Ab4 G4 F4 E4 .",
	"C4 B3 Db4 B3 C4 B3 Bb3 A3 Ab3 G3 Gb3 Ab3 G3 Gb3 F3 E3 Eb3 .",
	"C4 B3 Db4 B3 C4 B3 Bb3 A3 Ab3 G3 Gb3 Ab3 G3 Gb3 F3 G3 E3 .",
	"E4 Eb4 C4 G3 Bb3 Db4 B3 Db4 C4 .",
}

var builtinOutsideOfKeyLineText = []string{
	"- - - A4 G4 E4 C4 E4 D4",
	"- - - F4 E4 C4 Bb3 C4 E4 G4 Bb4 D5 C5",
	"- - - F4 E4 C4 Bb3 C4 E4 G4 Bb4 D5 C5 Bb4 G4 Ab4 A4",
	"- - - Eb4 E4 G4 Bb4 G4 D5 C5 Bb4 A4 G4",
	"- - - D5 C5 G4 E4 Bb4 G4 F4 D4 Eb4 E4",
	"- - - D5 C5 G4 E4 Bb4 G4 F4 D4 F4 E4",
	"- - - Bb3 C4 Eb4 G4 Bb4 D5 Eb5 C5 Bb4 A4",
	"- - - Bb3 C4 Eb4 Gb4 G4 A4 Bb4 Gb4 A4 G4",
	"- - - Bb3 C4 Eb4 Gb4 G4 A4 Bb4 Gb4 A4 G4 Gb4 F4 E4 Eb4",
	"- - - D4 C4 A4 G4 D5 C5 A5 G5 F5 E5",
	"- - - D5 C5 Bb4 A4 Ab4 G4 Gb4 F4 Eb4 E4",
	"- - - D5 C5 Bb4 A4 Ab4 G4 Gb4 F4 G4 E4",
	"- - - E4 C4 G3 E4 F4 G4 A4 Bb4 A4 G4",
	"- - - E4 C4 G3 E4 F4 G4 A4 Bb4 A4 G4 A4 Bb4 D5 C5",
	"- - - E4 C4 G3 E4 F4 G4 A4 Bb4 A4 G4 Gb4 F4 G4 E4",
	"- - - E4 C4 G3 E4 F4 G4 A4 Bb4 A4 G4 Gb4 F4 Eb4 E4",
	"- - - E5 C5 G4 F4 Eb4 E4",
	"- - - E5 C5 G4 F4 Eb4 E4 C5 Bb4 A4 G4",
	"- - - E5 C5 G4 F4 Eb4 E4 C5 Bb4 D5 C5",
	"- - - E5 C5 G4 F4 Eb4 E4 C5 Bb4 D5 C5 Bb4 G4 F4 G4",
	"- - - Eb4 E4 C5 Bb4 D5 C5",
	"- - - Eb4 E4 C5 Bb4 D5 C5 Bb4 A4 Ab4 G4",
}

const outsideOfKeyPrefix = "- - - - - - - - - - - - "

// Source provides the built-in line text corpus for a caller to parse;
// kept here (rather than in internal/parser, which must not import
// internal/line's callers) so the corpus and the Line type it produces
// live next to one another.
type Source struct {
	parse func(string) (*Line, error)
}

// NewSource wraps a parse function (internal/parser.ParseLine, normally)
// so the library can build Line values without this package importing
// the parser package back.
func NewSource(parse func(string) (*Line, error)) *Source {
	return &Source{parse: parse}
}

// All parses the built-in "in the key" line corpus.
func (s *Source) All() ([]*Line, error) {
	return s.parseAll(builtinLineText)
}

// OutsideOfTheKey parses the built-in "outside of the key" corpus, each
// entry prefixed with twelve one-sixteenth rests of lead-in.
func (s *Source) OutsideOfTheKey() ([]*Line, error) {
	prefixed := make([]string, len(builtinOutsideOfKeyLineText))
	for i, text := range builtinOutsideOfKeyLineText {
		prefixed[i] = outsideOfKeyPrefix + text
	}
	return s.parseAll(prefixed)
}

func (s *Source) parseAll(texts []string) ([]*Line, error) {
	lines := make([]*Line, 0, len(texts))
	for _, text := range texts {
		ln, err := s.parse(text)
		if err != nil {
			return nil, err
		}
		lines = append(lines, ln)
	}
	return lines, nil
}
