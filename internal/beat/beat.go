// Package beat implements the measure/beat coordinate system the rest of
// the line launcher speaks: a 16-sixteenth measure grid with modular
// arithmetic on the sixteenth position, and a (measure, beat) pair with
// carry on wraparound.
package beat

import "fmt"

// SixteenthsPerMeasure is the number of sixteenth-note subdivisions in one
// common-time measure.
const SixteenthsPerMeasure = 16

// Number is a position within a measure, expressed as a sixteenth-note
// index in [0, SixteenthsPerMeasure).
type Number struct {
	sixteenth int
}

// New constructs a Number, wrapping the input into [0, 16).
func New(sixteenth int) Number {
	return Number{sixteenth: mod16(sixteenth)}
}

// Sixteenth returns the raw sixteenth-note index in [0, 16).
func (n Number) Sixteenth() int {
	return n.sixteenth
}

// IsBeginningOfMeasure reports whether this is the downbeat (sixteenth 0).
func (n Number) IsBeginningOfMeasure() bool {
	return n.sixteenth == 0
}

// IsNextBeginningOfMeasure reports whether this is the pickup to the next
// downbeat (the last sixteenth of the measure).
func (n Number) IsNextBeginningOfMeasure() bool {
	return n.sixteenth == SixteenthsPerMeasure-1
}

// Add returns the beat n positions later, wrapping modulo 16.
func (n Number) Add(count int) Number {
	return New(n.sixteenth + count)
}

// Sub returns the beat n positions earlier, wrapping modulo 16.
func (n Number) Sub(count int) Number {
	return New(n.sixteenth - count)
}

// DurationSince returns the forward distance from other to n, in [0, 16).
func (n Number) DurationSince(other Number) int {
	return mod16(n.sixteenth - other.sixteenth)
}

func (n Number) String() string {
	return fmt.Sprintf("%d", n.sixteenth)
}

func mod16(v int) int {
	v %= SixteenthsPerMeasure
	if v < 0 {
		v += SixteenthsPerMeasure
	}
	return v
}

// MeasureBeat is an absolute position: a non-negative measure index plus a
// beat within that measure. Total order is (Measure, Beat.Sixteenth()).
type MeasureBeat struct {
	Measure int
	Beat    Number
}

// NewMeasureBeat constructs a MeasureBeat at the given measure and
// sixteenth.
func NewMeasureBeat(measure int, sixteenth int) MeasureBeat {
	return MeasureBeat{Measure: measure, Beat: New(sixteenth)}
}

// Increment advances by one sixteenth, carrying the measure forward when
// the beat wraps from 15 to 0.
func (mb MeasureBeat) Increment() MeasureBeat {
	return mb.IncrementBy(1)
}

// IncrementBy advances by n sixteenths, carrying the measure forward for
// every wrap.
func (mb MeasureBeat) IncrementBy(n int) MeasureBeat {
	if n < 0 {
		panic("beat: IncrementBy requires a non-negative count")
	}
	total := mb.Beat.sixteenth + n
	measures := total / SixteenthsPerMeasure
	return MeasureBeat{
		Measure: mb.Measure + measures,
		Beat:    New(total % SixteenthsPerMeasure),
	}
}

// Less reports whether mb sorts strictly before other in (measure, beat)
// order.
func (mb MeasureBeat) Less(other MeasureBeat) bool {
	if mb.Measure != other.Measure {
		return mb.Measure < other.Measure
	}
	return mb.Beat.sixteenth < other.Beat.sixteenth
}

// Equal reports whether mb and other name the same measure and beat.
func (mb MeasureBeat) Equal(other MeasureBeat) bool {
	return mb.Measure == other.Measure && mb.Beat.sixteenth == other.Beat.sixteenth
}

func (mb MeasureBeat) String() string {
	return fmt.Sprintf("m%d.%d", mb.Measure, mb.Beat.sixteenth)
}
