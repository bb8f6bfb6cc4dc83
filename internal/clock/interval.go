package clock

import "time"

// IntervalState names which phase the SixteenthInterval estimator is in.
type IntervalState int

const (
	// Uninitialized means no beat has been observed yet.
	Uninitialized IntervalState = iota
	// Partial means exactly one beat has been observed; no duration yet.
	Partial
	// Full means at least two beats have been observed; a duration is
	// available.
	Full
)

// SixteenthInterval maintains a rolling estimate of the wall-clock
// duration between successive sixteenth-note beats. Only the most recent
// interval is retained.
type SixteenthInterval struct {
	state   IntervalState
	lastTS  time.Time
	lastDur time.Duration
}

// NewSixteenthInterval returns an estimator in the Uninitialized state.
func NewSixteenthInterval() *SixteenthInterval {
	return &SixteenthInterval{state: Uninitialized}
}

// Observe records a beat arriving at now, advancing the estimator's state
// machine. A non-monotonic clock (now before the last observed instant)
// is tolerated: the delta is clamped to zero and the previously-known
// duration is retained rather than corrupted.
func (s *SixteenthInterval) Observe(now time.Time) {
	switch s.state {
	case Uninitialized:
		s.state = Partial
		s.lastTS = now
	case Partial:
		s.setDuration(now)
		s.state = Full
	case Full:
		s.setDuration(now)
	}
}

func (s *SixteenthInterval) setDuration(now time.Time) {
	delta := now.Sub(s.lastTS)
	if delta < 0 {
		// Non-monotonic clock: keep the last good duration and only
		// advance the timestamp so future deltas aren't skewed forever.
		s.lastTS = now
		return
	}
	s.lastDur = delta
	s.lastTS = now
}

// Duration returns the last observed sixteenth-note duration. ok is false
// until the estimator has reached the Full state.
func (s *SixteenthInterval) Duration() (d time.Duration, ok bool) {
	if s.state != Full {
		return 0, false
	}
	return s.lastDur, true
}

// State returns the estimator's current phase.
func (s *SixteenthInterval) State() IntervalState {
	return s.state
}

// String implements fmt.Stringer for display in logs and the monitor TUI.
func (st IntervalState) String() string {
	switch st {
	case Uninitialized:
		return "uninitialized"
	case Partial:
		return "partial"
	case Full:
		return "full"
	default:
		return "unknown"
	}
}
