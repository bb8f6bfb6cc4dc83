// Package scheduler implements the dispatcher's two deadline-driven worker
// loops: one for NoteOn submissions, one for NoteOff submissions. Both are
// instances of the same generic Scheduler type.
package scheduler

import (
	"context"
	"runtime"
	"time"

	"go.uber.org/zap"
)

// ScheduledItem is a single deadline-gated submission. PlannedIndex refers
// back into the dispatcher's PlannedNotes slice.
type ScheduledItem struct {
	Deadline     time.Time
	PlannedIndex int
}

// FireEvent is emitted once a ScheduledItem's deadline has passed.
type FireEvent struct {
	PlannedIndex int
}

// Scheduler processes ScheduledItems strictly in submission order, firing
// each once its deadline arrives. Deadlines need not be sorted: a
// late-arriving item with an already-passed deadline fires immediately.
// Spin-sleeping (rather than a single blocking sleep) is used for the
// final approach to the deadline, trading CPU for sub-millisecond firing
// accuracy.
type Scheduler struct {
	submit chan ScheduledItem
	fire   chan FireEvent
	log    *zap.Logger
}

// New returns a Scheduler with the given submission queue depth. Run must
// be started in its own goroutine before any caller blocks on Fire.
func New(queueDepth int, log *zap.Logger) *Scheduler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Scheduler{
		submit: make(chan ScheduledItem, queueDepth),
		fire:   make(chan FireEvent, queueDepth),
		log:    log,
	}
}

// Submit enqueues an item. It blocks if the submission queue is full,
// applying backpressure to the dispatcher rather than silently dropping a
// note event.
func (s *Scheduler) Submit(item ScheduledItem) {
	s.submit <- item
}

// Fire returns the channel on which fire events are delivered, in the same
// order items were submitted.
func (s *Scheduler) Fire() <-chan FireEvent {
	return s.fire
}

// Run drives the scheduler loop until ctx is cancelled. It is the only
// goroutine that reads from submit and writes to fire.
func (s *Scheduler) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case item := <-s.submit:
			if !spinSleepUntil(ctx, item.Deadline) {
				return
			}
			select {
			case s.fire <- FireEvent{PlannedIndex: item.PlannedIndex}:
			case <-ctx.Done():
				return
			}
		}
	}
}

// spinSleepUntil busy-waits until now >= deadline, sleeping in decreasing
// increments as the deadline nears to avoid pegging a core for the whole
// remaining interval. It returns false if ctx is cancelled first.
func spinSleepUntil(ctx context.Context, deadline time.Time) bool {
	for {
		now := time.Now()
		if !now.Before(deadline) {
			return true
		}
		remaining := deadline.Sub(now)
		select {
		case <-ctx.Done():
			return false
		default:
		}
		switch {
		case remaining > time.Millisecond:
			time.Sleep(remaining - time.Millisecond)
		case remaining > 50*time.Microsecond:
			time.Sleep(10 * time.Microsecond)
		default:
			runtime.Gosched()
		}
	}
}
