package graph

import "sync/atomic"

// Effect is a reusable, schedulable unit of work with a single-bit guard
// so it runs at most once per batch even if multiple upstream pushes mark
// it pending (spec §3: "Pending-effect flag ... single-bit guard so an
// effect enqueued twice runs once per batch").
type Effect struct {
	pending atomic.Bool
	run     func()
}

// NewEffect wraps run as a schedulable effect.
func NewEffect(run func()) *Effect {
	return &Effect{run: run}
}

// clearPending resets the guard when the flush dequeues the effect, just
// before it runs, so it can be scheduled again — including by a write made
// while it is running, which queues one more run rather than being lost.
func (e *Effect) clearPending() {
	e.pending.Store(false)
}

func (e *Effect) exec() {
	defer func() {
		// Observer callbacks reached through run() are not trusted; an
		// effect's own execution failing must not wedge the flush loop.
		_ = recover()
	}()
	e.run()
}
