package graph

import "sync/atomic"

// Runtime is the process-wide graph state described in spec §4.1: a
// global version counter, a batch-depth gauge, a pending-effect queue,
// and a re-entrant-safe flush. It needs no teardown and no explicit
// construction — the zero value is ready, so the package exposes a single
// process-wide instance (spec: "Process-wide graph runtime ... model as a
// static singleton initialized on first use").
type Runtime struct {
	globalVersion atomic.Int64
	batchDepth    atomic.Int64
	pending       *effectQueue
	flushing      atomic.Bool
}

// Default is the one graph runtime this module uses. The global version
// and pending-effect queue are not user-configurable, per spec §4.1.
var Default = &Runtime{pending: newEffectQueue()}

// GlobalVersion returns the coarse fingerprint incremented on every
// successful source mutation (spec §3: "used as a coarse fingerprint for
// adapters that cannot participate in fine-grained version tracking").
func (r *Runtime) GlobalVersion() int64 { return r.globalVersion.Load() }

func (r *Runtime) bumpGlobalVersion() { r.globalVersion.Add(1) }

// StartBatch / EndBatch bracket a batch. EndBatch flushes once the depth
// returns to zero.
func (r *Runtime) StartBatch() { r.batchDepth.Add(1) }

func (r *Runtime) EndBatch() {
	if r.batchDepth.Add(-1) == 0 {
		r.Flush()
	}
}

// Batch is the scoped acquisition described in spec §4.1: it guarantees
// EndBatch on every exit path, including a panicking block.
func (r *Runtime) Batch(block func()) {
	r.StartBatch()
	defer r.EndBatch()
	block()
}

// InBatch reports whether a batch is currently open on this runtime.
func (r *Runtime) InBatch() bool { return r.batchDepth.Load() > 0 }

// ScheduleEffect enqueues e for the current batch's flush, or executes it
// inline immediately if no batch is open (spec §4.1).
func (r *Runtime) ScheduleEffect(e *Effect) {
	if r.InBatch() {
		if e.pending.CompareAndSwap(false, true) {
			r.pending.push(e)
		}
		return
	}
	e.exec()
}

// Flush drains the pending-effect queue. CAS-guarded so a concurrent
// flush in progress on another goroutine is left to finish its own work;
// the empty-recheck-after-clear loop prevents a lost wakeup for effects
// scheduled in the narrow window between the last dequeue and clearing
// the flushing flag.
func (r *Runtime) Flush() {
	if !r.flushing.CompareAndSwap(false, true) {
		return
	}

	for {
		for {
			e, ok := r.pending.pop()
			if !ok {
				break
			}
			e.clearPending()
			e.exec()
		}

		r.flushing.Store(false)

		if r.pending.empty() {
			return
		}

		// New work arrived in the window between the last pop and
		// clearing the flag; reclaim the flushing role and keep going.
		if !r.flushing.CompareAndSwap(false, true) {
			return
		}
	}
}
