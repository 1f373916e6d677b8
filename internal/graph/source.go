package graph

import "sync/atomic"

// valueBox is the immutable value cell spec §3 describes: "Replacement is
// atomic (compare-and-swap)". Boxing the value lets the CAS operate on a
// single pointer regardless of what T the public wrapper instantiates.
type valueBox struct{ v any }

// EqualFunc compares two node values for the change-detection spec §3
// requires ("a version change implies the cached value changed by
// equality"). The public package supplies `==` for comparable T and a
// caller override otherwise — the same shape coregx-signals exposes as
// its Options.Equal, used here as a reference for the pattern, not its
// code.
type EqualFunc func(a, b any) bool

// Source is the writable leaf node (spec C2).
type Source struct {
	base
	version atomic.Int64
	box     atomic.Pointer[valueBox]
	equal   EqualFunc
	notify  *Effect
}

// NewSource constructs a writable leaf holding initial.
func NewSource(initial any, equal EqualFunc) *Source {
	s := &Source{base: newBase(), equal: equal}
	s.box.Store(&valueBox{v: initial})
	s.notify = NewEffect(s.deliver)
	return s
}

func (s *Source) Version() int64 { return s.version.Load() }

// Read returns the current value.
func (s *Source) Read() any { return s.box.Load().v }

// ReadResult satisfies Upstream; a source never fails to read.
func (s *Source) ReadResult() (any, error) { return s.Read(), nil }

// Write atomically replaces the value if it differs by equality, then
// runs the full invalidation wave (spec §4.2).
func (s *Source) Write(v any) {
	if s.IsClosed() {
		return
	}
	if !s.swap(func(any) any { return v }) {
		return
	}
	s.onChanged()
}

// Update is Write's CAS retry-loop form: fn is re-applied to whatever the
// current value turns out to be until the swap wins, "so concurrent
// updaters do not lose writes" (spec §4.2).
func (s *Source) Update(fn func(any) any) {
	if s.IsClosed() {
		return
	}
	if !s.swap(fn) {
		return
	}
	s.onChanged()
}

// swap runs the CAS retry loop and reports whether the value actually
// changed (by equality). A no-change result skips all notification.
func (s *Source) swap(fn func(any) any) bool {
	for {
		old := s.box.Load()
		next := fn(old.v)
		if s.equal(old.v, next) {
			return false
		}
		if s.box.CompareAndSwap(old, &valueBox{v: next}) {
			return true
		}
	}
}

func (s *Source) onChanged() {
	s.version.Add(1)
	Default.bumpGlobalVersion()
	Default.Batch(func() {
		s.pushTargetsDirty()
		if s.observers.Len() > 0 {
			Default.ScheduleEffect(s.notify)
		}
	})
}

func (s *Source) deliver() {
	s.observers.NotifyBatched(Success(s.Read()))
}

// Subscribe delivers the current value synchronously before returning,
// then adds fn to the observer set (spec §4.4). A panic escaping this
// initial delivery propagates to the caller, per spec §9.
func (s *Source) Subscribe(fn func(Result)) func() {
	if s.IsClosed() {
		return func() {}
	}
	fn(Success(s.Read()))
	h := s.observers.Add(fn)
	return func() { s.observers.Remove(h) }
}

func (s *Source) AddTarget(t Target)    { s.addTarget(t) }
func (s *Source) RemoveTarget(t Target) { s.removeTarget(t) }

// Close is idempotent; it clears observers and targets and makes further
// writes no-ops.
func (s *Source) Close() {
	if !s.markClosed() {
		return
	}
	s.observers.Clear()
	s.targets.Clear()
}
